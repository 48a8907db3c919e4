package cfg

import (
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_USER", "user")
	t.Setenv("POSTGRES_PASSWORD", "password")
	t.Setenv("POSTGRES_DB", "catalog")
}

func Test_Load_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(logger.NewNop())

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Http.Port)
	assert.Equal(t, "localhost", cfg.Db.Host)
	assert.Equal(t, "disable", cfg.Db.SSLMode)
	assert.Equal(t, PhotoStorageLocal, cfg.Photos.Storage)
	assert.Equal(t, "uploads", cfg.Photos.UploadDir)
	assert.Equal(t, int64(25*1024), cfg.Photos.MaxSizeBytes)
	assert.Equal(t, 3*time.Minute, cfg.Redis.ProductTTL)
	assert.Nil(t, cfg.Minio, "minio config is loaded only for minio storage")
}

func Test_Load_MissingDatabaseCredentials(t *testing.T) {
	t.Setenv("POSTGRES_USER", "")
	t.Setenv("POSTGRES_PASSWORD", "")
	t.Setenv("POSTGRES_DB", "")

	_, err := Load(logger.NewNop())

	assert.Error(t, err)
}

func Test_Load_MinioStorage(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PHOTO_STORAGE", "minio")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("BUCKET_NAME", "product-photos")
	t.Setenv("MINIO_ROOT_USER", "minio")
	t.Setenv("MINIO_ROOT_PASSWORD", "secret")

	cfg, err := Load(logger.NewNop())

	require.NoError(t, err)
	require.NotNil(t, cfg.Minio)
	assert.Equal(t, "product-photos", cfg.Minio.BucketName)
	assert.False(t, cfg.Minio.MinioUseSSL)
}

func Test_Load_UnknownPhotoStorage(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PHOTO_STORAGE", "ftp")

	_, err := Load(logger.NewNop())

	assert.Error(t, err)
}

func Test_Load_InvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	_, err := Load(logger.NewNop())

	assert.Error(t, err)
}

func Test_Load_OverriddenPhotoLimit(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PHOTO_MAX_SIZE_BYTES", "51200")

	cfg, err := Load(logger.NewNop())

	require.NoError(t, err)
	assert.Equal(t, int64(51200), cfg.Photos.MaxSizeBytes)
}
