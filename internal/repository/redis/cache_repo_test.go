package redis

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/clients"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/alicebob/miniredis/v2"
	r "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCacheRepo(t *testing.T) (*CacheRepo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := &clients.RedisClient{Client: r.NewClient(&r.Options{Addr: mr.Addr()})}

	repo := NewCacheRepo(
		client,
		converter.NewProductInfoConverter(),
		&cfg.RedisCfg{Addr: mr.Addr(), ProductTTL: time.Minute},
		logger.NewNop(),
	)
	return repo, mr
}

func testProduct(id int64) *usecase.ProductInfo {
	photo := "ab12.png"
	return &usecase.ProductInfo{
		ID:           id,
		Name:         "Keyboard",
		SKU:          "KB-001",
		PriceCents:   4999,
		CategoryID:   1,
		CategoryName: "Electronics",
		Status:       domain.StatusActive,
		Photo:        &photo,
	}
}

func Test_CacheRepo_SetAndGet(t *testing.T) {
	// given
	repo, _ := newTestCacheRepo(t)
	ctx := context.Background()

	// when
	require.NoError(t, repo.SetProduct(ctx, testProduct(7)))
	got, err := repo.GetProduct(ctx, 7)

	// then
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "Keyboard", got.Name)
	assert.Equal(t, domain.StatusActive, got.Status)
	require.NotNil(t, got.Photo)
	assert.Equal(t, "ab12.png", *got.Photo)
}

func Test_CacheRepo_Miss(t *testing.T) {
	repo, _ := newTestCacheRepo(t)

	got, err := repo.GetProduct(context.Background(), 404)

	require.NoError(t, err, "cache miss is not an error")
	assert.Nil(t, got)
}

func Test_CacheRepo_CorruptEntryIsMiss(t *testing.T) {
	// given: в кэше мусор вместо JSON
	repo, mr := newTestCacheRepo(t)
	require.NoError(t, mr.Set("product:7", "{not json"))

	// when
	got, err := repo.GetProduct(context.Background(), 7)

	// then
	require.NoError(t, err)
	assert.Nil(t, got)
}

func Test_CacheRepo_IDMismatchEvicts(t *testing.T) {
	// given: запись лежит под чужим ключом
	repo, mr := newTestCacheRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SetProduct(ctx, testProduct(7)))
	val, err := mr.Get("product:7")
	require.NoError(t, err)
	require.NoError(t, mr.Set("product:8", val))

	// when
	got, err := repo.GetProduct(ctx, 8)

	// then: промах, подложная запись удалена
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("product:8"))
}

func Test_CacheRepo_Delete(t *testing.T) {
	repo, mr := newTestCacheRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SetProduct(ctx, testProduct(7)))

	require.NoError(t, repo.DeleteProduct(ctx, 7))

	assert.False(t, mr.Exists("product:7"))
}

func Test_CacheRepo_EntryExpires(t *testing.T) {
	repo, mr := newTestCacheRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SetProduct(ctx, testProduct(7)))

	mr.FastForward(2 * time.Minute)

	got, err := repo.GetProduct(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, got)
}
