package photos

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxPhotoSize = 25 * 1024

type fakePhotoRepo struct {
	mu      sync.Mutex
	saved   []*domain.Photo
	deleted []string
	saveErr error
	delErr  error
}

func (f *fakePhotoRepo) Save(_ context.Context, photo *domain.Photo) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved = append(f.saved, photo)
	return photo.Path, nil
}

func (f *fakePhotoRepo) Delete(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakePhotoRepo) deletedPaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func newTestStore(repo *fakePhotoRepo) *PhotoStore {
	return NewPhotoStore(
		repo,
		&cfg.PhotosCfg{Storage: cfg.PhotoStorageLocal, UploadDir: "uploads", MaxSizeBytes: maxPhotoSize},
		logger.NewNop(),
		context.Background(),
	)
}

func Test_PhotoStore_Validate(t *testing.T) {
	testCases := []struct {
		name        string
		fileName    string
		size        int64
		expectError error
	}{
		{name: "jpg accepted", fileName: "photo.jpg", size: 100},
		{name: "jpeg accepted", fileName: "photo.jpeg", size: 100},
		{name: "png accepted", fileName: "photo.png", size: 100},
		{name: "uppercase extension accepted", fileName: "PHOTO.PNG", size: 100},
		{name: "size at limit accepted", fileName: "photo.png", size: maxPhotoSize},
		{name: "size above limit rejected", fileName: "photo.png", size: maxPhotoSize + 1, expectError: e.ErrFileTooLarge},
		{name: "gif rejected regardless of size", fileName: "tiny.gif", size: 1, expectError: e.ErrUnsupportedFileType},
		{name: "no extension rejected", fileName: "photo", size: 100, expectError: e.ErrUnsupportedFileType},
		{name: "type checked before size", fileName: "huge.bmp", size: maxPhotoSize * 10, expectError: e.ErrUnsupportedFileType},
	}

	store := newTestStore(&fakePhotoRepo{})

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Validate(tc.fileName, tc.size)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func Test_PhotoStore_Save_GeneratesName(t *testing.T) {
	// given
	repo := &fakePhotoRepo{}
	store := newTestStore(repo)

	// when
	path, err := store.Save(context.Background(), usecase.NewPhotoUpload([]byte("img"), "Original Name.PNG", 3))

	// then: имя файла — uuid с нормализованным расширением, без исходного имени
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f-]{36}\.png$`), path)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "image/png", repo.saved[0].ContentType)
	assert.Equal(t, []byte("img"), repo.saved[0].Data)
}

func Test_PhotoStore_Save_UniqueNames(t *testing.T) {
	repo := &fakePhotoRepo{}
	store := newTestStore(repo)

	first, err := store.Save(context.Background(), usecase.NewPhotoUpload([]byte("a"), "a.jpg", 1))
	require.NoError(t, err)
	second, err := store.Save(context.Background(), usecase.NewPhotoUpload([]byte("b"), "b.jpg", 1))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func Test_PhotoStore_Save_RejectsUnknownExtension(t *testing.T) {
	store := newTestStore(&fakePhotoRepo{})

	_, err := store.Save(context.Background(), usecase.NewPhotoUpload([]byte("img"), "animation.gif", 3))

	assert.ErrorIs(t, err, e.ErrUnsupportedFileType)
}

func Test_PhotoStore_CleanupPhotos(t *testing.T) {
	// given
	repo := &fakePhotoRepo{}
	store := newTestStore(repo)

	// when
	store.CleanupPhotos([]string{"a.png", "b.jpg"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, store.WaitForCleanup(ctx))

	// then
	assert.ElementsMatch(t, []string{"a.png", "b.jpg"}, repo.deletedPaths())
}

func Test_PhotoStore_CleanupPhotos_EmptyIsNoop(t *testing.T) {
	repo := &fakePhotoRepo{}
	store := newTestStore(repo)

	store.CleanupPhotos(nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, store.WaitForCleanup(ctx))
	assert.Empty(t, repo.deletedPaths())
}
