package photos

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/jitter"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"

	"github.com/google/uuid"
)

// allowedExtensions — допустимые расширения фото и их MIME-типы.
// Сравнение выполняется без учёта регистра.
var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// PhotoStore управляет файлами фото продуктов: проверяет политику
// тип/размер, генерирует имена файлов и компенсирует осиротевшие файлы
// фоновой очисткой после неудачной записи в базу.
type PhotoStore struct {
	photoRepo   usecase.PhotoRepository
	cfg         *cfg.PhotosCfg
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
}

func NewPhotoStore(photoRepo usecase.PhotoRepository, cfg *cfg.PhotosCfg, logger logger.Logger, shutdownCtx context.Context) *PhotoStore {
	return &PhotoStore{
		photoRepo:   photoRepo,
		cfg:         cfg,
		logger:      logger,
		shutdownCtx: shutdownCtx,
	}
}

// Validate проверяет файл против политики хранения.
// Размер ровно в лимит проходит; отклоняется только строго больший.
func (s *PhotoStore) Validate(fileName string, size int64) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedExtensions[ext]; !ok {
		return e.ErrUnsupportedFileType
	}

	if size > s.cfg.MaxSizeBytes {
		return e.ErrFileTooLarge
	}

	return nil
}

// Save сохраняет файл фото под сгенерированным именем <uuid><ext>
// и возвращает относительный путь для Product.Photo.
func (s *PhotoStore) Save(ctx context.Context, upload *usecase.PhotoUpload) (string, error) {
	const op = "PhotoStore.Save"

	ext := strings.ToLower(filepath.Ext(upload.FileName))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		return "", e.Wrap(op, e.ErrUnsupportedFileType)
	}

	id := uuid.NewString()
	photo := domain.NewPhoto(id, id+ext, upload.Data, upload.Size, contentType)

	path, err := s.photoRepo.Save(ctx, photo)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	return path, nil
}

// Delete удаляет файл фото по относительному пути. Идемпотентно.
func (s *PhotoStore) Delete(ctx context.Context, path string) error {
	const op = "PhotoStore.Delete"

	if err := s.photoRepo.Delete(ctx, path); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// CleanupPhotos запускает фоновую очистку указанных файлов
func (s *PhotoStore) CleanupPhotos(paths []string) {
	if len(paths) == 0 {
		return
	}
	s.wg.Add(1)
	go s.cleanupPaths(paths)
}

// cleanupPaths удаляет указанные файлы с экспоненциальной задержкой и джиттером.
func (s *PhotoStore) cleanupPaths(paths []string) {
	defer s.wg.Done() // сигнализируем завершение компенсации
	const (
		op          = "PhotoStore.cleanupPaths"
		maxAttempts = 3
		baseBackoff = time.Second
		maxBackoff  = 10 * time.Second
	)
	s.logger.Infof("%s: Cleaning up photo files", op)

	ctx, cancel := context.WithTimeout(s.shutdownCtx, 30*time.Second)
	defer cancel()

	for _, path := range paths {
		for attempt := 0; attempt < maxAttempts; attempt++ {
			if err := s.photoRepo.Delete(ctx, path); err == nil {
				break // Успешно удалено
			}

			select {
			case <-ctx.Done():
				s.logger.Warnf("cleanup interrupted by shutdown, path=%v", path)
				return
			default:
			}

			if attempt < maxAttempts-1 {
				sleepTime := jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt, jitter.DefaultJitter)

				select {
				case <-time.After(sleepTime):
				case <-ctx.Done():
					s.logger.Warnf("cleanup interrupted by shutdown during backoff, path=%v", path)
					return
				}
			}
		}
	}
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (s *PhotoStore) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("photo cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
