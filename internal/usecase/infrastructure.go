package usecase

import "context"

// PhotosInfra — политика хранения фото: проверка типа и размера,
// генерация имени файла, сохранение, удаление и фоновая компенсация.
type PhotosInfra interface {
	Validate(fileName string, size int64) error
	Save(ctx context.Context, upload *PhotoUpload) (string, error)
	Delete(ctx context.Context, path string) error
	CleanupPhotos(paths []string)
}
