package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/jimlawless/whereami"
)

// PhotoRepo реализует хранилище фото продуктов на локальном диске.
// Все файлы лежат в одном корневом каталоге; Product.Photo хранит
// путь относительно этого корня.
type PhotoRepo struct {
	root string
}

func NewPhotoRepo(root string) *PhotoRepo {
	return &PhotoRepo{root: root}
}

// Save записывает файл фото в каталог загрузок, создавая каталог при необходимости.
// Возвращает путь относительно корня.
func (p *PhotoRepo) Save(_ context.Context, photo *domain.Photo) (string, error) {
	if err := os.MkdirAll(p.root, 0o755); err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	fullPath := filepath.Join(p.root, photo.Path)
	if err := os.WriteFile(fullPath, photo.Data, 0o644); err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return photo.Path, nil
}

// Delete удаляет файл фото. Отсутствие файла — не ошибка, операция идемпотентна.
func (p *PhotoRepo) Delete(_ context.Context, path string) error {
	fullPath := filepath.Join(p.root, filepath.Clean(path))

	if err := os.Remove(fullPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
