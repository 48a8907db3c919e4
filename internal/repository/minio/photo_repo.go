package minio

import (
	"bytes"
	"context"

	"github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// PhotoRepo реализует хранилище фото продуктов поверх MinIO.
// Путь фото в Product.Photo — это ключ объекта в бакете.
type PhotoRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewPhotoRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *PhotoRepo {
	return &PhotoRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Save загружает фото в MinIO и возвращает ключ объекта.
func (p *PhotoRepo) Save(ctx context.Context, photo *domain.Photo) (string, error) {
	reader := bytes.NewReader(photo.Data)

	info, err := p.mc.PutObject(ctx, p.cfg.BucketName, photo.Path, reader, photo.Size, minio.PutObjectOptions{
		ContentType: photo.ContentType,
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Delete удаляет объект из MinIO по указанному ключу.
// Удаление отсутствующего объекта не является ошибкой.
func (p *PhotoRepo) Delete(ctx context.Context, path string) error {
	if err := p.mc.RemoveObject(ctx, p.cfg.BucketName, path, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
