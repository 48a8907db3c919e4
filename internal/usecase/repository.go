package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
)

type ProductRepository interface {
	Search(ctx context.Context, req *SearchProductsReq) ([]ProductInfo, int64, error)
	GetByID(ctx context.Context, id int64) (*ProductInfo, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	ExistsBySKUExcludingID(ctx context.Context, sku string, excludeID int64) (bool, error)
	Create(ctx context.Context, product *domain.Product) (int64, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	ListAll(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
}

// PhotoRepository — низкоуровневое хранилище файлов фото
// (локальный диск или S3-совместимое хранилище).
type PhotoRepository interface {
	Save(ctx context.Context, photo *domain.Photo) (string, error)
	Delete(ctx context.Context, path string) error
}

type CacheRepository interface {
	GetProduct(ctx context.Context, id int64) (*ProductInfo, error)
	SetProduct(ctx context.Context, product *ProductInfo) error
	DeleteProduct(ctx context.Context, id int64) error
}
