package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
)

type ProductUC interface {
	SearchProducts(ctx context.Context, req *SearchProductsReq) (*SearchProductsRes, error)
	GetProductByID(ctx context.Context, id int64) (*ProductInfo, error)
	CreateProduct(ctx context.Context, req *SaveProductReq) (int64, error)
	UpdateProduct(ctx context.Context, req *SaveProductReq) error
	DeleteProduct(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error)
}
