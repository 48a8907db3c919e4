package converter

import (
	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
)

// ProductInfoConverter преобразует ProductInfo между usecase и моделью Redis.
type ProductInfoConverter struct{}

func NewProductInfoConverter() ProductInfoConverter {
	return ProductInfoConverter{}
}

func (ProductInfoConverter) ToRedisModel(entity *usecase.ProductInfo) *ProductInfoRedisModel {
	return &ProductInfoRedisModel{
		ID:           entity.ID,
		Name:         entity.Name,
		SKU:          entity.SKU,
		PriceCents:   entity.PriceCents,
		CategoryID:   entity.CategoryID,
		CategoryName: entity.CategoryName,
		Status:       string(entity.Status),
		Photo:        entity.Photo,
	}
}

func (ProductInfoConverter) ToUseCase(model *ProductInfoRedisModel) *usecase.ProductInfo {
	return &usecase.ProductInfo{
		ID:           model.ID,
		Name:         model.Name,
		SKU:          model.SKU,
		PriceCents:   model.PriceCents,
		CategoryID:   model.CategoryID,
		CategoryName: model.CategoryName,
		Status:       domain.ProductStatus(model.Status),
		Photo:        model.Photo,
	}
}
