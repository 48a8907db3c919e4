package converter

import (
	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain/usecase и моделью PostgreSQL.
type ProductConverter struct{}

func NewProductConverter() ProductConverter {
	return ProductConverter{}
}

func (ProductConverter) ToModel(entity *domain.Product) *ProductModel {
	return &ProductModel{
		ID:         entity.ID,
		Name:       entity.Name,
		SKU:        entity.SKU,
		PriceCents: entity.PriceCents,
		CategoryID: entity.CategoryID,
		Status:     string(entity.Status),
		Photo:      entity.Photo,
		CreatedAt:  entity.CreatedAt,
		UpdatedAt:  entity.UpdatedAt,
	}
}

func (ProductConverter) ToEntity(model *ProductModel) *domain.Product {
	return &domain.Product{
		ID:         model.ID,
		Name:       model.Name,
		SKU:        model.SKU,
		PriceCents: model.PriceCents,
		CategoryID: model.CategoryID,
		Status:     domain.ProductStatus(model.Status),
		Photo:      model.Photo,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func (ProductConverter) ToInfo(model *ProductInfoModel) *usecase.ProductInfo {
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

// CategoryConverter преобразует сущности Category между domain и моделью PostgreSQL.
type CategoryConverter struct{}

func NewCategoryConverter() CategoryConverter {
	return CategoryConverter{}
}

func (CategoryConverter) ToEntity(model *CategoryModel) *domain.Category {
	return &domain.Category{
		ID:   model.ID,
		Name: model.Name,
	}
}
