package domain

import (
	"strings"
	"time"
)

// ProductStatus — статус продукта в каталоге.
type ProductStatus string

const (
	StatusActive   ProductStatus = "Active"
	StatusInactive ProductStatus = "Inactive"
)

// IsValid сообщает, допустимо ли значение статуса.
func (s ProductStatus) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// ParseProductStatus разбирает статус без учёта регистра.
// Возвращает false, если строка не соответствует ни одному статусу.
func ParseProductStatus(s string) (ProductStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive, true
	case "inactive":
		return StatusInactive, true
	default:
		return "", false
	}
}

// Product описывает продукт каталога
type Product struct {
	ID         int64
	Name       string
	SKU        string
	PriceCents int64 // Цена хранится в копейках
	CategoryID int64
	Status     ProductStatus
	Photo      *string // относительный путь к файлу фото, nil если фото нет
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

func NewProduct(name, sku string, priceCents int64, categoryID int64, status ProductStatus, photo *string) *Product {
	return &Product{
		Name:       name,
		SKU:        sku,
		PriceCents: priceCents,
		CategoryID: categoryID,
		Status:     status,
		Photo:      photo,
	}
}
