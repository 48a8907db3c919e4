package usecase

import "github.com/DRSN-tech/catalog-backend/internal/domain"

// PRODUCT USECASE

// PhotoUpload представляет фото, загруженное через multipart/form-data.
type PhotoUpload struct {
	Data     []byte // байты файла
	FileName string // оригинальное имя файла (расширение берётся отсюда)
	Size     int64  // фактический размер в байтах
}

func NewPhotoUpload(data []byte, fileName string, size int64) *PhotoUpload {
	return &PhotoUpload{
		Data:     data,
		FileName: fileName,
		Size:     size,
	}
}

// SaveProductReq — запрос на создание или обновление продукта.
// ID заполняется только при обновлении. Photo необязательно.
type SaveProductReq struct {
	ID         int64
	Name       string
	SKU        string
	PriceCents int64
	CategoryID int64
	Status     domain.ProductStatus
	Photo      *PhotoUpload
}

// SearchProductsReq — запрос поиска продуктов с фильтрацией и пагинацией.
// Term сравнивается с именем и SKU без учёта регистра, пустой Term — без фильтра.
// CategoryID nil — без фильтра по категории. Page нумеруется с 1.
type SearchProductsReq struct {
	Term       string
	CategoryID *int64
	Page       int
	PageSize   int
}

// SearchProductsRes — страница результатов поиска.
// TotalCount — размер всей отфильтрованной выборки, не страницы.
type SearchProductsRes struct {
	Products   []ProductInfo
	TotalCount int64
	Page       int
	PageSize   int
}

func NewSearchProductsRes(products []ProductInfo, totalCount int64, page, pageSize int) *SearchProductsRes {
	return &SearchProductsRes{
		Products:   products,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	}
}

// ProductInfo — DTO с информацией о продукте для внешнего использования,
// включая название категории.
type ProductInfo struct {
	ID           int64
	Name         string
	SKU          string
	PriceCents   int64
	CategoryID   int64
	CategoryName string
	Status       domain.ProductStatus
	Photo        *string
}
