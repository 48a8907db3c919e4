package http

import (
	"net/http"
	"strconv"

	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

// productResponse — представление продукта в ответах API.
type productResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Price        string  `json:"price"`
	PriceCents   int64   `json:"price_cents"`
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Status       string  `json:"status"`
	Photo        *string `json:"photo,omitempty"`
}

type productListResponse struct {
	Products   []productResponse `json:"products"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
}

func toProductResponse(info *usecase.ProductInfo) productResponse {
	return productResponse{
		ID:           info.ID,
		Name:         info.Name,
		SKU:          info.SKU,
		Price:        formatCents(info.PriceCents),
		PriceCents:   info.PriceCents,
		CategoryID:   info.CategoryID,
		CategoryName: info.CategoryName,
		Status:       string(info.Status),
		Photo:        info.Photo,
	}
}

// listProducts
//
//	@Summary		Список товаров
//	@Description	Поиск, фильтрация по категории и пагинация
//	@Tags			products
//	@Produce		json
//	@Param			search		query		string	false	"Подстрока имени или SKU"
//	@Param			category_id	query		integer	false	"Фильтр по категории"
//	@Param			page		query		integer	false	"Номер страницы (с 1)"
//	@Param			page_size	query		integer	false	"Размер страницы"
//	@Success		200			{object}	productListResponse
//	@Router			/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := &usecase.SearchProductsReq{
		Term: q.Get("search"),
	}

	if v := q.Get("category_id"); v != "" {
		categoryID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			p.logger.Warnf("%d bad category_id: %s", http.StatusBadRequest, v)
			WriteError(w, e.ErrInvalidID)
			return
		}
		req.CategoryID = &categoryID
	}

	req.Page, _ = strconv.Atoi(q.Get("page"))
	req.PageSize, _ = strconv.Atoi(q.Get("page_size"))

	res, err := p.productUsecase.SearchProducts(r.Context(), req)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	products := make([]productResponse, 0, len(res.Products))
	for i := range res.Products {
		products = append(products, toProductResponse(&res.Products[i]))
	}

	WriteSuccess(w, http.StatusOK, productListResponse{
		Products:   products,
		TotalCount: res.TotalCount,
		Page:       res.Page,
		PageSize:   res.PageSize,
	})
}

// getProduct
//
//	@Summary	Товар по идентификатору
//	@Tags		products
//	@Produce	json
//	@Param		id	path		integer	true	"ID товара"
//	@Success	200	{object}	productResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.GetProductByID(r.Context(), id)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// createProduct
//
//	@Summary		Создание товара
//	@Description	Создает товар в каталоге с необязательным фото
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name		formData	string	true	"Название товара"
//	@Param			sku			formData	string	true	"SKU"
//	@Param			price		formData	number	true	"Цена"
//	@Param			category_id	formData	integer	true	"Категория"
//	@Param			status		formData	string	true	"Active или Inactive"
//	@Param			photo		formData	file	false	"Фото товара (jpg/jpeg/png, до 25 КБ)"
//	@Success		201			{object}	map[string]interface{}	"Успешное создание"
//	@Failure		400			{object}	ErrorResponse			"Ошибка валидации"
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	req, err := p.parseSaveRequest(w, r)
	if err != nil {
		WriteError(w, err)
		return
	}

	id, err := p.productUsecase.CreateProduct(r.Context(), req)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"id": id,
	})
}

// updateProduct
//
//	@Summary		Обновление товара
//	@Description	Полная замена изменяемых полей, с необязательной заменой фото
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id			path		integer	true	"ID товара"
//	@Param			name		formData	string	true	"Название товара"
//	@Param			sku			formData	string	true	"SKU"
//	@Param			price		formData	number	true	"Цена"
//	@Param			category_id	formData	integer	true	"Категория"
//	@Param			status		formData	string	true	"Active или Inactive"
//	@Param			photo		formData	file	false	"Новое фото товара"
//	@Success		200			{object}	map[string]interface{}
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/products/{id} [put]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	req, err := p.parseSaveRequest(w, r)
	if err != nil {
		WriteError(w, err)
		return
	}
	req.ID = id

	if err := p.productUsecase.UpdateProduct(r.Context(), req); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"updated": true,
	})
}

// deleteProduct
//
//	@Summary	Удаление товара
//	@Tags		products
//	@Param		id	path	integer	true	"ID товара"
//	@Success	204	"Удалено (или товара не было)"
//	@Router		/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.productUsecase.DeleteProduct(r.Context(), id); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseSaveRequest разбирает multipart-форму создания/обновления товара.
func (p *ProductHandler) parseSaveRequest(w http.ResponseWriter, r *http.Request) (*usecase.SaveProductReq, error) {
	const (
		maxTotalRequestSize = 1 << 20
		maxMemory           = 256 << 10
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%d bad content type: %s", http.StatusBadRequest, r.Header.Get("Content-Type"))
		return nil, err
	}

	req, err := parseProductForm(r)
	if err != nil {
		p.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		return nil, err
	}

	photo, err := parsePhoto(r.MultipartForm.File["photo"])
	if err != nil {
		p.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		return nil, err
	}
	req.Photo = photo

	return req, nil
}
