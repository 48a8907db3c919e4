package http

import (
	"net/http"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewCategoryHandler(productUsecase usecase.ProductUC, logger logger.Logger) *CategoryHandler {
	return &CategoryHandler{productUsecase: productUsecase, logger: logger}
}

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type categoryListResponse struct {
	Categories []categoryResponse `json:"categories"`
}

func toCategoryResponse(c *domain.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name}
}

// listCategories
//
//	@Summary	Список категорий
//	@Tags		categories
//	@Produce	json
//	@Success	200	{object}	categoryListResponse
//	@Router		/categories [get]
func (c *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.productUsecase.ListCategories(r.Context())
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res := categoryListResponse{Categories: make([]categoryResponse, 0, len(categories))}
	for i := range categories {
		res.Categories = append(res.Categories, toCategoryResponse(&categories[i]))
	}

	WriteSuccess(w, http.StatusOK, res)
}

// getCategory
//
//	@Summary	Категория по идентификатору
//	@Tags		categories
//	@Produce	json
//	@Param		id	path		integer	true	"ID категории"
//	@Success	200	{object}	categoryResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/categories/{id} [get]
func (c *CategoryHandler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	category, err := c.productUsecase.GetCategoryByID(r.Context(), id)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCategoryResponse(category))
}
