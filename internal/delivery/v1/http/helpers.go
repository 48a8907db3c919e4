package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// validationErrs — ошибки, которые возвращаются клиенту как 400 Bad Request.
var validationErrs = []error{
	e.ErrExpectedMultipart,
	e.ErrMissingFields,
	e.ErrInvalidPrice,
	e.ErrPricePrecision,
	e.ErrInvalidID,
	e.ErrProductNameRequired,
	e.ErrSkuRequired,
	e.ErrPriceMustBePositive,
	e.ErrCategoryRequired,
	e.ErrCategoryNotExists,
	e.ErrSkuNotUnique,
	e.ErrInvalidStatus,
	e.ErrUnsupportedFileType,
	e.ErrFileTooLarge,
}

// ToHTTPResponse переводит ошибку в HTTP-статус и сообщение для клиента.
// Неизвестные ошибки не протекают наружу — клиент получает общий 500.
func ToHTTPResponse(err error) (int, string) {
	for _, verr := range validationErrs {
		if errors.Is(err, verr) {
			return http.StatusBadRequest, verr.Error()
		}
	}

	switch {
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrCategoryNotFound):
		return http.StatusNotFound, e.ErrCategoryNotFound.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parsePriceToCents converts a string like "599.99" or "600" to int64 cents.
// Returns error if:
// - invalid format
// - more than 2 decimal places
// - negative or zero value
// - exceeds reasonable limit (10^9)
func parsePriceToCents(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrMissingFields
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.LessThanOrEqual(decimal.Zero) {
		return 0, e.ErrPriceMustBePositive
	}

	maxPrice := decimal.NewFromInt(1_000_000_000)
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	// Check decimal places
	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision
	}

	cents := d.Mul(decimal.NewFromInt(100)).Round(0)

	return cents.IntPart(), nil
}

// formatCents renders int64 cents back to a decimal string ("999" -> "9.99").
func formatCents(cents int64) string {
	return decimal.New(cents, -2).String()
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

// parseProductForm собирает кандидата продукта из multipart-формы.
// Фото разбирается отдельно в parsePhoto.
func parseProductForm(r *http.Request) (*usecase.SaveProductReq, error) {
	name := r.FormValue("name")
	sku := r.FormValue("sku")
	priceStr := r.FormValue("price")
	categoryStr := r.FormValue("category_id")
	statusStr := r.FormValue("status")

	if name == "" || sku == "" || priceStr == "" || categoryStr == "" || statusStr == "" {
		return nil, e.ErrMissingFields
	}

	priceCents, err := parsePriceToCents(priceStr)
	if err != nil {
		return nil, err
	}

	categoryID, err := strconv.ParseInt(categoryStr, 10, 64)
	if err != nil {
		return nil, e.ErrCategoryRequired
	}

	status, ok := domain.ParseProductStatus(statusStr)
	if !ok {
		return nil, e.ErrInvalidStatus
	}

	return &usecase.SaveProductReq{
		Name:       name,
		SKU:        sku,
		PriceCents: priceCents,
		CategoryID: categoryID,
		Status:     status,
	}, nil
}

// parsePhoto читает необязательный файл фото из multipart-формы.
// Возвращает (nil, nil), если файл не передан.
func parsePhoto(files []*multipart.FileHeader) (*usecase.PhotoUpload, error) {
	if len(files) == 0 {
		return nil, nil
	}

	fh := files[0]
	src, err := fh.Open()
	if err != nil {
		return nil, e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, e.ErrInternalServerError
	}

	return usecase.NewPhotoUpload(data, fh.Filename, int64(len(data))), nil
}

// parseIDParam разбирает path-параметр id.
func parseIDParam(idStr string) (int64, error) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, e.ErrInvalidID
	}

	return id, nil
}
