package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренние ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")

	// 400 Bad Request: ошибки валидации продукта
	ErrProductNameRequired = fmt.Errorf("product name is required")
	ErrSkuRequired         = fmt.Errorf("sku is required")
	ErrPriceMustBePositive = fmt.Errorf("price must be greater than zero")
	ErrCategoryRequired    = fmt.Errorf("category is required")
	ErrCategoryNotExists   = fmt.Errorf("selected category does not exist")
	ErrSkuNotUnique        = fmt.Errorf("sku must be unique")
	ErrInvalidStatus       = fmt.Errorf("invalid status")

	// 400 Bad Request: ошибки валидации фото
	ErrUnsupportedFileType = fmt.Errorf("unsupported file type")
	ErrFileTooLarge        = fmt.Errorf("file too large")

	// 400 Bad Request: ошибки разбора HTTP-запроса
	ErrExpectedMultipart = fmt.Errorf("expected multipart/form-data")
	ErrMissingFields     = fmt.Errorf("missing required fields")
	ErrInvalidPrice      = fmt.Errorf("invalid price")
	ErrPricePrecision    = fmt.Errorf("price must have at most 2 decimal places")
	ErrInvalidID         = fmt.Errorf("invalid id")

	// 404 Not Found
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrCategoryNotFound = fmt.Errorf("category not found")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
