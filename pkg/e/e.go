package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки каталога
	ErrProductNotFound    = fmt.Errorf("product not found")
	ErrCatalogUnavailable = fmt.Errorf("catalog endpoint unavailable")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrInvalidBody      = fmt.Errorf("invalid request body")
	ErrMissingProductID = fmt.Errorf("product id is required")
	ErrInvalidPrice     = fmt.Errorf("invalid price")
	ErrInvalidQuantity  = fmt.Errorf("quantity must be positive")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
