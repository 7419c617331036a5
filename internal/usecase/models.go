package usecase

import (
	"math"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/domain"
	"github.com/shopspring/decimal"
)

// CATALOG QUERY ENGINE

// Поддерживаемые значения сортировки дескриптора запроса.
const (
	SortByPrice = "price"
	SortByName  = "name"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// QueryDescriptor — набор параметров фильтрации, сортировки и пагинации
// для одного запроса к каталогу.
type QueryDescriptor struct {
	Page      int
	Limit     int
	Category  string
	MinPrice  float64
	MaxPrice  float64 // значение <= 0 означает отсутствие верхней границы
	InStock   bool    // true сужает выдачу до товаров в наличии; false не фильтрует
	Search    string
	SortBy    string
	SortOrder string
}

// NewQueryDescriptor возвращает дескриптор с документированными значениями по умолчанию.
func NewQueryDescriptor() QueryDescriptor {
	return QueryDescriptor{
		Page:      1,
		Limit:     DefaultPageLimit,
		MinPrice:  0,
		MaxPrice:  math.Inf(1),
		SortOrder: SortOrderAsc,
	}
}

// DefaultPageLimit — размер страницы по умолчанию.
const DefaultPageLimit = 8

// PaginationInfo — метаданные пагинации, вычисленные после фильтрации.
type PaginationInfo struct {
	TotalItems  int
	TotalPages  int
	CurrentPage int
	Limit       int
}

// QueryResult — страница товаров плюс метаданные пагинации.
type QueryResult struct {
	Products   []domain.Product
	Pagination PaginationInfo
}

// CATALOG USECASE

// ImportProductsReq — запрос на импорт партии товаров в каталог.
type ImportProductsReq struct {
	Products []domain.Product
}

// CART USECASE

// CartTotals — производные финансовые итоги корзины, вычисляемые при чтении.
type CartTotals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}
