package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/domain"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/usecase"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/e"
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

// ProductResponse — проводной формат товара, общий для всех интерфейсов.
type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	InStock     bool    `json:"inStock"`
}

type PaginationResponse struct {
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

type QueryResponse struct {
	Products   []ProductResponse  `json:"products"`
	Pagination PaginationResponse `json:"pagination"`
}

type CartItemResponse struct {
	Product  ProductResponse `json:"product"`
	Quantity int             `json:"quantity"`
}

type CartResponse struct {
	Items    []CartItemResponse `json:"items"`
	Subtotal float64            `json:"subtotal"`
	Discount float64            `json:"discount"`
	Total    float64            `json:"total"`
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrInvalidBody):
		return http.StatusBadRequest, e.ErrInvalidBody.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrCatalogUnavailable):
		return http.StatusBadGateway, e.ErrCatalogUnavailable.Error()
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

// parseQueryDescriptor собирает дескриптор из плоских параметров запроса.
// Параметры, не прошедшие числовой разбор, откатываются к значениям по
// умолчанию — запрос не отклоняется.
func parseQueryDescriptor(r *http.Request) usecase.QueryDescriptor {
	q := usecase.NewQueryDescriptor()
	params := r.URL.Query()

	if v, err := strconv.Atoi(params.Get("page")); err == nil {
		q.Page = v
	}
	if v, err := strconv.Atoi(params.Get("limit")); err == nil {
		q.Limit = v
	}
	if v, err := strconv.ParseFloat(params.Get("minPrice"), 64); err == nil && !math.IsNaN(v) {
		q.MinPrice = v
	}
	if v, err := strconv.ParseFloat(params.Get("maxPrice"), 64); err == nil && !math.IsNaN(v) {
		q.MaxPrice = v
	}

	q.Category = params.Get("category")
	q.InStock = params.Get("inStock") == "true"
	q.Search = params.Get("search")
	q.SortBy = params.Get("sortBy")
	if v := params.Get("sortOrder"); v != "" {
		q.SortOrder = v
	}

	return q
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
		InStock:     p.InStock,
	}
}

func toQueryResponse(res *usecase.QueryResult) *QueryResponse {
	products := make([]ProductResponse, len(res.Products))
	for i := range res.Products {
		products[i] = toProductResponse(&res.Products[i])
	}

	return &QueryResponse{
		Products: products,
		Pagination: PaginationResponse{
			TotalItems:  res.Pagination.TotalItems,
			TotalPages:  res.Pagination.TotalPages,
			CurrentPage: res.Pagination.CurrentPage,
			Limit:       res.Pagination.Limit,
		},
	}
}

func toCartResponse(items []domain.CartItem, totals usecase.CartTotals) *CartResponse {
	respItems := make([]CartItemResponse, len(items))
	for i, item := range items {
		respItems[i] = CartItemResponse{
			Product:  toProductResponse(&item.Product),
			Quantity: item.Quantity,
		}
	}

	return &CartResponse{
		Items:    respItems,
		Subtotal: totals.Subtotal.InexactFloat64(),
		Discount: totals.Discount.InexactFloat64(),
		Total:    totals.Total.InexactFloat64(),
	}
}
