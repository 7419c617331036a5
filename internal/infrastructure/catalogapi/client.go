package catalogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/domain"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/usecase"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/e"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/logger"
	"github.com/jimlawless/whereami"
)

// productWire — проводной формат товара каталожного эндпоинта.
type productWire struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	InStock     bool    `json:"inStock"`
}

type paginationWire struct {
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

type queryResponseWire struct {
	Products   []productWire  `json:"products"`
	Pagination paginationWire `json:"pagination"`
}

// Client реализует абстрактный каталожный эндпоинт поверх HTTP API сервиса.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

func NewClient(baseURL string, logger logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// QueryCatalog передаёт поля дескриптора плоским набором параметров запроса.
// Отсутствие параметра означает его значение по умолчанию на стороне сервера.
func (c *Client) QueryCatalog(ctx context.Context, q usecase.QueryDescriptor) (*usecase.QueryResult, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	params.Set("minPrice", strconv.FormatFloat(q.MinPrice, 'f', -1, 64))
	if !math.IsInf(q.MaxPrice, 1) && q.MaxPrice > 0 {
		params.Set("maxPrice", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	}
	params.Set("inStock", strconv.FormatBool(q.InStock))
	if q.SortBy != "" {
		params.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		params.Set("sortOrder", q.SortOrder)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}

	reqURL := fmt.Sprintf("%s/api/v1/products?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrCatalogUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, e.Wrap(fmt.Sprintf("status %d", resp.StatusCode), e.ErrCatalogUnavailable)
	}

	var wire queryResponseWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	products := make([]domain.Product, len(wire.Products))
	for i, p := range wire.Products {
		products[i] = domain.Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Category:    p.Category,
			Image:       p.Image,
			InStock:     p.InStock,
		}
	}

	return &usecase.QueryResult{
		Products: products,
		Pagination: usecase.PaginationInfo{
			TotalItems:  wire.Pagination.TotalItems,
			TotalPages:  wire.Pagination.TotalPages,
			CurrentPage: wire.Pagination.CurrentPage,
			Limit:       wire.Pagination.Limit,
		},
	}, nil
}

// LookupProduct возвращает один товар по идентификатору.
// Ответ 404 транслируется в e.ErrProductNotFound.
func (c *Client) LookupProduct(ctx context.Context, id string) (*domain.Product, error) {
	reqURL := fmt.Sprintf("%s/api/v1/products/%s", c.baseURL, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrCatalogUnavailable)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, e.ErrProductNotFound
	default:
		return nil, e.Wrap(fmt.Sprintf("status %d", resp.StatusCode), e.ErrCatalogUnavailable)
	}

	var wire productWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &domain.Product{
		ID:          wire.ID,
		Name:        wire.Name,
		Description: wire.Description,
		Price:       wire.Price,
		Category:    wire.Category,
		Image:       wire.Image,
		InStock:     wire.InStock,
	}, nil
}
