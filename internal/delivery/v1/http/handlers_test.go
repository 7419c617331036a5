package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/domain"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/usecase"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/e"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureCatalog() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Wireless Headphones", Description: "Noise cancelling", Price: 89.99, Category: "electronics", InStock: true},
		{ID: "2", Name: "Smart Watch", Description: "Fitness tracker", Price: 149.5, Category: "electronics", InStock: true},
		{ID: "3", Name: "Cotton T-Shirt", Description: "Organic cotton", Price: 19.99, Category: "clothing", InStock: true},
		{ID: "4", Name: "Desk Lamp", Description: "Adjustable LED", Price: 54.99, Category: "home", InStock: false},
	}
}

// fakeCatalogUC отвечает движком запросов поверх фиксированного каталога.
type fakeCatalogUC struct {
	catalog []domain.Product
}

func (f *fakeCatalogUC) QueryProducts(_ context.Context, q usecase.QueryDescriptor) (*usecase.QueryResult, error) {
	res := usecase.ApplyQuery(f.catalog, q)
	return &res, nil
}

func (f *fakeCatalogUC) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range f.catalog {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, e.ErrProductNotFound
}

func (f *fakeCatalogUC) Categories(context.Context) ([]string, error) {
	return []string{"clothing", "electronics", "home"}, nil
}

func (f *fakeCatalogUC) ImportProducts(_ context.Context, req *usecase.ImportProductsReq) (int, error) {
	f.catalog = append(f.catalog, req.Products...)
	return len(req.Products), nil
}

type stubCartStorage struct{}

func (stubCartStorage) Load(context.Context) []domain.CartItem        { return nil }
func (stubCartStorage) Save(context.Context, []domain.CartItem) error { return nil }
func (stubCartStorage) Clear(context.Context) error                   { return nil }

func setupServer(t *testing.T) (*httptest.Server, usecase.CartUC) {
	t.Helper()

	log := logger.NewSlogLogger()
	cartUC := usecase.NewCartUC(context.Background(), stubCartStorage{}, log)

	r := chi.NewRouter()
	router := NewRouter(r, log)
	router.Init(&fakeCatalogUC{catalog: fixtureCatalog()}, cartUC)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return srv, cartUC
}

func getJSON(t *testing.T, url string, out interface{}) *http.Response {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestQueryProducts_Defaults(t *testing.T) {
	srv, _ := setupServer(t)

	var res QueryResponse
	resp := getJSON(t, srv.URL+"/api/v1/products", &res)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Len(t, res.Products, 4)
	assert.Equal(t, 4, res.Pagination.TotalItems)
	assert.Equal(t, 1, res.Pagination.CurrentPage)
	assert.Equal(t, usecase.DefaultPageLimit, res.Pagination.Limit)
}

func TestQueryProducts_FlatParams(t *testing.T) {
	srv, _ := setupServer(t)

	var res QueryResponse
	getJSON(t, srv.URL+"/api/v1/products?category=electronics&sortBy=price&sortOrder=desc", &res)

	require.Len(t, res.Products, 2)
	assert.Equal(t, "2", res.Products[0].ID)
	assert.Equal(t, "1", res.Products[1].ID)
}

func TestQueryProducts_UnparsableParamsFallBack(t *testing.T) {
	srv, _ := setupServer(t)

	var res QueryResponse
	resp := getJSON(t, srv.URL+"/api/v1/products?page=abc&limit=xyz&minPrice=oops", &res)

	// Небитые значения откатываются к значениям по умолчанию, запрос не отклоняется
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, res.Pagination.CurrentPage)
	assert.Equal(t, usecase.DefaultPageLimit, res.Pagination.Limit)
}

func TestQueryProducts_Pagination(t *testing.T) {
	srv, _ := setupServer(t)

	var res QueryResponse
	getJSON(t, srv.URL+"/api/v1/products?limit=3&page=2", &res)

	require.Len(t, res.Products, 1)
	assert.Equal(t, "4", res.Products[0].ID)
	assert.Equal(t, 2, res.Pagination.TotalPages)
}

func TestGetProduct(t *testing.T) {
	srv, _ := setupServer(t)

	var res ProductResponse
	resp := getJSON(t, srv.URL+"/api/v1/products/2", &res)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Smart Watch", res.Name)
	assert.Equal(t, 149.5, res.Price)
}

func TestGetProduct_NotFound(t *testing.T) {
	srv, _ := setupServer(t)

	var res ErrorResponse
	resp := getJSON(t, srv.URL+"/api/v1/products/missing", &res)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestGetCategories(t *testing.T) {
	srv, _ := setupServer(t)

	var categories []string
	getJSON(t, srv.URL+"/api/v1/categories", &categories)

	assert.Equal(t, []string{"clothing", "electronics", "home"}, categories)
}

func postJSON(t *testing.T, url, body string) (*http.Response, *CartResponse) {
	t.Helper()

	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var cart CartResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cart))
	return resp, &cart
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, *CartResponse) {
	t.Helper()

	var reader *bytes.Buffer
	if body == "" {
		reader = bytes.NewBufferString("")
	} else {
		reader = bytes.NewBufferString(body)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var cart CartResponse
	if err := json.NewDecoder(resp.Body).Decode(&cart); err != nil {
		return resp, nil
	}
	return resp, &cart
}

func TestCart_AddAndGet(t *testing.T) {
	srv, _ := setupServer(t)

	resp, cart := postJSON(t, srv.URL+"/api/v1/cart/items",
		`{"id": "1", "name": "Wireless Headphones", "price": 89.99, "inStock": true}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, 89.99, cart.Subtotal)

	// Повторное добавление инкрементирует количество
	_, cart = postJSON(t, srv.URL+"/api/v1/cart/items",
		`{"id": "1", "name": "Wireless Headphones", "price": 89.99, "inStock": true}`)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	var current CartResponse
	getJSON(t, srv.URL+"/api/v1/cart", &current)
	assert.Equal(t, cart.Items, current.Items)
}

func TestCart_AddInvalidBody(t *testing.T) {
	srv, _ := setupServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/cart/items", "application/json",
		bytes.NewBufferString("{broken"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCart_AddNegativePrice(t *testing.T) {
	srv, _ := setupServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/cart/items", "application/json",
		bytes.NewBufferString(`{"id": "1", "price": -5}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCart_AddWithoutIDIsSilentNoop(t *testing.T) {
	srv, _ := setupServer(t)

	resp, cart := postJSON(t, srv.URL+"/api/v1/cart/items", `{"name": "no id", "price": 5}`)

	// Отсутствие идентификатора — no-op машины состояний, не ошибка
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, cart.Items)
}

func TestCart_UpdateQuantity(t *testing.T) {
	srv, _ := setupServer(t)

	postJSON(t, srv.URL+"/api/v1/cart/items", `{"id": "1", "price": 10}`)

	resp, cart := doJSON(t, http.MethodPut, srv.URL+"/api/v1/cart/items/1", `{"quantity": 4}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
	assert.Equal(t, 40.0, cart.Subtotal)

	// Количество меньше 1 игнорируется
	_, cart = doJSON(t, http.MethodPut, srv.URL+"/api/v1/cart/items/1", `{"quantity": 0}`)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
}

func TestCart_RemoveItem(t *testing.T) {
	srv, _ := setupServer(t)

	postJSON(t, srv.URL+"/api/v1/cart/items", `{"id": "1", "price": 10}`)
	postJSON(t, srv.URL+"/api/v1/cart/items", `{"id": "2", "price": 20}`)

	resp, cart := doJSON(t, http.MethodDelete, srv.URL+"/api/v1/cart/items/1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "2", cart.Items[0].Product.ID)
}

func TestCart_Clear(t *testing.T) {
	srv, _ := setupServer(t)

	postJSON(t, srv.URL+"/api/v1/cart/items", `{"id": "1", "price": 10}`)

	resp, cart := doJSON(t, http.MethodDelete, srv.URL+"/api/v1/cart", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Subtotal)
}

func TestCart_DiscountOnWire(t *testing.T) {
	srv, _ := setupServer(t)

	_, cart := postJSON(t, srv.URL+"/api/v1/cart/items", `{"id": "1", "price": 100.01}`)

	assert.Equal(t, 100.01, cart.Subtotal)
	assert.Equal(t, 10.001, cart.Discount)
	assert.Equal(t, 90.009, cart.Total)
}
