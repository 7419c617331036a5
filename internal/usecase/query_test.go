package usecase

import (
	"math"
	"testing"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Wireless Headphones", Description: "Noise cancelling", Price: 89.99, Category: "electronics", InStock: true},
		{ID: "2", Name: "Smart Watch", Description: "Fitness tracker", Price: 149.5, Category: "electronics", InStock: true},
		{ID: "3", Name: "Mechanical Keyboard", Description: "Hot-swappable switches", Price: 119, Category: "electronics", InStock: false},
		{ID: "4", Name: "Cotton T-Shirt", Description: "Organic cotton", Price: 19.99, Category: "clothing", InStock: true},
		{ID: "5", Name: "Denim Jacket", Description: "Vintage wash", Price: 79.99, Category: "clothing", InStock: true},
		{ID: "6", Name: "Running Shoes", Description: "Lightweight cushioning", Price: 109.95, Category: "clothing", InStock: false},
		{ID: "7", Name: "Desk Lamp", Description: "Adjustable LED", Price: 54.99, Category: "home", InStock: true},
	}
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApplyQuery_Defaults(t *testing.T) {
	res := ApplyQuery(testCatalog(), NewQueryDescriptor())

	assert.Equal(t, 7, res.Pagination.TotalItems)
	assert.Equal(t, 1, res.Pagination.TotalPages)
	assert.Equal(t, 1, res.Pagination.CurrentPage)
	// Без sortBy сохраняется порядок каталога
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7"}, ids(res.Products))
}

func TestApplyQuery_CategoryFilter(t *testing.T) {
	q := NewQueryDescriptor()
	q.Category = "clothing"

	res := ApplyQuery(testCatalog(), q)

	assert.Equal(t, 3, res.Pagination.TotalItems)
	assert.Equal(t, []string{"4", "5", "6"}, ids(res.Products))
}

func TestApplyQuery_PriceBounds(t *testing.T) {
	q := NewQueryDescriptor()
	q.MinPrice = 50
	q.MaxPrice = 120

	res := ApplyQuery(testCatalog(), q)

	// Границы включительные: 119 входит, 149.5 и 19.99 — нет
	assert.Equal(t, []string{"1", "3", "5", "6", "7"}, ids(res.Products))
}

func TestApplyQuery_MaxPriceUnbounded(t *testing.T) {
	q := NewQueryDescriptor()
	q.MaxPrice = 0 // нулевой или отрицательный потолок трактуется как отсутствие

	res := ApplyQuery(testCatalog(), q)
	assert.Equal(t, 7, res.Pagination.TotalItems)

	q.MaxPrice = math.Inf(1)
	res = ApplyQuery(testCatalog(), q)
	assert.Equal(t, 7, res.Pagination.TotalItems)
}

func TestApplyQuery_InStockOneWay(t *testing.T) {
	q := NewQueryDescriptor()
	q.InStock = true

	res := ApplyQuery(testCatalog(), q)
	assert.Equal(t, []string{"1", "2", "4", "5", "7"}, ids(res.Products))

	// false — не фильтр «только без наличия», а отсутствие фильтра
	q.InStock = false
	res = ApplyQuery(testCatalog(), q)
	assert.Equal(t, 7, res.Pagination.TotalItems)
}

func TestApplyQuery_SearchMatchesNameAndDescription(t *testing.T) {
	q := NewQueryDescriptor()
	q.Search = "COTTON" // регистронезависимый поиск

	res := ApplyQuery(testCatalog(), q)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "4", res.Products[0].ID)

	q.Search = "cushioning" // совпадение по описанию
	res = ApplyQuery(testCatalog(), q)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "6", res.Products[0].ID)
}

func TestApplyQuery_SortByPriceAsc(t *testing.T) {
	q := NewQueryDescriptor()
	q.SortBy = SortByPrice

	res := ApplyQuery(testCatalog(), q)
	assert.Equal(t, []string{"4", "7", "5", "1", "6", "3", "2"}, ids(res.Products))
}

func TestApplyQuery_SortDescMirrorsAsc(t *testing.T) {
	asc := NewQueryDescriptor()
	asc.SortBy = SortByPrice

	desc := asc
	desc.SortOrder = SortOrderDesc

	ascIDs := ids(ApplyQuery(testCatalog(), asc).Products)
	descIDs := ids(ApplyQuery(testCatalog(), desc).Products)

	require.Equal(t, len(ascIDs), len(descIDs))
	for i := range ascIDs {
		assert.Equal(t, ascIDs[i], descIDs[len(descIDs)-1-i])
	}
}

func TestApplyQuery_SortByName(t *testing.T) {
	q := NewQueryDescriptor()
	q.SortBy = SortByName

	res := ApplyQuery(testCatalog(), q)
	assert.Equal(t, []string{"4", "5", "7", "3", "6", "2", "1"}, ids(res.Products))
}

func TestApplyQuery_StableSortKeepsCatalogOrderOnTies(t *testing.T) {
	catalog := []domain.Product{
		{ID: "a", Name: "First", Price: 10},
		{ID: "b", Name: "Second", Price: 10},
		{ID: "c", Name: "Third", Price: 10},
	}

	q := NewQueryDescriptor()
	q.SortBy = SortByPrice

	res := ApplyQuery(catalog, q)
	assert.Equal(t, []string{"a", "b", "c"}, ids(res.Products))

	q.SortOrder = SortOrderDesc
	res = ApplyQuery(catalog, q)
	// Инверсия компаратора, а не результата: равные элементы не переворачиваются
	assert.Equal(t, []string{"a", "b", "c"}, ids(res.Products))
}

func TestApplyQuery_UnknownSortByKeepsOrder(t *testing.T) {
	q := NewQueryDescriptor()
	q.SortBy = "rating"
	q.SortOrder = SortOrderDesc

	res := ApplyQuery(testCatalog(), q)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7"}, ids(res.Products))
}

func TestApplyQuery_Pagination(t *testing.T) {
	q := NewQueryDescriptor()
	q.Limit = 3

	first := ApplyQuery(testCatalog(), q)
	assert.Equal(t, 3, first.Pagination.TotalPages)
	assert.Equal(t, []string{"1", "2", "3"}, ids(first.Products))

	q.Page = 3
	last := ApplyQuery(testCatalog(), q)
	assert.Equal(t, []string{"7"}, ids(last.Products))

	// TotalItems не зависит от страницы
	assert.Equal(t, first.Pagination.TotalItems, last.Pagination.TotalItems)
}

func TestApplyQuery_PagesPartitionFilteredSet(t *testing.T) {
	q := NewQueryDescriptor()
	q.Limit = 2
	q.Category = "electronics"

	seen := make([]string, 0, 3)
	res := ApplyQuery(testCatalog(), q)
	for page := 1; page <= res.Pagination.TotalPages; page++ {
		q.Page = page
		seen = append(seen, ids(ApplyQuery(testCatalog(), q).Products)...)
	}

	assert.Equal(t, []string{"1", "2", "3"}, seen)
}

func TestApplyQuery_PageBeyondRange(t *testing.T) {
	q := NewQueryDescriptor()
	q.Limit = 3
	q.Page = 99

	res := ApplyQuery(testCatalog(), q)
	assert.Empty(t, res.Products)
	assert.Equal(t, 7, res.Pagination.TotalItems)
	assert.Equal(t, 99, res.Pagination.CurrentPage)
}

func TestApplyQuery_PageBelowOneClamps(t *testing.T) {
	q := NewQueryDescriptor()
	q.Page = -5

	res := ApplyQuery(testCatalog(), q)
	assert.Equal(t, 1, res.Pagination.CurrentPage)
	assert.Len(t, res.Products, 7)
}

func TestApplyQuery_ZeroLimit(t *testing.T) {
	q := NewQueryDescriptor()
	q.Limit = 0

	res := ApplyQuery(testCatalog(), q)
	assert.Empty(t, res.Products)
	assert.Equal(t, 0, res.Pagination.TotalPages)
	// Итог по фильтру считается даже при пустой странице
	assert.Equal(t, 7, res.Pagination.TotalItems)
}

func TestApplyQuery_DoesNotMutateCatalog(t *testing.T) {
	catalog := testCatalog()

	q := NewQueryDescriptor()
	q.SortBy = SortByPrice
	q.SortOrder = SortOrderDesc
	ApplyQuery(catalog, q)

	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7"}, ids(catalog))
}

func TestApplyQuery_CombinedFilters(t *testing.T) {
	q := NewQueryDescriptor()
	q.Category = "electronics"
	q.InStock = true
	q.SortBy = SortByPrice
	q.SortOrder = SortOrderDesc

	res := ApplyQuery(testCatalog(), q)
	assert.Equal(t, []string{"2", "1"}, ids(res.Products))
}
