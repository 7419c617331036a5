package usecase

import (
	"sort"
	"strings"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ApplyQuery — чистая функция движка запросов каталога: фильтрация, сортировка
// и пагинация коллекции товаров по дескриптору. Никогда не возвращает ошибку:
// page < 1 приводится к 1, limit <= 0 даёт пустую страницу (TotalPages = 0,
// TotalItems при этом считается), страница за пределами диапазона — пустой срез.
//
// Порядок применения важен: итоговые totals считаются после фильтрации,
// но до пагинации.
func ApplyQuery(catalog []domain.Product, q QueryDescriptor) QueryResult {
	page := q.Page
	if page < 1 {
		page = 1
	}

	filtered := filterProducts(catalog, q)
	sortProducts(filtered, q.SortBy, q.SortOrder)

	totalItems := len(filtered)

	if q.Limit <= 0 {
		return QueryResult{
			Products: []domain.Product{},
			Pagination: PaginationInfo{
				TotalItems:  totalItems,
				TotalPages:  0,
				CurrentPage: page,
				Limit:       q.Limit,
			},
		}
	}

	totalPages := (totalItems + q.Limit - 1) / q.Limit

	start := (page - 1) * q.Limit
	end := start + q.Limit
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	pageItems := make([]domain.Product, end-start)
	copy(pageItems, filtered[start:end])

	return QueryResult{
		Products: pageItems,
		Pagination: PaginationInfo{
			TotalItems:  totalItems,
			TotalPages:  totalPages,
			CurrentPage: page,
			Limit:       q.Limit,
		},
	}
}

// filterProducts применяет фильтры дескриптора в фиксированном порядке:
// категория, диапазон цены, наличие, поисковая подстрока.
func filterProducts(catalog []domain.Product, q QueryDescriptor) []domain.Product {
	search := strings.ToLower(q.Search)

	filtered := make([]domain.Product, 0, len(catalog))
	for _, p := range catalog {
		if q.Category != "" && p.Category != q.Category {
			continue
		}

		if p.Price < q.MinPrice {
			continue
		}
		if q.MaxPrice > 0 && p.Price > q.MaxPrice {
			continue
		}

		// Односторонний фильтр: false не означает «только без наличия»
		if q.InStock && !p.InStock {
			continue
		}

		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}

		filtered = append(filtered, p)
	}

	return filtered
}

// sortProducts стабильно сортирует товары на месте. Неизвестное значение sortBy
// оставляет порядок каталога. desc инвертирует компаратор, а не результат.
func sortProducts(products []domain.Product, sortBy, sortOrder string) {
	var less func(a, b domain.Product) bool

	switch sortBy {
	case SortByPrice:
		less = func(a, b domain.Product) bool { return a.Price < b.Price }
	case SortByName:
		coll := collate.New(language.Und)
		less = func(a, b domain.Product) bool {
			return coll.CompareString(a.Name, b.Name) < 0
		}
	default:
		return
	}

	desc := sortOrder == SortOrderDesc
	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}
