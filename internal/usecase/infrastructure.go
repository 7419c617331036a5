package usecase

import (
	"context"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/domain"
)

// CatalogEndpoint — абстрактный каталожный эндпоинт, потребляемый оркестратором выдачи.
type CatalogEndpoint interface {
	QueryCatalog(ctx context.Context, q QueryDescriptor) (*QueryResult, error)
	LookupProduct(ctx context.Context, id string) (*domain.Product, error)
}
