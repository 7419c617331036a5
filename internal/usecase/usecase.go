package usecase

import (
	"context"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/domain"
)

type CatalogUC interface {
	QueryProducts(ctx context.Context, q QueryDescriptor) (*QueryResult, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	ImportProducts(ctx context.Context, req *ImportProductsReq) (int, error)
}

type CartUC interface {
	Items() []domain.CartItem
	Totals() CartTotals
	AddItem(ctx context.Context, product domain.Product)
	RemoveItem(ctx context.Context, productID string)
	UpdateQuantity(ctx context.Context, productID string, quantity int)
	ClearCart(ctx context.Context)
}
