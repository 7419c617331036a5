package usecase

import (
	"context"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/domain"
)

type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, product *domain.Product) error
}

// CacheRepository — read-through кэш одиночных товаров. Промах не является ошибкой.
type CacheRepository interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, bool, error)
	SetProduct(ctx context.Context, product *domain.Product) error
}

// CartStorage — долговременный слот корзины под фиксированным ключом.
// Load возвращает пустой срез при отсутствии или повреждении данных.
type CartStorage interface {
	Load(ctx context.Context) []domain.CartItem
	Save(ctx context.Context, items []domain.CartItem) error
	Clear(ctx context.Context) error
}
