package usecase

import (
	"context"
	"sync"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/domain"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/logger"
	"github.com/shopspring/decimal"
)

// Порог и ставка скидки корзины. Скидка начисляется строго выше порога:
// ровно 100.00 скидки не даёт.
var (
	discountThreshold = decimal.NewFromInt(100)
	discountRate      = decimal.NewFromFloat(0.10)
)

// CartUseCase — машина состояний корзины: упорядоченный набор позиций,
// уникальных по идентификатору товара. Каждая мутация, кроме ClearCart,
// синхронизируется в долговременное хранилище; ClearCart удаляет запись целиком.
type CartUseCase struct {
	storage CartStorage
	logger  logger.Logger

	mu    sync.Mutex
	items []domain.CartItem
}

// NewCartUC создаёт корзину, восстанавливая состояние из долговременного
// хранилища. Отсутствующие или повреждённые данные дают пустую корзину.
func NewCartUC(ctx context.Context, storage CartStorage, logger logger.Logger) *CartUseCase {
	return &CartUseCase{
		storage: storage,
		logger:  logger,
		items:   storage.Load(ctx),
	}
}

// Items возвращает копию текущих позиций корзины.
func (c *CartUseCase) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]domain.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// AddItem добавляет товар в корзину: новая позиция с количеством 1 либо
// инкремент существующей. Товар без идентификатора игнорируется.
func (c *CartUseCase) AddItem(ctx context.Context, product domain.Product) {
	if product.ID == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Product.ID == product.ID {
			c.items[i].Quantity++
			c.persist(ctx)
			return
		}
	}

	c.items = append(c.items, domain.CartItem{Product: product, Quantity: 1})
	c.persist(ctx)
}

// RemoveItem удаляет позицию по идентификатору товара, если она есть.
func (c *CartUseCase) RemoveItem(ctx context.Context, productID string) {
	if productID == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	for _, item := range c.items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	c.items = kept

	c.persist(ctx)
}

// UpdateQuantity устанавливает количество позиции. Количество меньше 1 —
// no-op: уменьшение до нуля делается через RemoveItem, не здесь.
func (c *CartUseCase) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if productID == "" || quantity < 1 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = quantity
			c.persist(ctx)
			return
		}
	}
}

// ClearCart опустошает корзину и стирает долговременную запись целиком —
// в отличие от сохранения пустого списка.
func (c *CartUseCase) ClearCart(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil

	if err := c.storage.Clear(ctx); err != nil {
		c.logger.Warnf("cart storage clear failed: %v", err)
	}
}

// Totals вычисляет производные итоги корзины при каждом чтении; значения
// нигде не кэшируются.
func (c *CartUseCase) Totals() CartTotals {
	c.mu.Lock()
	defer c.mu.Unlock()

	subtotal := decimal.Zero
	for _, item := range c.items {
		if item.Product.ID == "" || item.Quantity <= 0 {
			continue // повреждённая позиция даёт нулевой вклад
		}
		price := decimal.NewFromFloat(item.Product.Price)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	discount := decimal.Zero
	if subtotal.GreaterThan(discountThreshold) {
		discount = subtotal.Mul(discountRate)
	}

	return CartTotals{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Sub(discount),
	}
}

// persist сохраняет всё состояние корзины; ошибка хранилища логируется
// и не прерывает вызвавшую мутацию. Вызывается под мьютексом.
func (c *CartUseCase) persist(ctx context.Context) {
	if err := c.storage.Save(ctx, c.items); err != nil {
		c.logger.Warnf("cart storage save failed: %v", err)
	}
}
