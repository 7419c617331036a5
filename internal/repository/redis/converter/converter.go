package converter

import (
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/domain"
)

// ProductConverter преобразует сущности Product между domain и Redis-моделью.
type ProductConverter struct{}

func NewProductConverter() *ProductConverter {
	return &ProductConverter{}
}

func (c *ProductConverter) ToRedisModel(entity *domain.Product) *ProductRedisModel {
	return &ProductRedisModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		Price:       entity.Price,
		Category:    entity.Category,
		Image:       entity.Image,
		InStock:     entity.InStock,
	}
}

func (c *ProductConverter) ToEntity(model *ProductRedisModel) *domain.Product {
	return &domain.Product{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Price:       model.Price,
		Category:    model.Category,
		Image:       model.Image,
		InStock:     model.InStock,
	}
}

// CartConverter преобразует состояние корзины между domain и Redis-моделью.
type CartConverter struct {
	product *ProductConverter
}

func NewCartConverter() *CartConverter {
	return &CartConverter{product: NewProductConverter()}
}

func (c *CartConverter) ToRedisRecord(items []domain.CartItem) *CartRecordRedisModel {
	models := make([]CartItemRedisModel, len(items))
	for i, item := range items {
		models[i] = CartItemRedisModel{
			Product:  *c.product.ToRedisModel(&item.Product),
			Quantity: item.Quantity,
		}
	}
	return &CartRecordRedisModel{Items: models}
}

func (c *CartConverter) ToArrEntity(record *CartRecordRedisModel) []domain.CartItem {
	items := make([]domain.CartItem, len(record.Items))
	for i, m := range record.Items {
		items[i] = domain.CartItem{
			Product:  *c.product.ToEntity(&m.Product),
			Quantity: m.Quantity,
		}
	}
	return items
}
