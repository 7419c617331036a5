package converter

import (
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/domain"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter struct{}

func NewProductConverter() *ProductConverter {
	return &ProductConverter{}
}

func (c *ProductConverter) ToEntity(model *ProductModel) *domain.Product {
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

func (c *ProductConverter) ToArrEntity(models []ProductModel) []domain.Product {
	entities := make([]domain.Product, len(models))
	for i := range models {
		entities[i] = *c.ToEntity(&models[i])
	}
	return entities
}
