package domain

// Product описывает товар каталога. Записи неизменяемы со стороны движка запросов.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Category    string
	Image       string
	InStock     bool
}

func NewProduct(id, name, description string, price float64, category, image string, inStock bool) *Product {
	return &Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		Image:       image,
		InStock:     inStock,
	}
}
