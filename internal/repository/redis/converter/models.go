package converter

// ProductRedisModel — JSON-представление товара в Redis; совпадает с
// проводным форматом товара внешних интерфейсов.
type ProductRedisModel struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	InStock     bool    `json:"inStock"`
}

// CartItemRedisModel — позиция корзины в долговременном слоте.
type CartItemRedisModel struct {
	Product  ProductRedisModel `json:"product"`
	Quantity int               `json:"quantity"`
}

// CartRecordRedisModel — значение долговременного слота корзины целиком.
type CartRecordRedisModel struct {
	Items []CartItemRedisModel `json:"items"`
}
