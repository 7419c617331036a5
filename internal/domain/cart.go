package domain

// CartItem — позиция корзины: товар и его количество (всегда >= 1).
type CartItem struct {
	Product  Product
	Quantity int
}
