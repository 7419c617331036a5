package http

import (
	"encoding/json"
	"net/http"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/domain"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/usecase"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/e"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type CartHandler struct {
	cartUsecase usecase.CartUC
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, logger: logger}
}

type addItemRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	InStock     bool    `json:"inStock"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// getCart
//
//	@Summary		Текущее состояние корзины с итогами
//	@Tags			cart
//	@Produce		json
//	@Success		200	{object}	CartResponse
//	@Router			/cart [get]
func (c *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, toCartResponse(c.cartUsecase.Items(), c.cartUsecase.Totals()))
}

// addItem
//
//	@Summary		Добавление товара в корзину
//	@Description	Новая позиция с количеством 1 либо инкремент существующей
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			product	body		addItemRequest	true	"Товар"
//	@Success		200		{object}	CartResponse
//	@Failure		400		{object}	ErrorResponse	"Некорректное тело запроса"
//	@Router			/cart/items [post]
func (c *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrInvalidBody.Error(), err.Error())
		WriteError(w, e.ErrInvalidBody)
		return
	}

	if decimal.NewFromFloat(req.Price).IsNegative() {
		WriteError(w, e.ErrInvalidPrice)
		return
	}

	// Товар без идентификатора — тихий no-op машины состояний, не ошибка
	c.cartUsecase.AddItem(r.Context(), domain.Product{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		InStock:     req.InStock,
	})

	WriteSuccess(w, http.StatusOK, toCartResponse(c.cartUsecase.Items(), c.cartUsecase.Totals()))
}

// updateQuantity
//
//	@Summary		Установка количества позиции
//	@Description	Количество меньше 1 игнорируется: удаление идёт через DELETE
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string					true	"Идентификатор товара"
//	@Param			quantity	body		updateQuantityRequest	true	"Новое количество"
//	@Success		200			{object}	CartResponse
//	@Failure		400			{object}	ErrorResponse	"Некорректное тело запроса"
//	@Router			/cart/items/{id} [put]
func (c *CartHandler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrInvalidBody.Error(), err.Error())
		WriteError(w, e.ErrInvalidBody)
		return
	}

	c.cartUsecase.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), req.Quantity)

	WriteSuccess(w, http.StatusOK, toCartResponse(c.cartUsecase.Items(), c.cartUsecase.Totals()))
}

// removeItem
//
//	@Summary		Удаление позиции из корзины
//	@Tags			cart
//	@Produce		json
//	@Param			id	path		string	true	"Идентификатор товара"
//	@Success		200	{object}	CartResponse
//	@Router			/cart/items/{id} [delete]
func (c *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	c.cartUsecase.RemoveItem(r.Context(), chi.URLParam(r, "id"))

	WriteSuccess(w, http.StatusOK, toCartResponse(c.cartUsecase.Items(), c.cartUsecase.Totals()))
}

// clearCart
//
//	@Summary		Полная очистка корзины
//	@Description	Стирает долговременную запись корзины целиком
//	@Tags			cart
//	@Produce		json
//	@Success		200	{object}	CartResponse
//	@Router			/cart [delete]
func (c *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	c.cartUsecase.ClearCart(r.Context())

	WriteSuccess(w, http.StatusOK, toCartResponse(c.cartUsecase.Items(), c.cartUsecase.Totals()))
}
