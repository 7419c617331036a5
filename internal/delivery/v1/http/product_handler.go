package http

import (
	"net/http"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/usecase"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewProductHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// queryProducts
//
//	@Summary		Запрос каталога товаров
//	@Description	Фильтрация, сортировка и пагинация каталога одним плоским набором параметров
//	@Tags			products
//	@Produce		json
//	@Param			page		query		int		false	"Номер страницы (с 1)"
//	@Param			limit		query		int		false	"Размер страницы"
//	@Param			category	query		string	false	"Точное совпадение категории"
//	@Param			minPrice	query		number	false	"Нижняя граница цены (включительно)"
//	@Param			maxPrice	query		number	false	"Верхняя граница цены (включительно)"
//	@Param			inStock		query		bool	false	"true — только товары в наличии"
//	@Param			search		query		string	false	"Подстрока в имени или описании"
//	@Param			sortBy		query		string	false	"price | name"
//	@Param			sortOrder	query		string	false	"asc | desc"
//	@Success		200			{object}	QueryResponse
//	@Router			/products [get]
func (p *ProductHandler) queryProducts(w http.ResponseWriter, r *http.Request) {
	q := parseQueryDescriptor(r)

	res, err := p.catalogUsecase.QueryProducts(r.Context(), q)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toQueryResponse(res))
}

// getProduct
//
//	@Summary		Товар по идентификатору
//	@Tags			products
//	@Produce		json
//	@Param			id	path		string	true	"Идентификатор товара"
//	@Success		200	{object}	ProductResponse
//	@Failure		404	{object}	ErrorResponse	"Товар не найден"
//	@Router			/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := p.catalogUsecase.GetProduct(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// getCategories
//
//	@Summary		Список категорий каталога
//	@Tags			products
//	@Produce		json
//	@Success		200	{array}	string
//	@Router			/categories [get]
func (p *ProductHandler) getCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := p.catalogUsecase.Categories(r.Context())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, categories)
}
