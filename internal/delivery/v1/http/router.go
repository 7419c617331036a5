package http

import (
	_ "github.com/Shuvo-TD/ecommerce-Product-Gallery/docs" // Импорт сгенерированных файлов
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/usecase"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(catalogUC usecase.CatalogUC, cartUC usecase.CartUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		prHandler := NewProductHandler(catalogUC, r.logger)
		registerProductRoutes(v1, prHandler)

		cartHandler := NewCartHandler(cartUC, r.logger)
		registerCartRoutes(v1, cartHandler)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.queryProducts)
		pr.Get("/{id}", prHandler.getProduct)
	})

	router.Get("/categories", prHandler.getCategories)
}

func registerCartRoutes(router chi.Router, cartHandler *CartHandler) {
	router.Route("/cart", func(cr chi.Router) {
		cr.Get("/", cartHandler.getCart)
		cr.Delete("/", cartHandler.clearCart)
		cr.Post("/items", cartHandler.addItem)
		cr.Put("/items/{id}", cartHandler.updateQuantity)
		cr.Delete("/items/{id}", cartHandler.removeItem)
	})
}
