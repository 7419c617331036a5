package main

import (
	"os"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/app"
	config "github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/cfg"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/logger"
)

// @title Product Gallery API
// @version 1.0
// @description Каталог товаров с фильтрацией, сортировкой, пагинацией и корзиной
// @host localhost:8080
// @BasePath /api/v1
func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	if err := app.Run(cfg, log); err != nil {
		os.Exit(1)
	}
}
