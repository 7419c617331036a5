// Команда seed загружает каталог товаров из JSON-файла в базу данных.
// Товары без идентификатора получают сгенерированный UUID.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	config "github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/cfg"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/domain"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/repository/pgdb"
	pgdbConv "github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/repository/pgdb/converter"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/usecase"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/logger"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/postgres"
	"github.com/google/uuid"
)

type seedProduct struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	InStock     bool    `json:"inStock"`
}

func main() {
	file := flag.String("file", "data/products.json", "путь к JSON-файлу с товарами")
	flag.Parse()

	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		log.Errorf(err, "failed to connect to database")
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(log); err != nil {
		log.Errorf(err, "failed to run migrations")
		os.Exit(1)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Errorf(err, "failed to read seed file %s", *file)
		os.Exit(1)
	}

	var seeds []seedProduct
	if err := json.Unmarshal(raw, &seeds); err != nil {
		log.Errorf(err, "failed to parse seed file %s", *file)
		os.Exit(1)
	}

	products := make([]domain.Product, 0, len(seeds))
	for _, s := range seeds {
		id := s.ID
		if id == "" {
			id = uuid.NewString()
		}
		products = append(products, *domain.NewProduct(
			id, s.Name, s.Description, s.Price, s.Category, s.Image, s.InStock,
		))
	}

	catalogUC := usecase.NewCatalogUC(
		pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverter()),
		nil,
		db.Pool,
		cfg.Catalog,
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	imported, err := catalogUC.ImportProducts(ctx, &usecase.ImportProductsReq{Products: products})
	if err != nil {
		log.Errorf(err, "import failed")
		os.Exit(1)
	}

	log.Infof("imported %d products from %s", imported, *file)
}
