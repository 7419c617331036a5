package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/cfg"
	v1Http "github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/delivery/v1/http"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/repository/pgdb"
	pgdbConv "github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/repository/pgdb/converter"
	redisRepo "github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/repository/redis"
	redisConv "github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/repository/redis/converter"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/usecase"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/clients"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/closer"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/e"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/logger"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// Run собирает зависимости приложения, запускает HTTP-сервер и блокируется
// до сигнала завершения или фатальной ошибки сервера.
func Run(cfg *config.Config, logger logger.Logger) error {
	db, err := initPGDB(logger, cfg)
	if err != nil {
		logger.Errorf(err, "failed to initialize database")
		return err
	}

	prConv := pgdbConv.NewProductConverter()
	productConv := redisConv.NewProductConverter()
	cartConv := redisConv.NewCartConverter()

	productRepo := pgdb.NewProductRepo(db.Pool, prConv)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(redisCtx); err != nil {
		redisCancel()
		logger.Errorf(err, "failed to connect to redis")
		return err
	}
	redisCancel()

	cacheRepo := redisRepo.NewCacheRepo(redisClient, productConv, cfg.Redis, logger)
	cartRepo := redisRepo.NewCartRepo(redisClient, cartConv, cfg.Cart, logger)

	catalogUC := usecase.NewCatalogUC(productRepo, cacheRepo, db.Pool, cfg.Catalog, logger)

	warmCtx, warmCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := catalogUC.WarmUp(warmCtx); err != nil {
		warmCancel()
		logger.Errorf(err, "failed to warm up catalog snapshot")
		return err
	}
	warmCancel()
	catalogUC.StartRefresher()

	cartUC := usecase.NewCartUC(context.Background(), cartRepo, logger)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(catalogUC, cartUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	// === Регистрация закрытия ресурсов (LIFO) ===
	cl := closer.NewCloser(2 * time.Second)
	cl.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})
	cl.Add(func(ctx context.Context) error {
		return catalogUC.StopRefresher(ctx)
	})
	cl.Add(func(ctx context.Context) error {
		return httpSrv.Stop(ctx)
	})

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := cl.Close(shutdownCtx); err != nil {
		logger.Errorf(err, "shutdown finished with errors")
	} else {
		logger.Infof("Application shutdown complete")
	}

	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
