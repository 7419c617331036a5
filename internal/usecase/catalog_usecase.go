package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/cfg"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/domain"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/e"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/jitter"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jimlawless/whereami"
	"golang.org/x/sync/singleflight"
)

// CatalogUseCase реализует бизнес-логику каталога: запросы к снапшоту,
// поиск товара по идентификатору с кэшем и импорт партии товаров.
type CatalogUseCase struct {
	productRepo ProductRepository
	cacheRepo   CacheRepository
	dbPool      transaction.Transactional
	cfg         *cfg.CatalogCfg
	logger      logger.Logger

	mu       sync.RWMutex
	snapshot []domain.Product

	sfg  singleflight.Group
	stop chan struct{}
	done chan struct{}
}

func NewCatalogUC(
	productRepo ProductRepository,
	cacheRepo CacheRepository,
	dbPool transaction.Transactional,
	cfg *cfg.CatalogCfg,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
		dbPool:      dbPool,
		cfg:         cfg,
		logger:      logger,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// WarmUp загружает начальный снапшот каталога из репозитория.
func (c *CatalogUseCase) WarmUp(ctx context.Context) error {
	const op = "CatalogUseCase.WarmUp"

	if err := c.refreshSnapshot(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// StartRefresher запускает фоновое обновление снапшота каталога с джиттером
// интервала. При последовательных неудачах интервал растёт экспоненциально.
func (c *CatalogUseCase) StartRefresher() {
	go func() {
		defer close(c.done)

		failures := 0
		for {
			interval := jitter.Duration(c.cfg.RefreshInterval, c.cfg.JitterFactor)
			if failures > 0 {
				interval = jitter.ExponentialBackoff(
					c.cfg.RefreshInterval, 10*c.cfg.RefreshInterval, failures, jitter.DefaultJitter,
				)
			}

			select {
			case <-c.stop:
				return
			case <-time.After(interval):
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			err := c.refreshSnapshot(ctx)
			cancel()

			if err != nil {
				failures++
				c.logger.Warnf("catalog snapshot refresh failed (attempt %d): %v", failures, err)
				continue
			}
			failures = 0
		}
	}()
}

// StopRefresher останавливает фоновое обновление и дожидается завершения.
func (c *CatalogUseCase) StopRefresher(ctx context.Context) error {
	close(c.stop)

	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *CatalogUseCase) refreshSnapshot(ctx context.Context) error {
	products, err := c.productRepo.List(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	c.mu.Lock()
	c.snapshot = products
	c.mu.Unlock()

	return nil
}

// QueryProducts выполняет дескриптор запроса над текущим снапшотом каталога.
func (c *CatalogUseCase) QueryProducts(ctx context.Context, q QueryDescriptor) (*QueryResult, error) {
	c.mu.RLock()
	snapshot := c.snapshot
	c.mu.RUnlock()

	res := ApplyQuery(snapshot, q)
	return &res, nil
}

// GetProduct возвращает товар по идентификатору, сначала из кэша,
// при промахе — из репозитория через singleflight.
// Возвращает e.ErrProductNotFound при отсутствии товара.
func (c *CatalogUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	const op = "CatalogUseCase.GetProduct"

	product, found, err := c.cacheRepo.GetProduct(ctx, id)
	if err != nil {
		c.logger.Warnf("product cache read failed: %v", err)
	}
	if found {
		return product, nil
	}

	v, err, _ := c.sfg.Do(id, func() (interface{}, error) {
		p, err := c.productRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if cacheErr := c.cacheRepo.SetProduct(ctx, p); cacheErr != nil {
			c.logger.Warnf("product cache write failed: %v", cacheErr)
		}

		return p, nil
	})
	if err != nil {
		if errors.Is(err, e.ErrProductNotFound) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(op, err)
	}

	return v.(*domain.Product), nil
}

// Categories возвращает отсортированный список уникальных категорий каталога.
func (c *CatalogUseCase) Categories(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	snapshot := c.snapshot
	c.mu.RUnlock()

	seen := make(map[string]struct{}, len(snapshot))
	categories := make([]string, 0)
	for _, p := range snapshot {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}

	sort.Strings(categories)
	return categories, nil
}

// ImportProducts сохраняет партию товаров в каталог в одной транзакции
// и обновляет снапшот. Возвращает количество обработанных товаров.
func (c *CatalogUseCase) ImportProducts(ctx context.Context, req *ImportProductsReq) (int, error) {
	const op = "CatalogUseCase.ImportProducts"

	if len(req.Products) == 0 {
		return 0, nil
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return 0, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()

	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	for i := range req.Products {
		if err = c.productRepo.Upsert(ctx, &req.Products[i]); err != nil {
			return 0, e.Wrap(op, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, e.Wrap(op, err)
	}

	if refreshErr := c.refreshSnapshot(context.WithoutCancel(ctx)); refreshErr != nil {
		c.logger.Warnf("snapshot refresh after import failed: %v", refreshErr)
	}

	return len(req.Products), nil
}
