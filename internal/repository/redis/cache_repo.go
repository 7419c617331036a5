package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/cfg"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/domain"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/repository/redis/converter"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/clients"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/e"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// CacheRepo — read-through кэш одиночных товаров поверх Redis.
type CacheRepo struct {
	client *clients.RedisClient
	conv   *converter.ProductConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv *converter.ProductConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetProduct возвращает закэшированный товар по ID. Промах — не ошибка.
// Запись с несовпадающим ID удаляется и трактуется как промах.
func (c *CacheRepo) GetProduct(ctx context.Context, id string) (*domain.Product, bool, error) {
	data, err := c.client.Client.Get(ctx, c.productKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, false, nil // cache miss
		}
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.ProductRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	if model.ID != id {
		c.logger.Warnf("cache ID mismatch: key_id: %s, model_id: %s", id, model.ID)
		if err := c.client.Client.Del(context.Background(), c.productKey(id)).Err(); err != nil {
			c.logger.Warnf("redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, false, nil // cache miss
	}

	return c.conv.ToEntity(&model), true, nil
}

// SetProduct кэширует товар с TTL из конфигурации.
func (c *CacheRepo) SetProduct(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(c.conv.ToRedisModel(product))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, c.productKey(product.ID), data, c.cfg.ProductTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// productKey возвращает Redis-ключ для одного товара
func (c *CacheRepo) productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}
