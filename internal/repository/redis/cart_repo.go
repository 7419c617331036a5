package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/cfg"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/domain"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/repository/redis/converter"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/clients"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/e"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// cartSchema описывает допустимую форму долговременной записи корзины.
// Любое структурное нарушение — не объект, items не массив, позиция без
// product.id или с нецелым/неположительным количеством — бракует запись целиком.
const cartSchema = `{
	"type": "object",
	"required": ["items"],
	"properties": {
		"items": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["product", "quantity"],
				"properties": {
					"product": {
						"type": "object",
						"required": ["id"],
						"properties": {
							"id": {"type": "string", "minLength": 1}
						}
					},
					"quantity": {"type": "integer", "minimum": 1}
				}
			}
		}
	}
}`

// CartRepo хранит состояние корзины в Redis под фиксированным ключом.
type CartRepo struct {
	client *clients.RedisClient
	conv   *converter.CartConverter
	cfg    *cfg.CartCfg
	schema *jsonschema.Schema
	logger logger.Logger
}

func NewCartRepo(client *clients.RedisClient, conv *converter.CartConverter,
	cfg *cfg.CartCfg, logger logger.Logger) *CartRepo {
	// Схема — константа пакета, ошибка компиляции невозможна в рантайме
	schema := jsonschema.MustCompileString("cart_schema.json", cartSchema)

	return &CartRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		schema: schema,
		logger: logger,
	}
}

// Load читает долговременную запись корзины. Отсутствующие, нечитаемые или
// не прошедшие валидацию данные молча отбрасываются: возвращается пустая
// корзина, ошибка наружу не поднимается.
func (c *CartRepo) Load(ctx context.Context) []domain.CartItem {
	data, err := c.client.Client.Get(ctx, c.cfg.StorageKey).Bytes()
	if err != nil {
		if !errors.Is(err, r.Nil) {
			c.logger.Warnf("cart slot read failed: %v", err)
		}
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		c.logger.Warnf("discarding unreadable cart record: %v", err)
		return nil
	}

	if err := c.schema.Validate(raw); err != nil {
		c.logger.Warnf("discarding malformed cart record: %v", err)
		return nil
	}

	var record converter.CartRecordRedisModel
	if err := json.Unmarshal(data, &record); err != nil {
		c.logger.Warnf("discarding unreadable cart record: %v", err)
		return nil
	}

	return c.conv.ToArrEntity(&record)
}

// Save сериализует всё состояние корзины и записывает его в слот без TTL.
func (c *CartRepo) Save(ctx context.Context, items []domain.CartItem) error {
	record := c.conv.ToRedisRecord(items)

	data, err := json.Marshal(record)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, c.cfg.StorageKey, data, 0).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Clear удаляет ключ слота целиком — это не то же самое, что запись пустого списка.
func (c *CartRepo) Clear(ctx context.Context) error {
	if err := c.client.Client.Del(ctx, c.cfg.StorageKey).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
