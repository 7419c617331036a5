package redis

import (
	"context"
	"testing"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/cfg"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/domain"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/repository/redis/converter"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/clients"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/logger"
	"github.com/alicebob/miniredis/v2"
	r "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCartKey = "cart"

func setupCartRepo(t *testing.T) (*CartRepo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := &clients.RedisClient{
		Client: r.NewClient(&r.Options{Addr: mr.Addr()}),
	}
	t.Cleanup(func() { client.Client.Close() })

	repo := NewCartRepo(client, converter.NewCartConverter(),
		&cfg.CartCfg{StorageKey: testCartKey}, logger.NewSlogLogger())

	return repo, mr
}

func cartFixture() []domain.CartItem {
	return []domain.CartItem{
		{
			Product: domain.Product{
				ID:       "1",
				Name:     "Wireless Headphones",
				Price:    89.99,
				Category: "electronics",
				InStock:  true,
			},
			Quantity: 2,
		},
		{
			Product: domain.Product{
				ID:       "5",
				Name:     "Denim Jacket",
				Price:    79.99,
				Category: "clothing",
				InStock:  true,
			},
			Quantity: 1,
		},
	}
}

func TestCartRepo_SaveAndLoad(t *testing.T) {
	repo, _ := setupCartRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, cartFixture()))

	items := repo.Load(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].Product.ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 89.99, items[0].Product.Price)
	assert.Equal(t, "5", items[1].Product.ID)
}

func TestCartRepo_LoadMissingKey(t *testing.T) {
	repo, _ := setupCartRepo(t)

	assert.Empty(t, repo.Load(context.Background()))
}

func TestCartRepo_LoadUnreadableRecord(t *testing.T) {
	repo, mr := setupCartRepo(t)
	mr.Set(testCartKey, "{not json")

	// Повреждённая запись молча отбрасывается, ошибки наружу нет
	assert.Empty(t, repo.Load(context.Background()))
}

func TestCartRepo_LoadRejectsMalformedRecords(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"не объект", `[1, 2, 3]`},
		{"items не массив", `{"items": "oops"}`},
		{"позиция без product", `{"items": [{"quantity": 1}]}`},
		{"product без id", `{"items": [{"product": {"name": "x"}, "quantity": 1}]}`},
		{"пустой id", `{"items": [{"product": {"id": ""}, "quantity": 1}]}`},
		{"нецелое количество", `{"items": [{"product": {"id": "1"}, "quantity": 1.5}]}`},
		{"нулевое количество", `{"items": [{"product": {"id": "1"}, "quantity": 0}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mr := setupCartRepo(t)
			mr.Set(testCartKey, tc.data)

			// Одна битая позиция бракует запись целиком
			assert.Empty(t, repo.Load(context.Background()))
		})
	}
}

func TestCartRepo_SaveOverwritesSlot(t *testing.T) {
	repo, _ := setupCartRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, cartFixture()))
	require.NoError(t, repo.Save(ctx, cartFixture()[:1]))

	assert.Len(t, repo.Load(ctx), 1)
}

func TestCartRepo_ClearDeletesKey(t *testing.T) {
	repo, mr := setupCartRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, cartFixture()))
	require.NoError(t, repo.Clear(ctx))

	assert.False(t, mr.Exists(testCartKey))
}

func TestCartRepo_SaveEmptyCartKeepsKey(t *testing.T) {
	repo, mr := setupCartRepo(t)
	ctx := context.Background()

	// Сохранение пустого списка — не удаление ключа
	require.NoError(t, repo.Save(ctx, nil))
	assert.True(t, mr.Exists(testCartKey))
	assert.Empty(t, repo.Load(ctx))
}
