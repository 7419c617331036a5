package cfg

import (
	"testing"
	"time"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_USER", "app")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "gallery")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(logger.NewSlogLogger())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Http.Port)
	assert.Equal(t, "localhost", cfg.Db.Host)
	assert.Equal(t, "disable", cfg.Db.SSLMode)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Redis.ProductTTL)
	assert.Equal(t, time.Minute, cfg.Catalog.RefreshInterval)
	assert.Equal(t, "cart", cfg.Cart.StorageKey)
	assert.Equal(t, 8, cfg.Feed.PageLimit)
	assert.Equal(t, 5, cfg.Feed.SuggestionLimit)
	assert.Equal(t, 300*time.Millisecond, cfg.Feed.SearchDebounce)
	assert.Equal(t, 800*time.Millisecond, cfg.Feed.PriceDebounce)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("FEED_PAGE_LIMIT", "12")
	t.Setenv("FEED_SEARCH_DEBOUNCE", "150ms")
	t.Setenv("CATALOG_REFRESH_INTERVAL", "30s")
	t.Setenv("CART_STORAGE_KEY", "cart:v2")

	cfg, err := Load(logger.NewSlogLogger())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Http.Port)
	assert.Equal(t, 12, cfg.Feed.PageLimit)
	assert.Equal(t, 150*time.Millisecond, cfg.Feed.SearchDebounce)
	assert.Equal(t, 30*time.Second, cfg.Catalog.RefreshInterval)
	assert.Equal(t, "cart:v2", cfg.Cart.StorageKey)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("POSTGRES_USER", "")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "gallery")

	_, err := Load(logger.NewSlogLogger())
	assert.Error(t, err)
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FEED_PRICE_DEBOUNCE", "not-a-duration")

	_, err := Load(logger.NewSlogLogger())
	assert.Error(t, err)
}
