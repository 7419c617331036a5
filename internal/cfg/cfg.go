package cfg

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/e"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/logger"
	"github.com/jimlawless/whereami"
)

type Config struct {
	Http    *HTTPConfig
	Db      *PGDBCfg
	Redis   *RedisCfg
	Catalog *CatalogCfg
	Cart    *CartCfg
	Feed    *FeedCfg
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	ProductTTL  time.Duration // TTL кэша одиночных товаров
}

type CatalogCfg struct {
	RefreshInterval time.Duration // базовый интервал обновления снапшота каталога
	JitterFactor    float64       // коэффициент джиттера интервала обновления
}

type CartCfg struct {
	StorageKey string // фиксированный ключ долговременного слота корзины
}

type FeedCfg struct {
	PageLimit       int           // размер страницы основной выдачи
	SuggestionLimit int           // размер списка поисковых подсказок
	SearchDebounce  time.Duration // дебаунс поисковых подсказок
	PriceDebounce   time.Duration // дебаунс числовых границ цены
	EndpointURL     string        // адрес каталожного эндпоинта для cmd/browse
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	db, err := loadPGDBCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	catalog, err := loadCatalogCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	feed, err := loadFeedCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:    http,
		Db:      db,
		Redis:   redis,
		Catalog: catalog,
		Cart:    loadCartCfg(),
		Feed:    feed,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  getEnvOrDefault("POSTGRES_SSL_MODE", defaultSSLMode),
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr       = "localhost:6379"
		defaultDB         = 0
		defaultRetries    = 3
		defaultTimeout    = 3 * time.Second
		defaultProductTTL = 5 * time.Minute
	)

	db, err := parseIntEnv("REDIS_DB", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB")
		return nil, err
	}

	maxRetries, err := parseIntEnv("REDIS_MAX_RETRIES", defaultRetries)
	if err != nil {
		log.Errorf(err, "invalid REDIS_MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("REDIS_DIAL_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DIAL_TIMEOUT")
		return nil, err
	}

	timeout, err := parseDurationEnv("REDIS_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid REDIS_TIMEOUT")
		return nil, err
	}

	productTTL, err := parseDurationEnv("REDIS_PRODUCT_TTL", defaultProductTTL)
	if err != nil {
		log.Errorf(err, "invalid REDIS_PRODUCT_TTL")
		return nil, err
	}

	return &RedisCfg{
		Addr:        getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		ProductTTL:  productTTL,
	}, nil
}

func loadCatalogCfg(log logger.Logger) (*CatalogCfg, error) {
	const (
		defaultRefreshInterval = 1 * time.Minute
		defaultJitterFactor    = 0.5
	)

	refresh, err := parseDurationEnv("CATALOG_REFRESH_INTERVAL", defaultRefreshInterval)
	if err != nil {
		log.Errorf(err, "invalid CATALOG_REFRESH_INTERVAL")
		return nil, err
	}

	jitterFactor, err := parseFloatEnv("CATALOG_REFRESH_JITTER", defaultJitterFactor)
	if err != nil {
		log.Errorf(err, "invalid CATALOG_REFRESH_JITTER")
		return nil, err
	}

	return &CatalogCfg{
		RefreshInterval: refresh,
		JitterFactor:    jitterFactor,
	}, nil
}

func loadCartCfg() *CartCfg {
	const defaultStorageKey = "cart"

	return &CartCfg{
		StorageKey: getEnvOrDefault("CART_STORAGE_KEY", defaultStorageKey),
	}
}

func loadFeedCfg(log logger.Logger) (*FeedCfg, error) {
	const (
		defaultPageLimit       = 8
		defaultSuggestionLimit = 5
		defaultSearchDebounce  = 300 * time.Millisecond
		defaultPriceDebounce   = 800 * time.Millisecond
		defaultEndpointURL     = "http://localhost:8080"
	)

	pageLimit, err := parseIntEnv("FEED_PAGE_LIMIT", defaultPageLimit)
	if err != nil {
		log.Errorf(err, "invalid FEED_PAGE_LIMIT")
		return nil, err
	}

	suggestionLimit, err := parseIntEnv("FEED_SUGGESTION_LIMIT", defaultSuggestionLimit)
	if err != nil {
		log.Errorf(err, "invalid FEED_SUGGESTION_LIMIT")
		return nil, err
	}

	searchDebounce, err := parseDurationEnv("FEED_SEARCH_DEBOUNCE", defaultSearchDebounce)
	if err != nil {
		log.Errorf(err, "invalid FEED_SEARCH_DEBOUNCE")
		return nil, err
	}

	priceDebounce, err := parseDurationEnv("FEED_PRICE_DEBOUNCE", defaultPriceDebounce)
	if err != nil {
		log.Errorf(err, "invalid FEED_PRICE_DEBOUNCE")
		return nil, err
	}

	return &FeedCfg{
		PageLimit:       pageLimit,
		SuggestionLimit: suggestionLimit,
		SearchDebounce:  searchDebounce,
		PriceDebounce:   priceDebounce,
		EndpointURL:     getEnvOrDefault("FEED_ENDPOINT_URL", defaultEndpointURL),
	}, nil
}

func getEnv(key string) string {
	return os.Getenv(key)
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseIntEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func parseFloatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	return strconv.ParseFloat(v, 64)
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	return time.ParseDuration(v)
}
