package usecase

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/cfg"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/domain"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/debounce"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/e"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/logger"
)

const feedRequestTimeout = 10 * time.Second

// Feed — оркестратор выдачи каталога. Держит параметры запроса, решает,
// в каком режиме идёт загрузка (инкрементальная подгрузка или постраничный
// просмотр), дебаунсит поисковый ввод и границы цены и выполняет запросы
// к каталожному эндпоинту.
//
// Запросы асинхронны: каждый получает монотонно растущий порядковый номер,
// и применяется только ответ последнего выданного запроса — устаревшие
// ответы отбрасываются.
type Feed struct {
	endpoint CatalogEndpoint
	cfg      *cfg.FeedCfg
	logger   logger.Logger

	mu sync.Mutex

	// Параметры основного дескриптора
	category  string
	minPrice  float64
	maxPrice  float64
	inStock   bool
	sortBy    string
	sortOrder string
	search    string

	// Видимое состояние
	products    []domain.Product
	pagination  PaginationInfo
	suggestions []domain.Product
	lastErr     error
	loading     bool

	// paged взводится при явном выборе страницы и не сбрасывается:
	// возврата в инкрементальный режим внутри сессии нет.
	paged  bool
	closed bool

	seq           uint64 // номер последнего выданного основного запроса
	suggestionSeq uint64 // номер последнего выданного запроса подсказок

	searchTimer   debounce.Timer
	minPriceTimer debounce.Timer
	maxPriceTimer debounce.Timer
}

func NewFeed(endpoint CatalogEndpoint, cfg *cfg.FeedCfg, logger logger.Logger) *Feed {
	return &Feed{
		endpoint:  endpoint,
		cfg:       cfg,
		logger:    logger,
		maxPrice:  math.Inf(1),
		sortOrder: SortOrderAsc,
	}
}

// Refresh запрашивает первую страницу, заменяя видимый набор.
func (f *Feed) Refresh() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchLocked(1, false)
}

// RequestMore — сигнал приближения к концу видимого набора. Срабатывает
// только в инкрементальном режиме, когда нет активной загрузки и есть
// непрочитанные страницы; запросов за последнюю страницу не бывает.
func (f *Feed) RequestMore() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.paged || f.loading || f.closed {
		return
	}
	if f.pagination.CurrentPage >= f.pagination.TotalPages {
		return
	}

	f.fetchLocked(f.pagination.CurrentPage+1, true)
}

// SelectPage — явный выбор страницы. Необратимо переводит выдачу в
// постраничный режим: с этого момента каждая страница заменяет видимый набор.
func (f *Feed) SelectPage(page int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.paged = true
	f.fetchLocked(page, false)
}

// SetSearchText обрабатывает ввод в строке поиска. Непустой текст через
// дебаунс запрашивает подсказки (все категории, лимит подсказок); пустой —
// немедленно, без дебаунса, очищает список подсказок.
func (f *Feed) SetSearchText(text string) {
	if strings.TrimSpace(text) == "" {
		f.searchTimer.Cancel()

		f.mu.Lock()
		f.suggestions = nil
		f.mu.Unlock()
		return
	}

	f.searchTimer.Schedule(f.cfg.SearchDebounce, func() {
		f.fetchSuggestions(text)
	})
}

// CommitSearch фиксирует поисковый текст в основном дескрипторе
// и перезапрашивает первую страницу.
func (f *Feed) CommitSearch(text string) {
	f.searchTimer.Cancel()

	f.mu.Lock()
	defer f.mu.Unlock()

	f.search = text
	f.suggestions = nil
	f.fetchLocked(1, false)
}

// SetCategory устанавливает фильтр категории и перезапрашивает первую страницу.
func (f *Feed) SetCategory(category string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.category = category
	f.fetchLocked(1, false)
}

// SetInStock устанавливает односторонний фильтр наличия.
func (f *Feed) SetInStock(inStock bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inStock = inStock
	f.fetchLocked(1, false)
}

// SetSort устанавливает поле сортировки. Повторный выбор того же поля
// переключает направление; новое поле начинает с asc.
func (f *Feed) SetSort(sortBy string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if sortBy == f.sortBy {
		if f.sortOrder == SortOrderAsc {
			f.sortOrder = SortOrderDesc
		} else {
			f.sortOrder = SortOrderAsc
		}
	} else {
		f.sortBy = sortBy
		f.sortOrder = SortOrderAsc
	}

	f.fetchLocked(1, false)
}

// SetMinPrice фиксирует нижнюю границу цены после независимого дебаунса.
func (f *Feed) SetMinPrice(min float64) {
	f.minPriceTimer.Schedule(f.cfg.PriceDebounce, func() {
		f.mu.Lock()
		defer f.mu.Unlock()

		f.minPrice = min
		f.fetchLocked(1, false)
	})
}

// SetMaxPrice фиксирует верхнюю границу цены после независимого дебаунса.
// Дебаунсы границ независимы: правка одной не задерживает фиксацию другой.
func (f *Feed) SetMaxPrice(max float64) {
	f.maxPriceTimer.Schedule(f.cfg.PriceDebounce, func() {
		f.mu.Lock()
		defer f.mu.Unlock()

		f.maxPrice = max
		f.fetchLocked(1, false)
	})
}

// ClearFilters сбрасывает все фильтры, сортировку и поиск к значениям
// по умолчанию и перезапрашивает первую страницу.
func (f *Feed) ClearFilters() {
	f.searchTimer.Cancel()
	f.minPriceTimer.Cancel()
	f.maxPriceTimer.Cancel()

	f.mu.Lock()
	defer f.mu.Unlock()

	f.category = ""
	f.minPrice = 0
	f.maxPrice = math.Inf(1)
	f.inStock = false
	f.sortBy = ""
	f.sortOrder = SortOrderAsc
	f.search = ""
	f.suggestions = nil

	f.fetchLocked(1, false)
}

// Close отменяет отложенные таймеры и обесценивает незавершённые запросы.
// Обязателен при демонтаже владельца, чтобы таймеры не сработали в пустоту.
func (f *Feed) Close() {
	f.searchTimer.Cancel()
	f.minPriceTimer.Cancel()
	f.maxPriceTimer.Cancel()

	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	f.seq++
	f.suggestionSeq++
}

// Products возвращает копию видимого набора товаров.
func (f *Feed) Products() []domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()

	products := make([]domain.Product, len(f.products))
	copy(products, f.products)
	return products
}

// Suggestions возвращает копию текущего списка поисковых подсказок.
func (f *Feed) Suggestions() []domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()

	suggestions := make([]domain.Product, len(f.suggestions))
	copy(suggestions, f.suggestions)
	return suggestions
}

func (f *Feed) Pagination() PaginationInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pagination
}

func (f *Feed) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Err возвращает последнюю ошибку транспорта; видимый набор при этом
// остаётся нетронутым, и запрос можно повторить.
func (f *Feed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// descriptorLocked собирает основной дескриптор запроса. Вызывается под мьютексом.
func (f *Feed) descriptorLocked(page int) QueryDescriptor {
	return QueryDescriptor{
		Page:      page,
		Limit:     f.cfg.PageLimit,
		Category:  f.category,
		MinPrice:  f.minPrice,
		MaxPrice:  f.maxPrice,
		InStock:   f.inStock,
		Search:    f.search,
		SortBy:    f.sortBy,
		SortOrder: f.sortOrder,
	}
}

// fetchLocked выдаёт асинхронный запрос страницы. Вызывается под мьютексом.
// accumulate определяет политику применения ответа: накопление или замена.
func (f *Feed) fetchLocked(page int, accumulate bool) {
	if f.closed {
		return
	}

	f.seq++
	seq := f.seq
	q := f.descriptorLocked(page)
	f.loading = true

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), feedRequestTimeout)
		defer cancel()

		res, err := f.endpoint.QueryCatalog(ctx, q)

		f.mu.Lock()
		defer f.mu.Unlock()

		if seq != f.seq {
			return // устаревший ответ: параметры запроса уже сменились
		}

		f.loading = false

		if err != nil {
			f.logger.Warnf("catalog query failed: %v", err)
			f.lastErr = e.ErrCatalogUnavailable
			return
		}

		f.lastErr = nil
		if accumulate {
			f.products = append(f.products, res.Products...)
		} else {
			f.products = res.Products
		}
		f.pagination = res.Pagination
	}()
}

// fetchSuggestions запрашивает поисковые подсказки: поиск идёт по всем
// категориям с собственным лимитом, результат заменяет список подсказок.
func (f *Feed) fetchSuggestions(text string) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.suggestionSeq++
	seq := f.suggestionSeq
	q := QueryDescriptor{
		Page:     1,
		Limit:    f.cfg.SuggestionLimit,
		MaxPrice: math.Inf(1),
		Search:   text,
	}
	f.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), feedRequestTimeout)
	defer cancel()

	res, err := f.endpoint.QueryCatalog(ctx, q)

	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.suggestionSeq {
		return
	}

	if err != nil {
		f.logger.Warnf("suggestion query failed: %v", err)
		f.suggestions = nil
		return
	}

	f.suggestions = res.Products
}
