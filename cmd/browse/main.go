// Команда browse — интерактивный терминальный клиент каталога.
// Работает через HTTP-эндпоинт товаров и показывает работу оркестратора
// выдачи: фильтры, сортировку, подгрузку страниц и поисковые подсказки.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	config "github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/cfg"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/infrastructure/catalogapi"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/usecase"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/logger"
)

func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	client := catalogapi.NewClient(cfg.Feed.EndpointURL, log)
	feed := usecase.NewFeed(client, cfg.Feed, log)
	defer feed.Close()

	feed.Refresh()
	waitIdle(feed)
	printFeed(feed)

	fmt.Println(`Команды: more | page N | search ТЕКСТ | find ТЕКСТ | category ИМЯ | instock | sort price|name | min X | max X | clear | quit`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")

		switch cmd {
		case "quit", "exit":
			return
		case "more":
			feed.RequestMore()
		case "page":
			n, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Println("page N — N должно быть числом")
				continue
			}
			feed.SelectPage(n)
		case "search":
			// Набор текста: подсказки приходят после дебаунса
			feed.SetSearchText(arg)
			time.Sleep(cfg.Feed.SearchDebounce + 200*time.Millisecond)
			waitIdle(feed)
			printSuggestions(feed)
			continue
		case "find":
			feed.CommitSearch(arg)
		case "category":
			feed.SetCategory(arg)
		case "instock":
			feed.SetInStock(true)
		case "sort":
			feed.SetSort(arg)
		case "min":
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				fmt.Println("min X — X должно быть числом")
				continue
			}
			feed.SetMinPrice(v)
			time.Sleep(cfg.Feed.PriceDebounce + 200*time.Millisecond)
		case "max":
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				fmt.Println("max X — X должно быть числом")
				continue
			}
			feed.SetMaxPrice(v)
			time.Sleep(cfg.Feed.PriceDebounce + 200*time.Millisecond)
		case "clear":
			feed.ClearFilters()
		case "":
			continue
		default:
			fmt.Printf("неизвестная команда: %s\n", cmd)
			continue
		}

		waitIdle(feed)
		printFeed(feed)
	}
}

// waitIdle дожидается завершения активной загрузки выдачи.
func waitIdle(feed *usecase.Feed) {
	deadline := time.Now().Add(15 * time.Second)
	for feed.Loading() && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
}

func printFeed(feed *usecase.Feed) {
	if err := feed.Err(); err != nil {
		fmt.Printf("ошибка загрузки: %v\n", err)
	}

	p := feed.Pagination()
	fmt.Printf("-- страница %d из %d (всего %d товаров) --\n", p.CurrentPage, p.TotalPages, p.TotalItems)
	for _, pr := range feed.Products() {
		stock := "в наличии"
		if !pr.InStock {
			stock = "нет в наличии"
		}
		fmt.Printf("  %-8s %-30s %8.2f  [%s] %s\n", pr.ID, pr.Name, pr.Price, pr.Category, stock)
	}
}

func printSuggestions(feed *usecase.Feed) {
	suggestions := feed.Suggestions()
	if len(suggestions) == 0 {
		fmt.Println("подсказок нет")
		return
	}
	fmt.Println("подсказки:")
	for _, pr := range suggestions {
		fmt.Printf("  %s (%s)\n", pr.Name, pr.Category)
	}
}
