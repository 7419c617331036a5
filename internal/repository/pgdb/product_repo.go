package pgdb

import (
	"context"
	"errors"

	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/domain"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/internal/repository/pgdb/converter"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/e"
	"github.com/Shuvo-TD/ecommerce-Product-Gallery/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий каталога поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv *converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv *converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// List возвращает весь каталог в исходном порядке загрузки (по колонке position) —
// этот порядок служит базой для стабильной сортировки движка запросов.
func (p *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, description, price, category, image, in_stock
		FROM products
		ORDER BY position;
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var models []converter.ProductModel
	for rows.Next() {
		var m converter.ProductModel
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category, &m.Image, &m.InStock); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

// GetByID возвращает товар по идентификатору или e.ErrProductNotFound.
func (p *ProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, name, description, price, category, image, in_stock
		FROM products
		WHERE id = $1;
	`

	var m converter.ProductModel
	err := p.pool.QueryRow(ctx, query, id).
		Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category, &m.Image, &m.InStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&m), nil
}

// Upsert идемпотентно создаёт или обновляет товар по идентификатору.
// Выполняется внутри транзакции, полученной из контекста.
func (p *ProductRepo) Upsert(ctx context.Context, product *domain.Product) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products (id, name, description, price, category, image, in_stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			category = EXCLUDED.category,
			image = EXCLUDED.image,
			in_stock = EXCLUDED.in_stock,
			updated_at = NOW()
		WHERE
			products.name IS DISTINCT FROM EXCLUDED.name OR
			products.description IS DISTINCT FROM EXCLUDED.description OR
			products.price IS DISTINCT FROM EXCLUDED.price OR
			products.category IS DISTINCT FROM EXCLUDED.category OR
			products.image IS DISTINCT FROM EXCLUDED.image OR
			products.in_stock IS DISTINCT FROM EXCLUDED.in_stock;
	`

	_, err = tx.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Category,
		product.Image,
		product.InStock,
	)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
