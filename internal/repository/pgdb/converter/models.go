package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID          string     `db:"id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	Price       float64    `db:"price"`
	Category    string     `db:"category"`
	Image       string     `db:"image"`
	InStock     bool       `db:"in_stock"`
	Position    int64      `db:"position"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}
