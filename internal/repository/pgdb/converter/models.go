package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID         int64      `db:"id"`
	Name       string     `db:"product_name"`
	SKU        string     `db:"sku"`
	PriceCents int64      `db:"price_cents"`
	CategoryID int64      `db:"category_id"`
	Status     string     `db:"status"`
	Photo      *string    `db:"photo"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at"`
}

// ProductInfoModel — строка products, соединённая с названием категории.
type ProductInfoModel struct {
	ProductModel
	CategoryName string `db:"category_name"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}
