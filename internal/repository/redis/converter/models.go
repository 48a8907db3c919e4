package converter

// ProductInfoRedisModel — представление продукта в кэше Redis.
type ProductInfoRedisModel struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	PriceCents   int64   `json:"price_cents"`
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Status       string  `json:"status"`
	Photo        *string `json:"photo,omitempty"`
}
