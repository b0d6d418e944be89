package domain

type Category struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

// Product is a wholesale catalog entry. Price is the bundle price for one
// full MinOrderQty of the item; the per-piece price is derived from it.
type Product struct {
	ID            string  `db:"id"`
	CategoryID    string  `db:"category_id"`
	Name          string  `db:"name"`
	Description   string  `db:"description"`
	ImagesJSON    string  `db:"images_json"`
	Price         float64 `db:"price"`
	OriginalPrice float64 `db:"original_price"`
	MinOrderQty   int     `db:"min_order_qty"`
	LimitedStock  bool    `db:"limited_stock"`
	Rating        float64 `db:"rating"`
	ReviewCount   int     `db:"review_count"`
	Active        bool    `db:"active"`
	CreatedAt     string  `db:"created_at"`
	UpdatedAt     string  `db:"updated_at"`
}

// UnitPrice derives the per-piece price from the bundle price.
func (p Product) UnitPrice() float64 {
	moq := p.MinOrderQty
	if moq < 1 {
		moq = 1
	}
	return p.Price / float64(moq)
}

// CartItem is one cart line: a snapshot of the product as it was at add
// time plus the normalized quantity. UnitPrice is fixed when the line is
// created and is never re-read from the catalog afterwards.
type CartItem struct {
	ProductID   string  `db:"product_id"`
	Name        string  `db:"name"`
	CategoryID  string  `db:"category_id"`
	ImagesJSON  string  `db:"images_json"`
	Price       float64 `db:"price"`
	MinOrderQty int     `db:"min_order_qty"`
	Quantity    int     `db:"qty"`
	UnitPrice   float64 `db:"unit_price"`
}

func (it CartItem) LineTotal() float64 {
	return float64(it.Quantity) * it.UnitPrice
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LIMITED_STOCK | SOLD_OUT
}
