package repos

import "github.com/jmoiron/sqlx"

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// ---------- Admin list summary ----------
type OrderSummary struct {
	ID             string  `db:"id"`
	UserID         string  `db:"user_id"`
	DeliveryMethod string  `db:"delivery_method"`
	Total          float64 `db:"total"`
	Status         string  `db:"status"`
	CreatedAt      string  `db:"created_at"`
}

// ---------- Order detail (used by /order/:id) ----------
type OrderRow struct {
	ID             string  `db:"id"`
	UserID         string  `db:"user_id"`
	DeliveryMethod string  `db:"delivery_method"`
	ShipName       string  `db:"ship_name"`
	ShipPhone      string  `db:"ship_phone"`
	ShipAddress    string  `db:"ship_address"`
	ShipCity       string  `db:"ship_city"`
	ShipState      string  `db:"ship_state"`
	ReceiptPath    string  `db:"receipt_path"`
	Subtotal       float64 `db:"subtotal"`
	VAT            float64 `db:"vat"`
	DeliveryFee    float64 `db:"delivery_fee"`
	Total          float64 `db:"total"`
	Status         string  `db:"status"`
	CreatedAt      string  `db:"created_at"`
}

type OrderItemRow struct {
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	Qty       int     `db:"qty"`
	UnitPrice float64 `db:"unit_price"`
	Subtotal  float64 `db:"subtotal"`
}

type ShippingFields struct {
	Name, Phone, Address, City, State string
}

// Create inserts a new order header with its totals breakdown.
func (r *OrderRepo) Create(orderID, userID, deliveryMethod string, ship ShippingFields, receiptPath string, subtotal, vat, deliveryFee, total float64) error {
	_, err := r.db.Exec(`
	  INSERT INTO orders
	    (id, user_id, delivery_method, ship_name, ship_phone, ship_address, ship_city, ship_state,
	     receipt_path, subtotal, vat, delivery_fee, total, status, created_at)
	  VALUES
	    (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'PLACED', CURRENT_TIMESTAMP)
	`, orderID, userID, deliveryMethod, ship.Name, ship.Phone, ship.Address, ship.City, ship.State,
		receiptPath, subtotal, vat, deliveryFee, total)
	return err
}

// InsertItem inserts a single line item.
func (r *OrderRepo) InsertItem(orderID, productID, name string, qty int, unitPrice float64) error {
	_, err := r.db.Exec(`
	  INSERT INTO order_items(order_id, product_id, name, qty, unit_price)
	  VALUES(?, ?, ?, ?, ?)
	`, orderID, productID, name, qty, unitPrice)
	return err
}

func (r *OrderRepo) Get(orderID string) (OrderRow, []OrderItemRow, error) {
	var o OrderRow
	if err := r.db.Get(&o, `
		SELECT id, user_id, delivery_method, ship_name, ship_phone, ship_address, ship_city, ship_state,
		       COALESCE(receipt_path,'') AS receipt_path, subtotal, vat, delivery_fee, total, status, created_at
		FROM orders
		WHERE id = ?
	`, orderID); err != nil {
		return OrderRow{}, nil, err
	}

	var items []OrderItemRow
	if err := r.db.Select(&items, `
		SELECT product_id, name, qty, unit_price, (qty * unit_price) AS subtotal
		FROM order_items
		WHERE order_id = ?
		ORDER BY name
	`, orderID); err != nil {
		return OrderRow{}, nil, err
	}

	return o, items, nil
}

func (r *OrderRepo) ListLatest(limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT id, user_id, delivery_method, total, status, created_at
		FROM orders
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) ListByUser(userID string) ([]OrderSummary, error) {
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT id, user_id, delivery_method, total, status, created_at
		FROM orders
		WHERE user_id = ?
		ORDER BY datetime(created_at) DESC
	`, userID)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	return err
}
