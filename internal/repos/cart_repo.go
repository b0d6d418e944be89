package repos

import (
	"github.com/jmoiron/sqlx"

	"modahaus/internal/domain"
)

// CartRepo is the per-user cart store. One row per (user_id, product_id);
// the row carries the quantity, the unit price fixed at add time, and a
// snapshot of the product so a cart survives catalog edits.
type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

func (r *CartRepo) ListByUser(userID string) ([]domain.CartItem, error) {
	items := []domain.CartItem{}
	err := r.db.Select(&items, `
	  SELECT product_id, name, category_id, images_json, price, min_order_qty, qty, unit_price
	  FROM cart_items
	  WHERE user_id = ?
	  ORDER BY created_at
	`, userID)
	return items, err
}

// Upsert writes the full line state. Quantity arithmetic belongs to the
// cart service; on conflict the stored quantity is replaced, not added.
func (r *CartRepo) Upsert(userID string, it domain.CartItem) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(user_id,product_id,qty,unit_price,name,category_id,images_json,price,min_order_qty,created_at,updated_at)
		VALUES(?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)
		ON CONFLICT(user_id,product_id) DO UPDATE
		SET qty = excluded.qty, unit_price = excluded.unit_price, updated_at = CURRENT_TIMESTAMP
	`, userID, it.ProductID, it.Quantity, it.UnitPrice, it.Name, it.CategoryID, it.ImagesJSON, it.Price, it.MinOrderQty)
	return err
}

func (r *CartRepo) DeleteOne(userID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = ? AND product_id = ?`, userID, productID)
	return err
}

func (r *CartRepo) DeleteAll(userID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = ?`, userID)
	return err
}
