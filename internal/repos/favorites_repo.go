package repos

import "github.com/jmoiron/sqlx"

type FavoritesRepo struct{ db *sqlx.DB }

func NewFavoritesRepo(db *sqlx.DB) *FavoritesRepo { return &FavoritesRepo{db: db} }

func (r *FavoritesRepo) Add(userID, productID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO favorites(user_id, product_id, created_at)
	  VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(user_id, product_id) DO NOTHING
	`, userID, productID)
	return err
}

func (r *FavoritesRepo) Remove(userID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM favorites WHERE user_id=? AND product_id=?`, userID, productID)
	return err
}

type FavoriteRow struct {
	ProductID    string  `db:"product_id"`
	Name         string  `db:"name"`
	Price        float64 `db:"price"`
	MinOrderQty  int     `db:"min_order_qty"`
	LimitedStock bool    `db:"limited_stock"`
	Active       bool    `db:"active"`
}

func (r *FavoritesRepo) List(userID string) ([]FavoriteRow, error) {
	var out []FavoriteRow
	err := r.db.Select(&out, `
	  SELECT p.id AS product_id, p.name, p.price, p.min_order_qty, p.limited_stock, p.active
	  FROM favorites f
	  JOIN products p ON p.id = f.product_id
	  WHERE f.user_id = ?
	  ORDER BY p.name
	`, userID)
	return out, err
}
