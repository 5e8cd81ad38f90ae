package repos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type InventoryRepo struct{ db sqlx.ExtContext }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

func (r *InventoryRepo) WithTx(tx *sqlx.Tx) *InventoryRepo { return &InventoryRepo{db: tx} }

// Row used by the admin stock export
type InventoryRow struct {
	ProductID string `db:"product_id"`
	Name      string `db:"name"`
	Size      string `db:"size"`
	Qty       int    `db:"qty"`
}

// ListAll returns every stock row with its product name.
func (r *InventoryRepo) ListAll(ctx context.Context) ([]InventoryRow, error) {
	var rows []InventoryRow
	err := sqlx.SelectContext(ctx, r.db, &rows, `
		SELECT i.product_id, p.name, i.size, i.qty
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		ORDER BY p.rowid, i.size
	`)
	return rows, err
}

// Qty returns current stock for a product size.
// If no row exists, it returns sql.ErrNoRows.
func (r *InventoryRepo) Qty(ctx context.Context, productID, size string) (int, error) {
	var qty int
	err := sqlx.GetContext(ctx, r.db, &qty, `
		SELECT qty FROM inventory
		WHERE product_id = ? AND size = ?
	`, productID, size)
	if err != nil {
		return 0, err
	}
	return qty, nil
}

// Decrement subtracts "by" units only if enough stock exists, so the check and
// the write are one statement.
func (r *InventoryRepo) Decrement(ctx context.Context, productID, size string, by int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE inventory
		SET qty = qty - ?, updated_at = CURRENT_TIMESTAMP
		WHERE product_id = ? AND size = ? AND qty >= ?
	`, by, productID, size, by)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s (%s)", ErrShortStock, productID, size)
	}
	return nil
}

// UpsertQty sets qty for (productID, size) creating the row if needed.
func (r *InventoryRepo) UpsertQty(ctx context.Context, productID, size string, qty int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory(product_id, size, qty, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(product_id, size) DO UPDATE SET qty = excluded.qty, updated_at = excluded.updated_at
	`, productID, size, qty)
	return err
}
