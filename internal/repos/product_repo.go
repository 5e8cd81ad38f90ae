package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"jerseystore/internal/domain"
)

// ProductRepo reads the catalog aggregate (product, sizes, stock, reviews).
type ProductRepo struct{ db sqlx.ExtContext }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) WithTx(tx *sqlx.Tx) *ProductRepo { return &ProductRepo{db: tx} }

const productCols = `
    id, name, team, price, image, COALESCE(description,'') AS description, category,
    COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at`

type sizeRow struct {
	ProductID string `db:"product_id"`
	Size      string `db:"size"`
}

type stockRow struct {
	ProductID string `db:"product_id"`
	Size      string `db:"size"`
	Qty       int    `db:"qty"`
}

const reviewCols = `id, product_id, user_name, rating, comment, COALESCE(created_at,'') AS created_at`

// List returns every product in catalog order.
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := sqlx.SelectContext(ctx, r.db, &out, `SELECT `+productCols+` FROM products ORDER BY rowid`); err != nil {
		return nil, err
	}
	idx := make(map[string]int, len(out))
	for i := range out {
		initProduct(&out[i])
		idx[out[i].ID] = i
	}

	var sizes []sizeRow
	if err := sqlx.SelectContext(ctx, r.db, &sizes, `SELECT product_id, size FROM product_sizes ORDER BY product_id, position`); err != nil {
		return nil, err
	}
	for _, s := range sizes {
		if i, ok := idx[s.ProductID]; ok {
			out[i].Sizes = append(out[i].Sizes, s.Size)
		}
	}

	var stock []stockRow
	if err := sqlx.SelectContext(ctx, r.db, &stock, `SELECT product_id, size, qty FROM inventory`); err != nil {
		return nil, err
	}
	for _, s := range stock {
		if i, ok := idx[s.ProductID]; ok {
			out[i].Stock[s.Size] = s.Qty
		}
	}

	var reviews []domain.Review
	if err := sqlx.SelectContext(ctx, r.db, &reviews, `SELECT `+reviewCols+` FROM reviews ORDER BY id`); err != nil {
		return nil, err
	}
	for _, rv := range reviews {
		if i, ok := idx[rv.ProductID]; ok {
			out[i].Reviews = append(out[i].Reviews, rv)
		}
	}
	return out, nil
}

// Get returns a hydrated product or sql.ErrNoRows.
func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	if err := sqlx.GetContext(ctx, r.db, &p, `SELECT `+productCols+` FROM products WHERE id = ?`, id); err != nil {
		return domain.Product{}, err
	}
	initProduct(&p)

	if err := sqlx.SelectContext(ctx, r.db, &p.Sizes,
		`SELECT size FROM product_sizes WHERE product_id = ? ORDER BY position`, id); err != nil {
		return domain.Product{}, err
	}
	var stock []stockRow
	if err := sqlx.SelectContext(ctx, r.db, &stock,
		`SELECT product_id, size, qty FROM inventory WHERE product_id = ?`, id); err != nil {
		return domain.Product{}, err
	}
	for _, s := range stock {
		p.Stock[s.Size] = s.Qty
	}
	if err := sqlx.SelectContext(ctx, r.db, &p.Reviews,
		`SELECT `+reviewCols+` FROM reviews WHERE product_id = ? ORDER BY id`, id); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// Insert writes a product with its sizes and stock. Every offered size gets
// an inventory row, zero when the stock map does not mention it.
func (r *ProductRepo) Insert(ctx context.Context, p domain.Product) error {
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO products(id, name, team, price, image, description, category, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, p.ID, p.Name, p.Team, p.Price, p.Image, p.Description, p.Category); err != nil {
		return err
	}
	for pos, size := range p.Sizes {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO product_sizes(product_id, size, position) VALUES(?, ?, ?)`, p.ID, size, pos); err != nil {
			return err
		}
		if _, ok := p.Stock[size]; !ok {
			if _, err := r.db.ExecContext(ctx,
				`INSERT INTO inventory(product_id, size, qty) VALUES(?, ?, 0)`, p.ID, size); err != nil {
				return err
			}
		}
	}
	for size, qty := range p.Stock {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO inventory(product_id, size, qty) VALUES(?, ?, ?)`, p.ID, size, qty); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAll clears the catalog. Child tables are cleared explicitly so the
// result does not depend on the connection's foreign_keys pragma.
func (r *ProductRepo) DeleteAll(ctx context.Context) error {
	for _, table := range []string{"reviews", "inventory", "product_sizes", "products"} {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return err
		}
	}
	return nil
}

func initProduct(p *domain.Product) {
	p.Sizes = []string{}
	p.Stock = map[string]int{}
	p.Reviews = []domain.Review{}
}

func (r *ProductRepo) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	err := sqlx.GetContext(ctx, r.db, &n, `SELECT COUNT(*) FROM products WHERE id = ?`, id)
	return n > 0, err
}
