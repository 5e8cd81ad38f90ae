package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"jerseystore/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// List derives categories from the catalog with their product counts.
func (r *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.SelectContext(ctx, &out, `
  SELECT category AS name, COUNT(*) AS count
  FROM products
  GROUP BY category
  ORDER BY category
`)
	return out, err
}
