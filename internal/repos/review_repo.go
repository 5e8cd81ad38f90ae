package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"jerseystore/internal/domain"
)

type ReviewRepo struct{ db sqlx.ExtContext }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) WithTx(tx *sqlx.Tx) *ReviewRepo { return &ReviewRepo{db: tx} }

func (r *ReviewRepo) Append(ctx context.Context, rv domain.Review) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO reviews(product_id, user_name, rating, comment, created_at)
		VALUES(?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, rv.ProductID, rv.User, rv.Rating, rv.Comment)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
