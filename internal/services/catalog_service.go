package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"jerseystore/internal/domain"
	"jerseystore/internal/repos"
	"jerseystore/internal/validate"
)

type CatalogService struct {
	DB      *sqlx.DB
	Cats    *repos.CategoryRepo
	Prods   *repos.ProductRepo
	Reviews *repos.ReviewRepo
}

func NewCatalogService(db *sqlx.DB, cats *repos.CategoryRepo, prods *repos.ProductRepo, reviews *repos.ReviewRepo) *CatalogService {
	return &CatalogService{DB: db, Cats: cats, Prods: prods, Reviews: reviews}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.Cats.List(ctx)
}

// ListProducts returns the full catalog.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.Prods.List(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.Prods.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, notFound("product", id)
	}
	return p, err
}

// FilterByCategory keeps products of one category; "" and "All" keep everything.
func FilterByCategory(products []domain.Product, category string) []domain.Product {
	if category == "" || strings.EqualFold(category, "All") {
		return products
	}
	out := []domain.Product{}
	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// AppendReview adds a review and returns the updated product. Unknown ids
// fail with ErrNotFound and leave every product untouched.
func (s *CatalogService) AppendReview(ctx context.Context, productID string, rv domain.Review) (domain.Product, error) {
	user, ok := validate.Text(rv.User, 40)
	if !ok {
		return domain.Product{}, invalid("user", "name is required (max 40 characters)")
	}
	if !validate.Rating(rv.Rating) {
		return domain.Product{}, invalid("rating", "rating must be between 1 and 5")
	}
	comment, ok := validate.Comment(rv.Comment, 500)
	if !ok {
		return domain.Product{}, invalid("comment", "comment must be at most 500 characters")
	}
	rv.User, rv.Comment, rv.ProductID = user, comment, productID

	var out domain.Product
	err := repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		prods := s.Prods.WithTx(tx)
		if ok, err := prods.Exists(ctx, productID); err != nil {
			return err
		} else if !ok {
			return notFound("product", productID)
		}
		if _, err := s.Reviews.WithTx(tx).Append(ctx, rv); err != nil {
			return err
		}
		p, err := prods.Get(ctx, productID)
		out = p
		return err
	})
	return out, err
}

// Seed resets the catalog to the fixed jersey list.
func (s *CatalogService) Seed(ctx context.Context) error {
	return repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		return repos.SeedCatalog(ctx, tx)
	})
}
