package services_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jerseystore/internal/domain"
	"jerseystore/internal/pricing"
	"jerseystore/internal/repos"
	"jerseystore/internal/services"
)

func newCatalog(t *testing.T) (*services.CatalogService, *sqlx.DB) {
	db := memdb(t)
	return services.NewCatalogService(db, repos.NewCategoryRepo(db), repos.NewProductRepo(db), repos.NewReviewRepo(db)), db
}

func ratings(p domain.Product) []int {
	out := make([]int, 0, len(p.Reviews))
	for _, r := range p.Reviews {
		out = append(out, r.Rating)
	}
	return out
}

func TestCatalog_ListProducts(t *testing.T) {
	svc, _ := newCatalog(t)
	ps, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, ps, len(repos.SeedProducts))
	assert.Equal(t, "man-city-home-2324", ps[0].ID)

	for _, p := range ps {
		for _, size := range p.Sizes {
			_, ok := p.Stock[size]
			assert.Truef(t, ok, "%s: offered size %s has no stock entry", p.ID, size)
		}
		assert.NotNil(t, p.Reviews)
	}
}

func TestCatalog_FilterByCategory(t *testing.T) {
	svc, _ := newCatalog(t)
	ps, err := svc.ListProducts(context.Background())
	require.NoError(t, err)

	assert.Len(t, services.FilterByCategory(ps, "All"), len(ps))
	assert.Len(t, services.FilterByCategory(ps, ""), len(ps))
	assert.Len(t, services.FilterByCategory(ps, "basketball"), 5)
	assert.Empty(t, services.FilterByCategory(ps, "Hockey"))
}

func TestCatalog_ListCategories(t *testing.T) {
	svc, _ := newCatalog(t)
	cats, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{
		{Name: "Basketball", Count: 5},
		{Name: "Cricket", Count: 7},
		{Name: "Football", Count: 8},
	}, cats)
}

func TestCatalog_AppendReviewMovesAverage(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	p, err := svc.AppendReview(ctx, "brazil", domain.Review{User: "Ana", Rating: 5, Comment: "Great fit"})
	require.NoError(t, err)
	require.Len(t, p.Reviews, 1)
	_, label := pricing.AverageRating(ratings(p))
	assert.Equal(t, "5.0", label)

	p, err = svc.AppendReview(ctx, "brazil", domain.Review{User: "Ravi", Rating: 4})
	require.NoError(t, err)
	require.Len(t, p.Reviews, 2)
	assert.Equal(t, "Ravi", p.Reviews[1].User)
	_, label = pricing.AverageRating(ratings(p))
	assert.Equal(t, "4.5", label)
}

func TestCatalog_AppendReviewUnknownProduct(t *testing.T) {
	svc, db := newCatalog(t)
	_, err := svc.AppendReview(context.Background(), "no-such-kit", domain.Review{User: "Ana", Rating: 5})
	require.ErrorIs(t, err, services.ErrNotFound)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM reviews`))
	assert.Zero(t, n)
}

func TestCatalog_AppendReviewValidation(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	for _, rv := range []domain.Review{
		{User: "Ana", Rating: 0},
		{User: "Ana", Rating: 6},
		{User: "  ", Rating: 3},
	} {
		_, err := svc.AppendReview(ctx, "brazil", rv)
		assert.ErrorIs(t, err, services.ErrValidation, "%+v", rv)
	}
}

func TestCatalog_SeedResetsCatalog(t *testing.T) {
	svc, db := newCatalog(t)
	ctx := context.Background()

	_, err := svc.AppendReview(ctx, "brazil", domain.Review{User: "Ana", Rating: 5})
	require.NoError(t, err)
	_, err = db.Exec(`UPDATE inventory SET qty = 0 WHERE product_id = 'brazil'`)
	require.NoError(t, err)

	require.NoError(t, svc.Seed(ctx))

	p, err := svc.GetProduct(ctx, "brazil")
	require.NoError(t, err)
	assert.Empty(t, p.Reviews)
	assert.Equal(t, 10, p.Stock["M"])

	ps, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, ps, len(repos.SeedProducts))
}

func TestCatalog_GetProductNotFound(t *testing.T) {
	svc, _ := newCatalog(t)
	_, err := svc.GetProduct(context.Background(), "nope")
	assert.ErrorIs(t, err, services.ErrNotFound)
}
