package services_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"jerseystore/internal/domain"
	"jerseystore/internal/repos"
)

// memdb opens a seeded in-memory catalog.
func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, repos.SeedIfEmpty(context.Background(), db))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// addProduct inserts a test-only product outside the seed list.
func addProduct(t *testing.T, db *sqlx.DB, p domain.Product) {
	t.Helper()
	require.NoError(t, repos.NewProductRepo(db).Insert(context.Background(), p))
}

func qty(t *testing.T, db *sqlx.DB, productID, size string) int {
	t.Helper()
	n, err := repos.NewInventoryRepo(db).Qty(context.Background(), productID, size)
	require.NoError(t, err)
	return n
}
