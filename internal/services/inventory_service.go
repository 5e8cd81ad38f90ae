package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"jerseystore/internal/domain"
	"jerseystore/internal/repos"
)

type InventoryService struct {
	DB    *sqlx.DB
	Inv   *repos.InventoryRepo
	Prods *repos.ProductRepo
}

func NewInventoryService(db *sqlx.DB, inv *repos.InventoryRepo, prods *repos.ProductRepo) *InventoryService {
	return &InventoryService{DB: db, Inv: inv, Prods: prods}
}

// GetStock returns the quantity for one size. A size the product has no row
// for counts as 0; an unknown product is ErrNotFound.
func (s *InventoryService) GetStock(ctx context.Context, productID, size string) (int, error) {
	qty, err := s.Inv.Qty(ctx, productID, size)
	if err == nil {
		return qty, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	ok, err := s.Prods.Exists(ctx, productID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, notFound("product", productID)
	}
	return 0, nil
}

// CheckAvailability converts qty into IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func (s *InventoryService) CheckAvailability(ctx context.Context, productID, size string) (domain.Availability, error) {
	qty, err := s.GetStock(ctx, productID, size)
	if err != nil {
		return domain.Availability{}, err
	}
	status := domain.OutOfStock
	switch {
	case qty >= 5:
		status = domain.InStock
	case qty > 0:
		status = domain.LowStock
	}
	return domain.Availability{ProductID: productID, Size: size, Qty: qty, Status: status}, nil
}

// AdjustStock adds delta (negative to remove) to one size and returns the
// updated product. The result may not go below zero.
func (s *InventoryService) AdjustStock(ctx context.Context, productID, size string, delta int) (domain.Product, error) {
	var out domain.Product
	err := repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		prods, inv := s.Prods.WithTx(tx), s.Inv.WithTx(tx)
		p, err := prods.Get(ctx, productID)
		if errors.Is(err, sql.ErrNoRows) {
			return notFound("product", productID)
		}
		if err != nil {
			return err
		}
		cur := p.Stock[size]
		if cur+delta < 0 {
			return &StockError{ProductID: productID, Name: p.Name, Size: size, Requested: -delta, Available: cur}
		}
		if err := inv.UpsertQty(ctx, productID, size, cur+delta); err != nil {
			return err
		}
		out, err = prods.Get(ctx, productID)
		return err
	})
	return out, err
}
