package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"jerseystore/internal/domain"
	"jerseystore/internal/pricing"
	"jerseystore/internal/repos"
	"jerseystore/internal/validate"
)

// CartService prices a client-held cart. The cart itself lives in the
// browser; nothing here is persisted.
type CartService struct {
	Prods *repos.ProductRepo
}

func NewCartService(prods *repos.ProductRepo) *CartService {
	return &CartService{Prods: prods}
}

type QuoteLine struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"price"`
	LineTotal int    `json:"lineTotal"`
	Available int    `json:"available"`
}

type Quote struct {
	Lines           []QuoteLine `json:"lines"`
	TotalQuantity   int         `json:"totalQuantity"`
	Subtotal        int         `json:"subtotal"`
	DiscountPercent int         `json:"discountPercent"`
	Discount        int         `json:"discount"`
	Tax             int         `json:"tax"`
	TotalAmount     int         `json:"totalAmount"`
	CouponCode      string      `json:"couponCode"`
	CouponMessage   string      `json:"couponMessage"`
}

// Quote recomputes the cart's figures from catalog prices. Stock is reported
// per line but not enforced; checkout does that.
func (s *CartService) Quote(ctx context.Context, lines []domain.CartLine, couponCode string) (Quote, error) {
	lines, err := normalizeCart(lines)
	if err != nil {
		return Quote{}, err
	}
	products, err := loadProducts(ctx, s.Prods, lines)
	if err != nil {
		return Quote{}, err
	}

	q := Quote{Lines: make([]QuoteLine, 0, len(lines))}
	priced := make([]pricing.Line, 0, len(lines))
	for _, l := range lines {
		p := products[l.ProductID]
		priced = append(priced, pricing.Line{UnitPrice: p.Price, Quantity: l.Quantity})
		q.Lines = append(q.Lines, QuoteLine{
			ProductID: p.ID,
			Name:      p.Name,
			Size:      l.Size,
			Quantity:  l.Quantity,
			UnitPrice: p.Price,
			LineTotal: pricing.Subtotal([]pricing.Line{{UnitPrice: p.Price, Quantity: l.Quantity}}),
			Available: p.Stock[l.Size],
		})
	}
	t := pricing.Compute(priced, couponCode)
	q.TotalQuantity = t.TotalQuantity
	q.Subtotal = t.Subtotal
	q.DiscountPercent = t.DiscountPercent
	q.Discount = t.Discount
	q.Tax = t.Tax
	q.TotalAmount = t.Total
	q.CouponCode = t.CouponCode
	q.CouponMessage = t.CouponMessage
	return q, nil
}

// normalizeCart validates every line and upper-cases sizes.
func normalizeCart(lines []domain.CartLine) ([]domain.CartLine, error) {
	if len(lines) == 0 {
		return nil, invalid("cart", "Cart is empty")
	}
	out := make([]domain.CartLine, 0, len(lines))
	for i, l := range lines {
		id, ok := validate.ID(l.ProductID)
		if !ok {
			return nil, invalid(fmt.Sprintf("cart[%d].productId", i), "invalid product id")
		}
		size, ok := validate.Size(l.Size)
		if !ok {
			return nil, invalid(fmt.Sprintf("cart[%d].size", i), "invalid size")
		}
		if !validate.Qty(l.Quantity) {
			return nil, invalid(fmt.Sprintf("cart[%d].quantity", i),
				fmt.Sprintf("quantity must be between 1 and %d", validate.MaxQty))
		}
		out = append(out, domain.CartLine{ProductID: id, Size: size, Quantity: l.Quantity})
	}
	return out, nil
}

// loadProducts fetches each distinct product once.
func loadProducts(ctx context.Context, prods *repos.ProductRepo, lines []domain.CartLine) (map[string]domain.Product, error) {
	out := make(map[string]domain.Product, len(lines))
	for _, l := range lines {
		if _, ok := out[l.ProductID]; ok {
			continue
		}
		p, err := prods.Get(ctx, l.ProductID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("product", l.ProductID)
		}
		if err != nil {
			return nil, err
		}
		out[l.ProductID] = p
	}
	return out, nil
}

type stockKey struct {
	ProductID string
	Size      string
}

// demand sums quantities per (product, size) in first-seen order.
func demand(lines []domain.CartLine) ([]stockKey, map[stockKey]int) {
	var keys []stockKey
	qty := map[stockKey]int{}
	for _, l := range lines {
		k := stockKey{l.ProductID, l.Size}
		if _, seen := qty[k]; !seen {
			keys = append(keys, k)
		}
		qty[k] += l.Quantity
	}
	return keys, qty
}
