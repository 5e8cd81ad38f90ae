package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"jerseystore/internal/domain"
	"jerseystore/internal/pricing"
	"jerseystore/internal/repos"
	"jerseystore/internal/validate"
)

const maxIDAttempts = 5

type OrderService struct {
	DB     *sqlx.DB
	Prods  *repos.ProductRepo
	Inv    *repos.InventoryRepo
	Orders *repos.OrderRepo

	NewID func(time.Time) string
	Now   func() time.Time
}

func NewOrderService(db *sqlx.DB, prods *repos.ProductRepo, inv *repos.InventoryRepo, orders *repos.OrderRepo) *OrderService {
	return &OrderService{DB: db, Prods: prods, Inv: inv, Orders: orders, NewID: NewOrderID, Now: time.Now}
}

// NewOrderID returns ORD-<last 6 digits of now in unix ms>-<6 hex chars>.
func NewOrderID(now time.Time) string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("ORD-%06d-%s", now.UnixMilli()%1_000_000, hex[:6])
}

// ClientTotals are the figures the browser showed the shopper.
type ClientTotals struct {
	Subtotal    int
	Discount    int
	Tax         int
	TotalAmount int
}

type PlaceOrderInput struct {
	Cart          []domain.CartLine
	Shipping      domain.Shipping
	PaymentMethod string
	CouponCode    string
	Client        *ClientTotals
}

type PlaceResult struct {
	Order    domain.Order
	Coupon   string
	Mismatch bool
}

func validateShipping(s domain.Shipping) (domain.Shipping, error) {
	var ok bool
	if s.Name, ok = validate.Text(s.Name, 80); !ok {
		return s, invalid("shipping.name", "Shipping name is required")
	}
	if s.Address, ok = validate.Text(s.Address, 200); !ok {
		return s, invalid("shipping.address", "Shipping address is required")
	}
	if s.City, ok = validate.Text(s.City, 80); !ok {
		return s, invalid("shipping.city", "Shipping city is required")
	}
	if s.Zip, ok = validate.Zip(s.Zip); !ok {
		return s, invalid("shipping.zip", "Invalid zip code")
	}
	return s, nil
}

// Place validates stock, deducts it and records the order in one
// transaction. Either every line is deducted and the order exists, or
// nothing changed.
func (s *OrderService) Place(ctx context.Context, in PlaceOrderInput) (PlaceResult, error) {
	lines, err := normalizeCart(in.Cart)
	if err != nil {
		return PlaceResult{}, err
	}
	ship, err := validateShipping(in.Shipping)
	if err != nil {
		return PlaceResult{}, err
	}
	method, ok := validate.PaymentMethod(in.PaymentMethod)
	if !ok {
		return PlaceResult{}, invalid("paymentMethod", "Unsupported payment method")
	}

	var res PlaceResult
	err = repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		prods, inv, orders := s.Prods.WithTx(tx), s.Inv.WithTx(tx), s.Orders.WithTx(tx)

		products, err := loadProducts(ctx, prods, lines)
		if err != nil {
			return err
		}

		keys, need := demand(lines)
		for _, k := range keys {
			p := products[k.ProductID]
			if have := p.Stock[k.Size]; have < need[k] {
				return &StockError{ProductID: p.ID, Name: p.Name, Size: k.Size, Requested: need[k], Available: have}
			}
		}
		for _, k := range keys {
			err := inv.Decrement(ctx, k.ProductID, k.Size, need[k])
			if errors.Is(err, repos.ErrShortStock) {
				have, qerr := inv.Qty(ctx, k.ProductID, k.Size)
				if qerr != nil {
					return qerr
				}
				p := products[k.ProductID]
				return &StockError{ProductID: p.ID, Name: p.Name, Size: k.Size, Requested: need[k], Available: have}
			}
			if err != nil {
				return err
			}
		}

		priced := make([]pricing.Line, 0, len(lines))
		items := make([]domain.OrderLine, 0, len(lines))
		for _, l := range lines {
			p := products[l.ProductID]
			priced = append(priced, pricing.Line{UnitPrice: p.Price, Quantity: l.Quantity})
			items = append(items, domain.OrderLine{
				ProductID: p.ID, Name: p.Name, Size: l.Size, Quantity: l.Quantity, Price: p.Price,
			})
		}
		t := pricing.Compute(priced, in.CouponCode)

		o := domain.Order{
			Customer:        ship,
			Items:           items,
			Subtotal:        t.Subtotal,
			Discount:        t.Discount,
			DiscountPercent: t.DiscountPercent,
			CouponCode:      t.CouponCode,
			Tax:             t.Tax,
			TotalAmount:     t.Total,
			PaymentMethod:   method,
			PaymentStatus:   domain.PaymentStatusPaid,
			CreatedAt:       s.Now().UTC(),
		}
		if method == domain.PaymentCashOnDelivery {
			o.PaymentStatus = domain.PaymentStatusPending
		}

		created := false
		for attempt := 0; attempt < maxIDAttempts && !created; attempt++ {
			o.OrderID = s.NewID(o.CreatedAt)
			if created, err = orders.Create(ctx, o); err != nil {
				return err
			}
		}
		if !created {
			return fmt.Errorf("%w: no free order id after %d attempts", ErrInternal, maxIDAttempts)
		}
		for i, it := range items {
			if err := orders.InsertItem(ctx, o.OrderID, i, it); err != nil {
				return err
			}
		}

		res = PlaceResult{Order: o, Coupon: t.CouponMessage}
		if c := in.Client; c != nil {
			res.Mismatch = c.Subtotal != t.Subtotal || c.Discount != t.Discount ||
				c.Tax != t.Tax || c.TotalAmount != t.Total
		}
		return nil
	})
	if err != nil {
		return PlaceResult{}, err
	}
	return res, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	o, err := s.Orders.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, notFound("order", id)
	}
	return o, err
}

func (s *OrderService) ListOrders(ctx context.Context, limit int) ([]repos.OrderSummary, error) {
	return s.Orders.ListLatest(ctx, limit)
}
