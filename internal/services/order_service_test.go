package services_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jerseystore/internal/domain"
	"jerseystore/internal/repos"
	"jerseystore/internal/services"
)

var shipTo = domain.Shipping{Name: "Asha Rao", Address: "12 MG Road", City: "Bengaluru", Zip: "560001"}

func newOrders(t *testing.T) (*services.OrderService, *sqlx.DB) {
	db := memdb(t)
	return services.NewOrderService(db, repos.NewProductRepo(db), repos.NewInventoryRepo(db), repos.NewOrderRepo(db)), db
}

func place(svc *services.OrderService, lines ...domain.CartLine) (services.PlaceResult, error) {
	return svc.Place(context.Background(), services.PlaceOrderInput{
		Cart:          lines,
		Shipping:      shipTo,
		PaymentMethod: "UPI",
	})
}

func TestNewOrderID_Format(t *testing.T) {
	re := regexp.MustCompile(`^ORD-\d{6}-[0-9A-F]{6}$`)
	for i := 0; i < 20; i++ {
		assert.Regexp(t, re, services.NewOrderID(time.Now()))
	}
	assert.Regexp(t, `^ORD-123456-`, services.NewOrderID(time.UnixMilli(1_700_000_123_456)))
}

func TestOrder_IDFollowsServiceClock(t *testing.T) {
	svc, _ := newOrders(t)
	svc.Now = func() time.Time { return time.UnixMilli(1_700_000_654_321) }

	res, err := place(svc, domain.CartLine{ProductID: "brazil", Size: "M", Quantity: 1})
	require.NoError(t, err)
	assert.Regexp(t, `^ORD-654321-[0-9A-F]{6}$`, res.Order.OrderID)
	assert.True(t, res.Order.CreatedAt.Equal(time.UnixMilli(1_700_000_654_321)))
}

func TestOrder_PlaceDeductsExactly(t *testing.T) {
	svc, db := newOrders(t)

	res, err := place(svc,
		domain.CartLine{ProductID: "real-madrid", Size: "m", Quantity: 3},
		domain.CartLine{ProductID: "brazil", Size: "L", Quantity: 1},
	)
	require.NoError(t, err)
	assert.Equal(t, 7, qty(t, db, "real-madrid", "M"))
	assert.Equal(t, 9, qty(t, db, "brazil", "L"))
	assert.Equal(t, 10, qty(t, db, "real-madrid", "S"), "other sizes untouched")

	o := res.Order
	assert.Equal(t, 3*2499+1999, o.Subtotal)
	assert.Equal(t, o.Subtotal-o.Discount+o.Tax, o.TotalAmount)
	assert.Equal(t, domain.PaymentUPI, o.PaymentMethod)
	assert.Equal(t, domain.PaymentStatusPaid, o.PaymentStatus)

	got, err := svc.GetOrder(context.Background(), o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, o.Items, got.Items)
	assert.Equal(t, o.TotalAmount, got.TotalAmount)
	assert.Equal(t, shipTo, got.Customer)
}

func TestOrder_WorkedExample(t *testing.T) {
	svc, db := newOrders(t)
	addProduct(t, db, domain.Product{
		ID: "test-kit", Name: "Test Kit", Team: "Test", Price: 1000, Image: "/x.png",
		Category: "Football", Sizes: []string{"M"}, Stock: map[string]int{"M": 5},
	})

	res, err := svc.Place(context.Background(), services.PlaceOrderInput{
		Cart:          []domain.CartLine{{ProductID: "test-kit", Size: "M", Quantity: 1}},
		Shipping:      shipTo,
		PaymentMethod: "credit card",
		CouponCode:    "welcome10",
	})
	require.NoError(t, err)
	o := res.Order
	assert.Equal(t, 1000, o.Subtotal)
	assert.Equal(t, 100, o.Discount)
	assert.Equal(t, 10, o.DiscountPercent)
	assert.Equal(t, "WELCOME10", o.CouponCode)
	assert.Equal(t, 108, o.Tax)
	assert.Equal(t, 1008, o.TotalAmount)
	assert.Equal(t, domain.PaymentCreditCard, o.PaymentMethod)
}

func TestOrder_ShortfallChangesNothing(t *testing.T) {
	svc, db := newOrders(t)

	_, err := place(svc,
		domain.CartLine{ProductID: "real-madrid", Size: "M", Quantity: 2},
		domain.CartLine{ProductID: "lakers-icon", Size: "S", Quantity: 3},
	)
	require.ErrorIs(t, err, services.ErrInsufficientStock)
	assert.Equal(t, "Stock Error: Only 2 left for Lakers Icon Edition (S)", err.Error())

	var se *services.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 3, se.Requested)
	assert.Equal(t, 1, se.Shortfall())

	assert.Equal(t, 10, qty(t, db, "real-madrid", "M"))
	assert.Equal(t, 2, qty(t, db, "lakers-icon", "S"))

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM orders`))
	assert.Zero(t, n)
}

func TestOrder_DuplicateLinesAreAggregated(t *testing.T) {
	svc, db := newOrders(t)

	_, err := place(svc,
		domain.CartLine{ProductID: "lakers-icon", Size: "S", Quantity: 2},
		domain.CartLine{ProductID: "lakers-icon", Size: "S", Quantity: 1},
	)
	require.ErrorIs(t, err, services.ErrInsufficientStock)
	assert.Equal(t, 2, qty(t, db, "lakers-icon", "S"))
}

func TestOrder_ZeroStockSize(t *testing.T) {
	svc, _ := newOrders(t)
	_, err := place(svc, domain.CartLine{ProductID: "man-city-home-2324", Size: "M", Quantity: 1})
	assert.ErrorIs(t, err, services.ErrInsufficientStock)
}

func TestOrder_UnknownProduct(t *testing.T) {
	svc, db := newOrders(t)
	_, err := place(svc,
		domain.CartLine{ProductID: "real-madrid", Size: "M", Quantity: 1},
		domain.CartLine{ProductID: "ghost-kit", Size: "M", Quantity: 1},
	)
	require.ErrorIs(t, err, services.ErrNotFound)
	assert.Equal(t, 10, qty(t, db, "real-madrid", "M"))
}

func TestOrder_RequestValidation(t *testing.T) {
	svc, _ := newOrders(t)
	ok := []domain.CartLine{{ProductID: "real-madrid", Size: "M", Quantity: 1}}

	cases := map[string]services.PlaceOrderInput{
		"empty cart":  {Shipping: shipTo, PaymentMethod: "UPI"},
		"zero qty":    {Cart: []domain.CartLine{{ProductID: "real-madrid", Size: "M"}}, Shipping: shipTo, PaymentMethod: "UPI"},
		"no name":     {Cart: ok, Shipping: domain.Shipping{Address: "a", City: "b", Zip: "560001"}, PaymentMethod: "UPI"},
		"bad zip":     {Cart: ok, Shipping: domain.Shipping{Name: "a", Address: "a", City: "b", Zip: "!"}, PaymentMethod: "UPI"},
		"bad payment": {Cart: ok, Shipping: shipTo, PaymentMethod: "bitcoin"},
		"huge qty":    {Cart: []domain.CartLine{{ProductID: "real-madrid", Size: "M", Quantity: 51}}, Shipping: shipTo, PaymentMethod: "UPI"},
		"bad size":    {Cart: []domain.CartLine{{ProductID: "real-madrid", Size: "M!", Quantity: 1}}, Shipping: shipTo, PaymentMethod: "UPI"},
		"bad product": {Cart: []domain.CartLine{{ProductID: "../etc", Size: "M", Quantity: 1}}, Shipping: shipTo, PaymentMethod: "UPI"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Place(context.Background(), in)
			assert.ErrorIs(t, err, services.ErrValidation)
		})
	}
}

func TestOrder_CashOnDeliveryIsPending(t *testing.T) {
	svc, _ := newOrders(t)
	res, err := svc.Place(context.Background(), services.PlaceOrderInput{
		Cart:          []domain.CartLine{{ProductID: "brazil", Size: "S", Quantity: 1}},
		Shipping:      shipTo,
		PaymentMethod: "cod",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCashOnDelivery, res.Order.PaymentMethod)
	assert.Equal(t, domain.PaymentStatusPending, res.Order.PaymentStatus)
}

func TestOrder_ClientTotalsAreAdvisory(t *testing.T) {
	svc, _ := newOrders(t)
	in := services.PlaceOrderInput{
		Cart:          []domain.CartLine{{ProductID: "brazil", Size: "S", Quantity: 1}},
		Shipping:      shipTo,
		PaymentMethod: "UPI",
		Client:        &services.ClientTotals{Subtotal: 1, Tax: 0, TotalAmount: 1},
	}
	res, err := svc.Place(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, res.Mismatch)
	assert.Equal(t, 1999, res.Order.Subtotal)
	assert.Equal(t, 2239, res.Order.TotalAmount)

	in.Client = &services.ClientTotals{Subtotal: 1999, Tax: 240, TotalAmount: 2239}
	res, err = svc.Place(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, res.Mismatch)
}

func TestOrder_SnapshotSurvivesCatalogEdit(t *testing.T) {
	svc, db := newOrders(t)
	res, err := place(svc, domain.CartLine{ProductID: "spurs", Size: "M", Quantity: 2})
	require.NoError(t, err)

	_, err = db.Exec(`UPDATE products SET name = 'Spurs Away', price = 999 WHERE id = 'spurs'`)
	require.NoError(t, err)

	o, err := svc.GetOrder(context.Background(), res.Order.OrderID)
	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Spurs", o.Items[0].Name)
	assert.Equal(t, 1999, o.Items[0].Price)
	assert.Equal(t, 3998, o.Subtotal)
}

func TestOrder_SnapshotSurvivesReseed(t *testing.T) {
	svc, db := newOrders(t)
	res, err := place(svc, domain.CartLine{ProductID: "spurs", Size: "M", Quantity: 1})
	require.NoError(t, err)

	cat := services.NewCatalogService(db, repos.NewCategoryRepo(db), repos.NewProductRepo(db), repos.NewReviewRepo(db))
	require.NoError(t, cat.Seed(context.Background()))

	o, err := svc.GetOrder(context.Background(), res.Order.OrderID)
	require.NoError(t, err)
	assert.Len(t, o.Items, 1)
}

func TestOrder_ConcurrentCheckoutForLastUnit(t *testing.T) {
	svc, db := newOrders(t)
	_, err := db.Exec(`UPDATE inventory SET qty = 1 WHERE product_id = 'argentina' AND size = 'L'`)
	require.NoError(t, err)

	const buyers = 8
	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = place(svc, domain.CartLine{ProductID: "argentina", Size: "L", Quantity: 1})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, services.ErrInsufficientStock)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 0, qty(t, db, "argentina", "L"))
}

// A decrement that matches no row reports the stock read back afterwards.
func TestOrder_DecrementMissReportsCurrentStock(t *testing.T) {
	svc, db := newOrders(t)
	_, err := db.Exec(`
		CREATE TRIGGER hold_brazil BEFORE UPDATE ON inventory
		WHEN old.product_id = 'brazil'
		BEGIN SELECT RAISE(IGNORE); END`)
	require.NoError(t, err)

	_, err = place(svc, domain.CartLine{ProductID: "brazil", Size: "M", Quantity: 1})
	require.ErrorIs(t, err, services.ErrInsufficientStock)

	var se *services.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 10, se.Available)
	assert.Equal(t, 10, qty(t, db, "brazil", "M"))
}

func TestOrder_IDCollisionRetries(t *testing.T) {
	svc, db := newOrders(t)
	ids := []string{"ORD-000001-AAAAAA", "ORD-000001-AAAAAA", "ORD-000002-BBBBBB"}
	svc.NewID = func(time.Time) string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	first, err := place(svc, domain.CartLine{ProductID: "brazil", Size: "M", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, "ORD-000001-AAAAAA", first.Order.OrderID)

	second, err := place(svc, domain.CartLine{ProductID: "brazil", Size: "M", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, "ORD-000002-BBBBBB", second.Order.OrderID)
	assert.Equal(t, 8, qty(t, db, "brazil", "M"))
}

func TestOrder_IDExhaustionRollsBack(t *testing.T) {
	svc, db := newOrders(t)
	svc.NewID = func(time.Time) string { return "ORD-000001-AAAAAA" }

	_, err := place(svc, domain.CartLine{ProductID: "brazil", Size: "M", Quantity: 1})
	require.NoError(t, err)

	_, err = place(svc, domain.CartLine{ProductID: "brazil", Size: "M", Quantity: 1})
	require.ErrorIs(t, err, services.ErrInternal)
	assert.Equal(t, 9, qty(t, db, "brazil", "M"))
}

func TestOrder_GetUnknown(t *testing.T) {
	svc, _ := newOrders(t)
	_, err := svc.GetOrder(context.Background(), "ORD-000000-000000")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestOrder_ListOrdersNewestFirst(t *testing.T) {
	svc, _ := newOrders(t)
	clock := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	a, err := place(svc, domain.CartLine{ProductID: "brazil", Size: "M", Quantity: 1})
	require.NoError(t, err)
	b, err := place(svc, domain.CartLine{ProductID: "spurs", Size: "M", Quantity: 1})
	require.NoError(t, err)

	list, err := svc.ListOrders(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.Order.OrderID, list[0].ID)
	assert.Equal(t, a.Order.OrderID, list[1].ID)
}
