package repos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"jerseystore/internal/domain"
)

// createdLayout is fixed width so created_at sorts chronologically as text.
const createdLayout = "2006-01-02T15:04:05.000000000Z07:00"

type OrderRepo struct{ db sqlx.ExtContext }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) WithTx(tx *sqlx.Tx) *OrderRepo { return &OrderRepo{db: tx} }

// ---------- Admin list summary ----------
type OrderSummary struct {
	ID            string `db:"id" json:"orderId"`
	CustomerName  string `db:"customer_name" json:"customerName"`
	CustomerCity  string `db:"customer_city" json:"customerCity"`
	Total         int    `db:"total" json:"totalAmount"`
	PaymentMethod string `db:"payment_method" json:"paymentMethod"`
	PaymentStatus string `db:"payment_status" json:"paymentStatus"`
	CreatedAt     string `db:"created_at" json:"date"`
}

type orderRow struct {
	ID              string `db:"id"`
	CustomerName    string `db:"customer_name"`
	CustomerAddress string `db:"customer_address"`
	CustomerCity    string `db:"customer_city"`
	CustomerZip     string `db:"customer_zip"`
	Subtotal        int    `db:"subtotal"`
	Discount        int    `db:"discount"`
	DiscountPercent int    `db:"discount_percent"`
	CouponCode      string `db:"coupon_code"`
	Tax             int    `db:"tax"`
	Total           int    `db:"total"`
	PaymentMethod   string `db:"payment_method"`
	PaymentStatus   string `db:"payment_status"`
	CreatedAt       string `db:"created_at"`
}

// Create inserts a new order header. It reports false, without error, when
// the order id is already taken so the caller can retry with a fresh id.
func (r *OrderRepo) Create(ctx context.Context, o domain.Order) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
	  INSERT INTO orders
	    (id, customer_name, customer_address, customer_city, customer_zip,
	     subtotal, discount, discount_percent, coupon_code, tax, total,
	     payment_method, payment_status, created_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	  ON CONFLICT(id) DO NOTHING
	`, o.OrderID, o.Customer.Name, o.Customer.Address, o.Customer.City, o.Customer.Zip,
		o.Subtotal, o.Discount, o.DiscountPercent, o.CouponCode, o.Tax, o.TotalAmount,
		o.PaymentMethod, o.PaymentStatus, o.CreatedAt.UTC().Format(createdLayout))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// InsertItem inserts a single line snapshot.
func (r *OrderRepo) InsertItem(ctx context.Context, orderID string, lineNo int, l domain.OrderLine) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO order_items(order_id, line_no, product_id, name, size, qty, price)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	`, orderID, lineNo, l.ProductID, l.Name, l.Size, l.Quantity, l.Price)
	return err
}

// Get returns the order with its lines, or sql.ErrNoRows.
func (r *OrderRepo) Get(ctx context.Context, orderID string) (domain.Order, error) {
	var row orderRow
	if err := sqlx.GetContext(ctx, r.db, &row, `
		SELECT id, customer_name, customer_address, customer_city, customer_zip,
		       subtotal, discount, discount_percent, coupon_code, tax, total,
		       payment_method, payment_status, created_at
		FROM orders
		WHERE id = ?
	`, orderID); err != nil {
		return domain.Order{}, err
	}

	items := []domain.OrderLine{}
	if err := sqlx.SelectContext(ctx, r.db, &items, `
		SELECT product_id, name, size, qty, price
		FROM order_items
		WHERE order_id = ?
		ORDER BY line_no
	`, orderID); err != nil {
		return domain.Order{}, err
	}

	created, err := time.Parse(createdLayout, row.CreatedAt)
	if err != nil {
		return domain.Order{}, err
	}
	return domain.Order{
		OrderID: row.ID,
		Customer: domain.Shipping{
			Name:    row.CustomerName,
			Address: row.CustomerAddress,
			City:    row.CustomerCity,
			Zip:     row.CustomerZip,
		},
		Items:           items,
		Subtotal:        row.Subtotal,
		Discount:        row.Discount,
		DiscountPercent: row.DiscountPercent,
		CouponCode:      row.CouponCode,
		Tax:             row.Tax,
		TotalAmount:     row.Total,
		PaymentMethod:   row.PaymentMethod,
		PaymentStatus:   row.PaymentStatus,
		CreatedAt:       created,
	}, nil
}

func (r *OrderRepo) ListLatest(ctx context.Context, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []OrderSummary{}
	err := sqlx.SelectContext(ctx, r.db, &out, `
		SELECT id, customer_name, customer_city, total, payment_method, payment_status, created_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	return out, err
}
