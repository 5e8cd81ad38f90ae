package domain

import (
	"encoding/json"
	"time"
)

// Product is a jersey in the catalog. Sizes is the display order of size
// labels; Stock may also hold sizes that are not offered in Sizes.
type Product struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Team        string         `db:"team" json:"team"`
	Price       int            `db:"price" json:"price"`
	Image       string         `db:"image" json:"image"`
	Description string         `db:"description" json:"description"`
	Category    string         `db:"category" json:"category"`
	Sizes       []string       `db:"-" json:"sizes"`
	Stock       map[string]int `db:"-" json:"stock"`
	Reviews     []Review       `db:"-" json:"reviews"`
	CreatedAt   string         `db:"created_at" json:"-"`
	UpdatedAt   string         `db:"updated_at" json:"-"`
}

type Review struct {
	ID        int64  `db:"id" json:"-"`
	ProductID string `db:"product_id" json:"-"`
	User      string `db:"user_name" json:"user"`
	Rating    int    `db:"rating" json:"rating"`
	Comment   string `db:"comment" json:"comment"`
	CreatedAt string `db:"created_at" json:"createdAt,omitempty"`
}

type Category struct {
	Name  string `db:"name" json:"name"`
	Count int    `db:"count" json:"count"`
}

// CartLine is one selection submitted by the client. Name and Price are
// display hints only; checkout prices come from the catalog.
type CartLine struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	Name      string `json:"name,omitempty"`
	Price     int    `json:"price,omitempty"`
}

// UnmarshalJSON also accepts the storefront's product-shaped cart items,
// which carry "_id" and "selectedSize" instead of "productId" and "size".
func (l *CartLine) UnmarshalJSON(b []byte) error {
	type plain CartLine
	var raw struct {
		plain
		LegacyID     string `json:"_id"`
		SelectedSize string `json:"selectedSize"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*l = CartLine(raw.plain)
	if l.ProductID == "" {
		l.ProductID = raw.LegacyID
	}
	if l.Size == "" {
		l.Size = raw.SelectedSize
	}
	return nil
}

type Shipping struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

// OrderLine is a snapshot taken at checkout; later catalog edits never touch it.
type OrderLine struct {
	ProductID string `db:"product_id" json:"productId"`
	Name      string `db:"name" json:"name"`
	Size      string `db:"size" json:"size"`
	Quantity  int    `db:"qty" json:"quantity"`
	Price     int    `db:"price" json:"price"`
}

type Order struct {
	OrderID         string      `json:"orderId"`
	Customer        Shipping    `json:"customer"`
	Items           []OrderLine `json:"items"`
	Subtotal        int         `json:"subtotal"`
	Discount        int         `json:"discount"`
	DiscountPercent int         `json:"discountPercent"`
	CouponCode      string      `json:"couponCode,omitempty"`
	Tax             int         `json:"tax"`
	TotalAmount     int         `json:"totalAmount"`
	PaymentMethod   string      `json:"paymentMethod"`
	PaymentStatus   string      `json:"paymentStatus"`
	CreatedAt       time.Time   `json:"date"`
}

const (
	PaymentUPI            = "UPI"
	PaymentCreditCard     = "Credit Card"
	PaymentCashOnDelivery = "Cash on Delivery"

	PaymentStatusPaid    = "Paid"
	PaymentStatusPending = "Pending"
)

const (
	InStock    = "IN_STOCK"
	LowStock   = "LOW_STOCK"
	OutOfStock = "OUT_OF_STOCK"
)

// Availability is the stock view of one product size.
type Availability struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Qty       int    `json:"stock"`
	Status    string `json:"status"`
}
