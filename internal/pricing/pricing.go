// Package pricing holds the storefront's money rules: the coupon table, the
// tax rate and the order total arithmetic. All amounts are whole currency
// units; rounding is half away from zero.
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxRate is the single GST rate applied to the discounted subtotal.
var TaxRate = decimal.New(12, -2)

const RejectedCouponMessage = "Invalid Code or Requirement not met"

type Coupon struct {
	Code    string
	Percent int
	// MoreThan is the exclusive lower bound on the cart's total quantity;
	// zero means the coupon has no requirement.
	MoreThan int
}

var Coupons = []Coupon{
	{Code: "BULK50", Percent: 50, MoreThan: 10},
	{Code: "SQUAD30", Percent: 30, MoreThan: 5},
	{Code: "WELCOME10", Percent: 10},
}

type CouponResult struct {
	Code    string
	Percent int
	Applied bool
	Message string
}

// ApplyCoupon looks code up case-insensitively. An empty code is not an
// error: it yields 0% and no message.
func ApplyCoupon(code string, totalQty int) CouponResult {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return CouponResult{}
	}
	for _, c := range Coupons {
		if c.Code != code {
			continue
		}
		if c.MoreThan > 0 && totalQty <= c.MoreThan {
			break
		}
		return CouponResult{
			Code:    c.Code,
			Percent: c.Percent,
			Applied: true,
			Message: fmt.Sprintf("Applied! %d%% OFF with %s", c.Percent, c.Code),
		}
	}
	return CouponResult{Message: RejectedCouponMessage}
}

type Line struct {
	UnitPrice int
	Quantity  int
}

type Totals struct {
	TotalQuantity   int
	Subtotal        int
	DiscountPercent int
	Discount        int
	Tax             int
	Total           int
	CouponCode      string
	CouponMessage   string
}

func Subtotal(lines []Line) int {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(decimal.NewFromInt(int64(l.UnitPrice)).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return int(sum.IntPart())
}

func Discount(subtotal, percent int) int {
	d := decimal.NewFromInt(int64(subtotal)).Mul(decimal.NewFromInt(int64(percent))).Div(decimal.NewFromInt(100))
	return int(d.Round(0).IntPart())
}

// Tax applies TaxRate to an already discounted amount.
func Tax(taxable int) int {
	return int(decimal.NewFromInt(int64(taxable)).Mul(TaxRate).Round(0).IntPart())
}

// Compute prices a cart: subtotal, coupon discount, tax on the discounted
// amount and the grand total (subtotal - discount + tax).
func Compute(lines []Line, couponCode string) Totals {
	var t Totals
	for _, l := range lines {
		t.TotalQuantity += l.Quantity
	}
	t.Subtotal = Subtotal(lines)

	cr := ApplyCoupon(couponCode, t.TotalQuantity)
	t.CouponCode = cr.Code
	t.CouponMessage = cr.Message
	t.DiscountPercent = cr.Percent
	t.Discount = Discount(t.Subtotal, cr.Percent)
	t.Tax = Tax(t.Subtotal - t.Discount)
	t.Total = t.Subtotal - t.Discount + t.Tax
	return t
}

// AverageRating returns the mean rating and its display label, "New" when
// there are no ratings yet.
func AverageRating(ratings []int) (float64, string) {
	if len(ratings) == 0 {
		return 0, "New"
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(ratings))))
	f, _ := avg.Float64()
	return f, avg.StringFixed(1)
}
