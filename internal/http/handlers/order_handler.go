package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"jerseystore/internal/domain"
	applog "jerseystore/internal/log"
	"jerseystore/internal/services"
	"jerseystore/internal/validate"
)

type OrderHandler struct {
	Order *services.OrderService
}

type checkoutRequest struct {
	Cart          []domain.CartLine `json:"cart"`
	Shipping      domain.Shipping   `json:"shipping"`
	PaymentMethod string            `json:"paymentMethod"`
	CouponCode    string            `json:"couponCode"`

	Subtotal    *int `json:"subtotal"`
	Discount    *int `json:"discount"`
	Tax         *int `json:"tax"`
	TotalAmount *int `json:"totalAmount"`
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// clientTotals is nil when the client sent no figures at all.
func (r checkoutRequest) clientTotals() *services.ClientTotals {
	if r.Subtotal == nil && r.Discount == nil && r.Tax == nil && r.TotalAmount == nil {
		return nil
	}
	return &services.ClientTotals{
		Subtotal:    deref(r.Subtotal),
		Discount:    deref(r.Discount),
		Tax:         deref(r.Tax),
		TotalAmount: deref(r.TotalAmount),
	}
}

// POST /api/checkout
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "body"})
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	client := req.clientTotals()
	res, err := h.Order.Place(c.UserContext(), services.PlaceOrderInput{
		Cart:          req.Cart,
		Shipping:      req.Shipping,
		PaymentMethod: req.PaymentMethod,
		CouponCode:    req.CouponCode,
		Client:        client,
	})
	if err != nil {
		return fail(c, "order.place", err, "Product not found", "Server Error processing order")
	}

	o := res.Order
	applog.Audit(c, "order.place", map[string]any{
		"order_id": o.OrderID,
		"lines":    len(o.Items),
		"total":    o.TotalAmount,
		"coupon":   o.CouponCode,
		"payment":  o.PaymentMethod,
	})
	if res.Mismatch {
		applog.Audit(c, "order.totals.mismatch", map[string]any{
			"order_id":     o.OrderID,
			"server_total": o.TotalAmount,
			"client_total": client.TotalAmount,
			"server_tax":   o.Tax,
			"client_tax":   client.Tax,
		})
	}
	return c.JSON(fiber.Map{"message": "Order successful!", "order": o})
}

// GET /api/orders/:orderId
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("orderId"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Order not found")
	}
	o, err := h.Order.GetOrder(c.UserContext(), id)
	if err != nil {
		return fail(c, "order.get", err, "Order not found", "Could not load order")
	}
	return c.JSON(o)
}

// GET /orders/:orderId renders the printable invoice.
func (h *OrderHandler) Invoice(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("orderId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	o, err := h.Order.GetOrder(c.UserContext(), id)
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	if err != nil {
		applog.Error(c, "order.invoice.fail", err, map[string]any{"order_id": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load order"})
	}

	lines := make([]invoiceLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, invoiceLine{OrderLine: it, Total: it.Price * it.Quantity})
	}
	return render(c, "invoice", fiber.Map{"Order": o, "Lines": lines, "Date": o.CreatedAt.Format("02 Jan 2006 15:04 MST")})
}

type invoiceLine struct {
	domain.OrderLine
	Total int
}
