package handlers

import (
	"github.com/gofiber/fiber/v2"

	"jerseystore/internal/domain"
	"jerseystore/internal/log"
	"jerseystore/internal/services"
)

type CartHandler struct {
	Cart *services.CartService
}

type quoteRequest struct {
	Cart       []domain.CartLine `json:"cart"`
	CouponCode string            `json:"couponCode"`
}

// POST /api/cart/quote
func (h *CartHandler) Quote(c *fiber.Ctx) error {
	var req quoteRequest
	if err := c.BodyParser(&req); err != nil {
		log.Security(c, "validation.fail", map[string]any{"field": "body"})
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	q, err := h.Cart.Quote(c.UserContext(), req.Cart, req.CouponCode)
	if err != nil {
		return fail(c, "cart.quote", err, "Product not found", "Could not price cart")
	}
	return c.JSON(q)
}
