package handlers

import (
	"github.com/gofiber/fiber/v2"

	"jerseystore/internal/log"
	"jerseystore/internal/services"
	"jerseystore/internal/validate"
)

const maxStockDelta = 10000

type InventoryHandler struct {
	Inv *services.InventoryService
}

// GET /api/products/:id/stock?size=M
func (h *InventoryHandler) Stock(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Product not found")
	}
	size, ok := validate.Size(c.Query("size"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "size"})
		return jsonError(c, fiber.StatusBadRequest, "Invalid size")
	}
	avail, err := h.Inv.CheckAvailability(c.UserContext(), id, size)
	if err != nil {
		return fail(c, "stock.get", err, "Product not found", "Could not load stock")
	}
	return c.JSON(avail)
}

type adjustRequest struct {
	Size  string `json:"size"`
	Delta int    `json:"delta"`
}

// POST /api/admin/products/:id/stock
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Product not found")
	}
	var req adjustRequest
	if err := c.BodyParser(&req); err != nil {
		log.Security(c, "validation.fail", map[string]any{"field": "body"})
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	size, ok := validate.Size(req.Size)
	if !ok || req.Delta == 0 || req.Delta > maxStockDelta || req.Delta < -maxStockDelta {
		log.Security(c, "validation.fail", map[string]any{"field": "stock", "size": req.Size, "delta": req.Delta})
		return jsonError(c, fiber.StatusBadRequest, "Invalid size or delta")
	}

	p, err := h.Inv.AdjustStock(c.UserContext(), id, size, req.Delta)
	if err != nil {
		return fail(c, "admin.stock.adjust", err, "Product not found", "Could not adjust stock")
	}
	log.Audit(c, "admin.stock.adjust", map[string]any{
		"product": id, "size": size, "delta": req.Delta, "qty": p.Stock[size],
	})
	return c.JSON(viewOf(p))
}
