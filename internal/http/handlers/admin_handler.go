package handlers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "jerseystore/internal/log"
	"jerseystore/internal/services"
)

const maxListLimit = 500

type AdminHandler struct {
	Catalog *services.CatalogService
	Order   *services.OrderService
	Export  *services.ExportService
}

func listLimit(c *fiber.Ctx) int {
	n := c.QueryInt("limit", 100)
	if n <= 0 || n > maxListLimit {
		n = 100
	}
	return n
}

// GET /api/seed
func (h *AdminHandler) Seed(c *fiber.Ctx) error {
	if err := h.Catalog.Seed(c.UserContext()); err != nil {
		applog.Error(c, "admin.seed.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Could not seed database")
	}
	applog.Audit(c, "admin.seed", nil)
	return c.JSON(fiber.Map{"message": "Database reset and seeded!"})
}

// GET /api/admin/orders
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	ords, err := h.Order.ListOrders(c.UserContext(), listLimit(c))
	if err != nil {
		return fail(c, "admin.orders.list", err, "", "Could not load orders")
	}
	return c.JSON(ords)
}

// GET /api/admin/orders/export
func (h *AdminHandler) ExportOrders(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.Export.WriteOrders(c.UserContext(), &buf, listLimit(c)); err != nil {
		applog.Error(c, "admin.orders.export.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Could not export orders")
	}
	applog.Audit(c, "admin.orders.export", map[string]any{"bytes": buf.Len()})

	name := fmt.Sprintf("orders-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment(name)
	return c.Send(buf.Bytes())
}
