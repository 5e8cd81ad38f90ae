package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "jerseystore/internal/log"
)

// Routes mounts every endpoint. Global middleware is the caller's job.
func Routes(app *fiber.App, d *Deps) {
	checkoutLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|checkout"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.checkout.hit", nil)
			return jsonError(c, fiber.StatusTooManyRequests, "Too many orders, please retry shortly")
		},
	})
	loginLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|login"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return jsonError(c, fiber.StatusTooManyRequests, "Too many attempts. Please try again later.")
		},
	})
	admin := RequireAdmin(d.Auth)

	api := app.Group("/api")
	api.Get("/categories", d.CategoryHandler.List)
	api.Get("/products", d.ProductHandler.List)
	api.Get("/products/:id", d.ProductHandler.Get)
	api.Get("/products/:id/stock", d.InventoryHandler.Stock)
	api.Post("/products/:id/review", d.ProductHandler.Review)
	api.Post("/cart/quote", d.CartHandler.Quote)
	api.Post("/checkout", checkoutLimiter, d.OrderHandler.Checkout)
	api.Get("/orders/:orderId", d.OrderHandler.Get)
	api.Get("/seed", admin, d.AdminHandler.Seed)

	api.Post("/admin/login", loginLimiter, d.AuthHandler.Login)
	api.Post("/admin/logout", d.AuthHandler.Logout)
	api.Post("/admin/products/:id/stock", admin, d.InventoryHandler.Adjust)
	api.Get("/admin/orders", admin, d.AdminHandler.Orders)
	api.Get("/admin/orders/export", admin, d.AdminHandler.ExportOrders)

	app.Get("/orders/:orderId", d.OrderHandler.Invoice)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(NotFound)
}
