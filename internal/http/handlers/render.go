package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	applog "jerseystore/internal/log"
	"jerseystore/internal/services"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	return c.Render(tmpl, data)
}

func isAPI(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

// fail maps a service error onto a status code and a safe message. Only
// validation and stock messages reach the client verbatim.
func fail(c *fiber.Ctx, action string, err error, notFoundMsg, serverMsg string) error {
	var se *services.StockError
	var ve *services.ValidationError
	switch {
	case errors.As(err, &se):
		applog.Info(c, action+".stock", map[string]any{
			"product": se.ProductID, "size": se.Size, "requested": se.Requested, "available": se.Available,
		})
		return jsonError(c, fiber.StatusBadRequest, se.Error())
	case errors.As(err, &ve):
		applog.Security(c, "validation.fail", map[string]any{"field": ve.Field, "action": action})
		return jsonError(c, fiber.StatusBadRequest, ve.Msg)
	case errors.Is(err, services.ErrNotFound):
		return jsonError(c, fiber.StatusNotFound, notFoundMsg)
	}
	applog.Error(c, action+".fail", err, nil)
	return jsonError(c, fiber.StatusInternalServerError, serverMsg)
}

// ErrorHandler is the app-wide fiber error handler. It never echoes the
// error text.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= 500 {
		applog.Error(c, "server.error", err, nil)
	}

	msg := "Something went wrong. Please try again."
	if code < 500 {
		msg = utils.StatusMessage(code)
	}
	if isAPI(c) {
		return jsonError(c, code, msg)
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}

// NotFound is the catch-all route.
func NotFound(c *fiber.Ctx) error {
	if isAPI(c) {
		return jsonError(c, fiber.StatusNotFound, "Not found")
	}
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
}
