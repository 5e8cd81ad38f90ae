package handlers

import (
	"github.com/gofiber/fiber/v2"

	"jerseystore/internal/domain"
	"jerseystore/internal/log"
	"jerseystore/internal/pricing"
	"jerseystore/internal/services"
	"jerseystore/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// productView adds the derived rating fields to a product.
type productView struct {
	domain.Product
	LegacyID      string `json:"_id"`
	AverageRating string `json:"averageRating"`
	ReviewCount   int    `json:"reviewCount"`
}

func viewOf(p domain.Product) productView {
	ratings := make([]int, 0, len(p.Reviews))
	for _, r := range p.Reviews {
		ratings = append(ratings, r.Rating)
	}
	_, label := pricing.AverageRating(ratings)
	return productView{Product: p, LegacyID: p.ID, AverageRating: label, ReviewCount: len(ratings)}
}

// GET /api/products[?category=]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	category := c.Query("category")
	if category != "" {
		var ok bool
		if category, ok = validate.Category(category); !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "category"})
			return jsonError(c, fiber.StatusBadRequest, "Invalid category")
		}
	}
	ps, err := h.Catalog.ListProducts(c.UserContext())
	if err != nil {
		return fail(c, "products.list", err, "", "Could not load products")
	}
	ps = services.FilterByCategory(ps, category)
	out := make([]productView, 0, len(ps))
	for _, p := range ps {
		out = append(out, viewOf(p))
	}
	return c.JSON(out)
}

// GET /api/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return jsonError(c, fiber.StatusNotFound, "Product not found")
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		return fail(c, "products.get", err, "Product not found", "Could not load product")
	}
	return c.JSON(viewOf(p))
}

type reviewRequest struct {
	User    string `json:"user"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// POST /api/products/:id/review
func (h *ProductHandler) Review(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return jsonError(c, fiber.StatusNotFound, "Product not found")
	}
	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		log.Security(c, "validation.fail", map[string]any{"field": "body"})
		return jsonError(c, fiber.StatusBadRequest, "Invalid review")
	}
	p, err := h.Catalog.AppendReview(c.UserContext(), id, domain.Review{
		User: req.User, Rating: req.Rating, Comment: req.Comment,
	})
	if err != nil {
		return fail(c, "review.append", err, "Product not found", "Could not save review")
	}
	log.Audit(c, "review.append", map[string]any{"product": id, "rating": req.Rating})
	return c.JSON(viewOf(p))
}
