package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"pristine/internal/pricing"
	"pristine/internal/services"
	"pristine/internal/validate"
)

type QuoteHandler struct {
	Catalog *services.CatalogService
}

// Price answers GET /api/v1/quote?service=<slug>&size=<tag> so the
// wizard can show a live total. Unknown sizes price at the base rate;
// pricing itself never fails.
func (h *QuoteHandler) Price(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Query("service"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing or invalid service",
		})
	}
	svc, err := h.Catalog.BySlug(slug)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "service not found",
		})
	}

	size := strings.TrimSpace(c.Query("size"))
	return c.JSON(fiber.Map{
		"service":     svc.Slug,
		"base_price":  svc.BasePrice,
		"size":        size,
		"multiplier":  pricing.Multiplier(size),
		"total_price": pricing.Quote(svc.BasePrice, size),
	})
}
