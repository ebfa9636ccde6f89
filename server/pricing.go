package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"kurir-pintar/api/models"
	"kurir-pintar/api/store"
)

// ListPricingTiers handles GET /api/v1/pricing, sorted ascending by
// min_distance.
// @Summary List distance tiers
// @Tags Pricing
// @Produce json
// @Success 200 {array} models.PricingTier
// @Router /pricing [get]
func (s *Server) ListPricingTiers(c *fiber.Ctx) error {
	tiers, err := s.store.ListPricingTiers(c.Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(tiers)
}

// CreatePricingTier handles POST /api/v1/pricing.
func (s *Server) CreatePricingTier(c *fiber.Ctx) error {
	var in models.PricingTierInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if in.MinDistance < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "min distance cannot be negative")
	}
	if in.MaxDistance != nil && *in.MaxDistance <= in.MinDistance {
		return fiber.NewError(fiber.StatusBadRequest, "max distance must be greater than min distance")
	}
	if in.BasePrice < 0 || in.PricePerKm < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "prices cannot be negative")
	}

	tier, err := s.store.CreatePricingTier(c.Context(), userID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(tier)
}

// DeletePricingTier handles DELETE /api/v1/pricing/:id.
func (s *Server) DeletePricingTier(c *fiber.Ctx) error {
	err := s.store.DeletePricingTier(c.Context(), userID(c), c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

type quoteRequest struct {
	Distance float64 `json:"distance"`
}

// QuotePrice handles POST /api/v1/pricing/quote: picks the active tier
// containing the distance and applies base + per-km.
func (s *Server) QuotePrice(c *fiber.Ctx) error {
	var req quoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Distance < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "distance cannot be negative")
	}

	tiers, err := s.store.ListPricingTiers(c.Context(), userID(c))
	if err != nil {
		return err
	}

	tier := models.TierForDistance(tiers, req.Distance)
	if tier == nil {
		return fiber.NewError(fiber.StatusNotFound, "no pricing tier covers this distance")
	}

	return c.JSON(fiber.Map{
		"distance": req.Distance,
		"tier_id":  tier.ID,
		"price":    models.PriceForDistance(tier, req.Distance),
	})
}
