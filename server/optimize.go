package server

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"kurir-pintar/api/routeopt"
)

type optimizeRequest struct {
	Destinations []string `json:"destinations"`
}

// OptimizeRoute handles POST /api/v1/routes/optimize.
// @Summary Optimize a multi-stop delivery route
// @Tags Routes
// @Accept json
// @Produce json
// @Param request body optimizeRequest true "Destination addresses (2-10)"
// @Success 200 {object} routeopt.Plan
// @Failure 400 {object} map[string]string
// @Router /routes/optimize [post]
func (s *Server) OptimizeRoute(c *fiber.Ctx) error {
	var req optimizeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	// Blank entries are the caller's rows the user never filled in;
	// drop them before the count check, like the form does.
	destinations := make([]string, 0, len(req.Destinations))
	for _, d := range req.Destinations {
		if strings.TrimSpace(d) != "" {
			destinations = append(destinations, d)
		}
	}

	if len(destinations) < routeopt.MinDestinations {
		return fiber.NewError(fiber.StatusBadRequest, routeopt.ErrTooFewDestinations.Error())
	}
	if len(destinations) > routeopt.MaxDestinations {
		return fiber.NewError(fiber.StatusBadRequest, routeopt.ErrTooManyDestinations.Error())
	}

	if err := s.allowOptimize(c, userID(c)); err != nil {
		return err
	}

	log.Printf("Optimizing route for %d destinations", len(destinations))

	plan, err := s.optimizer.Optimize(c.Context(), destinations)
	if err != nil {
		if errors.Is(err, routeopt.ErrTooFewDestinations) || errors.Is(err, routeopt.ErrTooManyDestinations) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if plan.Degraded {
		routesDegraded.Inc()
	} else {
		routesOptimized.Inc()
	}

	if err := s.logEvent(map[string]interface{}{
		"event":        "route_optimized",
		"user_id":      userID(c),
		"destinations": len(destinations),
		"degraded":     plan.Degraded,
	}); err != nil {
		log.Printf("Failed to log optimization event: %v", err)
	}

	return c.JSON(fiber.Map{
		"optimizedRoute": plan.Route,
	})
}

// allowOptimize rate-limits the expensive model calls per user with a
// fixed one-minute Redis window.
func (s *Server) allowOptimize(c *fiber.Ctx, user string) error {
	if s.rdb == nil || s.cfg.RateLimit.OptimizePerMinute <= 0 {
		return nil
	}
	key := fmt.Sprintf("ratelimit:optimize:%s", user)

	count, err := s.rdb.Incr(c.Context(), key).Result()
	if err != nil {
		log.Printf("Rate limiter unavailable: %v", err)
		return nil
	}
	if count == 1 {
		s.rdb.Expire(c.Context(), key, time.Minute)
	}
	if count > int64(s.cfg.RateLimit.OptimizePerMinute) {
		return fiber.NewError(fiber.StatusTooManyRequests, "too many optimization requests, try again in a minute")
	}
	return nil
}
