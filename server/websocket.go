package server

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt"

	"kurir-pintar/api/models"
)

// ValidateWSToken is the websocket variant of ValidateToken: browsers
// cannot set headers on the upgrade request, so the token rides in the
// query string.
func (s *Server) ValidateWSToken(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return fiber.ErrUnauthorized
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return fiber.ErrUnauthorized
	}

	uid, _ := claims["user_id"].(string)
	if uid == "" {
		return fiber.ErrUnauthorized
	}

	c.Locals("user_id", uid)
	return c.Next()
}

// HandleTrackingWebSocket streams an order's status and delivery
// progress every 10 seconds until the client hangs up.
func (s *Server) HandleTrackingWebSocket(c *websocket.Conn) {
	orderID := c.Query("order_id")
	uid, _ := c.Locals("user_id").(string)
	if orderID == "" || uid == "" {
		return
	}

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		order, err := s.store.GetOrder(context.Background(), uid, orderID)
		if err != nil {
			log.Printf("Tracking lookup failed for order %s: %v", orderID, err)
			continue
		}

		delivered := 0
		for _, d := range order.Destinations {
			if d.DeliveryStatus == models.DestinationStatusDelivered {
				delivered++
			}
		}

		if err := c.WriteJSON(fiber.Map{
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"delivered":    delivered,
			"total_stops":  len(order.Destinations),
		}); err != nil {
			return
		}

		if order.Status == models.OrderStatusDelivered || order.Status == models.OrderStatusCancelled {
			return
		}
	}
}
