package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt"
)

// ValidateToken checks the bearer token issued by the auth provider
// and stashes the owning-user id for the handlers. Every data route
// runs behind it; rows are only ever read or written for that user.
func (s *Server) ValidateToken(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return fiber.ErrUnauthorized
	}
	tokenStr := strings.TrimPrefix(header, "Bearer ")

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return fiber.ErrUnauthorized
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return fiber.ErrUnauthorized
	}

	c.Locals("user_id", userID)
	return c.Next()
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
