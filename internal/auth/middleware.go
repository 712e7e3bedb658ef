package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	userIDKey   = "user_id"
	nicknameKey = "nickname"
	adminKey    = "admin"
)

// Middleware checks the Authorization bearer token and stores the
// identity in the request locals. Without a valid token the request is
// rejected with 401.
func Middleware(t *Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		h := c.Get(fiber.HeaderAuthorization)

		token, found := strings.CutPrefix(h, "Bearer ")
		if !found || token == "" {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		claims, err := t.Validate(token)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		c.Locals(userIDKey, claims.UserID)
		c.Locals(nicknameKey, claims.Nickname)
		c.Locals(adminKey, claims.Admin)

		return c.Next()
	}
}

func UserID(c *fiber.Ctx) uint {
	if v, ok := c.Locals(userIDKey).(uint); ok {
		return v
	}

	return 0
}

func Nickname(c *fiber.Ctx) string {
	if v, ok := c.Locals(nicknameKey).(string); ok {
		return v
	}

	return ""
}

func IsAdmin(c *fiber.Ctx) bool {
	if v, ok := c.Locals(adminKey).(bool); ok {
		return v
	}

	return false
}
