package middleware

import (
	"pazar-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequireShop ensures a shop is selected in the session. Must run after RequireAuth.
func RequireShop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shop := GetSessionShop(c)
		if shop == nil {
			return response.Error(c, "No shop selected", fiber.StatusPreconditionFailed, map[string]interface{}{})
		}
		c.Locals("shop", shop)
		return c.Next()
	}
}

// RequireShopRole restricts a route to the given roles for the selected shop.
// Viewer access to write routes is rejected here rather than per handler.
func RequireShopRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		shop := GetSessionShop(c)
		if shop == nil {
			return response.Error(c, "No shop selected", fiber.StatusPreconditionFailed, map[string]interface{}{})
		}
		for _, r := range roles {
			if shop.Role == r {
				c.Locals("shop", shop)
				return c.Next()
			}
		}
		return response.Error(c, "Insufficient shop permissions", fiber.StatusForbidden, map[string]interface{}{})
	}
}
