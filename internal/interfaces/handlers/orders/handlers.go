package orders

import (
	ordersvc "pazar-backend/internal/application/orders"
	"pazar-backend/internal/middleware"
	"pazar-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for order endpoints.
type Handlers struct {
	Service *ordersvc.Service
}

// List GET /api/v1/orders — the active shop's order items, newest first.
func (h *Handlers) List(c *fiber.Ctx) error {
	shop := middleware.GetSessionShop(c)
	rows, err := h.Service.ListForShop(c.Context(), shop.ID)
	if err != nil {
		if err.Error() == "Invalid shop ID format (must be a valid UUID)" {
			return response.Error(c, err.Error(), 400, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Orders fetched successfully", rows, nil)
}
