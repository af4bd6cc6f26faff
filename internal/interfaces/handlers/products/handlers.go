package products

import (
	prodsvc "pazar-backend/internal/application/products"
	"pazar-backend/internal/middleware"
	"pazar-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for product endpoints.
type Handlers struct {
	Service *prodsvc.Service
}

var productStatusMap = map[string]int{
	"Product not found":                             404,
	"Invalid shop ID format (must be a valid UUID)": 400,
	"Max quantity must be a positive number":        400,
	"Discount values cannot be negative":            400,
	"Discount threshold cannot exceed max quantity": 400,
	"Discount percentage cannot exceed 90":          400,
}

// List GET /api/v1/products — the active shop's products, paged.
func (h *Handlers) List(c *fiber.Ctx) error {
	shop := middleware.GetSessionShop(c)
	in := prodsvc.ListInput{
		ShopID: shop.ID,
		Search: c.Query("search"),
		Offset: c.QueryInt("offset", 0),
		Limit:  c.QueryInt("limit", 20),
	}
	products, total, err := h.Service.List(c.Context(), in)
	if err != nil {
		if code, ok := productStatusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Products fetched successfully", products, fiber.Map{
		"total":  total,
		"offset": in.Offset,
		"limit":  in.Limit,
	})
}

// Get GET /api/v1/products/:id — product detail with preferences and orders.
func (h *Handlers) Get(c *fiber.Ctx) error {
	shop := middleware.GetSessionShop(c)
	detail, err := h.Service.GetDetail(c.Context(), shop.ID, c.Params("id"))
	if err != nil {
		if code, ok := productStatusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Product fetched successfully", detail, nil)
}

// UpdatePreferences PUT /api/v1/products/:id/sale-preferences — upsert the
// discount rule; an all-zero body clears it.
func (h *Handlers) UpdatePreferences(c *fiber.Ctx) error {
	shop := middleware.GetSessionShop(c)
	var in prodsvc.PreferencesInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	prefs, err := h.Service.UpdatePreferences(c.Context(), shop.ID, c.Params("id"), in)
	if err != nil {
		if code, ok := productStatusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	if prefs == nil {
		return response.Success(c, "Sale preferences cleared", nil, nil)
	}
	return response.Success(c, "Sale preferences saved", prefs, nil)
}
