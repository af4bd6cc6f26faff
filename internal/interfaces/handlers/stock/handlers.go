package stock

import (
	stocksvc "pazar-backend/internal/application/stock"
	"pazar-backend/internal/middleware"
	"pazar-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for stock endpoints.
type Handlers struct {
	Service *stocksvc.Service
}

var stockStatusMap = map[string]int{
	"Product not found":                             404,
	"Invalid shop ID format (must be a valid UUID)": 400,
	"Quantity cannot be negative":                   400,
}

// List GET /api/v1/stock — the inventory table with category and stock filters.
func (h *Handlers) List(c *fiber.Ctx) error {
	shop := middleware.GetSessionShop(c)
	in := stocksvc.ListInput{
		ShopID:         shop.ID,
		Search:         c.Query("search"),
		Category:       c.Query("category"),
		Subcategory:    c.Query("subcategory"),
		Subsubcategory: c.Query("subsubcategory"),
		OutOfStockOnly: c.QueryBool("out_of_stock"),
		Offset:         c.QueryInt("offset", 0),
		Limit:          c.QueryInt("limit", 20),
	}
	products, total, err := h.Service.List(c.Context(), in)
	if err != nil {
		if code, ok := stockStatusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Stock fetched successfully", products, fiber.Map{
		"total":  total,
		"offset": in.Offset,
		"limit":  in.Limit,
	})
}

// UpdateQuantity PUT /api/v1/stock/:id — overall quantity, or one color when
// the body carries a color name.
func (h *Handlers) UpdateQuantity(c *fiber.Ctx) error {
	shop := middleware.GetSessionShop(c)
	var body struct {
		Color    string `json:"color"`
		Quantity int    `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	product, err := h.Service.UpdateQuantity(c.Context(), stocksvc.UpdateQuantityInput{
		ShopID:    shop.ID,
		ProductID: c.Params("id"),
		Color:     body.Color,
		Quantity:  body.Quantity,
	})
	if err != nil {
		if code, ok := stockStatusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Stock updated successfully", product, nil)
}
