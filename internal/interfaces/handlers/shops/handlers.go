package shops

import (
	shopsvc "pazar-backend/internal/application/shops"
	"pazar-backend/internal/middleware"
	"pazar-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for shop endpoints.
type Handlers struct {
	Service *shopsvc.Service
}

var shopStatusMap = map[string]int{
	"Shop not found":                                404,
	"You do not have access to this shop":           403,
	"Invalid user ID format (must be a valid UUID)": 400,
	"Valid phone number is required":                400,
	"Please select a region":                        400,
	"Address is required":                           400,
	"IBAN owner name and surname are required":      400,
	"Valid IBAN is required":                        400,
}

// List GET /api/v1/shops — every shop the user can act for, with roles.
func (h *Handlers) List(c *fiber.Ctx) error {
	userID := sessionUserID(c)
	if userID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}
	shops, err := h.Service.ListForUser(c.Context(), userID)
	if err != nil {
		if code, ok := shopStatusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Shops fetched successfully", shops, nil)
}

// Select POST /api/v1/shops/select — make a shop the session's active shop.
func (h *Handlers) Select(c *fiber.Ctx) error {
	userID := sessionUserID(c)
	if userID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}
	var body struct {
		ShopID string `json:"shop_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.ShopID == "" {
		return response.Error(c, "shop_id is required", 400, nil)
	}

	shop, err := h.Service.Select(c.Context(), userID, body.ShopID)
	if err != nil {
		if code, ok := shopStatusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	middleware.SetSessionShop(c, middleware.SessionShop{
		ID:   shop.ShopID.String(),
		Name: shop.Name,
		Role: shop.Role,
	})
	return response.Success(c, "Shop selected", shop, nil)
}

// Metrics GET /api/v1/shops/metrics — dashboard aggregate for the active shop.
func (h *Handlers) Metrics(c *fiber.Ctx) error {
	userID := sessionUserID(c)
	shop := middleware.GetSessionShop(c)
	metrics, err := h.Service.CollectMetrics(c.Context(), userID, shop.ID)
	if err != nil {
		if code, ok := shopStatusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Metrics fetched successfully", metrics, nil)
}

// GetSellerInfo GET /api/v1/shops/seller-info — nil data when not yet set;
// the client uses absence to gate the listing flow.
func (h *Handlers) GetSellerInfo(c *fiber.Ctx) error {
	shop := middleware.GetSessionShop(c)
	info, err := h.Service.GetSellerInfo(c.Context(), shop.ID)
	if err != nil {
		if code, ok := shopStatusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Seller info fetched", info, nil)
}

// PutSellerInfo PUT /api/v1/shops/seller-info — validate and upsert.
func (h *Handlers) PutSellerInfo(c *fiber.Ctx) error {
	shop := middleware.GetSessionShop(c)
	var in shopsvc.SellerInfoInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	info, err := h.Service.PutSellerInfo(c.Context(), shop.ID, in)
	if err != nil {
		if code, ok := shopStatusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Seller info saved", info, nil)
}

// DeleteSellerInfo DELETE /api/v1/shops/seller-info.
func (h *Handlers) DeleteSellerInfo(c *fiber.Ctx) error {
	shop := middleware.GetSessionShop(c)
	if err := h.Service.DeleteSellerInfo(c.Context(), shop.ID); err != nil {
		if code, ok := shopStatusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Seller info removed", nil, nil)
}

func sessionUserID(c *fiber.Ctx) string {
	user := middleware.GetUser(c)
	m, ok := user.(map[string]interface{})
	if !ok {
		return ""
	}
	id, _ := m["user_id"].(string)
	return id
}
