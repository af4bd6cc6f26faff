package preview

import (
	listsvc "pazar-backend/internal/application/listing"
	previewsvc "pazar-backend/internal/application/preview"
	"pazar-backend/internal/middleware"
	"pazar-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for the preview/confirm endpoints.
type Handlers struct {
	Service *previewsvc.Service
}

var confirmStatusMap = map[string]int{
	"Product name is required":             400,
	"Product description is required":      400,
	"Valid price is required":              400,
	"Valid quantity is required":           400,
	"Product condition is required":        400,
	"Delivery option is required":          400,
	"Category selection is incomplete":     400,
	"At least one product image is required": 400,
}

// Show GET /api/v1/listing/preview — the decoded draft summary. When the
// channel is empty or corrupt the client is routed back to compose, not shown
// an error dialog: 303 with the compose location.
func (h *Handlers) Show(c *fiber.Ctx) error {
	userID := sessionUserID(c)
	if userID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}
	view, err := h.Service.Load(c.Context(), userID)
	if err != nil {
		if err == listsvc.ErrNoDraft {
			return c.Status(fiber.StatusSeeOther).JSON(fiber.Map{
				"status":   "redirect",
				"location": "/listing/compose",
			})
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Preview ready", view, nil)
}

// Confirm POST /api/v1/listing/confirm — upload media, write the moderation
// record and clear the channel.
func (h *Handlers) Confirm(c *fiber.Ctx) error {
	userID := sessionUserID(c)
	if userID == "" {
		return response.Error(c, previewsvc.ErrNotSignedIn.Error(), 401, nil)
	}

	actor := previewsvc.Actor{UserID: userID, DisplayName: sessionDisplayName(c)}
	var shopRef *previewsvc.ShopRef
	if shop := middleware.GetSessionShop(c); shop != nil {
		shopRef = &previewsvc.ShopRef{ID: shop.ID, Name: shop.Name}
	}

	app, err := h.Service.Confirm(c.Context(), actor, shopRef)
	if err != nil {
		switch {
		case err == previewsvc.ErrNotSignedIn:
			return response.Error(c, err.Error(), 401, nil)
		case err == listsvc.ErrNoDraft:
			return c.Status(fiber.StatusSeeOther).JSON(fiber.Map{
				"status":   "redirect",
				"location": "/listing/compose",
			})
		default:
			if code, ok := confirmStatusMap[err.Error()]; ok {
				return response.Error(c, err.Error(), code, nil)
			}
			return response.Error(c, "Product could not be submitted, please try again", 502, nil)
		}
	}
	return response.SuccessCreated(c, "Product submitted for review", app, nil)
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

func sessionDisplayName(c *fiber.Ctx) string {
	user := middleware.GetUser(c)
	m, ok := user.(map[string]interface{})
	if !ok {
		return ""
	}
	name, _ := m["display_name"].(string)
	return name
}
