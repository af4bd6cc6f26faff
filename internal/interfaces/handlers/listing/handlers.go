package listing

import (
	listsvc "pazar-backend/internal/application/listing"
	"pazar-backend/internal/middleware"
	"pazar-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for the compose-step draft endpoints.
type Handlers struct {
	Channel listsvc.DraftChannel
}

var draftStatusMap = map[string]int{
	"Please enter a product title":           400,
	"Please enter a product description":     400,
	"Please enter a valid price":             400,
	"Please enter a valid quantity":          400,
	"Please select a product condition":      400,
	"Please select a delivery option":        400,
	"Please complete the category selection": 400,
	"Please upload at least one product image": 400,
}

// Submit POST /api/v1/listing/draft — validate the submitted draft and hand
// it to the preview step through the channel. The body is the encoded draft
// (files as data URLs); it is decoded, run through the form submit sequence
// and written back in encoded form.
func (h *Handlers) Submit(c *fiber.Ctx) error {
	userID := sessionUserID(c)
	if userID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	var enc listsvc.EncodedDraft
	if err := c.BodyParser(&enc); err != nil {
		return response.Error(c, "Invalid draft payload", 400, nil)
	}
	draft, err := listsvc.Decode(enc)
	if err != nil {
		return response.Error(c, "Invalid draft payload", 400, nil)
	}

	form := listsvc.NewForm()
	form.Restore(draft)
	form.FinishRestore()

	encoded, err := form.Submit()
	if err != nil {
		if code, ok := draftStatusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	if err := h.Channel.Write(c.Context(), userID, encoded); err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Draft submitted", fiber.Map{"next": "/listing/preview"}, nil)
}

// Restore GET /api/v1/listing/draft — return the stored draft for the compose
// page to rehydrate from. Non-destructive.
func (h *Handlers) Restore(c *fiber.Ctx) error {
	userID := sessionUserID(c)
	if userID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}
	enc, err := h.Channel.Read(c.Context(), userID)
	if err != nil {
		if err == listsvc.ErrNoDraft {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Draft fetched", enc, nil)
}

// Discard DELETE /api/v1/listing/draft — drop the stored draft.
func (h *Handlers) Discard(c *fiber.Ctx) error {
	userID := sessionUserID(c)
	if userID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}
	if err := h.Channel.Clear(c.Context(), userID); err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Draft discarded", nil, nil)
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
