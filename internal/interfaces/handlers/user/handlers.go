package user

import (
	usersvc "pazar-backend/internal/application/user"
	"pazar-backend/internal/middleware"
	"pazar-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for user endpoints.
type Handlers struct {
	Service *usersvc.Service
}

var userStatusMap = map[string]int{
	"Invalid email format":    400,
	"Invalid password format": 400,
	"Full name is required and must be a non-empty string": 400,
	"Full name contains invalid characters (only letters, spaces, hyphens, and apostrophes allowed)": 400,
	"Email already registered":                      409,
	"Missing user ID":                               400,
	"Invalid user ID format (must be a valid UUID)": 400,
	"Missing update fields":                         400,
	"No valid update fields provided":               400,
	"User not found":                                404,
}

// Create POST /api/v1/users — public registration.
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in usersvc.CreateUserInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	u, err := h.Service.CreateUser(c.Context(), in)
	if err != nil {
		if code, ok := userStatusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.SuccessCreated(c, "User created successfully", fiber.Map{
		"user_id":      u.UserID.String(),
		"fullname":     u.Fullname,
		"email":        u.Email,
		"display_name": u.DisplayName,
	}, nil)
}

// View GET /api/v1/users/me — the signed-in user's profile.
func (h *Handlers) View(c *fiber.Ctx) error {
	userID := sessionUserID(c)
	if userID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}
	u, err := h.Service.ViewUser(c.Context(), userID)
	if err != nil {
		if code, ok := userStatusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "User fetched successfully", u, nil)
}

// Update PUT /api/v1/users/me — partial update of the signed-in user.
func (h *Handlers) Update(c *fiber.Ctx) error {
	userID := sessionUserID(c)
	if userID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	u, err := h.Service.UpdateUser(c.Context(), userID, fields)
	if err != nil {
		if code, ok := userStatusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "User updated successfully", u, nil)
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
