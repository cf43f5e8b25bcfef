package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/intecelectric/crm-api/internal/application/settings"
)

// SettingsHandler handles company configuration requests.
type SettingsHandler struct {
	uc *settings.UseCase
}

// NewSettingsHandler builds the handler.
func NewSettingsHandler(uc *settings.UseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// GetAll GET /api/settings
func (h *SettingsHandler) GetAll(c *fiber.Ctx) error {
	values, err := h.uc.GetAll(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(values)
}

// Update PUT /api/settings (admin/manager only)
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in map[string]string
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	values, err := h.uc.Update(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(values)
}
