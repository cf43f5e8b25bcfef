package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/intecelectric/crm-api/internal/application/activity"
	"github.com/intecelectric/crm-api/internal/application/dto"
	"github.com/intecelectric/crm-api/internal/domain/repository"
)

// ActivityHandler exposes the audit trail.
type ActivityHandler struct {
	uc *activity.UseCase
}

// NewActivityHandler builds the handler.
func NewActivityHandler(uc *activity.UseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List GET /api/activities?job_id=&invoice_id=&type=&limit=&offset=
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	list, total, err := h.uc.List(c.Context(), repository.ActivityFilter{
		JobID:     c.Query("job_id"),
		InvoiceID: c.Query("invoice_id"),
		Type:      c.Query("type"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(dto.ActivityListResponse{
		Activities: activityResponses(list),
		Page:       dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}
