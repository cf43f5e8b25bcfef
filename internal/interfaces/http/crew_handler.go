package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/intecelectric/crm-api/internal/application/crew"
	"github.com/intecelectric/crm-api/internal/application/dto"
)

// CrewHandler handles crew roster requests.
type CrewHandler struct {
	uc *crew.UseCase
}

// NewCrewHandler builds the handler.
func NewCrewHandler(uc *crew.UseCase) *CrewHandler {
	return &CrewHandler{uc: uc}
}

// crewDetail is the single-member payload: the member plus recent jobs.
type crewDetail struct {
	*dto.CrewMemberResponse
	RecentJobs []*dto.JobResponse `json:"recent_jobs,omitempty"`
}

// Create POST /api/crew
func (h *CrewHandler) Create(c *fiber.Ctx) error {
	var in dto.CrewMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	member, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(crewMemberResponse(member))
}

// GetByID GET /api/crew/:id
func (h *CrewHandler) GetByID(c *fiber.Ctx) error {
	member, assignments, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out := crewDetail{CrewMemberResponse: crewMemberResponse(member)}
	for _, job := range assignments {
		out.RecentJobs = append(out.RecentJobs, jobResponse(job))
	}
	return c.JSON(out)
}

// List GET /api/crew?active=true
func (h *CrewHandler) List(c *fiber.Ctx) error {
	var activeOnly *bool
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return badBody(c)
		}
		activeOnly = &active
	}
	list, err := h.uc.List(c.Context(), activeOnly)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]*dto.CrewMemberResponse, 0, len(list))
	for _, member := range list {
		out = append(out, crewMemberResponse(member))
	}
	return c.JSON(out)
}

// Update PUT /api/crew/:id
func (h *CrewHandler) Update(c *fiber.Ctx) error {
	var in dto.CrewMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	member, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(crewMemberResponse(member))
}

// Deactivate DELETE /api/crew/:id
func (h *CrewHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "crew member deactivated"})
}
