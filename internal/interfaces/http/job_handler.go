package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/intecelectric/crm-api/internal/application/dto"
	"github.com/intecelectric/crm-api/internal/application/jobs"
	"github.com/intecelectric/crm-api/internal/domain/repository"
)

// JobHandler handles job requests.
type JobHandler struct {
	uc *jobs.UseCase
}

// NewJobHandler builds the handler.
func NewJobHandler(uc *jobs.UseCase) *JobHandler {
	return &JobHandler{uc: uc}
}

// jobDetail is the single-job payload: the job plus its recent audit trail.
type jobDetail struct {
	*dto.JobResponse
	Activities []*dto.ActivityResponse `json:"activities,omitempty"`
}

// Create POST /api/jobs
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	job, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(jobResponse(job))
}

// GetByID GET /api/jobs/:id
func (h *JobHandler) GetByID(c *fiber.Ctx) error {
	job, activities, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(jobDetail{
		JobResponse: jobResponse(job),
		Activities:  activityResponses(activities),
	})
}

// List GET /api/jobs?search=&status=&priority=&customer_id=&is_work_order=&limit=&offset=
func (h *JobHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	filter := repository.JobFilter{
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		CustomerID: c.Query("customer_id"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	if raw := c.Query("is_work_order"); raw != "" {
		wo, err := strconv.ParseBool(raw)
		if err != nil {
			return badBody(c)
		}
		filter.IsWorkOrder = &wo
	}

	list, total, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}

	out := dto.JobListResponse{
		Jobs: make([]*dto.JobResponse, 0, len(list)),
		Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, job := range list {
		out.Jobs = append(out.Jobs, jobResponse(job))
	}
	return c.JSON(out)
}

// Update PUT /api/jobs/:id
func (h *JobHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	job, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(jobResponse(job))
}

// Delete DELETE /api/jobs/:id
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "job deleted"})
}

// AssignCrew POST /api/jobs/:id/crew
func (h *JobHandler) AssignCrew(c *fiber.Ctx) error {
	var in dto.AssignCrewRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.AssignCrew(c.Context(), GetUserID(c), c.Params("id"), in.CrewID); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "crew member assigned"})
}

// RemoveCrew DELETE /api/jobs/:id/crew/:crewId
func (h *JobHandler) RemoveCrew(c *fiber.Ctx) error {
	if err := h.uc.RemoveCrew(c.Context(), GetUserID(c), c.Params("id"), c.Params("crewId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "crew member removed"})
}
