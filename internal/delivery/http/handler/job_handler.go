package handler

import (
	"context"
	"errors"

	"hirelink/internal/delivery/http/dto"
	"hirelink/internal/delivery/http/middleware"
	"hirelink/internal/domain/job"
	"hirelink/internal/pkg/response"
	jobuc "hirelink/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobUsecase interface {
	Post(ctx context.Context, hrID uuid.UUID, in jobuc.PostInput) (job.Job, error)
	List(ctx context.Context, in jobuc.ListInput) ([]job.Job, error)
	Get(ctx context.Context, id uuid.UUID) (job.Job, error)
	Dashboard(ctx context.Context, hrID uuid.UUID) ([]job.Job, error)
}

type JobHandler struct {
	uc JobUsecase
}

func NewJobHandler(uc JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

// RegisterRoutes mounts the public listing.
func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:job_id", h.Get)
}

func (h *JobHandler) RegisterHRRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/post-job", h.Post)
	r.Get("/dashboard", h.Dashboard)
}

func (h *JobHandler) Post(c fiber.Ctx) error {
	hrID, err := subjectID(c)
	if err != nil {
		return err
	}

	var req dto.PostJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	j, err := h.uc.Post(c.Context(), hrID, jobuc.PostInput{
		Title:       req.Title,
		WorkType:    req.WorkType,
		Location:    req.Location,
		JobType:     req.JobType,
		Description: req.Description,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job posted successfully", dto.NewJobResponse(j))
}

func (h *JobHandler) Dashboard(c fiber.Ctx) error {
	hrID, err := subjectID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.Dashboard(c.Context(), hrID)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.List(c, response.MessageOK, dto.NewJobResponses(items), response.Meta{Count: len(items)})
}

func (h *JobHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return err
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return err
	}
	if limit < 0 || offset < 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid pagination", nil, nil)
	}

	in := jobuc.ListInput{Query: c.Query("q"), Limit: limit, Offset: offset}
	items, err := h.uc.List(c.Context(), in)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.List(c, response.MessageOK, dto.NewJobResponses(items), response.Meta{
		Count:  len(items),
		Limit:  limit,
		Offset: offset,
	})
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}

	j, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func mapJobUsecaseError(err error) error {
	switch {
	case errors.Is(err, jobuc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, jobuc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, jobuc.ErrNoJobs):
		return middleware.NewAppError(fiber.StatusNotFound, "No jobs found for this HR", nil, err)
	case errors.Is(err, jobuc.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return internalError(err)
	}
}
