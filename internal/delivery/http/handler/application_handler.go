package handler

import (
	"bytes"
	"context"
	"errors"

	"hirelink/internal/delivery/http/dto"
	"hirelink/internal/delivery/http/middleware"
	"hirelink/internal/domain/job"
	"hirelink/internal/pkg/response"
	appuc "hirelink/internal/usecase/application"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ApplicationUsecase interface {
	Apply(ctx context.Context, userID, jobID uuid.UUID) (job.Application, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]job.UserApplication, error)
	ListApplicants(ctx context.Context, hrID, jobID uuid.UUID) (job.Job, []job.Applicant, error)
	ExportApplicants(ctx context.Context, hrID, jobID uuid.UUID) (*bytes.Buffer, string, error)
}

type ApplicationHandler struct {
	uc ApplicationUsecase
}

func NewApplicationHandler(uc ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/jobs/:job_id/apply", h.Apply)
	r.Get("/applications", h.ListMine)
}

func (h *ApplicationHandler) RegisterHRRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs/:job_id/applicants", h.ListApplicants)
	r.Get("/jobs/:job_id/applicants/export", h.Export)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}

	a, err := h.uc.Apply(c.Context(), userID, jobID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job application submitted successfully", dto.NewApplyResponse(a))
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMine(c.Context(), userID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.List(c, response.MessageOK, dto.NewUserApplicationResponses(items), response.Meta{Count: len(items)})
}

func (h *ApplicationHandler) ListApplicants(c fiber.Ctx) error {
	hrID, err := subjectID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}

	j, items, err := h.uc.ListApplicants(c.Context(), hrID, jobID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicantsResponse(j, items))
}

func (h *ApplicationHandler) Export(c fiber.Ctx) error {
	hrID, err := subjectID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}

	buf, name, err := h.uc.ExportApplicants(c.Context(), hrID, jobID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

func mapApplicationUsecaseError(err error) error {
	switch {
	case errors.Is(err, appuc.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, appuc.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, appuc.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "Already applied for this job", nil, err)
	case errors.Is(err, appuc.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	default:
		return internalError(err)
	}
}
