package handler

import (
	"context"
	"errors"

	"hirelink/internal/delivery/http/middleware"
	"hirelink/internal/pkg/response"
	"hirelink/internal/usecase/recommendation"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RecommendationUsecase interface {
	Recommend(ctx context.Context, userID uuid.UUID) ([]recommendation.Recommendation, error)
}

type RecommendationHandler struct {
	uc RecommendationUsecase
}

func NewRecommendationHandler(uc RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs", h.Recommend)
}

func (h *RecommendationHandler) Recommend(c fiber.Ctx) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.Recommend(c.Context(), userID)
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}
	return response.List(c, response.MessageOK, items, response.Meta{Count: len(items)})
}

func mapRecommendationUsecaseError(err error) error {
	switch {
	case errors.Is(err, recommendation.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User profile not found", nil, err)
	case errors.Is(err, recommendation.ErrEmptyProfile):
		return middleware.NewAppError(fiber.StatusBadRequest, "User profile is incomplete", nil, err)
	case errors.Is(err, recommendation.ErrNoJobs):
		return middleware.NewAppError(fiber.StatusNotFound, "No jobs available", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "Error computing recommendations", nil, err).Public()
	}
}
