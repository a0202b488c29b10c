package handler

import (
	"context"
	"errors"

	"hirelink/internal/delivery/http/dto"
	"hirelink/internal/delivery/http/middleware"
	"hirelink/internal/domain/user"
	"hirelink/internal/pkg/response"
	useruc "hirelink/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in useruc.UpdateProfileInput) (user.Profile, error)
}

type UserHandler struct {
	uc UserUsecase
}

func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/profile", h.GetProfile)
	r.Put("/profile", h.UpdateProfile)
}

// RegisterHRRoutes exposes candidate profiles to HR accounts.
func (h *UserHandler) RegisterHRRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/user-profile/:user_id", h.ViewCandidate)
}

func (h *UserHandler) GetProfile(c fiber.Ctx) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	p, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	p, err := h.uc.UpdateProfile(c.Context(), userID, useruc.UpdateProfileInput{
		Email:   req.Email,
		Profile: req.ToProfile(),
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile updated successfully", dto.NewProfileResponse(p))
}

func (h *UserHandler) ViewCandidate(c fiber.Ctx) error {
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		return err
	}

	p, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func mapUserUsecaseError(err error) error {
	switch {
	case errors.Is(err, useruc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, useruc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, useruc.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	default:
		return internalError(err)
	}
}
