package handler

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"hirelink/internal/delivery/http/dto"
	"hirelink/internal/delivery/http/middleware"
	"hirelink/internal/domain/interview"
	"hirelink/internal/pkg/response"
	interviewuc "hirelink/internal/usecase/interview"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type InterviewUsecase interface {
	Start(ctx context.Context, userID uuid.UUID, settings interview.Settings) (interview.Session, error)
	Get(ctx context.Context, userID uuid.UUID, id string) (interview.Session, error)
	Answer(ctx context.Context, userID uuid.UUID, id string, index int, text string) (interview.Answer, error)
	AnswerAudio(ctx context.Context, userID uuid.UUID, id string, index int, filename string, audio []byte) (interview.Answer, error)
	Finish(ctx context.Context, userID uuid.UUID, id string) (interview.Summary, error)
}

type InterviewHandler struct {
	uc InterviewUsecase
}

func NewInterviewHandler(uc InterviewUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/sessions", h.Start)
	r.Get("/sessions/:id", h.Get)
	r.Post("/sessions/:id/answers", h.Answer)
	r.Post("/sessions/:id/answers/audio", h.AnswerAudio)
	r.Post("/sessions/:id/finish", h.Finish)
}

func (h *InterviewHandler) Start(c fiber.Ctx) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	var req dto.StartInterviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	sess, err := h.uc.Start(c.Context(), userID, req.Settings())
	if err != nil {
		return mapInterviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Interview session started", sess)
}

func (h *InterviewHandler) Get(c fiber.Ctx) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	sess, err := h.uc.Get(c.Context(), userID, c.Params("id"))
	if err != nil {
		return mapInterviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, sess)
}

func (h *InterviewHandler) Answer(c fiber.Ctx) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	var req dto.AnswerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	if req.QuestionIndex == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "question_index is required", nil, nil)
	}

	ans, err := h.uc.Answer(c.Context(), userID, c.Params("id"), *req.QuestionIndex, req.Answer)
	if err != nil {
		return mapInterviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, ans)
}

// AnswerAudio expects a multipart form with an "audio" file and a
// "question_index" field.
func (h *InterviewHandler) AnswerAudio(c fiber.Ctx) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	index, err := strconv.Atoi(strings.TrimSpace(c.FormValue("question_index")))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid question_index", nil, err)
	}
	fh, err := c.FormFile("audio")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "audio file is required", nil, err)
	}
	f, err := fh.Open()
	if err != nil {
		return internalError(err)
	}
	defer f.Close()

	audio, err := io.ReadAll(f)
	if err != nil {
		return internalError(err)
	}

	ans, err := h.uc.AnswerAudio(c.Context(), userID, c.Params("id"), index, fh.Filename, audio)
	if err != nil {
		return mapInterviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, ans)
}

func (h *InterviewHandler) Finish(c fiber.Ctx) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	sum, err := h.uc.Finish(c.Context(), userID, c.Params("id"))
	if err != nil {
		return mapInterviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, sum)
}

func mapInterviewUsecaseError(err error) error {
	switch {
	case errors.Is(err, interviewuc.ErrInvalidSettings):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid interview settings", nil, err)
	case errors.Is(err, interviewuc.ErrSessionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Interview session not found", nil, err)
	case errors.Is(err, interviewuc.ErrQuestionNotFound):
		return middleware.NewAppError(fiber.StatusBadRequest, "Question index out of range", nil, err)
	case errors.Is(err, interviewuc.ErrSessionFinished):
		return middleware.NewAppError(fiber.StatusConflict, "Interview session already finished", nil, err)
	case errors.Is(err, interviewuc.ErrEmptyAnswer):
		return middleware.NewAppError(fiber.StatusBadRequest, "Answer is empty", nil, err)
	case errors.Is(err, interviewuc.ErrAudioTooLarge):
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "Audio file too large", nil, err)
	case errors.Is(err, interviewuc.ErrTranscriptionUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Transcription is temporarily unavailable", nil, err)
	default:
		return internalError(err)
	}
}
