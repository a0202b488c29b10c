package handler

import (
	"context"
	"errors"

	"hirelink/internal/delivery/http/middleware"
	"hirelink/internal/domain/candidate"
	"hirelink/internal/pkg/response"
	"hirelink/internal/usecase/talent"

	"github.com/gofiber/fiber/v3"
)

type CandidateSearcher interface {
	Search(ctx context.Context, query string, limit int) (talent.SearchResult, error)
}

type CandidateHandler struct {
	searcher CandidateSearcher
}

func NewCandidateHandler(searcher CandidateSearcher) *CandidateHandler {
	return &CandidateHandler{searcher: searcher}
}

func (h *CandidateHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/search", h.Search)
}

func (h *CandidateHandler) Search(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return err
	}

	res, err := h.searcher.Search(c.Context(), c.Query("query"), limit)
	if err != nil {
		return mapCandidateSearchError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func mapCandidateSearchError(err error) error {
	switch {
	case errors.Is(err, talent.ErrEmptyQuery):
		return middleware.NewAppError(fiber.StatusBadRequest, "Query is required", nil, err)
	case errors.Is(err, candidate.ErrNoMatches):
		return middleware.NewAppError(fiber.StatusNotFound, "No matching candidates found", nil, err)
	case errors.Is(err, talent.ErrUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Search is temporarily unavailable", nil, err)
	default:
		return internalError(err)
	}
}
