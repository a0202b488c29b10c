package talent

import (
	"context"
	"math"
	"strings"

	"github.com/pkg/errors"

	"hirelink/internal/domain/ai"
	"hirelink/internal/domain/candidate"
	"hirelink/internal/repository"
)

var (
	ErrEmptyQuery  = errors.New("query is required")
	ErrUnavailable = errors.New("embedding service unavailable")
	ErrInternal    = errors.New("internal error")
)

type SearchResult struct {
	Query   string            `json:"query"`
	Matches []candidate.Match `json:"matches"`
}

type Searcher struct {
	embedder     ai.Embedder
	vectors      repository.CandidateVectorRepository
	defaultLimit int
	maxLimit     int
}

func NewSearcher(embedder ai.Embedder, vectors repository.CandidateVectorRepository, defaultLimit, maxLimit int) *Searcher {
	if defaultLimit <= 0 {
		defaultLimit = 5
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &Searcher{embedder: embedder, vectors: vectors, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// Search embeds query and returns the nearest candidates, best first, with
// scores rounded to four decimals.
func (s *Searcher) Search(ctx context.Context, query string, limit int) (SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResult{}, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		switch ai.Kind(err) {
		case ai.ErrUnavailable:
			return SearchResult{}, errors.Wrap(ErrUnavailable, err.Error())
		case ai.ErrInvalidInput:
			return SearchResult{}, ErrEmptyQuery
		default:
			return SearchResult{}, errors.Wrap(ErrInternal, err.Error())
		}
	}

	matches, err := s.vectors.Search(ctx, vec, limit)
	if err != nil {
		return SearchResult{}, errors.Wrap(ErrInternal, err.Error())
	}
	if len(matches) == 0 {
		return SearchResult{}, candidate.ErrNoMatches
	}

	for i := range matches {
		matches[i].Score = math.Round(matches[i].Score*1e4) / 1e4
	}
	return SearchResult{Query: query, Matches: matches}, nil
}
