package job

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hirelink/internal/domain/hr"
	"hirelink/internal/domain/job"
	"hirelink/internal/infrastructure/cache"
	"hirelink/internal/repository"
	"hirelink/internal/search"
	"hirelink/internal/ws"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("job not found")
	ErrNoJobs       = errors.New("no jobs posted")
	ErrUnauthorized = errors.New("hr account not found")
	ErrInternal     = errors.New("internal error")
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type PostInput struct {
	Title       string
	WorkType    string
	Location    string
	JobType     string
	Description string
}

type ListInput struct {
	Query  string
	Limit  int
	Offset int
}

type Notifier interface {
	JobPosted(evt ws.JobPosted)
}

// PatternInvalidator drops every cached entry whose key matches a glob.
type PatternInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

type Service struct {
	jobs     repository.JobRepository
	hrs      repository.HRRepository
	cache    PatternInvalidator
	notifier Notifier
	logger   *zap.Logger
}

func NewService(jobs repository.JobRepository, hrs repository.HRRepository, c PatternInvalidator, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{jobs: jobs, hrs: hrs, cache: c, notifier: notifier, logger: logger}
}

// Post publishes a job for the HR account. The company name is taken from
// the account, never from the request.
func (s *Service) Post(ctx context.Context, hrID uuid.UUID, in PostInput) (job.Job, error) {
	j := job.Job{
		ID:          uuid.New(),
		HRID:        hrID,
		Title:       strings.TrimSpace(in.Title),
		WorkType:    strings.TrimSpace(in.WorkType),
		Location:    strings.TrimSpace(in.Location),
		JobType:     strings.TrimSpace(in.JobType),
		Description: strings.TrimSpace(in.Description),
	}
	if j.Title == "" || j.WorkType == "" || j.Location == "" || j.JobType == "" || j.Description == "" {
		return job.Job{}, ErrInvalidInput
	}

	owner, err := s.hrs.GetByID(ctx, hrID)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			return job.Job{}, ErrUnauthorized
		}
		return job.Job{}, ErrInternal
	}
	j.CompanyName = owner.Company

	if err := s.jobs.Create(ctx, j); err != nil {
		return job.Job{}, ErrInternal
	}
	created, err := s.jobs.GetByID(ctx, j.ID)
	if err != nil {
		return job.Job{}, ErrInternal
	}

	// Every cached ranking is stale once the catalogue grows.
	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, cache.RecommendationPattern()); err != nil {
			s.logger.Warn("recommendation cache not invalidated", zap.Error(err))
		}
	}
	if s.notifier != nil {
		s.notifier.JobPosted(ws.JobPosted{JobID: created.ID, Title: created.Title, CompanyName: created.CompanyName})
	}
	return created, nil
}

func (s *Service) List(ctx context.Context, in ListInput) ([]job.Job, error) {
	if in.Limit < 0 || in.Offset < 0 {
		return nil, ErrInvalidInput
	}
	limit := in.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	f := job.ListFilter{Limit: limit, Offset: in.Offset}
	if strings.TrimSpace(in.Query) != "" {
		qc := search.ProcessQuery(in.Query)
		// a query of punctuation alone matches no searchable text
		if qc.Normalized == "" {
			return []job.Job{}, nil
		}
		f.Terms = qc.Variants
	}

	items, err := s.jobs.List(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}
	return j, nil
}

// Dashboard lists the jobs posted by the HR account; ErrNoJobs when none.
func (s *Service) Dashboard(ctx context.Context, hrID uuid.UUID) ([]job.Job, error) {
	items, err := s.jobs.ListByHR(ctx, hrID)
	if err != nil {
		return nil, ErrInternal
	}
	if len(items) == 0 {
		return nil, ErrNoJobs
	}
	return items, nil
}
