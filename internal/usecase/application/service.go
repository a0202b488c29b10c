package application

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hirelink/internal/domain/job"
	"hirelink/internal/domain/ranking"
	"hirelink/internal/domain/user"
	"hirelink/internal/export"
	"hirelink/internal/metrics"
	"hirelink/internal/repository"
	"hirelink/internal/ws"
)

var (
	ErrJobNotFound    = errors.New("job not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrAlreadyApplied = errors.New("already applied for this job")
	ErrForbidden      = errors.New("job belongs to another hr account")
	ErrInternal       = errors.New("internal error")
)

type Notifier interface {
	ApplicationReceived(hrID uuid.UUID, evt ws.ApplicationReceived)
}

type Service struct {
	jobs         repository.JobRepository
	users        repository.UserRepository
	applications repository.ApplicationRepository
	notifier     Notifier
	metrics      *metrics.Metrics
	logger       *zap.Logger
	now          func() time.Time
}

func NewService(
	jobs repository.JobRepository,
	users repository.UserRepository,
	applications repository.ApplicationRepository,
	notifier Notifier,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		jobs:         jobs,
		users:        users,
		applications: applications,
		notifier:     notifier,
		metrics:      m,
		logger:       logger,
		now:          time.Now,
	}
}

// Apply scores the user's profile against the job once and stores the
// application with that score.
func (s *Service) Apply(ctx context.Context, userID, jobID uuid.UUID) (job.Application, error) {
	var (
		j job.Job
		p user.Profile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		j, err = s.jobs.GetByID(gctx, jobID)
		return err
	})
	g.Go(func() error {
		var err error
		p, err = s.users.GetProfile(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		switch {
		case errors.Is(err, job.ErrNotFound):
			return job.Application{}, ErrJobNotFound
		case errors.Is(err, user.ErrNotFound):
			return job.Application{}, ErrUserNotFound
		default:
			return job.Application{}, ErrInternal
		}
	}

	exists, err := s.applications.Exists(ctx, userID, jobID)
	if err != nil {
		return job.Application{}, ErrInternal
	}
	if exists {
		return job.Application{}, ErrAlreadyApplied
	}

	start := s.now()
	score := ranking.Similarity(p.Text(), j.Text())
	s.metrics.ObserveRanking("apply", 1, s.now().Sub(start))

	app, err := s.applications.Create(ctx, job.Application{
		ID:         uuid.New(),
		UserID:     userID,
		JobID:      jobID,
		MatchScore: score,
	})
	if err != nil {
		if errors.Is(err, job.ErrAlreadyApplied) {
			return job.Application{}, ErrAlreadyApplied
		}
		return job.Application{}, ErrInternal
	}

	s.logger.Info("application received",
		zap.String("job_id", jobID.String()),
		zap.String("user_id", userID.String()),
		zap.Float64("match_score", score),
	)
	if s.notifier != nil {
		s.notifier.ApplicationReceived(j.HRID, ws.ApplicationReceived{
			JobID:        j.ID,
			JobTitle:     j.Title,
			UserID:       userID,
			MatchPercent: app.MatchPercent(),
		})
	}
	return app, nil
}

func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]job.UserApplication, error) {
	items, err := s.applications.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// ListApplicants returns the applicants of a job owned by hrID, best match
// first.
func (s *Service) ListApplicants(ctx context.Context, hrID, jobID uuid.UUID) (job.Job, []job.Applicant, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, nil, ErrJobNotFound
		}
		return job.Job{}, nil, ErrInternal
	}
	if j.HRID != hrID {
		return job.Job{}, nil, ErrForbidden
	}

	items, err := s.applications.ListApplicants(ctx, jobID)
	if err != nil {
		return job.Job{}, nil, ErrInternal
	}
	return j, items, nil
}

// ExportApplicants renders ListApplicants as an xlsx workbook and returns it
// with its file name.
func (s *Service) ExportApplicants(ctx context.Context, hrID, jobID uuid.UUID) (*bytes.Buffer, string, error) {
	j, items, err := s.ListApplicants(ctx, hrID, jobID)
	if err != nil {
		return nil, "", err
	}
	buf, err := export.ApplicantsWorkbook(j, items, s.now())
	if err != nil {
		s.logger.Error("applicant export failed", zap.String("job_id", jobID.String()), zap.Error(err))
		return nil, "", ErrInternal
	}
	return buf, export.FileName(j), nil
}
