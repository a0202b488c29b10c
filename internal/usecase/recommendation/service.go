package recommendation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hirelink/internal/domain/job"
	"hirelink/internal/domain/ranking"
	"hirelink/internal/domain/user"
	"hirelink/internal/infrastructure/cache"
	"hirelink/internal/metrics"
	"hirelink/internal/repository"
)

var (
	ErrProfileNotFound = errors.New("user profile not found")
	ErrEmptyProfile    = errors.New("profile has no skills, experience or projects")
	ErrNoJobs          = errors.New("no jobs available")
	ErrCompute         = errors.New("error computing recommendations")
)

const cacheName = "recommendation"

type Recommendation struct {
	JobID       uuid.UUID `json:"job_id"`
	Title       string    `json:"title"`
	CompanyName string    `json:"company_name"`
	Location    string    `json:"location"`
	WorkType    string    `json:"work_type"`
	JobType     string    `json:"job_type"`
	Description string    `json:"description"`
	Score       float64   `json:"score"`
}

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type Service struct {
	users   repository.UserRepository
	jobs    repository.JobRepository
	cache   Cache
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

func NewService(users repository.UserRepository, jobs repository.JobRepository, c Cache, ttl time.Duration, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, jobs: jobs, cache: c, ttl: ttl, metrics: m, logger: logger, now: time.Now}
}

// Recommend ranks every job against the user's profile text, best first.
// Results are cached per user until the profile or the catalogue changes.
func (s *Service) Recommend(ctx context.Context, userID uuid.UUID) ([]Recommendation, error) {
	key := cache.RecommendationKey(userID)
	if s.cache != nil {
		var cached []Recommendation
		found, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.Debug("recommendation cache read failed", zap.Error(err))
		}
		if found {
			s.metrics.CacheHit(cacheName)
			return cached, nil
		}
		s.metrics.CacheMiss(cacheName)
	}

	var (
		p    user.Profile
		jobs []job.Job
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p, err = s.users.GetProfile(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		jobs, err = s.jobs.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrCompute, err)
	}

	if p.IsEmpty() {
		return nil, ErrEmptyProfile
	}
	if len(jobs) == 0 {
		return nil, ErrNoJobs
	}

	out, err := s.rank(p, jobs)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, out, s.ttl); err != nil {
			s.logger.Debug("recommendation cache write failed", zap.Error(err))
		}
	}
	return out, nil
}

func (s *Service) rank(p user.Profile, jobs []job.Job) (out []Recommendation, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("recommendation ranking panicked", zap.Any("panic", r))
			out, err = nil, ErrCompute
		}
	}()

	start := s.now()
	ranked := ranking.RankTexts(p.Text(), jobs, job.Job.Text)
	s.metrics.ObserveRanking("recommend", len(jobs), s.now().Sub(start))

	out = make([]Recommendation, len(ranked))
	for i, r := range ranked {
		out[i] = Recommendation{
			JobID:       r.Item.ID,
			Title:       r.Item.Title,
			CompanyName: r.Item.CompanyName,
			Location:    r.Item.Location,
			WorkType:    r.Item.WorkType,
			JobType:     r.Item.JobType,
			Description: r.Item.Description,
			Score:       r.Score,
		}
	}
	return out, nil
}
