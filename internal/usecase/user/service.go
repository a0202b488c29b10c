package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hirelink/internal/domain/user"
	"hirelink/internal/infrastructure/cache"
	"hirelink/internal/repository"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInternal     = errors.New("internal error")
)

type UpdateProfileInput struct {
	Email   string
	Profile user.Profile
}

type ProfileIndexer interface {
	TryIndex(ctx context.Context, p user.Profile)
}

// CacheInvalidator drops cached entries derived from a profile.
type CacheInvalidator interface {
	Delete(ctx context.Context, keys ...string) error
}

type Service struct {
	users   repository.UserRepository
	indexer ProfileIndexer
	cache   CacheInvalidator
	logger  *zap.Logger
}

func NewService(users repository.UserRepository, indexer ProfileIndexer, c CacheInvalidator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, indexer: indexer, cache: c, logger: logger}
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	p, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.Profile{}, ErrNotFound
		}
		return user.Profile{}, ErrInternal
	}
	p.PasswordHash = ""
	return p, nil
}

// UpdateProfile replaces every profile section of the user, then refreshes
// the candidate index and drops the cached recommendations.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.Profile, error) {
	current, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.Profile{}, ErrNotFound
		}
		return user.Profile{}, ErrInternal
	}

	p, err := in.Profile.Normalize()
	if err != nil {
		return user.Profile{}, ErrInvalidInput
	}
	p.User.ID = userID
	p.User.CreatedAt = current.CreatedAt
	p.Email = current.Email
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" {
		if !strings.Contains(email, "@") {
			return user.Profile{}, ErrInvalidInput
		}
		p.Email = email
	}

	if err := s.users.UpdateProfile(ctx, p); err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken):
			return user.Profile{}, ErrEmailTaken
		case errors.Is(err, user.ErrNotFound):
			return user.Profile{}, ErrNotFound
		default:
			return user.Profile{}, ErrInternal
		}
	}

	updated, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return user.Profile{}, ErrInternal
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cache.RecommendationKey(userID)); err != nil {
			s.logger.Warn("recommendation cache not invalidated", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}
	if s.indexer != nil {
		s.indexer.TryIndex(ctx, updated)
	}

	updated.PasswordHash = ""
	return updated, nil
}
