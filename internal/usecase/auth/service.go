package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hirelink/internal/domain/hr"
	"hirelink/internal/domain/user"
	"hirelink/internal/pkg/jwt"
	"hirelink/internal/repository"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidRefreshToken    = errors.New("invalid refresh token")
	ErrRefreshTokenExpired    = errors.New("refresh token expired")
	ErrAccountNotFound        = errors.New("account not found")
	ErrInternal               = errors.New("internal error")
)

type RegisterUserInput struct {
	Email    string
	Password string
	Profile  user.Profile
}

type RegisterHRInput struct {
	Email    string
	Password string
	Name     string
	Company  string
}

type LoginInput struct {
	Email    string
	Password string
}

type Tokens struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// ProfileIndexer receives freshly registered profiles for candidate search.
type ProfileIndexer interface {
	TryIndex(ctx context.Context, p user.Profile)
}

type Service struct {
	users   repository.UserRepository
	hrs     repository.HRRepository
	jwt     jwt.Service
	indexer ProfileIndexer
}

func NewService(users repository.UserRepository, hrs repository.HRRepository, jwtSvc jwt.Service, indexer ProfileIndexer) *Service {
	return &Service{users: users, hrs: hrs, jwt: jwtSvc, indexer: indexer}
}

func (s *Service) RegisterUser(ctx context.Context, in RegisterUserInput) (user.Profile, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !isValidPassword(in.Password) {
		return user.Profile{}, ErrInvalidInput
	}
	p, err := in.Profile.Normalize()
	if err != nil {
		return user.Profile{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.Profile{}, ErrInternal
	}
	if exists {
		return user.Profile{}, ErrEmailAlreadyRegistered
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return user.Profile{}, ErrInternal
	}

	p.ID = uuid.New()
	p.Email = email
	p.PasswordHash = hash
	if err := s.users.CreateProfile(ctx, p); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.Profile{}, ErrEmailAlreadyRegistered
		}
		return user.Profile{}, ErrInternal
	}

	created, err := s.users.GetProfile(ctx, p.ID)
	if err != nil {
		return user.Profile{}, ErrInternal
	}
	if s.indexer != nil {
		s.indexer.TryIndex(ctx, created)
	}
	created.PasswordHash = ""
	return created, nil
}

func (s *Service) RegisterHR(ctx context.Context, in RegisterHRInput) (hr.HR, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	company := strings.TrimSpace(in.Company)
	if email == "" || name == "" || company == "" || !isValidPassword(in.Password) {
		return hr.HR{}, ErrInvalidInput
	}

	exists, err := s.hrs.ExistsByEmail(ctx, email)
	if err != nil {
		return hr.HR{}, ErrInternal
	}
	if exists {
		return hr.HR{}, ErrEmailAlreadyRegistered
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return hr.HR{}, ErrInternal
	}

	h := hr.HR{ID: uuid.New(), Email: email, Name: name, Company: company, PasswordHash: hash}
	if err := s.hrs.Create(ctx, h); err != nil {
		if errors.Is(err, hr.ErrEmailTaken) {
			return hr.HR{}, ErrEmailAlreadyRegistered
		}
		return hr.HR{}, ErrInternal
	}

	created, err := s.hrs.GetByID(ctx, h.ID)
	if err != nil {
		return hr.HR{}, ErrInternal
	}
	created.PasswordHash = ""
	return created, nil
}

func (s *Service) LoginUser(ctx context.Context, in LoginInput) (user.User, Tokens, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, Tokens{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, Tokens{}, ErrInvalidCredentials
		}
		return user.User{}, Tokens{}, ErrInternal
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, Tokens{}, ErrInvalidCredentials
	}

	tokens, err := s.issue(u.ID, u.Email, jwt.RoleUser)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	u.PasswordHash = ""
	return u, tokens, nil
}

func (s *Service) LoginHR(ctx context.Context, in LoginInput) (hr.HR, Tokens, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return hr.HR{}, Tokens{}, ErrInvalidCredentials
	}

	h, err := s.hrs.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			return hr.HR{}, Tokens{}, ErrInvalidCredentials
		}
		return hr.HR{}, Tokens{}, ErrInternal
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.PasswordHash), []byte(in.Password)); err != nil {
		return hr.HR{}, Tokens{}, ErrInvalidCredentials
	}

	tokens, err := s.issue(h.ID, h.Email, jwt.RoleHR)
	if err != nil {
		return hr.HR{}, Tokens{}, err
	}
	h.PasswordHash = ""
	return h, tokens, nil
}

// Refresh trades a refresh token for a new token pair. The account must
// still exist.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return Tokens{}, ErrInvalidRefreshToken
	}

	claims, err := s.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Tokens{}, ErrRefreshTokenExpired
		}
		return Tokens{}, ErrInvalidRefreshToken
	}
	if claims.TokenType != jwt.TokenTypeRefresh || claims.SubjectID == uuid.Nil {
		return Tokens{}, ErrInvalidRefreshToken
	}

	var email string
	switch claims.Role {
	case jwt.RoleUser:
		u, err := s.users.GetByID(ctx, claims.SubjectID)
		if err != nil {
			return Tokens{}, lookupError(err, user.ErrNotFound)
		}
		email = u.Email
	case jwt.RoleHR:
		h, err := s.hrs.GetByID(ctx, claims.SubjectID)
		if err != nil {
			return Tokens{}, lookupError(err, hr.ErrNotFound)
		}
		email = h.Email
	default:
		return Tokens{}, ErrInvalidRefreshToken
	}

	return s.issue(claims.SubjectID, email, claims.Role)
}

// GetHR returns the recruiter account behind an HR token.
func (s *Service) GetHR(ctx context.Context, id uuid.UUID) (hr.HR, error) {
	h, err := s.hrs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			return hr.HR{}, ErrAccountNotFound
		}
		return hr.HR{}, ErrInternal
	}
	h.PasswordHash = ""
	return h, nil
}

func (s *Service) issue(id uuid.UUID, email string, role jwt.Role) (Tokens, error) {
	access, err := s.jwt.GenerateAccessToken(id, email, role)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	refresh, err := s.jwt.GenerateRefreshToken(id, role)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	return Tokens{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

func lookupError(err, notFound error) error {
	if errors.Is(err, notFound) {
		return ErrInvalidRefreshToken
	}
	return ErrInternal
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return ""
	}
	return strings.ToLower(email)
}

// bcrypt reads at most 72 bytes of a password.
const maxPasswordBytes = 72

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8 && len(pw) <= maxPasswordBytes
}

func hashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
