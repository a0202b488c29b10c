package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelink/internal/domain/hr"
	"hirelink/internal/domain/user"
	"hirelink/internal/pkg/jwt"
)

type memUsers struct {
	byID map[uuid.UUID]user.Profile
}

func newMemUsers() *memUsers { return &memUsers{byID: make(map[uuid.UUID]user.Profile)} }

func (m *memUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func (m *memUsers) CreateProfile(_ context.Context, p user.Profile) error {
	if ok, _ := m.ExistsByEmail(context.Background(), p.Email); ok {
		return user.ErrEmailTaken
	}
	m.byID[p.ID] = p
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	p, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return p.User, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, p := range m.byID {
		if p.Email == email {
			return p.User, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) GetProfile(_ context.Context, id uuid.UUID) (user.Profile, error) {
	p, ok := m.byID[id]
	if !ok {
		return user.Profile{}, user.ErrNotFound
	}
	return p, nil
}

func (m *memUsers) UpdateProfile(_ context.Context, p user.Profile) error {
	m.byID[p.ID] = p
	return nil
}


type memHRs struct {
	byID map[uuid.UUID]hr.HR
}

func newMemHRs() *memHRs { return &memHRs{byID: make(map[uuid.UUID]hr.HR)} }

func (m *memHRs) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func (m *memHRs) Create(_ context.Context, h hr.HR) error {
	m.byID[h.ID] = h
	return nil
}

func (m *memHRs) GetByID(_ context.Context, id uuid.UUID) (hr.HR, error) {
	h, ok := m.byID[id]
	if !ok {
		return hr.HR{}, hr.ErrNotFound
	}
	return h, nil
}

func (m *memHRs) GetByEmail(_ context.Context, email string) (hr.HR, error) {
	for _, h := range m.byID {
		if h.Email == email {
			return h, nil
		}
	}
	return hr.HR{}, hr.ErrNotFound
}

type recordingIndexer struct {
	indexed []uuid.UUID
}

func (r *recordingIndexer) TryIndex(_ context.Context, p user.Profile) {
	r.indexed = append(r.indexed, p.ID)
}

func newTestService() (*Service, *memUsers, *recordingIndexer) {
	users := newMemUsers()
	idx := &recordingIndexer{}
	jwtSvc := jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	return NewService(users, newMemHRs(), jwtSvc, idx), users, idx
}

func registerInput() RegisterUserInput {
	return RegisterUserInput{
		Email:    " Ada@Example.com ",
		Password: "correct horse",
		Profile: user.Profile{
			User:   user.User{Name: "Ada"},
			Skills: []string{"Go", "PostgreSQL"},
		},
	}
}

func TestRegisterUser(t *testing.T) {
	svc, users, idx := newTestService()

	p, err := svc.RegisterUser(context.Background(), registerInput())
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", p.Email)
	assert.Empty(t, p.PasswordHash)
	assert.Equal(t, []uuid.UUID{p.ID}, idx.indexed)
	assert.NotEmpty(t, users.byID[p.ID].PasswordHash)

	_, err = svc.RegisterUser(context.Background(), registerInput())
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
}

func TestRegisterUser_InvalidInput(t *testing.T) {
	svc, _, _ := newTestService()

	in := registerInput()
	in.Password = "short"
	_, err := svc.RegisterUser(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = registerInput()
	in.Profile.Name = ""
	_, err = svc.RegisterUser(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = registerInput()
	in.Email = "not-an-email"
	_, err = svc.RegisterUser(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = registerInput()
	in.Password = strings.Repeat("p", 73)
	_, err = svc.RegisterUser(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = registerInput()
	in.Password = strings.Repeat("p", 72)
	_, err = svc.RegisterUser(context.Background(), in)
	assert.NoError(t, err)
}

func TestRegisterHR_PasswordOverBcryptLimit(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.RegisterHR(context.Background(), RegisterHRInput{
		Email:    "hr@acme.io",
		Password: strings.Repeat("x", 100),
		Name:     "Grace",
		Company:  "Acme",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoginUser(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.RegisterUser(context.Background(), registerInput())
	require.NoError(t, err)

	u, tokens, err := svc.LoginUser(context.Background(), LoginInput{Email: "ADA@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Empty(t, u.PasswordHash)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	_, _, err = svc.LoginUser(context.Background(), LoginInput{Email: "ada@example.com", Password: "wrong password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.LoginUser(context.Background(), LoginInput{Email: "nobody@example.com", Password: "correct horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetHR(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	h, err := svc.RegisterHR(ctx, RegisterHRInput{Email: "hr@acme.io", Password: "recruiter-pass", Name: "Grace", Company: "Acme"})
	require.NoError(t, err)

	got, err := svc.GetHR(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, "hr@acme.io", got.Email)
	assert.Empty(t, got.PasswordHash)

	_, err = svc.GetHR(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestHRRegisterLoginRefresh(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	h, err := svc.RegisterHR(ctx, RegisterHRInput{Email: "hr@acme.io", Password: "recruiter-pass", Name: "Grace", Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", h.Company)

	_, err = svc.RegisterHR(ctx, RegisterHRInput{Email: "hr@acme.io", Password: "recruiter-pass", Name: "Grace", Company: "Acme"})
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)

	_, tokens, err := svc.LoginHR(ctx, LoginInput{Email: "hr@acme.io", Password: "recruiter-pass"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Refresh(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}
