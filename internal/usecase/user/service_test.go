package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelink/internal/domain/user"
	"hirelink/internal/infrastructure/cache"
)

type memUsers struct {
	profiles map[uuid.UUID]user.Profile
}

func (m *memUsers) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (m *memUsers) CreateProfile(context.Context, user.Profile) error   { return nil }
func (m *memUsers) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	p, ok := m.profiles[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return p.User, nil
}

func (m *memUsers) GetProfile(_ context.Context, id uuid.UUID) (user.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return user.Profile{}, user.ErrNotFound
	}
	return p, nil
}

func (m *memUsers) UpdateProfile(_ context.Context, p user.Profile) error {
	for id, other := range m.profiles {
		if id != p.ID && other.Email == p.Email {
			return user.ErrEmailTaken
		}
	}
	m.profiles[p.ID] = p
	return nil
}

type recordingIndexer struct{ calls int }

func (r *recordingIndexer) TryIndex(context.Context, user.Profile) { r.calls++ }

type recordingCache struct{ deleted []string }

func (r *recordingCache) Delete(_ context.Context, keys ...string) error {
	r.deleted = append(r.deleted, keys...)
	return nil
}

func TestService_GetProfile(t *testing.T) {
	id := uuid.New()
	users := &memUsers{profiles: map[uuid.UUID]user.Profile{
		id: {User: user.User{ID: id, Name: "Ada", PasswordHash: "secret"}},
	}}
	svc := NewService(users, nil, nil, nil)

	p, err := svc.GetProfile(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, p.PasswordHash)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdateProfile(t *testing.T) {
	id, other := uuid.New(), uuid.New()
	users := &memUsers{profiles: map[uuid.UUID]user.Profile{
		id:    {User: user.User{ID: id, Email: "ada@example.com", Name: "Ada"}},
		other: {User: user.User{ID: other, Email: "bob@example.com", Name: "Bob"}},
	}}
	idx := &recordingIndexer{}
	c := &recordingCache{}
	svc := NewService(users, idx, c, nil)

	p, err := svc.UpdateProfile(context.Background(), id, UpdateProfileInput{
		Profile: user.Profile{User: user.User{Name: "Ada L."}, Skills: []string{"Go"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", p.Email)
	assert.Equal(t, []string{"Go"}, p.Skills)
	assert.Equal(t, 1, idx.calls)
	assert.Equal(t, []string{cache.RecommendationKey(id)}, c.deleted)

	_, err = svc.UpdateProfile(context.Background(), id, UpdateProfileInput{
		Email:   "BOB@example.com",
		Profile: user.Profile{User: user.User{Name: "Ada"}},
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.UpdateProfile(context.Background(), id, UpdateProfileInput{Profile: user.Profile{}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateProfile(context.Background(), uuid.New(), UpdateProfileInput{Profile: user.Profile{User: user.User{Name: "X"}}})
	assert.ErrorIs(t, err, ErrNotFound)
}
