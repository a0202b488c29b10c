package recommendation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelink/internal/domain/job"
	"hirelink/internal/domain/user"
	"hirelink/internal/infrastructure/cache"
)

type memJobs struct {
	items []job.Job
	err   error
	calls int
}

func (m *memJobs) Create(context.Context, job.Job) error                   { return nil }
func (m *memJobs) GetByID(context.Context, uuid.UUID) (job.Job, error)     { return job.Job{}, nil }
func (m *memJobs) List(context.Context, job.ListFilter) ([]job.Job, error) { return nil, nil }
func (m *memJobs) ListByHR(context.Context, uuid.UUID) ([]job.Job, error)  { return nil, nil }
func (m *memJobs) ListAll(context.Context) ([]job.Job, error) {
	m.calls++
	return m.items, m.err
}

type memUsers struct{ profiles map[uuid.UUID]user.Profile }

func (m memUsers) ExistsByEmail(context.Context, string) (bool, error)    { return false, nil }
func (m memUsers) CreateProfile(context.Context, user.Profile) error      { return nil }
func (m memUsers) GetByID(context.Context, uuid.UUID) (user.User, error)  { return user.User{}, nil }
func (m memUsers) GetByEmail(context.Context, string) (user.User, error)  { return user.User{}, nil }
func (m memUsers) UpdateProfile(context.Context, user.Profile) error      { return nil }
func (m memUsers) GetProfile(_ context.Context, id uuid.UUID) (user.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return user.Profile{}, user.ErrNotFound
	}
	return p, nil
}

type memCache struct{ data map[string][]byte }

func (m *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func catalogue() []job.Job {
	return []job.Job{
		{ID: uuid.New(), Title: "Java Developer", Description: "Spring backend"},
		{ID: uuid.New(), Title: "Python Developer", Description: "machine learning with python"},
		{ID: uuid.New(), Title: "Chef", Description: "Italian kitchen"},
	}
}

func TestService_Recommend(t *testing.T) {
	id := uuid.New()
	users := memUsers{profiles: map[uuid.UUID]user.Profile{
		id: {User: user.User{ID: id}, Skills: []string{"Python", "machine", "learning"}},
	}}
	jobs := &memJobs{items: catalogue()}
	c := &memCache{data: map[string][]byte{}}
	svc := NewService(users, jobs, c, time.Minute, nil, nil)

	out, err := svc.Recommend(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "Python Developer", out[0].Title)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].Score, out[i].Score)
	}
	assert.Equal(t, 0.0, out[2].Score)
	assert.Contains(t, c.data, cache.RecommendationKey(id))

	again, err := svc.Recommend(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1, jobs.calls)
	assert.Equal(t, out[0].JobID, again[0].JobID)
}

func TestService_RecommendErrors(t *testing.T) {
	empty, full := uuid.New(), uuid.New()
	users := memUsers{profiles: map[uuid.UUID]user.Profile{
		empty: {User: user.User{ID: empty}, Languages: []string{"English"}},
		full:  {User: user.User{ID: full}, Skills: []string{"Go"}},
	}}

	svc := NewService(users, &memJobs{items: catalogue()}, nil, 0, nil, nil)
	_, err := svc.Recommend(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = svc.Recommend(context.Background(), empty)
	assert.ErrorIs(t, err, ErrEmptyProfile)

	svc = NewService(users, &memJobs{}, nil, 0, nil, nil)
	_, err = svc.Recommend(context.Background(), full)
	assert.ErrorIs(t, err, ErrNoJobs)

	svc = NewService(users, &memJobs{err: errors.New("db down")}, nil, 0, nil, nil)
	_, err = svc.Recommend(context.Background(), full)
	assert.ErrorIs(t, err, ErrCompute)
}
