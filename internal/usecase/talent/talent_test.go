package talent

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelink/internal/domain/ai"
	"hirelink/internal/domain/candidate"
	"hirelink/internal/domain/user"
)

type fakeEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vec, nil
}

func (f *fakeEmbedder) Model() string { return "test-embed" }

type fakeVectors struct {
	docs      map[uuid.UUID]candidate.Document
	matches   []candidate.Match
	unindexed []uuid.UUID
	searchErr error
	lastLimit int
}

func (f *fakeVectors) Upsert(_ context.Context, doc candidate.Document) error {
	if f.docs == nil {
		f.docs = make(map[uuid.UUID]candidate.Document)
	}
	f.docs[doc.UserID] = doc
	return nil
}

func (f *fakeVectors) Search(_ context.Context, _ []float32, limit int) ([]candidate.Match, error) {
	f.lastLimit = limit
	return f.matches, f.searchErr
}

func (f *fakeVectors) ListUnindexed(_ context.Context, limit int) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, limit)
	for _, id := range f.unindexed {
		if _, ok := f.docs[id]; ok {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, id)
	}
	return out, nil
}

type fakeUsers struct {
	profiles map[uuid.UUID]user.Profile
}

func (f *fakeUsers) ExistsByEmail(context.Context, string) (bool, error)   { return false, nil }
func (f *fakeUsers) CreateProfile(context.Context, user.Profile) error     { return nil }
func (f *fakeUsers) GetByID(context.Context, uuid.UUID) (user.User, error) { return user.User{}, nil }
func (f *fakeUsers) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (f *fakeUsers) UpdateProfile(context.Context, user.Profile) error { return nil }
func (f *fakeUsers) GetProfile(_ context.Context, id uuid.UUID) (user.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return user.Profile{}, user.ErrNotFound
	}
	return p, nil
}

func TestSearcher_Search(t *testing.T) {
	vectors := &fakeVectors{matches: []candidate.Match{
		{UserID: uuid.New(), Name: "Ada", Score: 0.912345},
		{UserID: uuid.New(), Name: "Bob", Score: 0.5},
	}}
	s := NewSearcher(&fakeEmbedder{vec: []float32{1}}, vectors, 5, 50)

	res, err := s.Search(context.Background(), "  go engineer ", 0)
	require.NoError(t, err)
	assert.Equal(t, "go engineer", res.Query)
	assert.Equal(t, 5, vectors.lastLimit)
	require.Len(t, res.Matches, 2)
	assert.Equal(t, 0.9123, res.Matches[0].Score)

	_, err = s.Search(context.Background(), "go", 500)
	require.NoError(t, err)
	assert.Equal(t, 50, vectors.lastLimit)
}

func TestSearcher_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewSearcher(&fakeEmbedder{}, &fakeVectors{}, 5, 50).Search(ctx, " ", 0)
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = NewSearcher(&fakeEmbedder{err: ai.ErrUnavailable}, &fakeVectors{}, 5, 50).Search(ctx, "go", 0)
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = NewSearcher(&fakeEmbedder{vec: []float32{1}}, &fakeVectors{}, 5, 50).Search(ctx, "go", 0)
	assert.ErrorIs(t, err, candidate.ErrNoMatches)

	_, err = NewSearcher(&fakeEmbedder{vec: []float32{1}}, &fakeVectors{searchErr: errors.New("boom")}, 5, 50).Search(ctx, "go", 0)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestIndexer_TryIndexSwallowsFailure(t *testing.T) {
	vectors := &fakeVectors{}
	x := NewIndexer(&fakeEmbedder{err: ai.ErrUnavailable}, vectors, &fakeUsers{}, nil)

	assert.NotPanics(t, func() {
		x.TryIndex(context.Background(), user.Profile{User: user.User{ID: uuid.New(), Name: "Ada"}})
	})
	assert.Empty(t, vectors.docs)
}

func TestIndexer_Reindex(t *testing.T) {
	ok1, ok2, blank := uuid.New(), uuid.New(), uuid.New()
	users := &fakeUsers{profiles: map[uuid.UUID]user.Profile{
		ok1:   {User: user.User{ID: ok1, Name: "Ada"}, Skills: []string{"Go"}},
		ok2:   {User: user.User{ID: ok2, Name: "Bob"}},
		blank: {User: user.User{ID: blank}},
	}}
	vectors := &fakeVectors{unindexed: []uuid.UUID{blank, ok1, ok2}}
	emb := &fakeEmbedder{vec: []float32{0.1, 0.2}}

	res, err := NewIndexer(emb, vectors, users, nil).Reindex(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, ReindexResult{Indexed: 2, Failed: 1}, res)
	assert.Contains(t, vectors.docs, ok1)
	assert.Contains(t, vectors.docs, ok2)
	assert.Equal(t, "test-embed", vectors.docs[ok1].Model)
}

func TestIndexer_ReindexStopsWhenUnavailable(t *testing.T) {
	id := uuid.New()
	users := &fakeUsers{profiles: map[uuid.UUID]user.Profile{id: {User: user.User{ID: id, Name: "Ada"}}}}
	vectors := &fakeVectors{unindexed: []uuid.UUID{id}}

	_, err := NewIndexer(&fakeEmbedder{err: ai.ErrUnavailable}, vectors, users, nil).Reindex(context.Background(), 10)
	assert.ErrorIs(t, err, ai.ErrUnavailable)
}
