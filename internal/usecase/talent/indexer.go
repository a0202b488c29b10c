// Package talent keeps the candidate vector index in sync with user profiles
// and answers semantic candidate searches over it.
package talent

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"hirelink/internal/domain/ai"
	"hirelink/internal/domain/candidate"
	"hirelink/internal/domain/user"
	"hirelink/internal/repository"
)

type Indexer struct {
	embedder ai.Embedder
	vectors  repository.CandidateVectorRepository
	users    repository.UserRepository
	logger   *zap.Logger
}

func NewIndexer(embedder ai.Embedder, vectors repository.CandidateVectorRepository, users repository.UserRepository, logger *zap.Logger) *Indexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Indexer{embedder: embedder, vectors: vectors, users: users, logger: logger.Named("indexer")}
}

// Index embeds the profile document and upserts it into the vector store.
func (x *Indexer) Index(ctx context.Context, p user.Profile) error {
	doc := strings.TrimSpace(p.EmbeddingDocument())
	if doc == "" {
		return ai.ErrInvalidInput
	}

	vec, err := x.embedder.Embed(ctx, doc)
	if err != nil {
		return err
	}

	return x.vectors.Upsert(ctx, candidate.Document{
		UserID: p.ID,
		Email:  p.Email,
		Name:   p.Name,
		Vector: vec,
		Model:  x.embedder.Model(),
	})
}

// TryIndex is Index for request paths: a failure is logged and the user is
// left for Reindex.
func (x *Indexer) TryIndex(ctx context.Context, p user.Profile) {
	if x == nil {
		return
	}
	if err := x.Index(ctx, p); err != nil {
		x.logger.Warn("candidate not indexed",
			zap.String("user_id", p.ID.String()),
			zap.NamedError("kind", ai.Kind(err)),
			zap.Error(err),
		)
	}
}

type ReindexResult struct {
	Indexed int
	Failed  int
}

// Reindex embeds users that have no vector yet, batch by batch. Users that
// fail are skipped; the run stops early when the embedding service is down.
func (x *Indexer) Reindex(ctx context.Context, batch int) (ReindexResult, error) {
	if batch <= 0 {
		batch = 100
	}

	var res ReindexResult
	failed := make(map[uuid.UUID]struct{})
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		ids, err := x.vectors.ListUnindexed(ctx, batch+len(failed))
		if err != nil {
			return res, errors.Wrap(err, "list unindexed")
		}

		pending := ids[:0]
		for _, id := range ids {
			if _, skip := failed[id]; !skip {
				pending = append(pending, id)
			}
		}
		if len(pending) == 0 {
			return res, nil
		}

		for _, id := range pending {
			p, err := x.users.GetProfile(ctx, id)
			if err != nil {
				return res, errors.Wrapf(err, "load profile %s", id)
			}
			if err := x.Index(ctx, p); err != nil {
				if errors.Is(ai.Kind(err), ai.ErrUnavailable) {
					return res, err
				}
				x.logger.Warn("reindex skipped candidate", zap.String("user_id", id.String()), zap.Error(err))
				failed[id] = struct{}{}
				res.Failed++
				continue
			}
			res.Indexed++
		}
	}
}
