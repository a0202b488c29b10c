package repository

import (
	"context"
	"fmt"

	"hirelink/internal/database"
	"hirelink/internal/domain/candidate"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/pkg/errors"
)

// CandidateDimensions is the width of the candidate_embeddings.embedding column.
const CandidateDimensions = 768

type CandidateVectorRepository interface {
	Upsert(ctx context.Context, doc candidate.Document) error
	Search(ctx context.Context, vec []float32, limit int) ([]candidate.Match, error)
	ListUnindexed(ctx context.Context, limit int) ([]uuid.UUID, error)
}

type PostgresCandidateVectorRepository struct {
	db database.DB
}

func NewPostgresCandidateVectorRepository(db database.DB) *PostgresCandidateVectorRepository {
	return &PostgresCandidateVectorRepository{db: db}
}

func (r *PostgresCandidateVectorRepository) Upsert(ctx context.Context, doc candidate.Document) error {
	if len(doc.Vector) != CandidateDimensions {
		return fmt.Errorf("candidate embedding has %d dimensions, want %d", len(doc.Vector), CandidateDimensions)
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO candidate_embeddings (user_id, email, name, model, embedding, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (user_id) DO UPDATE
		 SET email = EXCLUDED.email, name = EXCLUDED.name, model = EXCLUDED.model,
		     embedding = EXCLUDED.embedding, updated_at = now()`,
		doc.UserID, doc.Email, doc.Name, doc.Model, pgvector.NewVector(doc.Vector),
	)
	return errors.Wrap(err, "upsert candidate embedding")
}

// Search returns the limit nearest candidates by cosine similarity.
// <=> is cosine distance, so similarity is 1 - distance.
func (r *PostgresCandidateVectorRepository) Search(ctx context.Context, vec []float32, limit int) ([]candidate.Match, error) {
	if len(vec) != CandidateDimensions {
		return nil, fmt.Errorf("query embedding has %d dimensions, want %d", len(vec), CandidateDimensions)
	}
	if limit <= 0 {
		limit = 5
	}

	rows, err := r.db.Query(ctx,
		`SELECT user_id, email, name, 1 - (embedding <=> $1) AS score
		 FROM candidate_embeddings
		 ORDER BY embedding <=> $1
		 LIMIT $2`,
		pgvector.NewVector(vec), limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "search candidate embeddings")
	}
	defer rows.Close()

	out := make([]candidate.Match, 0, limit)
	for rows.Next() {
		var m candidate.Match
		if err := rows.Scan(&m.UserID, &m.Email, &m.Name, &m.Score); err != nil {
			return nil, errors.Wrap(err, "scan candidate match")
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListUnindexed returns users that have no embedding yet.
func (r *PostgresCandidateVectorRepository) ListUnindexed(ctx context.Context, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT u.id FROM users u
		 LEFT JOIN candidate_embeddings e ON e.user_id = u.id
		 WHERE e.user_id IS NULL
		 ORDER BY u.created_at, u.id
		 LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list unindexed candidates")
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
