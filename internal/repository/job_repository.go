package repository

import (
	"context"
	"strconv"
	"strings"

	"hirelink/internal/database"
	"hirelink/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

type JobRepository interface {
	Create(ctx context.Context, j job.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	ListAll(ctx context.Context) ([]job.Job, error)
	List(ctx context.Context, f job.ListFilter) ([]job.Job, error)
	ListByHR(ctx context.Context, hrID uuid.UUID) ([]job.Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, hr_id, title, company_name, work_type, location, job_type, description, created_at`

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, hr_id, title, company_name, work_type, location, job_type, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		j.ID, j.HRID, j.Title, j.CompanyName, j.WorkType, j.Location, j.JobType, j.Description,
	)
	return errors.Wrap(err, "insert job")
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	var j job.Job
	err := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id).Scan(jobDest(&j)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, errors.Wrap(err, "get job")
	}
	return j, nil
}

// ListAll returns every job in creation order; the recommender scores the
// whole catalogue.
func (r *PostgresJobRepository) ListAll(ctx context.Context) ([]job.Job, error) {
	return r.query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at, id`)
}

// List filters by any of f.Terms over title, company, location and
// description, newest first.
func (r *PostgresJobRepository) List(ctx context.Context, f job.ListFilter) ([]job.Job, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + jobColumns + ` FROM jobs`)
	args := make([]any, 0, len(f.Terms)+2)
	if len(f.Terms) > 0 {
		conds := make([]string, 0, len(f.Terms))
		for _, t := range f.Terms {
			args = append(args, "%"+t+"%")
			p := "$" + strconv.Itoa(len(args))
			conds = append(conds, "(title ILIKE "+p+" OR company_name ILIKE "+p+" OR location ILIKE "+p+" OR description ILIKE "+p+")")
		}
		b.WriteString(` WHERE ` + strings.Join(conds, " OR "))
	}
	args = append(args, limit, offset)
	b.WriteString(` ORDER BY created_at DESC, id LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args)))

	return r.query(ctx, b.String(), args...)
}

func (r *PostgresJobRepository) ListByHR(ctx context.Context, hrID uuid.UUID) ([]job.Job, error) {
	return r.query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE hr_id = $1 ORDER BY created_at DESC, id`, hrID)
}

func (r *PostgresJobRepository) query(ctx context.Context, q string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query jobs")
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(jobDest(&j)...); err != nil {
			return nil, errors.Wrap(err, "scan job")
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func jobDest(j *job.Job) []any {
	return []any{&j.ID, &j.HRID, &j.Title, &j.CompanyName, &j.WorkType, &j.Location, &j.JobType, &j.Description, &j.CreatedAt}
}
