package repository

import (
	"context"

	"hirelink/internal/database"
	"hirelink/internal/database/postgres"
	"hirelink/internal/domain/job"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type ApplicationRepository interface {
	Exists(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	Create(ctx context.Context, a job.Application) (job.Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]job.UserApplication, error)
	ListApplicants(ctx context.Context, jobID uuid.UUID) ([]job.Applicant, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Exists(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM job_applications WHERE user_id = $1 AND job_id = $2)`,
		userID, jobID).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "check application")
	}
	return exists, nil
}

// Create inserts a and returns it with the stored applied_at. A concurrent
// duplicate hits the (user_id, job_id) constraint and maps to
// job.ErrAlreadyApplied.
func (r *PostgresApplicationRepository) Create(ctx context.Context, a job.Application) (job.Application, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO job_applications (id, user_id, job_id, match_score)
		 VALUES ($1, $2, $3, $4)
		 RETURNING applied_at`,
		a.ID, a.UserID, a.JobID, a.MatchScore,
	).Scan(&a.AppliedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return job.Application{}, job.ErrAlreadyApplied
		}
		return job.Application{}, errors.Wrap(err, "insert application")
	}
	return a, nil
}

func (r *PostgresApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]job.UserApplication, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.user_id, a.job_id, a.applied_at, a.match_score, j.title, j.company_name, j.location
		 FROM job_applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.user_id = $1
		 ORDER BY a.applied_at DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list user applications")
	}
	defer rows.Close()

	out := make([]job.UserApplication, 0)
	for rows.Next() {
		var ua job.UserApplication
		if err := rows.Scan(&ua.ID, &ua.UserID, &ua.JobID, &ua.AppliedAt, &ua.MatchScore, &ua.Title, &ua.CompanyName, &ua.Location); err != nil {
			return nil, errors.Wrap(err, "scan user application")
		}
		out = append(out, ua)
	}
	return out, rows.Err()
}

// ListApplicants returns the applicants of jobID, best match first.
func (r *PostgresApplicationRepository) ListApplicants(ctx context.Context, jobID uuid.UUID) ([]job.Applicant, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.name, u.email, a.applied_at, a.match_score
		 FROM job_applications a
		 JOIN users u ON u.id = a.user_id
		 WHERE a.job_id = $1
		 ORDER BY a.match_score DESC, a.applied_at ASC`, jobID)
	if err != nil {
		return nil, errors.Wrap(err, "list applicants")
	}
	defer rows.Close()

	out := make([]job.Applicant, 0)
	for rows.Next() {
		var ap job.Applicant
		if err := rows.Scan(&ap.UserID, &ap.Name, &ap.Email, &ap.AppliedAt, &ap.MatchScore); err != nil {
			return nil, errors.Wrap(err, "scan applicant")
		}
		out = append(out, ap)
	}
	return out, rows.Err()
}
