package repository

import (
	"context"

	"hirelink/internal/database"
	"hirelink/internal/database/postgres"
	"hirelink/internal/domain/hr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

type HRRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, h hr.HR) error
	GetByID(ctx context.Context, id uuid.UUID) (hr.HR, error)
	GetByEmail(ctx context.Context, email string) (hr.HR, error)
}

type PostgresHRRepository struct {
	db database.DB
}

func NewPostgresHRRepository(db database.DB) *PostgresHRRepository {
	return &PostgresHRRepository{db: db}
}

func (r *PostgresHRRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM hr_accounts WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "check hr email")
	}
	return exists, nil
}

func (r *PostgresHRRepository) Create(ctx context.Context, h hr.HR) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO hr_accounts (id, email, name, password_hash, company) VALUES ($1, $2, $3, $4, $5)`,
		h.ID, h.Email, h.Name, h.PasswordHash, h.Company,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return hr.ErrEmailTaken
		}
		return errors.Wrap(err, "insert hr account")
	}
	return nil
}

func (r *PostgresHRRepository) GetByID(ctx context.Context, id uuid.UUID) (hr.HR, error) {
	return scanHR(r.db.QueryRow(ctx,
		`SELECT id, email, name, password_hash, company, created_at FROM hr_accounts WHERE id = $1`, id))
}

func (r *PostgresHRRepository) GetByEmail(ctx context.Context, email string) (hr.HR, error) {
	return scanHR(r.db.QueryRow(ctx,
		`SELECT id, email, name, password_hash, company, created_at FROM hr_accounts WHERE email = $1`, email))
}

func scanHR(row database.Row) (hr.HR, error) {
	var h hr.HR
	if err := row.Scan(&h.ID, &h.Email, &h.Name, &h.PasswordHash, &h.Company, &h.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return hr.HR{}, hr.ErrNotFound
		}
		return hr.HR{}, errors.Wrap(err, "scan hr account")
	}
	return h, nil
}
