package repository

import (
	"context"
	"strings"

	"hirelink/internal/database"
	"hirelink/internal/database/postgres"
	"hirelink/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

type UserRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CreateProfile(ctx context.Context, p user.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetProfile(ctx context.Context, id uuid.UUID) (user.Profile, error)
	UpdateProfile(ctx context.Context, p user.Profile) error
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, email, password_hash, name, location, bio, created_at, updated_at`

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "check user email")
	}
	return exists, nil
}

// CreateProfile inserts the user row and every profile section in one
// transaction.
func (r *PostgresUserRepository) CreateProfile(ctx context.Context, p user.Profile) error {
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO users (id, email, password_hash, name, location, bio)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			p.ID, p.Email, p.PasswordHash, p.Name, p.Location, p.Bio,
		)
		if err != nil {
			if postgres.IsUniqueViolation(err) {
				return user.ErrEmailTaken
			}
			return errors.Wrap(err, "insert user")
		}
		return replaceSections(ctx, tx, p)
	})
	return err
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, p user.Profile) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		n, err := tx.Exec(ctx,
			`UPDATE users SET email = $2, name = $3, location = $4, bio = $5, updated_at = now()
			 WHERE id = $1`,
			p.ID, p.Email, p.Name, p.Location, p.Bio,
		)
		if err != nil {
			if postgres.IsUniqueViolation(err) {
				return user.ErrEmailTaken
			}
			return errors.Wrap(err, "update user")
		}
		if n == 0 {
			return user.ErrNotFound
		}
		return replaceSections(ctx, tx, p)
	})
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *PostgresUserRepository) GetProfile(ctx context.Context, id uuid.UUID) (user.Profile, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return user.Profile{}, err
	}

	p := user.Profile{User: u}
	if p.Skills, err = r.listNames(ctx,
		`SELECT s.name FROM user_skills us JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1 ORDER BY us.position`, id); err != nil {
		return user.Profile{}, errors.Wrap(err, "list skills")
	}
	if p.Languages, err = r.listNames(ctx,
		`SELECT l.name FROM user_languages ul JOIN languages l ON l.id = ul.language_id
		 WHERE ul.user_id = $1 ORDER BY ul.position`, id); err != nil {
		return user.Profile{}, errors.Wrap(err, "list languages")
	}
	if p.Experiences, err = r.listExperiences(ctx, id); err != nil {
		return user.Profile{}, errors.Wrap(err, "list experiences")
	}
	if p.Projects, err = r.listProjects(ctx, id); err != nil {
		return user.Profile{}, errors.Wrap(err, "list projects")
	}
	if p.Certifications, err = r.listCertifications(ctx, id); err != nil {
		return user.Profile{}, errors.Wrap(err, "list certifications")
	}
	return p, nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Location, &u.Bio, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "scan user")
	}
	return u, nil
}

func (r *PostgresUserRepository) listNames(ctx context.Context, query string, id uuid.UUID) ([]string, error) {
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepository) listExperiences(ctx context.Context, id uuid.UUID) ([]user.WorkExperience, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, company, position, location, start_date, end_date, currently_working, description
		 FROM work_experiences WHERE user_id = $1 ORDER BY sort_order`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.WorkExperience, 0)
	for rows.Next() {
		var e user.WorkExperience
		if err := rows.Scan(&e.ID, &e.Company, &e.Position, &e.Location, &e.StartDate, &e.EndDate, &e.CurrentlyWorking, &e.Description); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepository) listProjects(ctx context.Context, id uuid.UUID) ([]user.Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, link FROM projects WHERE user_id = $1 ORDER BY sort_order`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.Project, 0)
	for rows.Next() {
		var p user.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Link); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepository) listCertifications(ctx context.Context, id uuid.UUID) ([]user.Certification, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, provider, link FROM certifications WHERE user_id = $1 ORDER BY sort_order`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.Certification, 0)
	for rows.Next() {
		var c user.Certification
		if err := rows.Scan(&c.ID, &c.Name, &c.Provider, &c.Link); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// replaceSections rewrites every profile section of p.ID inside tx.
func replaceSections(ctx context.Context, tx database.Tx, p user.Profile) error {
	for _, table := range []string{"user_skills", "user_languages", "work_experiences", "projects", "certifications"} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE user_id = $1`, p.ID); err != nil {
			return errors.Wrapf(err, "clear %s", table)
		}
	}

	for i, name := range dedupeNames(p.Skills) {
		id, err := upsertCatalog(ctx, tx, "skills", name)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_skills (user_id, skill_id, position) VALUES ($1, $2, $3)`,
			p.ID, id, i); err != nil {
			return errors.Wrap(err, "link skill")
		}
	}

	for i, name := range dedupeNames(p.Languages) {
		id, err := upsertCatalog(ctx, tx, "languages", name)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_languages (user_id, language_id, position) VALUES ($1, $2, $3)`,
			p.ID, id, i); err != nil {
			return errors.Wrap(err, "link language")
		}
	}

	for i, e := range p.Experiences {
		if _, err := tx.Exec(ctx,
			`INSERT INTO work_experiences
			 (id, user_id, company, position, location, start_date, end_date, currently_working, description, sort_order)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			newIDIfNil(e.ID), p.ID, e.Company, e.Position, e.Location, e.StartDate, e.EndDate, e.CurrentlyWorking, e.Description, i,
		); err != nil {
			return errors.Wrap(err, "insert experience")
		}
	}

	for i, pr := range p.Projects {
		if _, err := tx.Exec(ctx,
			`INSERT INTO projects (id, user_id, name, description, link, sort_order) VALUES ($1, $2, $3, $4, $5, $6)`,
			newIDIfNil(pr.ID), p.ID, pr.Name, pr.Description, pr.Link, i,
		); err != nil {
			return errors.Wrap(err, "insert project")
		}
	}

	for i, c := range p.Certifications {
		if _, err := tx.Exec(ctx,
			`INSERT INTO certifications (id, user_id, name, provider, link, sort_order) VALUES ($1, $2, $3, $4, $5, $6)`,
			newIDIfNil(c.ID), p.ID, c.Name, c.Provider, c.Link, i,
		); err != nil {
			return errors.Wrap(err, "insert certification")
		}
	}

	return nil
}

// upsertCatalog returns the id of name in a skills/languages catalog table,
// inserting it when missing. Names match case-insensitively.
func upsertCatalog(ctx context.Context, q database.Querier, table, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := q.QueryRow(ctx,
		`INSERT INTO `+table+` (name) VALUES ($1)
		 ON CONFLICT ((lower(name))) DO UPDATE SET name = `+table+`.name
		 RETURNING id`, name).Scan(&id)
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "upsert %s %q", table, name)
	}
	return id, nil
}

func dedupeNames(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

func newIDIfNil(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}
