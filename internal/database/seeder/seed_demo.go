package seeder

import (
	"context"
	"fmt"

	"hirelink/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const demoHREmail = "recruiter@hirelink.dev"

// DemoSeeder creates a recruiter account with a few postings. It does
// nothing once the account exists.
type DemoSeeder struct {
	Password string
}

func (DemoSeeder) Name() string { return "demo_jobs" }

var demoJobs = []struct {
	Title       string
	WorkType    string
	Location    string
	JobType     string
	Description string
}{
	{
		Title:       "Backend Engineer (Go)",
		WorkType:    "Remote",
		Location:    "Berlin",
		JobType:     "Full-time",
		Description: "Build HTTP services in Go backed by PostgreSQL and Redis. Experience with Docker and Kubernetes is a plus.",
	},
	{
		Title:       "Data Analyst",
		WorkType:    "Hybrid",
		Location:    "Bengaluru",
		JobType:     "Full-time",
		Description: "Analyse product data with SQL and Python, build dashboards and report insights to stakeholders.",
	},
	{
		Title:       "Frontend Developer Intern",
		WorkType:    "On-site",
		Location:    "Jakarta",
		JobType:     "Internship",
		Description: "Ship React and TypeScript features with the web team. Familiarity with REST APIs expected.",
	},
}

func (s DemoSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "hr_accounts", "id", "email", "name", "password_hash", "company"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "jobs", "id", "hr_id", "title", "company_name", "work_type", "location", "job_type", "description"); err != nil {
		return err
	}

	var exists bool
	if err := db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM hr_accounts WHERE email = $1)`, demoHREmail).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	const company = "HireLink Demo"
	return database.WithTx(ctx, db, func(tx database.Tx) error {
		var hrID uuid.UUID
		err := tx.QueryRow(
			ctx,
			`INSERT INTO hr_accounts (email, name, password_hash, company) VALUES ($1, $2, $3, $4) RETURNING id`,
			demoHREmail,
			"Demo Recruiter",
			string(hash),
			company,
		).Scan(&hrID)
		if err != nil {
			return err
		}

		for _, j := range demoJobs {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO jobs (hr_id, title, company_name, work_type, location, job_type, description) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				hrID, j.Title, company, j.WorkType, j.Location, j.JobType, j.Description,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
