package seeder

import (
	"context"
	"fmt"

	"hirelink/internal/database"
)

// CatalogSeeder fills the shared skill and language lookup tables that
// profiles reference by name.
type CatalogSeeder struct{}

func (CatalogSeeder) Name() string { return "catalog" }

var (
	catalogSkills = []string{
		"Go", "Python", "Java", "JavaScript", "TypeScript", "SQL",
		"PostgreSQL", "Redis", "Docker", "Kubernetes", "AWS", "GCP",
		"React", "Node.js", "Machine Learning", "Data Analysis",
	}
	catalogLanguages = []string{
		"English", "Spanish", "French", "German", "Hindi", "Indonesian", "Mandarin",
	}
)

func (CatalogSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "languages", "id", "name"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, name := range catalogSkills {
			if _, err := tx.Exec(ctx, `INSERT INTO skills (name) VALUES ($1) ON CONFLICT ((lower(name))) DO NOTHING`, name); err != nil {
				return fmt.Errorf("skill %q: %w", name, err)
			}
		}
		for _, name := range catalogLanguages {
			if _, err := tx.Exec(ctx, `INSERT INTO languages (name) VALUES ($1) ON CONFLICT ((lower(name))) DO NOTHING`, name); err != nil {
				return fmt.Errorf("language %q: %w", name, err)
			}
		}
		return nil
	})
}
