package seeder

import (
	"context"

	"hirelink/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
