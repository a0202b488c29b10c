package main

import (
	"context"
	"time"

	"hirelink/internal/database/migration"
	dbpostgres "hirelink/internal/database/postgres"
	"hirelink/internal/database/seeder"
	"hirelink/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := migration.Runner{FS: migrations.FS, Logger: logger}.Run(ctx, db.SQLDB())
		if err != nil {
			return err
		}
		logger.Info("migrations applied", zap.Int("count", n))
		return nil
	},
}

var seedDemoPassword string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed lookup tables and, with --demo-password, a demo recruiter",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		return seeder.Runner{Seeders: seeder.Defaults(seedDemoPassword), Logger: logger}.Run(ctx, db)
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedDemoPassword, "demo-password", "", "password for the demo recruiter account; skipped when empty")
}
