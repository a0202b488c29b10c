package main

import (
	"errors"
	"time"

	"hirelink/internal/app"
	"hirelink/internal/infrastructure/cache"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reindexBatch int

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Embed candidate profiles that are missing from the vector index",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		c, err := app.NewContainer(cfg, logger)
		if err != nil {
			return err
		}
		defer c.Close()

		ctx := cmd.Context()
		if c.Redis.Available() {
			ok, err := c.Redis.SetIfNotExists(ctx, cache.ReindexLockKey, time.Now().UTC().Format(time.RFC3339), 30*time.Minute)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("another reindex is running")
			}
			defer func() { _ = c.Redis.Delete(ctx, cache.ReindexLockKey) }()
		} else {
			logger.Warn("redis unavailable, running reindex without a lock")
		}

		res, err := c.Indexer.Reindex(ctx, reindexBatch)
		logger.Info("reindex finished", zap.Int("indexed", res.Indexed), zap.Int("failed", res.Failed))
		return err
	},
}

func init() {
	reindexCmd.Flags().IntVar(&reindexBatch, "batch", 50, "profiles embedded per batch")
}
