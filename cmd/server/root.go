package main

import (
	"fmt"

	"hirelink/internal/config"
	"hirelink/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "hirelink"

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           appName,
		Short:         "hirelink serves the job board, recommendation and mock interview API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "optional config file (yaml, json or env); the environment still wins")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, reindexCmd)
}

// setup loads configuration and builds the process logger.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	l, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, l.Named(appName), nil
}
