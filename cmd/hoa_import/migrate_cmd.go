package main

import (
	"github.com/spf13/cobra"

	"github.com/SscSPs/hoa_billing_app/internal/platform/config"
	"github.com/SscSPs/hoa_billing_app/pkg/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			_, err = database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger)
			return err
		},
	}
}
