package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/studioops-backend/internal/adapter/postgres"
	"github.com/heartmarshall/studioops-backend/internal/app"
	"github.com/heartmarshall/studioops-backend/internal/config"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := app.NewLogger(cfg.Log)

			n, err := postgres.Migrate(cmd.Context(), cfg.Database.DSN, logger)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("schema is up to date"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("applied %d migration(s)", n)))
			return nil
		},
	}
}
