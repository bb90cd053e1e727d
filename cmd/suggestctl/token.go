package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/studioops-backend/internal/auth"
	"github.com/heartmarshall/studioops-backend/internal/config"
)

func tokenCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API access token for --reviewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			id, err := uuid.Parse(reviewer)
			if err != nil {
				return fmt.Errorf("--reviewer must be a UUID (got %q)", reviewer)
			}

			jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
			token, err := jwt.GenerateAccessToken(id, name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "reviewer display name stored in the token")
	return cmd
}
