package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/studioops-backend/internal/app"
)

func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List registered suggestion types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(cmd, func(_ context.Context, e *app.Engine) error {
				t := e.Service.Types()
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, titleStyle.Render("Registered suggestion types"))
				for _, typ := range t.Registered {
					kind := mutedStyle.Render("informational")
					if slices.Contains(t.Actionable, typ) {
						kind = successStyle.Render("actionable")
					}
					fmt.Fprintf(out, "  %-24s %s\n", typ, kind)
				}
				return nil
			})
		},
	}
}
