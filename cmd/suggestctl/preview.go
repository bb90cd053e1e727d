package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/studioops-backend/internal/app"
)

func previewCmd() *cobra.Command {
	var showSource bool

	cmd := &cobra.Command{
		Use:   "preview <id>",
		Short: "Show what approving a suggestion would change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withEngine(cmd, func(ctx context.Context, e *app.Engine) error {
				p, err := e.Service.Preview(ctx, id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s  %s  %s\n", p.SuggestionID, p.Type, renderStatus(p.Status))
				printPreview(out, p.Action, p.Table, p.Summary, p.Changes, p.Errors)

				if !showSource {
					return nil
				}
				src, err := e.Service.Source(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
				switch {
				case !src.Available:
					fmt.Fprintln(out, mutedStyle.Render(src.Message))
				case src.Email != nil:
					fmt.Fprintf(out, "%s %s\n%s %s\n\n%s\n", headerStyle.Render("From:"), src.Email.Sender,
						headerStyle.Render("Subject:"), src.Email.Subject, src.Email.Body)
				case src.Transcript != nil:
					fmt.Fprintf(out, "%s\n\n%s\n", headerStyle.Render(src.Transcript.Title), src.Transcript.Body)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&showSource, "source", false, "also print the email or transcript the suggestion came from")
	return cmd
}
