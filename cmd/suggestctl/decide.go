package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/studioops-backend/internal/app"
	"github.com/heartmarshall/studioops-backend/internal/domain"
	"github.com/heartmarshall/studioops-backend/internal/service/suggestion"
)

func decideCmd() *cobra.Command {
	var decision, payload, reason string

	cmd := &cobra.Command{
		Use:   "decide <id>",
		Short: "Approve, reject or correct a pending suggestion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			in := suggestion.DecideInput{
				SuggestionID: id,
				Decision:     domain.Decision(strings.ToLower(decision)),
			}
			if payload != "" {
				in.EditedPayload = json.RawMessage(payload)
			}
			if reason != "" {
				in.Reason = &reason
			}

			return withEngine(cmd, func(ctx context.Context, e *app.Engine) error {
				ctx, err := reviewerCtx(ctx)
				if err != nil {
					return err
				}
				out, err := e.Service.Decide(ctx, in)
				if err != nil {
					return err
				}
				printOutcome(cmd.OutOrStdout(), out)
				if !out.Success {
					return fmt.Errorf("decision not applied")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&decision, "decision", "", "approve, reject or correct")
	cmd.Flags().StringVar(&payload, "payload", "", "edited payload as a JSON object (correct only)")
	cmd.Flags().StringVar(&reason, "reason", "", "reviewer note, stored on rejection")
	_ = cmd.MarkFlagRequired("decision")
	return cmd
}

func rollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback <id>",
		Short: "Undo an approved suggestion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withEngine(cmd, func(ctx context.Context, e *app.Engine) error {
				ctx, err := reviewerCtx(ctx)
				if err != nil {
					return err
				}
				out, err := e.Service.Rollback(ctx, id)
				if err != nil {
					return err
				}
				printOutcome(cmd.OutOrStdout(), out)
				if !out.Success {
					return fmt.Errorf("rollback not applied")
				}
				return nil
			})
		},
	}
}
