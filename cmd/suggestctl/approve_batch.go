package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/studioops-backend/internal/app"
	"github.com/heartmarshall/studioops-backend/internal/domain"
	"github.com/heartmarshall/studioops-backend/internal/service/suggestion"
)

const batchPageSize = 200

type batchService interface {
	List(ctx context.Context, input suggestion.ListInput) (*suggestion.ListResult, error)
	Decide(ctx context.Context, input suggestion.DecideInput) (*domain.Outcome, error)
}

type batchSummary struct {
	Considered int
	Approved   int
	Failed     int
	Skipped    int
}

// selectForApproval pages through pending suggestions and keeps the
// actionable ones with a handler at or above minConfidence.
func selectForApproval(ctx context.Context, svc batchService, typ string, minConfidence float64) ([]uuid.UUID, int, error) {
	pending := domain.StatusPending
	in := suggestion.ListInput{Status: &pending, Limit: batchPageSize}
	if typ != "" {
		in.Type = &typ
	}

	var (
		ids     []uuid.UUID
		skipped int
	)
	for {
		page, err := svc.List(ctx, in)
		if err != nil {
			return nil, 0, err
		}
		for _, v := range page.Items {
			if v.Confidence >= minConfidence && v.IsActionable && v.HasHandler {
				ids = append(ids, v.ID)
			} else {
				skipped++
			}
		}
		in.Offset += len(page.Items)
		if len(page.Items) == 0 || in.Offset >= page.Total {
			return ids, skipped, nil
		}
	}
}

// approveBatch approves ids with at most workers decisions in flight. A
// refused decision is reported, not fatal; a store error stops the batch.
func approveBatch(ctx context.Context, svc batchService, ids []uuid.UUID, workers int, report func(*domain.Outcome)) (batchSummary, error) {
	var (
		mu  sync.Mutex
		sum batchSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for _, id := range ids {
		g.Go(func() error {
			out, err := svc.Decide(gctx, suggestion.DecideInput{SuggestionID: id, Decision: domain.DecisionApprove})
			if err != nil {
				return fmt.Errorf("approve %s: %w", id, err)
			}
			mu.Lock()
			defer mu.Unlock()
			if out.Success {
				sum.Approved++
			} else {
				sum.Failed++
			}
			report(out)
			return nil
		})
	}
	err := g.Wait()
	return sum, err
}

func approveBatchCmd() *cobra.Command {
	var (
		minConfidence float64
		typ           string
		workers       int
		dryRun        bool
	)

	cmd := &cobra.Command{
		Use:   "approve-batch",
		Short: "Approve every pending actionable suggestion above a confidence threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if minConfidence < 0 || minConfidence > 1 {
				return fmt.Errorf("--min-confidence must be between 0 and 1")
			}
			return withEngine(cmd, func(ctx context.Context, e *app.Engine) error {
				ctx, err := reviewerCtx(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()

				ids, skipped, err := selectForApproval(ctx, e.Service, typ, minConfidence)
				if err != nil {
					return err
				}
				if dryRun {
					for _, id := range ids {
						fmt.Fprintln(out, id)
					}
					fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%d would be approved, %d skipped", len(ids), skipped)))
					return nil
				}

				sum, err := approveBatch(ctx, e.Service, ids, workers, func(o *domain.Outcome) { printOutcome(out, o) })
				sum.Considered = len(ids) + skipped
				sum.Skipped = skipped
				printSummary(out, sum)
				return err
			})
		},
	}

	cmd.Flags().Float64Var(&minConfidence, "min-confidence", 0.9, "only approve suggestions at or above this confidence")
	cmd.Flags().StringVar(&typ, "type", "", "only approve this suggestion type")
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent decisions")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list what would be approved without deciding")
	return cmd
}

func printSummary(w io.Writer, s batchSummary) {
	fmt.Fprintf(w, "%s %s, %s, %s\n",
		titleStyle.Render(fmt.Sprintf("%d considered:", s.Considered)),
		successStyle.Render(fmt.Sprintf("%d approved", s.Approved)),
		errorStyle.Render(fmt.Sprintf("%d failed", s.Failed)),
		mutedStyle.Render(fmt.Sprintf("%d skipped", s.Skipped)))
}
