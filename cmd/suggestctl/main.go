// Command suggestctl is the operator CLI for the suggestion engine. It talks
// to the database directly using the same configuration as the server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/studioops-backend/internal/app"
	"github.com/heartmarshall/studioops-backend/internal/config"
	"github.com/heartmarshall/studioops-backend/pkg/ctxutil"
)

var reviewer string

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "suggestctl",
		Short:         "Review, apply and roll back classifier suggestions",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       app.BuildVersion(),
	}

	root.PersistentFlags().StringVar(&reviewer, "reviewer", os.Getenv("SUGGESTCTL_REVIEWER"),
		"reviewer id recorded on decisions (default $SUGGESTCTL_REVIEWER)")

	root.AddCommand(
		migrateCmd(),
		ingestCmd(),
		listCmd(),
		previewCmd(),
		decideCmd(),
		rollbackCmd(),
		typesCmd(),
		approveBatchCmd(),
		tokenCmd(),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		stop()
		os.Exit(1)
	}
}

// withEngine loads configuration, builds the engine and runs fn with it.
func withEngine(cmd *cobra.Command, fn func(ctx context.Context, e *app.Engine) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	ctx := cmd.Context()
	e, err := app.NewEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer e.Close()

	return fn(ctx, e)
}

// reviewerCtx attaches the --reviewer id, which decisions require.
func reviewerCtx(ctx context.Context) (context.Context, error) {
	if reviewer == "" {
		return nil, fmt.Errorf("--reviewer is required for decisions")
	}
	id, err := uuid.Parse(reviewer)
	if err != nil || id == uuid.Nil {
		return nil, fmt.Errorf("--reviewer must be a non-nil UUID (got %q)", reviewer)
	}
	return ctxutil.WithReviewerID(ctx, id), nil
}

func parseID(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid suggestion id %q", arg)
	}
	return id, nil
}
