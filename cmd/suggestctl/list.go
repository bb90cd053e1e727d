package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/studioops-backend/internal/app"
	"github.com/heartmarshall/studioops-backend/internal/domain"
	"github.com/heartmarshall/studioops-backend/internal/service/suggestion"
)

func listCmd() *cobra.Command {
	var (
		status, typ, target string
		limit, offset       int
		grouped             bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List suggestions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(cmd, func(ctx context.Context, e *app.Engine) error {
				out := cmd.OutOrStdout()
				if grouped {
					st := domain.SuggestionStatus(status)
					if st == "" {
						st = domain.StatusPending
					}
					groups, err := e.Service.Grouped(ctx, st)
					if err != nil {
						return err
					}
					for _, g := range groups {
						code := g.TargetCode
						if code == "" {
							code = "(no target code)"
						}
						fmt.Fprintf(out, "%s %s\n", titleStyle.Render(code), mutedStyle.Render(fmt.Sprintf("(%d)", len(g.Suggestions))))
						writeTable(out, g.Suggestions)
						fmt.Fprintln(out)
					}
					return nil
				}

				in := suggestion.ListInput{Limit: limit, Offset: offset}
				if status != "" {
					st := domain.SuggestionStatus(status)
					in.Status = &st
				}
				if typ != "" {
					in.Type = &typ
				}
				if target != "" {
					in.TargetCode = &target
				}

				res, err := e.Service.List(ctx, in)
				if err != nil {
					return err
				}
				writeTable(out, res.Items)
				fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%d of %d", len(res.Items), res.Total)))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (pending, approved, rejected, corrected, rolled_back)")
	cmd.Flags().StringVar(&typ, "type", "", "filter by suggestion type")
	cmd.Flags().StringVar(&target, "target", "", "filter by target code")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size (default 50)")
	cmd.Flags().IntVar(&offset, "offset", 0, "page offset")
	cmd.Flags().BoolVar(&grouped, "grouped", false, "group by target code (uses --status, default pending)")
	return cmd
}

func writeTable(w io.Writer, items []suggestion.SuggestionView) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("ID"), headerStyle.Render("TYPE"), headerStyle.Render("STATUS"),
		headerStyle.Render("CONF"), headerStyle.Render("TARGET"))
	for _, v := range items {
		conf := fmt.Sprintf("%.2f", v.Confidence)
		if v.LowConfidence {
			conf = warnStyle.Render(conf)
		}
		typ := v.Type
		if !v.HasHandler {
			typ = mutedStyle.Render(typ)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", v.ID, typ, renderStatus(v.Status), conf, deref(v.TargetCode, "-"))
	}
	_ = tw.Flush()
}
