package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/studioops-backend/internal/app"
	"github.com/heartmarshall/studioops-backend/internal/domain"
	"github.com/heartmarshall/studioops-backend/internal/service/suggestion"
)

type ingestRecord struct {
	Type        string          `json:"suggestion_type"`
	Payload     json.RawMessage `json:"payload"`
	Confidence  float64         `json:"confidence"`
	TargetCode  *string         `json:"target_code"`
	TargetTable *string         `json:"target_table"`
	Source      *struct {
		Kind string     `json:"kind"`
		ID   *uuid.UUID `json:"id"`
	} `json:"source_reference"`
}

// readIngestFile accepts either a JSON array of suggestions or an object
// with a "suggestions" array.
func readIngestFile(r io.Reader) (suggestion.IngestInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return suggestion.IngestInput{}, fmt.Errorf("read input: %w", err)
	}

	var records []ingestRecord
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &records)
	} else {
		var wrapped struct {
			Suggestions []ingestRecord `json:"suggestions"`
		}
		err = json.Unmarshal(trimmed, &wrapped)
		records = wrapped.Suggestions
	}
	if err != nil {
		return suggestion.IngestInput{}, fmt.Errorf("parse input: %w", err)
	}

	in := suggestion.IngestInput{Suggestions: make([]suggestion.NewSuggestion, 0, len(records))}
	for _, rec := range records {
		ns := suggestion.NewSuggestion{
			Type:        rec.Type,
			Payload:     rec.Payload,
			Confidence:  rec.Confidence,
			TargetCode:  rec.TargetCode,
			TargetTable: rec.TargetTable,
		}
		if rec.Source != nil {
			ns.Source = domain.SourceReference{Kind: domain.SourceKind(rec.Source.Kind), ID: rec.Source.ID}
		}
		in.Suggestions = append(in.Suggestions, ns)
	}
	return in, nil
}

func ingestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file|->",
		Short: "Store classifier output as pending suggestions",
		Long: `Reads a JSON file of classifier output and stores every entry as a
pending suggestion. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			in, err := readIngestFile(r)
			if err != nil {
				return err
			}

			return withEngine(cmd, func(ctx context.Context, e *app.Engine) error {
				views, err := e.Service.Ingest(ctx, in)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("stored %d suggestion(s)", len(views))))
				for _, v := range views {
					flag := ""
					if v.LowConfidence {
						flag = warnStyle.Render(" low confidence")
					}
					fmt.Fprintf(out, "  %s  %-20s %s%s\n", v.ID, v.Type, deref(v.TargetCode, "-"), flag)
				}
				return nil
			})
		},
	}
}
