package suggestion

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

// Ingest stores classifier output as pending suggestions. Low-confidence
// suggestions are stored too; listings flag them.
func (s *Service) Ingest(ctx context.Context, input IngestInput) ([]SuggestionView, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	actionable := s.registry.ActionableTypes()
	now := s.now()

	items := make([]domain.Suggestion, 0, len(input.Suggestions))
	lowConfidence := 0
	for _, in := range input.Suggestions {
		sg := domain.Suggestion{
			ID:          uuid.New(),
			Type:        strings.TrimSpace(in.Type),
			Payload:     bytes.TrimSpace(in.Payload),
			Confidence:  in.Confidence,
			Source:      in.Source,
			TargetCode:  trimOrNil(in.TargetCode),
			TargetTable: trimOrNil(in.TargetTable),
			Status:      domain.StatusPending,
			CreatedAt:   now,
		}
		if sg.Source.Kind == "" {
			sg.Source.Kind = domain.SourceManual
		}
		sg.IsActionable = slices.Contains(actionable, sg.Type)
		if !sg.IsActionable && sg.TargetTable != nil {
			_, sg.IsActionable = s.registry.GetLegacy(*sg.TargetTable, s.deps)
		}
		if sg.IsLowConfidence(s.cfg.MinConfidence) {
			lowConfidence++
		}
		items = append(items, sg)
	}

	created, err := s.suggestions.Create(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("create suggestions: %w", err)
	}

	s.log.InfoContext(ctx, "suggestions ingested",
		slog.Int("count", len(created)),
		slog.Int("low_confidence", lowConfidence),
	)

	out := make([]SuggestionView, 0, len(created))
	for _, sg := range created {
		out = append(out, s.view(sg))
	}
	return out, nil
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
