package suggestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/studioops-backend/internal/domain"
	"github.com/heartmarshall/studioops-backend/internal/service/suggestion/handlers"
)

// Preview shows what approving the suggestion would write. It never writes.
// Suggestions that cannot be previewed (decided, unknown type, invalid
// payload) get Previewable=false and a reason instead of an error.
func (s *Service) Preview(ctx context.Context, id uuid.UUID) (*PreviewResult, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("suggestion_id", "required")
	}

	sg, err := s.suggestions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get suggestion: %w", err)
	}

	h := s.resolve(*sg)
	out := &PreviewResult{
		SuggestionID: sg.ID,
		Type:         sg.Type,
		Status:       sg.Status,
		IsActionable: h.Actionable(),
		Action:       domain.ActionNone,
	}

	if sg.Status != domain.StatusPending {
		out.Summary = fmt.Sprintf("not previewable: suggestion is already %s", sg.Status)
		return out, nil
	}
	if _, ack := h.(handlers.Acknowledge); ack {
		out.Summary = fmt.Sprintf("not previewable: no handler registered for type %q", sg.Type)
		return out, nil
	}

	payload := sg.EffectivePayload()

	var problems []string
	if err := s.guard(ctx, *sg, "validate", func() (err error) {
		problems, err = h.Validate(ctx, payload)
		return err
	}); err != nil {
		out.Summary = "not previewable: handler error"
		out.Errors = []string{err.Error()}
		return out, nil
	}
	if len(problems) > 0 {
		out.Summary = "not previewable: validation failed"
		out.Errors = problems
		return out, nil
	}

	var preview *domain.ChangePreview
	err = s.guard(ctx, *sg, "preview", func() (err error) {
		preview, err = h.Preview(ctx, *sg, payload)
		if err == nil && preview == nil {
			err = errors.New("no preview returned")
		}
		return err
	})
	if err != nil {
		out.Summary = "not previewable: handler error"
		out.Errors = []string{err.Error()}
		return out, nil
	}

	out.Previewable = true
	out.Action = preview.Action
	out.Table = preview.Table
	out.Summary = preview.Summary
	out.Changes = preview.Changes
	return out, nil
}
