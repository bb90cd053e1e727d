package suggestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

// Source returns the email or transcript a suggestion was derived from.
func (s *Service) Source(ctx context.Context, id uuid.UUID) (*SourceResult, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("suggestion_id", "required")
	}

	sg, err := s.suggestions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get suggestion: %w", err)
	}

	out := &SourceResult{
		SuggestionID: sg.ID,
		Kind:         sg.Source.Kind,
		SourceID:     sg.Source.ID,
	}
	if sg.Source.ID == nil {
		out.Message = "suggestion has no source artifact"
		return out, nil
	}

	switch sg.Source.Kind {
	case domain.SourceEmail:
		email, err := s.emails.GetByID(ctx, *sg.Source.ID)
		if err != nil {
			return sourceMissing(out, err, "email")
		}
		out.Email = email
	case domain.SourceTranscript:
		tr, err := s.transcripts.GetByID(ctx, *sg.Source.ID)
		if err != nil {
			return sourceMissing(out, err, "transcript")
		}
		out.Transcript = tr
	default:
		out.Message = fmt.Sprintf("source kind %q has no stored artifact", sg.Source.Kind)
		return out, nil
	}

	out.Available = true
	return out, nil
}

func sourceMissing(out *SourceResult, err error, what string) (*SourceResult, error) {
	if errors.Is(err, domain.ErrNotFound) {
		out.Message = fmt.Sprintf("source %s no longer exists", what)
		return out, nil
	}
	return nil, fmt.Errorf("get source %s: %w", what, err)
}
