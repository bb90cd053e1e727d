package suggestion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

const (
	maxIngestBatch = 500
	maxReasonLen   = 1000
	maxTypeLen     = 100
	defaultLimit   = 50
	maxLimit       = 200
)

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed)
}

// DecideInput holds the parameters for deciding a suggestion.
type DecideInput struct {
	SuggestionID  uuid.UUID
	Decision      domain.Decision
	EditedPayload json.RawMessage
	Reason        *string
}

// Validate checks all fields and collects all errors.
func (i DecideInput) Validate() error {
	var errs []domain.FieldError
	if i.SuggestionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "suggestion_id", Message: "required"})
	}
	if !i.Decision.IsValid() {
		errs = append(errs, domain.FieldError{Field: "decision", Message: "must be approve, reject or correct"})
	}
	switch {
	case i.Decision == domain.DecisionCorrect && len(i.EditedPayload) == 0:
		errs = append(errs, domain.FieldError{Field: "edited_payload", Message: "required when decision is correct"})
	case len(i.EditedPayload) > 0 && i.Decision != domain.DecisionCorrect:
		errs = append(errs, domain.FieldError{Field: "edited_payload", Message: "only accepted when decision is correct"})
	case len(i.EditedPayload) > 0 && !isJSONObject(i.EditedPayload):
		errs = append(errs, domain.FieldError{Field: "edited_payload", Message: "must be a JSON object"})
	}
	if i.Reason != nil && len(*i.Reason) > maxReasonLen {
		errs = append(errs, domain.FieldError{Field: "reason", Message: fmt.Sprintf("max %d characters", maxReasonLen)})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// NewSuggestion is one classifier output to ingest.
type NewSuggestion struct {
	Type        string
	Payload     json.RawMessage
	Confidence  float64
	Source      domain.SourceReference
	TargetCode  *string
	TargetTable *string
}

// IngestInput holds a batch of classifier outputs.
type IngestInput struct {
	Suggestions []NewSuggestion
}

// Validate checks all fields and collects all errors.
func (i IngestInput) Validate() error {
	if len(i.Suggestions) == 0 {
		return domain.NewValidationError("suggestions", "at least one suggestion is required")
	}
	if len(i.Suggestions) > maxIngestBatch {
		return domain.NewValidationError("suggestions", fmt.Sprintf("max %d per batch", maxIngestBatch))
	}

	var errs []domain.FieldError
	for idx, s := range i.Suggestions {
		field := func(name string) string { return fmt.Sprintf("suggestions[%d].%s", idx, name) }

		typ := strings.TrimSpace(s.Type)
		if typ == "" {
			errs = append(errs, domain.FieldError{Field: field("suggestion_type"), Message: "required"})
		} else if len(typ) > maxTypeLen {
			errs = append(errs, domain.FieldError{Field: field("suggestion_type"), Message: fmt.Sprintf("max %d characters", maxTypeLen)})
		}
		if s.Confidence < 0 || s.Confidence > 1 {
			errs = append(errs, domain.FieldError{Field: field("confidence"), Message: "must be between 0 and 1"})
		}
		if !isJSONObject(s.Payload) {
			errs = append(errs, domain.FieldError{Field: field("payload"), Message: "must be a JSON object"})
		}
		if s.Source.Kind != "" && !s.Source.Kind.IsValid() {
			errs = append(errs, domain.FieldError{Field: field("source.kind"), Message: "must be email, transcript or manual"})
		}
		if (s.Source.Kind == domain.SourceEmail || s.Source.Kind == domain.SourceTranscript) && s.Source.ID == nil {
			errs = append(errs, domain.FieldError{Field: field("source.id"), Message: "required for email and transcript sources"})
		}
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds the parameters for listing suggestions.
type ListInput struct {
	Status     *domain.SuggestionStatus
	Type       *string
	TargetCode *string
	Limit      int
	Offset     int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > maxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("max %d", maxLimit)})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
