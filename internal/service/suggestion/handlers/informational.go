package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

const (
	TypeInformational = "informational"
	TypeAcknowledge   = "acknowledge"
)

// Informational suggestions carry a note for the reviewer and write nothing.
type Informational struct{}

func NewInformational(Deps) Handler { return Informational{} }

func (Informational) Type() string                    { return TypeInformational }
func (Informational) TargetEntity() domain.EntityKind { return domain.EntityNone }
func (Informational) Actionable() bool                { return false }

func (Informational) Validate(context.Context, json.RawMessage) ([]string, error) { return nil, nil }

func (Informational) Preview(context.Context, domain.Suggestion, json.RawMessage) (*domain.ChangePreview, error) {
	return &domain.ChangePreview{
		Action:  domain.ActionNone,
		Summary: "Informational only, nothing will be changed",
	}, nil
}

func (Informational) Apply(context.Context, domain.Suggestion, json.RawMessage) (*domain.ApplyResult, error) {
	return &domain.ApplyResult{Success: true, Message: "noted"}, nil
}

func (Informational) Rollback(context.Context, json.RawMessage) (bool, error) { return true, nil }

// Acknowledge stands in for suggestion types nothing is registered for, so
// they still reach a terminal status instead of being dropped.
type Acknowledge struct {
	suggestionType string
}

// NewAcknowledge is not registered; the engine builds it on demand.
func NewAcknowledge(suggestionType string) Handler {
	return Acknowledge{suggestionType: suggestionType}
}

func (Acknowledge) Type() string                    { return TypeAcknowledge }
func (Acknowledge) TargetEntity() domain.EntityKind { return domain.EntityNone }
func (Acknowledge) Actionable() bool                { return false }

func (Acknowledge) Validate(context.Context, json.RawMessage) ([]string, error) { return nil, nil }

func (a Acknowledge) Preview(context.Context, domain.Suggestion, json.RawMessage) (*domain.ChangePreview, error) {
	return &domain.ChangePreview{
		Action:  domain.ActionNone,
		Summary: fmt.Sprintf("No handler for %q; approving only records the decision", a.suggestionType),
	}, nil
}

func (a Acknowledge) Apply(context.Context, domain.Suggestion, json.RawMessage) (*domain.ApplyResult, error) {
	return &domain.ApplyResult{
		Success: true,
		Message: fmt.Sprintf("acknowledged: no handler registered for %q", a.suggestionType),
	}, nil
}

func (Acknowledge) Rollback(context.Context, json.RawMessage) (bool, error) { return true, nil }
