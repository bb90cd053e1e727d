// Package handlers holds one Handler per suggestion type and the registry
// the suggestion engine resolves them from.
package handlers

import (
	"context"
	"encoding/json"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

// Handler turns one suggestion type into a validated, previewable,
// reversible mutation of its target entity.
//
// Validate and Preview must not write. Apply must either make all of its
// writes or none; the engine runs it inside the decision transaction.
// Rollback returns false when the stored data no longer matches what Apply
// wrote, so a human can take over.
type Handler interface {
	Type() string
	TargetEntity() domain.EntityKind
	Actionable() bool

	// Validate returns human-readable problems with payload. The error is
	// reserved for infrastructure failures.
	Validate(ctx context.Context, payload json.RawMessage) ([]string, error)
	Preview(ctx context.Context, s domain.Suggestion, payload json.RawMessage) (*domain.ChangePreview, error)
	Apply(ctx context.Context, s domain.Suggestion, payload json.RawMessage) (*domain.ApplyResult, error)
	Rollback(ctx context.Context, data json.RawMessage) (bool, error)
}

// Factory builds a handler bound to deps. A factory must accept zero Deps so
// the registry can read the handler's type.
type Factory func(Deps) Handler
