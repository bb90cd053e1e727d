package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PreviewAction is the kind of write a handler would perform.
type PreviewAction string

const (
	ActionInsert PreviewAction = "insert"
	ActionUpdate PreviewAction = "update"
	ActionDelete PreviewAction = "delete"
	ActionNone   PreviewAction = "none"
)

// FieldChange is one field a preview promises to write.
type FieldChange struct {
	Field string  `json:"field"`
	Old   *string `json:"old"`
	New   *string `json:"new"`
}

// ChangePreview describes what applying a suggestion would write, without
// writing it.
type ChangePreview struct {
	Action  PreviewAction `json:"action"`
	Table   string        `json:"table"`
	Summary string        `json:"summary"`
	Changes []FieldChange `json:"changes"`
}

// ApplyResult is what a handler reports after attempting its mutation.
// RollbackData must be enough to reverse the mutation exactly.
type ApplyResult struct {
	Success      bool
	Message      string
	ChangesMade  []ChangeRecord
	RollbackData json.RawMessage
}

// Outcome is the structured result of a lifecycle operation. Handler
// failures, validation errors and state conflicts are reported here rather
// than as Go errors.
type Outcome struct {
	SuggestionID uuid.UUID        `json:"suggestion_id"`
	Success      bool             `json:"success"`
	Message      string           `json:"message"`
	Status       SuggestionStatus `json:"status"`
	IsActionable bool             `json:"is_actionable"`
	Errors       []string         `json:"errors,omitempty"`
	Changes      []ChangeRecord   `json:"-"`
}

// SuggestionEvent is published after a lifecycle transition commits.
type SuggestionEvent struct {
	Name           string           `json:"event"`
	SuggestionID   uuid.UUID        `json:"suggestion_id"`
	SuggestionType string           `json:"suggestion_type"`
	Status         SuggestionStatus `json:"status"`
	IsActionable   bool             `json:"is_actionable"`
	ChangeCount    int              `json:"change_count"`
	DecidedBy      *uuid.UUID       `json:"decided_by,omitempty"`
	OccurredAt     time.Time        `json:"occurred_at"`
}

const (
	EventSuggestionDecided    = "suggestion.decided"
	EventSuggestionRolledBack = "suggestion.rolled_back"
)
