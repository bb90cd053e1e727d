package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SuggestionStatus is the lifecycle state of a suggestion.
type SuggestionStatus string

const (
	StatusPending    SuggestionStatus = "pending"
	StatusApproved   SuggestionStatus = "approved"
	StatusRejected   SuggestionStatus = "rejected"
	StatusCorrected  SuggestionStatus = "corrected"
	StatusRolledBack SuggestionStatus = "rolled_back"
)

func (s SuggestionStatus) String() string { return string(s) }

func (s SuggestionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCorrected, StatusRolledBack:
		return true
	}
	return false
}

// CanTransition reports whether the lifecycle allows moving from s to next.
// pending moves to approved, rejected or corrected; only approved may be
// rolled back. Everything else is terminal.
func (s SuggestionStatus) CanTransition(next SuggestionStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected || next == StatusCorrected
	case StatusApproved:
		return next == StatusRolledBack
	}
	return false
}

// Decision is a reviewer's verdict on a pending suggestion.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
	DecisionCorrect Decision = "correct"
)

func (d Decision) String() string { return string(d) }

func (d Decision) IsValid() bool {
	switch d {
	case DecisionApprove, DecisionReject, DecisionCorrect:
		return true
	}
	return false
}

// SourceKind names the artifact a classifier derived a suggestion from.
type SourceKind string

const (
	SourceEmail      SourceKind = "email"
	SourceTranscript SourceKind = "transcript"
	SourceManual     SourceKind = "manual"
)

func (k SourceKind) String() string { return string(k) }

func (k SourceKind) IsValid() bool {
	switch k {
	case SourceEmail, SourceTranscript, SourceManual:
		return true
	}
	return false
}

// SourceReference is an opaque provenance pointer back to the artifact a
// suggestion was derived from.
type SourceReference struct {
	Kind SourceKind `json:"kind"`
	ID   *uuid.UUID `json:"id,omitempty"`
}

// Suggestion is a candidate change proposed by a classifier and owned by the
// suggestion engine until it reaches a terminal status.
type Suggestion struct {
	ID               uuid.UUID
	Type             string
	Payload          json.RawMessage
	Confidence       float64
	Source           SourceReference
	TargetCode       *string
	TargetTable      *string
	Status           SuggestionStatus
	IsActionable     bool
	RollbackSnapshot json.RawMessage
	CorrectedPayload json.RawMessage
	RejectionReason  *string
	DecidedBy        *uuid.UUID
	CreatedAt        time.Time
	DecidedAt        *time.Time
	RolledBackAt     *time.Time
	RolledBackBy     *uuid.UUID
}

// EffectivePayload returns the reviewer-corrected payload when one was
// stored, otherwise the classifier payload.
func (s *Suggestion) EffectivePayload() json.RawMessage {
	if len(s.CorrectedPayload) > 0 {
		return s.CorrectedPayload
	}
	return s.Payload
}

// HasSnapshot reports whether rollback data was persisted.
func (s *Suggestion) HasSnapshot() bool {
	return len(s.RollbackSnapshot) > 0 && string(s.RollbackSnapshot) != "null"
}

// IsLowConfidence reports whether the classifier confidence is below threshold.
func (s *Suggestion) IsLowConfidence(threshold float64) bool {
	return s.Confidence < threshold
}

// SuggestionFilter narrows suggestion listings. Zero values mean "any".
type SuggestionFilter struct {
	Status     *SuggestionStatus
	Type       *string
	TargetCode *string
	Limit      int
	Offset     int
}

// SuggestionTransition is a status-guarded update applied by the engine.
type SuggestionTransition struct {
	ID               uuid.UUID
	From             SuggestionStatus
	To               SuggestionStatus
	IsActionable     bool
	RollbackSnapshot json.RawMessage
	CorrectedPayload json.RawMessage
	RejectionReason  *string
	Actor            *uuid.UUID
	At               time.Time
}
