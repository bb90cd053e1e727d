package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntityKind names a target entity a handler may mutate.
type EntityKind string

const (
	EntityProposal          EntityKind = "proposal"
	EntityProject           EntityKind = "project"
	EntityTranscript        EntityKind = "transcript"
	EntityContact           EntityKind = "contact"
	EntityTask              EntityKind = "task"
	EntityEmailProposalLink EntityKind = "email_proposal_link"
	EntityEmailProjectLink  EntityKind = "email_project_link"
	EntityNone              EntityKind = "none"
)

func (k EntityKind) String() string { return string(k) }

// Table returns the storage table backing the entity kind.
func (k EntityKind) Table() string {
	switch k {
	case EntityProposal:
		return "proposals"
	case EntityProject:
		return "projects"
	case EntityTranscript:
		return "transcripts"
	case EntityContact:
		return "contacts"
	case EntityTask:
		return "tasks"
	case EntityEmailProposalLink:
		return "email_proposal_links"
	case EntityEmailProjectLink:
		return "email_project_links"
	}
	return ""
}

// ChangeKind is the shape of a field-level mutation.
type ChangeKind string

const (
	ChangeInsert ChangeKind = "insert"
	ChangeUpdate ChangeKind = "update"
	ChangeDelete ChangeKind = "delete"
)

func (k ChangeKind) String() string { return string(k) }

func (k ChangeKind) IsValid() bool {
	switch k {
	case ChangeInsert, ChangeUpdate, ChangeDelete:
		return true
	}
	return false
}

// ChangeRecord is one append-only audit entry describing a field mutation
// made while applying a suggestion.
type ChangeRecord struct {
	ID           uuid.UUID
	SuggestionID uuid.UUID
	EntityKind   EntityKind
	EntityID     string
	FieldName    string
	OldValue     *string
	NewValue     *string
	ChangeKind   ChangeKind
	CreatedAt    time.Time
	RolledBack   bool
	RolledBackAt *time.Time
}
