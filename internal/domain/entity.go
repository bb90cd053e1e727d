package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Proposal is a priced offer to a client, identified by its project code.
type Proposal struct {
	ID          uuid.UUID
	ProjectCode string
	ClientName  string
	Title       string
	Fee         *decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Project is won work, optionally traced back to its proposal.
type Project struct {
	ID          uuid.UUID
	ProjectCode string
	Name        string
	ProposalID  *uuid.UUID
	CreatedAt   time.Time
}

// Email is an ingested message.
type Email struct {
	ID         uuid.UUID
	Subject    string
	Sender     string
	Body       string
	ReceivedAt time.Time
}

// Transcript is a meeting record that may be attached to a proposal or project.
type Transcript struct {
	ID         uuid.UUID
	Title      string
	Body       string
	ProposalID *uuid.UUID
	ProjectID  *uuid.UUID
	RecordedAt time.Time
}

// Contact is a person the studio corresponds with.
type Contact struct {
	ID                 uuid.UUID
	Email              string
	Name               string
	Company            *string
	Phone              *string
	SourceSuggestionID *uuid.UUID
	CreatedAt          time.Time
}

// TaskPriority orders follow-up work.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityNormal TaskPriority = "normal"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

// Task is a unit of follow-up work with a due date.
type Task struct {
	ID                 uuid.UUID
	Title              string
	Description        *string
	DueDate            time.Time
	Priority           TaskPriority
	Status             string
	ProposalID         *uuid.UUID
	ProjectID          *uuid.UUID
	SourceSuggestionID *uuid.UUID
	CreatedAt          time.Time
}

// EmailLink joins an email to a proposal or a project.
type EmailLink struct {
	ID        uuid.UUID
	Kind      EntityKind
	EmailID   uuid.UUID
	TargetID  uuid.UUID
	CreatedAt time.Time
}
