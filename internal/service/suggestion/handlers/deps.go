package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/studioops-backend/internal/domain"
	"github.com/heartmarshall/studioops-backend/internal/service/suggestion/normalize"
)

const (
	DefaultFollowUpDays     = 7
	DefaultDeadlineFallback = 14
)

type ProposalStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error)
	GetByCode(ctx context.Context, code string) (*domain.Proposal, error)
	UpdateFee(ctx context.Context, id uuid.UUID, fee *decimal.Decimal, updatedAt time.Time) error
}

type ProjectStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
}

type EmailStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Email, error)
}

type TranscriptStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transcript, error)
	SetLinks(ctx context.Context, id uuid.UUID, proposalID, projectID *uuid.UUID) error
}

type ContactStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, c domain.Contact) (*domain.Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TaskStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	Create(ctx context.Context, t domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type EmailLinkStore interface {
	Exists(ctx context.Context, kind domain.EntityKind, emailID, targetID uuid.UUID) (bool, error)
	Create(ctx context.Context, link domain.EmailLink) (*domain.EmailLink, error)
	Delete(ctx context.Context, kind domain.EntityKind, id uuid.UUID) error
}

// Settings are the tunables handlers read from configuration.
type Settings struct {
	FollowUpDefaultDays  int
	DeadlineFallbackDays int
	// Currency labels fee amounts in summaries. Amounts themselves are
	// stored without a currency.
	Currency string
}

// Deps is everything a handler may touch. Stores resolve the transaction
// from the context they are called with.
type Deps struct {
	Proposals   ProposalStore
	Projects    ProjectStore
	Emails      EmailStore
	Transcripts TranscriptStore
	Contacts    ContactStore
	Tasks       TaskStore
	EmailLinks  EmailLinkStore

	Settings Settings
	Log      *slog.Logger

	Now           func() time.Time
	ParseMoney    normalize.MoneyFunc
	ParseDeadline normalize.DeadlineFunc
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now().UTC()
}

func (d Deps) money() normalize.MoneyFunc {
	if d.ParseMoney != nil {
		return d.ParseMoney
	}
	return normalize.ParseMoney
}

func (d Deps) deadline() normalize.DeadlineFunc {
	if d.ParseDeadline != nil {
		return d.ParseDeadline
	}
	return normalize.ParseDeadline
}

func (d Deps) followUpDays() int {
	if d.Settings.FollowUpDefaultDays > 0 {
		return d.Settings.FollowUpDefaultDays
	}
	return DefaultFollowUpDays
}

func (d Deps) fallbackDays() int {
	if d.Settings.DeadlineFallbackDays > 0 {
		return d.Settings.DeadlineFallbackDays
	}
	return DefaultDeadlineFallback
}

func (d Deps) currency() string {
	if d.Settings.Currency != "" {
		return d.Settings.Currency
	}
	return "USD"
}

func (d Deps) logger() *slog.Logger {
	if d.Log != nil {
		return d.Log
	}
	return slog.Default()
}
