// Package suggestion is the suggestion engine: the only component that moves
// a suggestion through its lifecycle. It resolves the handler for a
// suggestion, runs it inside one transaction together with the change log
// and the status update, and reports every handler-level failure as a
// domain.Outcome.
package suggestion

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/heartmarshall/studioops-backend/internal/domain"
	"github.com/heartmarshall/studioops-backend/internal/service/suggestion/handlers"
)

const DefaultDecisionTimeout = 5 * time.Second

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type suggestionRepo interface {
	Create(ctx context.Context, items []domain.Suggestion) ([]domain.Suggestion, error)
	Transition(ctx context.Context, t domain.SuggestionTransition) (*domain.Suggestion, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error)
	List(ctx context.Context, filter domain.SuggestionFilter) ([]domain.Suggestion, int, error)
	ListByStatus(ctx context.Context, status domain.SuggestionStatus) ([]domain.Suggestion, error)
}

type changeLogRepo interface {
	Append(ctx context.Context, suggestionID uuid.UUID, records []domain.ChangeRecord) ([]domain.ChangeRecord, error)
	ListBySuggestion(ctx context.Context, suggestionID uuid.UUID) ([]domain.ChangeRecord, error)
	MarkRolledBack(ctx context.Context, suggestionID uuid.UUID, at time.Time) (int64, error)
}

type emailRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Email, error)
}

type transcriptRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transcript, error)
}

type handlerRegistry interface {
	GetHandler(typ string, deps handlers.Deps) (handlers.Handler, bool)
	GetLegacy(table string, deps handlers.Deps) (handlers.Handler, bool)
	RegisteredTypes() []string
	ActionableTypes() []string
}

type eventPublisher interface {
	Publish(ctx context.Context, event domain.SuggestionEvent) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config holds engine tunables.
type Config struct {
	DecisionTimeout time.Duration
	MinConfidence   float64
}

// Service orchestrates ingest, preview, decide and rollback.
type Service struct {
	suggestions suggestionRepo
	changes     changeLogRepo
	emails      emailRepo
	transcripts transcriptRepo
	registry    handlerRegistry
	deps        handlers.Deps
	events      eventPublisher
	tx          txManager
	cfg         Config
	log         *slog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewService creates the suggestion engine. events may be nil.
func NewService(
	log *slog.Logger,
	suggestions suggestionRepo,
	changes changeLogRepo,
	emails emailRepo,
	transcripts transcriptRepo,
	registry handlerRegistry,
	deps handlers.Deps,
	events eventPublisher,
	tx txManager,
	cfg Config,
) *Service {
	if cfg.DecisionTimeout <= 0 {
		cfg.DecisionTimeout = DefaultDecisionTimeout
	}
	log = log.With("service", "suggestion")
	if deps.Log == nil {
		deps.Log = log
	}
	now := deps.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Service{
		suggestions: suggestions,
		changes:     changes,
		emails:      emails,
		transcripts: transcripts,
		registry:    registry,
		deps:        deps,
		events:      events,
		tx:          tx,
		cfg:         cfg,
		log:         log,
		tracer:      otel.Tracer("github.com/heartmarshall/studioops-backend/internal/service/suggestion"),
		now:         now,
	}
}
