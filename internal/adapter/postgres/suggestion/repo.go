// Package suggestion implements the suggestion store on PostgreSQL.
package suggestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/studioops-backend/internal/adapter/postgres"
	"github.com/heartmarshall/studioops-backend/internal/domain"
)

const (
	table     = "suggestions"
	entity    = "suggestion"
	listLimit = 200
)

var columns = []string{
	"id", "suggestion_type", "payload", "confidence", "source_kind", "source_id",
	"target_code", "target_table", "status", "is_actionable", "rollback_snapshot",
	"corrected_payload", "rejection_reason", "decided_by", "created_at",
	"decided_at", "rolled_back_at", "rolled_back_by",
}

// Repo provides suggestion persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new suggestion repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID               uuid.UUID       `db:"id"`
	Type             string          `db:"suggestion_type"`
	Payload          json.RawMessage `db:"payload"`
	Confidence       float64         `db:"confidence"`
	SourceKind       string          `db:"source_kind"`
	SourceID         *uuid.UUID      `db:"source_id"`
	TargetCode       *string         `db:"target_code"`
	TargetTable      *string         `db:"target_table"`
	Status           string          `db:"status"`
	IsActionable     bool            `db:"is_actionable"`
	RollbackSnapshot json.RawMessage `db:"rollback_snapshot"`
	CorrectedPayload json.RawMessage `db:"corrected_payload"`
	RejectionReason  *string         `db:"rejection_reason"`
	DecidedBy        *uuid.UUID      `db:"decided_by"`
	CreatedAt        time.Time       `db:"created_at"`
	DecidedAt        *time.Time      `db:"decided_at"`
	RolledBackAt     *time.Time      `db:"rolled_back_at"`
	RolledBackBy     *uuid.UUID      `db:"rolled_back_by"`
}

func (r row) toDomain() domain.Suggestion {
	return domain.Suggestion{
		ID:               r.ID,
		Type:             r.Type,
		Payload:          r.Payload,
		Confidence:       r.Confidence,
		Source:           domain.SourceReference{Kind: domain.SourceKind(r.SourceKind), ID: r.SourceID},
		TargetCode:       r.TargetCode,
		TargetTable:      r.TargetTable,
		Status:           domain.SuggestionStatus(r.Status),
		IsActionable:     r.IsActionable,
		RollbackSnapshot: r.RollbackSnapshot,
		CorrectedPayload: r.CorrectedPayload,
		RejectionReason:  r.RejectionReason,
		DecidedBy:        r.DecidedBy,
		CreatedAt:        r.CreatedAt,
		DecidedAt:        r.DecidedAt,
		RolledBackAt:     r.RolledBackAt,
		RolledBackBy:     r.RolledBackBy,
	}
}

// jsonArg passes JSON to a jsonb column; empty input becomes NULL.
func jsonArg(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	s := string(raw)
	return &s
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts pending suggestions and returns them as stored.
func (r *Repo) Create(ctx context.Context, items []domain.Suggestion) ([]domain.Suggestion, error) {
	if len(items) == 0 {
		return nil, nil
	}

	insert := postgres.Builder().Insert(table).Columns(
		"id", "suggestion_type", "payload", "confidence", "source_kind", "source_id",
		"target_code", "target_table", "status", "is_actionable", "created_at",
	)
	for _, s := range items {
		insert = insert.Values(
			s.ID, s.Type, squirrel.Expr("?::jsonb", jsonArg(s.Payload)), s.Confidence,
			string(s.Source.Kind), s.Source.ID, s.TargetCode, s.TargetTable,
			string(domain.StatusPending), s.IsActionable, s.CreatedAt,
		)
	}

	sql, args, err := insert.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert suggestions: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, items[0].ID)
	}

	return toDomainList(rows), nil
}

// Transition moves a suggestion from t.From to t.To. The update is guarded on
// the current status; if another caller already moved the row the result is
// domain.ErrConflict and nothing is written.
func (r *Repo) Transition(ctx context.Context, t domain.SuggestionTransition) (*domain.Suggestion, error) {
	update := postgres.Builder().Update(table).
		Set("status", string(t.To)).
		Set("is_actionable", t.IsActionable).
		Where(squirrel.Eq{"id": t.ID, "status": string(t.From)})

	if t.RollbackSnapshot != nil {
		update = update.Set("rollback_snapshot", squirrel.Expr("?::jsonb", jsonArg(t.RollbackSnapshot)))
	}
	if t.CorrectedPayload != nil {
		update = update.Set("corrected_payload", squirrel.Expr("?::jsonb", jsonArg(t.CorrectedPayload)))
	}
	if t.RejectionReason != nil {
		update = update.Set("rejection_reason", *t.RejectionReason)
	}

	if t.To == domain.StatusRolledBack {
		update = update.Set("rolled_back_at", t.At).Set("rolled_back_by", t.Actor)
	} else {
		update = update.Set("decided_at", t.At).Set("decided_by", t.Actor)
	}

	sql, args, err := update.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build transition suggestion: %w", err)
	}

	var out row
	err = pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: status is no longer %s: %w", entity, t.ID, t.From, domain.ErrConflict)
	}
	if err != nil {
		return nil, postgres.MapError(err, entity, t.ID)
	}

	s := out.toDomain()
	return &s, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a suggestion by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate returns a suggestion and locks its row until the
// surrounding transaction ends.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	return r.get(ctx, id, true)
}

func (r *Repo) get(ctx context.Context, id uuid.UUID, lock bool) (*domain.Suggestion, error) {
	query := postgres.Builder().Select(columns...).From(table).Where(squirrel.Eq{"id": id})
	if lock {
		query = query.Suffix("FOR UPDATE")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select suggestion: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	s := out.toDomain()
	return &s, nil
}

// List returns suggestions matching filter, newest first, along with the total
// count ignoring paging.
func (r *Repo) List(ctx context.Context, filter domain.SuggestionFilter) ([]domain.Suggestion, int, error) {
	where := squirrel.And{}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.Type != nil {
		where = append(where, squirrel.Eq{"suggestion_type": *filter.Type})
	}
	if filter.TargetCode != nil {
		where = append(where, squirrel.Eq{"target_code": *filter.TargetCode})
	}

	limit := filter.Limit
	if limit <= 0 || limit > listLimit {
		limit = listLimit
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	countSQL, countArgs, err := postgres.Builder().Select("count(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count suggestions: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suggestions: %w", err)
	}

	sql, args, err := postgres.Builder().Select(columns...).From(table).Where(where).
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		Offset(uint64(max(filter.Offset, 0))).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list suggestions: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list suggestions: %w", err)
	}

	return toDomainList(rows), total, nil
}

// ListByStatus returns every suggestion in status ordered by target code so
// callers can group them.
func (r *Repo) ListByStatus(ctx context.Context, status domain.SuggestionStatus) ([]domain.Suggestion, error) {
	sql, args, err := postgres.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"status": string(status)}).
		OrderBy("target_code NULLS LAST", "created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list suggestions by status: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list suggestions by status: %w", err)
	}

	return toDomainList(rows), nil
}

func toDomainList(rows []row) []domain.Suggestion {
	out := make([]domain.Suggestion, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}
