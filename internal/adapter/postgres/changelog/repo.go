// Package changelog implements the append-only suggestion change log on
// PostgreSQL. Rows are inserted by the apply flow and only ever updated to
// flip rolled_back.
package changelog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/studioops-backend/internal/adapter/postgres"
	"github.com/heartmarshall/studioops-backend/internal/domain"
)

const table = "suggestion_changes"

var columns = []string{
	"id", "suggestion_id", "entity_kind", "entity_id", "field_name",
	"old_value", "new_value", "change_kind", "created_at", "rolled_back", "rolled_back_at",
}

// Repo provides change log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new change log repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID           uuid.UUID  `db:"id"`
	SuggestionID uuid.UUID  `db:"suggestion_id"`
	EntityKind   string     `db:"entity_kind"`
	EntityID     string     `db:"entity_id"`
	FieldName    string     `db:"field_name"`
	OldValue     *string    `db:"old_value"`
	NewValue     *string    `db:"new_value"`
	ChangeKind   string     `db:"change_kind"`
	CreatedAt    time.Time  `db:"created_at"`
	RolledBack   bool       `db:"rolled_back"`
	RolledBackAt *time.Time `db:"rolled_back_at"`
}

func (r row) toDomain() domain.ChangeRecord {
	return domain.ChangeRecord{
		ID:           r.ID,
		SuggestionID: r.SuggestionID,
		EntityKind:   domain.EntityKind(r.EntityKind),
		EntityID:     r.EntityID,
		FieldName:    r.FieldName,
		OldValue:     r.OldValue,
		NewValue:     r.NewValue,
		ChangeKind:   domain.ChangeKind(r.ChangeKind),
		CreatedAt:    r.CreatedAt,
		RolledBack:   r.RolledBack,
		RolledBackAt: r.RolledBackAt,
	}
}

// Append inserts change records for one suggestion. Records without an ID or
// timestamp get fresh ones.
func (r *Repo) Append(ctx context.Context, suggestionID uuid.UUID, records []domain.ChangeRecord) ([]domain.ChangeRecord, error) {
	if len(records) == 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	insert := postgres.Builder().Insert(table).Columns(
		"id", "suggestion_id", "entity_kind", "entity_id", "field_name",
		"old_value", "new_value", "change_kind", "created_at",
	)
	for _, rec := range records {
		if !rec.ChangeKind.IsValid() {
			return nil, fmt.Errorf("suggestion_change %s: unknown change kind %q: %w", suggestionID, rec.ChangeKind, domain.ErrValidation)
		}
		id := rec.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		createdAt := rec.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		insert = insert.Values(
			id, suggestionID, string(rec.EntityKind), rec.EntityID, rec.FieldName,
			rec.OldValue, rec.NewValue, string(rec.ChangeKind), createdAt,
		)
	}

	sql, args, err := insert.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert suggestion_changes: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "suggestion_change", suggestionID)
	}

	return toDomainList(rows), nil
}

// ListBySuggestion returns the change records of a suggestion in the order
// they were written.
func (r *Repo) ListBySuggestion(ctx context.Context, suggestionID uuid.UUID) ([]domain.ChangeRecord, error) {
	sql, args, err := postgres.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"suggestion_id": suggestionID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list suggestion_changes: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list suggestion_changes %s: %w", suggestionID, err)
	}

	return toDomainList(rows), nil
}

// MarkRolledBack flips rolled_back on every live record of a suggestion and
// returns how many were flipped.
func (r *Repo) MarkRolledBack(ctx context.Context, suggestionID uuid.UUID, at time.Time) (int64, error) {
	sql, args, err := postgres.Builder().Update(table).
		Set("rolled_back", true).
		Set("rolled_back_at", at).
		Where(squirrel.Eq{"suggestion_id": suggestionID, "rolled_back": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build mark suggestion_changes rolled back: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "suggestion_change", suggestionID)
	}

	return tag.RowsAffected(), nil
}

func toDomainList(rows []row) []domain.ChangeRecord {
	out := make([]domain.ChangeRecord, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}
