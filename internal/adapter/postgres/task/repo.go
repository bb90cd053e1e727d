// Package task implements task persistence on PostgreSQL.
package task

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

const table = "tasks"

var columns = []string{
	"id", "title", "description", "due_date", "priority", "status",
	"proposal_id", "project_id", "source_suggestion_id", "created_at",
}

// Repo provides task persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new task repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID                 uuid.UUID  `db:"id"`
	Title              string     `db:"title"`
	Description        *string    `db:"description"`
	DueDate            time.Time  `db:"due_date"`
	Priority           string     `db:"priority"`
	Status             string     `db:"status"`
	ProposalID         *uuid.UUID `db:"proposal_id"`
	ProjectID          *uuid.UUID `db:"project_id"`
	SourceSuggestionID *uuid.UUID `db:"source_suggestion_id"`
	CreatedAt          time.Time  `db:"created_at"`
}

func (r row) toDomain() *domain.Task {
	return &domain.Task{
		ID:                 r.ID,
		Title:              r.Title,
		Description:        r.Description,
		DueDate:            r.DueDate,
		Priority:           domain.TaskPriority(r.Priority),
		Status:             r.Status,
		ProposalID:         r.ProposalID,
		ProjectID:          r.ProjectID,
		SourceSuggestionID: r.SourceSuggestionID,
		CreatedAt:          r.CreatedAt,
	}
}

// GetByID returns a task by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	sql, args, err := postgres.Builder().Select(columns...).From(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select task: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "task", id)
	}
	return out.toDomain(), nil
}

// Create inserts a task and returns it as stored.
func (r *Repo) Create(ctx context.Context, t domain.Task) (*domain.Task, error) {
	status := t.Status
	if status == "" {
		status = "open"
	}

	sql, args, err := postgres.Builder().Insert(table).
		Columns("id", "title", "description", "due_date", "priority", "status",
			"proposal_id", "project_id", "source_suggestion_id", "created_at").
		Values(t.ID, t.Title, t.Description, t.DueDate, string(t.Priority), status,
			t.ProposalID, t.ProjectID, t.SourceSuggestionID, t.CreatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert task: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "task", t.ID)
	}
	return out.toDomain(), nil
}

// Delete removes a task. Returns domain.ErrNotFound if it is already gone.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Builder().Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete task: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "task", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
