// Package transcript implements transcript reads and link updates on PostgreSQL.
package transcript

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/studioops-backend/internal/adapter/postgres"
	"github.com/heartmarshall/studioops-backend/internal/domain"
)

// Repo provides transcript persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new transcript repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID         uuid.UUID  `db:"id"`
	Title      string     `db:"title"`
	Body       string     `db:"body"`
	ProposalID *uuid.UUID `db:"proposal_id"`
	ProjectID  *uuid.UUID `db:"project_id"`
	RecordedAt time.Time  `db:"recorded_at"`
}

// GetByID returns a transcript by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transcript, error) {
	sql, args, err := postgres.Builder().
		Select("id", "title", "body", "proposal_id", "project_id", "recorded_at").
		From("transcripts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select transcript: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "transcript", id)
	}

	return &domain.Transcript{
		ID:         out.ID,
		Title:      out.Title,
		Body:       out.Body,
		ProposalID: out.ProposalID,
		ProjectID:  out.ProjectID,
		RecordedAt: out.RecordedAt,
	}, nil
}

// SetLinks overwrites both foreign keys of a transcript.
func (r *Repo) SetLinks(ctx context.Context, id uuid.UUID, proposalID, projectID *uuid.UUID) error {
	sql, args, err := postgres.Builder().Update("transcripts").
		Set("proposal_id", proposalID).
		Set("project_id", projectID).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update transcript links: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "transcript", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transcript %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
