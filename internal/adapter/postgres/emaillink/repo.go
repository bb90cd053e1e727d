// Package emaillink implements the email-to-proposal and email-to-project
// link tables on PostgreSQL.
package emaillink

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

// Repo provides email link persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new email link repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID        uuid.UUID `db:"id"`
	EmailID   uuid.UUID `db:"email_id"`
	TargetID  uuid.UUID `db:"target_id"`
	CreatedAt time.Time `db:"created_at"`
}

// tableFor maps a link kind to its table and target column.
func tableFor(kind domain.EntityKind) (string, string, error) {
	switch kind {
	case domain.EntityEmailProposalLink:
		return "email_proposal_links", "proposal_id", nil
	case domain.EntityEmailProjectLink:
		return "email_project_links", "project_id", nil
	}
	return "", "", fmt.Errorf("email link: unsupported kind %q: %w", kind, domain.ErrValidation)
}

// Exists reports whether the email is already linked to the target.
func (r *Repo) Exists(ctx context.Context, kind domain.EntityKind, emailID, targetID uuid.UUID) (bool, error) {
	table, target, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	sql, args, err := postgres.Builder().Select("1").From(table).
		Where(squirrel.Eq{"email_id": emailID, target: targetID}).
		Prefix("SELECT EXISTS(").Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build email link exists: %w", err)
	}

	var exists bool
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("email link exists: %w", err)
	}
	return exists, nil
}

// Create inserts a link row. A duplicate pair yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, link domain.EmailLink) (*domain.EmailLink, error) {
	table, target, err := tableFor(link.Kind)
	if err != nil {
		return nil, err
	}

	sql, args, err := postgres.Builder().Insert(table).
		Columns("id", "email_id", target, "created_at").
		Values(link.ID, link.EmailID, link.TargetID, link.CreatedAt).
		Suffix(fmt.Sprintf("RETURNING id, email_id, %s AS target_id, created_at", target)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert email link: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, string(link.Kind), link.ID)
	}

	return &domain.EmailLink{
		ID:        out.ID,
		Kind:      link.Kind,
		EmailID:   out.EmailID,
		TargetID:  out.TargetID,
		CreatedAt: out.CreatedAt,
	}, nil
}

// Delete removes a link row. Returns domain.ErrNotFound if it is already gone.
func (r *Repo) Delete(ctx context.Context, kind domain.EntityKind, id uuid.UUID) error {
	table, _, err := tableFor(kind)
	if err != nil {
		return err
	}

	sql, args, err := postgres.Builder().Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete email link: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, string(kind), id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	return nil
}
