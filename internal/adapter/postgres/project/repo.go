// Package project implements project reads on PostgreSQL.
package project

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

var columns = []string{"id", "project_code", "name", "proposal_id", "created_at"}

// Repo provides project reads backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new project repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID          uuid.UUID  `db:"id"`
	ProjectCode string     `db:"project_code"`
	Name        string     `db:"name"`
	ProposalID  *uuid.UUID `db:"proposal_id"`
	CreatedAt   time.Time  `db:"created_at"`
}

// GetByID returns a project by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, id)
}

// GetByCode returns a project by its project code.
func (r *Repo) GetByCode(ctx context.Context, code string) (*domain.Project, error) {
	return r.getOne(ctx, squirrel.Eq{"project_code": code}, code)
}

func (r *Repo) getOne(ctx context.Context, where squirrel.Sqlizer, key any) (*domain.Project, error) {
	sql, args, err := postgres.Builder().Select(columns...).From("projects").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select project: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "project", key)
	}

	return &domain.Project{
		ID:          out.ID,
		ProjectCode: out.ProjectCode,
		Name:        out.Name,
		ProposalID:  out.ProposalID,
		CreatedAt:   out.CreatedAt,
	}, nil
}
