// Package email implements reads of ingested emails on PostgreSQL.
package email

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

// Repo provides email reads backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new email repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID         uuid.UUID `db:"id"`
	Subject    string    `db:"subject"`
	Sender     string    `db:"sender"`
	Body       string    `db:"body"`
	ReceivedAt time.Time `db:"received_at"`
}

// GetByID returns an email by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Email, error) {
	sql, args, err := postgres.Builder().
		Select("id", "subject", "sender", "body", "received_at").
		From("emails").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select email: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "email", id)
	}

	return &domain.Email{
		ID:         out.ID,
		Subject:    out.Subject,
		Sender:     out.Sender,
		Body:       out.Body,
		ReceivedAt: out.ReceivedAt,
	}, nil
}
