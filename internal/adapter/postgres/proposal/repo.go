// Package proposal implements proposal reads and fee updates on PostgreSQL.
package proposal

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/studioops-backend/internal/adapter/postgres"
	"github.com/heartmarshall/studioops-backend/internal/domain"
)

const table = "proposals"

// fee is numeric; it travels as text to keep the exact decimal value.
var columns = []string{
	"id", "project_code", "client_name", "title", "fee::text AS fee", "created_at", "updated_at",
}

// Repo provides proposal persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new proposal repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID          uuid.UUID `db:"id"`
	ProjectCode string    `db:"project_code"`
	ClientName  string    `db:"client_name"`
	Title       string    `db:"title"`
	Fee         *string   `db:"fee"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r row) toDomain() (*domain.Proposal, error) {
	p := &domain.Proposal{
		ID:          r.ID,
		ProjectCode: r.ProjectCode,
		ClientName:  r.ClientName,
		Title:       r.Title,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Fee != nil {
		fee, err := decimal.NewFromString(*r.Fee)
		if err != nil {
			return nil, fmt.Errorf("proposal %s: parse fee %q: %w", r.ID, *r.Fee, err)
		}
		p.Fee = &fee
	}
	return p, nil
}

// GetByID returns a proposal by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, id)
}

// GetByCode returns a proposal by its project code.
func (r *Repo) GetByCode(ctx context.Context, code string) (*domain.Proposal, error) {
	return r.getOne(ctx, squirrel.Eq{"project_code": code}, code)
}

func (r *Repo) getOne(ctx context.Context, where squirrel.Sqlizer, key any) (*domain.Proposal, error) {
	sql, args, err := postgres.Builder().Select(columns...).From(table).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select proposal: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "proposal", key)
	}
	return out.toDomain()
}

// UpdateFee sets the fee and updated_at of a proposal. A nil fee clears it.
// updated_at is explicit so a rollback can put the previous value back.
func (r *Repo) UpdateFee(ctx context.Context, id uuid.UUID, fee *decimal.Decimal, updatedAt time.Time) error {
	var feeArg *string
	if fee != nil {
		s := fee.StringFixed(2)
		feeArg = &s
	}

	sql, args, err := postgres.Builder().Update(table).
		Set("fee", squirrel.Expr("?::numeric", feeArg)).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update proposal fee: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "proposal", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("proposal %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
