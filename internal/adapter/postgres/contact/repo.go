// Package contact implements contact persistence on PostgreSQL.
package contact

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

const table = "contacts"

var columns = []string{"id", "email", "name", "company", "phone", "source_suggestion_id", "created_at"}

// Repo provides contact persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new contact repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID                 uuid.UUID  `db:"id"`
	Email              string     `db:"email"`
	Name               string     `db:"name"`
	Company            *string    `db:"company"`
	Phone              *string    `db:"phone"`
	SourceSuggestionID *uuid.UUID `db:"source_suggestion_id"`
	CreatedAt          time.Time  `db:"created_at"`
}

func (r row) toDomain() *domain.Contact {
	return &domain.Contact{
		ID:                 r.ID,
		Email:              r.Email,
		Name:               r.Name,
		Company:            r.Company,
		Phone:              r.Phone,
		SourceSuggestionID: r.SourceSuggestionID,
		CreatedAt:          r.CreatedAt,
	}
}

// GetByID returns a contact by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	sql, args, err := postgres.Builder().Select(columns...).From(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select contact: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "contact", id)
	}
	return out.toDomain(), nil
}

// ExistsByEmail reports whether a contact with email exists, ignoring case.
func (r *Repo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM contacts WHERE lower(email) = $1)`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("contact exists by email: %w", err)
	}
	return exists, nil
}

// Create inserts a contact and returns it as stored.
func (r *Repo) Create(ctx context.Context, c domain.Contact) (*domain.Contact, error) {
	sql, args, err := postgres.Builder().Insert(table).
		Columns("id", "email", "name", "company", "phone", "source_suggestion_id", "created_at").
		Values(c.ID, c.Email, c.Name, c.Company, c.Phone, c.SourceSuggestionID, c.CreatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert contact: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "contact", c.Email)
	}
	return out.toDomain(), nil
}

// Delete removes a contact. Returns domain.ErrNotFound if it is already gone.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Builder().Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete contact: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "contact", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contact %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
