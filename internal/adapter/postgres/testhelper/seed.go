package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueCode returns a project code that will not collide with other tests.
func UniqueCode(prefix string) string {
	return prefix + "-" + uniqueSuffix()
}

// UniqueEmail returns an email address that will not collide with other tests.
func UniqueEmail(local string) string {
	return local + "+" + uniqueSuffix() + "@example.com"
}

// SeedProposal inserts a proposal. fee may be empty for an unpriced proposal.
func SeedProposal(t *testing.T, pool *pgxpool.Pool, code, fee string) domain.Proposal {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	p := domain.Proposal{
		ID:          uuid.New(),
		ProjectCode: code,
		ClientName:  "Acme " + uniqueSuffix(),
		Title:       "Brand refresh",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var feeArg *string
	if fee != "" {
		d := decimal.RequireFromString(fee)
		p.Fee = &d
		s := d.StringFixed(2)
		feeArg = &s
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO proposals (id, project_code, client_name, title, fee, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)`,
		p.ID, p.ProjectCode, p.ClientName, p.Title, feeArg, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProposal: %v", err)
	}
	return p
}

// SeedProject inserts a project.
func SeedProject(t *testing.T, pool *pgxpool.Pool, code string) domain.Project {
	t.Helper()

	p := domain.Project{
		ID:          uuid.New(),
		ProjectCode: code,
		Name:        "Project " + code,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO projects (id, project_code, name, created_at) VALUES ($1, $2, $3, $4)`,
		p.ID, p.ProjectCode, p.Name, p.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProject: %v", err)
	}
	return p
}

// SeedEmail inserts an email.
func SeedEmail(t *testing.T, pool *pgxpool.Pool) domain.Email {
	t.Helper()

	e := domain.Email{
		ID:         uuid.New(),
		Subject:    "Re: kickoff " + uniqueSuffix(),
		Sender:     "client@acme.com",
		Body:       "Looking forward to the kickoff next week.",
		ReceivedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO emails (id, subject, sender, body, received_at) VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.Subject, e.Sender, e.Body, e.ReceivedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEmail: %v", err)
	}
	return e
}

// SeedTranscript inserts an unlinked transcript.
func SeedTranscript(t *testing.T, pool *pgxpool.Pool) domain.Transcript {
	t.Helper()

	tr := domain.Transcript{
		ID:         uuid.New(),
		Title:      "Weekly sync " + uniqueSuffix(),
		Body:       "We agreed to move the deadline to next Friday.",
		RecordedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO transcripts (id, title, body, recorded_at) VALUES ($1, $2, $3, $4)`,
		tr.ID, tr.Title, tr.Body, tr.RecordedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTranscript: %v", err)
	}
	return tr
}

// SeedContact inserts a contact with the given email.
func SeedContact(t *testing.T, pool *pgxpool.Pool, email string) domain.Contact {
	t.Helper()

	c := domain.Contact{
		ID:        uuid.New(),
		Email:     email,
		Name:      "Existing Contact",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO contacts (id, email, name, created_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Email, c.Name, c.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedContact: %v", err)
	}
	return c
}

// SeedSuggestion inserts a pending suggestion with the given type and payload.
func SeedSuggestion(t *testing.T, pool *pgxpool.Pool, suggestionType, payload string) domain.Suggestion {
	t.Helper()

	s := domain.Suggestion{
		ID:           uuid.New(),
		Type:         suggestionType,
		Payload:      []byte(payload),
		Confidence:   0.9,
		Source:       domain.SourceReference{Kind: domain.SourceManual},
		Status:       domain.StatusPending,
		IsActionable: true,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO suggestions (id, suggestion_type, payload, confidence, source_kind, status, created_at)
		 VALUES ($1, $2, $3::jsonb, $4, $5, $6, $7)`,
		s.ID, s.Type, payload, s.Confidence, string(s.Source.Kind), string(s.Status), s.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSuggestion: %v", err)
	}
	return s
}

// CountRows returns the number of rows in table matching the where clause.
func CountRows(t *testing.T, pool *pgxpool.Pool, table, where string, args ...any) int {
	t.Helper()

	var n int
	query := "SELECT count(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	if err := pool.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		t.Fatalf("testhelper: CountRows %s: %v", table, err)
	}
	return n
}
