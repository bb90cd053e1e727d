package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

// decodePayload unmarshals raw into T. Unknown fields are tolerated since
// classifiers routinely attach extra context. A decode failure is reported
// as a validation message, never as an error.
func decodePayload[T any](raw json.RawMessage) (T, []string) {
	var out T
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return out, []string{"payload is required"}
	}
	if trimmed[0] != '{' {
		return out, []string{"payload must be a JSON object"}
	}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return out, []string{fmt.Sprintf("%s: expected %s", typeErr.Field, typeErr.Type)}
		}
		return out, []string{"invalid payload: " + err.Error()}
	}
	return out, nil
}

func encodeRollback(v any) (json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode rollback data: %w", err)
	}
	return b, nil
}

func decodeRollback[T any](data json.RawMessage) (T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode rollback data: %w", err)
	}
	return out, nil
}

func strPtr(s string) *string { return &s }

func uuidStr(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	return strPtr(id.String())
}

func dateStr(t time.Time) string { return t.Format(time.DateOnly) }

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func optional(s *string) *string {
	v := trimmed(s)
	if v == "" {
		return nil
	}
	return &v
}

func sameUUID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// recordsFor expands the fields a preview promised into change records, so
// apply and preview describe the same writes.
func recordsFor(kind domain.EntityKind, entityID string, change domain.ChangeKind, fields []domain.FieldChange) []domain.ChangeRecord {
	out := make([]domain.ChangeRecord, 0, len(fields))
	for _, f := range fields {
		out = append(out, domain.ChangeRecord{
			EntityKind: kind,
			EntityID:   entityID,
			FieldName:  f.Field,
			OldValue:   f.Old,
			NewValue:   f.New,
			ChangeKind: change,
		})
	}
	return out
}

func failed(msg string) *domain.ApplyResult {
	return &domain.ApplyResult{Success: false, Message: msg}
}

// lookupProblem turns a missing referenced row into a validation message and
// passes infrastructure errors through.
func lookupProblem(err error, what string, id fmt.Stringer) (string, error) {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Sprintf("%s not found: %s", what, id), nil
	}
	return "", fmt.Errorf("load %s: %w", what, err)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
