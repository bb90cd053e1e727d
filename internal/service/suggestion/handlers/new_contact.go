package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

const TypeNewContact = "new-contact"

type newContactPayload struct {
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Company *string `json:"company"`
	Phone   *string `json:"phone"`
}

type newContactRollback struct {
	ContactID uuid.UUID `json:"contact_id"`
	Email     string    `json:"email"`
}

// NewContact adds a person to the contact book. Emails are stored lowercase
// and must be unique.
type NewContact struct {
	deps Deps
}

func NewNewContact(deps Deps) Handler { return &NewContact{deps: deps} }

func (h *NewContact) Type() string                    { return TypeNewContact }
func (h *NewContact) TargetEntity() domain.EntityKind { return domain.EntityContact }
func (h *NewContact) Actionable() bool                { return true }

func normalizeEmail(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", false
	}
	at := strings.LastIndex(addr.Address, "@")
	if at < 1 || !strings.Contains(addr.Address[at+1:], ".") {
		return "", false
	}
	return strings.ToLower(addr.Address), true
}

func (h *NewContact) Validate(ctx context.Context, raw json.RawMessage) ([]string, error) {
	p, problems := decodePayload[newContactPayload](raw)
	if problems != nil {
		return problems, nil
	}

	if strings.TrimSpace(p.Email) == "" {
		return []string{"email: required"}, nil
	}
	email, ok := normalizeEmail(p.Email)
	if !ok {
		return []string{fmt.Sprintf("invalid email address: %s", strings.TrimSpace(p.Email))}, nil
	}

	exists, err := h.deps.Contacts.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check contact email: %w", err)
	}
	if exists {
		problems = append(problems, "Email already exists: "+email)
	}
	if utf8.RuneCountInString(strings.TrimSpace(p.Name)) > maxContactName {
		problems = append(problems, fmt.Sprintf("name: max %d characters", maxContactName))
	}
	return problems, nil
}

func (h *NewContact) build(s domain.Suggestion, p newContactPayload) (domain.Contact, bool) {
	email, ok := normalizeEmail(p.Email)
	if !ok {
		return domain.Contact{}, false
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = email[:strings.LastIndex(email, "@")]
	}
	id := s.ID
	return domain.Contact{
		ID:                 uuid.New(),
		Email:              email,
		Name:               name,
		Company:            optional(p.Company),
		Phone:              optional(p.Phone),
		SourceSuggestionID: &id,
		CreatedAt:          h.deps.now(),
	}, true
}

func contactFields(c domain.Contact) []domain.FieldChange {
	fields := []domain.FieldChange{
		{Field: "email", New: strPtr(c.Email)},
		{Field: "name", New: strPtr(c.Name)},
	}
	if c.Company != nil {
		fields = append(fields, domain.FieldChange{Field: "company", New: strPtr(*c.Company)})
	}
	if c.Phone != nil {
		fields = append(fields, domain.FieldChange{Field: "phone", New: strPtr(*c.Phone)})
	}
	return fields
}

func (h *NewContact) Preview(_ context.Context, s domain.Suggestion, raw json.RawMessage) (*domain.ChangePreview, error) {
	p, problems := decodePayload[newContactPayload](raw)
	if problems != nil {
		return nil, fmt.Errorf("new-contact preview: %w", domain.ErrValidation)
	}
	c, ok := h.build(s, p)
	if !ok {
		return nil, fmt.Errorf("new-contact preview: %w", domain.ErrValidation)
	}
	return &domain.ChangePreview{
		Action:  domain.ActionInsert,
		Table:   domain.EntityContact.Table(),
		Summary: fmt.Sprintf("Add contact %s <%s>", c.Name, c.Email),
		Changes: contactFields(c),
	}, nil
}

func (h *NewContact) Apply(ctx context.Context, s domain.Suggestion, raw json.RawMessage) (*domain.ApplyResult, error) {
	p, problems := decodePayload[newContactPayload](raw)
	if problems != nil {
		return failed(domain.JoinMessages(problems)), nil
	}
	c, ok := h.build(s, p)
	if !ok {
		return failed(fmt.Sprintf("invalid email address: %s", strings.TrimSpace(p.Email))), nil
	}

	created, err := h.deps.Contacts.Create(ctx, c)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return failed("Email already exists: " + c.Email), nil
		}
		return nil, fmt.Errorf("create contact: %w", err)
	}

	data, err := encodeRollback(newContactRollback{ContactID: created.ID, Email: created.Email})
	if err != nil {
		return nil, err
	}

	return &domain.ApplyResult{
		Success:      true,
		Message:      "added contact " + created.Email,
		ChangesMade:  recordsFor(domain.EntityContact, created.ID.String(), domain.ChangeInsert, contactFields(c)),
		RollbackData: data,
	}, nil
}

// Rollback removes the contact only while it still carries the email apply
// stored.
func (h *NewContact) Rollback(ctx context.Context, data json.RawMessage) (bool, error) {
	rb, err := decodeRollback[newContactRollback](data)
	if err != nil {
		return false, err
	}

	c, err := h.deps.Contacts.GetByID(ctx, rb.ContactID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load contact: %w", err)
	}
	if !strings.EqualFold(c.Email, rb.Email) {
		return false, nil
	}

	if err := h.deps.Contacts.Delete(ctx, rb.ContactID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete contact: %w", err)
	}
	return true, nil
}
