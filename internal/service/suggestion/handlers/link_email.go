package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

const TypeLinkEmail = "link-email"

type linkEmailPayload struct {
	EmailID    *uuid.UUID `json:"email_id"`
	ProposalID *uuid.UUID `json:"proposal_id"`
	ProjectID  *uuid.UUID `json:"project_id"`
}

type linkEmailRollback struct {
	Kind     domain.EntityKind `json:"kind"`
	LinkID   uuid.UUID         `json:"link_id"`
	EmailID  uuid.UUID         `json:"email_id"`
	TargetID uuid.UUID         `json:"target_id"`
}

// target picks the link table from whichever foreign key is present.
func (p linkEmailPayload) target() (domain.EntityKind, uuid.UUID) {
	if p.ProposalID != nil {
		return domain.EntityEmailProposalLink, *p.ProposalID
	}
	if p.ProjectID != nil {
		return domain.EntityEmailProjectLink, *p.ProjectID
	}
	return domain.EntityNone, uuid.Nil
}

// LinkEmail attaches an ingested email to a proposal or a project.
type LinkEmail struct {
	deps Deps
}

func NewLinkEmail(deps Deps) Handler { return &LinkEmail{deps: deps} }

func (h *LinkEmail) Type() string                    { return TypeLinkEmail }
func (h *LinkEmail) TargetEntity() domain.EntityKind { return domain.EntityEmailProposalLink }
func (h *LinkEmail) Actionable() bool                { return true }

func (h *LinkEmail) Validate(ctx context.Context, raw json.RawMessage) ([]string, error) {
	p, problems := decodePayload[linkEmailPayload](raw)
	if problems != nil {
		return problems, nil
	}

	if p.EmailID == nil {
		problems = append(problems, "email_id: required")
	}
	switch {
	case p.ProposalID != nil && p.ProjectID != nil:
		problems = append(problems, "provide either proposal_id or project_id, not both")
	case p.ProposalID == nil && p.ProjectID == nil:
		problems = append(problems, "proposal_id or project_id: required")
	}
	if len(problems) > 0 {
		return problems, nil
	}

	if _, err := h.deps.Emails.GetByID(ctx, *p.EmailID); err != nil {
		msg, err := lookupProblem(err, "email", p.EmailID)
		if err != nil {
			return nil, err
		}
		problems = append(problems, msg)
	}

	kind, targetID := p.target()
	if msg, err := h.checkTarget(ctx, kind, targetID); err != nil {
		return nil, err
	} else if msg != "" {
		problems = append(problems, msg)
	}
	if len(problems) > 0 {
		return problems, nil
	}

	exists, err := h.deps.EmailLinks.Exists(ctx, kind, *p.EmailID, targetID)
	if err != nil {
		return nil, fmt.Errorf("check email link: %w", err)
	}
	if exists {
		problems = append(problems, fmt.Sprintf("email %s is already linked to %s", p.EmailID, targetID))
	}
	return problems, nil
}

func (h *LinkEmail) checkTarget(ctx context.Context, kind domain.EntityKind, id uuid.UUID) (string, error) {
	var err error
	what := "proposal"
	if kind == domain.EntityEmailProjectLink {
		what = "project"
		_, err = h.deps.Projects.GetByID(ctx, id)
	} else {
		_, err = h.deps.Proposals.GetByID(ctx, id)
	}
	if err == nil {
		return "", nil
	}
	return lookupProblem(err, what, id)
}

func (h *LinkEmail) fields(p linkEmailPayload) (domain.EntityKind, []domain.FieldChange) {
	kind, targetID := p.target()
	targetField := "proposal_id"
	if kind == domain.EntityEmailProjectLink {
		targetField = "project_id"
	}
	return kind, []domain.FieldChange{
		{Field: "email_id", New: strPtr(p.EmailID.String())},
		{Field: targetField, New: strPtr(targetID.String())},
	}
}

func (h *LinkEmail) Preview(ctx context.Context, s domain.Suggestion, raw json.RawMessage) (*domain.ChangePreview, error) {
	p, problems := decodePayload[linkEmailPayload](raw)
	if problems != nil || p.EmailID == nil {
		return nil, fmt.Errorf("link-email preview: %w", domain.ErrValidation)
	}
	kind, fields := h.fields(p)
	if kind == domain.EntityNone {
		return nil, fmt.Errorf("link-email preview: %w", domain.ErrValidation)
	}

	subject := p.EmailID.String()
	if email, err := h.deps.Emails.GetByID(ctx, *p.EmailID); err == nil {
		subject = fmt.Sprintf("%q", email.Subject)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load email: %w", err)
	}

	return &domain.ChangePreview{
		Action:  domain.ActionInsert,
		Table:   kind.Table(),
		Summary: fmt.Sprintf("Link email %s to %s", subject, h.describeTarget(ctx, p)),
		Changes: fields,
	}, nil
}

func (h *LinkEmail) describeTarget(ctx context.Context, p linkEmailPayload) string {
	if p.ProposalID != nil {
		if prop, err := h.deps.Proposals.GetByID(ctx, *p.ProposalID); err == nil {
			return "proposal " + prop.ProjectCode
		}
		return "proposal " + p.ProposalID.String()
	}
	if proj, err := h.deps.Projects.GetByID(ctx, *p.ProjectID); err == nil {
		return "project " + proj.ProjectCode
	}
	return "project " + p.ProjectID.String()
}

func (h *LinkEmail) Apply(ctx context.Context, s domain.Suggestion, raw json.RawMessage) (*domain.ApplyResult, error) {
	p, problems := decodePayload[linkEmailPayload](raw)
	if problems != nil {
		return failed(domain.JoinMessages(problems)), nil
	}
	kind, fields := h.fields(p)
	if kind == domain.EntityNone || p.EmailID == nil {
		return failed("email_id and one of proposal_id or project_id are required"), nil
	}
	_, targetID := p.target()

	link, err := h.deps.EmailLinks.Create(ctx, domain.EmailLink{
		ID:        uuid.New(),
		Kind:      kind,
		EmailID:   *p.EmailID,
		TargetID:  targetID,
		CreatedAt: h.deps.now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return failed("email is already linked"), nil
		}
		if errors.Is(err, domain.ErrNotFound) {
			return failed("email or link target no longer exists"), nil
		}
		return nil, fmt.Errorf("create email link: %w", err)
	}

	data, err := encodeRollback(linkEmailRollback{
		Kind:     kind,
		LinkID:   link.ID,
		EmailID:  link.EmailID,
		TargetID: link.TargetID,
	})
	if err != nil {
		return nil, err
	}

	return &domain.ApplyResult{
		Success:      true,
		Message:      fmt.Sprintf("linked email to %s", kind.Table()),
		ChangesMade:  recordsFor(kind, link.ID.String(), domain.ChangeInsert, fields),
		RollbackData: data,
	}, nil
}

func (h *LinkEmail) Rollback(ctx context.Context, data json.RawMessage) (bool, error) {
	rb, err := decodeRollback[linkEmailRollback](data)
	if err != nil {
		return false, err
	}
	if err := h.deps.EmailLinks.Delete(ctx, rb.Kind, rb.LinkID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete email link: %w", err)
	}
	return true, nil
}
