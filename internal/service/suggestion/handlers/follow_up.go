package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

const TypeCreateFollowUp = "create-follow-up"

type followUpPayload struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *string    `json:"due_date"`
	Priority    string     `json:"priority"`
	ProposalID  *uuid.UUID `json:"proposal_id"`
	ProjectID   *uuid.UUID `json:"project_id"`
}

// CreateFollowUp inserts a task. Without a due date the task is due
// Settings.FollowUpDefaultDays from now.
type CreateFollowUp struct {
	deps Deps
}

func NewCreateFollowUp(deps Deps) Handler { return &CreateFollowUp{deps: deps} }

func (h *CreateFollowUp) Type() string                    { return TypeCreateFollowUp }
func (h *CreateFollowUp) TargetEntity() domain.EntityKind { return domain.EntityTask }
func (h *CreateFollowUp) Actionable() bool                { return true }

func (h *CreateFollowUp) Validate(ctx context.Context, raw json.RawMessage) ([]string, error) {
	p, problems := decodePayload[followUpPayload](raw)
	if problems != nil {
		return problems, nil
	}

	problems = append(problems, validateTitle(p.Title)...)
	if _, ok := parsePriority(p.Priority, domain.PriorityNormal); !ok {
		problems = append(problems, fmt.Sprintf("priority: unknown value %q", p.Priority))
	}
	if due := trimmed(p.DueDate); due != "" {
		if _, ok := h.deps.deadline()(due, h.deps.now()); !ok {
			problems = append(problems, fmt.Sprintf("due_date: unrecognised date %q", due))
		}
	}

	refs, err := validateRefs(ctx, h.deps, p.ProposalID, p.ProjectID)
	if err != nil {
		return nil, err
	}
	return append(problems, refs...), nil
}

func (h *CreateFollowUp) build(s domain.Suggestion, p followUpPayload) (domain.Task, error) {
	now := h.deps.now()
	due := midnight(now).AddDate(0, 0, h.deps.followUpDays())
	if phrase := trimmed(p.DueDate); phrase != "" {
		parsed, ok := h.deps.deadline()(phrase, now)
		if !ok {
			return domain.Task{}, fmt.Errorf("due_date %q: %w", phrase, domain.ErrValidation)
		}
		due = parsed
	}
	priority, ok := parsePriority(p.Priority, domain.PriorityNormal)
	if !ok {
		return domain.Task{}, fmt.Errorf("priority %q: %w", p.Priority, domain.ErrValidation)
	}
	return newTask(s, p.Title, p.Description, due, priority, p.ProposalID, p.ProjectID, now), nil
}

func (h *CreateFollowUp) Preview(_ context.Context, s domain.Suggestion, raw json.RawMessage) (*domain.ChangePreview, error) {
	p, problems := decodePayload[followUpPayload](raw)
	if problems != nil {
		return nil, fmt.Errorf("create-follow-up preview: %w", domain.ErrValidation)
	}
	t, err := h.build(s, p)
	if err != nil {
		return nil, err
	}
	return taskPreview(t, fmt.Sprintf("Create follow-up %q due %s", t.Title, dateStr(t.DueDate))), nil
}

func (h *CreateFollowUp) Apply(ctx context.Context, s domain.Suggestion, raw json.RawMessage) (*domain.ApplyResult, error) {
	p, problems := decodePayload[followUpPayload](raw)
	if problems != nil {
		return failed(domain.JoinMessages(problems)), nil
	}
	if msgs := validateTitle(p.Title); msgs != nil {
		return failed(domain.JoinMessages(msgs)), nil
	}
	t, err := h.build(s, p)
	if err != nil {
		return failed(err.Error()), nil
	}
	return applyTask(ctx, h.deps, t, fmt.Sprintf("created follow-up due %s", dateStr(t.DueDate)))
}

func (h *CreateFollowUp) Rollback(ctx context.Context, data json.RawMessage) (bool, error) {
	return rollbackTask(ctx, h.deps, data)
}
