package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/studioops-backend/internal/domain"
	"github.com/heartmarshall/studioops-backend/internal/service/suggestion/normalize"
)

const TypeDeadlineDetected = "deadline-detected"

type deadlinePayload struct {
	DeadlineText string     `json:"deadline_text"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	Priority     string     `json:"priority"`
	ProposalID   *uuid.UUID `json:"proposal_id"`
	ProjectID    *uuid.UUID `json:"project_id"`
}

// DeadlineDetected turns a deadline phrase found in correspondence into a
// task. Phrases the parser cannot read fall back to
// Settings.DeadlineFallbackDays from now.
type DeadlineDetected struct {
	deps Deps
}

func NewDeadlineDetected(deps Deps) Handler { return &DeadlineDetected{deps: deps} }

func (h *DeadlineDetected) Type() string                    { return TypeDeadlineDetected }
func (h *DeadlineDetected) TargetEntity() domain.EntityKind { return domain.EntityTask }
func (h *DeadlineDetected) Actionable() bool                { return true }

func (h *DeadlineDetected) Validate(ctx context.Context, raw json.RawMessage) ([]string, error) {
	p, problems := decodePayload[deadlinePayload](raw)
	if problems != nil {
		return problems, nil
	}

	if strings.TrimSpace(p.DeadlineText) == "" {
		problems = append(problems, "deadline_text: required")
	}
	if utf8.RuneCountInString(strings.TrimSpace(p.Title)) > maxTaskTitle {
		problems = append(problems, fmt.Sprintf("title: max %d characters", maxTaskTitle))
	}
	if _, ok := parsePriority(p.Priority, domain.PriorityHigh); !ok {
		problems = append(problems, fmt.Sprintf("priority: unknown value %q", p.Priority))
	}

	refs, err := validateRefs(ctx, h.deps, p.ProposalID, p.ProjectID)
	if err != nil {
		return nil, err
	}
	return append(problems, refs...), nil
}

func (h *DeadlineDetected) build(s domain.Suggestion, p deadlinePayload) (domain.Task, bool) {
	now := h.deps.now()
	phrase := strings.TrimSpace(p.DeadlineText)
	due, parsed := normalize.Resolve(h.deps.deadline(), phrase, now, h.deps.fallbackDays())

	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = "Deadline: " + phrase
		if s.TargetCode != nil {
			title = fmt.Sprintf("Deadline (%s): %s", *s.TargetCode, phrase)
		}
		title = truncate(title, maxTaskTitle)
	}
	priority, _ := parsePriority(p.Priority, domain.PriorityHigh)
	return newTask(s, title, p.Description, due, priority, p.ProposalID, p.ProjectID, now), parsed
}

func (h *DeadlineDetected) Preview(_ context.Context, s domain.Suggestion, raw json.RawMessage) (*domain.ChangePreview, error) {
	p, problems := decodePayload[deadlinePayload](raw)
	if problems != nil {
		return nil, fmt.Errorf("deadline-detected preview: %w", domain.ErrValidation)
	}
	t, parsed := h.build(s, p)
	summary := fmt.Sprintf("Create deadline task %q due %s", t.Title, dateStr(t.DueDate))
	if !parsed {
		summary += fmt.Sprintf(" (could not read %q, using default)", strings.TrimSpace(p.DeadlineText))
	}
	return taskPreview(t, summary), nil
}

func (h *DeadlineDetected) Apply(ctx context.Context, s domain.Suggestion, raw json.RawMessage) (*domain.ApplyResult, error) {
	p, problems := decodePayload[deadlinePayload](raw)
	if problems != nil {
		return failed(domain.JoinMessages(problems)), nil
	}
	if strings.TrimSpace(p.DeadlineText) == "" {
		return failed("deadline_text: required"), nil
	}
	if _, ok := parsePriority(p.Priority, domain.PriorityHigh); !ok {
		return failed(fmt.Sprintf("priority: unknown value %q", p.Priority)), nil
	}

	t, parsed := h.build(s, p)
	if !parsed {
		h.deps.logger().WarnContext(ctx, "deadline phrase not recognised, using fallback",
			"suggestion_id", s.ID.String(),
			"deadline_text", p.DeadlineText,
			"due_date", dateStr(t.DueDate),
		)
	}
	return applyTask(ctx, h.deps, t, fmt.Sprintf("created deadline task due %s", dateStr(t.DueDate)))
}

func (h *DeadlineDetected) Rollback(ctx context.Context, data json.RawMessage) (bool, error) {
	return rollbackTask(ctx, h.deps, data)
}
