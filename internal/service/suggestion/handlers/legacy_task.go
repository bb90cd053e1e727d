package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

const LegacyTaskTable = "tasks"

// legacyTaskPayload accepts the loose key spellings older classifiers used.
type legacyTaskPayload struct {
	Title       string  `json:"title"`
	Subject     string  `json:"subject"`
	Summary     string  `json:"summary"`
	Description *string `json:"description"`
	Body        *string `json:"body"`
	Notes       *string `json:"notes"`
	DueDate     string  `json:"due_date"`
	Due         string  `json:"due"`
	Deadline    string  `json:"deadline"`
	Priority    string  `json:"priority"`
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func (p legacyTaskPayload) title() string { return firstNonEmpty(p.Title, p.Subject, p.Summary) }

func (p legacyTaskPayload) description() *string {
	for _, d := range []*string{p.Description, p.Body, p.Notes} {
		if v := optional(d); v != nil {
			return v
		}
	}
	return nil
}

func (p legacyTaskPayload) due() string { return firstNonEmpty(p.DueDate, p.Due, p.Deadline) }

// LegacyTask applies suggestions of retired types whose target table hint is
// "tasks" by inserting a task from whatever fields they carry.
type LegacyTask struct {
	deps Deps
}

func NewLegacyTask(deps Deps) Handler { return &LegacyTask{deps: deps} }

func (h *LegacyTask) Type() string                    { return "legacy:" + LegacyTaskTable }
func (h *LegacyTask) TargetEntity() domain.EntityKind { return domain.EntityTask }
func (h *LegacyTask) Actionable() bool                { return true }

func (h *LegacyTask) Validate(_ context.Context, raw json.RawMessage) ([]string, error) {
	p, problems := decodePayload[legacyTaskPayload](raw)
	if problems != nil {
		return problems, nil
	}
	if p.title() == "" {
		return []string{"title: required (title, subject or summary)"}, nil
	}
	problems = validateTitle(p.title())
	if _, ok := parsePriority(p.Priority, domain.PriorityNormal); !ok {
		problems = append(problems, fmt.Sprintf("priority: unknown value %q", p.Priority))
	}
	return problems, nil
}

func (h *LegacyTask) build(s domain.Suggestion, p legacyTaskPayload) domain.Task {
	now := h.deps.now()
	due := midnight(now).AddDate(0, 0, h.deps.followUpDays())
	if phrase := p.due(); phrase != "" {
		if parsed, ok := h.deps.deadline()(phrase, now); ok {
			due = parsed
		}
	}
	priority, _ := parsePriority(p.Priority, domain.PriorityNormal)
	return newTask(s, p.title(), p.description(), due, priority, nil, nil, now)
}

func (h *LegacyTask) Preview(_ context.Context, s domain.Suggestion, raw json.RawMessage) (*domain.ChangePreview, error) {
	p, problems := decodePayload[legacyTaskPayload](raw)
	if problems != nil {
		return nil, fmt.Errorf("legacy task preview: %w", domain.ErrValidation)
	}
	t := h.build(s, p)
	return taskPreview(t, fmt.Sprintf("Create task %q due %s (legacy %s)", t.Title, dateStr(t.DueDate), s.Type)), nil
}

func (h *LegacyTask) Apply(ctx context.Context, s domain.Suggestion, raw json.RawMessage) (*domain.ApplyResult, error) {
	p, problems := decodePayload[legacyTaskPayload](raw)
	if problems != nil {
		return failed(domain.JoinMessages(problems)), nil
	}
	if msgs := validateTitle(p.title()); msgs != nil {
		return failed(domain.JoinMessages(msgs)), nil
	}
	t := h.build(s, p)
	return applyTask(ctx, h.deps, t, fmt.Sprintf("created task from legacy %s suggestion", s.Type))
}

func (h *LegacyTask) Rollback(ctx context.Context, data json.RawMessage) (bool, error) {
	return rollbackTask(ctx, h.deps, data)
}
