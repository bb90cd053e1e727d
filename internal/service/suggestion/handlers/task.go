package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

// Title and name limits count characters, not bytes.
const (
	maxTaskTitle   = 200
	maxContactName = 200
)

type taskRollback struct {
	TaskID uuid.UUID `json:"task_id"`
}

// taskFields lists the columns an inserted task sets. Preview and apply of
// every task-creating handler go through here.
func taskFields(t domain.Task) []domain.FieldChange {
	fields := []domain.FieldChange{
		{Field: "title", New: strPtr(t.Title)},
	}
	if t.Description != nil {
		fields = append(fields, domain.FieldChange{Field: "description", New: strPtr(*t.Description)})
	}
	fields = append(fields,
		domain.FieldChange{Field: "due_date", New: strPtr(dateStr(t.DueDate))},
		domain.FieldChange{Field: "priority", New: strPtr(string(t.Priority))},
	)
	if t.ProposalID != nil {
		fields = append(fields, domain.FieldChange{Field: "proposal_id", New: uuidStr(t.ProposalID)})
	}
	if t.ProjectID != nil {
		fields = append(fields, domain.FieldChange{Field: "project_id", New: uuidStr(t.ProjectID)})
	}
	return fields
}

func taskPreview(t domain.Task, summary string) *domain.ChangePreview {
	return &domain.ChangePreview{
		Action:  domain.ActionInsert,
		Table:   domain.EntityTask.Table(),
		Summary: summary,
		Changes: taskFields(t),
	}
}

func validateRefs(ctx context.Context, deps Deps, proposalID, projectID *uuid.UUID) ([]string, error) {
	var problems []string
	if proposalID != nil {
		if _, err := deps.Proposals.GetByID(ctx, *proposalID); err != nil {
			msg, err := lookupProblem(err, "proposal", proposalID)
			if err != nil {
				return nil, err
			}
			problems = append(problems, msg)
		}
	}
	if projectID != nil {
		if _, err := deps.Projects.GetByID(ctx, *projectID); err != nil {
			msg, err := lookupProblem(err, "project", projectID)
			if err != nil {
				return nil, err
			}
			problems = append(problems, msg)
		}
	}
	return problems, nil
}

func validateTitle(title string) []string {
	title = strings.TrimSpace(title)
	if title == "" {
		return []string{"title: required"}
	}
	if utf8.RuneCountInString(title) > maxTaskTitle {
		return []string{fmt.Sprintf("title: max %d characters", maxTaskTitle)}
	}
	return nil
}

// truncate cuts s to at most n characters without splitting a rune.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func parsePriority(raw string, def domain.TaskPriority) (domain.TaskPriority, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	switch raw {
	case "":
		return def, true
	case "urgent", "critical":
		return domain.PriorityHigh, true
	case "medium":
		return domain.PriorityNormal, true
	}
	p := domain.TaskPriority(raw)
	return p, p.IsValid()
}

func applyTask(ctx context.Context, deps Deps, t domain.Task, message string) (*domain.ApplyResult, error) {
	created, err := deps.Tasks.Create(ctx, t)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return failed("task references a proposal or project that no longer exists"), nil
		}
		return nil, fmt.Errorf("create task: %w", err)
	}

	data, err := encodeRollback(taskRollback{TaskID: created.ID})
	if err != nil {
		return nil, err
	}

	return &domain.ApplyResult{
		Success:      true,
		Message:      message,
		ChangesMade:  recordsFor(domain.EntityTask, created.ID.String(), domain.ChangeInsert, taskFields(t)),
		RollbackData: data,
	}, nil
}

func rollbackTask(ctx context.Context, deps Deps, data json.RawMessage) (bool, error) {
	rb, err := decodeRollback[taskRollback](data)
	if err != nil {
		return false, err
	}
	if err := deps.Tasks.Delete(ctx, rb.TaskID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete task: %w", err)
	}
	return true, nil
}

func newTask(s domain.Suggestion, title string, description *string, due time.Time, priority domain.TaskPriority, proposalID, projectID *uuid.UUID, createdAt time.Time) domain.Task {
	id := s.ID
	return domain.Task{
		ID:                 uuid.New(),
		Title:              strings.TrimSpace(title),
		Description:        optional(description),
		DueDate:            due,
		Priority:           priority,
		ProposalID:         proposalID,
		ProjectID:          projectID,
		SourceSuggestionID: &id,
		CreatedAt:          createdAt,
	}
}
