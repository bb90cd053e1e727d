package suggestion

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

// Get returns one suggestion.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*SuggestionView, error) {
	sg, err := s.suggestions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get suggestion: %w", err)
	}
	v := s.view(*sg)
	return &v, nil
}

// List returns a page of suggestions, newest first.
func (s *Service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	items, total, err := s.suggestions.List(ctx, domain.SuggestionFilter{
		Status:     input.Status,
		Type:       input.Type,
		TargetCode: input.TargetCode,
		Limit:      limit,
		Offset:     input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}

	out := &ListResult{Items: make([]SuggestionView, 0, len(items)), Total: total}
	for _, sg := range items {
		out.Items = append(out.Items, s.view(sg))
	}
	return out, nil
}

// Grouped returns the suggestions in status grouped by target code. Groups
// follow target code order; suggestions without a code come last.
func (s *Service) Grouped(ctx context.Context, status domain.SuggestionStatus) ([]Group, error) {
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", "unknown status")
	}

	items, err := s.suggestions.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list suggestions by status: %w", err)
	}

	groups := make([]Group, 0)
	index := make(map[string]int)
	for _, sg := range items {
		code := ""
		if sg.TargetCode != nil {
			code = *sg.TargetCode
		}
		i, ok := index[code]
		if !ok {
			i = len(groups)
			index[code] = i
			groups = append(groups, Group{TargetCode: code})
		}
		groups[i].Suggestions = append(groups[i].Suggestions, s.view(sg))
	}
	return groups, nil
}

// Changes returns the change records a suggestion produced.
func (s *Service) Changes(ctx context.Context, id uuid.UUID) ([]domain.ChangeRecord, error) {
	if _, err := s.suggestions.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("get suggestion: %w", err)
	}
	records, err := s.changes.ListBySuggestion(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list change records: %w", err)
	}
	return records, nil
}

// Types lists the registered and actionable suggestion types.
func (s *Service) Types() TypesResult {
	return TypesResult{
		Registered: s.registry.RegisteredTypes(),
		Actionable: s.registry.ActionableTypes(),
	}
}
