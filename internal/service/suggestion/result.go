package suggestion

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

// SuggestionView is a suggestion as shown to reviewers.
type SuggestionView struct {
	domain.Suggestion
	LowConfidence bool
	HasHandler    bool
}

// ListResult is one page of suggestions.
type ListResult struct {
	Items []SuggestionView
	Total int
}

// Group collects the suggestions for one target code. An empty TargetCode
// holds suggestions without one.
type Group struct {
	TargetCode  string
	Suggestions []SuggestionView
}

// PreviewResult is either a handler preview or an explicit refusal to
// preview, in which case Previewable is false and Summary says why.
type PreviewResult struct {
	SuggestionID uuid.UUID
	Type         string
	Status       domain.SuggestionStatus
	IsActionable bool
	Previewable  bool
	Action       domain.PreviewAction
	Table        string
	Summary      string
	Changes      []domain.FieldChange
	Errors       []string
}

// SourceResult is the artifact a suggestion was derived from. Available is
// false when the suggestion has no source or it no longer exists.
type SourceResult struct {
	SuggestionID uuid.UUID
	Kind         domain.SourceKind
	SourceID     *uuid.UUID
	Available    bool
	Message      string
	Email        *domain.Email
	Transcript   *domain.Transcript
}

// TypesResult lists the suggestion types the engine can apply.
type TypesResult struct {
	Registered []string
	Actionable []string
}
