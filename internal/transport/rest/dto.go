package rest

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studioops-backend/internal/domain"
	"github.com/heartmarshall/studioops-backend/internal/service/suggestion"
)

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

type sourceRequest struct {
	Kind string     `json:"kind"`
	ID   *uuid.UUID `json:"id"`
}

type newSuggestionRequest struct {
	Type        string          `json:"suggestion_type"`
	Payload     json.RawMessage `json:"payload"`
	Confidence  float64         `json:"confidence"`
	Source      *sourceRequest  `json:"source_reference"`
	TargetCode  *string         `json:"target_code"`
	TargetTable *string         `json:"target_table"`
}

type ingestRequest struct {
	Suggestions []newSuggestionRequest `json:"suggestions"`
}

func (req ingestRequest) toInput() suggestion.IngestInput {
	out := suggestion.IngestInput{Suggestions: make([]suggestion.NewSuggestion, 0, len(req.Suggestions))}
	for _, s := range req.Suggestions {
		ns := suggestion.NewSuggestion{
			Type:        s.Type,
			Payload:     s.Payload,
			Confidence:  s.Confidence,
			TargetCode:  s.TargetCode,
			TargetTable: s.TargetTable,
		}
		if s.Source != nil {
			ns.Source = domain.SourceReference{Kind: domain.SourceKind(s.Source.Kind), ID: s.Source.ID}
		}
		out.Suggestions = append(out.Suggestions, ns)
	}
	return out
}

type decideRequest struct {
	Decision      string          `json:"decision"`
	EditedPayload json.RawMessage `json:"edited_payload"`
	Reason        *string         `json:"reason"`
}

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

type suggestionResponse struct {
	ID               uuid.UUID       `json:"id"`
	Type             string          `json:"suggestion_type"`
	Payload          json.RawMessage `json:"payload"`
	Confidence       float64         `json:"confidence"`
	LowConfidence    bool            `json:"low_confidence"`
	Source           sourceRequest   `json:"source_reference"`
	TargetCode       *string         `json:"target_code"`
	TargetTable      *string         `json:"target_table,omitempty"`
	Status           string          `json:"status"`
	IsActionable     bool            `json:"is_actionable"`
	HasHandler       bool            `json:"has_handler"`
	HasRollbackData  bool            `json:"has_rollback_data"`
	CorrectedPayload json.RawMessage `json:"corrected_payload,omitempty"`
	RejectionReason  *string         `json:"rejection_reason,omitempty"`
	DecidedBy        *uuid.UUID      `json:"decided_by,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	DecidedAt        *time.Time      `json:"decided_at,omitempty"`
	RolledBackAt     *time.Time      `json:"rolled_back_at,omitempty"`
	RolledBackBy     *uuid.UUID      `json:"rolled_back_by,omitempty"`
}

func toSuggestionResponse(v suggestion.SuggestionView) suggestionResponse {
	return suggestionResponse{
		ID:               v.ID,
		Type:             v.Type,
		Payload:          v.Payload,
		Confidence:       v.Confidence,
		LowConfidence:    v.LowConfidence,
		Source:           sourceRequest{Kind: string(v.Source.Kind), ID: v.Source.ID},
		TargetCode:       v.TargetCode,
		TargetTable:      v.TargetTable,
		Status:           string(v.Status),
		IsActionable:     v.IsActionable,
		HasHandler:       v.HasHandler,
		HasRollbackData:  v.HasSnapshot(),
		CorrectedPayload: v.CorrectedPayload,
		RejectionReason:  v.RejectionReason,
		DecidedBy:        v.DecidedBy,
		CreatedAt:        v.CreatedAt,
		DecidedAt:        v.DecidedAt,
		RolledBackAt:     v.RolledBackAt,
		RolledBackBy:     v.RolledBackBy,
	}
}

func toSuggestionList(items []suggestion.SuggestionView) []suggestionResponse {
	out := make([]suggestionResponse, 0, len(items))
	for _, v := range items {
		out = append(out, toSuggestionResponse(v))
	}
	return out
}

type listResponse struct {
	Items  []suggestionResponse `json:"items"`
	Total  int                  `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

type groupResponse struct {
	TargetCode  *string              `json:"target_code"`
	Count       int                  `json:"count"`
	Suggestions []suggestionResponse `json:"suggestions"`
}

func toGroups(groups []suggestion.Group) []groupResponse {
	out := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		resp := groupResponse{Count: len(g.Suggestions), Suggestions: toSuggestionList(g.Suggestions)}
		if g.TargetCode != "" {
			code := g.TargetCode
			resp.TargetCode = &code
		}
		out = append(out, resp)
	}
	return out
}

type previewResponse struct {
	SuggestionID uuid.UUID            `json:"suggestion_id"`
	Type         string               `json:"suggestion_type"`
	Status       string               `json:"status"`
	IsActionable bool                 `json:"is_actionable"`
	Previewable  bool                 `json:"previewable"`
	Action       domain.PreviewAction `json:"action"`
	Table        string               `json:"table"`
	Summary      string               `json:"summary"`
	Changes      []domain.FieldChange `json:"changes"`
	Errors       []string             `json:"errors,omitempty"`
}

func toPreviewResponse(p *suggestion.PreviewResult) previewResponse {
	changes := p.Changes
	if changes == nil {
		changes = []domain.FieldChange{}
	}
	return previewResponse{
		SuggestionID: p.SuggestionID,
		Type:         p.Type,
		Status:       string(p.Status),
		IsActionable: p.IsActionable,
		Previewable:  p.Previewable,
		Action:       p.Action,
		Table:        p.Table,
		Summary:      p.Summary,
		Changes:      changes,
		Errors:       p.Errors,
	}
}

type emailResponse struct {
	ID         uuid.UUID `json:"id"`
	Subject    string    `json:"subject"`
	Sender     string    `json:"sender"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
}

type transcriptResponse struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	ProposalID *uuid.UUID `json:"proposal_id"`
	ProjectID  *uuid.UUID `json:"project_id"`
	RecordedAt time.Time  `json:"recorded_at"`
}

type sourceResponse struct {
	SuggestionID uuid.UUID           `json:"suggestion_id"`
	Kind         string              `json:"kind"`
	SourceID     *uuid.UUID          `json:"source_id"`
	Available    bool                `json:"available"`
	Message      string              `json:"message,omitempty"`
	Email        *emailResponse      `json:"email,omitempty"`
	Transcript   *transcriptResponse `json:"transcript,omitempty"`
}

func toSourceResponse(s *suggestion.SourceResult) sourceResponse {
	out := sourceResponse{
		SuggestionID: s.SuggestionID,
		Kind:         string(s.Kind),
		SourceID:     s.SourceID,
		Available:    s.Available,
		Message:      s.Message,
	}
	if e := s.Email; e != nil {
		out.Email = &emailResponse{ID: e.ID, Subject: e.Subject, Sender: e.Sender, Body: e.Body, ReceivedAt: e.ReceivedAt}
	}
	if t := s.Transcript; t != nil {
		out.Transcript = &transcriptResponse{
			ID: t.ID, Title: t.Title, Body: t.Body,
			ProposalID: t.ProposalID, ProjectID: t.ProjectID, RecordedAt: t.RecordedAt,
		}
	}
	return out
}

type changeResponse struct {
	ID           uuid.UUID  `json:"id"`
	EntityKind   string     `json:"entity_kind"`
	EntityID     string     `json:"entity_id"`
	FieldName    string     `json:"field_name"`
	OldValue     *string    `json:"old_value"`
	NewValue     *string    `json:"new_value"`
	ChangeKind   string     `json:"change_kind"`
	CreatedAt    time.Time  `json:"created_at"`
	RolledBack   bool       `json:"rolled_back"`
	RolledBackAt *time.Time `json:"rolled_back_at,omitempty"`
}

func toChanges(records []domain.ChangeRecord) []changeResponse {
	out := make([]changeResponse, 0, len(records))
	for _, c := range records {
		out = append(out, changeResponse{
			ID:           c.ID,
			EntityKind:   string(c.EntityKind),
			EntityID:     c.EntityID,
			FieldName:    c.FieldName,
			OldValue:     c.OldValue,
			NewValue:     c.NewValue,
			ChangeKind:   string(c.ChangeKind),
			CreatedAt:    c.CreatedAt,
			RolledBack:   c.RolledBack,
			RolledBackAt: c.RolledBackAt,
		})
	}
	return out
}

type outcomeResponse struct {
	SuggestionID uuid.UUID        `json:"suggestion_id"`
	Success      bool             `json:"success"`
	Message      string           `json:"message"`
	Status       string           `json:"status"`
	IsActionable bool             `json:"is_actionable"`
	Errors       []string         `json:"errors"`
	Changes      []changeResponse `json:"changes"`
}

func toOutcomeResponse(o *domain.Outcome) outcomeResponse {
	errs := o.Errors
	if errs == nil {
		errs = []string{}
	}
	return outcomeResponse{
		SuggestionID: o.SuggestionID,
		Success:      o.Success,
		Message:      o.Message,
		Status:       string(o.Status),
		IsActionable: o.IsActionable,
		Errors:       errs,
		Changes:      toChanges(o.Changes),
	}
}

type typesResponse struct {
	Registered []string `json:"registered"`
	Actionable []string `json:"actionable"`
}
