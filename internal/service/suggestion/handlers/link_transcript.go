package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

const TypeLinkTranscript = "link-transcript"

type linkTranscriptPayload struct {
	TranscriptID *uuid.UUID `json:"transcript_id"`
	ProposalID   *uuid.UUID `json:"proposal_id"`
	ProjectID    *uuid.UUID `json:"project_id"`
}

type linkTranscriptRollback struct {
	TranscriptID  uuid.UUID  `json:"transcript_id"`
	OldProposalID *uuid.UUID `json:"old_proposal_id"`
	OldProjectID  *uuid.UUID `json:"old_project_id"`
	NewProposalID *uuid.UUID `json:"new_proposal_id"`
	NewProjectID  *uuid.UUID `json:"new_project_id"`
}

// LinkTranscript points a meeting transcript at a proposal and/or project.
// Keys absent from the payload keep their current value.
type LinkTranscript struct {
	deps Deps
}

func NewLinkTranscript(deps Deps) Handler { return &LinkTranscript{deps: deps} }

func (h *LinkTranscript) Type() string                    { return TypeLinkTranscript }
func (h *LinkTranscript) TargetEntity() domain.EntityKind { return domain.EntityTranscript }
func (h *LinkTranscript) Actionable() bool                { return true }

func (h *LinkTranscript) Validate(ctx context.Context, raw json.RawMessage) ([]string, error) {
	p, problems := decodePayload[linkTranscriptPayload](raw)
	if problems != nil {
		return problems, nil
	}

	if p.TranscriptID == nil {
		problems = append(problems, "transcript_id: required")
	}
	if p.ProposalID == nil && p.ProjectID == nil {
		problems = append(problems, "proposal_id or project_id: required")
	}
	if len(problems) > 0 {
		return problems, nil
	}

	tr, err := h.deps.Transcripts.GetByID(ctx, *p.TranscriptID)
	if err != nil {
		msg, err := lookupProblem(err, "transcript", p.TranscriptID)
		if err != nil {
			return nil, err
		}
		return []string{msg}, nil
	}

	refs, err := validateRefs(ctx, h.deps, p.ProposalID, p.ProjectID)
	if err != nil {
		return nil, err
	}
	problems = append(problems, refs...)

	if len(h.fields(tr, p)) == 0 {
		problems = append(problems, "transcript is already linked to the given proposal/project")
	}
	return problems, nil
}

// fields lists only the keys whose value would actually change.
func (h *LinkTranscript) fields(tr *domain.Transcript, p linkTranscriptPayload) []domain.FieldChange {
	var out []domain.FieldChange
	if p.ProposalID != nil && !sameUUID(tr.ProposalID, p.ProposalID) {
		out = append(out, domain.FieldChange{Field: "proposal_id", Old: uuidStr(tr.ProposalID), New: uuidStr(p.ProposalID)})
	}
	if p.ProjectID != nil && !sameUUID(tr.ProjectID, p.ProjectID) {
		out = append(out, domain.FieldChange{Field: "project_id", Old: uuidStr(tr.ProjectID), New: uuidStr(p.ProjectID)})
	}
	return out
}

func (h *LinkTranscript) load(ctx context.Context, raw json.RawMessage) (*domain.Transcript, linkTranscriptPayload, error) {
	p, problems := decodePayload[linkTranscriptPayload](raw)
	if problems != nil || p.TranscriptID == nil {
		return nil, p, fmt.Errorf("link-transcript payload: %w", domain.ErrValidation)
	}
	tr, err := h.deps.Transcripts.GetByID(ctx, *p.TranscriptID)
	if err != nil {
		return nil, p, fmt.Errorf("load transcript: %w", err)
	}
	return tr, p, nil
}

func (h *LinkTranscript) Preview(ctx context.Context, _ domain.Suggestion, raw json.RawMessage) (*domain.ChangePreview, error) {
	tr, p, err := h.load(ctx, raw)
	if err != nil {
		return nil, err
	}
	fields := h.fields(tr, p)
	action := domain.ActionUpdate
	if len(fields) == 0 {
		action = domain.ActionNone
	}
	return &domain.ChangePreview{
		Action:  action,
		Table:   domain.EntityTranscript.Table(),
		Summary: fmt.Sprintf("Link transcript %q", tr.Title),
		Changes: fields,
	}, nil
}

func (h *LinkTranscript) Apply(ctx context.Context, _ domain.Suggestion, raw json.RawMessage) (*domain.ApplyResult, error) {
	tr, p, err := h.load(ctx, raw)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) {
			return failed(err.Error()), nil
		}
		return nil, err
	}

	fields := h.fields(tr, p)
	if len(fields) == 0 {
		return failed("transcript is already linked to the given proposal/project"), nil
	}

	newProposal, newProject := tr.ProposalID, tr.ProjectID
	if p.ProposalID != nil {
		newProposal = p.ProposalID
	}
	if p.ProjectID != nil {
		newProject = p.ProjectID
	}

	if err := h.deps.Transcripts.SetLinks(ctx, tr.ID, newProposal, newProject); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return failed("transcript or link target no longer exists"), nil
		}
		return nil, fmt.Errorf("link transcript: %w", err)
	}

	data, err := encodeRollback(linkTranscriptRollback{
		TranscriptID:  tr.ID,
		OldProposalID: tr.ProposalID,
		OldProjectID:  tr.ProjectID,
		NewProposalID: newProposal,
		NewProjectID:  newProject,
	})
	if err != nil {
		return nil, err
	}

	return &domain.ApplyResult{
		Success:      true,
		Message:      "linked transcript",
		ChangesMade:  recordsFor(domain.EntityTranscript, tr.ID.String(), domain.ChangeUpdate, fields),
		RollbackData: data,
	}, nil
}

func (h *LinkTranscript) Rollback(ctx context.Context, data json.RawMessage) (bool, error) {
	rb, err := decodeRollback[linkTranscriptRollback](data)
	if err != nil {
		return false, err
	}

	tr, err := h.deps.Transcripts.GetByID(ctx, rb.TranscriptID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load transcript: %w", err)
	}
	if !sameUUID(tr.ProposalID, rb.NewProposalID) || !sameUUID(tr.ProjectID, rb.NewProjectID) {
		return false, nil
	}

	if err := h.deps.Transcripts.SetLinks(ctx, tr.ID, rb.OldProposalID, rb.OldProjectID); err != nil {
		return false, fmt.Errorf("restore transcript links: %w", err)
	}
	return true, nil
}
