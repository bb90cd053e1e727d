package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/studioops-backend/internal/domain"
	"github.com/heartmarshall/studioops-backend/internal/service/suggestion/normalize"
)

const TypeUpdateFee = "update-fee"

// maxFee is the largest value proposals.fee (numeric(14,2)) can hold.
var maxFee = decimal.RequireFromString("999999999999.99")

type updateFeePayload struct {
	ProjectCode string   `json:"project_code"`
	Amount      string   `json:"amount"`
	Amounts     []string `json:"amounts"`
}

func (p updateFeePayload) candidates() []string {
	out := make([]string, 0, len(p.Amounts)+1)
	if strings.TrimSpace(p.Amount) != "" {
		out = append(out, p.Amount)
	}
	return append(out, p.Amounts...)
}

type updateFeeRollback struct {
	ProposalID   uuid.UUID `json:"proposal_id"`
	OldFee       *string   `json:"old_fee"`
	NewFee       string    `json:"new_fee"`
	OldUpdatedAt time.Time `json:"old_updated_at"`
}

// UpdateFee sets proposals.fee from amounts quoted in free text. When several
// amounts are mentioned the largest wins.
type UpdateFee struct {
	deps Deps
}

func NewUpdateFee(deps Deps) Handler { return &UpdateFee{deps: deps} }

func (h *UpdateFee) Type() string                    { return TypeUpdateFee }
func (h *UpdateFee) TargetEntity() domain.EntityKind { return domain.EntityProposal }
func (h *UpdateFee) Actionable() bool                { return true }

func feeStr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	return strPtr(d.StringFixed(2))
}

func (h *UpdateFee) Validate(ctx context.Context, raw json.RawMessage) ([]string, error) {
	p, problems := decodePayload[updateFeePayload](raw)
	if problems != nil {
		return problems, nil
	}

	code := strings.TrimSpace(p.ProjectCode)
	if code == "" {
		problems = append(problems, "project_code: required")
	}
	candidates := p.candidates()
	if len(candidates) == 0 {
		problems = append(problems, "amounts: required")
	} else if amount, source, ok := normalize.Largest(candidates, h.deps.money()); !ok {
		problems = append(problems, "no recognisable amount in: "+strings.Join(candidates, ", "))
	} else if amount.GreaterThan(maxFee) {
		problems = append(problems, fmt.Sprintf("amount %q exceeds the maximum fee of %s", source, maxFee.StringFixed(2)))
	}
	if len(problems) > 0 {
		return problems, nil
	}

	if _, err := h.deps.Proposals.GetByCode(ctx, code); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []string{"proposal not found: " + code}, nil
		}
		return nil, fmt.Errorf("load proposal: %w", err)
	}
	return nil, nil
}

// plan resolves the proposal and the fee that apply would write.
func (h *UpdateFee) plan(ctx context.Context, raw json.RawMessage) (*domain.Proposal, decimal.Decimal, string, error) {
	p, problems := decodePayload[updateFeePayload](raw)
	if problems != nil {
		return nil, decimal.Zero, "", fmt.Errorf("%s: %w", domain.JoinMessages(problems), domain.ErrValidation)
	}
	amount, source, ok := normalize.Largest(p.candidates(), h.deps.money())
	if !ok {
		return nil, decimal.Zero, "", fmt.Errorf("no recognisable amount: %w", domain.ErrValidation)
	}
	if amount.GreaterThan(maxFee) {
		return nil, decimal.Zero, "", fmt.Errorf("amount %q exceeds the maximum fee of %s: %w",
			source, maxFee.StringFixed(2), domain.ErrValidation)
	}
	prop, err := h.deps.Proposals.GetByCode(ctx, strings.TrimSpace(p.ProjectCode))
	if err != nil {
		return nil, decimal.Zero, "", fmt.Errorf("load proposal %s: %w", p.ProjectCode, err)
	}
	return prop, amount, source, nil
}

func (h *UpdateFee) Preview(ctx context.Context, _ domain.Suggestion, raw json.RawMessage) (*domain.ChangePreview, error) {
	prop, amount, source, err := h.plan(ctx, raw)
	if err != nil {
		return nil, err
	}

	preview := &domain.ChangePreview{
		Action:  domain.ActionUpdate,
		Table:   domain.EntityProposal.Table(),
		Summary: fmt.Sprintf("Set fee of %s to %s %s (from %q)", prop.ProjectCode, h.deps.currency(), amount.StringFixed(2), source),
		Changes: []domain.FieldChange{{Field: "fee", Old: feeStr(prop.Fee), New: feeStr(&amount)}},
	}
	if prop.Fee != nil && prop.Fee.Equal(amount) {
		preview.Action = domain.ActionNone
		preview.Summary = fmt.Sprintf("Fee of %s is already %s %s", prop.ProjectCode, h.deps.currency(), amount.StringFixed(2))
		preview.Changes = nil
	}
	return preview, nil
}

func (h *UpdateFee) Apply(ctx context.Context, _ domain.Suggestion, raw json.RawMessage) (*domain.ApplyResult, error) {
	prop, amount, _, err := h.plan(ctx, raw)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) {
			return failed(err.Error()), nil
		}
		return nil, err
	}
	if prop.Fee != nil && prop.Fee.Equal(amount) {
		return failed(fmt.Sprintf("fee of %s is already %s", prop.ProjectCode, amount.StringFixed(2))), nil
	}

	if err := h.deps.Proposals.UpdateFee(ctx, prop.ID, &amount, h.deps.now()); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return failed(err.Error()), nil
		}
		return nil, fmt.Errorf("update fee: %w", err)
	}

	data, err := encodeRollback(updateFeeRollback{
		ProposalID:   prop.ID,
		OldFee:       feeStr(prop.Fee),
		NewFee:       amount.StringFixed(2),
		OldUpdatedAt: prop.UpdatedAt,
	})
	if err != nil {
		return nil, err
	}

	fields := []domain.FieldChange{{Field: "fee", Old: feeStr(prop.Fee), New: feeStr(&amount)}}
	return &domain.ApplyResult{
		Success:      true,
		Message:      fmt.Sprintf("fee of %s set to %s %s", prop.ProjectCode, h.deps.currency(), amount.StringFixed(2)),
		ChangesMade:  recordsFor(domain.EntityProposal, prop.ID.String(), domain.ChangeUpdate, fields),
		RollbackData: data,
	}, nil
}

// Rollback restores the previous fee and updated_at if nobody changed the fee
// since apply.
func (h *UpdateFee) Rollback(ctx context.Context, data json.RawMessage) (bool, error) {
	rb, err := decodeRollback[updateFeeRollback](data)
	if err != nil {
		return false, err
	}

	prop, err := h.deps.Proposals.GetByID(ctx, rb.ProposalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load proposal: %w", err)
	}

	written, err := decimal.NewFromString(rb.NewFee)
	if err != nil {
		return false, fmt.Errorf("decode rollback fee: %w", err)
	}
	if prop.Fee == nil || !prop.Fee.Equal(written) {
		return false, nil
	}

	var old *decimal.Decimal
	if rb.OldFee != nil {
		v, err := decimal.NewFromString(*rb.OldFee)
		if err != nil {
			return false, fmt.Errorf("decode rollback fee: %w", err)
		}
		old = &v
	}
	if err := h.deps.Proposals.UpdateFee(ctx, prop.ID, old, rb.OldUpdatedAt); err != nil {
		return false, fmt.Errorf("restore fee: %w", err)
	}
	return true, nil
}
