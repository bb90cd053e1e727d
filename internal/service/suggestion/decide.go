package suggestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

// Decide approves, rejects or corrects a pending suggestion. Everything the
// decision writes (entity mutation, change records, status) commits
// together or not at all. Handler problems come back as an unsuccessful
// Outcome with the suggestion still pending; only a missing suggestion,
// invalid input and infrastructure failures are returned as errors.
func (s *Service) Decide(ctx context.Context, input DecideInput) (*domain.Outcome, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.DecisionTimeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "suggestion.Decide", trace.WithAttributes(
		attribute.String("suggestion.id", input.SuggestionID.String()),
		attribute.String("suggestion.decision", string(input.Decision)),
	))
	defer span.End()

	reviewer := actor(ctx)
	var (
		out     *domain.Outcome
		decided *domain.Suggestion
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		sg, err := s.suggestions.GetByIDForUpdate(txCtx, input.SuggestionID)
		if err != nil {
			return fmt.Errorf("get suggestion: %w", err)
		}
		span.SetAttributes(attribute.String("suggestion.type", sg.Type))

		if sg.Status != domain.StatusPending {
			out = alreadyDecided(sg)
			return nil
		}

		if input.Decision == domain.DecisionReject {
			updated, err := s.suggestions.Transition(txCtx, domain.SuggestionTransition{
				ID:              sg.ID,
				From:            domain.StatusPending,
				To:              domain.StatusRejected,
				IsActionable:    sg.IsActionable,
				RejectionReason: input.Reason,
				Actor:           reviewer,
				At:              s.now(),
			})
			if err != nil {
				return fmt.Errorf("reject suggestion: %w", err)
			}
			decided = updated
			out = &domain.Outcome{
				SuggestionID: sg.ID,
				Success:      true,
				Message:      "suggestion rejected",
				Status:       updated.Status,
				IsActionable: updated.IsActionable,
			}
			return nil
		}

		o, updated, err := s.apply(txCtx, *sg, input, reviewer)
		out, decided = o, updated
		if err != nil {
			return err
		}
		if !o.Success {
			return errAbort
		}
		return nil
	})

	switch {
	case err == nil, errors.Is(err, errAbort):
	case isTimeout(ctx, err):
		out = &domain.Outcome{
			SuggestionID: input.SuggestionID,
			Message:      "decision timed out; suggestion left pending",
			Status:       domain.StatusPending,
			Errors:       []string{err.Error()},
		}
		decided = nil
	case errors.Is(err, domain.ErrConflict):
		out = s.conflictOutcome(ctx, input.SuggestionID)
		decided = nil
	default:
		var fault *handlerFault
		if !errors.As(err, &fault) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		out = &domain.Outcome{
			SuggestionID: input.SuggestionID,
			Message:      "handler error: " + fault.err.Error(),
			Status:       domain.StatusPending,
			IsActionable: out != nil && out.IsActionable,
			Errors:       []string{fault.Error()},
		}
		decided = nil
	}

	span.SetAttributes(attribute.Bool("suggestion.success", out.Success), attribute.String("suggestion.status", string(out.Status)))
	if !out.Success {
		span.SetStatus(codes.Error, out.Message)
	}

	if decided != nil && out.Success {
		s.publish(ctx, domain.EventSuggestionDecided, decided, len(out.Changes))
		s.log.InfoContext(ctx, "suggestion decided",
			slog.String("suggestion_id", decided.ID.String()),
			slog.String("suggestion_type", decided.Type),
			slog.String("decision", string(input.Decision)),
			slog.String("status", string(decided.Status)),
			slog.Int("changes", len(out.Changes)),
		)
	}
	return out, nil
}

// apply runs validate and apply for an approve or correct decision and, on
// success, records the changes and the new status. An unsuccessful outcome
// with a nil error means nothing should be committed.
func (s *Service) apply(ctx context.Context, sg domain.Suggestion, input DecideInput, reviewer *uuid.UUID) (*domain.Outcome, *domain.Suggestion, error) {
	payload := sg.Payload
	if input.Decision == domain.DecisionCorrect {
		payload = input.EditedPayload
		sg.CorrectedPayload = input.EditedPayload
	}

	h := s.resolve(sg)
	out := &domain.Outcome{
		SuggestionID: sg.ID,
		Status:       domain.StatusPending,
		IsActionable: h.Actionable(),
	}

	var problems []string
	if err := s.guard(ctx, sg, "validate", func() (err error) {
		problems, err = h.Validate(ctx, payload)
		return err
	}); err != nil {
		return out, nil, err
	}
	if len(problems) > 0 {
		out.Message = "validation failed: " + domain.JoinMessages(problems)
		out.Errors = problems
		return out, nil, nil
	}

	var res *domain.ApplyResult
	if err := s.guard(ctx, sg, "apply", func() (err error) {
		res, err = h.Apply(ctx, sg, payload)
		if err == nil && res == nil {
			err = errors.New("no result returned")
		}
		return err
	}); err != nil {
		return out, nil, err
	}

	if !res.Success {
		out.Message = res.Message
		out.Errors = []string{res.Message}
		return out, nil, nil
	}
	if h.Actionable() {
		if problem := checkApplyResult(res); problem != "" {
			s.log.ErrorContext(ctx, "handler broke its contract",
				slog.String("suggestion_id", sg.ID.String()),
				slog.String("suggestion_type", sg.Type),
				slog.String("handler", h.Type()),
				slog.String("problem", problem),
			)
			out.Message = problem
			out.Errors = []string{problem}
			return out, nil, nil
		}
	}

	var records []domain.ChangeRecord
	if len(res.ChangesMade) > 0 {
		appended, err := s.changes.Append(ctx, sg.ID, res.ChangesMade)
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				return out, nil, &handlerFault{stage: "apply", err: err}
			}
			return out, nil, fmt.Errorf("append change records: %w", err)
		}
		records = appended
	}

	target := domain.StatusApproved
	if input.Decision == domain.DecisionCorrect && !h.Actionable() {
		target = domain.StatusCorrected
	}

	var snapshot json.RawMessage
	if h.Actionable() {
		snapshot = res.RollbackData
	}

	updated, err := s.suggestions.Transition(ctx, domain.SuggestionTransition{
		ID:               sg.ID,
		From:             domain.StatusPending,
		To:               target,
		IsActionable:     h.Actionable(),
		RollbackSnapshot: snapshot,
		CorrectedPayload: sg.CorrectedPayload,
		Actor:            reviewer,
		At:               s.now(),
	})
	if err != nil {
		return out, nil, fmt.Errorf("transition suggestion: %w", err)
	}

	out.Success = true
	out.Message = res.Message
	out.Status = updated.Status
	out.Changes = records
	return out, updated, nil
}

// checkApplyResult reports a successful actionable apply that cannot be
// audited or reversed.
func checkApplyResult(res *domain.ApplyResult) string {
	if len(res.ChangesMade) == 0 {
		return "handler reported success without recording any change"
	}
	if len(res.RollbackData) == 0 || string(res.RollbackData) == "null" {
		return "handler reported success without rollback data"
	}
	return ""
}

func alreadyDecided(sg *domain.Suggestion) *domain.Outcome {
	return &domain.Outcome{
		SuggestionID: sg.ID,
		Message:      "suggestion already decided",
		Status:       sg.Status,
		IsActionable: sg.IsActionable,
		Errors:       []string{fmt.Sprintf("status is %s", sg.Status)},
	}
}

func (s *Service) conflictOutcome(ctx context.Context, id uuid.UUID) *domain.Outcome {
	out := &domain.Outcome{SuggestionID: id, Message: "suggestion already decided"}
	if sg, err := s.suggestions.GetByID(context.WithoutCancel(ctx), id); err == nil {
		out.Status = sg.Status
		out.IsActionable = sg.IsActionable
	}
	return out
}
