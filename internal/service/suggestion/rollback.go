package suggestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

// Rollback reverses an approved suggestion using its stored snapshot. If the
// handler finds the data changed since apply, nothing is written and the
// suggestion stays approved for a human to resolve.
func (s *Service) Rollback(ctx context.Context, id uuid.UUID) (*domain.Outcome, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("suggestion_id", "required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.DecisionTimeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "suggestion.Rollback", trace.WithAttributes(
		attribute.String("suggestion.id", id.String()),
	))
	defer span.End()

	reviewer := actor(ctx)
	var (
		out        *domain.Outcome
		rolledBack *domain.Suggestion
		marked     int64
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		sg, err := s.suggestions.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("get suggestion: %w", err)
		}
		span.SetAttributes(attribute.String("suggestion.type", sg.Type))

		out = &domain.Outcome{SuggestionID: sg.ID, Status: sg.Status, IsActionable: sg.IsActionable}

		if sg.Status != domain.StatusApproved {
			out.Message = "suggestion is not approved"
			out.Errors = []string{fmt.Sprintf("status is %s", sg.Status)}
			return nil
		}
		if !sg.HasSnapshot() {
			out.Message = "cannot rollback: no rollback data stored"
			out.Errors = []string{out.Message}
			return nil
		}

		h, ok := s.resolveForRollback(*sg)
		if !ok {
			out.Message = fmt.Sprintf("cannot rollback: no handler registered for type %q", sg.Type)
			out.Errors = []string{out.Message}
			return nil
		}

		var reversed bool
		if err := s.guard(txCtx, *sg, "rollback", func() (err error) {
			reversed, err = h.Rollback(txCtx, sg.RollbackSnapshot)
			return err
		}); err != nil {
			return err
		}
		if !reversed {
			out.Message = "rollback refused: data changed since the suggestion was applied, manual review required"
			out.Errors = []string{out.Message}
			return errAbort
		}

		n, err := s.changes.MarkRolledBack(txCtx, sg.ID, s.now())
		if err != nil {
			return fmt.Errorf("mark change records rolled back: %w", err)
		}
		marked = n

		updated, err := s.suggestions.Transition(txCtx, domain.SuggestionTransition{
			ID:           sg.ID,
			From:         domain.StatusApproved,
			To:           domain.StatusRolledBack,
			IsActionable: sg.IsActionable,
			Actor:        reviewer,
			At:           s.now(),
		})
		if err != nil {
			return fmt.Errorf("transition suggestion: %w", err)
		}

		rolledBack = updated
		out.Success = true
		out.Message = "suggestion rolled back"
		out.Status = updated.Status
		return nil
	})

	switch {
	case err == nil, errors.Is(err, errAbort):
	case isTimeout(ctx, err):
		out = &domain.Outcome{
			SuggestionID: id,
			Message:      "rollback timed out; suggestion left approved",
			Status:       domain.StatusApproved,
			IsActionable: out != nil && out.IsActionable,
			Errors:       []string{err.Error()},
		}
		rolledBack = nil
	case errors.Is(err, domain.ErrConflict):
		out = s.conflictOutcome(ctx, id)
		out.Message = "suggestion changed concurrently"
		rolledBack = nil
	default:
		var fault *handlerFault
		if !errors.As(err, &fault) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		out = &domain.Outcome{
			SuggestionID: id,
			Message:      "handler error: " + fault.err.Error(),
			Status:       domain.StatusApproved,
			IsActionable: out != nil && out.IsActionable,
			Errors:       []string{fault.Error()},
		}
		rolledBack = nil
	}

	span.SetAttributes(attribute.Bool("suggestion.success", out.Success))
	if !out.Success {
		span.SetStatus(codes.Error, out.Message)
		s.log.WarnContext(ctx, "rollback not performed",
			slog.String("suggestion_id", id.String()),
			slog.String("reason", out.Message),
		)
	}

	if rolledBack != nil {
		s.publish(ctx, domain.EventSuggestionRolledBack, rolledBack, int(marked))
		s.log.InfoContext(ctx, "suggestion rolled back",
			slog.String("suggestion_id", rolledBack.ID.String()),
			slog.String("suggestion_type", rolledBack.Type),
			slog.Int64("changes", marked),
		)
	}
	return out, nil
}
