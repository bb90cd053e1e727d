package suggestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/google/uuid"

	"github.com/heartmarshall/studioops-backend/internal/domain"
	"github.com/heartmarshall/studioops-backend/internal/service/suggestion/handlers"
	"github.com/heartmarshall/studioops-backend/pkg/ctxutil"
)

// errAbort rolls the decision transaction back after the outcome has been
// recorded. It never leaves the package.
var errAbort = errors.New("suggestion: abort transaction")

// handlerFault is an error or panic that escaped a handler.
type handlerFault struct {
	stage string
	err   error
}

func (f *handlerFault) Error() string { return fmt.Sprintf("handler %s: %v", f.stage, f.err) }
func (f *handlerFault) Unwrap() error { return f.err }

// resolve picks the handler for sg: registered type first, then a legacy
// adapter named by the target table hint, then the acknowledgement handler.
func (s *Service) resolve(sg domain.Suggestion) handlers.Handler {
	if h, ok := s.registry.GetHandler(sg.Type, s.deps); ok {
		return h
	}
	if sg.TargetTable != nil {
		if h, ok := s.registry.GetLegacy(*sg.TargetTable, s.deps); ok {
			return h
		}
	}
	return handlers.NewAcknowledge(sg.Type)
}

// resolveForRollback never falls back to acknowledgement: only a real handler
// can reverse its own writes.
func (s *Service) resolveForRollback(sg domain.Suggestion) (handlers.Handler, bool) {
	if h, ok := s.registry.GetHandler(sg.Type, s.deps); ok {
		return h, true
	}
	if sg.TargetTable != nil {
		return s.registry.GetLegacy(*sg.TargetTable, s.deps)
	}
	return nil, false
}

func (s *Service) hasHandler(sg domain.Suggestion) bool {
	_, ok := s.resolveForRollback(sg)
	return ok
}

// guard runs one handler call, converting panics and returned errors into a
// *handlerFault that is logged with the suggestion it came from.
func (s *Service) guard(ctx context.Context, sg domain.Suggestion, stage string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &handlerFault{stage: stage, err: fmt.Errorf("panic: %v", r)}
			s.log.ErrorContext(ctx, "handler panicked",
				slog.String("suggestion_id", sg.ID.String()),
				slog.String("suggestion_type", sg.Type),
				slog.String("stage", stage),
				slog.String("payload", string(sg.EffectivePayload())),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	if err := fn(); err != nil {
		if ctx.Err() != nil {
			return err
		}
		s.log.ErrorContext(ctx, "handler failed",
			slog.String("suggestion_id", sg.ID.String()),
			slog.String("suggestion_type", sg.Type),
			slog.String("stage", stage),
			slog.String("payload", string(sg.EffectivePayload())),
			slog.String("error", err.Error()),
		)
		return &handlerFault{stage: stage, err: err}
	}
	return nil
}

// actor is the reviewer recorded as decided_by / rolled_back_by.
func actor(ctx context.Context) *uuid.UUID {
	id, ok := ctxutil.ReviewerIDFromCtx(ctx)
	if !ok {
		return nil
	}
	return &id
}

func isTimeout(ctx context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)
}

func (s *Service) view(sg domain.Suggestion) SuggestionView {
	return SuggestionView{
		Suggestion:    sg,
		LowConfidence: sg.IsLowConfidence(s.cfg.MinConfidence),
		HasHandler:    s.hasHandler(sg),
	}
}
