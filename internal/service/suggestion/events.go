package suggestion

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

// publish announces a committed transition. Failures are logged and never
// undo the transition.
func (s *Service) publish(ctx context.Context, name string, sg *domain.Suggestion, changeCount int) {
	if s.events == nil {
		return
	}

	by := sg.DecidedBy
	if name == domain.EventSuggestionRolledBack {
		by = sg.RolledBackBy
	}

	event := domain.SuggestionEvent{
		Name:           name,
		SuggestionID:   sg.ID,
		SuggestionType: sg.Type,
		Status:         sg.Status,
		IsActionable:   sg.IsActionable,
		ChangeCount:    changeCount,
		DecidedBy:      by,
		OccurredAt:     s.now(),
	}

	if err := s.events.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.log.WarnContext(ctx, "publish suggestion event failed",
			slog.String("event", name),
			slog.String("suggestion_id", sg.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}
