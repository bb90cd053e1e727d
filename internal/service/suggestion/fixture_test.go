package suggestion

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studioops-backend/internal/domain"
	"github.com/heartmarshall/studioops-backend/internal/service/suggestion/handlers"
)

var testNow = time.Date(2025, time.June, 11, 9, 0, 0, 0, time.UTC)

// memTx is a transaction manager over an in-memory state: it snapshots the
// state before fn and restores it when fn fails, like a database rollback.
// A single mutex serialises transactions, standing in for row locks.
type memTx struct {
	mu    sync.Mutex
	state *memState
	calls int
}

func (m *memTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	snap := m.state.snapshot()
	if err := fn(ctx); err != nil {
		m.state.restore(snap)
		return err
	}
	return nil
}

// memState holds suggestions and change records. Entity rows live in the
// handler fakes registered per test.
type memState struct {
	mu          sync.Mutex
	suggestions map[uuid.UUID]domain.Suggestion
	changes     []domain.ChangeRecord
	extra       snapshotter
}

type snapshotter interface {
	snapshot() any
	restore(any)
}

type stateSnapshot struct {
	suggestions map[uuid.UUID]domain.Suggestion
	changes     []domain.ChangeRecord
	extra       any
}

func (s *memState) snapshot() stateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	sugs := make(map[uuid.UUID]domain.Suggestion, len(s.suggestions))
	for k, v := range s.suggestions {
		sugs[k] = v
	}
	snap := stateSnapshot{suggestions: sugs, changes: append([]domain.ChangeRecord(nil), s.changes...)}
	if s.extra != nil {
		snap.extra = s.extra.snapshot()
	}
	return snap
}

func (s *memState) restore(snap stateSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = snap.suggestions
	s.changes = snap.changes
	if s.extra != nil {
		s.extra.restore(snap.extra)
	}
}

func (s *memState) get(id uuid.UUID) (domain.Suggestion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sg, ok := s.suggestions[id]
	return sg, ok
}

func (s *memState) put(sg domain.Suggestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions[sg.ID] = sg
}

// all returns a copy of every stored suggestion.
func (s *memState) all() []domain.Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Suggestion, 0, len(s.suggestions))
	for _, sg := range s.suggestions {
		out = append(out, sg)
	}
	return out
}

func (s *memState) changeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.changes)
}

type fixture struct {
	state    *memState
	tx       *memTx
	repo     *suggestionRepoMock
	changes  *changeLogRepoMock
	emails   *emailRepoMock
	scripts  *transcriptRepoMock
	events   *eventPublisherMock
	registry *handlers.Registry
	svc      *Service
}

func newFixture(deps handlers.Deps, register ...handlers.Factory) *fixture {
	state := &memState{suggestions: map[uuid.UUID]domain.Suggestion{}}
	f := &fixture{
		state:    state,
		tx:       &memTx{state: state},
		registry: handlers.NewRegistry(slog.Default()),
	}
	for _, factory := range register {
		f.registry.Register(factory)
	}

	notFound := func(id uuid.UUID) error { return fmt.Errorf("suggestion %s: %w", id, domain.ErrNotFound) }
	get := func(_ context.Context, id uuid.UUID) (*domain.Suggestion, error) {
		sg, ok := state.get(id)
		if !ok {
			return nil, notFound(id)
		}
		return &sg, nil
	}

	f.repo = &suggestionRepoMock{
		CreateFunc: func(_ context.Context, items []domain.Suggestion) ([]domain.Suggestion, error) {
			for _, sg := range items {
				state.put(sg)
			}
			return items, nil
		},
		GetByIDFunc:          get,
		GetByIDForUpdateFunc: get,
		TransitionFunc: func(_ context.Context, t domain.SuggestionTransition) (*domain.Suggestion, error) {
			sg, ok := state.get(t.ID)
			if !ok {
				return nil, notFound(t.ID)
			}
			if sg.Status != t.From {
				return nil, fmt.Errorf("suggestion %s: %w", t.ID, domain.ErrConflict)
			}
			sg.Status = t.To
			sg.IsActionable = t.IsActionable
			if t.RollbackSnapshot != nil {
				sg.RollbackSnapshot = t.RollbackSnapshot
			}
			if t.CorrectedPayload != nil {
				sg.CorrectedPayload = t.CorrectedPayload
			}
			if t.RejectionReason != nil {
				sg.RejectionReason = t.RejectionReason
			}
			at := t.At
			if t.To == domain.StatusRolledBack {
				sg.RolledBackAt, sg.RolledBackBy = &at, t.Actor
			} else {
				sg.DecidedAt, sg.DecidedBy = &at, t.Actor
			}
			state.put(sg)
			return &sg, nil
		},
		ListFunc: func(_ context.Context, filter domain.SuggestionFilter) ([]domain.Suggestion, int, error) {
			var out []domain.Suggestion
			for _, sg := range state.all() {
				if filter.Status != nil && sg.Status != *filter.Status {
					continue
				}
				out = append(out, sg)
			}
			sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
			return out, len(out), nil
		},
		ListByStatusFunc: func(_ context.Context, status domain.SuggestionStatus) ([]domain.Suggestion, error) {
			var out []domain.Suggestion
			for _, sg := range state.all() {
				if sg.Status == status {
					out = append(out, sg)
				}
			}
			sort.Slice(out, func(i, j int) bool {
				a, b := out[i].TargetCode, out[j].TargetCode
				switch {
				case a == nil && b == nil:
					return out[i].CreatedAt.Before(out[j].CreatedAt)
				case a == nil:
					return false
				case b == nil:
					return true
				case *a != *b:
					return *a < *b
				}
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			})
			return out, nil
		},
	}

	f.changes = &changeLogRepoMock{
		AppendFunc: func(_ context.Context, suggestionID uuid.UUID, records []domain.ChangeRecord) ([]domain.ChangeRecord, error) {
			state.mu.Lock()
			defer state.mu.Unlock()
			out := make([]domain.ChangeRecord, 0, len(records))
			for _, r := range records {
				if !r.ChangeKind.IsValid() {
					return nil, fmt.Errorf("change kind %q: %w", r.ChangeKind, domain.ErrValidation)
				}
				r.ID = uuid.New()
				r.SuggestionID = suggestionID
				r.CreatedAt = testNow
				out = append(out, r)
			}
			state.changes = append(state.changes, out...)
			return out, nil
		},
		ListBySuggestionFunc: func(_ context.Context, suggestionID uuid.UUID) ([]domain.ChangeRecord, error) {
			state.mu.Lock()
			defer state.mu.Unlock()
			var out []domain.ChangeRecord
			for _, r := range state.changes {
				if r.SuggestionID == suggestionID {
					out = append(out, r)
				}
			}
			return out, nil
		},
		MarkRolledBackFunc: func(_ context.Context, suggestionID uuid.UUID, at time.Time) (int64, error) {
			state.mu.Lock()
			defer state.mu.Unlock()
			var n int64
			for i := range state.changes {
				if state.changes[i].SuggestionID == suggestionID && !state.changes[i].RolledBack {
					state.changes[i].RolledBack = true
					state.changes[i].RolledBackAt = &at
					n++
				}
			}
			return n, nil
		},
	}

	f.emails = &emailRepoMock{}
	f.scripts = &transcriptRepoMock{}
	f.events = &eventPublisherMock{
		PublishFunc: func(context.Context, domain.SuggestionEvent) error { return nil },
	}

	if deps.Now == nil {
		deps.Now = func() time.Time { return testNow }
	}
	f.svc = NewService(slog.Default(), f.repo, f.changes, f.emails, f.scripts, f.registry, deps, f.events, f.tx, Config{
		DecisionTimeout: time.Second,
		MinConfidence:   0.5,
	})
	return f
}

func (f *fixture) seed(typ string, payload string) domain.Suggestion {
	sg := domain.Suggestion{
		ID:         uuid.New(),
		Type:       typ,
		Payload:    json.RawMessage(payload),
		Confidence: 0.9,
		Source:     domain.SourceReference{Kind: domain.SourceManual},
		Status:     domain.StatusPending,
		CreatedAt:  testNow,
	}
	f.state.put(sg)
	return sg
}

func (f *fixture) current(id uuid.UUID) domain.Suggestion {
	sg, _ := f.state.get(id)
	return sg
}

// stubHandler is a programmable handler for engine tests.
type stubHandler struct {
	typ        string
	actionable bool
	validate   func(json.RawMessage) []string
	apply      func(domain.Suggestion, json.RawMessage) (*domain.ApplyResult, error)
	rollback   func(json.RawMessage) (bool, error)

	mu           sync.Mutex
	applyCalls   int
	rollbackHits int
}

func (h *stubHandler) factory() handlers.Factory {
	return func(handlers.Deps) handlers.Handler { return h }
}

func (h *stubHandler) Type() string                    { return h.typ }
func (h *stubHandler) TargetEntity() domain.EntityKind { return domain.EntityTask }
func (h *stubHandler) Actionable() bool                { return h.actionable }

func (h *stubHandler) Validate(_ context.Context, payload json.RawMessage) ([]string, error) {
	if h.validate == nil {
		return nil, nil
	}
	return h.validate(payload), nil
}

func (h *stubHandler) Preview(_ context.Context, _ domain.Suggestion, _ json.RawMessage) (*domain.ChangePreview, error) {
	return &domain.ChangePreview{Action: domain.ActionInsert, Table: "tasks", Summary: "stub"}, nil
}

func (h *stubHandler) Apply(_ context.Context, s domain.Suggestion, payload json.RawMessage) (*domain.ApplyResult, error) {
	h.mu.Lock()
	h.applyCalls++
	h.mu.Unlock()
	if h.apply == nil {
		return &domain.ApplyResult{Success: true}, nil
	}
	return h.apply(s, payload)
}

func (h *stubHandler) Rollback(_ context.Context, data json.RawMessage) (bool, error) {
	h.mu.Lock()
	h.rollbackHits++
	h.mu.Unlock()
	if h.rollback == nil {
		return true, nil
	}
	return h.rollback(data)
}

func (h *stubHandler) applied() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.applyCalls
}

func (h *stubHandler) rolledBack() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rollbackHits
}

func oneChange(entityID string) []domain.ChangeRecord {
	v := "x"
	return []domain.ChangeRecord{{
		EntityKind: domain.EntityTask,
		EntityID:   entityID,
		FieldName:  "title",
		NewValue:   &v,
		ChangeKind: domain.ChangeInsert,
	}}
}
