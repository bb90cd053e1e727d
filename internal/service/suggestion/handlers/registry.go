package handlers

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Registry maps suggestion types to handler factories. Legacy adapters are
// kept apart and keyed by the target table hint of old suggestions.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]registered
	legacy    map[string]Factory
	log       *slog.Logger
}

type registered struct {
	factory    Factory
	actionable bool
}

// NewRegistry returns an empty registry.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		factories: map[string]registered{},
		legacy:    map[string]Factory{},
		log:       log.With("component", "handler_registry"),
	}
}

// Register installs factory under the type its handler declares.
// Registering a type twice keeps the last factory and logs a warning.
func (r *Registry) Register(factory Factory) {
	if factory == nil {
		r.log.Warn("ignoring nil handler factory")
		return
	}
	probe := factory(Deps{})
	typ := probe.Type()
	if typ == "" {
		r.log.Warn("ignoring handler with empty type")
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[typ]; exists {
		r.log.Warn("handler registered twice, replacing", slog.String("type", typ))
	}
	r.factories[typ] = registered{factory: factory, actionable: probe.Actionable()}
}

// RegisterLegacy installs an adapter for suggestions whose type has no
// handler but whose target table hint names table.
func (r *Registry) RegisterLegacy(table string, factory Factory) {
	table = strings.ToLower(strings.TrimSpace(table))
	if table == "" || factory == nil {
		r.log.Warn("ignoring invalid legacy adapter", slog.String("table", table))
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.legacy[table]; exists {
		r.log.Warn("legacy adapter registered twice, replacing", slog.String("table", table))
	}
	r.legacy[table] = factory
}

// GetHandler builds the handler for typ. ok is false for unknown types.
func (r *Registry) GetHandler(typ string, deps Deps) (Handler, bool) {
	r.mu.RLock()
	reg, ok := r.factories[typ]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return reg.factory(deps), true
}

// GetLegacy builds the legacy adapter registered for table.
func (r *Registry) GetLegacy(table string, deps Deps) (Handler, bool) {
	r.mu.RLock()
	factory, ok := r.legacy[strings.ToLower(strings.TrimSpace(table))]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return factory(deps), true
}

func (r *Registry) HasHandler(typ string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[typ]
	return ok
}

// RegisteredTypes returns every registered type, sorted.
func (r *Registry) RegisteredTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for typ := range r.factories {
		out = append(out, typ)
	}
	sort.Strings(out)
	return out
}

// ActionableTypes returns the registered types whose handlers mutate data, sorted.
func (r *Registry) ActionableTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for typ, reg := range r.factories {
		if reg.actionable {
			out = append(out, typ)
		}
	}
	sort.Strings(out)
	return out
}
