package handlers

import "log/slog"

// RegisterBuiltins installs the catalogue handlers and legacy adapters.
func RegisterBuiltins(r *Registry) {
	r.Register(NewLinkEmail)
	r.Register(NewCreateFollowUp)
	r.Register(NewLinkTranscript)
	r.Register(NewNewContact)
	r.Register(NewUpdateFee)
	r.Register(NewDeadlineDetected)
	r.Register(NewInformational)

	r.RegisterLegacy(LegacyTaskTable, NewLegacyTask)
}

// NewDefaultRegistry returns a registry with the builtins installed.
func NewDefaultRegistry(log *slog.Logger) *Registry {
	r := NewRegistry(log)
	RegisterBuiltins(r)
	return r
}
