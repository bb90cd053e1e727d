package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/studioops-backend/internal/domain"
	"github.com/heartmarshall/studioops-backend/internal/service/suggestion"
)

type suggestionService interface {
	Ingest(ctx context.Context, input suggestion.IngestInput) ([]suggestion.SuggestionView, error)
	Get(ctx context.Context, id uuid.UUID) (*suggestion.SuggestionView, error)
	List(ctx context.Context, input suggestion.ListInput) (*suggestion.ListResult, error)
	Grouped(ctx context.Context, status domain.SuggestionStatus) ([]suggestion.Group, error)
	Preview(ctx context.Context, id uuid.UUID) (*suggestion.PreviewResult, error)
	Source(ctx context.Context, id uuid.UUID) (*suggestion.SourceResult, error)
	Changes(ctx context.Context, id uuid.UUID) ([]domain.ChangeRecord, error)
	Decide(ctx context.Context, input suggestion.DecideInput) (*domain.Outcome, error)
	Rollback(ctx context.Context, id uuid.UUID) (*domain.Outcome, error)
	Types() suggestion.TypesResult
}

// SuggestionHandler serves the reviewer API.
type SuggestionHandler struct {
	svc suggestionService
	log *slog.Logger
}

// NewSuggestionHandler creates a SuggestionHandler.
func NewSuggestionHandler(svc suggestionService, log *slog.Logger) *SuggestionHandler {
	return &SuggestionHandler{svc: svc, log: log.With("handler", "suggestion")}
}

// Ingest stores a batch of classifier outputs as pending suggestions.
func (h *SuggestionHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	views, err := h.svc.Ingest(r.Context(), req.toInput())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"items": toSuggestionList(views)})
}

// List returns one page of suggestions filtered by status, type and target
// code.
func (h *SuggestionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := suggestion.ListInput{
		Type:       queryString(q.Get("type")),
		TargetCode: queryString(q.Get("target_code")),
	}
	if s := q.Get("status"); s != "" {
		status := domain.SuggestionStatus(s)
		input.Status = &status
	}

	var err error
	if input.Limit, err = queryInt(q.Get("limit"), "limit"); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if input.Offset, err = queryInt(q.Get("offset"), "offset"); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Items:  toSuggestionList(res.Items),
		Total:  res.Total,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
}

// Grouped returns suggestions of one status grouped by target code. The
// status defaults to pending.
func (h *SuggestionHandler) Grouped(w http.ResponseWriter, r *http.Request) {
	status := domain.StatusPending
	if s := r.URL.Query().Get("status"); s != "" {
		status = domain.SuggestionStatus(s)
	}
	if !status.IsValid() {
		handleError(h.log, w, r, domain.NewValidationError("status", "unknown status"))
		return
	}

	groups, err := h.svc.Grouped(r.Context(), status)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": status, "groups": toGroups(groups)})
}

func (h *SuggestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	view, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSuggestionResponse(*view))
}

// Preview shows what approving the suggestion would change. It never writes.
func (h *SuggestionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	p, err := h.svc.Preview(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPreviewResponse(p))
}

func (h *SuggestionHandler) Source(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	src, err := h.svc.Source(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSourceResponse(src))
}

func (h *SuggestionHandler) Changes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	records, err := h.svc.Changes(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"suggestion_id": id, "changes": toChanges(records)})
}

// Decide approves, rejects or corrects a pending suggestion. A refused
// decision is still answered with its outcome body: 409 when the suggestion
// had already left pending, 422 otherwise.
func (h *SuggestionHandler) Decide(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req decideRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out, err := h.svc.Decide(r.Context(), suggestion.DecideInput{
		SuggestionID:  id,
		Decision:      domain.Decision(strings.ToLower(strings.TrimSpace(req.Decision))),
		EditedPayload: req.EditedPayload,
		Reason:        req.Reason,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, outcomeStatus(out, domain.StatusPending), toOutcomeResponse(out))
}

// Rollback undoes an approved suggestion. Status codes follow Decide, with
// 409 meaning the suggestion is not approved.
func (h *SuggestionHandler) Rollback(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out, err := h.svc.Rollback(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, outcomeStatus(out, domain.StatusApproved), toOutcomeResponse(out))
}

// Types lists the registered and actionable suggestion types.
func (h *SuggestionHandler) Types(w http.ResponseWriter, r *http.Request) {
	t := h.svc.Types()
	writeJSON(w, http.StatusOK, typesResponse{Registered: t.Registered, Actionable: t.Actionable})
}

// outcomeStatus picks the HTTP status for an outcome. expected is the status
// the suggestion must be in for the operation to proceed.
func outcomeStatus(o *domain.Outcome, expected domain.SuggestionStatus) int {
	switch {
	case o.Success:
		return http.StatusOK
	case o.Status != expected:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

func queryString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func queryInt(v, field string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.NewValidationError(field, "must be an integer")
	}
	return n, nil
}
