package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/heartmarshall/studioops-backend/pkg/ctxutil"
)

// problem is the error body shared with the REST handlers.
type problem struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeProblem(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(problem{Error: msg, RequestID: ctxutil.RequestIDFromCtx(r.Context())}) //nolint:errcheck
}
