package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/studioops-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// Auth puts the reviewer id from a bearer token into the context. Requests
// without a token pass through anonymously; a bad token is rejected.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			reviewerID, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				writeProblem(w, r, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			if sw, ok := w.(*statusWriter); ok {
				sw.reviewer = reviewerID.String()
			}
			next.ServeHTTP(w, r.WithContext(ctxutil.WithReviewerID(r.Context(), reviewerID)))
		})
	}
}

// RequireReviewer rejects anonymous requests. It must run after Auth.
func RequireReviewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.ReviewerIDFromCtx(r.Context()); !ok {
			w.Header().Set("WWW-Authenticate", `Bearer realm="studioops"`)
			writeProblem(w, r, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
