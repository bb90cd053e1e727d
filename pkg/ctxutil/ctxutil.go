// Package ctxutil carries request-scoped values: the request id set by the
// RequestID middleware and the reviewer id taken from a verified token.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const (
	reviewerIDKey ctxKey = iota
	requestIDKey
)

// WithReviewerID stores the id of the reviewer acting on suggestions.
func WithReviewerID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, reviewerIDKey, id)
}

// ReviewerIDFromCtx returns the reviewer id. ok is false when none is set or
// the id is uuid.Nil, which decisions treat as an anonymous actor.
func ReviewerIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(reviewerIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx returns "" outside a request.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
