package httpbody

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const ctxKeyResponseID ctxKey = iota

// NewResponseID returns a fresh identifier for one response serialization,
// suitable for correlating log lines around a single WriteResponse call.
func NewResponseID() string {
	return uuid.NewString()
}

// WithResponseID returns a new context that carries a response ID.
func WithResponseID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyResponseID, id)
}

// ResponseIDFrom extracts the response ID from ctx.
func ResponseIDFrom(ctx context.Context) (string, bool) {
	v := ctx.Value(ctxKeyResponseID)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
