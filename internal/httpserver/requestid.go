package httpserver

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

var reqIDKey ctxKey

func withReqID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, reqIDKey, id)
}

func reqID(ctx context.Context) string {
	if v, ok := ctx.Value(reqIDKey).(string); ok {
		return v
	}
	return ""
}

// requestID keeps a caller-supplied X-Request-ID when it parses as a UUID,
// otherwise it mints a new one.
func requestID(incoming string) string {
	if id, err := uuid.Parse(incoming); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
