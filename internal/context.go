package internal

import (
	"context"
	"time"
)

// DefaultStoreTimeout bounds the store work a single request may start.
const DefaultStoreTimeout = 5 * time.Second

type callerKey struct{}

// Caller is the admin whose Basic credentials let the request through.
type Caller struct {
	UID      string
	Username string
}

func ContextWithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFromContext reports the authenticated caller. Requests on unguarded
// routes, or with the guard switched off, have none.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	if ctx == nil {
		return Caller{}, false
	}
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok
}

// WithTimeout falls back to DefaultStoreTimeout when d is not positive.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultStoreTimeout
	}
	return context.WithTimeout(ctx, d)
}
