package ctxutil

import (
	"context"
	"time"
)

// Private key type so values cannot collide with other packages.
type key int

const (
	keyActorID key = iota
	keyRequestID
	keyOpName
)

// WithActorID carries the authenticated user's id through a request.
func WithActorID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, keyActorID, id)
}

func ActorID(ctx context.Context) (int64, bool) {
	v := ctx.Value(keyActorID)
	if v == nil {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// WithRequestID tags a request for log correlation.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

func RequestID(ctx context.Context) (string, bool) {
	v := ctx.Value(keyRequestID)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// WithOp names the operation for logs and traces.
func WithOp(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, keyOpName, name)
}

func Op(ctx context.Context) (string, bool) {
	v := ctx.Value(keyOpName)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

var DefaultDBTimeout = 5 * time.Second

// WithDBTimeout caps a store call, respecting a shorter parent deadline.
func WithDBTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := parent.Deadline(); ok {
		if remain := time.Until(dl); remain < DefaultDBTimeout {
			return context.WithTimeout(parent, remain)
		}
	}
	return context.WithTimeout(parent, DefaultDBTimeout)
}
