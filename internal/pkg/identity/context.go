// Package identity carries the authenticated principal through a
// context.Context.
package identity

import (
	"context"

	"cluster-dashboard-backend/internal/model"
)

type key int

const (
	identityKey key = iota
	clientKey
)

func WithIdentity(ctx context.Context, id *model.Identity) context.Context {
	if id == nil {
		return ctx
	}
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns nil for unauthenticated requests.
func FromContext(ctx context.Context) *model.Identity {
	if id, ok := ctx.Value(identityKey).(*model.Identity); ok {
		return id
	}
	return nil
}

// Actor names the principal for logs and events.
func Actor(ctx context.Context) string {
	if id := FromContext(ctx); id != nil {
		return id.Username
	}
	return "anonymous"
}

func WithClient(ctx context.Context, addr string) context.Context {
	if addr == "" {
		return ctx
	}
	return context.WithValue(ctx, clientKey, addr)
}

// Client is the remote address the request came from, or "" when unknown.
func Client(ctx context.Context) string {
	addr, _ := ctx.Value(clientKey).(string)
	return addr
}
