// Package identity carries the authenticated caller on a request context.
package identity

import "context"

// Principal identifies whoever invoked an operation.
type Principal string

// Anonymous is reported for calls that carry no authenticated caller.
const Anonymous Principal = "anonymous"

type ctxKey struct{}

func WithCaller(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Caller returns the principal stored by WithCaller, or Anonymous.
func Caller(ctx context.Context) Principal {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	if !ok || p == "" {
		return Anonymous
	}
	return p
}
