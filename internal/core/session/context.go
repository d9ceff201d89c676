package session

import "context"

type ctxKey struct{}

// WithID attaches a session id to ctx so code far from the HTTP layer, such
// as the backend client's auth-rejected hook, can find the session.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IDFrom returns the session id attached by WithID, if any.
func IDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}
