package service

import "context"

// Origin describes who sent the request being served. It is attached to the
// request context by the HTTP layer and copied into audit events.
type Origin struct {
	Path     string
	RemoteIP string
	Username string
}

type originKey struct{}

func WithOrigin(ctx context.Context, o Origin) context.Context {
	return context.WithValue(ctx, originKey{}, o)
}

func OriginFrom(ctx context.Context) Origin {
	o, _ := ctx.Value(originKey{}).(Origin)
	return o
}
