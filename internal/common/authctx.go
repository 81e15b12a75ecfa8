package common

import "context"

type actorKey struct{}

// WithActor records the authenticated admin subject for logging.
func WithActor(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, actorKey{}, subject)
}

// Actor returns the admin subject recorded by WithActor.
func Actor(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(actorKey{}).(string)
	return subject, ok && subject != ""
}
