package audit

import "context"

type actorKey struct{}

// WithActor adjunta al contexto el usuario que origina la operación.
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFromContext devuelve el usuario del contexto o "" si no hay.
func ActorFromContext(ctx context.Context) string {
	s, _ := ctx.Value(actorKey{}).(string)
	return s
}
