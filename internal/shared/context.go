package shared

import "context"

type callIDContextKey struct{}

// ContextWithCallID stores the dispatch call correlation ID in context.
func ContextWithCallID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, callIDContextKey{}, id)
}

// CallIDFromContext extracts the call correlation ID, or "" when absent.
func CallIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(callIDContextKey{}).(string)
	return id
}
