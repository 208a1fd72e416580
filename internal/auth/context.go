package auth

import "context"

type contextKey struct{}

// AuthContext identifies the signed-in family member for a request.
type AuthContext struct {
	ExternalUserID string
	Email          string
	SessionID      int64
	Token          string
}

func WithAuth(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(contextKey{}).(AuthContext)
	return ac, ok
}

func ExternalUserID(ctx context.Context) string {
	ac, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return ac.ExternalUserID
}
