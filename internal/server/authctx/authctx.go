package authctx

import "context"

type contextKey string

const userContextKey contextKey = "currentUser"

// CurrentUser is the authenticated admin behind a request.
type CurrentUser struct {
	Username string
}

func WithCurrentUser(ctx context.Context, user CurrentUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func FromContext(ctx context.Context) *CurrentUser {
	val, ok := ctx.Value(userContextKey).(CurrentUser)
	if !ok {
		return nil
	}
	return &val
}
