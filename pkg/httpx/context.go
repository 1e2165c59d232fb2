package httpx

import "context"

type ctxKey string

const CtxKeyUserID ctxKey = "user_id"

// WithUserID stores the authenticated principal id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, userID)
}

// UserID returns the authenticated principal id, or "" for anonymous
// requests.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(CtxKeyUserID).(string)
	return id
}
