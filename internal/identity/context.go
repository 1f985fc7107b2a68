package identity

import "context"

type ctxKey string

const (
	ctxUserIDKey ctxKey = "user_id"
	ctxRoleKey   ctxKey = "role"
	ctxClientKey ctxKey = "client"
)

const (
	RoleAdmin    = "admin"
	RoleExternal = "external"
)

// Client describes where a request came from. It is recorded on spam logs.
type Client struct {
	IP        string
	UserAgent string
}

func WithUser(ctx context.Context, userID string, role string) context.Context {
	ctx = context.WithValue(ctx, ctxUserIDKey, userID)
	ctx = context.WithValue(ctx, ctxRoleKey, role)
	return ctx
}

func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, ctxClientKey, c)
}

func UserID(ctx context.Context) (string, bool) {
	v := ctx.Value(ctxUserIDKey)
	id, ok := v.(string)
	return id, ok
}

func Role(ctx context.Context) (string, bool) {
	v := ctx.Value(ctxRoleKey)
	role, ok := v.(string)
	return role, ok
}

func ClientInfo(ctx context.Context) Client {
	c, _ := ctx.Value(ctxClientKey).(Client)
	return c
}

func IsAuthenticated(ctx context.Context) bool {
	id, ok := UserID(ctx)
	return ok && id != ""
}

func IsAdmin(ctx context.Context) bool {
	role, _ := Role(ctx)
	return role == RoleAdmin
}

func IsExternal(ctx context.Context) bool {
	role, _ := Role(ctx)
	return role == RoleExternal
}
