package httpx

import (
	"context"

	"github.com/SGK112/CRM-sub005/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID      ctxKey = "user_id"
	CtxKeyWorkspaceID ctxKey = "workspace_id"
	CtxKeyRole        ctxKey = "role"
	CtxKeyScopes      ctxKey = "scopes"
	CtxKeyClaims      ctxKey = "claims"
)

// ContextWithClaims stores the verified token claims for downstream handlers.
func ContextWithClaims(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyWorkspaceID, c.WorkspaceID)
	ctx = context.WithValue(ctx, CtxKeyRole, c.Role)
	ctx = context.WithValue(ctx, CtxKeyScopes, c.Scopes)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

func UserIDFromCtx(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyUserID).(string)
	return v
}

// WorkspaceIDFromCtx returns the workspace the bearer token is bound to.
// Handlers never take the workspace from the request body.
func WorkspaceIDFromCtx(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyWorkspaceID).(string)
	return v
}

func RoleFromCtx(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyRole).(string)
	return v
}

func ClaimsFromCtx(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

func scopesFromCtx(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyScopes).([]string); ok {
		return v
	}
	return nil
}
