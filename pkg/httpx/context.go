package httpx

import (
	"context"

	"github.com/aussiebroadwan/notetab/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID   ctxKey = "user_id"
	CtxKeyTenantID ctxKey = "tenant_id"
	CtxKeyClaims   ctxKey = "claims"
)

// ClaimsFromContext returns the verified claims attached by AuthnMiddleware.
// Handlers behind the middleware can rely on ok being true; claims are passed
// through the context rather than any shared mutable state.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

func userIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
