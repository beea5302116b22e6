package httpapi

import (
	"context"
	"net/http"
	"time"
)

// serverBaseCtx is canceled by serve when shutdown gives up waiting, so
// analyses still calling the models stop. Background until SetBaseContext.
var serverBaseCtx = context.Background()

// SetBaseContext installs the shutdown context. nil restores Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// joinContexts derives from b (keeping its values, e.g. the request id) and
// is also canceled when a is done. cancel must be called.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(b)
	stop := context.AfterFunc(a, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// analysisContext bounds one /analyze call by the request, the server base
// context and the configured analyze timeout.
func analysisContext(r *http.Request) (context.Context, context.CancelFunc) {
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	if analyzeTimeout <= 0 {
		return ctx, cancel
	}
	tctx, tcancel := context.WithTimeout(ctx, time.Duration(analyzeTimeout)*time.Second)
	return tctx, func() {
		tcancel()
		cancel()
	}
}
