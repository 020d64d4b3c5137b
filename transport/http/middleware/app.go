package middleware

import (
	"fmt"
	"net/http"

	"litrato/config"
	"litrato/infras/otel"
	"litrato/shared/cache"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.RedisCache
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		cache:  cache,
	}
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		spanName := fmt.Sprintf("%s %s", r.Method, r.URL.Path)

		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       r.URL.Path,
			"http.method":     r.Method,
			"http.user_agent": userAgent(r),
			"http.host":       r.Host,
			"http.source":     clientAddr(r),
			"http.request_id": chiMiddleware.GetReqID(ctx),
		})

		next.ServeHTTP(ww, r.WithContext(ctx))

		if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
			scope.SetAttribute("http.route", routeCtx.RoutePattern())
		}

		scope.SetAttribute("http.status_code", ww.Status())

		if ww.Status() >= http.StatusInternalServerError {
			scope.TraceError(fmt.Errorf("%s responded %d", spanName, ww.Status()))
		}
	})
}
