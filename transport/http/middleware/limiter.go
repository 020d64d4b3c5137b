package middleware

import (
	"net"
	"net/http"
	"strconv"

	"litrato/shared"
	"litrato/shared/constant"
	"litrato/transport/http/response"

	"github.com/rs/zerolog/log"
)

const cacheKeyRateLimit = "limiter"

// RateLimit counts requests per client address in fixed windows. chi's
// RealIP runs earlier, so RemoteAddr already reflects proxy headers. When
// redis is unreachable requests are let through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter := a.config.App.RateLimiter
			if !limiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			key := shared.BuildCacheKey(cacheKeyRateLimit, clientAddr(r))

			count, err := a.cache.Incr(r.Context(), key, limiter.WindowSeconds)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)

				return
			}

			remaining := max(0, int64(limiter.MaxRequests)-count)

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limiter.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(remaining, 10))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limiter.WindowSeconds))

			if count > int64(limiter.MaxRequests) {
				w.Header().Set(constant.RequestHeaderRetryAfter, strconv.Itoa(limiter.WindowSeconds))
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

func userAgent(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != "" {
		return ua
	}

	return "unknown"
}
