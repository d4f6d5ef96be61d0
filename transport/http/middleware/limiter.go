package middleware

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"cowork/shared"
	"cowork/shared/cache"
	"cowork/shared/constant"
	"cowork/transport/http/response"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
	bucketGeneral     = "api"
	bucketCredentials = "auth"
)

// Credential endpoints share a much smaller bucket to slow down password guessing.
var credentialPaths = map[string]bool{
	"/v1/auth/login":         true,
	"/v1/auth/admin/login":   true,
	"/v1/auth/register":      true,
	"/v1/auth/refresh-token": true,
}

// RateLimit counts requests per client in fixed windows kept in redis. A cache
// outage lets traffic through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limits := a.config.App.RateLimiter
			if !limits.Enable {
				next.ServeHTTP(w, r)

				return
			}

			bucket, maxReqs := bucketGeneral, limits.MaxRequests
			if r.Method == http.MethodPost && credentialPaths[strings.TrimSuffix(r.URL.Path, "/")] {
				bucket, maxReqs = bucketCredentials, limits.AuthMaxRequests
			}

			key := shared.BuildCacheKey(cacheKeyRateLimit, bucket, a.getClientIP(r), a.getUA(r))

			count, err := a.hit(r, key, limits.WindowSeconds)
			if err != nil {
				log.Warn().Err(err).Str("bucket", bucket).Msg("Rate limiter unavailable, letting request through.")
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, maxReqs-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limits.WindowSeconds))

			if count > maxReqs {
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// hit increments the counter for key and returns the new value.
func (a *appMiddleware) hit(r *http.Request, key string, windowSecs int) (int, error) {
	var count int

	err := a.cache.Get(r.Context(), key, &count)

	switch {
	case errors.Is(err, cache.Nil):
		count = 1
	case err != nil:
		return 0, err
	default:
		count++
	}

	if err := a.cache.Save(r.Context(), key, count, windowSecs); err != nil {
		return 0, err
	}

	return count, nil
}

func (a *appMiddleware) getUA(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != "" {
		return ua
	}

	return "unknown"
}

// getClientIP relies on chi's RealIP having already copied proxy headers into RemoteAddr.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
