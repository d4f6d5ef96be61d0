package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cowork/config"
	otelMocks "cowork/infras/otel/mocks"
	"cowork/shared/cache"
	cacheMocks "cowork/shared/cache/mocks"
	"cowork/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		disabled      bool
		method        string
		path          string
		setup         func(c *cacheMocks.MockRedisCache)
		wantCode      int
		wantRemaining string
	}{
		{
			name:     "disabled",
			disabled: true,
			method:   http.MethodGet,
			path:     "/v1/spaces/",
			wantCode: http.StatusOK,
		},
		{
			name:   "first request opens a window",
			method: http.MethodGet,
			path:   "/v1/spaces/",
			setup: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), "limiter:api:192.0.2.1:probe", gomock.Any()).Return(cache.Nil)
				c.EXPECT().Save(gomock.Any(), "limiter:api:192.0.2.1:probe", 1, 60).Return(nil)
			},
			wantCode:      http.StatusOK,
			wantRemaining: "4",
		},
		{
			name:   "login uses the credential bucket",
			method: http.MethodPost,
			path:   "/v1/auth/login",
			setup: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), "limiter:auth:192.0.2.1:probe", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*int) = 2

						return nil
					})
				c.EXPECT().Save(gomock.Any(), "limiter:auth:192.0.2.1:probe", 3, 60).Return(nil)
			},
			wantCode:      http.StatusTooManyRequests,
			wantRemaining: "0",
		},
		{
			name:   "cache outage lets traffic through",
			method: http.MethodGet,
			path:   "/v1/spaces/",
			setup: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			redisCache := cacheMocks.NewMockRedisCache(ctrl)

			if tt.setup != nil {
				tt.setup(redisCache)
			}

			cfg := &config.Config{}
			cfg.App.RateLimiter.Enable = !tt.disabled
			cfg.App.RateLimiter.MaxRequests = 5
			cfg.App.RateLimiter.AuthMaxRequests = 2
			cfg.App.RateLimiter.WindowSeconds = 60

			app := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, redisCache)
			handler := app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.RemoteAddr = "192.0.2.1:52100"
			req.Header.Set("User-Agent", "probe")

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get("X-RateLimit-Remaining"))
		})
	}
}
