package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cowork/config"
	"cowork/infras/jwt"
	jwtMocks "cowork/infras/jwt/mocks"
	otelMocks "cowork/infras/otel/mocks"
	"cowork/permissions"
	"cowork/shared/cache"
	cacheMocks "cowork/shared/cache/mocks"
	"cowork/shared/constant"
	"cowork/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testPermissions = `{"endpoints":[
	{"path":"/v1/spaces/","method":"GET","skip":true,"permissions":[]},
	{"path":"/v1/spaces/","method":"POST","permissions":["admin","superadmin"]},
	{"path":"/v1/bookings/{id}","method":"GET","permissions":["user","admin","superadmin"]}
]}`

func newRouter(t *testing.T, validator jwt.JWT, redisCache cache.RedisCache) http.Handler {
	t.Helper()

	data, err := permissions.Parse([]byte(testPermissions))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	auth := middleware.NewAuthRoleMiddleware(validator, otelMocks.NewOtel(), data, cfg, redisCache)

	echo := func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		w.Header().Set("X-User", userID)
		w.WriteHeader(http.StatusNoContent)
	}

	mux := chi.NewRouter()
	mux.Group(func(r chi.Router) {
		r.Use(auth.APIKey)
		r.Use(auth.Auth)
		r.Use(auth.RBAC)

		r.Route("/v1/spaces", func(r chi.Router) {
			r.Get("/", echo)
			r.Post("/", echo)
		})
		r.Get("/v1/bookings/{id}", echo)
	})

	return mux
}

func TestAuthRole(t *testing.T) {
	userClaims := &jwt.Claims{UserID: "user-1", Email: "asha@example.com", Role: constant.RoleUser, TokenID: "tok-1"}
	adminClaims := &jwt.Claims{UserID: "admin-1", Email: "ops@example.com", Role: constant.RoleAdmin, TokenID: "tok-2"}

	tests := []struct {
		name     string
		method   string
		path     string
		header   map[string]string
		setup    func(j *jwtMocks.MockJWT, c *cacheMocks.MockRedisCache)
		wantCode int
		wantUser string
	}{
		{
			name:     "public route needs no token",
			method:   http.MethodGet,
			path:     "/v1/spaces/",
			wantCode: http.StatusNoContent,
		},
		{
			name:     "missing token",
			method:   http.MethodGet,
			path:     "/v1/bookings/b-1",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed header",
			method:   http.MethodGet,
			path:     "/v1/bookings/b-1",
			header:   map[string]string{"Authorization": "Token abc"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			method: http.MethodGet,
			path:   "/v1/bookings/b-1",
			header: map[string]string{"Authorization": "Bearer expired"},
			setup: func(j *jwtMocks.MockJWT, _ *cacheMocks.MockRedisCache) {
				j.EXPECT().ValidateToken(gomock.Any(), "expired", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "user reads own booking",
			method: http.MethodGet,
			path:   "/v1/bookings/b-1",
			header: map[string]string{"Authorization": "Bearer good"},
			setup: func(j *jwtMocks.MockJWT, c *cacheMocks.MockRedisCache) {
				j.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).Return(userClaims, nil)
				c.EXPECT().Get(gomock.Any(), "auth:revoked:tok-1", gomock.Any()).Return(cache.Nil)
			},
			wantCode: http.StatusNoContent,
			wantUser: "user-1",
		},
		{
			name:   "revoked token",
			method: http.MethodGet,
			path:   "/v1/bookings/b-1",
			header: map[string]string{"Authorization": "Bearer good"},
			setup: func(j *jwtMocks.MockJWT, c *cacheMocks.MockRedisCache) {
				j.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).Return(userClaims, nil)
				c.EXPECT().Get(gomock.Any(), "auth:revoked:tok-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*bool) = true

						return nil
					})
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "user cannot create spaces",
			method: http.MethodPost,
			path:   "/v1/spaces/",
			header: map[string]string{"Authorization": "Bearer good"},
			setup: func(j *jwtMocks.MockJWT, c *cacheMocks.MockRedisCache) {
				j.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).Return(userClaims, nil)
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "admin creates spaces",
			method: http.MethodPost,
			path:   "/v1/spaces/",
			header: map[string]string{"Authorization": "Bearer admin"},
			setup: func(j *jwtMocks.MockJWT, c *cacheMocks.MockRedisCache) {
				j.EXPECT().ValidateToken(gomock.Any(), "admin", jwt.AccessToken).Return(adminClaims, nil)
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
			},
			wantCode: http.StatusNoContent,
			wantUser: "admin-1",
		},
		{
			name:     "internal api key bypasses auth",
			method:   http.MethodPost,
			path:     "/v1/spaces/",
			header:   map[string]string{"X-API-Key": "internal-key"},
			wantCode: http.StatusNoContent,
		},
		{
			name:     "wrong api key",
			method:   http.MethodPost,
			path:     "/v1/spaces/",
			header:   map[string]string{"X-API-Key": "guess"},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			validator := jwtMocks.NewMockJWT(ctrl)
			redisCache := cacheMocks.NewMockRedisCache(ctrl)

			if tt.setup != nil {
				tt.setup(validator, redisCache)
			}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.header {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			newRouter(t, validator, redisCache).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantUser, rec.Header().Get("X-User"))
		})
	}
}
