package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"go.uber.org/mock/gomock"

	"cowork/config"
	"cowork/infras/jwt"
	jwtMocks "cowork/infras/jwt/mocks"
	"cowork/infras/otel/mocks"
	"cowork/internal/domains/auth/model/dto"
	"cowork/internal/domains/auth/service"
	kycMocks "cowork/internal/domains/kyc/mocks"
	kycModel "cowork/internal/domains/kyc/model"
	roomModel "cowork/internal/domains/meetingroom/model"
	userMocks "cowork/internal/domains/user/mocks"
	userModel "cowork/internal/domains/user/model"
	cacheMocks "cowork/shared/cache/mocks"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/failure"
	"cowork/shared/password"
)

// bcrypt hash of "password"
const hashed = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

type fixture struct {
	users *userMocks.MockUser
	kycs  *kycMocks.MockKyc
	cache *cacheMocks.MockRedisCache
	jwt   *jwtMocks.MockJWT
	svc   service.Auth
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.JWT.AccessExpireMin = 60

	f := &fixture{
		users: userMocks.NewMockUser(ctrl),
		kycs:  kycMocks.NewMockKyc(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		jwt:   jwtMocks.NewMockJWT(ctrl),
	}

	f.svc = service.New(f.users, f.kycs, cfg, f.cache, mocks.NewOtel(), f.jwt)

	return f
}

func member(level string) userModel.User {
	return userModel.User{
		ID:       "user-1",
		Username: "asha",
		Email:    "asha@example.com",
		Mobile:   "9876543210",
		Password: hashed,
		Level:    level,
		Active:   true,
	}
}

func tokens() *jwt.TokenPair {
	return &jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer", ExpiresIn: 3600}
}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{
		Username:        "asha",
		Email:           "asha@example.com",
		Mobile:          "9876543210",
		Password:        "password123",
		ConfirmPassword: "password123",
	}

	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "new user",
			setupMock: func(f *fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(3)
				f.users.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u userModel.User) error {
						assert.Equal(t, constant.RoleUser, u.Level)
						assert.True(t, u.Active)
						assert.NoError(t, password.Verify("password123", u.Password))

						return nil
					})
			},
		},
		{
			name: "email already registered",
			setupMock: func(f *fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "mobile already registered",
			setupMock: func(f *fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "database error",
			setupMock: func(f *fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Register(context.Background(), req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestAuthService_RegisterAdmin(t *testing.T) {
	f := newFixture(t)

	f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(3)
	f.users.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u userModel.User) error {
			assert.Equal(t, constant.RoleAdmin, u.Level)
			assert.Equal(t, "root-1", u.CreatedBy)

			return nil
		})

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "root-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleSuperAdmin)

	err := f.svc.RegisterAdmin(ctx, dto.RegisterAdminRequest{RegisterRequest: dto.RegisterRequest{
		Username: "ops",
		Email:    "ops@example.com",
		Mobile:   "9000000000",
		Password: "password123",
	}})

	require.NoError(t, err)
}

func TestAuthService_Login(t *testing.T) {
	weak, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name           string
		req            dto.LoginRequest
		setupMock      func(f *fixture)
		wantCode       int
		wantMemberType roomModel.MemberType
		wantKycStatus  kycModel.Status
	}{
		{
			name: "approved kyc logs in as member",
			req:  dto.LoginRequest{Identifier: "asha@example.com", Password: "password"},
			setupMock: func(f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(member(constant.RoleUser), nil)
				f.kycs.EXPECT().Get(gomock.Any(), gomock.Any()).Return(kycModel.Kyc{ID: "kyc-1", Status: kycModel.StatusApproved}, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "user-1", "asha@example.com", constant.RoleUser).Return(tokens(), nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantMemberType: roomModel.MemberTypeMember,
			wantKycStatus:  kycModel.StatusApproved,
		},
		{
			name: "mobile login without kyc",
			req:  dto.LoginRequest{Identifier: "9876543210", Password: "password"},
			setupMock: func(f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(member(constant.RoleUser), nil)
				f.kycs.EXPECT().Get(gomock.Any(), gomock.Any()).Return(kycModel.Kyc{}, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tokens(), nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("ignored"))
			},
			wantMemberType: roomModel.MemberTypeNonMember,
			wantKycStatus:  kycModel.StatusNone,
		},
		{
			name: "weak hash is upgraded on login",
			req:  dto.LoginRequest{Identifier: "asha@example.com", Password: "password"},
			setupMock: func(f *fixture) {
				legacy := member(constant.RoleUser)
				legacy.Password = string(weak)

				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(legacy, nil)
				f.users.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						hash, ok := fields["password"].(string)
						require.True(t, ok)
						assert.False(t, password.NeedsRehash(hash))
						assert.NoError(t, password.Verify("password", hash))

						return nil
					})
				f.kycs.EXPECT().Get(gomock.Any(), gomock.Any()).Return(kycModel.Kyc{}, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tokens(), nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantMemberType: roomModel.MemberTypeNonMember,
			wantKycStatus:  kycModel.StatusNone,
		},
		{
			name: "unknown identifier",
			req:  dto.LoginRequest{Identifier: "nobody@example.com", Password: "password"},
			setupMock: func(f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Identifier: "asha@example.com", Password: "wrong"},
			setupMock: func(f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(member(constant.RoleUser), nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Identifier: "asha@example.com", Password: "password"},
			setupMock: func(f *fixture) {
				inactive := member(constant.RoleUser)
				inactive.Active = false

				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "token generation fails",
			req:  dto.LoginRequest{Identifier: "asha@example.com", Password: "password"},
			setupMock: func(f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(member(constant.RoleUser), nil)
				f.kycs.EXPECT().Get(gomock.Any(), gomock.Any()).Return(kycModel.Kyc{}, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("jwt error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, "refresh-token", res.RefreshToken)
			assert.Equal(t, constant.RoleUser, res.Role)
			assert.Equal(t, tt.wantMemberType, res.MemberType)
			assert.Equal(t, tt.wantKycStatus, res.KycStatus)
			assert.Equal(t, "user-1", res.User.ID)
			assert.NotNil(t, res.User.LastLogin)
		})
	}
}

func TestAuthService_AdminLogin(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name:  "admin",
			level: constant.RoleAdmin,
			setupMock: func(f *fixture) {
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "user-1", gomock.Any(), constant.RoleAdmin).Return(tokens(), nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:  "superadmin",
			level: constant.RoleSuperAdmin,
			setupMock: func(f *fixture) {
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), constant.RoleSuperAdmin).Return(tokens(), nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "regular user",
			level:     constant.RoleUser,
			setupMock: func(*fixture) {},
			wantCode:  http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(member(tt.level), nil)
			tt.setupMock(f)

			res, err := f.svc.AdminLogin(context.Background(), dto.LoginRequest{Identifier: "asha@example.com", Password: "password"})

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.level, res.Role)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "valid refresh token",
			setupMock: func(f *fixture) {
				f.jwt.EXPECT().RefreshTokens(gomock.Any(), "refresh-token").Return(tokens(), nil)
			},
		},
		{
			name: "expired refresh token",
			setupMock: func(f *fixture) {
				f.jwt.EXPECT().RefreshTokens(gomock.Any(), "refresh-token").Return(nil, errors.New("token expired"))
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "password changed",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "password456"},
			setupMock: func(f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(member(constant.RoleUser), nil)
				f.users.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						hash, _ := fields[userModel.FieldPassword].(string)
						assert.NoError(t, password.Verify("password456", hash))
						assert.Equal(t, "user-1", fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name: "current password wrong",
			req:  dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "password456"},
			setupMock: func(f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(member(constant.RoleUser), nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "user gone",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "password456"},
			setupMock: func(f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)

			err := f.svc.ChangePassword(ctx, tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("token revoked for the access lifetime", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:token-1", true, 3600).Return(nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyTokenID, "token-1")

		require.NoError(t, f.svc.Logout(ctx))
	})

	t.Run("no token in context", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Logout(context.Background())

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}
