package dto

import (
	"time"

	"cowork/infras/jwt"
	kycModel "cowork/internal/domains/kyc/model"
	roomModel "cowork/internal/domains/meetingroom/model"
	userModel "cowork/internal/domains/user/model"
	userDto "cowork/internal/domains/user/model/dto"
	"cowork/shared/constant"
	gModel "cowork/shared/model"
	"cowork/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username        string `json:"username"         validate:"required,min=3,max=50"`
	Email           string `json:"email"            validate:"required,email"`
	Mobile          string `json:"mobile"           validate:"required,min=10,max=15"`
	Password        string `json:"password"         validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

func (r *RegisterRequest) ToUserModel(createdBy, hashedPassword, level string) userModel.User {
	return userModel.User{
		ID:       uuid.NewString(),
		Username: r.Username,
		Email:    r.Email,
		Mobile:   r.Mobile,
		Password: hashedPassword,
		Level:    level,
		Active:   true,
		Metadata: gModel.NewMetadata(createdBy, timezone.Now()),
	}
}

type RegisterAdminRequest struct {
	RegisterRequest
	Level string `json:"level" validate:"omitempty,oneof=admin superadmin"`
}

// AdminLevel defaults to admin.
func (r *RegisterAdminRequest) AdminLevel() string {
	if r.Level == constant.Empty {
		return constant.RoleAdmin
	}

	return r.Level
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	TokenType    string               `json:"token_type"`
	ExpiresIn    int64                `json:"expires_in"`
	Role         string               `json:"role"`
	MemberType   roomModel.MemberType `json:"member_type,omitempty"`
	KycStatus    kycModel.Status      `json:"kyc_status,omitempty"`
	User         userDto.UserResponse `json:"user"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}
