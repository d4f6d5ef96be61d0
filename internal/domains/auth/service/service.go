package service

import (
	"context"
	"fmt"

	"cowork/config"
	"cowork/infras/jwt"
	"cowork/infras/otel"
	"cowork/internal/domains/auth/model"
	"cowork/internal/domains/auth/model/dto"
	kycModel "cowork/internal/domains/kyc/model"
	kycRepo "cowork/internal/domains/kyc/repository"
	userModel "cowork/internal/domains/user/model"
	userDto "cowork/internal/domains/user/model/dto"
	userRepo "cowork/internal/domains/user/repository"
	"cowork/shared"
	"cowork/shared/cache"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/failure"
	"cowork/shared/password"
	"cowork/shared/timezone"

	"github.com/rs/zerolog/log"
)

const invalidCredentials = "invalid email/mobile or password"

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	RegisterAdmin(ctx context.Context, req dto.RegisterAdminRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	AdminLogin(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
	Logout(ctx context.Context) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	kycRepo    kycRepo.Kyc
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, kycRepo kycRepo.Kyc, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		kycRepo:    kycRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.register(ctx, req, constant.ContextGuest, constant.RoleUser)
}

// RegisterAdmin creates a database backed admin account.
func (s *serviceImpl) RegisterAdmin(ctx context.Context, req dto.RegisterAdminRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RegisterAdmin")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	creator, _ := shared.UserFromContext(ctx)
	if creator == constant.Empty {
		creator = constant.ContextGuest
	}

	return s.register(ctx, req.RegisterRequest, creator, req.AdminLevel())
}

func (s *serviceImpl) register(ctx context.Context, req dto.RegisterRequest, createdBy, level string) error {
	unique := []struct {
		field   string
		value   string
		message string
	}{
		{userModel.FieldEmail, req.Email, "email already registered"},
		{userModel.FieldUsername, req.Username, "username already taken"},
		{userModel.FieldMobile, req.Mobile, "mobile number already registered"},
	}

	for _, u := range unique {
		exists, err := s.userRepo.Exist(ctx, shared.FilterByField(u.field, u.value, userModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if user exists")

			return fmt.Errorf("failed to check if user exists: %w", err)
		}

		if exists {
			return failure.Conflict(u.message) // nolint:wrapcheck
		}
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.userRepo.Insert(ctx, req.ToUserModel(createdBy, hashedPassword, level)); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return failure.FromUniqueViolation(fmt.Errorf("failed to create user: %w", err), "user already registered") // nolint:wrapcheck
	}

	return nil
}

// Login accepts an email or a mobile number as identifier.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.authenticate(ctx, req)
	if err != nil {
		return res, err
	}

	kyc, err := s.kycRepo.Get(ctx, shared.FilterByField(kycModel.FieldUserID, user.ID, kycModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get kyc")

		return res, fmt.Errorf("failed to get kyc: %w", err)
	}

	status, member := kyc.Standing()

	res, err = s.issue(ctx, user)
	if err != nil {
		return res, err
	}

	res.KycStatus = status
	res.MemberType = userDto.MemberType(member)

	return res, nil
}

func (s *serviceImpl) AdminLogin(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AdminLogin")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.authenticate(ctx, req)
	if err != nil {
		return res, err
	}

	if !shared.IsAdmin(user.Level) {
		log.Warn().Str("user_id", user.ID).Msg("admin login attempt by non admin")

		return res, failure.Forbidden("admin access required") // nolint:wrapcheck
	}

	return s.issue(ctx, user)
}

func (s *serviceImpl) authenticate(ctx context.Context, req dto.LoginRequest) (userModel.User, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{Field: userModel.FieldEmail, Value: req.Identifier, Operator: gDto.FilterOperatorEq, Table: userModel.TableName},
			gDto.Filter{Field: userModel.FieldMobile, Value: req.Identifier, Operator: gDto.FilterOperatorEq, Table: userModel.TableName},
		},
	}

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("identifier", req.Identifier).Msg("login attempt with unknown identifier")

		return user, failure.BadRequestFromString(invalidCredentials) // nolint:wrapcheck
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("user_id", user.ID).Msg("login attempt with wrong password")

		return user, failure.BadRequestFromString(invalidCredentials) // nolint:wrapcheck
	}

	if !user.Active {
		return user, failure.BadRequestFromString("user account is deactivated") // nolint:wrapcheck
	}

	if password.NeedsRehash(user.Password) {
		s.rehash(ctx, user.ID, req.Password)
	}

	return user, nil
}

// rehash upgrades a hash made with an older cost. Failures only cost the upgrade.
func (s *serviceImpl) rehash(ctx context.Context, userID, plain string) {
	hashedPassword, err := password.Hash(plain)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("failed to rehash password")

		return
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, userID)

	if err = s.userRepo.Update(ctx, updatedFields, shared.FilterByID(userID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("failed to store rehashed password")
	}
}

func (s *serviceImpl) issue(ctx context.Context, user userModel.User) (res dto.LoginResponse, err error) {
	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Level)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	now := timezone.Now()
	lastLogin := shared.TransformFields(dto.UpdateLastLoginRequest{LastLogin: now}, user.ID)

	if err = s.userRepo.Update(ctx, lastLogin, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	user.LastLogin = &now

	res.FromTokenPair(tokenPair)
	res.Role = user.Level
	res.User.FromModel(user)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenPair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)
	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if err = password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, userID)

	if err = s.userRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// Logout revokes the current access token until it would have expired anyway.
func (s *serviceImpl) Logout(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenID, _ := ctx.Value(constant.ContextKeyTokenID).(string)
	if tokenID == constant.Empty {
		return failure.Unauthorized("missing token") // nolint:wrapcheck
	}

	ttl := s.cfg.JWT.AccessExpireMin * constant.SecondsPerMinute

	if err = s.cache.Save(ctx, shared.BuildCacheKey(model.CacheRevokedToken, tokenID), true, ttl); err != nil {
		log.Error().Err(err).Msg("failed to revoke token")

		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}
