package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"litrato/config"
	"litrato/infras/jwt"
	"litrato/infras/otel"
	"litrato/internal/domains/auth/model/dto"
	userModel "litrato/internal/domains/user/model"
	userRepo "litrato/internal/domains/user/repository"
	"litrato/shared"
	"litrato/shared/constant"
	"litrato/shared/failure"
	"litrato/shared/password"
	"litrato/shared/timezone"

	"github.com/rs/zerolog/log"
)

var (
	errEmailTaken         = failure.BadRequestFromString("email already registered")
	errInvalidCredentials = failure.BadRequestFromString("invalid email or password")
	errDeactivated        = failure.Unauthorized("user account is deactivated")
	errInvalidRefresh     = failure.Unauthorized("invalid refresh token")
	errWrongPassword      = failure.BadRequestFromString("current password is incorrect")
	errUserNotFound       = failure.NotFound("user not found")
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.TokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

// Register always creates a customer. Staff and admin accounts are opened by
// an admin through the users endpoints.
func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(&err)

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if existing.ID != constant.Empty {
		return errEmailTaken
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.userRepo.Insert(ctx, req.ToUserModel(hashedPassword)); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, errInvalidCredentials
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, errInvalidCredentials
	}

	if !user.Active {
		return res, errDeactivated
	}

	res, err = s.issue(ctx, user)
	if err != nil {
		return res, err
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}

	err = s.userRepo.Update(ctx, shared.TransformFields(lastLogin, user.ID), shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")

		return res, fmt.Errorf("failed to update last login: %w", err)
	}

	return res, nil
}

// RefreshToken issues a new pair for the owner of a valid refresh token.
// The user is read again so a role change or a deactivation takes effect
// at the next refresh.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(&err)

	claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		if errors.Is(err, jwt.ErrExpiredToken) {
			return res, failure.Unauthorized("refresh token has expired")
		}

		return res, errInvalidRefresh
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(claims.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, errInvalidRefresh
	}

	if !user.Active {
		return res, errDeactivated
	}

	return s.issue(ctx, user)
}

// ChangePassword acts on the caller's own account.
func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return errUserNotFound
	}

	if err = password.Verify(req.CurrentPassword, user.Password); err != nil {
		return errWrongPassword
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

func (s *serviceImpl) issue(ctx context.Context, user userModel.User) (res dto.TokenResponse, err error) {
	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Level)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair, user.Level)

	return res, nil
}
