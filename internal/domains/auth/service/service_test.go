package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"litrato/config"
	"litrato/infras/jwt"
	jwtMocks "litrato/infras/jwt/mocks"
	"litrato/infras/otel/mocks"
	"litrato/internal/domains/auth/model/dto"
	"litrato/internal/domains/auth/service"
	userMocks "litrato/internal/domains/user/mocks"
	userModel "litrato/internal/domains/user/model"
	"litrato/shared/constant"
	gDto "litrato/shared/dto"
	"litrato/shared/failure"
	"litrato/shared/password"
)

type fixture struct {
	users *userMocks.MockUser
	jwt   *jwtMocks.MockJWT
	svc   service.Auth
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		users: userMocks.NewMockUser(ctrl),
		jwt:   jwtMocks.NewMockJWT(ctrl),
	}
	f.svc = service.New(f.users, &config.Config{}, mocks.NewOtel(), f.jwt)

	return f
}

func account(t *testing.T, level string, active bool) userModel.User {
	t.Helper()

	hashed, err := password.Hash("booth-pass-1")
	require.NoError(t, err)

	return userModel.User{
		ID:       "u1",
		Email:    "dewi@example.com",
		Password: hashed,
		Level:    level,
		Active:   active,
	}
}

var pair = &jwt.TokenPair{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 900}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{
		Email:    "Dewi@Example.com",
		Password: "booth-pass-1",
		FullName: "Dewi",
		Phone:    "0812",
	}

	t.Run("creates a customer", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().GetByEmail(gomock.Any(), req.Email).Return(userModel.User{}, nil)
		f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user userModel.User) error {
			assert.Equal(t, constant.RoleCustomer, user.Level)
			assert.Equal(t, "dewi@example.com", user.Email)
			assert.NoError(t, password.Verify("booth-pass-1", user.Password))

			return nil
		})

		require.NoError(t, f.svc.Register(context.Background(), req))
	})

	t.Run("email taken", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u9"}, nil)

		err := f.svc.Register(context.Background(), req)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("lookup fails", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("database error"))

		err := f.svc.Register(context.Background(), req)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("success records last login", func(t *testing.T) {
		f := newFixture(t)
		user := account(t, constant.RoleStaff, true)

		f.users.EXPECT().GetByEmail(gomock.Any(), "dewi@example.com").Return(user, nil)
		f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "u1", user.Email, constant.RoleStaff).Return(pair, nil)
		f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
			assert.Contains(t, fields, userModel.FieldLastLogin)

			_, args := filter.GetWhereClause()
			assert.Equal(t, "u1", args[userModel.FieldID])

			return nil
		})

		res, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "dewi@example.com", Password: "booth-pass-1"})
		require.NoError(t, err)

		assert.Equal(t, "a", res.AccessToken)
		assert.Equal(t, constant.RoleStaff, res.Role)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		_, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "ghost@example.com", Password: "x"})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(account(t, constant.RoleCustomer, true), nil)

		_, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "dewi@example.com", Password: "nope"})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("deactivated", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(account(t, constant.RoleCustomer, false), nil)

		_, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "dewi@example.com", Password: "booth-pass-1"})
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	req := dto.RefreshTokenRequest{RefreshToken: "refresh"}

	t.Run("uses the current role", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).
			Return(&jwt.Claims{UserID: "u1", Role: constant.RoleCustomer}, nil)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(t, constant.RoleAdmin, true), nil)
		f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "u1", gomock.Any(), constant.RoleAdmin).Return(pair, nil)

		res, err := f.svc.RefreshToken(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, constant.RoleAdmin, res.Role)
	})

	t.Run("invalid token", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, jwt.ErrInvalidToken)

		_, err := f.svc.RefreshToken(context.Background(), req)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("expired token", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, jwt.ErrExpiredToken)

		_, err := f.svc.RefreshToken(context.Background(), req)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("user gone", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(&jwt.Claims{UserID: "u1"}, nil)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		_, err := f.svc.RefreshToken(context.Background(), req)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("user deactivated since login", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(&jwt.Claims{UserID: "u1"}, nil)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(t, constant.RoleStaff, false), nil)

		_, err := f.svc.RefreshToken(context.Background(), req)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u1")

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(t, constant.RoleCustomer, true), nil)
		f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			hashed, ok := fields[userModel.FieldPassword].(string)
			require.True(t, ok)
			assert.NoError(t, password.Verify("booth-pass-2", hashed))
			assert.Equal(t, "u1", fields[constant.FieldModifiedBy])

			return nil
		})

		err := f.svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "booth-pass-1", NewPassword: "booth-pass-2"})
		require.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(t, constant.RoleCustomer, true), nil)

		err := f.svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "guess", NewPassword: "booth-pass-2"})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown caller", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		err := f.svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "booth-pass-1", NewPassword: "booth-pass-2"})
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
