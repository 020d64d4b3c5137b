package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"litrato/infras/otel/mocks"
	"litrato/internal/domains/auth/model/dto"
	serviceMocks "litrato/internal/domains/auth/service/mocks"
	"litrato/internal/handlers/auth"
	"litrato/shared/constant"
	"litrato/shared/failure"
)

func newRouter(t *testing.T) (*serviceMocks.MockAuth, http.Handler) {
	t.Helper()

	svc := serviceMocks.NewMockAuth(gomock.NewController(t))
	handler := auth.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	return svc, router
}

func TestHandler_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Register(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req dto.RegisterRequest) error {
			assert.Equal(t, "0812", req.Phone)

			return nil
		})

		body := `{"email":"dewi@example.com","password":"booth-pass-1","full_name":"Dewi","phone":"0812"}`

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("phone is required", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Register(gomock.Any(), gomock.Any()).Times(0)

		body := `{"email":"dewi@example.com","password":"booth-pass-1","full_name":"Dewi"}`

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Login(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Login(gomock.Any(), dto.LoginRequest{Email: "dewi@example.com", Password: "booth-pass-1"}).
		Return(dto.TokenResponse{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", Role: constant.RoleCustomer}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"email":"dewi@example.com","password":"booth-pass-1"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"customer"`)
}

func TestHandler_RefreshToken(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().RefreshToken(gomock.Any(), gomock.Any()).Return(dto.TokenResponse{}, failure.Unauthorized("invalid refresh token"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/refresh-token", strings.NewReader(`{"refresh_token":"stale"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_ChangePassword(t *testing.T) {
	t.Run("changed", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().ChangePassword(gomock.Any(), dto.ChangePasswordRequest{CurrentPassword: "booth-pass-1", NewPassword: "booth-pass-2"}).Return(nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/v1/auth/password",
			strings.NewReader(`{"current_password":"booth-pass-1","new_password":"booth-pass-2"}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("same password rejected", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().ChangePassword(gomock.Any(), gomock.Any()).Times(0)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/v1/auth/password",
			strings.NewReader(`{"current_password":"booth-pass-1","new_password":"booth-pass-1"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
