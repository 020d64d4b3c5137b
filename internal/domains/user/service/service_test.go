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
	"litrato/infras/otel/mocks"
	userMocks "litrato/internal/domains/user/mocks"
	"litrato/internal/domains/user/model"
	"litrato/internal/domains/user/model/dto"
	"litrato/internal/domains/user/service"
	cacheMocks "litrato/shared/cache/mocks"
	"litrato/shared/constant"
	gDto "litrato/shared/dto"
	"litrato/shared/failure"
	"litrato/shared/password"
)

type fixture struct {
	repo  *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
	svc   service.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:  userMocks.NewMockUser(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func as(id string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, id)
}

func strPtr(s string) *string {
	return &s
}

func TestUserService_Create(t *testing.T) {
	t.Run("staff account by default", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetByEmail(gomock.Any(), "operator@litrato.id").Return(model.User{}, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user model.User) error {
			assert.Equal(t, constant.RoleStaff, user.Level)
			assert.Equal(t, "operator@litrato.id", user.Email)
			assert.Equal(t, "admin-1", user.CreatedBy)
			assert.True(t, user.Active)
			assert.NoError(t, password.Verify("operator-pass", user.Password))

			return nil
		})

		res, err := f.svc.Create(as("admin-1"), dto.CreateUserRequest{
			Email:    "Operator@Litrato.id",
			Password: "operator-pass",
			Phone:    strPtr("0811000111"),
		})
		require.NoError(t, err)

		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "0811000111", *res.Phone)
	})

	t.Run("email already registered", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(model.User{ID: "u9"}, nil)

		_, err := f.svc.Create(as("admin-1"), dto.CreateUserRequest{Email: "operator@litrato.id", Password: "operator-pass"})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("insert fails", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		_, err := f.svc.Create(as("admin-1"), dto.CreateUserRequest{Email: "operator@litrato.id", Password: "operator-pass"})
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestUserService_Get(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "user:get:u1", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
			*value.(*dto.UserResponse) = dto.UserResponse{ID: "u1"}

			return nil
		})

		res, err := f.svc.Get(as("admin-1"), "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := f.svc.Get(as("admin-1"), "u1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.User{
		{ID: "u1", Level: constant.RoleStaff},
		{ID: "u2", Level: constant.RoleStaff},
	}, nil)

	res, err := f.svc.GetAll(as("admin-1"), gDto.QueryParams{Page: 1, Limit: 2}, gDto.FilterGroup{})
	require.NoError(t, err)

	assert.Len(t, res.Users, 2)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}

func TestUserService_Profile(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.User, error) {
		_, args := filter.GetWhereClause()
		assert.Equal(t, "c1", args[model.FieldID])

		return model.User{ID: "c1", Level: constant.RoleCustomer, Phone: strPtr("0812")}, nil
	})

	res, err := f.svc.Profile(as("c1"))
	require.NoError(t, err)
	assert.Equal(t, constant.RoleCustomer, res.Level)
}

func TestUserService_Update(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
		assert.Equal(t, strPtr(constant.RoleAdmin), fields[model.FieldLevel])
		assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

		return nil
	})

	require.NoError(t, f.svc.Update(as("admin-1"), "u1", dto.UpdateUserRequest{Level: strPtr(constant.RoleAdmin)}))

	t.Run("empty request", func(t *testing.T) {
		err := newFixture(t).svc.Update(as("admin-1"), "u1", dto.UpdateUserRequest{})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Update(as("admin-1"), "ghost", dto.UpdateUserRequest{FullName: strPtr("Ghost")})
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("admins cannot switch themselves off", func(t *testing.T) {
		off := false

		err := newFixture(t).svc.Update(as("admin-1"), "admin-1", dto.UpdateUserRequest{Active: &off})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
		_, args := filter.GetWhereClause()
		assert.Equal(t, "c1", args[model.FieldID])
		assert.Equal(t, strPtr("0812345"), fields[model.FieldPhone])
		assert.NotContains(t, fields, model.FieldLevel)

		return nil
	})

	require.NoError(t, f.svc.UpdateProfile(as("c1"), dto.UpdateProfileRequest{Phone: strPtr("0812345")}))
}

func TestUserService_Deactivate(t *testing.T) {
	t.Run("keeps the row", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, false, fields[model.FieldActive])

			return nil
		})

		require.NoError(t, f.svc.Deactivate(as("admin-1"), "c1"))
	})

	t.Run("self", func(t *testing.T) {
		err := newFixture(t).svc.Deactivate(as("admin-1"), "admin-1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
