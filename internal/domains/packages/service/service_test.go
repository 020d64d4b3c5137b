package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"litrato/config"
	"litrato/infras/otel/mocks"
	s3Mocks "litrato/infras/s3/mocks"
	"litrato/internal/domains/availability/schedule"
	packageMocks "litrato/internal/domains/packages/mocks"
	"litrato/internal/domains/packages/model"
	"litrato/internal/domains/packages/model/dto"
	"litrato/internal/domains/packages/service"
	cacheMocks "litrato/shared/cache/mocks"
	"litrato/shared/constant"
	gDto "litrato/shared/dto"
)

type fixture struct {
	repo  *packageMocks.MockPackage
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Package
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "litrato"

	f := fixture{
		repo:  packageMocks.NewMockPackage(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.s3)

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func hours(h float64) *float64 {
	return &h
}

func TestPackageService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "successful creation",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, pkg model.Package) error {
					assert.Equal(t, "Classic Booth", pkg.Name)
					assert.True(t, pkg.Active)
					assert.Equal(t, "admin-1", pkg.CreatedBy)
					assert.Equal(t, 3.0, *pkg.DurationHours)

					return nil
				})
			},
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Create(userCtx(), dto.CreatePackageRequest{Name: "Classic Booth", DurationHours: hours(3)})

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPackageService_Get(t *testing.T) {
	t.Run("cache hit skips the repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "package:get:p1", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
			res, ok := value.(*dto.PackageResponse)
			require.True(t, ok)
			res.ID = "p1"

			return nil
		})

		res, err := f.svc.Get(userCtx(), "p1")
		require.NoError(t, err)
		assert.Equal(t, "p1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Package{}, nil)

		_, err := f.svc.Get(userCtx(), "missing")
		assert.Error(t, err)
	})

	t.Run("from repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Package{ID: "p1", Name: "Classic Booth", Price: 150000}, nil)

		res, err := f.svc.Get(userCtx(), "p1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, int64(150000), res.Price)
		assert.Nil(t, res.DurationHours)
	})
}

func TestPackageService_Update(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Package{ID: "p1"}, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
		assert.Equal(t, "Mirror Booth", fields[model.FieldName])
		assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

		return nil
	})

	err := f.svc.Update(userCtx(), dto.UpdatePackageRequest{Name: "Mirror Booth"}, "p1")

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}

func TestPackageService_Update_ReplacesImage(t *testing.T) {
	f := newFixture(t)

	header := &multipart.FileHeader{Filename: "mirror.png", Size: 512}
	oldURL := "https://cdn.litrato.id/package/old.png"

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Package{ID: "p1", Image: oldURL}, nil)
	f.s3.EXPECT().PutImage(gomock.Any(), model.EntityName, nil, header).
		Return("https://cdn.litrato.id/package/new.png", "package/new.png", nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
		assert.Equal(t, "https://cdn.litrato.id/package/new.png", fields[model.FieldImage])
		assert.NotContains(t, fields, "image_file")

		return nil
	})
	f.s3.EXPECT().KeyFromURL(oldURL).Return("package/old.png")
	f.s3.EXPECT().Delete(gomock.Any(), "package/old.png").Return(nil)

	require.NoError(t, f.svc.Update(userCtx(), dto.UpdatePackageRequest{Image: header}, "p1"))
}

func TestPackageService_Create_DiscardsImageOnFailure(t *testing.T) {
	f := newFixture(t)

	header := &multipart.FileHeader{Filename: "classic.jpg", Size: 256}

	f.s3.EXPECT().PutImage(gomock.Any(), model.EntityName, nil, header).
		Return("https://cdn.litrato.id/package/c.jpg", "package/c.jpg", nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
	f.s3.EXPECT().Delete(gomock.Any(), "package/c.jpg").Return(nil)

	err := f.svc.Create(userCtx(), dto.CreatePackageRequest{Name: "Classic Booth", DurationHours: hours(3), Image: header})
	assert.Error(t, err)
}

func TestPackageService_Delete(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	assert.Error(t, f.svc.Delete(userCtx(), "p1"))
}

func TestPackageService_Catalog(t *testing.T) {
	t.Run("all active packages", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Package{
			{ID: "p1", Name: "Classic Booth", DurationHours: hours(3)},
			{ID: "p2", Name: "Mirror Booth"},
		}, nil)

		got, err := f.svc.Catalog(userCtx(), "")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "p1", got[0].ID)
		assert.Nil(t, got[1].DurationHours)
	})

	t.Run("unknown package", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.svc.Catalog(userCtx(), "ghost")
		assert.ErrorIs(t, err, schedule.ErrPackageNotFound)
	})
}
