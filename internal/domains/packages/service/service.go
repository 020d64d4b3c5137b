package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"litrato/config"
	"litrato/infras/otel"
	"litrato/infras/s3"
	"litrato/internal/domains/availability/schedule"
	"litrato/internal/domains/packages/model"
	"litrato/internal/domains/packages/model/dto"
	"litrato/internal/domains/packages/repository"
	"litrato/shared"
	"litrato/shared/cache"
	"litrato/shared/constant"
	gDto "litrato/shared/dto"
	"litrato/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetPackage     = "package:get"
	cacheGetAllPackage  = "package:gets"
	cacheCountPackage   = "package:count"
	cacheCatalogPackage = "package:catalog"
)

type Package interface {
	Create(ctx context.Context, req dto.CreatePackageRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPackagesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PackageResponse, error)
	Update(ctx context.Context, req dto.UpdatePackageRequest, id string) error
	Delete(ctx context.Context, id string) error
	// Catalog returns the active packages the calendar is computed for. A
	// non-empty packageID narrows it to that package.
	Catalog(ctx context.Context, packageID string) ([]schedule.Package, error)
}

type serviceImpl struct {
	repo  repository.Package
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Package, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Package {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

// upload stores the cover image, if any, and returns its public URL and key.
func (s *serviceImpl) upload(ctx context.Context, req dto.UpdatePackageRequest) (url, key string, err error) {
	if req.Image == nil {
		return constant.Empty, constant.Empty, nil
	}

	url, key, err = s.s3.PutImage(ctx, model.EntityName, req.ImageFile, req.Image)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload package image")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, key, nil
}

// discard removes an image that no row points at. Failures only leave an
// orphan object behind.
func (s *serviceImpl) discard(ctx context.Context, key string) {
	if key == constant.Empty {
		return
	}

	if err := s.s3.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to remove package image")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, ids ...string) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, id := range ids {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPackage, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete package cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPackage)
		shared.InvalidateCaches(c, s.cache, cacheCountPackage)
		shared.InvalidateCaches(c, s.cache, cacheCatalogPackage)
	}()
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePackageRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	imageURL, key, err := s.upload(ctx, dto.UpdatePackageRequest{Image: req.Image, ImageFile: req.ImageFile})
	if err != nil {
		return err
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, imageURL)); err != nil {
		log.Error().Err(err).Msg("failed to create package")

		s.discard(ctx, key)

		return fmt.Errorf("failed to create package: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPackagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPackage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for packages")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count packages")

		return res, fmt.Errorf("failed to count packages: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get packages")

		return res, fmt.Errorf("failed to get packages: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save packages to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPackage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count packages")

		return res, fmt.Errorf("failed to count packages: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save package count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PackageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetPackage, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for package")

		return res, nil
	}

	pkg, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get package")

		return res, fmt.Errorf("failed to get package: %w", err)
	}

	if pkg.ID == constant.Empty {
		return res, failure.NotFound("package not found") // nolint:wrapcheck
	}

	res.FromModel(pkg)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save package to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePackageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check package existence")

		return fmt.Errorf("failed to get package: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("package not found") // nolint:wrapcheck
	}

	imageURL, key, err := s.upload(ctx, req)
	if err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user)
	if imageURL != constant.Empty {
		updatedFields[model.FieldImage] = imageURL
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update package")

		s.discard(ctx, key)

		return fmt.Errorf("failed to update package: %w", err)
	}

	if imageURL != constant.Empty && current.Image != constant.Empty {
		s.discard(ctx, s.s3.KeyFromURL(current.Image))
	}

	s.invalidate(ctx, current.ID)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if package exists")

		return fmt.Errorf("failed to check if package exists: %w", err)
	}

	if !exist {
		return failure.NotFound("package not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete package")

		return fmt.Errorf("failed to delete package: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Catalog(ctx context.Context, packageID string) (res []schedule.Package, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Catalog")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheCatalogPackage, packageID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldActive, Operator: gDto.FilterOperatorEq, Value: true, Table: model.TableName},
		},
	}

	if packageID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: packageID, Table: model.TableName})
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldName, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load package catalog")

		return nil, fmt.Errorf("failed to load package catalog: %w", err)
	}

	if packageID != constant.Empty && len(models) == 0 {
		return nil, schedule.ErrPackageNotFound
	}

	res = make([]schedule.Package, 0, len(models))
	for _, mod := range models {
		res = append(res, mod.ToSchedule())
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save package catalog to cache")
		}
	}()

	return res, nil
}
