package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"litrato/config"
	"litrato/infras/otel"
	"litrato/internal/domains/user/model"
	"litrato/internal/domains/user/model/dto"
	"litrato/internal/domains/user/repository"
	"litrato/shared"
	"litrato/shared/cache"
	"litrato/shared/constant"
	gDto "litrato/shared/dto"
	"litrato/shared/failure"
	"litrato/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
	cacheCountUser  = "user:count"
)

var (
	errUserNotFound   = failure.NotFound("user not found")
	errEmailTaken     = failure.BadRequestFromString("email already registered")
	errEmptyUpdate    = failure.BadRequestFromString("update request cannot be empty")
	errDeactivateSelf = failure.BadRequestFromString("you cannot deactivate your own account")
)

type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateUserRequest) error
	Deactivate(ctx context.Context, id string) error
	Profile(ctx context.Context) (dto.UserResponse, error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) error
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if existing.ID != constant.Empty {
		return res, errEmailTaken
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(actor, hashedPassword)

	if err = s.repo.Insert(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	total, err := s.count(ctx, params, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	s.remember(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountUser, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	s.remember(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	s.remember(ctx, cacheKey, res)

	return res, nil
}

// Profile returns the account of the caller. It skips the cache so a
// customer always sees the phone number their next booking request will use.
func (s *serviceImpl) Profile(ctx context.Context) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Profile")
	defer scope.End()
	defer scope.TraceIfError(&err)

	id, _ := ctx.Value(constant.ContextKeyUserID).(string)

	user, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req == (dto.UpdateUserRequest{}) {
		return errEmptyUpdate
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if id == actor && req.Active != nil && !*req.Active {
		return errDeactivateSelf
	}

	return s.update(ctx, id, shared.TransformFields(req, actor))
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateProfile")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req == (dto.UpdateProfileRequest{}) {
		return errEmptyUpdate
	}

	id, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.update(ctx, id, shared.TransformFields(req, id))
}

// Deactivate locks an account out. Rows are never deleted because booking
// requests and bookings keep pointing at their customer.
func (s *serviceImpl) Deactivate(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Deactivate")
	defer scope.End()
	defer scope.TraceIfError(&err)

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if id == actor {
		return errDeactivateSelf
	}

	fields := shared.TransformFields(dto.UpdateUserRequest{}, actor)
	fields[model.FieldActive] = false

	return s.update(ctx, id, fields)
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.User, error) {
	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return user, errUserNotFound
	}

	return user, nil
}

func (s *serviceImpl) update(ctx context.Context, id string, fields map[string]any) error {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return errUserNotFound
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update user")

		return fmt.Errorf("failed to update user: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) remember(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save user cache")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete user from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, cacheCountUser)
	}()
}
