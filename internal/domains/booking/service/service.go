package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"litrato/infras/otel"
	"litrato/infras/postgres"
	"litrato/internal/domains/availability/schedule"
	availabilityService "litrato/internal/domains/availability/service"
	"litrato/internal/domains/booking/model"
	"litrato/internal/domains/booking/model/dto"
	"litrato/internal/domains/booking/repository"
	"litrato/internal/events"
	"litrato/shared"
	"litrato/shared/constant"
	gDto "litrato/shared/dto"
	"litrato/shared/failure"
	"litrato/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var (
	errNotFound      = failure.NotFound("booking not found")
	errNotExtendable = failure.BadRequestFromString("booking can no longer be extended")
)

type Booking interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateBookingStatusRequest) error
	ExtensionConflicts(ctx context.Context, id string, hours int) (dto.ExtensionConflictsResponse, error)
	Extend(ctx context.Context, id string, req dto.ExtendBookingRequest) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	availability availabilityService.Availability
	tx           postgres.Transactor
	events       events.Publisher
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	availability availabilityService.Availability,
	tx postgres.Transactor,
	events events.Publisher,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		availability: availability,
		tx:           tx,
		events:       events,
		otel:         otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter = availabilityService.OwnedBy(ctx, filter, model.FieldCustomerID, model.TableName)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	filter := availabilityService.OwnedBy(ctx, shared.FilterByID(id, model.FieldID, model.TableName), model.FieldCustomerID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, errNotFound
	}

	return booking, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateBookingStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := availabilityService.Actor(ctx)

	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if !booking.CanMoveTo(req.Status) {
		return failure.BadRequestFromString(fmt.Sprintf("booking cannot move from %s to %s", booking.Status, req.Status)) //nolint:wrapcheck
	}

	fields := shared.TransformFields(req, user)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	s.events.Publish(ctx, events.BookingStatusChanged, id, user, map[string]string{
		"booking_id": id,
		"from":       booking.Status,
		"to":         req.Status,
	})

	return nil
}

// ExtensionConflicts is a dry run of Extend. Nothing is written and no lock
// is taken, so a clear answer can still lose to a concurrent write.
func (s *serviceImpl) ExtensionConflicts(ctx context.Context, id string, hours int) (res dto.ExtensionConflictsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExtensionConflicts")
	defer scope.End()
	defer scope.TraceIfError(&err)

	rules := s.availability.Rules()

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !booking.Extendable() {
		return res, errNotExtendable
	}

	target, err := rules.Interval(booking.ToRecord())
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	existing, err := s.availability.Occupancy(ctx, booking.PackageID, target.EventStart)
	if err != nil {
		return res, fmt.Errorf("failed to load occupancy: %w", err)
	}

	conflicts, err := rules.ExtensionConflicts(target, hours, existing)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.BookingID = id
	res.Hours = hours
	res.RemainingHours = rules.RemainingExtensionHours(target)
	res.PotentialExtensionHours = rules.PotentialExtensionHours(target, existing)
	res.Conflicts = make([]string, len(conflicts))

	for i, conflict := range conflicts {
		res.Conflicts[i] = conflict.Ref.ID
	}

	return res, nil
}

func (s *serviceImpl) Extend(ctx context.Context, id string, req dto.ExtendBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Extend")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := availabilityService.Actor(ctx)
	rules := s.availability.Rules()
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	var extended model.Booking

	err = s.tx.WithinSerializable(ctx, rules.LockKey(current.PackageID, timezone.Wall(current.EventStart)), func(ctx context.Context, tx *sqlx.Tx) error {
		locked, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if locked.ID == constant.Empty {
			return errNotFound
		}

		if !locked.Extendable() {
			return errNotExtendable
		}

		target, err := rules.Interval(locked.ToRecord())
		if err != nil {
			return err //nolint:wrapcheck
		}

		existing, err := s.availability.OccupancyTx(ctx, tx, locked.PackageID, target.EventStart)
		if err != nil {
			return err //nolint:wrapcheck
		}

		conflicts, err := rules.ExtensionConflicts(target, req.Hours, existing)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if len(conflicts) > 0 {
			return schedule.NewConflictError(conflicts)
		}

		extended = locked
		extended.ExtensionHours += req.Hours

		fields := shared.TransformFields(struct {
			ExtensionHours int `db:"extension_duration"`
		}{ExtensionHours: extended.ExtensionHours}, user)

		return s.repo.UpdateTx(ctx, tx, fields, filter) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Int("hours", req.Hours).Msg("failed to extend booking")

		return res, availabilityService.MapWriteError(err)
	}

	res.FromModel(extended)

	s.events.Publish(ctx, events.BookingExtended, id, user, res)

	return res, nil
}
