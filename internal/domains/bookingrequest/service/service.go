package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"litrato/infras/otel"
	"litrato/infras/postgres"
	availabilityService "litrato/internal/domains/availability/service"
	"litrato/internal/domains/availability/schedule"
	bookingModel "litrato/internal/domains/booking/model"
	bookingRepo "litrato/internal/domains/booking/repository"
	"litrato/internal/domains/bookingrequest/model"
	"litrato/internal/domains/bookingrequest/model/dto"
	"litrato/internal/domains/bookingrequest/repository"
	packageService "litrato/internal/domains/packages/service"
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
	errNotFound   = failure.NotFound("booking request not found")
	errNotPending = failure.BadRequestFromString("booking request is no longer pending")
)

type BookingRequest interface {
	Create(ctx context.Context, req dto.CreateBookingRequestRequest) (dto.BookingRequestResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingRequestsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingRequestResponse, error)
	Cancel(ctx context.Context, id string) error
	Accept(ctx context.Context, id string) (dto.BookingRequestResponse, error)
	Reject(ctx context.Context, id string, req dto.RejectBookingRequestRequest) error
}

type serviceImpl struct {
	repo         repository.BookingRequest
	bookingRepo  bookingRepo.Booking
	availability availabilityService.Availability
	packages     packageService.Package
	tx           postgres.Transactor
	events       events.Publisher
	otel         otel.Otel
}

func New(
	repo repository.BookingRequest,
	bookingRepo bookingRepo.Booking,
	availability availabilityService.Availability,
	packages packageService.Package,
	tx postgres.Transactor,
	events events.Publisher,
	otel otel.Otel,
) BookingRequest {
	return &serviceImpl{
		repo:         repo,
		bookingRepo:  bookingRepo,
		availability: availability,
		packages:     packages,
		tx:           tx,
		events:       events,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequestRequest) (res dto.BookingRequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := availabilityService.Actor(ctx)
	rules := s.availability.Rules()

	request, err := req.ToModel(rules, timezone.Now(), user)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if _, err = s.packages.Catalog(ctx, request.PackageID); err != nil {
		return res, fmt.Errorf("failed to resolve package: %w", err)
	}

	candidate, err := rules.Interval(request.ToRecord())
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	err = s.tx.WithinSerializable(ctx, rules.LockKey(request.PackageID, candidate.EventStart), func(ctx context.Context, tx *sqlx.Tx) error {
		existing, err := s.availability.OccupancyTx(ctx, tx, request.PackageID, candidate.EventStart)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if err := rules.CheckCandidate(candidate, existing); err != nil {
			return err //nolint:wrapcheck
		}

		return s.repo.InsertTx(ctx, tx, request) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Str("package_id", request.PackageID).Msg("failed to create booking request")

		return res, availabilityService.MapWriteError(err)
	}

	res.FromModel(request)

	s.events.Publish(ctx, events.BookingRequestCreated, request.ID, user, res)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingRequestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter = availabilityService.OwnedBy(ctx, filter, model.FieldCustomerID, model.TableName)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count booking requests")

		return res, fmt.Errorf("failed to count booking requests: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking requests")

		return res, fmt.Errorf("failed to get booking requests: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.BookingRequest, error) {
	request, err := s.repo.Get(ctx, availabilityService.OwnedBy(ctx, shared.FilterByID(id, model.FieldID, model.TableName), model.FieldCustomerID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get booking request")

		return request, fmt.Errorf("failed to get booking request: %w", err)
	}

	if request.ID == constant.Empty {
		return request, errNotFound
	}

	return request, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingRequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	request, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(request)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := availabilityService.Actor(ctx)

	request, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if request.Status != schedule.StatusPending {
		return errNotPending
	}

	fields := shared.TransformFields(struct {
		Status string `db:"status"`
	}{Status: schedule.StatusCancelled}, user)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to cancel booking request")

		return fmt.Errorf("failed to cancel booking request: %w", err)
	}

	request.Status = schedule.StatusCancelled

	var res dto.BookingRequestResponse
	res.FromModel(request)

	s.events.Publish(ctx, events.BookingRequestCancelled, id, user, res)

	return nil
}

// Accept promotes a pending request into a scheduled booking. The conflict
// check is repeated inside the write transaction; the request's own interval
// never counts against it.
func (s *serviceImpl) Accept(ctx context.Context, id string) (res dto.BookingRequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Accept")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := availabilityService.Actor(ctx)
	rules := s.availability.Rules()
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	day := timezone.Wall(current.EventStart)

	var (
		accepted model.BookingRequest
		booking  bookingModel.Booking
	)

	err = s.tx.WithinSerializable(ctx, rules.LockKey(current.PackageID, day), func(ctx context.Context, tx *sqlx.Tx) error {
		locked, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if locked.ID == constant.Empty {
			return errNotFound
		}

		if locked.Status != schedule.StatusPending {
			return errNotPending
		}

		candidate, err := rules.Interval(locked.ToRecord())
		if err != nil {
			return err //nolint:wrapcheck
		}

		existing, err := s.availability.OccupancyTx(ctx, tx, locked.PackageID, candidate.EventStart)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if err := rules.CheckCandidate(candidate, existing); err != nil {
			return err //nolint:wrapcheck
		}

		fields := shared.TransformFields(struct {
			Status string `db:"status"`
		}{Status: schedule.StatusAccepted}, user)

		if err := s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
			return err //nolint:wrapcheck
		}

		accepted = locked
		accepted.Status = schedule.StatusAccepted
		booking = locked.ToBooking(user)

		return s.bookingRepo.InsertTx(ctx, tx, booking) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to accept booking request")

		return res, availabilityService.MapWriteError(err)
	}

	res.FromModel(accepted)
	res.BookingID = booking.ID

	s.events.Publish(ctx, events.BookingRequestAccepted, id, user, res)

	return res, nil
}

func (s *serviceImpl) Reject(ctx context.Context, id string, req dto.RejectBookingRequestRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := availabilityService.Actor(ctx)

	request, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if request.Status != schedule.StatusPending {
		return errNotPending
	}

	fields := shared.TransformFields(struct {
		Status       string `db:"status"`
		RejectReason string `db:"reject_reason"`
	}{Status: schedule.StatusRejected, RejectReason: req.Reason}, user)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to reject booking request")

		return fmt.Errorf("failed to reject booking request: %w", err)
	}

	request.Status = schedule.StatusRejected
	request.RejectReason = req.Reason

	var res dto.BookingRequestResponse
	res.FromModel(request)

	s.events.Publish(ctx, events.BookingRequestRejected, id, user, res)

	return nil
}
