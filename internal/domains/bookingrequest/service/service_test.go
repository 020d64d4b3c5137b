package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"litrato/infras/otel/mocks"
	"litrato/infras/postgres"
	txMocks "litrato/infras/postgres/mocks"
	"litrato/internal/domains/availability/schedule"
	availabilityMocks "litrato/internal/domains/availability/service/mocks"
	bookingModel "litrato/internal/domains/booking/model"
	bookingMocks "litrato/internal/domains/booking/mocks"
	requestMocks "litrato/internal/domains/bookingrequest/mocks"
	"litrato/internal/domains/bookingrequest/model"
	"litrato/internal/domains/bookingrequest/model/dto"
	"litrato/internal/domains/bookingrequest/service"
	packageMocks "litrato/internal/domains/packages/service/mocks"
	"litrato/internal/events"
	eventMocks "litrato/internal/events/mocks"
	"litrato/shared/constant"
	gDto "litrato/shared/dto"
	"litrato/shared/failure"
	"litrato/shared/timezone"
)

type fixture struct {
	repo         *requestMocks.MockBookingRequest
	bookings     *bookingMocks.MockBooking
	availability *availabilityMocks.MockAvailability
	packages     *packageMocks.MockPackage
	tx           *txMocks.MockTransactor
	events       *eventMocks.MockPublisher
	rules        schedule.Rules
	svc          service.BookingRequest
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	rules := schedule.DefaultRules()
	rules.Location = timezone.GetLocation()

	f := fixture{
		repo:         requestMocks.NewMockBookingRequest(ctrl),
		bookings:     bookingMocks.NewMockBooking(ctrl),
		availability: availabilityMocks.NewMockAvailability(ctrl),
		packages:     packageMocks.NewMockPackage(ctrl),
		tx:           txMocks.NewMockTransactor(ctrl),
		events:       eventMocks.NewMockPublisher(ctrl),
		rules:        rules,
	}
	f.availability.EXPECT().Rules().Return(rules).AnyTimes()
	f.svc = service.New(f.repo, f.bookings, f.availability, f.packages, f.tx, f.events, mocks.NewOtel())

	return f
}

// runInline makes the transactor call fn straight away with a nil tx.
func (f fixture) runInline(lockKey string) {
	f.tx.EXPECT().
		WithinSerializable(gomock.Any(), lockKey, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, fn func(context.Context, *sqlx.Tx) error) error {
			return fn(ctx, nil)
		})
}

func as(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func upcoming(rules schedule.Rules) time.Time {
	return rules.StartOfDay(timezone.Now()).AddDate(0, 0, 14)
}

func existing(t *testing.T, rules schedule.Rules, id string, day time.Time, start, end int) schedule.BookingInterval {
	t.Helper()

	interval, err := rules.Interval(schedule.Record{
		Ref:        schedule.Ref{Source: schedule.SourceBooking, ID: id},
		PackageID:  "p1",
		Status:     schedule.StatusScheduled,
		EventStart: rules.At(day, time.Duration(start)*time.Hour),
		EventEnd:   rules.At(day, time.Duration(end)*time.Hour),
	})
	require.NoError(t, err)

	return interval
}

func createRequest(day time.Time, start, end string) dto.CreateBookingRequestRequest {
	return dto.CreateBookingRequestRequest{
		PackageID:    "p1",
		EventDate:    day.Format(constant.DayFormat),
		StartTime:    start,
		EndTime:      end,
		Venue:        "Grand Ballroom",
		ContactName:  "Dewi",
		ContactPhone: "08123456789",
	}
}

func pending(rules schedule.Rules, id string, day time.Time, start, end int) model.BookingRequest {
	return model.BookingRequest{
		ID:         id,
		PackageID:  "p1",
		CustomerID: "c1",
		EventDate:  day,
		EventStart: rules.At(day, time.Duration(start)*time.Hour),
		EventEnd:   rules.At(day, time.Duration(end)*time.Hour),
		Status:     schedule.StatusPending,
	}
}

func TestBookingRequestService_Create(t *testing.T) {
	t.Run("accepted when clear of the existing booking", func(t *testing.T) {
		f := newFixture(t)
		day := upcoming(f.rules)

		f.packages.EXPECT().Catalog(gomock.Any(), "p1").Return([]schedule.Package{{ID: "p1"}}, nil)
		f.runInline(f.rules.LockKey("p1", day))
		f.availability.EXPECT().OccupancyTx(gomock.Any(), gomock.Nil(), "p1", gomock.Any()).
			Return([]schedule.BookingInterval{existing(t, f.rules, "b1", day, 10, 13)}, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, got model.BookingRequest) error {
				assert.Equal(t, "c1", got.CustomerID)
				assert.Equal(t, schedule.StatusPending, got.Status)
				assert.Equal(t, f.rules.At(day, 17*time.Hour), got.EventStart)

				return nil
			})
		f.events.EXPECT().Publish(gomock.Any(), events.BookingRequestCreated, gomock.Any(), "c1", gomock.Any())

		res, err := f.svc.Create(as("c1", constant.RoleCustomer), createRequest(day, "17:00", "20:00"))
		require.NoError(t, err)
		assert.Equal(t, "17:00", res.StartTime)
		assert.Equal(t, schedule.StatusPending, res.Status)
	})

	t.Run("rejected when the buffered intervals overlap", func(t *testing.T) {
		f := newFixture(t)
		day := upcoming(f.rules)

		f.packages.EXPECT().Catalog(gomock.Any(), "p1").Return([]schedule.Package{{ID: "p1"}}, nil)
		f.runInline(f.rules.LockKey("p1", day))
		f.availability.EXPECT().OccupancyTx(gomock.Any(), gomock.Nil(), "p1", gomock.Any()).
			Return([]schedule.BookingInterval{existing(t, f.rules, "b1", day, 10, 13)}, nil)

		_, err := f.svc.Create(as("c1", constant.RoleCustomer), createRequest(day, "15:00", "18:00"))

		var conflictErr *schedule.ConflictError
		require.True(t, errors.As(err, &conflictErr))
		assert.Equal(t, []string{"b1"}, conflictErr.IDs())
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("losing a concurrent write is a conflict", func(t *testing.T) {
		f := newFixture(t)
		day := upcoming(f.rules)

		f.packages.EXPECT().Catalog(gomock.Any(), "p1").Return([]schedule.Package{{ID: "p1"}}, nil)
		f.tx.EXPECT().WithinSerializable(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("%w: could not serialize access", postgres.ErrWriteContention))

		_, err := f.svc.Create(as("c1", constant.RoleCustomer), createRequest(day, "17:00", "20:00"))
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("invalid interval never reaches storage", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(as("c1", constant.RoleCustomer), createRequest(upcoming(f.rules), "18:00", "17:00"))
		assert.ErrorIs(t, err, schedule.ErrInvalidInterval)
	})

	t.Run("unknown package", func(t *testing.T) {
		f := newFixture(t)

		f.packages.EXPECT().Catalog(gomock.Any(), "p1").Return(nil, schedule.ErrPackageNotFound)

		_, err := f.svc.Create(as("c1", constant.RoleCustomer), createRequest(upcoming(f.rules), "17:00", "20:00"))
		assert.ErrorIs(t, err, schedule.ErrPackageNotFound)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingRequestService_GetAll(t *testing.T) {
	f := newFixture(t)
	params := gDto.QueryParams{Page: 1, Limit: 10}

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "customer_id")
			assert.Equal(t, "c1", args["owner_id"])

			return 1, nil
		})
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).
		Return([]model.BookingRequest{pending(f.rules, "r1", upcoming(f.rules), 10, 12)}, nil)

	res, err := f.svc.GetAll(as("c1", constant.RoleCustomer), params, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	require.Len(t, res.BookingRequests, 1)
	assert.Equal(t, "r1", res.BookingRequests[0].ID)
}

func TestBookingRequestService_Get(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.BookingRequest{}, nil)

	_, err := f.svc.Get(as("c2", constant.RoleCustomer), "r1")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBookingRequestService_Accept(t *testing.T) {
	t.Run("promotes the request into a booking", func(t *testing.T) {
		f := newFixture(t)
		day := upcoming(f.rules)
		req := pending(f.rules, "r1", day, 10, 13)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(req, nil)
		f.runInline(f.rules.LockKey("p1", day))
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(req, nil)

		self, err := f.rules.Interval(req.ToRecord())
		require.NoError(t, err)

		f.availability.EXPECT().OccupancyTx(gomock.Any(), gomock.Nil(), "p1", gomock.Any()).
			Return([]schedule.BookingInterval{self, existing(t, f.rules, "b9", day, 19, 21)}, nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, schedule.StatusAccepted, fields["status"])

				return nil
			})
		f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, got bookingModel.Booking) error {
				assert.Equal(t, "r1", got.RequestID)
				assert.Equal(t, schedule.StatusScheduled, got.Status)

				return nil
			})
		f.events.EXPECT().Publish(gomock.Any(), events.BookingRequestAccepted, "r1", "s1", gomock.Any())

		res, err := f.svc.Accept(as("s1", constant.RoleStaff), "r1")
		require.NoError(t, err)
		assert.Equal(t, schedule.StatusAccepted, res.Status)
		assert.NotEmpty(t, res.BookingID)
	})

	t.Run("conflicting request stays pending", func(t *testing.T) {
		f := newFixture(t)
		day := upcoming(f.rules)
		req := pending(f.rules, "r1", day, 10, 13)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(req, nil)
		f.runInline(f.rules.LockKey("p1", day))
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(req, nil)
		f.availability.EXPECT().OccupancyTx(gomock.Any(), gomock.Nil(), "p1", gomock.Any()).
			Return([]schedule.BookingInterval{existing(t, f.rules, "b1", day, 14, 16)}, nil)

		_, err := f.svc.Accept(as("s1", constant.RoleStaff), "r1")
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("already decided", func(t *testing.T) {
		f := newFixture(t)
		day := upcoming(f.rules)
		req := pending(f.rules, "r1", day, 10, 13)
		decided := req
		decided.Status = schedule.StatusRejected

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(req, nil)
		f.runInline(f.rules.LockKey("p1", day))
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(decided, nil)

		_, err := f.svc.Accept(as("s1", constant.RoleStaff), "r1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingRequestService_Reject(t *testing.T) {
	f := newFixture(t)
	req := pending(f.rules, "r1", upcoming(f.rules), 10, 13)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(req, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, schedule.StatusRejected, fields["status"])
			assert.Equal(t, "fully booked crew", fields["reject_reason"])

			return nil
		})
	f.events.EXPECT().Publish(gomock.Any(), events.BookingRequestRejected, "r1", "s1", gomock.Any())

	err := f.svc.Reject(as("s1", constant.RoleStaff), "r1", dto.RejectBookingRequestRequest{Reason: "fully booked crew"})
	require.NoError(t, err)
}

func TestBookingRequestService_Cancel(t *testing.T) {
	t.Run("own pending request", func(t *testing.T) {
		f := newFixture(t)
		req := pending(f.rules, "r1", upcoming(f.rules), 10, 13)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(req, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.events.EXPECT().Publish(gomock.Any(), events.BookingRequestCancelled, "r1", "c1", gomock.Any()).
			Do(func(_ context.Context, _, _, _ string, payload any) {
				res, ok := payload.(dto.BookingRequestResponse)
				require.True(t, ok, "payload is %T", payload)
				assert.Equal(t, "r1", res.ID)
				assert.Equal(t, schedule.StatusCancelled, res.Status)
			})

		require.NoError(t, f.svc.Cancel(as("c1", constant.RoleCustomer), "r1"))
	})

	t.Run("accepted request cannot be withdrawn", func(t *testing.T) {
		f := newFixture(t)
		req := pending(f.rules, "r1", upcoming(f.rules), 10, 13)
		req.Status = schedule.StatusAccepted

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(req, nil)

		err := f.svc.Cancel(as("c1", constant.RoleCustomer), "r1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
