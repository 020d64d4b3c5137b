package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"litrato/infras/otel/mocks"
	txMocks "litrato/infras/postgres/mocks"
	"litrato/internal/domains/availability/schedule"
	availabilityMocks "litrato/internal/domains/availability/service/mocks"
	bookingMocks "litrato/internal/domains/booking/mocks"
	"litrato/internal/domains/booking/model"
	"litrato/internal/domains/booking/model/dto"
	"litrato/internal/domains/booking/service"
	"litrato/internal/events"
	eventMocks "litrato/internal/events/mocks"
	"litrato/shared/constant"
	gDto "litrato/shared/dto"
	"litrato/shared/failure"
	"litrato/shared/timezone"
)

type fixture struct {
	repo         *bookingMocks.MockBooking
	availability *availabilityMocks.MockAvailability
	tx           *txMocks.MockTransactor
	events       *eventMocks.MockPublisher
	rules        schedule.Rules
	svc          service.Booking
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	rules := schedule.DefaultRules()
	rules.Location = timezone.GetLocation()

	f := fixture{
		repo:         bookingMocks.NewMockBooking(ctrl),
		availability: availabilityMocks.NewMockAvailability(ctrl),
		tx:           txMocks.NewMockTransactor(ctrl),
		events:       eventMocks.NewMockPublisher(ctrl),
		rules:        rules,
	}
	f.availability.EXPECT().Rules().Return(rules).AnyTimes()
	f.svc = service.New(f.repo, f.availability, f.tx, f.events, mocks.NewOtel())

	return f
}

func staff() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "s1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleStaff)
}

func upcoming(rules schedule.Rules) time.Time {
	return rules.StartOfDay(timezone.Now()).AddDate(0, 0, 14)
}

func scheduled(rules schedule.Rules, id string, day time.Time, start, end int) model.Booking {
	return model.Booking{
		ID:         id,
		PackageID:  "p1",
		CustomerID: "c1",
		EventDate:  day,
		EventStart: rules.At(day, time.Duration(start)*time.Hour),
		EventEnd:   rules.At(day, time.Duration(end)*time.Hour),
		Status:     schedule.StatusScheduled,
	}
}

func occupancy(t *testing.T, rules schedule.Rules, bookings ...model.Booking) []schedule.BookingInterval {
	t.Helper()

	res := []schedule.BookingInterval{}

	for _, booking := range bookings {
		interval, err := rules.Interval(booking.ToRecord())
		require.NoError(t, err)

		res = append(res, interval)
	}

	return res
}

func TestBookingService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		booking := scheduled(f.rules, "b1", upcoming(f.rules), 10, 13)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		res, err := f.svc.Get(staff(), "b1")
		require.NoError(t, err)
		assert.Equal(t, "10:00", res.StartTime)
		assert.Equal(t, "13:00", res.EndTime)
	})

	t.Run("customer asking for someone else's booking", func(t *testing.T) {
		f := newFixture(t)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "c2")
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleCustomer)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Booking, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "c2", args["owner_id"])

				return model.Booking{}, nil
			})

		_, err := f.svc.Get(ctx, "b1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		wantCode int
	}{
		{name: "start the event", from: schedule.StatusScheduled, to: schedule.StatusInProgress},
		{name: "finish the event", from: schedule.StatusInProgress, to: schedule.StatusCompleted},
		{name: "cancel before it starts", from: schedule.StatusScheduled, to: schedule.StatusCancelled},
		{name: "skip straight to completed", from: schedule.StatusScheduled, to: schedule.StatusCompleted, wantCode: http.StatusBadRequest},
		{name: "reopen a cancelled booking", from: schedule.StatusCancelled, to: schedule.StatusInProgress, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			booking := scheduled(f.rules, "b1", upcoming(f.rules), 10, 13)
			booking.Status = tt.from

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

			if tt.wantCode == 0 {
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, tt.to, fields["status"])

						return nil
					})
				f.events.EXPECT().Publish(gomock.Any(), events.BookingStatusChanged, "b1", "s1", gomock.Any())
			}

			err := f.svc.UpdateStatus(staff(), "b1", dto.UpdateBookingStatusRequest{Status: tt.to})
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestBookingService_ExtensionConflicts(t *testing.T) {
	f := newFixture(t)
	day := upcoming(f.rules)
	target := scheduled(f.rules, "b1", day, 10, 13)
	neighbour := scheduled(f.rules, "b2", day, 18, 20)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(target, nil).Times(2)
	f.availability.EXPECT().Occupancy(gomock.Any(), "p1", gomock.Any()).Return(occupancy(t, f.rules, target, neighbour), nil).Times(2)

	res, err := f.svc.ExtensionConflicts(staff(), "b1", 1)
	require.NoError(t, err)
	assert.Empty(t, res.Conflicts)
	assert.Equal(t, 2, res.RemainingHours)
	assert.Equal(t, 1, res.PotentialExtensionHours)

	res, err = f.svc.ExtensionConflicts(staff(), "b1", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b2"}, res.Conflicts)
}

func TestBookingService_ExtensionConflicts_InvalidHours(t *testing.T) {
	f := newFixture(t)
	target := scheduled(f.rules, "b1", upcoming(f.rules), 10, 13)
	target.ExtensionHours = 2

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(target, nil)
	f.availability.EXPECT().Occupancy(gomock.Any(), "p1", gomock.Any()).Return(nil, nil)

	_, err := f.svc.ExtensionConflicts(staff(), "b1", 1)
	assert.ErrorIs(t, err, schedule.ErrInvalidExtension)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestBookingService_Extend(t *testing.T) {
	runInline := func(f fixture) {
		f.tx.EXPECT().
			WithinSerializable(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ string, fn func(context.Context, *sqlx.Tx) error) error {
				return fn(ctx, nil)
			})
	}

	t.Run("fits before the next booking", func(t *testing.T) {
		f := newFixture(t)
		day := upcoming(f.rules)
		target := scheduled(f.rules, "b1", day, 10, 13)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(target, nil)
		runInline(f)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(target, nil)
		f.availability.EXPECT().OccupancyTx(gomock.Any(), gomock.Nil(), "p1", gomock.Any()).
			Return(occupancy(t, f.rules, target, scheduled(f.rules, "b2", day, 18, 20)), nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, 1, fields["extension_duration"])

				return nil
			})
		f.events.EXPECT().Publish(gomock.Any(), events.BookingExtended, "b1", "s1", gomock.Any())

		res, err := f.svc.Extend(staff(), "b1", dto.ExtendBookingRequest{Hours: 1})
		require.NoError(t, err)
		assert.Equal(t, 1, res.ExtensionHours)
	})

	t.Run("runs into the next booking", func(t *testing.T) {
		f := newFixture(t)
		day := upcoming(f.rules)
		target := scheduled(f.rules, "b1", day, 10, 13)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(target, nil)
		runInline(f)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(target, nil)
		f.availability.EXPECT().OccupancyTx(gomock.Any(), gomock.Nil(), "p1", gomock.Any()).
			Return(occupancy(t, f.rules, target, scheduled(f.rules, "b2", day, 18, 20)), nil)

		_, err := f.svc.Extend(staff(), "b1", dto.ExtendBookingRequest{Hours: 2})

		var conflictErr *schedule.ConflictError
		require.True(t, errors.As(err, &conflictErr))
		assert.Equal(t, []string{"b2"}, conflictErr.IDs())
	})

	t.Run("completed bookings stay as they are", func(t *testing.T) {
		f := newFixture(t)
		target := scheduled(f.rules, "b1", upcoming(f.rules), 10, 13)
		done := target
		done.Status = schedule.StatusCompleted

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(target, nil)
		runInline(f)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(done, nil)

		_, err := f.svc.Extend(staff(), "b1", dto.ExtendBookingRequest{Hours: 1})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
