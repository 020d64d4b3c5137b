package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"litrato/infras/otel/mocks"
	availabilityMocks "litrato/internal/domains/availability/mocks"
	"litrato/internal/domains/availability/schedule"
	"litrato/internal/domains/availability/service"
	packageMocks "litrato/internal/domains/packages/service/mocks"
	"litrato/shared/constant"
	"litrato/shared/failure"
	"litrato/shared/timezone"
)

type fixture struct {
	repo     *availabilityMocks.MockAvailability
	packages *packageMocks.MockPackage
	rules    schedule.Rules
	svc      service.Availability
}

func newFixture(t *testing.T, scope schedule.Scope) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	rules := schedule.DefaultRules()
	rules.Location = timezone.GetLocation()
	rules.Scope = scope

	f := fixture{
		repo:     availabilityMocks.NewMockAvailability(ctrl),
		packages: packageMocks.NewMockPackage(ctrl),
		rules:    rules,
	}
	f.svc = service.New(f.repo, f.packages, rules, mocks.NewOtel())

	return f
}

func hours(h float64) *float64 {
	return &h
}

func upcoming(rules schedule.Rules) time.Time {
	return rules.StartOfDay(timezone.Now()).AddDate(0, 0, 14)
}

func booking(rules schedule.Rules, id, pkg string, day time.Time, start, end int) schedule.Record {
	return schedule.Record{
		Ref:        schedule.Ref{Source: schedule.SourceBooking, ID: id},
		PackageID:  pkg,
		Status:     schedule.StatusScheduled,
		EventStart: rules.At(day, time.Duration(start)*time.Hour),
		EventEnd:   rules.At(day, time.Duration(end)*time.Hour),
	}
}

func TestAvailabilityService_Day(t *testing.T) {
	t.Run("invalid date never reaches storage", func(t *testing.T) {
		f := newFixture(t, schedule.ScopePackage)

		for _, raw := range []string{"", "2026-13-40", "yesterday", "1999-01-01"} {
			_, err := f.svc.Day(context.Background(), raw, "")
			require.ErrorIs(t, err, schedule.ErrInvalidDate, raw)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		}
	})

	t.Run("computes the calendar for the day", func(t *testing.T) {
		f := newFixture(t, schedule.ScopePackage)
		day := upcoming(f.rules)

		f.packages.EXPECT().Catalog(gomock.Any(), "").Return([]schedule.Package{{ID: "p1", Name: "Classic Booth", DurationHours: hours(3)}}, nil)
		f.repo.EXPECT().
			ActiveRecords(gomock.Any(), day.AddDate(0, 0, -1), day.AddDate(0, 0, 1), "").
			Return([]schedule.Record{booking(f.rules, "b1", "p1", day, 10, 13)}, nil)

		res, err := f.svc.Day(context.Background(), day.Format(constant.DayFormat), "")
		require.NoError(t, err)

		assert.Equal(t, day.Format(constant.DayFormat), res.Date)
		assert.Equal(t, "08:00", res.OpenAt)
		assert.Equal(t, "22:00", res.CloseAt)
		require.Len(t, res.Packages, 1)
		assert.Equal(t, string(schedule.StatusLimited), res.Packages[0].Status)
		assert.Len(t, res.Packages[0].Windows, 1)
		assert.Equal(t, []string{"b1"}, res.Packages[0].BookingIDs)
		require.Len(t, res.Bookings, 1)
		assert.Equal(t, 2, res.Bookings[0].PotentialExtensionHours)
	})

	t.Run("package filter under package scope", func(t *testing.T) {
		f := newFixture(t, schedule.ScopePackage)
		day := upcoming(f.rules)

		f.packages.EXPECT().Catalog(gomock.Any(), "p2").Return([]schedule.Package{{ID: "p2", DurationHours: hours(2)}}, nil)
		f.repo.EXPECT().ActiveRecords(gomock.Any(), gomock.Any(), gomock.Any(), "p2").Return(nil, nil)

		res, err := f.svc.Day(context.Background(), day.Format(constant.DayFormat), "p2")
		require.NoError(t, err)
		assert.Equal(t, string(schedule.StatusAvailable), res.Packages[0].Status)
	})

	t.Run("unknown package", func(t *testing.T) {
		f := newFixture(t, schedule.ScopePackage)

		f.packages.EXPECT().Catalog(gomock.Any(), "ghost").Return(nil, schedule.ErrPackageNotFound)

		_, err := f.svc.Day(context.Background(), upcoming(f.rules).Format(constant.DayFormat), "ghost")
		assert.ErrorIs(t, err, schedule.ErrPackageNotFound)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t, schedule.ScopePackage)

		f.packages.EXPECT().Catalog(gomock.Any(), "").Return(nil, nil)
		f.repo.EXPECT().ActiveRecords(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

		_, err := f.svc.Day(context.Background(), upcoming(f.rules).Format(constant.DayFormat), "")
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestAvailabilityService_Summary(t *testing.T) {
	t.Run("defaults to the next thirty days", func(t *testing.T) {
		f := newFixture(t, schedule.ScopePackage)
		today := f.rules.StartOfDay(timezone.Now())

		f.repo.EXPECT().
			BookingCounts(gomock.Any(), today, today.AddDate(0, 0, 30)).
			Return(map[string]int{today.Format(constant.DayFormat): 3}, nil)

		res, err := f.svc.Summary(context.Background(), "", "")
		require.NoError(t, err)
		assert.Equal(t, 3, res.Counts[today.Format(constant.DayFormat)])
		assert.Equal(t, today.Format(constant.DayFormat), res.From)
	})

	t.Run("reversed range", func(t *testing.T) {
		f := newFixture(t, schedule.ScopePackage)
		day := upcoming(f.rules)

		_, err := f.svc.Summary(context.Background(), day.Format(constant.DayFormat), day.AddDate(0, 0, -2).Format(constant.DayFormat))
		assert.ErrorIs(t, err, schedule.ErrInvalidDate)
	})

	t.Run("malformed bound", func(t *testing.T) {
		f := newFixture(t, schedule.ScopePackage)

		_, err := f.svc.Summary(context.Background(), "", "next week")
		assert.ErrorIs(t, err, schedule.ErrInvalidDate)
	})
}

func TestAvailabilityService_OccupancyTx(t *testing.T) {
	f := newFixture(t, schedule.ScopeGlobal)
	day := upcoming(f.rules)

	accepted := schedule.Record{
		Ref:        schedule.Ref{Source: schedule.SourceRequest, ID: "r1"},
		PackageID:  "p1",
		Status:     schedule.StatusAccepted,
		EventStart: f.rules.At(day, 10*time.Hour),
		EventEnd:   f.rules.At(day, 12*time.Hour),
	}
	promoted := booking(f.rules, "b1", "p1", day, 10, 12)
	promoted.RequestID = "r1"

	f.repo.EXPECT().
		ActiveRecordsTx(gomock.Any(), gomock.Nil(), day.AddDate(0, 0, -1), day.AddDate(0, 0, 1), "").
		Return([]schedule.Record{accepted, promoted, booking(f.rules, "b2", "p2", day, 15, 16)}, nil)

	got, err := f.svc.OccupancyTx(context.Background(), nil, "p1", f.rules.At(day, 18*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b1", got[0].Ref.ID)
	assert.Equal(t, "b2", got[1].Ref.ID)
}
