package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"litrato/internal/domains/availability/schedule"
)

func hours(h float64) *float64 {
	return &h
}

func TestRules_ComputeDailyAvailability_EmptyDay(t *testing.T) {
	rules := schedule.DefaultRules()
	packages := []schedule.Package{
		{ID: "p1", Name: "Classic Booth", DurationHours: hours(3)},
		{ID: "p2", Name: "Mirror Booth"},
	}

	got := rules.ComputeDailyAvailability(eventDay, packages, nil)

	assert.Equal(t, at(8, 0), got.OpenAt)
	assert.Equal(t, at(22, 0), got.CloseAt)
	assert.Empty(t, got.Bookings)
	require.Len(t, got.Packages, 2)

	for _, pkg := range got.Packages {
		assert.Equal(t, schedule.StatusAvailable, pkg.Status)
		require.Len(t, pkg.Windows, 1)
		assert.Equal(t, at(8, 0), pkg.Windows[0].GapStart)
		assert.Equal(t, at(22, 0), pkg.Windows[0].GapEnd)
		assert.Equal(t, at(8, 0), pkg.Windows[0].EarliestStart)
	}

	assert.Equal(t, at(19, 0), got.Packages[0].Windows[0].LatestStart)
	assert.Equal(t, 2.0, got.Packages[1].DurationHours)
	assert.Equal(t, at(20, 0), got.Packages[1].Windows[0].LatestStart)
}

func TestRules_ComputeDailyAvailability_BookedDay(t *testing.T) {
	rules := schedule.DefaultRules()
	packages := []schedule.Package{{ID: "p1", Name: "Classic Booth", DurationHours: hours(3)}}

	got := rules.ComputeDailyAvailability(eventDay, packages, []schedule.Record{booking("b1", "p1", 10, 13)})

	require.Len(t, got.Packages, 1)
	pkg := got.Packages[0]

	require.Len(t, pkg.Windows, 1)
	assert.Equal(t, at(17, 0), pkg.Windows[0].EarliestStart)
	assert.Equal(t, at(19, 0), pkg.Windows[0].LatestStart)
	assert.Equal(t, 5*time.Hour, pkg.FreeTime)
	assert.Equal(t, schedule.StatusLimited, pkg.Status)
	assert.Equal(t, []string{"b1"}, pkg.BookingIDs)

	require.Len(t, got.Bookings, 1)
	assert.Equal(t, at(8, 0), got.Bookings[0].BufferStart)
	assert.Equal(t, at(15, 0), got.Bookings[0].BufferEnd)
	assert.Equal(t, 2, got.Bookings[0].PotentialExtensionHours)
}

func TestRules_ComputeDailyAvailability_Status(t *testing.T) {
	rules := schedule.DefaultRules()

	tests := []struct {
		name       string
		duration   float64
		records    []schedule.Record
		wantStatus schedule.AvailabilityStatus
		wantWindow int
	}{
		{
			name:       "late booking leaves a long morning",
			duration:   2,
			records:    []schedule.Record{booking("b1", "p1", 20, 22)},
			wantStatus: schedule.StatusAvailable,
			wantWindow: 1,
		},
		{
			name:       "one short window left",
			duration:   3,
			records:    []schedule.Record{booking("b1", "p1", 10, 13)},
			wantStatus: schedule.StatusLimited,
			wantWindow: 1,
		},
		{
			name:       "nothing fits",
			duration:   3,
			records:    []schedule.Record{booking("b1", "p1", 10, 13), booking("b2", "p1", 17, 20)},
			wantStatus: schedule.StatusUnavailable,
			wantWindow: 0,
		},
		{
			name:       "other package bookings do not count",
			duration:   3,
			records:    []schedule.Record{booking("b1", "p2", 10, 13)},
			wantStatus: schedule.StatusAvailable,
			wantWindow: 1,
		},
		{
			name:       "cancelled bookings do not count",
			duration:   3,
			records:    []schedule.Record{withStatus(booking("b1", "p1", 10, 13), schedule.StatusCancelled)},
			wantStatus: schedule.StatusAvailable,
			wantWindow: 1,
		},
		{
			name:       "longer than the operating day",
			duration:   15,
			wantStatus: schedule.StatusUnavailable,
			wantWindow: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rules.ComputeDailyAvailability(eventDay, []schedule.Package{{ID: "p1", DurationHours: hours(tt.duration)}}, tt.records)

			require.Len(t, got.Packages, 1)
			assert.Equal(t, tt.wantStatus, got.Packages[0].Status)
			assert.Len(t, got.Packages[0].Windows, tt.wantWindow)
		})
	}
}

func TestRules_ComputeDailyAvailability_GlobalScope(t *testing.T) {
	rules := schedule.DefaultRules()
	rules.Scope = schedule.ScopeGlobal

	got := rules.ComputeDailyAvailability(eventDay, []schedule.Package{
		{ID: "p1", DurationHours: hours(3)},
		{ID: "p2", DurationHours: hours(3)},
	}, []schedule.Record{booking("b1", "p2", 10, 13)})

	for _, pkg := range got.Packages {
		assert.Equal(t, schedule.StatusLimited, pkg.Status)
		assert.Equal(t, []string{"b1"}, pkg.BookingIDs)
	}
}

func TestRules_ComputeDailyAvailability_SkipsUnusablePackages(t *testing.T) {
	rules := schedule.DefaultRules()
	rules.DefaultDurationHours = 0

	got := rules.ComputeDailyAvailability(eventDay, []schedule.Package{
		{ID: "p1"},
		{ID: "p2", DurationHours: hours(0)},
		{ID: "p3", DurationHours: hours(2.5)},
	}, nil)

	require.Len(t, got.Packages, 1)
	assert.Equal(t, "p3", got.Packages[0].PackageID)
	assert.Equal(t, at(19, 30), got.Packages[0].Windows[0].LatestStart)
}

func TestRules_ComputeDailyAvailability_NeighbouringDays(t *testing.T) {
	rules := schedule.DefaultRules()

	late := schedule.Record{
		Ref:        schedule.Ref{Source: schedule.SourceBooking, ID: "prev"},
		PackageID:  "p1",
		Status:     schedule.StatusScheduled,
		EventStart: at(-4, 0),
		EventEnd:   at(5, 0),
	}

	got := rules.ComputeDailyAvailability(eventDay, []schedule.Package{{ID: "p1", DurationHours: hours(2)}}, []schedule.Record{late})

	require.Len(t, got.Packages[0].Windows, 1)
	assert.Equal(t, at(9, 0), got.Packages[0].Windows[0].EarliestStart)
	assert.Len(t, got.Bookings, 1)
}

func TestRules_ComputeDailyAvailability_Idempotent(t *testing.T) {
	rules := schedule.DefaultRules()
	packages := []schedule.Package{{ID: "p1", DurationHours: hours(3)}, {ID: "p2", DurationHours: hours(2)}}
	records := []schedule.Record{
		booking("b2", "p1", 17, 19),
		request("r1", "p2", 9, 11),
		booking("b1", "p1", 10, 12),
	}

	first := rules.ComputeDailyAvailability(eventDay, packages, records)
	second := rules.ComputeDailyAvailability(eventDay, packages, records)

	assert.Equal(t, first, second)
}

func TestRules_ComputeDailyAvailability_WindowsAreBookable(t *testing.T) {
	rules := schedule.DefaultRules()
	rules.Buffer = time.Hour
	records := []schedule.Record{
		booking("b1", "p1", 9, 10),
		request("r1", "p1", 15, 16),
		booking("b2", "p1", 21, 22),
	}
	packages := []schedule.Package{{ID: "p1", DurationHours: hours(1)}}

	got := rules.ComputeDailyAvailability(eventDay, packages, records)
	existing := rules.ActiveIntervals(records)

	require.Len(t, got.Packages[0].Windows, 2)
	assert.Equal(t, at(12, 0), got.Packages[0].Windows[0].EarliestStart)
	assert.Equal(t, at(18, 0), got.Packages[0].Windows[1].EarliestStart)

	for _, window := range got.Packages[0].Windows {
		assert.GreaterOrEqual(t, window.GapEnd.Sub(window.GapStart), time.Hour)

		for _, start := range []time.Time{window.EarliestStart, window.LatestStart} {
			candidate, err := rules.Interval(schedule.Record{
				Ref:        schedule.Ref{Source: schedule.SourceRequest, ID: "probe"},
				PackageID:  "p1",
				Status:     schedule.StatusPending,
				EventStart: start,
				EventEnd:   start.Add(time.Hour),
			})
			require.NoError(t, err)

			assert.Empty(t, rules.FindConflicts(candidate, existing), "start %s", start)
		}
	}
}
