package schedule

import (
	"cmp"
	"slices"
	"time"
)

type AvailabilityStatus string

const (
	StatusAvailable   AvailabilityStatus = "available"
	StatusLimited     AvailabilityStatus = "limited"
	StatusUnavailable AvailabilityStatus = "unavailable"
)

type Package struct {
	ID            string
	Name          string
	DurationHours *float64
}

// StartWindow is a free stretch of the operating day. Any start between
// EarliestStart and LatestStart fits the package duration plus buffers.
type StartWindow struct {
	GapStart      time.Time
	GapEnd        time.Time
	EarliestStart time.Time
	LatestStart   time.Time
}

type ExistingBooking struct {
	BookingInterval
	PotentialExtensionHours int
}

type PackageAvailability struct {
	PackageID     string
	PackageName   string
	DurationHours float64
	Status        AvailabilityStatus
	FreeTime      time.Duration
	Windows       []StartWindow
	BookingIDs    []string
}

type DailyAvailability struct {
	Date              time.Time
	OpenAt            time.Time
	CloseAt           time.Time
	BufferHours       float64
	MaxExtensionHours int
	Scope             Scope
	Packages          []PackageAvailability
	Bookings          []ExistingBooking
}

type span struct {
	start time.Time
	end   time.Time
}

// DurationFor resolves how long an event of the package lasts. The boolean is
// false when neither the package nor the defaults give a positive duration.
func (r Rules) DurationFor(pkg Package) (float64, bool) {
	hours := r.DefaultDurationHours
	if pkg.DurationHours != nil {
		hours = *pkg.DurationHours
	}

	return hours, hours > 0
}

// ComputeDailyAvailability builds the calendar view of one day. records may
// include rows from neighbouring days; anything whose buffers reach into the
// operating window is taken into account.
func (r Rules) ComputeDailyAvailability(date time.Time, packages []Package, records []Record) DailyAvailability {
	day := r.StartOfDay(date)
	openAt := day.Add(r.OpenAt)
	closeAt := day.Add(r.CloseAt)
	intervals := r.ActiveIntervals(records)

	result := DailyAvailability{
		Date:              day,
		OpenAt:            openAt,
		CloseAt:           closeAt,
		BufferHours:       r.Buffer.Hours(),
		MaxExtensionHours: r.MaxExtensionHours,
		Scope:             r.Scope,
		Packages:          make([]PackageAvailability, 0, len(packages)),
		Bookings:          []ExistingBooking{},
	}

	dayEnd := day.AddDate(0, 0, 1)
	for _, interval := range intervals {
		if !interval.BufferStart.Before(dayEnd) || !interval.BufferEnd.After(day) {
			continue
		}

		result.Bookings = append(result.Bookings, ExistingBooking{
			BookingInterval:         interval,
			PotentialExtensionHours: r.PotentialExtensionHours(interval, intervals),
		})
	}

	for _, pkg := range packages {
		hours, ok := r.DurationFor(pkg)
		if !ok {
			continue
		}

		result.Packages = append(result.Packages, r.packageAvailability(pkg, hours, openAt, closeAt, intervals))
	}

	return result
}

func (r Rules) packageAvailability(pkg Package, hours float64, openAt, closeAt time.Time, intervals []BookingInterval) PackageAvailability {
	duration := time.Duration(hours * float64(time.Hour))
	probe := BookingInterval{PackageID: pkg.ID}

	res := PackageAvailability{
		PackageID:     pkg.ID,
		PackageName:   pkg.Name,
		DurationHours: hours,
		Windows:       []StartWindow{},
		BookingIDs:    []string{},
	}

	var blocked []span

	for _, interval := range intervals {
		if !r.InScope(probe, interval) {
			continue
		}

		// a new event has to keep its own buffer clear of this footprint
		b := span{start: interval.BufferStart.Add(-r.Buffer), end: interval.BufferEnd.Add(r.Buffer)}
		if !b.start.Before(closeAt) || !b.end.After(openAt) {
			continue
		}

		blocked = append(blocked, b)
		res.BookingIDs = append(res.BookingIDs, interval.Ref.ID)
	}

	for _, gap := range freeGaps(openAt, closeAt, blocked) {
		if gap.end.Sub(gap.start) < duration {
			continue
		}

		res.Windows = append(res.Windows, StartWindow{
			GapStart:      gap.start,
			GapEnd:        gap.end,
			EarliestStart: gap.start,
			LatestStart:   gap.end.Add(-duration),
		})
		res.FreeTime += gap.end.Sub(gap.start)
	}

	footprint := duration + r.Buffer
	threshold := time.Duration(r.AvailableMultiplier * float64(footprint))

	switch {
	case len(res.Windows) == 0:
		res.Status = StatusUnavailable
	case len(blocked) == 0, res.FreeTime >= threshold:
		res.Status = StatusAvailable
	default:
		res.Status = StatusLimited
	}

	return res
}

// freeGaps returns the parts of [from, to] not covered by the blocked spans.
// Blocked spans are open, so a gap may start exactly where one ends.
func freeGaps(from, to time.Time, blocked []span) []span {
	sorted := slices.Clone(blocked)
	slices.SortFunc(sorted, func(a, b span) int {
		return cmp.Or(a.start.Compare(b.start), a.end.Compare(b.end))
	})

	var gaps []span

	cursor := from
	for _, b := range sorted {
		if b.start.After(cursor) {
			gaps = append(gaps, span{start: cursor, end: minTime(b.start, to)})
		}

		if b.end.After(cursor) {
			cursor = b.end
		}

		if !cursor.Before(to) {
			return gaps
		}
	}

	if cursor.Before(to) {
		gaps = append(gaps, span{start: cursor, end: to})
	}

	return gaps
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}

	return b
}
