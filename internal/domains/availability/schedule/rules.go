package schedule

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"litrato/config"
	"litrato/shared/constant"
	"litrato/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Scope string

const (
	// ScopePackage lets two different packages run at the same time.
	ScopePackage Scope = "package"
	// ScopeGlobal treats every package as drawing from one equipment pool.
	ScopeGlobal Scope = "global"
)

// Rules carries the booking window settings. It is a value type; the zero
// Location is treated as UTC.
type Rules struct {
	Buffer               time.Duration
	MaxExtensionHours    int
	OpenAt               time.Duration
	CloseAt              time.Duration
	DefaultDurationHours float64
	AvailableMultiplier  float64
	Scope                Scope
	Location             *time.Location
	MaxPastDays          int
	MaxFutureDays        int
}

func DefaultRules() Rules {
	return Rules{
		Buffer:               2 * time.Hour,
		MaxExtensionHours:    2,
		OpenAt:               8 * time.Hour,
		CloseAt:              22 * time.Hour,
		DefaultDurationHours: 2,
		AvailableMultiplier:  2,
		Scope:                ScopePackage,
		Location:             time.UTC,
		MaxPastDays:          365,
		MaxFutureDays:        730,
	}
}

func RulesFromConfig(cfg *config.Config, loc *time.Location) (Rules, error) {
	av := cfg.App.Availability

	openAt, err := parseClock(av.OpenTime)
	if err != nil {
		return Rules{}, fmt.Errorf("invalid open time %q: %w", av.OpenTime, err)
	}

	closeAt, err := parseClock(av.CloseTime)
	if err != nil {
		return Rules{}, fmt.Errorf("invalid close time %q: %w", av.CloseTime, err)
	}

	if closeAt <= openAt {
		return Rules{}, fmt.Errorf("close time %s must be after open time %s", av.CloseTime, av.OpenTime)
	}

	scope := Scope(strings.ToLower(strings.TrimSpace(av.Scope)))
	switch scope {
	case ScopePackage, ScopeGlobal:
	case "":
		scope = ScopePackage
	default:
		return Rules{}, fmt.Errorf("unknown conflict scope %q", av.Scope)
	}

	if loc == nil {
		loc = time.UTC
	}

	return Rules{
		Buffer:               time.Duration(max(av.BufferHours, 0)) * time.Hour,
		MaxExtensionHours:    max(av.MaxExtensionHours, 0),
		OpenAt:               openAt,
		CloseAt:              closeAt,
		DefaultDurationHours: av.DefaultDurationHrs,
		AvailableMultiplier:  av.AvailableMultiplier,
		Scope:                scope,
		Location:             loc,
		MaxPastDays:          av.MaxPastDays,
		MaxFutureDays:        av.MaxFutureDays,
	}, nil
}

// NewRules reads the rules from config in the application time zone. A
// config that does not parse stops the process.
func NewRules(cfg *config.Config) Rules {
	rules, err := RulesFromConfig(cfg, timezone.GetLocation())
	if err != nil {
		log.Fatal().Err(err).Msg("invalid availability configuration")
	}

	return rules
}

func parseClock(raw string) (time.Duration, error) {
	t, err := time.Parse(constant.ClockFormat, strings.TrimSpace(raw))
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func (r Rules) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}

	return r.Location
}

// StartOfDay truncates t to local midnight.
func (r Rules) StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(r.location()).Date()

	return time.Date(y, m, d, 0, 0, 0, 0, r.location())
}

// ParseDay reads a YYYY-MM-DD date and checks it against the accepted range
// around now.
func (r Rules) ParseDay(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDate
	}

	day, err := time.ParseInLocation(constant.DayFormat, raw, r.location())
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	today := r.StartOfDay(now)
	if day.Before(today.AddDate(0, 0, -r.MaxPastDays)) || day.After(today.AddDate(0, 0, r.MaxFutureDays)) {
		return time.Time{}, ErrInvalidDate
	}

	return day, nil
}

// At combines a day and a clock offset into an absolute timestamp.
func (r Rules) At(day time.Time, clock time.Duration) time.Time {
	return r.StartOfDay(day).Add(clock)
}

// CheckOpeningHours refuses an event, given as offsets from midnight, that
// starts before OpenAt or ends after CloseAt. Extension hours may run past
// closing.
func (r Rules) CheckOpeningHours(start, end time.Duration) error {
	if start < r.OpenAt || end > r.CloseAt {
		return ErrOutsideHours
	}

	return nil
}

// LockKey names the slice of the calendar a write has to serialize on.
func (r Rules) LockKey(packageID string, day time.Time) string {
	date := r.StartOfDay(day).Format(constant.DayFormat)
	if r.Scope == ScopeGlobal {
		return "global:" + date
	}

	return "package:" + packageID + ":" + date
}

func (r Rules) Interval(record Record) (BookingInterval, error) {
	return ToInterval(record, r.Buffer)
}

// ActiveIntervals maps the records that occupy the calendar. Inactive rows
// are dropped, as are requests that were promoted into a booking: from then
// on the booking owns the slot, even once it is cancelled. Rows with broken
// times are logged and skipped.
func (r Rules) ActiveIntervals(records []Record) []BookingInterval {
	promoted := map[string]struct{}{}

	for _, rec := range records {
		if rec.Ref.Source == SourceBooking && rec.RequestID != "" {
			promoted[rec.RequestID] = struct{}{}
		}
	}

	intervals := make([]BookingInterval, 0, len(records))

	for _, rec := range records {
		if !IsActive(rec.Ref.Source, rec.Status) {
			continue
		}

		if rec.Ref.Source == SourceRequest {
			if _, ok := promoted[rec.Ref.ID]; ok {
				continue
			}
		}

		interval, err := r.Interval(rec)
		if err != nil {
			log.Warn().Err(err).Str("source", string(rec.Ref.Source)).Str("id", rec.Ref.ID).Msg("skipping record with invalid interval")

			continue
		}

		intervals = append(intervals, interval)
	}

	slices.SortStableFunc(intervals, func(a, b BookingInterval) int {
		return cmp.Or(
			a.BufferStart.Compare(b.BufferStart),
			a.BufferEnd.Compare(b.BufferEnd),
			cmp.Compare(a.Ref.ID, b.Ref.ID),
		)
	})

	return intervals
}
