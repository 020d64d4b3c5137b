package dto

import (
	"time"

	"litrato/internal/domains/availability/schedule"
	"litrato/shared/constant"
	"litrato/shared/timezone"
)

type StartWindowResponse struct {
	GapStart      string `json:"gap_start"`
	GapEnd        string `json:"gap_end"`
	EarliestStart string `json:"earliest_start"`
	LatestStart   string `json:"latest_start"`
}

type PackageAvailabilityResponse struct {
	PackageID     string                `json:"package_id"`
	PackageName   string                `json:"package_name"`
	DurationHours float64               `json:"duration_hours"`
	Status        string                `json:"status"`
	FreeHours     float64               `json:"free_hours"`
	Windows       []StartWindowResponse `json:"windows"`
	BookingIDs    []string              `json:"booking_ids"`
}

type ExistingBookingResponse struct {
	ID                      string `json:"id"`
	Source                  string `json:"source"`
	PackageID               string `json:"package_id"`
	Status                  string `json:"status"`
	EventStart              string `json:"event_start"`
	EventEnd                string `json:"event_end"`
	BufferStart             string `json:"buffer_start"`
	BufferEnd               string `json:"buffer_end"`
	ExtensionHours          int    `json:"extension_hours"`
	PotentialExtensionHours int    `json:"potential_extension_hours"`
}

type DailyAvailabilityResponse struct {
	Date              string                        `json:"date"`
	OpenAt            string                        `json:"open_at"`
	CloseAt           string                        `json:"close_at"`
	BufferHours       float64                       `json:"buffer_hours"`
	MaxExtensionHours int                           `json:"max_extension_hours"`
	Scope             string                        `json:"scope"`
	Packages          []PackageAvailabilityResponse `json:"packages"`
	Bookings          []ExistingBookingResponse     `json:"bookings"`
}

func stamp(t time.Time) string {
	return timezone.Format(t, constant.DateFormat)
}

func (r *DailyAvailabilityResponse) FromSchedule(daily schedule.DailyAvailability) {
	r.Date = daily.Date.Format(constant.DayFormat)
	r.OpenAt = daily.OpenAt.Format(constant.ClockFormat)
	r.CloseAt = daily.CloseAt.Format(constant.ClockFormat)
	r.BufferHours = daily.BufferHours
	r.MaxExtensionHours = daily.MaxExtensionHours
	r.Scope = string(daily.Scope)

	r.Packages = make([]PackageAvailabilityResponse, len(daily.Packages))
	for i, pkg := range daily.Packages {
		windows := make([]StartWindowResponse, len(pkg.Windows))
		for j, window := range pkg.Windows {
			windows[j] = StartWindowResponse{
				GapStart:      stamp(window.GapStart),
				GapEnd:        stamp(window.GapEnd),
				EarliestStart: stamp(window.EarliestStart),
				LatestStart:   stamp(window.LatestStart),
			}
		}

		r.Packages[i] = PackageAvailabilityResponse{
			PackageID:     pkg.PackageID,
			PackageName:   pkg.PackageName,
			DurationHours: pkg.DurationHours,
			Status:        string(pkg.Status),
			FreeHours:     pkg.FreeTime.Hours(),
			Windows:       windows,
			BookingIDs:    append([]string{}, pkg.BookingIDs...),
		}
	}

	r.Bookings = make([]ExistingBookingResponse, len(daily.Bookings))
	for i, booking := range daily.Bookings {
		r.Bookings[i] = ExistingBookingResponse{
			ID:                      booking.Ref.ID,
			Source:                  string(booking.Ref.Source),
			PackageID:               booking.PackageID,
			Status:                  booking.Status,
			EventStart:              stamp(booking.EventStart),
			EventEnd:                stamp(booking.EventEnd),
			BufferStart:             stamp(booking.BufferStart),
			BufferEnd:               stamp(booking.BufferEnd),
			ExtensionHours:          booking.ExtensionHours,
			PotentialExtensionHours: booking.PotentialExtensionHours,
		}
	}
}

type SummaryResponse struct {
	From   string         `json:"from"`
	To     string         `json:"to"`
	Counts map[string]int `json:"counts"`
}
