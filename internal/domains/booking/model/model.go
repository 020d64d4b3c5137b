package model

import (
	"slices"
	"time"

	"litrato/internal/domains/availability/schedule"
	"litrato/shared/model"
	"litrato/shared/timezone"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldRequestID      = "request_id"
	FieldPackageID      = "package_id"
	FieldCustomerID     = "customer_id"
	FieldEventDate      = "event_date"
	FieldEventStart     = "event_start"
	FieldEventEnd       = "event_end"
	FieldExtensionHours = "extension_duration"
	FieldStatus         = "status"
)

// transitions lists the statuses a booking may move to from each status.
var transitions = map[string][]string{
	schedule.StatusScheduled:  {schedule.StatusInProgress, schedule.StatusCancelled},
	schedule.StatusInProgress: {schedule.StatusCompleted, schedule.StatusCancelled},
}

type Booking struct {
	ID             string    `db:"id"`
	RequestID      string    `db:"request_id"`
	PackageID      string    `db:"package_id"`
	CustomerID     string    `db:"customer_id"`
	EventDate      time.Time `db:"event_date"`
	EventStart     time.Time `db:"event_start"`
	EventEnd       time.Time `db:"event_end"`
	ExtensionHours int       `db:"extension_duration"`
	Venue          string    `db:"venue"`
	ContactName    string    `db:"contact_name"`
	ContactPhone   string    `db:"contact_phone"`
	Notes          string    `db:"notes"`
	Status         string    `db:"status"`
	model.Metadata
}

func (b Booking) ToRecord() schedule.Record {
	return schedule.Record{
		Ref:            schedule.Ref{Source: schedule.SourceBooking, ID: b.ID},
		RequestID:      b.RequestID,
		PackageID:      b.PackageID,
		Status:         b.Status,
		EventStart:     timezone.Wall(b.EventStart),
		EventEnd:       timezone.Wall(b.EventEnd),
		ExtensionHours: b.ExtensionHours,
	}
}

func (b Booking) CanMoveTo(status string) bool {
	return slices.Contains(transitions[b.Status], status)
}

// Extendable reports whether the booking may still grow.
func (b Booking) Extendable() bool {
	return b.Status == schedule.StatusScheduled || b.Status == schedule.StatusInProgress
}
