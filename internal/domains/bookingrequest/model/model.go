package model

import (
	"time"

	"litrato/internal/domains/availability/schedule"
	bookingModel "litrato/internal/domains/booking/model"
	"litrato/shared/model"
	"litrato/shared/timezone"

	"github.com/google/uuid"
)

const (
	TableName  = "booking_requests"
	EntityName = "booking_request"

	FieldID             = "id"
	FieldPackageID      = "package_id"
	FieldCustomerID     = "customer_id"
	FieldEventDate      = "event_date"
	FieldExtensionHours = "extension_duration"
	FieldStatus         = "status"
	FieldRejectReason   = "reject_reason"
)

type BookingRequest struct {
	ID             string    `db:"id"`
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
	RejectReason   string    `db:"reject_reason"`
	model.Metadata
}

func (r BookingRequest) ToRecord() schedule.Record {
	return schedule.Record{
		Ref:            schedule.Ref{Source: schedule.SourceRequest, ID: r.ID},
		PackageID:      r.PackageID,
		Status:         r.Status,
		EventStart:     timezone.Wall(r.EventStart),
		EventEnd:       timezone.Wall(r.EventEnd),
		ExtensionHours: r.ExtensionHours,
	}
}

// ToBooking promotes an accepted request into a confirmed booking.
func (r BookingRequest) ToBooking(user string) bookingModel.Booking {
	now := timezone.Now()

	return bookingModel.Booking{
		ID:             uuid.NewString(),
		RequestID:      r.ID,
		PackageID:      r.PackageID,
		CustomerID:     r.CustomerID,
		EventDate:      r.EventDate,
		EventStart:     r.EventStart,
		EventEnd:       r.EventEnd,
		ExtensionHours: r.ExtensionHours,
		Venue:          r.Venue,
		ContactName:    r.ContactName,
		ContactPhone:   r.ContactPhone,
		Notes:          r.Notes,
		Status:         schedule.StatusScheduled,
		Metadata: model.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}
