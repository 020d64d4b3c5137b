package dto

import (
	"litrato/internal/domains/booking/model"
	"litrato/shared"
	"litrato/shared/constant"
	gDto "litrato/shared/dto"
	"litrato/shared/timezone"
)

type UpdateBookingStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=in_progress completed cancelled"`
}

type ExtendBookingRequest struct {
	Hours int `json:"hours" validate:"required,min=1"`
}

type BookingResponse struct {
	ID             string `json:"id"`
	RequestID      string `json:"request_id"`
	PackageID      string `json:"package_id"`
	CustomerID     string `json:"customer_id"`
	EventDate      string `json:"event_date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	ExtensionHours int    `json:"extension_hours"`
	Venue          string `json:"venue"`
	ContactName    string `json:"contact_name"`
	ContactPhone   string `json:"contact_phone"`
	Notes          string `json:"notes"`
	Status         string `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RequestID = model.RequestID
	r.PackageID = model.PackageID
	r.CustomerID = model.CustomerID
	r.EventDate = model.EventDate.Format(constant.DayFormat)
	r.StartTime = timezone.Wall(model.EventStart).Format(constant.ClockFormat)
	r.EndTime = timezone.Wall(model.EventEnd).Format(constant.ClockFormat)
	r.ExtensionHours = model.ExtensionHours
	r.Venue = model.Venue
	r.ContactName = model.ContactName
	r.ContactPhone = model.ContactPhone
	r.Notes = model.Notes
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// ExtensionConflictsResponse answers an extension preflight. Conflicts is
// empty when the extension fits.
type ExtensionConflictsResponse struct {
	BookingID               string   `json:"booking_id"`
	Hours                   int      `json:"hours"`
	RemainingHours          int      `json:"remaining_hours"`
	PotentialExtensionHours int      `json:"potential_extension_hours"`
	Conflicts               []string `json:"conflicts"`
}
