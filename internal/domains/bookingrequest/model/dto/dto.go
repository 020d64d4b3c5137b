package dto

import (
	"time"

	"litrato/internal/domains/availability/schedule"
	"litrato/internal/domains/bookingrequest/model"
	"litrato/shared"
	"litrato/shared/constant"
	gDto "litrato/shared/dto"
	gModel "litrato/shared/model"
	"litrato/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequestRequest struct {
	PackageID      string `json:"package_id"      validate:"required,max=36"`
	EventDate      string `json:"event_date"      validate:"required"`
	StartTime      string `json:"start_time"      validate:"required,datetime=15:04"`
	EndTime        string `json:"end_time"        validate:"required,datetime=15:04"`
	ExtensionHours int    `json:"extension_hours" validate:"min=0"`
	Venue          string `json:"venue"           validate:"required,max=255"`
	ContactName    string `json:"contact_name"    validate:"required,max=100"`
	ContactPhone   string `json:"contact_phone"   validate:"required,max=20"`
	Notes          string `json:"notes"           validate:"omitempty,max=1000"`
}

// ToModel resolves the wall-clock times against the event date. The end has
// to fall after the start on the same day and inside opening hours.
func (c *CreateBookingRequestRequest) ToModel(rules schedule.Rules, now time.Time, customerID string) (model.BookingRequest, error) {
	day, err := rules.ParseDay(c.EventDate, now)
	if err != nil {
		return model.BookingRequest{}, err //nolint:wrapcheck
	}

	start, err := time.Parse(constant.ClockFormat, c.StartTime)
	if err != nil {
		return model.BookingRequest{}, schedule.ErrInvalidInterval
	}

	end, err := time.Parse(constant.ClockFormat, c.EndTime)
	if err != nil {
		return model.BookingRequest{}, schedule.ErrInvalidInterval
	}

	if !end.After(start) {
		return model.BookingRequest{}, schedule.ErrInvalidInterval
	}

	if c.ExtensionHours > rules.MaxExtensionHours {
		return model.BookingRequest{}, schedule.ErrInvalidExtension
	}

	startClock := time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute
	endClock := time.Duration(end.Hour())*time.Hour + time.Duration(end.Minute())*time.Minute

	if err = rules.CheckOpeningHours(startClock, endClock); err != nil {
		return model.BookingRequest{}, err //nolint:wrapcheck
	}

	eventStart := rules.At(day, startClock)
	eventEnd := rules.At(day, endClock)

	return model.BookingRequest{
		ID:             uuid.NewString(),
		PackageID:      c.PackageID,
		CustomerID:     customerID,
		EventDate:      day,
		EventStart:     eventStart,
		EventEnd:       eventEnd,
		ExtensionHours: c.ExtensionHours,
		Venue:          c.Venue,
		ContactName:    c.ContactName,
		ContactPhone:   c.ContactPhone,
		Notes:          c.Notes,
		Status:         schedule.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  customerID,
			ModifiedBy: customerID,
		},
	}, nil
}

type RejectBookingRequestRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type BookingRequestResponse struct {
	ID             string `json:"id"`
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
	RejectReason   string `json:"reject_reason,omitempty"`
	BookingID      string `json:"booking_id,omitempty"`
	gDto.Metadata
}

func (r *BookingRequestResponse) FromModel(model model.BookingRequest) {
	r.ID = model.ID
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
	r.RejectReason = model.RejectReason
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingRequestsResponse struct {
	BookingRequests []BookingRequestResponse `json:"booking_requests"`
	TotalPage       int                      `json:"total_page"`
	TotalData       int                      `json:"total_data"`
}

func (r *GetBookingRequestsResponse) FromModels(models []model.BookingRequest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.BookingRequests = make([]BookingRequestResponse, len(models))
	for i, mod := range models {
		r.BookingRequests[i].FromModel(mod)
	}
}
