// Package schedule holds the booking window rules: how a stored reservation
// becomes a buffered interval, when two intervals collide, and which start
// times remain free on a given day. Everything here is pure; callers load the
// records and pass them in.
package schedule

import (
	"slices"
	"time"
)

type Source string

const (
	SourceRequest Source = "request"
	SourceBooking Source = "booking"
)

// Request states.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
	StatusDeclined = "declined"
)

// Confirmed booking states.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// StatusCancelled is shared by both sources.
const StatusCancelled = "cancelled"

var (
	activeRequestStatuses = []string{StatusPending, StatusAccepted}
	activeBookingStatuses = []string{StatusScheduled, StatusInProgress, StatusCompleted}
)

// ActiveStatuses lists the states of a source that occupy the calendar.
func ActiveStatuses(source Source) []string {
	switch source {
	case SourceRequest:
		return slices.Clone(activeRequestStatuses)
	case SourceBooking:
		return slices.Clone(activeBookingStatuses)
	default:
		return nil
	}
}

func IsActive(source Source, status string) bool {
	return slices.Contains(ActiveStatuses(source), status)
}

type Ref struct {
	Source Source
	ID     string
}

// Record is the source-neutral shape of a stored reservation. Both booking
// requests and confirmed bookings map into it at the storage boundary.
type Record struct {
	Ref            Ref
	RequestID      string
	PackageID      string
	Status         string
	EventStart     time.Time
	EventEnd       time.Time
	ExtensionHours int
}

type BookingInterval struct {
	Ref            Ref
	RequestID      string
	PackageID      string
	Status         string
	ExtensionHours int
	EventStart     time.Time
	EventEnd       time.Time
	BufferStart    time.Time
	BufferEnd      time.Time
}

// ToInterval applies the extension and the buffer to a record. The event end
// must fall strictly after the start; events that wrap past midnight have to
// be stored with their real end timestamp.
func ToInterval(record Record, buffer time.Duration) (BookingInterval, error) {
	if record.EventStart.IsZero() || !record.EventEnd.After(record.EventStart) {
		return BookingInterval{}, ErrInvalidInterval
	}

	if record.ExtensionHours < 0 {
		return BookingInterval{}, ErrInvalidExtension
	}

	if buffer < 0 {
		buffer = 0
	}

	eventEnd := record.EventEnd.Add(time.Duration(record.ExtensionHours) * time.Hour)

	return BookingInterval{
		Ref:            record.Ref,
		RequestID:      record.RequestID,
		PackageID:      record.PackageID,
		Status:         record.Status,
		ExtensionHours: record.ExtensionHours,
		EventStart:     record.EventStart,
		EventEnd:       eventEnd,
		BufferStart:    record.EventStart.Add(-buffer),
		BufferEnd:      eventEnd.Add(buffer),
	}, nil
}

// Overlaps reports whether the buffered ranges intersect. Ranges that only
// touch at an endpoint do not overlap.
func (b BookingInterval) Overlaps(other BookingInterval) bool {
	return b.BufferStart.Before(other.BufferEnd) && b.BufferEnd.After(other.BufferStart)
}

// SameRecord matches by identity: the same row, or a confirmed booking and
// the request it was promoted from.
func (b BookingInterval) SameRecord(other BookingInterval) bool {
	if b.Ref.ID != "" && b.Ref == other.Ref {
		return true
	}

	if b.Ref.Source == SourceBooking && b.RequestID != "" && other.Ref == (Ref{Source: SourceRequest, ID: b.RequestID}) {
		return true
	}

	return other.Ref.Source == SourceBooking && other.RequestID != "" && b.Ref == (Ref{Source: SourceRequest, ID: other.RequestID})
}

// Extend returns a copy of the interval with hours added to the event end.
func (b BookingInterval) Extend(hours int) BookingInterval {
	extra := time.Duration(hours) * time.Hour

	b.ExtensionHours += hours
	b.EventEnd = b.EventEnd.Add(extra)
	b.BufferEnd = b.BufferEnd.Add(extra)

	return b
}
