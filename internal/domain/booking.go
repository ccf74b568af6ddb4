package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// ActiveBookingStatuses are the statuses that block the court interval.
// Cancelled, completed and no_show bookings free the slot.
var ActiveBookingStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

type Booking struct {
	ID          int64
	BookingID   string // external uuid, distinct from the row key
	UserID      int64
	UserEmail   string // joined from users, read-only
	CourtID     int64
	FacilityID  int64
	BookingDate time.Time
	StartTime   TimeOfDay
	EndTime     TimeOfDay

	// Snapshotted at creation: later court price changes never touch them.
	DurationHours decimal.Decimal
	PricePerHour  decimal.Decimal
	TotalAmount   decimal.Decimal

	Status        BookingStatus
	PaymentStatus PaymentStatus

	SpecialRequests    string
	CancellationReason string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// Overlaps applies the half-open interval predicate against this booking.
func (b *Booking) Overlaps(start, end TimeOfDay) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCancelled, BookingStatusCompleted, BookingStatusNoShow},
}

// CanTransition reports whether a booking status change is legal.
// Cancelled, completed and no_show are terminal.
func CanTransition(from, to BookingStatus) bool {
	for _, s := range bookingTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending: {PaymentStatusPaid, PaymentStatusFailed},
	PaymentStatusPaid:    {PaymentStatusRefunded},
}

// CanTransitionPayment covers the independent payment axis.
func CanTransitionPayment(from, to PaymentStatus) bool {
	for _, s := range paymentTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// DurationHoursBetween converts a half-open interval into hours, quantized
// to two decimal places. Decimal arithmetic keeps fractional hours exact
// (45 minutes is 0.75, never 0.7500000001), so monetary totals do not
// accumulate binary floating point drift.
func DurationHoursBetween(start, end TimeOfDay) decimal.Decimal {
	minutes := end.Minutes() - start.Minutes()
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(2)
}
