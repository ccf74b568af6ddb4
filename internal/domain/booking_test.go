package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDurationHoursBetween(t *testing.T) {
	testCases := []struct {
		start, end string
		expected   string
	}{
		{"14:00", "16:00", "2"},
		{"09:00", "09:45", "0.75"},
		{"10:00", "11:30", "1.5"},
		{"09:00", "09:05", "0.08"}, // 5/60 rounded to hundredths
		{"00:00", "23:59", "23.98"},
	}

	for _, tc := range testCases {
		start, err := ParseTimeOfDay(tc.start)
		assert.NoError(t, err)
		end, err := ParseTimeOfDay(tc.end)
		assert.NoError(t, err)
		assert.Equal(t, tc.expected, DurationHoursBetween(start, end).String(),
			"[%s, %s)", tc.start, tc.end)
	}
}

func TestCanTransition(t *testing.T) {
	testCases := []struct {
		from, to BookingStatus
		allowed  bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusCompleted, false},
		{BookingStatusPending, BookingStatusNoShow, false},
		{BookingStatusConfirmed, BookingStatusCompleted, true},
		{BookingStatusConfirmed, BookingStatusNoShow, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusNoShow, BookingStatusConfirmed, false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCanTransitionPayment(t *testing.T) {
	assert.True(t, CanTransitionPayment(PaymentStatusPending, PaymentStatusPaid))
	assert.True(t, CanTransitionPayment(PaymentStatusPending, PaymentStatusFailed))
	assert.True(t, CanTransitionPayment(PaymentStatusPaid, PaymentStatusRefunded))
	assert.False(t, CanTransitionPayment(PaymentStatusRefunded, PaymentStatusPaid))
	assert.False(t, CanTransitionPayment(PaymentStatusFailed, PaymentStatusRefunded))
}

func TestBookingIsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: BookingStatusPending}).IsActive())
	assert.True(t, (&Booking{Status: BookingStatusConfirmed}).IsActive())
	assert.False(t, (&Booking{Status: BookingStatusCancelled}).IsActive())
	assert.False(t, (&Booking{Status: BookingStatusCompleted}).IsActive())
	assert.False(t, (&Booking{Status: BookingStatusNoShow}).IsActive())
}

func TestCourtBookable(t *testing.T) {
	court := &Court{Status: CourtStatusActive, IsAvailable: true}
	assert.True(t, court.Bookable())

	court.Status = CourtStatusMaintenance
	assert.False(t, court.Bookable())

	court.Status = CourtStatusActive
	court.IsAvailable = false
	assert.False(t, court.Bookable())
}
