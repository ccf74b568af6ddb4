package domain

import "github.com/shopspring/decimal"

// DashboardKPIs aggregates an owner's facilities. TotalEarnings sums
// total_amount over bookings with payment_status = paid; booking status is
// never consulted for money.
type DashboardKPIs struct {
	TotalBookings   int64
	ActiveCourts    int64
	TotalEarnings   decimal.Decimal
	PendingBookings int64
}

type PeakHour struct {
	Hour     TimeOfDay
	Bookings int64
}
