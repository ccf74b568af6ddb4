package domain

import "time"

type NotificationType string

const (
	NotificationBookingReceived  NotificationType = "booking_received"
	NotificationBookingConfirmed NotificationType = "booking_confirmed"
	NotificationBookingCancelled NotificationType = "booking_cancelled"
	NotificationBookingCompleted NotificationType = "booking_completed"
)

// Notification is the persisted in-app record behind every notification
// e-mail. Users list their own records and mark them read.
type Notification struct {
	ID        int64
	UserID    int64
	Type      NotificationType
	Title     string
	Message   string
	BookingID string
	IsRead    bool
	CreatedAt time.Time
}
