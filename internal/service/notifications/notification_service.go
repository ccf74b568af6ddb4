package notifications

import (
	"context"
	"fmt"

	"github.com/quickcourt/courtbooking/internal/domain"
	"github.com/quickcourt/courtbooking/internal/kafka"
	"github.com/quickcourt/courtbooking/internal/repository"
)

type NotificationUseCase interface {
	RecordEvent(ctx context.Context, event kafka.BookingEvent) error
	ListUserNotifications(ctx context.Context, userID int64) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

type NotificationService struct {
	notifications repository.NotificationRepository
}

func NewNotificationService(notifications repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

const listLimit = 50

// RecordEvent persists the in-app record for a booking lifecycle event.
// OTP mail and events without a user are delivery-only and leave no record.
func (s *NotificationService) RecordEvent(ctx context.Context, event kafka.BookingEvent) error {
	notification, ok := fromEvent(event)
	if !ok {
		return nil
	}
	return s.notifications.Create(ctx, notification)
}

func (s *NotificationService) ListUserNotifications(ctx context.Context, userID int64) ([]domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID, listLimit)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return s.notifications.MarkRead(ctx, userID, notificationID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notifications.MarkAllRead(ctx, userID)
}

func fromEvent(event kafka.BookingEvent) (*domain.Notification, bool) {
	if event.UserID == 0 {
		return nil, false
	}

	when := fmt.Sprintf("%s %s-%s", event.BookingDate, event.StartTime, event.EndTime)
	n := &domain.Notification{
		UserID:    event.UserID,
		BookingID: event.BookingID,
	}
	switch event.Type {
	case "booking_created":
		n.Type = domain.NotificationBookingReceived
		n.Title = "Booking received"
		n.Message = fmt.Sprintf("Your booking for %s is awaiting confirmation.", when)
	case "booking_confirmed":
		n.Type = domain.NotificationBookingConfirmed
		n.Title = "Booking confirmed"
		n.Message = fmt.Sprintf("Your booking for %s is confirmed.", when)
	case "booking_cancelled":
		n.Type = domain.NotificationBookingCancelled
		n.Title = "Booking cancelled"
		n.Message = fmt.Sprintf("Your booking for %s was cancelled.", when)
	case "booking_completed":
		n.Type = domain.NotificationBookingCompleted
		n.Title = "Booking completed"
		n.Message = fmt.Sprintf("Your booking for %s is complete. Leave a rating!", when)
	default:
		return nil, false
	}
	return n, true
}

var _ NotificationUseCase = (*NotificationService)(nil)
