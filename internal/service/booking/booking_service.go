package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/quickcourt/courtbooking/internal/domain"
	"github.com/quickcourt/courtbooking/internal/kafka"
	"github.com/quickcourt/courtbooking/internal/repository"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, bookingID string, input UpdateBookingInput) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, bookingID string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID, reason string) (*domain.Booking, error)
	MarkBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error)
	SetPaymentStatus(ctx context.Context, bookingID string, status domain.PaymentStatus) (*domain.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error)
	ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error)
	AvailableSlots(ctx context.Context, courtID int64, date time.Time) ([]domain.TimeSlot, error)
	CompleteElapsedBookings(ctx context.Context) ([]domain.Booking, error)
}

type Cache interface {
	AcquireSlotLock(ctx context.Context, courtID int64, date string, start, end domain.TimeOfDay, ttl time.Duration) (bool, error)
	ReleaseSlotLock(ctx context.Context, courtID int64, date string, start, end domain.TimeOfDay) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	courts             repository.CourtRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	holdTTL            time.Duration
	now                func() time.Time
}

type CreateBookingInput struct {
	UserID          int64
	UserEmail       string
	CourtID         int64
	BookingDate     time.Time
	StartTime       domain.TimeOfDay
	EndTime         domain.TimeOfDay
	SpecialRequests string
}

type UpdateBookingInput struct {
	BookingDate     time.Time
	StartTime       domain.TimeOfDay
	EndTime         domain.TimeOfDay
	SpecialRequests string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithClock overrides the time source; tests pin "today".
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	courts repository.CourtRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	holdTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		courts:       courts,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		holdTTL:      holdTTL,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking validates the requested interval and reserves it. The
// repository performs the overlap check and the insert in one locked
// transaction; the optional redis hold only narrows the race window.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if err := s.validateInterval(input.StartTime, input.EndTime); err != nil {
		return nil, err
	}
	if err := s.validateDate(input.BookingDate); err != nil {
		return nil, err
	}

	court, err := s.courts.GetByID(ctx, input.CourtID)
	if err != nil {
		return nil, err
	}
	if !court.Bookable() {
		return nil, domain.ErrCourtUnavailable
	}

	dateKey := input.BookingDate.Format("2006-01-02")
	locked := false
	if s.cache != nil {
		ok, err := s.cache.AcquireSlotLock(ctx, court.ID, dateKey, input.StartTime, input.EndTime, s.holdTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrSlotConflict
		}
		locked = true
	}

	// Snapshot pricing: the court's current price is fixed into the booking.
	duration := domain.DurationHoursBetween(input.StartTime, input.EndTime)
	booking := &domain.Booking{
		BookingID:       uuid.NewString(),
		UserID:          input.UserID,
		UserEmail:       input.UserEmail,
		CourtID:         court.ID,
		FacilityID:      court.FacilityID,
		BookingDate:     input.BookingDate,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		DurationHours:   duration,
		PricePerHour:    court.PricePerHour,
		TotalAmount:     court.PricePerHour.Mul(duration).Round(2),
		Status:          domain.BookingStatusPending,
		PaymentStatus:   domain.PaymentStatusPending,
		SpecialRequests: input.SpecialRequests,
	}

	if err := s.bookings.CreateNoOverlap(ctx, booking); err != nil {
		if locked {
			_ = s.cache.ReleaseSlotLock(ctx, court.ID, dateKey, input.StartTime, input.EndTime)
		}
		return nil, err
	}

	if err := s.publish(ctx, "booking_created", booking); err != nil {
		log.Printf("WARNING: failed to publish booking_created event for booking %s: %v", booking.BookingID, err)
	}
	return booking, nil
}

// UpdateBooking re-validates the moved interval excluding the booking's own
// row and re-derives duration and amount from the court's current price.
func (s *BookingService) UpdateBooking(ctx context.Context, bookingID string, input UpdateBookingInput) (*domain.Booking, error) {
	current, err := s.bookings.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !current.IsActive() {
		return nil, fmt.Errorf("booking is %s and cannot be changed", current.Status)
	}
	if err := s.validateInterval(input.StartTime, input.EndTime); err != nil {
		return nil, err
	}
	if err := s.validateDate(input.BookingDate); err != nil {
		return nil, err
	}

	court, err := s.courts.GetByID(ctx, current.CourtID)
	if err != nil {
		return nil, err
	}

	duration := domain.DurationHoursBetween(input.StartTime, input.EndTime)
	current.BookingDate = input.BookingDate
	current.StartTime = input.StartTime
	current.EndTime = input.EndTime
	current.DurationHours = duration
	current.PricePerHour = court.PricePerHour
	current.TotalAmount = court.PricePerHour.Mul(duration).Round(2)
	if input.SpecialRequests != "" {
		current.SpecialRequests = input.SpecialRequests
	}

	if err := s.bookings.UpdateNoOverlap(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	current, err := s.bookings.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(current.Status, domain.BookingStatusConfirmed) {
		return nil, fmt.Errorf("booking is %s, only pending bookings can be confirmed", current.Status)
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingStatusConfirmed, current.CancellationReason)
	if err != nil {
		return nil, err
	}
	if err := s.publish(ctx, "booking_confirmed", updated); err != nil {
		log.Printf("WARNING: failed to publish booking_confirmed event for booking %s: %v", updated.BookingID, err)
	}
	s.releaseLock(ctx, updated)
	return updated, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, bookingID, reason string) (*domain.Booking, error) {
	current, err := s.bookings.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.BookingStatusCancelled {
		return current, nil
	}
	if s.dateOnly(current.BookingDate).Before(s.today()) {
		return nil, fmt.Errorf("booking date has passed and can no longer be cancelled")
	}
	if !domain.CanTransition(current.Status, domain.BookingStatusCancelled) {
		return nil, fmt.Errorf("booking is %s and cannot be cancelled", current.Status)
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingStatusCancelled, reason)
	if err != nil {
		return nil, err
	}
	if err := s.publish(ctx, "booking_cancelled", updated); err != nil {
		log.Printf("WARNING: failed to publish booking_cancelled event for booking %s: %v", updated.BookingID, err)
	}
	s.releaseLock(ctx, updated)
	return updated, nil
}

// MarkBookingStatus covers the owner actions outside confirm/cancel:
// completed and no_show.
func (s *BookingService) MarkBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error) {
	current, err := s.bookings.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(current.Status, status) {
		return nil, fmt.Errorf("cannot move booking from %s to %s", current.Status, status)
	}
	return s.bookings.UpdateStatus(ctx, bookingID, status, current.CancellationReason)
}

func (s *BookingService) SetPaymentStatus(ctx context.Context, bookingID string, status domain.PaymentStatus) (*domain.Booking, error) {
	current, err := s.bookings.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionPayment(current.PaymentStatus, status) {
		return nil, fmt.Errorf("cannot move payment from %s to %s", current.PaymentStatus, status)
	}
	return s.bookings.UpdatePaymentStatus(ctx, bookingID, status)
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	return s.bookings.GetByBookingID(ctx, bookingID)
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// AvailableSlots projects the court's configured slots minus active
// bookings for the date. A slot partially covered by a booking is excluded
// whole; blocked slots are excluded regardless of bookings.
func (s *BookingService) AvailableSlots(ctx context.Context, courtID int64, date time.Time) ([]domain.TimeSlot, error) {
	if _, err := s.courts.GetByID(ctx, courtID); err != nil {
		return nil, err
	}

	slots, err := s.courts.ListTimeSlots(ctx, courtID)
	if err != nil {
		return nil, err
	}
	active, err := s.bookings.FindActive(ctx, courtID, date, 0)
	if err != nil {
		return nil, err
	}

	// Both sets are small per court per day; the quadratic filter is fine.
	available := make([]domain.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if !slot.Reservable() {
			continue
		}
		free := true
		for _, b := range active {
			if b.Overlaps(slot.StartTime, slot.EndTime) {
				free = false
				break
			}
		}
		if free {
			available = append(available, slot)
		}
	}
	return available, nil
}

// CompleteElapsedBookings is the worker sweep: confirmed bookings whose
// interval has fully passed become completed.
func (s *BookingService) CompleteElapsedBookings(ctx context.Context) ([]domain.Booking, error) {
	now := s.now()
	completed, err := s.bookings.CompleteElapsedBefore(ctx, s.dateOnly(now), domain.TimeOfDayFrom(now))
	if err != nil {
		return nil, err
	}
	for i := range completed {
		if err := s.publish(ctx, "booking_completed", &completed[i]); err != nil {
			log.Printf("WARNING: failed to publish booking_completed event for booking %s: %v", completed[i].BookingID, err)
		}
	}
	return completed, nil
}

func (s *BookingService) validateInterval(start, end domain.TimeOfDay) error {
	if !start.Valid() || !end.Valid() {
		return domain.ErrInvalidInterval
	}
	if start >= end {
		return domain.ErrInvalidInterval
	}
	return nil
}

func (s *BookingService) validateDate(date time.Time) error {
	if s.dateOnly(date).Before(s.today()) {
		return domain.ErrPastDate
	}
	return nil
}

func (s *BookingService) today() time.Time {
	return s.dateOnly(s.now())
}

func (s *BookingService) dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *BookingService) releaseLock(ctx context.Context, b *domain.Booking) {
	if s.cache == nil {
		return
	}
	_ = s.cache.ReleaseSlotLock(ctx, b.CourtID, b.BookingDate.Format("2006-01-02"), b.StartTime, b.EndTime)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:        eventType,
		BookingID:   booking.BookingID,
		CourtID:     booking.CourtID,
		FacilityID:  booking.FacilityID,
		UserID:      booking.UserID,
		Email:       booking.UserEmail,
		BookingDate: booking.BookingDate.Format("2006-01-02"),
		StartTime:   booking.StartTime.String(),
		EndTime:     booking.EndTime.String(),
		TotalAmount: booking.TotalAmount.StringFixed(2),
		Status:      string(booking.Status),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.BookingID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.BookingID, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
