package ratings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/quickcourt/courtbooking/internal/domain"
)

type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *domain.CourtRating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) GetByBooking(ctx context.Context, bookingID int64) (*domain.CourtRating, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CourtRating), args.Error(1)
}

func (m *MockRatingRepository) ListByCourt(ctx context.Context, courtID int64, limit int) ([]domain.CourtRating, error) {
	args := m.Called(ctx, courtID, limit)
	return args.Get(0).([]domain.CourtRating), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateNoOverlap(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateNoOverlap(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindActive(ctx context.Context, courtID int64, date time.Time, excludeID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, courtID, date, excludeID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, status, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdatePaymentStatus(ctx context.Context, bookingID string, status domain.PaymentStatus) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByOwner(ctx context.Context, ownerID int64, limit int) ([]domain.Booking, error) {
	args := m.Called(ctx, ownerID, limit)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CompleteElapsedBefore(ctx context.Context, date time.Time, now domain.TimeOfDay) ([]domain.Booking, error) {
	args := m.Called(ctx, date, now)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func completedBooking() *domain.Booking {
	return &domain.Booking{
		ID:        9,
		BookingID: "bk-123",
		UserID:    7,
		CourtID:   4,
		Status:    domain.BookingStatusCompleted,
	}
}

func TestRateBooking_Success(t *testing.T) {
	mockRatings := &MockRatingRepository{}
	mockBookings := &MockBookingRepository{}
	service := NewRatingService(mockRatings, mockBookings)

	ctx := context.Background()
	mockBookings.On("GetByBookingID", ctx, "bk-123").Return(completedBooking(), nil).Once()
	mockRatings.On("GetByBooking", ctx, int64(9)).Return(nil, domain.ErrNotFound).Once()
	mockRatings.On("Create", ctx, mock.AnythingOfType("*domain.CourtRating")).Return(nil).Once()

	rating, err := service.RateBooking(ctx, 7, RatingInput{BookingID: "bk-123", Rating: 5, Review: "Great surface"})

	assert.NoError(t, err)
	assert.Equal(t, int64(9), rating.BookingID)
	assert.Equal(t, int64(4), rating.CourtID)
	assert.Equal(t, int64(7), rating.UserID)
	assert.Equal(t, 5, rating.Rating)
	mockRatings.AssertExpectations(t)
	mockBookings.AssertExpectations(t)
}

func TestRateBooking_InvalidRating(t *testing.T) {
	service := NewRatingService(&MockRatingRepository{}, &MockBookingRepository{})

	ctx := context.Background()
	for _, rating := range []int{0, 6, -1} {
		_, err := service.RateBooking(ctx, 7, RatingInput{BookingID: "bk-123", Rating: rating})
		assert.ErrorIs(t, err, domain.ErrInvalidRating)
	}
}

func TestRateBooking_NotOwnBooking(t *testing.T) {
	mockRatings := &MockRatingRepository{}
	mockBookings := &MockBookingRepository{}
	service := NewRatingService(mockRatings, mockBookings)

	ctx := context.Background()
	mockBookings.On("GetByBookingID", ctx, "bk-123").Return(completedBooking(), nil).Once()

	_, err := service.RateBooking(ctx, 42, RatingInput{BookingID: "bk-123", Rating: 4})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockRatings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRateBooking_NotCompleted(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	service := NewRatingService(&MockRatingRepository{}, mockBookings)

	ctx := context.Background()
	pending := completedBooking()
	pending.Status = domain.BookingStatusPending
	mockBookings.On("GetByBookingID", ctx, "bk-123").Return(pending, nil).Once()

	_, err := service.RateBooking(ctx, 7, RatingInput{BookingID: "bk-123", Rating: 4})

	assert.EqualError(t, err, "only completed bookings can be rated")
}

func TestRateBooking_AlreadyRated(t *testing.T) {
	mockRatings := &MockRatingRepository{}
	mockBookings := &MockBookingRepository{}
	service := NewRatingService(mockRatings, mockBookings)

	ctx := context.Background()
	mockBookings.On("GetByBookingID", ctx, "bk-123").Return(completedBooking(), nil).Once()
	mockRatings.On("GetByBooking", ctx, int64(9)).Return(&domain.CourtRating{ID: 11, BookingID: 9}, nil).Once()

	_, err := service.RateBooking(ctx, 7, RatingInput{BookingID: "bk-123", Rating: 4})

	assert.ErrorIs(t, err, domain.ErrAlreadyRated)
	mockRatings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCourtRatings(t *testing.T) {
	mockRatings := &MockRatingRepository{}
	service := NewRatingService(mockRatings, &MockBookingRepository{})

	ctx := context.Background()
	list := []domain.CourtRating{{ID: 1, CourtID: 4, Rating: 5, UserName: "Priya Shah"}}
	mockRatings.On("ListByCourt", ctx, int64(4), listLimit).Return(list, nil).Once()

	result, err := service.CourtRatings(ctx, 4)

	assert.NoError(t, err)
	assert.Equal(t, list, result)
	mockRatings.AssertExpectations(t)
}
