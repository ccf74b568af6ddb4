package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/quickcourt/courtbooking/internal/auth"
	"github.com/quickcourt/courtbooking/internal/domain"
	"github.com/quickcourt/courtbooking/internal/service/booking"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) UpdateBooking(ctx context.Context, bookingID string, input booking.UpdateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ConfirmBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, bookingID, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) MarkBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) SetPaymentStatus(ctx context.Context, bookingID string, status domain.PaymentStatus) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) AvailableSlots(ctx context.Context, courtID int64, date time.Time) ([]domain.TimeSlot, error) {
	args := m.Called(ctx, courtID, date)
	return args.Get(0).([]domain.TimeSlot), args.Error(1)
}

func (m *MockBookingUseCase) CompleteElapsedBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:            1,
		BookingID:     "bk-123",
		UserID:        7,
		CourtID:       4,
		FacilityID:    2,
		BookingDate:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		StartTime:     domain.NewTimeOfDay(14, 0),
		EndTime:       domain.NewTimeOfDay(16, 0),
		DurationHours: decimal.NewFromInt(2),
		PricePerHour:  decimal.NewFromInt(500),
		TotalAmount:   decimal.NewFromInt(1000),
		Status:        domain.BookingStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
	}
}

func playerContext(w *httptest.ResponseRecorder) (*gin.Context, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	c, engine := gin.CreateTestContext(w)
	c.Set("claims", &auth.Claims{UserID: 7, UserType: "player", Email: "player@example.com"})
	return c, engine
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, nil)

	w := httptest.NewRecorder()
	c, _ := playerContext(w)

	body, _ := json.Marshal(createBookingRequest{
		CourtID:     4,
		BookingDate: "2026-01-15",
		StartTime:   "14:00",
		EndTime:     "16:00",
	})
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	expectedInput := booking.CreateBookingInput{
		UserID:      7,
		UserEmail:   "player@example.com",
		CourtID:     4,
		BookingDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		StartTime:   domain.NewTimeOfDay(14, 0),
		EndTime:     domain.NewTimeOfDay(16, 0),
	}
	mockService.On("CreateBooking", c.Request.Context(), expectedInput).Return(testBooking(), nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response bookingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "bk-123", response.BookingID)
	assert.Equal(t, "14:00", response.StartTime)
	assert.Equal(t, "1000.00", response.TotalAmount)
	assert.Equal(t, string(domain.BookingStatusPending), response.Status)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_conflict(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, nil)

	w := httptest.NewRecorder()
	c, _ := playerContext(w)

	body, _ := json.Marshal(createBookingRequest{
		CourtID:     4,
		BookingDate: "2026-01-15",
		StartTime:   "14:00",
		EndTime:     "16:00",
	})
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("CreateBooking", c.Request.Context(), mock.Anything).
		Return(nil, domain.ErrSlotConflict)

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already booked")
}

func TestBookingHandler_create_badTime(t *testing.T) {
	handler := NewBookingHandler(&MockBookingUseCase{}, nil)

	w := httptest.NewRecorder()
	c, _ := playerContext(w)

	body, _ := json.Marshal(createBookingRequest{
		CourtID:     4,
		BookingDate: "2026-01-15",
		StartTime:   "2pm",
		EndTime:     "16:00",
	})
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "expected HH:MM")
}

func TestBookingHandler_get_notFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, nil)

	w := httptest.NewRecorder()
	c, _ := playerContext(w)
	c.Params = gin.Params{{Key: "booking_id", Value: "missing"}}
	c.Request = httptest.NewRequest("GET", "/bookings/missing", nil)

	mockService.On("GetBooking", c.Request.Context(), "missing").Return(nil, domain.ErrNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, nil)

	w := httptest.NewRecorder()
	c, _ := playerContext(w)
	c.Params = gin.Params{{Key: "booking_id", Value: "bk-123"}}

	body, _ := json.Marshal(cancelBookingRequest{Reason: "rain"})
	c.Request = httptest.NewRequest("POST", "/bookings/bk-123/cancel", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	cancelled := testBooking()
	cancelled.Status = domain.BookingStatusCancelled
	cancelled.CancellationReason = "rain"
	mockService.On("CancelBooking", c.Request.Context(), "bk-123", "rain").Return(cancelled, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response bookingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, string(domain.BookingStatusCancelled), response.Status)
	assert.Equal(t, "rain", response.CancellationReason)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_confirm(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, nil)

	w := httptest.NewRecorder()
	c, _ := playerContext(w)
	c.Params = gin.Params{{Key: "booking_id", Value: "bk-123"}}
	c.Request = httptest.NewRequest("POST", "/bookings/bk-123/confirm", nil)

	confirmed := testBooking()
	confirmed.Status = domain.BookingStatusConfirmed
	mockService.On("ConfirmBooking", c.Request.Context(), "bk-123").Return(confirmed, nil)

	handler.confirm(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response bookingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, string(domain.BookingStatusConfirmed), response.Status)
}

func TestBookingHandler_listMine(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, nil)

	w := httptest.NewRecorder()
	c, _ := playerContext(w)
	c.Request = httptest.NewRequest("GET", "/bookings", nil)

	mockService.On("ListUserBookings", c.Request.Context(), int64(7)).
		Return([]domain.Booking{*testBooking()}, nil)

	handler.listMine(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []bookingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response, 1)
}

func TestRequireOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("player is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := playerContext(w)
		c.Request = httptest.NewRequest("POST", "/bookings/bk-123/confirm", nil)

		RequireOwner()(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.True(t, c.IsAborted())
	})

	t.Run("owner passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("claims", &auth.Claims{UserID: 42, UserType: "owner"})
		c.Request = httptest.NewRequest("POST", "/bookings/bk-123/confirm", nil)

		RequireOwner()(c)

		assert.False(t, c.IsAborted())
	})
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	secret := "test-secret"

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/bookings", nil)

		RequireAuth(secret)(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := auth.CreateAccessToken(secret, 7, "player", "player@example.com", time.Hour)
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/bookings", nil)
		c.Request.Header.Set("Authorization", "Bearer "+token)

		RequireAuth(secret)(c)

		assert.False(t, c.IsAborted())
		claims := mustClaims(c)
		assert.NotNil(t, claims)
		assert.Equal(t, int64(7), claims.UserID)
		assert.Equal(t, "player", claims.UserType)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		token, err := auth.CreateAccessToken("other-secret", 7, "player", "player@example.com", time.Hour)
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/bookings", nil)
		c.Request.Header.Set("Authorization", "Bearer "+token)

		RequireAuth(secret)(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
