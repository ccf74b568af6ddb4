package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quickcourt/courtbooking/internal/domain"
	"github.com/quickcourt/courtbooking/internal/metrics"
	"github.com/quickcourt/courtbooking/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
	metrics *metrics.Metrics
}

type createBookingRequest struct {
	CourtID         int64  `json:"court_id"`
	BookingDate     string `json:"booking_date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	SpecialRequests string `json:"special_requests"`
}

type updateBookingRequest struct {
	BookingDate     string `json:"booking_date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	SpecialRequests string `json:"special_requests"`
}

type cancelBookingRequest struct {
	Reason string `json:"reason"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type paymentStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
}

type bookingResponse struct {
	BookingID          string `json:"booking_id"`
	CourtID            int64  `json:"court_id"`
	FacilityID         int64  `json:"facility_id"`
	BookingDate        string `json:"booking_date"`
	StartTime          string `json:"start_time"`
	EndTime            string `json:"end_time"`
	DurationHours      string `json:"duration_hours"`
	PricePerHour       string `json:"price_per_hour"`
	TotalAmount        string `json:"total_amount"`
	Status             string `json:"status"`
	PaymentStatus      string `json:"payment_status"`
	SpecialRequests    string `json:"special_requests,omitempty"`
	CancellationReason string `json:"cancellation_reason,omitempty"`
	CreatedAt          string `json:"created_at"`
}

func newBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		BookingID:          b.BookingID,
		CourtID:            b.CourtID,
		FacilityID:         b.FacilityID,
		BookingDate:        b.BookingDate.Format("2006-01-02"),
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		DurationHours:      b.DurationHours.String(),
		PricePerHour:       b.PricePerHour.StringFixed(2),
		TotalAmount:        b.TotalAmount.StringFixed(2),
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		SpecialRequests:    b.SpecialRequests,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
	}
}

func NewBookingHandler(service booking.BookingUseCase, m *metrics.Metrics) *BookingHandler {
	return &BookingHandler{service: service, metrics: m}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.listMine)
	router.GET("/:booking_id", h.get)
	router.PUT("/:booking_id", h.update)
	router.POST("/:booking_id/cancel", h.cancel)
	router.POST("/:booking_id/confirm", RequireOwner(), h.confirm)
	router.POST("/:booking_id/status", RequireOwner(), h.updateStatus)
	router.POST("/:booking_id/payment-status", RequireOwner(), h.updatePaymentStatus)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := h.parseCreate(c, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), input)
	if err != nil {
		if h.metrics != nil {
			switch {
			case errors.Is(err, domain.ErrSlotConflict):
				h.metrics.SlotConflicts.Inc()
			case errors.Is(err, domain.ErrInvalidInterval):
				h.metrics.ValidationErrors.WithLabelValues("invalid_interval").Inc()
			case errors.Is(err, domain.ErrPastDate):
				h.metrics.ValidationErrors.WithLabelValues("past_date").Inc()
			}
		}
		respondError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.BookingsCreated.Inc()
	}
	c.JSON(http.StatusCreated, newBookingResponse(b))
}

func (h *BookingHandler) parseCreate(c *gin.Context, req createBookingRequest) (booking.CreateBookingInput, error) {
	claims := mustClaims(c)

	date, err := time.Parse("2006-01-02", req.BookingDate)
	if err != nil {
		return booking.CreateBookingInput{}, errors.New("invalid booking_date: expected YYYY-MM-DD")
	}
	start, err := domain.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return booking.CreateBookingInput{}, err
	}
	end, err := domain.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return booking.CreateBookingInput{}, err
	}

	return booking.CreateBookingInput{
		UserID:          claims.UserID,
		UserEmail:       claims.Email,
		CourtID:         req.CourtID,
		BookingDate:     date,
		StartTime:       start,
		EndTime:         end,
		SpecialRequests: req.SpecialRequests,
	}, nil
}

func (h *BookingHandler) listMine(c *gin.Context) {
	claims := mustClaims(c)
	bookings, err := h.service.ListUserBookings(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, newBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) get(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingResponse(b))
}

func (h *BookingHandler) update(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.BookingDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking_date: expected YYYY-MM-DD"})
		return
	}
	start, err := domain.ParseTimeOfDay(req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := domain.ParseTimeOfDay(req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.UpdateBooking(c.Request.Context(), c.Param("booking_id"), booking.UpdateBookingInput{
		BookingDate:     date,
		StartTime:       start,
		EndTime:         end,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingResponse(b))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	var req cancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	b, err := h.service.CancelBooking(c.Request.Context(), c.Param("booking_id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.BookingsCancelled.Inc()
	}
	c.JSON(http.StatusOK, newBookingResponse(b))
}

func (h *BookingHandler) confirm(c *gin.Context) {
	b, err := h.service.ConfirmBooking(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingResponse(b))
}

func (h *BookingHandler) updateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.MarkBookingStatus(c.Request.Context(), c.Param("booking_id"), domain.BookingStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingResponse(b))
}

func (h *BookingHandler) updatePaymentStatus(c *gin.Context) {
	var req paymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.SetPaymentStatus(c.Request.Context(), c.Param("booking_id"), domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingResponse(b))
}
