package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/quickcourt/courtbooking/internal/domain"
	"github.com/quickcourt/courtbooking/internal/service/courts"
)

// FacilityHandler is the owner management surface: facilities, courts,
// slot configuration and the dashboard.
type FacilityHandler struct {
	service courts.CourtUseCase
}

type facilityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
}

type courtRequest struct {
	SportID      int64  `json:"sport_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	PricePerHour string `json:"price_per_hour"`
	Currency     string `json:"currency"`
	CourtNumber  string `json:"court_number"`
	SurfaceType  string `json:"surface_type"`
	CourtSize    string `json:"court_size"`
	OpeningTime  string `json:"opening_time"`
	ClosingTime  string `json:"closing_time"`
}

type timeSlotRequest struct {
	CourtID   int64  `json:"court_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type blockSlotRequest struct {
	Reason string `json:"reason"`
}

type courtStatusRequest struct {
	Status string `json:"status"`
}

func NewFacilityHandler(service courts.CourtUseCase) *FacilityHandler {
	return &FacilityHandler{service: service}
}

func (h *FacilityHandler) Register(router *gin.RouterGroup) {
	router.POST("/facilities", h.createFacility)
	router.PUT("/facilities/:id", h.updateFacility)
	router.POST("/courts", h.createCourt)
	router.POST("/courts/:id/status", h.updateCourtStatus)
	router.POST("/courts/:id/slots", h.addTimeSlot)
	router.POST("/courts/:id/slots/:slot_id/block", h.blockTimeSlot)
	router.GET("/dashboard", h.dashboard)
	router.GET("/dashboard/recent-bookings", h.recentBookings)
	router.GET("/dashboard/peak-hours", h.peakHours)
}

func (h *FacilityHandler) createFacility(c *gin.Context) {
	input, ok := h.bindFacility(c)
	if !ok {
		return
	}

	facility, err := h.service.CreateFacility(c.Request.Context(), mustClaims(c).UserID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, facility)
}

func (h *FacilityHandler) updateFacility(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	input, ok := h.bindFacility(c)
	if !ok {
		return
	}

	facility, err := h.service.UpdateFacility(c.Request.Context(), mustClaims(c).UserID, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, facility)
}

func (h *FacilityHandler) bindFacility(c *gin.Context) (courts.FacilityInput, bool) {
	var req facilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return courts.FacilityInput{}, false
	}
	open, err := domain.ParseTimeOfDay(req.OpeningTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return courts.FacilityInput{}, false
	}
	closing, err := domain.ParseTimeOfDay(req.ClosingTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return courts.FacilityInput{}, false
	}
	return courts.FacilityInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Pincode:     req.Pincode,
		Phone:       req.Phone,
		Email:       req.Email,
		OpeningTime: open,
		ClosingTime: closing,
	}, true
}

func (h *FacilityHandler) createCourt(c *gin.Context) {
	var req courtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	price, err := decimal.NewFromString(req.PricePerHour)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price_per_hour"})
		return
	}

	input := courts.CourtInput{
		SportID:      req.SportID,
		Name:         req.Name,
		Description:  req.Description,
		PricePerHour: price,
		Currency:     req.Currency,
		CourtNumber:  req.CourtNumber,
		SurfaceType:  req.SurfaceType,
		CourtSize:    req.CourtSize,
	}
	if req.OpeningTime != "" {
		t, err := domain.ParseTimeOfDay(req.OpeningTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		input.OpeningTime = &t
	}
	if req.ClosingTime != "" {
		t, err := domain.ParseTimeOfDay(req.ClosingTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		input.ClosingTime = &t
	}

	court, err := h.service.CreateCourt(c.Request.Context(), mustClaims(c).UserID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, court)
}

func (h *FacilityHandler) updateCourtStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req courtStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.UpdateCourtStatus(c.Request.Context(), mustClaims(c).UserID, id, domain.CourtStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "court status updated to " + req.Status})
}

func (h *FacilityHandler) addTimeSlot(c *gin.Context) {
	courtID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req timeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
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

	slot, err := h.service.AddTimeSlot(c.Request.Context(), mustClaims(c).UserID, courts.TimeSlotInput{
		CourtID:   courtID,
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTimeSlotResponse(slot))
}

func (h *FacilityHandler) blockTimeSlot(c *gin.Context) {
	courtID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	slotID, err := strconv.ParseInt(c.Param("slot_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot_id"})
		return
	}
	var req blockSlotRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.service.BlockTimeSlot(c.Request.Context(), mustClaims(c).UserID, courtID, slotID, req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "slot blocked"})
}

func (h *FacilityHandler) dashboard(c *gin.Context) {
	kpis, err := h.service.DashboardKPIs(c.Request.Context(), mustClaims(c).UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_bookings":   kpis.TotalBookings,
		"active_courts":    kpis.ActiveCourts,
		"total_earnings":   kpis.TotalEarnings.StringFixed(2),
		"pending_bookings": kpis.PendingBookings,
	})
}

func (h *FacilityHandler) recentBookings(c *gin.Context) {
	bookings, err := h.service.RecentBookings(c.Request.Context(), mustClaims(c).UserID)
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

func (h *FacilityHandler) peakHours(c *gin.Context) {
	hours, err := h.service.PeakHours(c.Request.Context(), mustClaims(c).UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var total int64
	for _, ph := range hours {
		total += ph.Bookings
	}
	type peakHourResponse struct {
		Hour       string  `json:"hour"`
		Bookings   int64   `json:"bookings"`
		Percentage float64 `json:"percentage"`
	}
	out := make([]peakHourResponse, 0, len(hours))
	for _, ph := range hours {
		var pct float64
		if total > 0 {
			pct = float64(ph.Bookings) / float64(total) * 100
		}
		out = append(out, peakHourResponse{Hour: ph.Hour.String(), Bookings: ph.Bookings, Percentage: pct})
	}
	c.JSON(http.StatusOK, out)
}
