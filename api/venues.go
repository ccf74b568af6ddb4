package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quickcourt/courtbooking/internal/domain"
	"github.com/quickcourt/courtbooking/internal/service/booking"
	"github.com/quickcourt/courtbooking/internal/service/courts"
	"github.com/quickcourt/courtbooking/internal/service/ratings"
)

// VenueHandler is the public, player-facing browse surface.
type VenueHandler struct {
	venues   courts.CourtUseCase
	bookings booking.BookingUseCase
	ratings  ratings.RatingUseCase
}

type timeSlotResponse struct {
	ID        int64  `json:"id"`
	CourtID   int64  `json:"court_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func newTimeSlotResponse(s *domain.TimeSlot) timeSlotResponse {
	return timeSlotResponse{
		ID:        s.ID,
		CourtID:   s.CourtID,
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
	}
}

type ratingRequest struct {
	BookingID string `json:"booking_id"`
	Rating    int    `json:"rating"`
	Review    string `json:"review"`
}

type ratingResponse struct {
	ID        int64  `json:"id"`
	CourtID   int64  `json:"court_id"`
	UserName  string `json:"user_name,omitempty"`
	Rating    int    `json:"rating"`
	Review    string `json:"review,omitempty"`
	CreatedAt string `json:"created_at"`
}

func newRatingResponse(r *domain.CourtRating) ratingResponse {
	return ratingResponse{
		ID:        r.ID,
		CourtID:   r.CourtID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Review:    r.Review,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}

func NewVenueHandler(venues courts.CourtUseCase, bookings booking.BookingUseCase, ratingSvc ratings.RatingUseCase) *VenueHandler {
	return &VenueHandler{venues: venues, bookings: bookings, ratings: ratingSvc}
}

func (h *VenueHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
}

// RegisterCourtRoutes hangs the availability projection and the reviews feed
// off the courts group.
func (h *VenueHandler) RegisterCourtRoutes(router *gin.RouterGroup) {
	router.GET("/:id/availability", h.availability)
	router.GET("/:id/ratings", h.courtRatings)
}

// RegisterSportRoutes serves the sports reference listing.
func (h *VenueHandler) RegisterSportRoutes(router *gin.RouterGroup) {
	router.GET("/", h.listSports)
}

// RegisterRatingRoutes mounts the authenticated review submission.
func (h *VenueHandler) RegisterRatingRoutes(router *gin.RouterGroup) {
	router.POST("/", h.createRating)
}

func (h *VenueHandler) list(c *gin.Context) {
	venues, err := h.venues.ListVenues(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, venues)
}

func (h *VenueHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	venue, err := h.venues.GetVenue(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, venue)
}

// availability returns the court's configured slots that have no
// overlapping active booking on the requested date.
func (h *VenueHandler) availability(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date: expected YYYY-MM-DD"})
		return
	}

	slots, err := h.bookings.AvailableSlots(c.Request.Context(), id, date)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]timeSlotResponse, 0, len(slots))
	for i := range slots {
		out = append(out, newTimeSlotResponse(&slots[i]))
	}
	c.JSON(http.StatusOK, gin.H{"date": date.Format("2006-01-02"), "available_slots": out})
}

func (h *VenueHandler) listSports(c *gin.Context) {
	sports, err := h.venues.ListSports(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sports)
}

func (h *VenueHandler) courtRatings(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	list, err := h.ratings.CourtRatings(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]ratingResponse, 0, len(list))
	for i := range list {
		out = append(out, newRatingResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *VenueHandler) createRating(c *gin.Context) {
	claims := mustClaims(c)

	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.ratings.RateBooking(c.Request.Context(), claims.UserID, ratings.RatingInput{
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Review:    req.Review,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRatingResponse(rating))
}
