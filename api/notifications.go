package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quickcourt/courtbooking/internal/domain"
	"github.com/quickcourt/courtbooking/internal/service/notifications"
)

// NotificationHandler serves a user's in-app notification feed.
type NotificationHandler struct {
	service notifications.NotificationUseCase
}

type notificationResponse struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	BookingID string `json:"booking_id,omitempty"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

func newNotificationResponse(n *domain.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		BookingID: n.BookingID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

func NewNotificationHandler(service notifications.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/:id/read", h.markRead)
	router.POST("/read-all", h.markAllRead)
}

func (h *NotificationHandler) list(c *gin.Context) {
	claims := mustClaims(c)

	items, err := h.service.ListUserNotifications(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]notificationResponse, 0, len(items))
	for i := range items {
		out = append(out, newNotificationResponse(&items[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *NotificationHandler) markRead(c *gin.Context) {
	claims := mustClaims(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), claims.UserID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

func (h *NotificationHandler) markAllRead(c *gin.Context) {
	claims := mustClaims(c)

	if err := h.service.MarkAllRead(c.Request.Context(), claims.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked as read"})
}
