package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickcourt/courtbooking/internal/domain"
)

// respondError maps domain validation failures to HTTP statuses; everything
// the services reject is a 4xx with a readable message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSlotConflict), errors.Is(err, domain.ErrAlreadyRated):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
