package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moodline/backend/internal/service"
)

// StreakHandler handles logging-streak HTTP requests
type StreakHandler struct {
	streakService service.StreakService
}

// NewStreakHandler creates a new streak handler
func NewStreakHandler(streakService service.StreakService) *StreakHandler {
	return &StreakHandler{
		streakService: streakService,
	}
}

// GetStreaks handles GET /api/v1/analytics/streaks
func (h *StreakHandler) GetStreaks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	streaks, err := h.streakService.GetStreaks(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, streaks)
}
