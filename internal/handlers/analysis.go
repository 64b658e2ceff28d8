package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/moodline/backend/internal/logger"
	"github.com/moodline/backend/internal/service"
)

// AnalysisHandler handles mood analytics HTTP requests
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
	}
}

// GetAnalysis handles GET /api/v1/analytics/analysis
// The optional enrich query parameter requests AI classification on top of
// the statistical result.
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	enrich, _ := strconv.ParseBool(c.DefaultQuery("enrich", "false"))

	analysis, err := h.analysisService.GetAnalysis(c.Request.Context(), userID.(string), enrich)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to run mood analysis",
			logger.Err(err), logger.String("user_id", userID.(string)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// GetSummary handles GET /api/v1/analytics/summary
func (h *AnalysisHandler) GetSummary(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	summary, err := h.analysisService.GetSummary(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetRecommendations handles GET /api/v1/analytics/recommendations
func (h *AnalysisHandler) GetRecommendations(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recommendations, err := h.analysisService.GetRecommendations(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
}
