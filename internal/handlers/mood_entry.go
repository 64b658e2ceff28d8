package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moodline/backend/internal/apierror"
	"github.com/moodline/backend/internal/models"
	"github.com/moodline/backend/internal/service"
)

type MoodEntryHandler struct {
	entryService service.MoodEntryService
}

// NewMoodEntryHandler creates a new mood entry handler
func NewMoodEntryHandler(entryService service.MoodEntryService) *MoodEntryHandler {
	return &MoodEntryHandler{
		entryService: entryService,
	}
}

// CreateEntry handles POST /api/v1/entries
func (h *MoodEntryHandler) CreateEntry(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	// Bind to RawCreateMoodEntryRequest for manual parsing and aggregated validation
	var raw models.RawCreateMoodEntryRequest
	if err := c.ShouldBindJSON(&raw); err != nil {
		// JSON syntax error (not field-level)
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	var fieldErrors []apierror.FieldError
	var req models.CreateMoodEntryRequest

	// Validate mood state (required)
	if raw.MoodState == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "mood_state",
			Message: "is required",
			Code:    "required",
		})
	} else {
		state := models.MoodState(raw.MoodState)
		if !state.Valid() {
			fieldErrors = append(fieldErrors, apierror.FieldError{
				Field:   "mood_state",
				Message: "must be one of: happy, sad, stressed",
				Code:    "invalid_value",
			})
		} else {
			req.MoodState = state
		}
	}

	// Parse and validate timestamp (required)
	if raw.Timestamp == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "timestamp",
			Message: "is required",
			Code:    "required",
		})
	} else {
		ts, err := time.Parse(time.RFC3339, raw.Timestamp)
		if err != nil {
			fieldErrors = append(fieldErrors, apierror.FieldError{
				Field:   "timestamp",
				Message: "must be a valid RFC3339 timestamp",
				Code:    "invalid_format",
			})
		} else {
			req.Timestamp = ts
		}
	}

	// Validate sentiment range (optional)
	if raw.Sentiment != nil && (*raw.Sentiment < -1 || *raw.Sentiment > 1) {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "sentiment",
			Message: "must be between -1 and 1",
			Code:    "out_of_range",
		})
	} else {
		req.Sentiment = raw.Sentiment
	}

	req.ID = raw.ID
	req.MoodText = raw.MoodText

	// Return aggregated errors if any
	if len(fieldErrors) > 0 {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), userID.(string), &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)

		if errors.Is(err, service.ErrInvalidUUID) || errors.Is(err, service.ErrNotUUIDv7) {
			apierror.WriteProblem(c, apierror.NewInvalidUUIDError(requestID, "id", req.ID))
			return
		}
		if errors.Is(err, service.ErrFutureTimestamp) {
			apierror.WriteProblem(c, apierror.NewFutureTimestampError(requestID, "id"))
			return
		}
		if errors.Is(err, service.ErrTimestampInFuture) {
			apierror.WriteProblem(c, apierror.NewFutureTimestampError(requestID, "timestamp"))
			return
		}

		// Duplicate client-generated IDs surface as a unique violation
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") ||
			strings.Contains(err.Error(), "23505") {
			apierror.WriteProblem(c, apierror.NewConflictError(requestID, "A mood entry with this ID already exists"))
			return
		}

		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetEntries handles GET /api/v1/entries
func (h *MoodEntryHandler) GetEntries(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, err := h.entryService.GetUserEntries(c.Request.Context(), userID.(string), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetEntry handles GET /api/v1/entries/:id
func (h *MoodEntryHandler) GetEntry(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	entryID := c.Param("id")
	entry, err := h.entryService.GetEntry(c.Request.Context(), userID.(string), entryID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrEntryNotFound) {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Mood entry", entryID))
			return
		}
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, entry)
}

// UpdateEntry handles PUT /api/v1/entries/:id
func (h *MoodEntryHandler) UpdateEntry(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	entryID := c.Param("id")

	var req models.UpdateMoodEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	entry, err := h.entryService.UpdateEntry(c.Request.Context(), userID.(string), entryID, &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		switch {
		case errors.Is(err, service.ErrEntryNotFound):
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Mood entry", entryID))
		case errors.Is(err, service.ErrInvalidMoodState):
			apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
				{Field: "mood_state", Message: "must be one of: happy, sad, stressed", Code: "invalid_value"},
			}))
		case errors.Is(err, service.ErrTimestampInFuture):
			apierror.WriteProblem(c, apierror.NewFutureTimestampError(requestID, "timestamp"))
		default:
			apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteEntry handles DELETE /api/v1/entries/:id
func (h *MoodEntryHandler) DeleteEntry(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	entryID := c.Param("id")
	if err := h.entryService.DeleteEntry(c.Request.Context(), userID.(string), entryID); err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrEntryNotFound) {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Mood entry", entryID))
			return
		}
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.Status(http.StatusNoContent)
}
