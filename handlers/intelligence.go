package handlers

import (
	"context"
	"net/http"
	"time"

	roomRepo "roombook/database/repository/room"
	"roombook/services/dialogue"
	ai "roombook/services/intelligence"
	"roombook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ParseBookingRequest is the input for single-shot natural language parsing.
type ParseBookingRequest struct {
	Text string `json:"text" binding:"required"`
}

// ConverseRequest is one turn of the multi-turn booking conversation.
// SessionID is empty on the first turn.
type ConverseRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

// AIHandler serves the natural-language booking surface.
type AIHandler struct {
	Extractor ai.Extractor
	Rooms     roomRepo.RoomRepository
	Dialogue  *dialogue.Manager
	Timeout   time.Duration
	Now       func() time.Time
}

func NewAIHandler(extractor ai.Extractor, rooms roomRepo.RoomRepository,
	dlg *dialogue.Manager, timeout time.Duration) *AIHandler {
	return &AIHandler{
		Extractor: extractor,
		Rooms:     rooms,
		Dialogue:  dlg,
		Timeout:   timeout,
		Now:       time.Now,
	}
}

// ParseBookingHandler runs one extraction pass over free text and returns
// the draft fields. Extraction problems are expressed in the draft's
// clarification field, not as HTTP errors.
func (h *AIHandler) ParseBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req ParseBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	rooms, err := h.Rooms.List(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list rooms for parse", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load rooms", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Timeout)
	defer cancel()

	draft, err := h.Extractor.Extract(ctx, ai.ExtractInput{
		Text:  req.Text,
		Rooms: rooms,
		Now:   h.Now(),
	})
	if err != nil {
		logger.Warn("Parse extraction failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":    "Could not process that request right now",
			"raw_text": req.Text,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room_name":            draft.RoomName,
		"room_id":              draft.RoomID,
		"min_capacity":         draft.MinCapacity,
		"recommended_room":     draft.RecommendedRoom,
		"date":                 draft.Date,
		"start_time":           draft.StartTime,
		"end_time":             draft.EndTime,
		"booked_by":            draft.BookedBy,
		"title":                draft.Title,
		"confidence":           draft.Confidence,
		"clarification_needed": draft.ClarificationNeeded,
		"raw_text":             req.Text,
	})
}

// ConverseHandler processes one turn of a booking conversation.
func (h *AIHandler) ConverseHandler(c *gin.Context) {
	var req ConverseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	reply, err := h.Dialogue.Converse(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		utils.GetLogger().Error("Converse turn failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to process message", err.Error())
		return
	}
	c.JSON(http.StatusOK, reply)
}
