package handlers

import (
	"errors"
	"net/http"

	"roombook/services/booking"
	"roombook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the commit/cancel/list surface of the schedule.
type BookingHandler struct {
	Commit booking.CommitService
}

func NewBookingHandler(commit booking.CommitService) *BookingHandler {
	return &BookingHandler{Commit: commit}
}

// CreateBookingHandler commits a fully specified booking. Conflicts come
// back as 409 with the colliding interval so the caller can pick another
// slot.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var in booking.CommitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Commit.Commit(c.Request.Context(), in)
	if err != nil {
		var conflict *booking.ConflictError
		var notFound *booking.NotFoundError
		var invalid *booking.ValidationError
		switch {
		case errors.As(err, &conflict):
			c.JSON(http.StatusConflict, gin.H{
				"error":    "Room is already booked for this time slot",
				"conflict": conflict,
			})
		case errors.As(err, &notFound):
			c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		case errors.As(err, &invalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
		default:
			utils.GetLogger().Error("Commit failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to create booking", err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListBookingsHandler returns bookings, optionally filtered by room_id
// and/or date, sorted by (date, start_time).
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	roomID := c.Query("room_id")
	date := c.Query("date")

	views, err := h.Commit.List(c.Request.Context(), roomID, date)
	if err != nil {
		utils.GetLogger().Error("Failed to list bookings", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, views)
}

// CancelBookingHandler removes a booking. A second cancel of the same ID
// returns 404 so double-cancels are visible to the caller.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	bookingID := c.Param("id")

	if err := h.Commit.Cancel(c.Request.Context(), bookingID); err != nil {
		var notFound *booking.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
			return
		}
		utils.GetLogger().Error("Cancel failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to cancel booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}
