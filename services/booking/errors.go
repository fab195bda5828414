package booking

import "fmt"

// ConflictError is returned when a commit overlaps an existing booking on
// the same room and date. It carries the colliding interval so callers can
// offer a different slot.
type ConflictError struct {
	BookingID string `json:"booking_id"`
	RoomID    string `json:"room_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room %s is already booked on %s from %s to %s",
		e.RoomID, e.Date, e.StartTime, e.EndTime)
}

// NotFoundError is returned when a booking or room lookup misses.
type NotFoundError struct {
	Kind string // "booking" or "room"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ValidationError is returned for malformed commit input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
