package booking

import (
	"context"

	"roombook/models"
)

// CommitInput is a fully specified reservation handed to the commit engine.
// EndTime may be empty, in which case it defaults to StartTime + 1 hour.
type CommitInput struct {
	RoomID    string `json:"room_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Title     string `json:"title"`
	BookedBy  string `json:"booked_by"`
}

// BookingView is a booking enriched with the room name for display.
type BookingView struct {
	models.Booking
	RoomName string `json:"room_name"`
}

// CommitService validates drafts against the room directory and schedule
// store and atomically creates or rejects reservations.
type CommitService interface {
	Commit(ctx context.Context, in CommitInput) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID string) error
	List(ctx context.Context, roomID, date string) ([]BookingView, error)
}
