package scheduleRepo

import (
	"context"

	"roombook/models"
)

// Filter narrows booking listings. Zero values match everything.
type Filter struct {
	RoomID string
	Date   string
}

// ScheduleRepository is the authoritative store of committed bookings.
// Conflict serialization is owned by the commit engine, not the store; the
// store only persists and queries.
type ScheduleRepository interface {
	Insert(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, bookingID string) (bool, error)
	FindByID(ctx context.Context, bookingID string) (*models.Booking, error)
	// ListForRoomDate returns every booking for one (room, date) key.
	ListForRoomDate(ctx context.Context, roomID, date string) ([]models.Booking, error)
	// List returns bookings matching the filter, sorted by (date, start_time).
	List(ctx context.Context, filter Filter) ([]models.Booking, error)
}
