package models

import "time"

// Date and time formats used across the service. Times are zero-padded so
// lexicographic comparison matches chronological comparison.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Booking represents a committed reservation. Immutable once created;
// the only mutation is removal via cancel.
type Booking struct {
	ID        string    `bson:"id" json:"id"`                 // Unique booking identifier (UUID)
	RoomID    string    `bson:"room_id" json:"room_id"`       // Room being reserved
	Date      string    `bson:"date" json:"date"`             // Booking date in "YYYY-MM-DD" format
	StartTime string    `bson:"start_time" json:"start_time"` // Start time in "HH:MM" format, inclusive
	EndTime   string    `bson:"end_time" json:"end_time"`     // End time in "HH:MM" format, exclusive
	Title     string    `bson:"title,omitempty" json:"title,omitempty"`
	BookedBy  string    `bson:"booked_by,omitempty" json:"booked_by,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"` // Timestamp when the booking was committed
}

// Overlaps reports whether the booking's half-open [start, end) interval
// shares any instant with the given interval. Back-to-back bookings do not
// overlap.
func (b Booking) Overlaps(start, end string) bool {
	return b.StartTime < end && start < b.EndTime
}
