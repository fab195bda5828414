package models

import "time"

// Room is a bookable meeting room. Rooms are treated as immutable once
// seeded; edits happen out-of-band and never mid-conversation.
type Room struct {
	ID        string    `bson:"id" json:"id"`                 // Stable identifier
	Name      string    `bson:"name" json:"name"`             // Unique human-readable name, used for fuzzy matching
	Capacity  int       `bson:"capacity" json:"capacity"`     // Maximum number of people
	Amenities []string  `bson:"amenities" json:"amenities"`   // e.g., "projector", "whiteboard"
	CreatedAt time.Time `bson:"created_at" json:"created_at"` // Timestamp when the room was added
}
