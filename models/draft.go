package models

// Confidence levels reported by the slot extractor.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// BookingDraft is a partially or fully filled reservation request produced
// by the slot extractor and refined across dialogue turns. Nil pointer
// fields mean "not yet supplied". A draft is commitable once RoomID, Date
// and StartTime are concrete; EndTime is defaulted at confirmation time.
type BookingDraft struct {
	RoomID              *string `json:"room_id,omitempty"`    // Authoritative once resolved
	RoomName            *string `json:"room_name,omitempty"`  // As mentioned by the caller
	Date                *string `json:"date,omitempty"`       // "YYYY-MM-DD"
	StartTime           *string `json:"start_time,omitempty"` // "HH:MM"
	EndTime             *string `json:"end_time,omitempty"`   // "HH:MM"
	Title               *string `json:"title,omitempty"`
	BookedBy            *string `json:"booked_by,omitempty"`
	MinCapacity         *int    `json:"min_capacity,omitempty"`     // Capacity requirement when no room was named
	RecommendedRoom     *string `json:"recommended_room,omitempty"` // Smallest room meeting MinCapacity
	Confidence          string  `json:"confidence"`                 // high | medium | low
	ClarificationNeeded *string `json:"clarification_needed,omitempty"`
}

// Complete reports whether every field required for commit is resolved.
func (d BookingDraft) Complete() bool {
	return d.RoomID != nil && d.Date != nil && d.StartTime != nil
}

// Merge overlays later-turn values onto the draft. Fields re-specified by
// the newer draft win; everything else is carried forward.
func (d BookingDraft) Merge(newer BookingDraft) BookingDraft {
	out := d
	if newer.RoomID != nil {
		out.RoomID = newer.RoomID
	}
	if newer.RoomName != nil {
		out.RoomName = newer.RoomName
		// A re-specified room name invalidates a previously resolved ID
		// unless the newer draft resolved one too.
		out.RoomID = newer.RoomID
	}
	if newer.Date != nil {
		out.Date = newer.Date
	}
	if newer.StartTime != nil {
		out.StartTime = newer.StartTime
	}
	if newer.EndTime != nil {
		out.EndTime = newer.EndTime
	}
	if newer.Title != nil {
		out.Title = newer.Title
	}
	if newer.BookedBy != nil {
		out.BookedBy = newer.BookedBy
	}
	if newer.MinCapacity != nil {
		out.MinCapacity = newer.MinCapacity
	}
	if newer.RecommendedRoom != nil {
		out.RecommendedRoom = newer.RecommendedRoom
	}
	out.Confidence = newer.Confidence
	out.ClarificationNeeded = newer.ClarificationNeeded
	return out
}

// StrPtr is a convenience for building drafts.
func StrPtr(s string) *string { return &s }

// IntPtr is a convenience for building drafts.
func IntPtr(i int) *int { return &i }
