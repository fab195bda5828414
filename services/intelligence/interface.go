package ai

import (
	"context"
	"time"

	"roombook/models"
)

// ExtractInput is everything the slot extractor may depend on. Now is the
// caller-supplied reference for relative dates; extractors must never read
// the wall clock so identical inputs always yield identical drafts.
type ExtractInput struct {
	Text       string
	PriorTurns []models.Turn
	Rooms      []models.Room
	Now        time.Time
}

// Extractor maps free text plus prior turns to a partially filled booking
// draft. Implementations return an error only for transport-level failures;
// missing or ambiguous information is expressed through the draft's
// clarification field, never as an error.
type Extractor interface {
	Extract(ctx context.Context, in ExtractInput) (models.BookingDraft, error)
}
