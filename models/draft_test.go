package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDraftComplete(t *testing.T) {
	var d BookingDraft
	assert.False(t, d.Complete())

	d.RoomID = StrPtr("3")
	d.Date = StrPtr("2025-01-30")
	assert.False(t, d.Complete())

	d.StartTime = StrPtr("10:00")
	assert.True(t, d.Complete())

	// EndTime is optional; it defaults at commit time.
	assert.Nil(t, d.EndTime)
}

func TestDraftMergeLaterFieldsWin(t *testing.T) {
	older := BookingDraft{
		RoomID:    StrPtr("3"),
		RoomName:  StrPtr("Board Room"),
		Date:      StrPtr("2025-01-30"),
		StartTime: StrPtr("10:00"),
	}
	newer := BookingDraft{StartTime: StrPtr("15:00")}

	out := older.Merge(newer)
	assert.Equal(t, "15:00", *out.StartTime)
	assert.Equal(t, "3", *out.RoomID)
	assert.Equal(t, "2025-01-30", *out.Date)
}

func TestDraftMergeRespecifiedRoomInvalidatesID(t *testing.T) {
	older := BookingDraft{
		RoomID:   StrPtr("3"),
		RoomName: StrPtr("Board Room"),
	}
	newer := BookingDraft{RoomName: StrPtr("huddle")}

	out := older.Merge(newer)
	assert.Nil(t, out.RoomID)
	assert.Equal(t, "huddle", *out.RoomName)
}

func TestDraftMergeKeepsUnmentionedFields(t *testing.T) {
	older := BookingDraft{
		Date:        StrPtr("2025-01-30"),
		MinCapacity: IntPtr(5),
		BookedBy:    StrPtr("Alex"),
	}

	out := older.Merge(BookingDraft{})
	assert.Equal(t, "2025-01-30", *out.Date)
	assert.Equal(t, 5, *out.MinCapacity)
	assert.Equal(t, "Alex", *out.BookedBy)
}
