package ai

import (
	"testing"

	"roombook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRooms() []models.Room {
	return []models.Room{
		{ID: "1", Name: "Conference Room A", Capacity: 10},
		{ID: "2", Name: "Conference Room B", Capacity: 8},
		{ID: "3", Name: "Board Room", Capacity: 20},
		{ID: "4", Name: "Huddle Room", Capacity: 4},
		{ID: "5", Name: "Training Room", Capacity: 30},
	}
}

func TestMatchRoomExact(t *testing.T) {
	matches := MatchRoom("conference room a", testRooms())
	require.Len(t, matches, 1)
	assert.Equal(t, "Conference Room A", matches[0].Name)
}

func TestMatchRoomExactIgnoresCaseAndSpacing(t *testing.T) {
	matches := MatchRoom("  BOARD   room ", testRooms())
	require.Len(t, matches, 1)
	assert.Equal(t, "3", matches[0].ID)
}

func TestMatchRoomPrefixAmbiguous(t *testing.T) {
	matches := MatchRoom("conference room", testRooms())
	require.Len(t, matches, 2)
	// Ordered by ID for deterministic clarification wording.
	assert.Equal(t, "Conference Room A", matches[0].Name)
	assert.Equal(t, "Conference Room B", matches[1].Name)
}

func TestMatchRoomExactBeatsPrefix(t *testing.T) {
	rooms := append(testRooms(), models.Room{ID: "6", Name: "Conference Room", Capacity: 6})
	matches := MatchRoom("conference room", rooms)
	require.Len(t, matches, 1)
	assert.Equal(t, "6", matches[0].ID)
}

func TestMatchRoomSubstring(t *testing.T) {
	matches := MatchRoom("huddle", testRooms())
	require.Len(t, matches, 1)
	assert.Equal(t, "Huddle Room", matches[0].Name)
}

func TestMatchRoomTokenSubset(t *testing.T) {
	// Tokens present but not contiguous, so only the token tier fires.
	matches := MatchRoom("room a conference", testRooms())
	require.Len(t, matches, 1)
	assert.Equal(t, "Conference Room A", matches[0].Name)
}

func TestMatchRoomNoMatch(t *testing.T) {
	assert.Empty(t, MatchRoom("the moon base", testRooms()))
	assert.Empty(t, MatchRoom("", testRooms()))
}

func TestRoomsByCapacitySmallestFirst(t *testing.T) {
	out := RoomsByCapacity(5, testRooms())
	require.Len(t, out, 4)
	assert.Equal(t, "Conference Room B", out[0].Name)
	assert.Equal(t, "Conference Room A", out[1].Name)
	assert.Equal(t, "Board Room", out[2].Name)
	assert.Equal(t, "Training Room", out[3].Name)
}

func TestRoomsByCapacityNoneQualify(t *testing.T) {
	assert.Empty(t, RoomsByCapacity(100, testRooms()))
}

func TestRoomsByCapacityTieBrokenByID(t *testing.T) {
	rooms := []models.Room{
		{ID: "9", Name: "Annex", Capacity: 10},
		{ID: "2", Name: "Loft", Capacity: 10},
	}
	out := RoomsByCapacity(10, rooms)
	require.Len(t, out, 2)
	assert.Equal(t, "2", out[0].ID)
}
