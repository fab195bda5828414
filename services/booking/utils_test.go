package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockToMinutes(t *testing.T) {
	cases := []struct {
		clock string
		want  int
		ok    bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"9:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"10:60", 0, false},
		{"10", 0, false},
		{"ten", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ClockToMinutes(tc.clock)
		if tc.ok {
			require.NoError(t, err, "clock %q", tc.clock)
			assert.Equal(t, tc.want, got, "clock %q", tc.clock)
		} else {
			assert.Error(t, err, "clock %q", tc.clock)
		}
	}
}

func TestMinutesToClock(t *testing.T) {
	assert.Equal(t, "00:00", MinutesToClock(0))
	assert.Equal(t, "09:05", MinutesToClock(545))
	assert.Equal(t, "23:59", MinutesToClock(1439))
	// Out-of-range values are clamped.
	assert.Equal(t, "23:59", MinutesToClock(1500))
	assert.Equal(t, "00:00", MinutesToClock(-5))
}

func TestAddMinutes(t *testing.T) {
	got, err := AddMinutes("10:30", 60)
	require.NoError(t, err)
	assert.Equal(t, "11:30", got)

	got, err = AddMinutes("23:30", 60)
	require.NoError(t, err)
	assert.Equal(t, "23:59", got)

	_, err = AddMinutes("bad", 60)
	assert.Error(t, err)
}
