package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"roombook/models"
)

// ClockToMinutes converts an "HH:MM" clock string to minutes from midnight.
func ClockToMinutes(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock %q", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in clock %q", clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in clock %q", clock)
	}
	return h*60 + m, nil
}

// MinutesToClock converts minutes from midnight to a zero-padded "HH:MM"
// string. Values past midnight are clamped to 23:59.
func MinutesToClock(minutes int) string {
	if minutes > 23*60+59 {
		minutes = 23*60 + 59
	}
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddMinutes shifts an "HH:MM" clock forward by the given number of minutes.
func AddMinutes(clock string, minutes int) (string, error) {
	total, err := ClockToMinutes(clock)
	if err != nil {
		return "", err
	}
	return MinutesToClock(total + minutes), nil
}

func validateCommitInput(in CommitInput) error {
	if in.RoomID == "" {
		return &ValidationError{Field: "room_id", Message: "is required"}
	}
	if _, err := time.Parse(models.DateLayout, in.Date); err != nil {
		return &ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"}
	}
	startMin, err := ClockToMinutes(in.StartTime)
	if err != nil {
		return &ValidationError{Field: "start_time", Message: "must be in HH:MM format"}
	}
	if in.EndTime != "" {
		endMin, err := ClockToMinutes(in.EndTime)
		if err != nil {
			return &ValidationError{Field: "end_time", Message: "must be in HH:MM format"}
		}
		if startMin >= endMin {
			return &ValidationError{Field: "end_time", Message: "must be after start_time"}
		}
	}
	return nil
}
