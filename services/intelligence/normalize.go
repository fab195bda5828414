package ai

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"roombook/models"
)

var (
	isoDateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthDayRe  = regexp.MustCompile(`^(?i)(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)\s+(\d{1,2})(?:st|nd|rd|th)?$`)
	dayMonthRe  = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)?\s+(?i)(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)$`)
	clockRe     = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm|AM|PM|a\.m\.|p\.m\.)?$`)
	weekdayName = map[string]time.Weekday{
		"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
		"wednesday": time.Wednesday, "thursday": time.Thursday,
		"friday": time.Friday, "saturday": time.Saturday,
	}
	monthName = map[string]time.Month{
		"january": time.January, "jan": time.January,
		"february": time.February, "feb": time.February,
		"march": time.March, "mar": time.March,
		"april": time.April, "apr": time.April,
		"may": time.May,
		"june": time.June, "jun": time.June,
		"july": time.July, "jul": time.July,
		"august": time.August, "aug": time.August,
		"september": time.September, "sep": time.September, "sept": time.September,
		"october": time.October, "oct": time.October,
		"november": time.November, "nov": time.November,
		"december": time.December, "dec": time.December,
	}
)

// ResolveDate turns a date phrase into "YYYY-MM-DD" relative to the supplied
// reference time, never the wall clock. A bare weekday resolves to its next
// occurrence strictly after the reference day; "next <weekday>" lands one
// week later. Month-day phrases resolve to the next occurrence, rolling to
// the following year when the date has already passed.
func ResolveDate(phrase string, now time.Time) (string, bool) {
	p := strings.ToLower(strings.TrimSpace(phrase))
	if p == "" {
		return "", false
	}
	if isoDateRe.MatchString(p) {
		if _, err := time.Parse(models.DateLayout, p); err == nil {
			return p, true
		}
		return "", false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch p {
	case "today", "tonight":
		return today.Format(models.DateLayout), true
	case "tomorrow":
		return today.AddDate(0, 0, 1).Format(models.DateLayout), true
	case "day after tomorrow", "the day after tomorrow":
		return today.AddDate(0, 0, 2).Format(models.DateLayout), true
	}

	next := false
	if rest, ok := strings.CutPrefix(p, "next "); ok {
		p = rest
		next = true
	} else if rest, ok := strings.CutPrefix(p, "this "); ok {
		p = rest
	}
	if wd, ok := weekdayName[p]; ok {
		days := (int(wd) - int(today.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		if next {
			days += 7
		}
		return today.AddDate(0, 0, days).Format(models.DateLayout), true
	}

	if m := monthDayRe.FindStringSubmatch(p); m != nil {
		return resolveMonthDay(m[1], m[2], today)
	}
	if m := dayMonthRe.FindStringSubmatch(p); m != nil {
		return resolveMonthDay(m[2], m[1], today)
	}
	return "", false
}

func resolveMonthDay(month, day string, today time.Time) (string, bool) {
	mon, ok := monthName[strings.ToLower(month)]
	if !ok {
		return "", false
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return "", false
	}
	candidate := time.Date(today.Year(), mon, d, 0, 0, 0, 0, time.UTC)
	if candidate.Day() != d {
		return "", false
	}
	if candidate.Before(today) {
		candidate = time.Date(today.Year()+1, mon, d, 0, 0, 0, 0, time.UTC)
	}
	return candidate.Format(models.DateLayout), true
}

// ResolveClock turns a time phrase ("2pm", "2:30 pm", "14:00", "noon") into
// a zero-padded "HH:MM" string.
func ResolveClock(phrase string) (string, bool) {
	p := strings.ToLower(strings.TrimSpace(phrase))
	switch p {
	case "noon", "midday":
		return "12:00", true
	case "midnight":
		return "00:00", true
	}

	m := clockRe.FindStringSubmatch(p)
	if m == nil {
		return "", false
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}
	minute := 0
	if m[2] != "" {
		if minute, err = strconv.Atoi(m[2]); err != nil || minute > 59 {
			return "", false
		}
	}
	meridiem := strings.ReplaceAll(strings.ToLower(m[3]), ".", "")
	switch meridiem {
	case "pm":
		if hour < 1 || hour > 12 {
			return "", false
		}
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour < 1 || hour > 12 {
			return "", false
		}
		if hour == 12 {
			hour = 0
		}
	default:
		// Bare numbers without a meridiem are only meaningful with an
		// explicit minute part ("14:00"); "at 2" stays ambiguous.
		if m[2] == "" {
			return "", false
		}
		if hour > 23 {
			return "", false
		}
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

// finalizeDraft resolves the room mention, applies the capacity
// recommendation rule and computes confidence. It is the deterministic tail
// shared by every extractor.
func finalizeDraft(draft models.BookingDraft, rooms []models.Room, now time.Time) models.BookingDraft {
	inferred := 0
	var ambiguous []string

	// Date phrases that survived extraction unresolved are re-resolved here
	// so LLM output gets the same deterministic treatment as rule output.
	if draft.Date != nil && !isoDateRe.MatchString(*draft.Date) {
		if resolved, ok := ResolveDate(*draft.Date, now); ok {
			draft.Date = models.StrPtr(resolved)
		} else {
			draft.Date = nil
		}
	}
	if draft.StartTime != nil {
		if resolved, ok := ResolveClock(*draft.StartTime); ok {
			draft.StartTime = models.StrPtr(resolved)
		} else {
			draft.StartTime = nil
		}
	}
	if draft.EndTime != nil {
		if resolved, ok := ResolveClock(*draft.EndTime); ok {
			draft.EndTime = models.StrPtr(resolved)
		} else {
			draft.EndTime = nil
		}
	}

	if draft.RoomID == nil && draft.RoomName != nil {
		mention := *draft.RoomName
		matches := MatchRoom(mention, rooms)
		switch {
		case len(matches) == 1:
			draft.RoomID = models.StrPtr(matches[0].ID)
			draft.RoomName = models.StrPtr(matches[0].Name)
			if !strings.EqualFold(matches[0].Name, mention) {
				inferred++
			}
		case len(matches) > 1:
			var names []string
			for _, r := range matches {
				names = append(names, r.Name)
			}
			ambiguous = append(ambiguous, fmt.Sprintf("Did you mean %s?", strings.Join(names, " or ")))
		default:
			ambiguous = append(ambiguous, fmt.Sprintf("I don't know a room called %q. Which room would you like?", mention))
		}
	}

	// Capacity-only requests: surface the smallest qualifying room as a
	// recommendation; auto-resolve only when exactly one room qualifies.
	if draft.RoomID == nil && draft.RoomName == nil && draft.MinCapacity != nil {
		candidates := RoomsByCapacity(*draft.MinCapacity, rooms)
		switch {
		case len(candidates) == 1:
			draft.RoomID = models.StrPtr(candidates[0].ID)
			draft.RoomName = models.StrPtr(candidates[0].Name)
			inferred++
		case len(candidates) > 1:
			draft.RecommendedRoom = models.StrPtr(candidates[0].Name)
		}
	}

	var missing []string
	if draft.RoomID == nil && len(ambiguous) == 0 {
		missing = append(missing, "room")
	}
	if draft.Date == nil {
		missing = append(missing, "date")
	}
	if draft.StartTime == nil {
		missing = append(missing, "start time")
	}

	openCount := len(ambiguous) + len(missing)
	switch {
	case openCount == 0 && inferred == 0:
		draft.Confidence = models.ConfidenceHigh
		draft.ClarificationNeeded = nil
	case openCount == 0:
		draft.Confidence = models.ConfidenceMedium
		draft.ClarificationNeeded = nil
	case openCount == 1:
		draft.Confidence = models.ConfidenceMedium
		draft.ClarificationNeeded = models.StrPtr(clarificationFor(ambiguous, missing, draft))
	default:
		draft.Confidence = models.ConfidenceLow
		draft.ClarificationNeeded = models.StrPtr(clarificationFor(ambiguous, missing, draft))
	}
	return draft
}

// clarificationFor phrases a question naming exactly the open fields.
// Ambiguity questions already carry their own wording and take priority.
func clarificationFor(ambiguous, missing []string, draft models.BookingDraft) string {
	if len(ambiguous) > 0 {
		return ambiguous[0]
	}
	var q string
	switch len(missing) {
	case 1:
		q = fmt.Sprintf("What %s would you like?", missing[0])
	default:
		q = fmt.Sprintf("What %s and %s would you like?",
			strings.Join(missing[:len(missing)-1], ", "), missing[len(missing)-1])
	}
	if draft.RecommendedRoom != nil {
		q += fmt.Sprintf(" The %s would fit your group.", *draft.RecommendedRoom)
	}
	return q
}
