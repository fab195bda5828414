package ai

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"roombook/models"
)

// RuleExtractor is a deterministic keyword/pattern extractor. It is the
// default when no LLM is configured and the fallback when the LLM is
// unavailable, so a conversation can always make progress.
type RuleExtractor struct{}

func NewRuleExtractor() *RuleExtractor { return &RuleExtractor{} }

var (
	datePhraseRe = regexp.MustCompile(`(?i)\b(day after tomorrow|tomorrow|today|tonight|(?:next\s+|this\s+)?(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)|\d{4}-\d{2}-\d{2}|(?:january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)\s+\d{1,2}(?:st|nd|rd|th)?|\d{1,2}(?:st|nd|rd|th)?\s+(?:january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec))\b`)

	startTimeRe = regexp.MustCompile(`(?i)\b(?:at|from|starting at|beginning at)\s+(\d{1,2}(?::\d{2})?\s*(?:am|pm)?|noon|midday|midnight)\b`)
	bareTimeRe  = regexp.MustCompile(`(?i)\b(\d{1,2}(?::\d{2})?\s*(?:am|pm)|\d{1,2}:\d{2}|noon|midday|midnight)\b`)
	endTimeRe   = regexp.MustCompile(`(?i)\b(?:until|till|to|ending at)\s+(\d{1,2}(?::\d{2})?\s*(?:am|pm)?|noon|midday|midnight)\b`)

	durationRe     = regexp.MustCompile(`(?i)\bfor\s+(?:(\d+(?:\.\d+)?)\s*(hours?|hrs?|minutes?|mins?)|(an?\s+hour)|(half\s+an\s+hour))\b`)
	capacityRe     = regexp.MustCompile(`(?i)\b(?:for|fits?|seats?|holds?)\s+(\d{1,3})\s+(?:people|persons?|attendees|participants|guests|folks)\b`)
	roomPhraseRe   = regexp.MustCompile(`(?i)\b((?:[a-z0-9]+\s+){0,2}(?:room|boardroom|hall|suite|lab|hub)(?:\s+[a-z0-9]{1,3})?)\b`)
	bookedByRe     = regexp.MustCompile(`(?i)\b(?:my name is|this is|booked by|book under|under the name)\s+([A-Za-z][A-Za-z'-]*(?:\s+[A-Za-z][A-Za-z'-]*)?)`)
	quotedTitleRe  = regexp.MustCompile(`["“]([^"”]+)["”]|'([^']+)'`)
	aboutTitleRe   = regexp.MustCompile(`(?i)\b(?:about|regarding|titled|called)\s+([a-z0-9][a-z0-9 ]{2,60}?)(?:\s+(?:on|at|from|until|tomorrow|today|next|this)\b|[.,!]|$)`)
	roomStopwords  = map[string]bool{"book": true, "reserve": true, "the": true, "a": true, "an": true, "get": true, "need": true, "grab": true, "me": true, "in": true, "please": true, "want": true, "i": true, "take": true, "use": true}
	trailingJunkRe = regexp.MustCompile(`(?i)\s+(?:tomorrow|today|tonight|next|this|at|from|on|for|until|till)$`)
)

// Extract runs pattern extraction over every user turn in order, letting
// later turns override earlier ones per field, then applies the shared
// deterministic normalization.
func (e *RuleExtractor) Extract(ctx context.Context, in ExtractInput) (models.BookingDraft, error) {
	var merged models.BookingDraft
	for _, turn := range in.PriorTurns {
		if turn.Role != models.RoleUser {
			continue
		}
		merged = merged.Merge(e.extractOne(turn.Text, in.Rooms))
	}
	merged = merged.Merge(e.extractOne(in.Text, in.Rooms))
	return finalizeDraft(merged, in.Rooms, in.Now), nil
}

// extractOne pulls raw fields out of a single message. Resolution of
// phrases to concrete values happens later in finalizeDraft.
func (e *RuleExtractor) extractOne(text string, rooms []models.Room) models.BookingDraft {
	var draft models.BookingDraft
	lower := strings.ToLower(text)

	if name := findRoomMention(lower, rooms); name != "" {
		draft.RoomName = models.StrPtr(name)
	}

	if m := datePhraseRe.FindString(text); m != "" {
		draft.Date = models.StrPtr(m)
	}

	if m := startTimeRe.FindStringSubmatch(text); m != nil {
		draft.StartTime = models.StrPtr(strings.TrimSpace(m[1]))
	} else if m := bareTimeRe.FindStringSubmatch(text); m != nil {
		draft.StartTime = models.StrPtr(strings.TrimSpace(m[1]))
	}

	if m := endTimeRe.FindStringSubmatch(text); m != nil {
		end := strings.TrimSpace(m[1])
		// "from 2 to 3pm" leaves the start bare; ResolveClock rejects bare
		// numbers, so borrow the end meridiem in that case.
		if draft.StartTime != nil {
			if _, ok := ResolveClock(*draft.StartTime); !ok {
				if strings.HasSuffix(strings.ToLower(end), "am") || strings.HasSuffix(strings.ToLower(end), "pm") {
					draft.StartTime = models.StrPtr(*draft.StartTime + end[len(end)-2:])
				}
			}
		}
		if *orEmpty(draft.StartTime) != end {
			draft.EndTime = models.StrPtr(end)
		}
	}

	if draft.EndTime == nil && draft.StartTime != nil {
		if mins, ok := findDuration(lower); ok {
			if start, okStart := ResolveClock(*draft.StartTime); okStart {
				if end, err := addClock(start, mins); err == nil {
					draft.EndTime = models.StrPtr(end)
				}
			}
		}
	}

	if m := capacityRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			draft.MinCapacity = models.IntPtr(n)
		}
	}

	if m := bookedByRe.FindStringSubmatch(text); m != nil {
		draft.BookedBy = models.StrPtr(strings.TrimSpace(m[1]))
	}

	if m := quotedTitleRe.FindStringSubmatch(text); m != nil {
		title := m[1]
		if title == "" {
			title = m[2]
		}
		draft.Title = models.StrPtr(title)
	} else if m := aboutTitleRe.FindStringSubmatch(text); m != nil {
		draft.Title = models.StrPtr(strings.TrimSpace(m[1]))
	}

	return draft
}

// findRoomMention locates the room-ish phrase in a message: a full known
// room name when present, otherwise a generic "<words> room <suffix>"
// phrase left for the matcher to resolve.
func findRoomMention(lower string, rooms []models.Room) string {
	best := ""
	for _, r := range rooms {
		name := normalizeName(r.Name)
		if strings.Contains(lower, name) && len(name) > len(best) {
			best = name
		}
	}
	if best != "" {
		return best
	}

	m := roomPhraseRe.FindString(lower)
	if m == "" {
		return ""
	}
	tokens := strings.Fields(m)
	for len(tokens) > 1 && roomStopwords[tokens[0]] {
		tokens = tokens[1:]
	}
	phrase := strings.Join(tokens, " ")
	phrase = trailingJunkRe.ReplaceAllString(phrase, "")
	if phrase == "room" || phrase == "" {
		return ""
	}
	return phrase
}

func findDuration(lower string) (int, bool) {
	m := durationRe.FindStringSubmatch(lower)
	if m == nil {
		return 0, false
	}
	switch {
	case m[3] != "": // "an hour"
		return 60, true
	case m[4] != "": // "half an hour"
		return 30, true
	}
	val, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if strings.HasPrefix(strings.ToLower(m[2]), "h") {
		return int(val * 60), true
	}
	return int(val), true
}

func addClock(clock string, minutes int) (string, error) {
	parts := strings.SplitN(clock, ":", 2)
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", err
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", err
	}
	total := h*60 + m + minutes
	if total > 23*60+59 {
		total = 23*60 + 59
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60), nil
}

func orEmpty(s *string) *string {
	if s == nil {
		empty := ""
		return &empty
	}
	return s
}
