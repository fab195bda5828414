package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"roombook/models"
)

// GeminiExtractor extracts booking slots with an LLM. The model output is
// treated as untrusted: JSON is recovered from chatty replies, and the
// resolved fields go through the same deterministic normalization as the
// rule extractor, so room resolution and confidence never depend on the
// model's own judgment.
type GeminiExtractor struct {
	LLM ContentGenerator
}

func NewGeminiExtractor(llm ContentGenerator) *GeminiExtractor {
	return &GeminiExtractor{LLM: llm}
}

// rawExtraction is the JSON contract the model is prompted to produce.
type rawExtraction struct {
	RoomName            *string `json:"room_name"`
	MinCapacity         *int    `json:"min_capacity"`
	Date                *string `json:"date"`
	StartTime           *string `json:"start_time"`
	EndTime             *string `json:"end_time"`
	BookedBy            *string `json:"booked_by"`
	Title               *string `json:"title"`
	Confidence          string  `json:"confidence"`
	ClarificationNeeded *string `json:"clarification_needed"`
}

var jsonBlobRe = regexp.MustCompile(`\{(?:[^{}]|\{[^{}]*\})*\}`)

func (e *GeminiExtractor) Extract(ctx context.Context, in ExtractInput) (models.BookingDraft, error) {
	prompt := buildPrompt(in)

	reply, err := e.LLM.GenerateContent(ctx, prompt)
	if err != nil {
		return models.BookingDraft{}, fmt.Errorf("extraction call failed: %w", err)
	}

	raw, err := decodeExtraction(reply)
	if err != nil {
		return models.BookingDraft{}, fmt.Errorf("extraction output unusable: %w", err)
	}

	draft := models.BookingDraft{
		RoomName:    raw.RoomName,
		MinCapacity: raw.MinCapacity,
		Date:        raw.Date,
		StartTime:   raw.StartTime,
		EndTime:     raw.EndTime,
		BookedBy:    raw.BookedBy,
		Title:       raw.Title,
	}
	return finalizeDraft(draft, in.Rooms, in.Now), nil
}

// decodeExtraction unmarshals the model reply, falling back to the first
// JSON object embedded in surrounding prose.
func decodeExtraction(reply string) (rawExtraction, error) {
	var raw rawExtraction
	if err := json.Unmarshal([]byte(reply), &raw); err == nil {
		return raw, nil
	}
	blob := jsonBlobRe.FindString(reply)
	if blob == "" {
		return raw, fmt.Errorf("no JSON object in model reply")
	}
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return raw, fmt.Errorf("embedded JSON did not parse: %w", err)
	}
	return raw, nil
}

func buildPrompt(in ExtractInput) string {
	var sb strings.Builder
	sb.WriteString("You are a meeting room booking assistant. Extract booking details from the conversation.\n\n")

	sb.WriteString("Available rooms:\n")
	for _, r := range in.Rooms {
		fmt.Fprintf(&sb, "- %s (capacity: %d)\n", r.Name, r.Capacity)
	}

	fmt.Fprintf(&sb, "\nToday's date: %s (%s)\n\n", in.Now.Format(models.DateLayout), in.Now.Weekday())

	sb.WriteString(`Extraction rules:
1. Match room names flexibly (e.g., "board room" -> "Board Room").
2. Convert relative dates against today's date: "tomorrow", "next Monday".
3. If a duration is given (e.g., "1 hour"), calculate end_time from start_time.
4. Later messages override earlier ones for any field they re-specify.
5. Leave a field null when the conversation never supplied it.
6. Set clarification_needed with a question when information is missing.

Respond with ONLY a valid JSON object with these keys:
room_name: string or null
min_capacity: integer or null
date: "YYYY-MM-DD" string or null
start_time: "HH:MM" string or null
end_time: "HH:MM" string or null
booked_by: string or null
title: string or null
confidence: "high" or "medium" or "low"
clarification_needed: string or null

Conversation:
`)
	for _, turn := range in.PriorTurns {
		fmt.Fprintf(&sb, "%s: %s\n", turn.Role, turn.Text)
	}
	fmt.Fprintf(&sb, "user: %s\n", in.Text)
	return sb.String()
}
