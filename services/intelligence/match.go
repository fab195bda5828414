package ai

import (
	"sort"
	"strings"

	"roombook/models"
)

// MatchRoom resolves a room-name mention against the directory. Matching is
// tiered: exact (case-insensitive) > prefix > substring > token subset.
// Only the best non-empty tier is returned; more than one room in that tier
// means the mention is ambiguous and the caller should ask for
// clarification. Results are ordered by room ID so the outcome is
// deterministic for equal-quality matches.
func MatchRoom(query string, rooms []models.Room) []models.Room {
	q := normalizeName(query)
	if q == "" {
		return nil
	}

	var exact, prefix, substring, tokens []models.Room
	qTokens := strings.Fields(q)

	for _, r := range rooms {
		name := normalizeName(r.Name)
		switch {
		case name == q:
			exact = append(exact, r)
		case strings.HasPrefix(name, q):
			prefix = append(prefix, r)
		case strings.Contains(name, q):
			substring = append(substring, r)
		case containsAllTokens(name, qTokens):
			tokens = append(tokens, r)
		}
	}

	for _, tier := range [][]models.Room{exact, prefix, substring, tokens} {
		if len(tier) > 0 {
			sort.Slice(tier, func(i, j int) bool { return tier[i].ID < tier[j].ID })
			return tier
		}
	}
	return nil
}

// RoomsByCapacity returns rooms holding at least n people, smallest first.
// Ties on capacity are broken by room ID.
func RoomsByCapacity(n int, rooms []models.Room) []models.Room {
	var out []models.Room
	for _, r := range rooms {
		if r.Capacity >= n {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Capacity != out[j].Capacity {
			return out[i].Capacity < out[j].Capacity
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

func containsAllTokens(name string, tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, t := range tokens {
		if !strings.Contains(name, t) {
			return false
		}
	}
	return true
}
