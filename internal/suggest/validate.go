package suggest

import (
	"encoding/json"
	"strings"

	"patternpick/internal/logging"
)

// MaxSuggestions is the hard cap on a validated suggestion list.
const MaxSuggestions = 5

// Validate reduces a raw model response to the list of known pattern names it
// proposes. It is total: any input, including garbage, yields a usable (often
// empty) slice and it never panics. Duplicates that survive the membership
// filter are kept; order is the model's order.
func Validate(raw string, known map[string]struct{}) []string {
	cleaned := stripCodeFence(raw)

	// An "error" field alongside (or instead of) "patterns" is tolerated:
	// decoding targets only the patterns key, so extra fields fall away.
	var payload struct {
		Patterns []interface{} `json:"patterns"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		logging.SuggestDebug("response is not a JSON object: %v", err)
		return []string{}
	}
	if payload.Patterns == nil {
		logging.SuggestDebug("response carries no patterns sequence")
		return []string{}
	}

	out := make([]string, 0, MaxSuggestions)
	for _, entry := range payload.Patterns {
		name, ok := entry.(string)
		if !ok {
			continue
		}
		if _, ok := known[name]; !ok {
			logging.SuggestDebug("dropping unknown pattern %q", name)
			continue
		}
		out = append(out, name)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}

// KnownSet builds the membership set Validate filters against.
func KnownSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// stripCodeFence removes at most one markdown fence pair wrapping the
// response. Fences inside the payload are left alone.
func stripCodeFence(raw string) string {
	cleaned := strings.TrimSpace(raw)
	lower := strings.ToLower(cleaned)
	switch {
	case strings.HasPrefix(lower, "```json"):
		cleaned = cleaned[len("```json"):]
	case strings.HasPrefix(cleaned, "```"):
		cleaned = cleaned[len("```"):]
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}
