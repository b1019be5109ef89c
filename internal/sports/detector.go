package sports

import "strings"

// scoreIntent phrases signal the user wants current or recent game information.
var scoreIntent = []string{
	"score", "who won", "winning", "result",
	"standings", "live", "today", "tonight", "yesterday", "last night",
	"schedule", "fixture", "playing", "game", "match",
}

// Detect returns the identifiers of every sport mentioned in text, or nil when
// the text carries no score intent. Keyword matching is by substring, so a word
// like "football" selects both nfl and soccer.
func Detect(text string) []string {
	lower := strings.ToLower(text)

	if !containsAny(lower, scoreIntent) {
		return nil
	}

	var ids []string
	for _, s := range supported {
		if containsAny(lower, s.Keywords) {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// HasScoreIntent reports whether text asks about current or recent games.
func HasScoreIntent(text string) bool {
	return containsAny(strings.ToLower(text), scoreIntent)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
