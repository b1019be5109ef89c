package sports

import (
	"fmt"
	"strings"

	"sportsgpt-backend/internal/models"
)

// FormatContext renders score results as plain text for prompt injection.
func FormatContext(results []models.ScoresResult) string {
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		label := strings.ToUpper(r.Sport)
		if len(r.Games) == 0 {
			fmt.Fprintf(&b, "%s: No games scheduled right now.\n", label)
			continue
		}
		fmt.Fprintf(&b, "%s:\n", label)
		for _, g := range r.Games {
			fmt.Fprintf(&b, "%s %s @ %s %s (%s)\n", g.AwayTeam, g.AwayScore, g.HomeTeam, g.HomeScore, g.Status)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
