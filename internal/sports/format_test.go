package sports

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sportsgpt-backend/internal/models"
)

func TestFormatContext(t *testing.T) {
	results := []models.ScoresResult{
		{Sport: "nba", Games: []models.GameRecord{
			{HomeTeam: "Los Angeles Lakers", HomeScore: "112", AwayTeam: "Boston Celtics", AwayScore: "108", Status: "Final"},
			{HomeTeam: "New York Knicks", HomeScore: "0", AwayTeam: "Miami Heat", AwayScore: "0", Status: "Scheduled"},
		}},
		{Sport: "nhl"},
	}

	want := "NBA:\n" +
		"Boston Celtics 108 @ Los Angeles Lakers 112 (Final)\n" +
		"Miami Heat 0 @ New York Knicks 0 (Scheduled)\n" +
		"\n" +
		"NHL: No games scheduled right now."

	assert.Equal(t, want, FormatContext(results))
}

func TestFormatContextEmpty(t *testing.T) {
	assert.Equal(t, "", FormatContext(nil))
}
