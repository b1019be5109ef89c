package sports

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.March, 4, 12, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T, handler http.HandlerFunc) *ScoreClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log, _ := test.NewNullLogger()
	c := NewScoreClient(srv.URL+"/", 2*time.Second, log)
	c.now = func() time.Time { return fixedNow }
	return c
}

const nbaScoreboard = `{
  "events": [
    {
      "date": "2025-03-04T00:30Z",
      "name": "Boston Celtics at Los Angeles Lakers",
      "status": {"type": {"description": "Final"}},
      "competitions": [{"competitors": [
        {"score": "112", "team": {"displayName": "Los Angeles Lakers", "abbreviation": "LAL", "logo": "lal.png", "color": "552583"}},
        {"score": "108", "team": {"displayName": "Boston Celtics", "abbreviation": "BOS", "logo": "bos.png", "color": "008348"}}
      ]}]
    },
    {
      "date": "2025-02-20T00:30Z",
      "name": "Old Game",
      "status": {"type": {"description": "Final"}},
      "competitions": [{"competitors": [
        {"score": "1", "team": {"displayName": "A"}},
        {"score": "2", "team": {"displayName": "B"}}
      ]}]
    },
    {
      "date": "2025-03-05T01:00:00Z",
      "name": "Heat at Knicks",
      "status": {"type": {"description": "Scheduled"}},
      "competitions": [{"competitors": [
        {"team": {"displayName": "New York Knicks"}},
        {"team": {"displayName": "Miami Heat"}}
      ]}]
    },
    {
      "date": "not a date",
      "name": "Broken Date",
      "competitions": []
    },
    {
      "date": "2025-03-04T02:00Z",
      "name": "Walkover",
      "competitions": [{"competitors": [{"team": {"displayName": "Solo"}}]}]
    }
  ]
}`

func TestGetScoresNormalizesAndFiltersStale(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, nbaScoreboard)
	})

	res, err := c.GetScores(context.Background(), "NBA")
	require.NoError(t, err)

	assert.Equal(t, "/basketball/nba/scoreboard", gotPath)
	assert.Equal(t, "nba", res.Sport)
	require.Len(t, res.Games, 2)

	g := res.Games[0]
	assert.Equal(t, "Los Angeles Lakers", g.HomeTeam)
	assert.Equal(t, "LAL", g.HomeAbbreviation)
	assert.Equal(t, "112", g.HomeScore)
	assert.Equal(t, "Boston Celtics", g.AwayTeam)
	assert.Equal(t, "108", g.AwayScore)
	assert.Equal(t, "Final", g.Status)
	assert.Equal(t, "2025-03-04T00:30Z", g.StartTime)
	assert.False(t, g.IsCricket)
	assert.Nil(t, g.HomeInnings)

	upcoming := res.Games[1]
	assert.Equal(t, "Heat at Knicks", upcoming.Name)
	assert.Equal(t, "0", upcoming.HomeScore)
	assert.Equal(t, "0", upcoming.AwayScore)
}

func TestGetScoresUnsupported(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called for an unknown sport")
	})

	_, err := c.GetScores(context.Background(), "curling")
	assert.True(t, errors.Is(err, ErrUnsupportedSport))
}

func TestGetScoresUpstreamFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.GetScores(context.Background(), "nfl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestGetScoresCricketInnings(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"events": [{
		  "date": "2025-03-03T09:00Z",
		  "name": "MI v CSK",
		  "status": {"type": {"description": "Result"}},
		  "competitions": [{"competitors": [
		    {"score": "120", "team": {"displayName": "Mumbai Indians"},
		     "linescores": [{"runs": 120, "wickets": 10, "overs": 18.2}, {"runs": 0, "wickets": 0, "overs": 0}]},
		    {"score": "85/4", "team": {"displayName": "Chennai Super Kings"},
		     "linescores": [{"runs": 85, "wickets": 4, "overs": 12}, {"runs": 150, "wickets": 7, "overs": 20, "description": "all out"}]}
		  ]}]
		}]}`)
	})

	res, err := c.GetScores(context.Background(), "ipl")
	require.NoError(t, err)
	require.Len(t, res.Games, 1)

	g := res.Games[0]
	assert.True(t, g.IsCricket)
	assert.Equal(t, []string{"120"}, g.HomeInnings)
	assert.Equal(t, []string{"85/4", "150"}, g.AwayInnings)
}

func TestFormatInnings(t *testing.T) {
	tests := []struct {
		name    string
		runs    int
		wickets int
		overs   float64
		desc    string
		want    string
		present bool
	}{
		{"bowled out", 120, 10, 19.3, "", "120", true},
		{"in progress", 85, 4, 11.2, "", "85/4", true},
		{"explicit all out", 140, 9, 20, "all out", "140", true},
		{"empty innings", 0, 0, 0, "", "", false},
		{"overs only", 0, 0, 0.4, "", "0/0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FormatInnings(tt.runs, tt.wickets, tt.overs, tt.desc)
			assert.Equal(t, tt.present, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsRecent(t *testing.T) {
	assert.True(t, isRecent(fixedNow.Add(-6*24*time.Hour).Format(time.RFC3339), fixedNow))
	assert.False(t, isRecent(fixedNow.Add(-8*24*time.Hour).Format(time.RFC3339), fixedNow))
	assert.True(t, isRecent("2025-03-10T18:00Z", fixedNow))
	assert.False(t, isRecent("", fixedNow))
	assert.False(t, isRecent("yesterday", fixedNow))
}
