package sports

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"sportsgpt-backend/internal/models"
)

// MaxStaleness excludes events that started longer ago than this.
const MaxStaleness = 7 * 24 * time.Hour

// ESPN scoreboard payload, trimmed to the fields we read.
type espnScoreboard struct {
	Events []espnEvent `json:"events"`
}

type espnEvent struct {
	Date         string            `json:"date"`
	Name         string            `json:"name"`
	Status       espnStatus        `json:"status"`
	Competitions []espnCompetition `json:"competitions"`
}

type espnStatus struct {
	Type struct {
		Description string `json:"description"`
	} `json:"type"`
}

type espnCompetition struct {
	Competitors []espnCompetitor `json:"competitors"`
}

type espnCompetitor struct {
	Score      *string         `json:"score"`
	Team       espnTeam        `json:"team"`
	Linescores []espnLinescore `json:"linescores"`
}

type espnTeam struct {
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
	Logo         string `json:"logo"`
	Color        string `json:"color"`
}

type espnLinescore struct {
	Runs        float64 `json:"runs"`
	Wickets     float64 `json:"wickets"`
	Overs       float64 `json:"overs"`
	Description string  `json:"description"`
}

// ScoreClient fetches scoreboards from ESPN.
type ScoreClient struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
	log        logrus.FieldLogger
}

// NewScoreClient creates a client for baseURL with the given request timeout.
func NewScoreClient(baseURL string, timeout time.Duration, log logrus.FieldLogger) *ScoreClient {
	return &ScoreClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
		log:        log.WithField("component", "sports.espn"),
	}
}

// GetScores fetches the scoreboard for sport. Unknown identifiers return
// ErrUnsupportedSport; non-2xx upstream responses return an error.
func (c *ScoreClient) GetScores(ctx context.Context, sport string) (*models.ScoresResult, error) {
	s, ok := Lookup(sport)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSport, sport)
	}

	url := fmt.Sprintf("%s/%s/scoreboard", c.baseURL, s.Endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building scoreboard request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s scoreboard: %w", s.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s scoreboard: unexpected status %d", s.ID, resp.StatusCode)
	}

	var board espnScoreboard
	if err := json.NewDecoder(resp.Body).Decode(&board); err != nil {
		return nil, fmt.Errorf("decoding %s scoreboard: %w", s.ID, err)
	}

	games := c.normalize(s, board.Events)
	c.log.WithFields(logrus.Fields{"sport": s.ID, "events": len(board.Events), "games": len(games)}).
		Debug("scoreboard fetched")

	return &models.ScoresResult{Sport: s.ID, Games: games}, nil
}

func (c *ScoreClient) normalize(s Sport, events []espnEvent) []models.GameRecord {
	now := c.now()
	games := make([]models.GameRecord, 0, len(events))

	for _, event := range events {
		if !isRecent(event.Date, now) {
			continue
		}
		if len(event.Competitions) == 0 || len(event.Competitions[0].Competitors) < 2 {
			c.log.WithField("event", event.Name).Warn("skipping event without two competitors")
			continue
		}

		// ESPN lists the home side first.
		home := event.Competitions[0].Competitors[0]
		away := event.Competitions[0].Competitors[1]

		game := models.GameRecord{
			Sport:            s.ID,
			Name:             event.Name,
			Status:           event.Status.Type.Description,
			HomeTeam:         home.Team.DisplayName,
			HomeAbbreviation: home.Team.Abbreviation,
			HomeScore:        scoreOrZero(home.Score),
			HomeLogo:         home.Team.Logo,
			HomeColor:        home.Team.Color,
			AwayTeam:         away.Team.DisplayName,
			AwayAbbreviation: away.Team.Abbreviation,
			AwayScore:        scoreOrZero(away.Score),
			AwayLogo:         away.Team.Logo,
			AwayColor:        away.Team.Color,
			StartTime:        event.Date,
			IsCricket:        s.Cricket,
		}
		if s.Cricket {
			game.HomeInnings = innings(home.Linescores)
			game.AwayInnings = innings(away.Linescores)
		}

		games = append(games, game)
	}
	return games
}

// ESPN emits minute-precision timestamps such as "2025-03-04T00:30Z".
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
}

// isRecent reports whether date lies within MaxStaleness of now. Missing or
// unparseable dates count as stale.
func isRecent(date string, now time.Time) bool {
	if date == "" {
		return false
	}
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return now.Sub(t) < MaxStaleness
		}
	}
	return false
}

func scoreOrZero(score *string) string {
	if score == nil {
		return "0"
	}
	return *score
}

func innings(lines []espnLinescore) []string {
	out := []string{}
	for _, l := range lines {
		if s, ok := FormatInnings(int(l.Runs), int(l.Wickets), l.Overs, l.Description); ok {
			out = append(out, s)
		}
	}
	return out
}

// FormatInnings renders one cricket innings as "R" when the side was bowled
// out, else "R/W". Innings with no runs, wickets or overs are reported as absent.
func FormatInnings(runs, wickets int, overs float64, description string) (string, bool) {
	if runs == 0 && wickets == 0 && overs == 0 {
		return "", false
	}
	if wickets == 10 || description == "all out" {
		return fmt.Sprintf("%d", runs), true
	}
	return fmt.Sprintf("%d/%d", runs, wickets), true
}
