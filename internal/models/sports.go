package models

// GameRecord is the normalized shape of one scoreboard event. Never persisted.
type GameRecord struct {
	Sport            string   `json:"sport"`
	Name             string   `json:"name"`
	Status           string   `json:"status"`
	HomeTeam         string   `json:"home_team"`
	HomeAbbreviation string   `json:"home_abbreviation"`
	HomeScore        string   `json:"home_score"`
	HomeLogo         string   `json:"home_logo"`
	HomeColor        string   `json:"home_color"`
	AwayTeam         string   `json:"away_team"`
	AwayAbbreviation string   `json:"away_abbreviation"`
	AwayScore        string   `json:"away_score"`
	AwayLogo         string   `json:"away_logo"`
	AwayColor        string   `json:"away_color"`
	StartTime        string   `json:"start_time"`
	IsCricket        bool     `json:"is_cricket"`
	HomeInnings      []string `json:"home_innings,omitempty"`
	AwayInnings      []string `json:"away_innings,omitempty"`
}

// ScoresResult is the result of one scoreboard lookup.
type ScoresResult struct {
	Sport string       `json:"sport"`
	Games []GameRecord `json:"games"`
}

// UnsupportedSportResponse is returned in place of scores for an unknown identifier.
type UnsupportedSportResponse struct {
	Error     string   `json:"error"`
	Supported []string `json:"supported"`
}

// NewsArticle is a normalized syndication entry. Never persisted.
type NewsArticle struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Link      string `json:"link"`
	Image     string `json:"image"`
	Published string `json:"published"`
}
