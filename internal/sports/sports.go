// Package sports detects score intent in chat text and fetches normalized
// scoreboards from ESPN's public site API.
package sports

import (
	"errors"
	"strings"
)

// ErrUnsupportedSport is returned for identifiers missing from the supported set.
var ErrUnsupportedSport = errors.New("unsupported sport")

// Sport describes one supported league.
type Sport struct {
	ID       string
	Endpoint string   // ESPN "<sport>/<league>" path
	Cricket  bool     // runs/wickets scoring with innings breakdown
	Keywords []string // lowercase substrings that select this sport in chat text
}

// supported is ordered; SupportedIDs and Detect follow this order.
var supported = []Sport{
	{ID: "nfl", Endpoint: "football/nfl", Keywords: []string{
		"nfl", "football", "super bowl", "touchdown", "chiefs", "eagles", "cowboys", "49ers",
		"patriots", "packers", "bills", "ravens", "steelers", "lions",
	}},
	{ID: "nba", Endpoint: "basketball/nba", Keywords: []string{
		"nba", "basketball", "lakers", "celtics", "warriors", "knicks", "bucks", "nuggets",
		"heat", "bulls", "mavericks", "suns", "lebron", "curry",
	}},
	{ID: "mlb", Endpoint: "baseball/mlb", Keywords: []string{
		"mlb", "baseball", "world series", "yankees", "dodgers", "red sox", "mets", "cubs",
		"astros", "braves", "phillies",
	}},
	{ID: "nhl", Endpoint: "hockey/nhl", Keywords: []string{
		"nhl", "hockey", "stanley cup", "maple leafs", "bruins", "rangers", "oilers", "canadiens",
		"penguins", "blackhawks",
	}},
	{ID: "soccer", Endpoint: "soccer/eng.1", Keywords: []string{
		"soccer", "premier league", "epl", "football", "arsenal", "chelsea", "liverpool",
		"manchester", "man city", "man united", "tottenham", "newcastle",
	}},
	{ID: "ncaaf", Endpoint: "football/college-football", Keywords: []string{
		"ncaaf", "college football", "cfb",
	}},
	{ID: "ncaab", Endpoint: "basketball/mens-college-basketball", Keywords: []string{
		"ncaab", "college basketball", "march madness", "final four",
	}},
	{ID: "cricket", Endpoint: "cricket/8676", Cricket: true, Keywords: []string{
		"cricket", "test match", "odi", "t20",
	}},
	{ID: "ipl", Endpoint: "cricket/8048", Cricket: true, Keywords: []string{
		"ipl", "indian premier league",
	}},
	{ID: "bbl", Endpoint: "cricket/8044", Cricket: true, Keywords: []string{
		"bbl", "big bash",
	}},
	{ID: "psl", Endpoint: "cricket/10886", Cricket: true, Keywords: []string{
		"psl", "pakistan super league",
	}},
	{ID: "cpl", Endpoint: "cricket/10889", Cricket: true, Keywords: []string{
		"cpl", "caribbean premier league",
	}},
	{ID: "the_hundred", Endpoint: "cricket/10890", Cricket: true, Keywords: []string{
		"the hundred",
	}},
	{ID: "sa20", Endpoint: "cricket/12344", Cricket: true, Keywords: []string{
		"sa20",
	}},
	{ID: "county", Endpoint: "cricket/8052", Cricket: true, Keywords: []string{
		"county championship", "county cricket",
	}},
}

// Lookup resolves an identifier case-insensitively.
func Lookup(id string) (Sport, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, s := range supported {
		if s.ID == id {
			return s, true
		}
	}
	return Sport{}, false
}

// SupportedIDs lists every supported identifier.
func SupportedIDs() []string {
	ids := make([]string, len(supported))
	for i, s := range supported {
		ids[i] = s.ID
	}
	return ids
}
