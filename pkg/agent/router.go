package agent

import (
	"regexp"
	"strings"
)

// Category is a routed query category, each mapping to one family of
// upstream endpoints.
type Category string

const (
	CategoryGames      Category = "games"
	CategoryTeams      Category = "teams"
	CategoryPlayers    Category = "players"
	CategoryStandings  Category = "standings"
	CategoryStatistics Category = "statistics"

	// CategoryNone means the query matched no keyword and gets the
	// capability greeting instead of an upstream call.
	CategoryNone Category = ""
)

// defaultSeason is used when the query names no season year.
const defaultSeason = "2023"

// Route is the outcome of classifying a query: the category plus any
// parameters extracted from the text.
type Route struct {
	Category Category

	// Season is a four-digit season year, defaulted when absent.
	Season string

	// PlayerName is a crude extraction after "named "/"player ", players only.
	PlayerName string
}

// categoryKeywords maps each category to its trigger substrings, checked in
// routeOrder. Substring matching is deliberate: "teams" also trips "team".
var categoryKeywords = map[Category][]string{
	CategoryGames:      {"games", "match", "schedule"},
	CategoryTeams:      {"teams", "team", "franchise"},
	CategoryPlayers:    {"players", "player", "roster"},
	CategoryStandings:  {"standings", "ranking", "leaderboard"},
	CategoryStatistics: {"stats", "statistics"},
}

// routeOrder fixes evaluation order so overlapping keywords resolve the same
// way every time ("stats about teams" routes to games' successor, teams).
var routeOrder = []Category{
	CategoryGames,
	CategoryTeams,
	CategoryPlayers,
	CategoryStandings,
	CategoryStatistics,
}

var seasonRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// RouteQuery classifies a free-text query into a Route.
func RouteQuery(query string) Route {
	lower := strings.ToLower(query)

	route := Route{Season: extractSeason(lower)}

	for _, cat := range routeOrder {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(lower, kw) {
				route.Category = cat
				if cat == CategoryPlayers {
					route.PlayerName = extractPlayerName(query)
				}
				return route
			}
		}
	}

	return route
}

// extractSeason pulls a four-digit year out of the query, defaulting when
// none is present.
func extractSeason(lower string) string {
	if m := seasonRe.FindString(lower); m != "" {
		return m
	}
	return defaultSeason
}

// extractPlayerName pulls a player name following "named " or "player ".
// Trailing question marks are dropped. This is keyword matching, not NLP;
// it mirrors the routing table's level of sophistication.
func extractPlayerName(query string) string {
	lower := strings.ToLower(query)

	for _, marker := range []string{"named ", "player "} {
		idx := strings.Index(lower, marker)
		if idx < 0 {
			continue
		}

		rest := query[idx+len(marker):]
		rest, _, _ = strings.Cut(rest, "?")
		rest = strings.TrimSpace(rest)
		if rest != "" {
			return rest
		}
	}

	return ""
}
