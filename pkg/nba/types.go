package nba

import "strings"

// Game is a scheduled or played game, in SportsData.io field naming.
type Game struct {
	GameID        int     `json:"GameID"`
	Season        int     `json:"Season"`
	Status        string  `json:"Status"`
	DateTime      string  `json:"DateTime"`
	HomeTeam      string  `json:"HomeTeam"`
	AwayTeam      string  `json:"AwayTeam"`
	HomeTeamScore *int    `json:"HomeTeamScore"`
	AwayTeamScore *int    `json:"AwayTeamScore"`
	Channel       *string `json:"Channel"`
}

// Team is an NBA franchise.
type Team struct {
	TeamID     int    `json:"TeamID"`
	Key        string `json:"Key"`
	City       string `json:"City"`
	Name       string `json:"Name"`
	Conference string `json:"Conference"`
	Division   string `json:"Division"`
}

// Player is an active roster player.
type Player struct {
	PlayerID  int    `json:"PlayerID"`
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	Team      string `json:"Team"`
	Position  string `json:"Position"`
	Jersey    *int   `json:"Jersey"`
	Status    string `json:"Status"`
}

// FullName joins the player's first and last name.
func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Standing is one team's record for a season.
type Standing struct {
	TeamID     int     `json:"TeamID"`
	Key        string  `json:"Key"`
	City       string  `json:"City"`
	Name       string  `json:"Name"`
	Conference string  `json:"Conference"`
	Division   string  `json:"Division"`
	Wins       int     `json:"Wins"`
	Losses     int     `json:"Losses"`
	Percentage float64 `json:"Percentage"`
}

// PlayerSeasonStat is one player's accumulated season stats.
type PlayerSeasonStat struct {
	PlayerID  int     `json:"PlayerID"`
	Name      string  `json:"Name"`
	Team      string  `json:"Team"`
	Points    float64 `json:"Points"`
	Rebounds  float64 `json:"Rebounds"`
	Assists   float64 `json:"Assists"`
	Steals    float64 `json:"Steals"`
	Blocks    float64 `json:"BlockedShots"`
}

// TeamSeasonStat is one team's accumulated season stats.
type TeamSeasonStat struct {
	TeamID int     `json:"TeamID"`
	Team   string  `json:"Team"`
	Name   string  `json:"Name"`
	Wins   int     `json:"Wins"`
	Losses int     `json:"Losses"`
	Points float64 `json:"Points"`
}

// FilterGamesByTeam keeps games where the team substring matches either side.
func FilterGamesByTeam(games []Game, team string) []Game {
	if team == "" {
		return games
	}
	needle := strings.ToLower(team)
	var out []Game
	for _, g := range games {
		if strings.Contains(strings.ToLower(g.HomeTeam), needle) ||
			strings.Contains(strings.ToLower(g.AwayTeam), needle) {
			out = append(out, g)
		}
	}
	return out
}

// FilterTeams keeps teams whose name or key contains the query substring.
func FilterTeams(teams []Team, query string) []Team {
	if query == "" {
		return teams
	}
	needle := strings.ToLower(query)
	var out []Team
	for _, t := range teams {
		if strings.Contains(strings.ToLower(t.Name), needle) ||
			strings.Contains(strings.ToLower(t.Key), needle) {
			out = append(out, t)
		}
	}
	return out
}

// FilterPlayersByName keeps players whose full name contains the query substring.
func FilterPlayersByName(players []Player, name string) []Player {
	if name == "" {
		return players
	}
	needle := strings.ToLower(name)
	var out []Player
	for _, p := range players {
		if strings.Contains(strings.ToLower(p.FullName()), needle) {
			out = append(out, p)
		}
	}
	return out
}

// FilterStandings keeps standings whose team name or key contains the query substring.
func FilterStandings(standings []Standing, query string) []Standing {
	if query == "" {
		return standings
	}
	needle := strings.ToLower(query)
	var out []Standing
	for _, s := range standings {
		if strings.Contains(strings.ToLower(s.Name), needle) ||
			strings.Contains(strings.ToLower(s.Key), needle) {
			out = append(out, s)
		}
	}
	return out
}

// FilterTeamSeasonStats keeps rows whose team name or key contains the query substring.
func FilterTeamSeasonStats(stats []TeamSeasonStat, query string) []TeamSeasonStat {
	if query == "" {
		return stats
	}
	needle := strings.ToLower(query)
	var out []TeamSeasonStat
	for _, s := range stats {
		if strings.Contains(strings.ToLower(s.Name), needle) ||
			strings.Contains(strings.ToLower(s.Team), needle) {
			out = append(out, s)
		}
	}
	return out
}
