package agent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/courtsideco/courtside/pkg/nba"
)

// Row caps per category, matching the human-readable summaries the agent
// produces for conversational clients.
const (
	maxGames     = 5
	maxTeams     = 15
	maxPlayers   = 10
	maxStandings = 15
	maxStats     = 10
)

// greeting is the reply for queries that match no category.
const greeting = "I'm an NBA Agent that can provide information about NBA games, teams, " +
	"players, standings, and statistics. What would you like to know about the NBA?"

// renderGames summarizes up to maxGames games.
func renderGames(games []nba.Game, season string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are the NBA games for the %s season:\n\n", season)

	for i, g := range games {
		if i == maxGames {
			break
		}

		if g.Status == "Final" && g.HomeTeamScore != nil && g.AwayTeamScore != nil {
			fmt.Fprintf(&b, "%d. Final: %s %d - %s %d\n",
				i+1, g.AwayTeam, *g.AwayTeamScore, g.HomeTeam, *g.HomeTeamScore)
			continue
		}

		fmt.Fprintf(&b, "%d. %s @ %s - %s\n", i+1, g.AwayTeam, g.HomeTeam, g.DateTime)
	}

	if len(games) > maxGames {
		fmt.Fprintf(&b, "\nShowing %d of %d games.\n", maxGames, len(games))
	}

	return b.String()
}

// renderTeams summarizes up to maxTeams teams.
func renderTeams(teams []nba.Team) string {
	var b strings.Builder
	b.WriteString("Here are the NBA teams:\n\n")

	for i, t := range teams {
		if i == maxTeams {
			break
		}
		fmt.Fprintf(&b, "%d. %s %s (%s) - %s\n", i+1, t.City, t.Name, t.Key, t.Conference)
	}

	if len(teams) > maxTeams {
		fmt.Fprintf(&b, "\nShowing %d of %d teams.\n", maxTeams, len(teams))
	}

	return b.String()
}

// renderPlayers summarizes up to maxPlayers players.
func renderPlayers(players []nba.Player, nameFilter string) string {
	var b strings.Builder
	if nameFilter != "" {
		fmt.Fprintf(&b, "Here are players matching %q:\n\n", nameFilter)
	} else {
		b.WriteString("Here are some NBA players:\n\n")
	}

	for i, p := range players {
		if i == maxPlayers {
			break
		}

		jersey := ""
		if p.Jersey != nil {
			jersey = fmt.Sprintf("#%d ", *p.Jersey)
		}
		fmt.Fprintf(&b, "%d. %s - %s%s (%s)\n", i+1, p.FullName(), jersey, p.Position, p.Team)
	}

	if len(players) > maxPlayers {
		fmt.Fprintf(&b, "\nShowing %d of %d players.\n", maxPlayers, len(players))
	}

	return b.String()
}

// renderStandings summarizes up to maxStandings standings rows.
func renderStandings(standings []nba.Standing, season string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are the NBA standings for the %s season:\n\n", season)

	for i, s := range standings {
		if i == maxStandings {
			break
		}
		fmt.Fprintf(&b, "%d. %s %s (%s/%s): %d-%d (%.3f)\n",
			i+1, s.City, s.Name, s.Conference, s.Division, s.Wins, s.Losses, s.Percentage)
	}

	if len(standings) > maxStandings {
		fmt.Fprintf(&b, "\nShowing %d of %d teams.\n", maxStandings, len(standings))
	}

	return b.String()
}

// renderStatLeaders summarizes the top scorers. The input is re-sorted by
// points descending; upstream order is not guaranteed.
func renderStatLeaders(stats []nba.PlayerSeasonStat) string {
	sorted := append([]nba.PlayerSeasonStat(nil), stats...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})

	var b strings.Builder
	b.WriteString("Here are some top NBA player stats:\n\n")

	for i, s := range sorted {
		if i == maxStats {
			break
		}
		fmt.Fprintf(&b, "%d. %s (%s): %.1f PTS, %.1f REB, %.1f AST\n",
			i+1, s.Name, s.Team, s.Points, s.Rebounds, s.Assists)
	}

	if len(sorted) > maxStats {
		b.WriteString("\nShowing top 10 players by points.\n")
	}

	return b.String()
}

// renderUpstreamFailure wraps an upstream error in apology text. The task
// still completes; only protocol-level problems fail a task.
func renderUpstreamFailure(what string, err error) string {
	return fmt.Sprintf("Sorry, I couldn't retrieve %s data: %v", what, err)
}
