package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/courtsideco/courtside/pkg/nba"
)

const defaultSeason = "2023"

var (
	gamesToolName    = "nba_games"
	gamesDescription = "List NBA games for a season, optionally filtered by team name. Returns schedule, status, and final scores where available."

	teamsToolName    = "nba_teams"
	teamsDescription = "List NBA teams, optionally filtered by name or key. Returns city, name, conference, and division."

	playersToolName    = "nba_players"
	playersDescription = "List active NBA players, optionally filtered by name. Returns team, position, and jersey number."

	standingsToolName    = "nba_standings"
	standingsDescription = "Get NBA standings for a season, optionally filtered by team. Returns win/loss records and win percentage."

	statsToolName    = "nba_statistics"
	statsDescription = "Get per-player NBA season statistics. Returns points, rebounds, assists, steals, and blocks, sorted as returned by the upstream."
)

// GamesInput represents the input arguments for the games tool.
type GamesInput struct {
	Season string `json:"season,omitempty" jsonschema:"season year, e.g. 2023 (default: 2023)"`
	Team   string `json:"team,omitempty" jsonschema:"optional team name or key to filter by"`
}

// GamesOutput represents the output of the games tool.
type GamesOutput struct {
	Season string     `json:"season"`
	Games  []nba.Game `json:"games"`
	Count  int        `json:"count"`
}

// handleGames processes a games lookup.
func (s *Server) handleGames(ctx context.Context, req *mcp.CallToolRequest, input GamesInput) (*mcp.CallToolResult, GamesOutput, error) {
	season := seasonOrDefault(input.Season)

	games, err := s.config.Client.GamesBySeason(ctx, season)
	if err != nil {
		return s.upstreamError("games", err), GamesOutput{}, nil
	}

	games = nba.FilterGamesByTeam(games, input.Team)

	output := GamesOutput{
		Season: season,
		Games:  games,
		Count:  len(games),
	}
	return result(output)
}

// TeamsInput represents the input arguments for the teams tool.
type TeamsInput struct {
	Query string `json:"query,omitempty" jsonschema:"optional team name or key to filter by"`
}

// TeamsOutput represents the output of the teams tool.
type TeamsOutput struct {
	Teams []nba.Team `json:"teams"`
	Count int        `json:"count"`
}

func (s *Server) handleTeams(ctx context.Context, req *mcp.CallToolRequest, input TeamsInput) (*mcp.CallToolResult, TeamsOutput, error) {
	teams, err := s.config.Client.Teams(ctx)
	if err != nil {
		return s.upstreamError("teams", err), TeamsOutput{}, nil
	}

	teams = nba.FilterTeams(teams, input.Query)

	output := TeamsOutput{
		Teams: teams,
		Count: len(teams),
	}
	return result(output)
}

// PlayersInput represents the input arguments for the players tool.
type PlayersInput struct {
	Name string `json:"name,omitempty" jsonschema:"optional player name to filter by"`
}

// PlayersOutput represents the output of the players tool.
type PlayersOutput struct {
	Players []nba.Player `json:"players"`
	Count   int          `json:"count"`
}

func (s *Server) handlePlayers(ctx context.Context, req *mcp.CallToolRequest, input PlayersInput) (*mcp.CallToolResult, PlayersOutput, error) {
	players, err := s.config.Client.Players(ctx)
	if err != nil {
		return s.upstreamError("players", err), PlayersOutput{}, nil
	}

	players = nba.FilterPlayersByName(players, input.Name)

	output := PlayersOutput{
		Players: players,
		Count:   len(players),
	}
	return result(output)
}

// StandingsInput represents the input arguments for the standings tool.
type StandingsInput struct {
	Season string `json:"season,omitempty" jsonschema:"season year, e.g. 2023 (default: 2023)"`
	Team   string `json:"team,omitempty" jsonschema:"optional team name or key to filter by"`
}

// StandingsOutput represents the output of the standings tool.
type StandingsOutput struct {
	Season    string         `json:"season"`
	Standings []nba.Standing `json:"standings"`
	Count     int            `json:"count"`
}

func (s *Server) handleStandings(ctx context.Context, req *mcp.CallToolRequest, input StandingsInput) (*mcp.CallToolResult, StandingsOutput, error) {
	season := seasonOrDefault(input.Season)

	standings, err := s.config.Client.Standings(ctx, season)
	if err != nil {
		return s.upstreamError("standings", err), StandingsOutput{}, nil
	}

	standings = nba.FilterStandings(standings, input.Team)

	output := StandingsOutput{
		Season:    season,
		Standings: standings,
		Count:     len(standings),
	}
	return result(output)
}

// StatsInput represents the input arguments for the statistics tool.
type StatsInput struct {
	Season string `json:"season,omitempty" jsonschema:"season year, e.g. 2023 (default: 2023)"`
}

// StatsOutput represents the output of the statistics tool.
type StatsOutput struct {
	Season string                 `json:"season"`
	Stats  []nba.PlayerSeasonStat `json:"stats"`
	Count  int                    `json:"count"`
}

func (s *Server) handleStats(ctx context.Context, req *mcp.CallToolRequest, input StatsInput) (*mcp.CallToolResult, StatsOutput, error) {
	season := seasonOrDefault(input.Season)

	stats, err := s.config.Client.PlayerSeasonStats(ctx, season)
	if err != nil {
		return s.upstreamError("statistics", err), StatsOutput{}, nil
	}

	output := StatsOutput{
		Season: season,
		Stats:  stats,
		Count:  len(stats),
	}
	return result(output)
}

func seasonOrDefault(season string) string {
	if season == "" {
		return defaultSeason
	}
	return season
}

// upstreamError wraps an upstream failure as a tool error result.
func (s *Server) upstreamError(what string, err error) *mcp.CallToolResult {
	s.config.Logger.Error("upstream request failed",
		zap.String("tool", what),
		zap.Error(err),
	)
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("Failed to fetch %s: %v", what, err)},
		},
	}
}

// result serializes the structured output as JSON for the text field.
// Per MCP spec: tools returning structured content should also return
// serialized JSON in a TextContent block for backwards compatibility.
func result[T any](output T) (*mcp.CallToolResult, T, error) {
	jsonBytes, err := json.Marshal(output)
	if err != nil {
		var zero T
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Failed to serialize results: %v", err)},
			},
		}, zero, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}
