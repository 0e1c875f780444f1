// Package nba provides a client for the SportsData.io NBA REST API.
//
// The client is a thin pass-through: it issues single synchronous GETs
// against a fixed set of upstream paths and decodes the JSON payloads.
// There is no retry, caching, or pagination.
package nba

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the SportsData.io v3 NBA API root.
	DefaultBaseURL = "https://api.sportsdata.io/v3/nba"

	// apiKeyHeader carries the SportsData.io subscription key.
	apiKeyHeader = "Ocp-Apim-Subscription-Key"

	defaultTimeout = 30 * time.Second
)

// Config configures a Client.
type Config struct {
	// BaseURL is the upstream API root. Defaults to DefaultBaseURL.
	BaseURL string

	// APIKey is the SportsData.io subscription key.
	APIKey string

	// Timeout bounds a single upstream request. Defaults to 30s.
	Timeout time.Duration
}

// Client calls the SportsData.io NBA API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new SportsData.io client.
func NewClient(config Config) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  config.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// StatusError is returned when the upstream responds with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Code)
}

// get issues a GET against path (relative to the base URL) and decodes the
// JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating upstream request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding upstream response: %w", err)
	}

	return nil
}

// GamesByDate returns the games played on the given date.
// The date is formatted as SportsData expects, e.g. "2023-Nov-01".
func (c *Client) GamesByDate(ctx context.Context, date time.Time) ([]Game, error) {
	var games []Game
	path := "/scores/json/GamesByDate/" + FormatDate(date)
	if err := c.get(ctx, path, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// GamesBySeason returns the full schedule for a season year, e.g. "2023".
func (c *Client) GamesBySeason(ctx context.Context, season string) ([]Game, error) {
	var games []Game
	if err := c.get(ctx, "/scores/json/Games/"+season, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// Teams returns all NBA teams.
func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	var teams []Team
	if err := c.get(ctx, "/scores/json/teams", &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// Players returns all active players.
func (c *Client) Players(ctx context.Context) ([]Player, error) {
	var players []Player
	if err := c.get(ctx, "/scores/json/Players", &players); err != nil {
		return nil, err
	}
	return players, nil
}

// PlayersByTeam returns the roster for a team key, e.g. "BOS".
func (c *Client) PlayersByTeam(ctx context.Context, team string) ([]Player, error) {
	var players []Player
	if err := c.get(ctx, "/scores/json/Players/"+team, &players); err != nil {
		return nil, err
	}
	return players, nil
}

// Standings returns the standings for a season year.
func (c *Client) Standings(ctx context.Context, season string) ([]Standing, error) {
	var standings []Standing
	if err := c.get(ctx, "/scores/json/Standings/"+season, &standings); err != nil {
		return nil, err
	}
	return standings, nil
}

// BoxScore returns the box score for a single game id.
// The payload shape varies by subscription tier, so it is passed through raw.
func (c *Client) BoxScore(ctx context.Context, gameID string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/stats/json/BoxScore/"+gameID, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// PlayerSeasonStats returns per-player season stats for a season year.
func (c *Client) PlayerSeasonStats(ctx context.Context, season string) ([]PlayerSeasonStat, error) {
	var stats []PlayerSeasonStat
	if err := c.get(ctx, "/stats/json/PlayerSeasonStats/"+season, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// PlayerSeasonStatsByPlayer returns season stats for one player id.
func (c *Client) PlayerSeasonStatsByPlayer(ctx context.Context, playerID string) ([]PlayerSeasonStat, error) {
	var stats []PlayerSeasonStat
	if err := c.get(ctx, "/stats/json/PlayerSeasonStatsByPlayer/"+playerID, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// TeamSeasonStats returns per-team season stats for a season year.
func (c *Client) TeamSeasonStats(ctx context.Context, season string) ([]TeamSeasonStat, error) {
	var stats []TeamSeasonStat
	if err := c.get(ctx, "/stats/json/TeamSeasonStats/"+season, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// FormatDate renders a date the way SportsData path segments expect,
// e.g. 2023-Nov-01.
func FormatDate(t time.Time) string {
	return t.Format("2006-Jan-02")
}
