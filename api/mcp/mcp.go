// Package mcp provides an MCP (Model Context Protocol) server exposing the
// NBA data operations as tools.
package mcp

import (
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/courtsideco/courtside/pkg/nba"
	"github.com/courtsideco/courtside/pkg/utils"
)

type Config struct {
	// Client calls the SportsData.io upstream
	Client *nba.Client

	// Noop for empty MCP server
	Noop bool

	// Logger is the configured zap logger
	Logger *zap.Logger
}

type Server struct {
	config    Config
	mcpServer *mcp.Server
	handler   *mcp.StreamableHTTPHandler
}

// NewServer creates a new MCP server with the NBA data tools.
func NewServer(c Config) (*Server, error) {
	s := &Server{
		config: c,
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "courtside",
			Version: utils.Version,
		},
		&mcp.ServerOptions{},
	)

	if c.Noop {
		// return the empty MCP server with no tools configured
		// if the noop flag is set (i.e., MCP capabilities are disabled)
		s.mcpServer = mcpServer
		return s, nil
	}

	if c.Client == nil {
		return nil, errors.New("nba client is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        gamesToolName,
		Description: gamesDescription,
	}, s.handleGames)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        teamsToolName,
		Description: teamsDescription,
	}, s.handleTeams)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        playersToolName,
		Description: playersDescription,
	}, s.handlePlayers)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        standingsToolName,
		Description: standingsDescription,
	}, s.handleStandings)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        statsToolName,
		Description: statsDescription,
	}, s.handleStats)

	s.mcpServer = mcpServer

	// Create a streamable HTTP net/http handler for stateless operations
	s.handler = mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	)

	return s, nil
}

// Handler returns the HTTP handler for the MCP server.
func (s *Server) Handler() http.Handler {
	return s.handler
}
