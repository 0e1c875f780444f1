package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/courtsideco/courtside/pkg/agent"
	"github.com/courtsideco/courtside/pkg/storage"
)

// Server is the HTTP server for the courtside A2A agent.
type Server struct {
	config Config
	agent  *agent.Agent
	storer storage.Driver
	logger *zap.Logger
	app    *fiber.App
}

// NewServer creates a new API server.
// The storer is injected to allow sharing with the agent, which appends to
// the same contexts these routes expose.
func NewServer(config Config, nbaAgent *agent.Agent, storer storage.Driver, logger *zap.Logger) (*Server, error) {
	if nbaAgent == nil {
		return nil, errors.New("agent is required")
	}
	if storer == nil {
		return nil, errors.New("context store is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config: config,
		agent:  nbaAgent,
		storer: storer,
		logger: logger,
		app:    app,
	}

	app.Post("/a2a/nba", s.handleA2A)
	app.Get("/health", s.handleHealth)
	app.Get("/contexts", s.handleListContexts)
	app.Get("/contexts/:id", s.handleGetContext)
	app.Delete("/contexts/:id", s.handleDeleteContext)

	return s, nil
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
