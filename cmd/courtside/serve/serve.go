// Package servecmder provides the serve command running the A2A API server
// and its optional companions.
package servecmder

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/courtsideco/courtside/api"
	"github.com/courtsideco/courtside/api/mcp"
	"github.com/courtsideco/courtside/pkg/agent"
	"github.com/courtsideco/courtside/pkg/config"
	"github.com/courtsideco/courtside/pkg/eventstream"
	"github.com/courtsideco/courtside/pkg/eventstream/kafka"
	"github.com/courtsideco/courtside/pkg/eventstream/nop"
	"github.com/courtsideco/courtside/pkg/eventstream/webhook"
	"github.com/courtsideco/courtside/pkg/logger"
	"github.com/courtsideco/courtside/pkg/nba"
	"github.com/courtsideco/courtside/pkg/storage"
	"github.com/courtsideco/courtside/pkg/storage/inmemory"
	"github.com/courtsideco/courtside/pkg/storage/postgres"
	"github.com/courtsideco/courtside/pkg/storage/sqlite"
	"github.com/courtsideco/courtside/pkg/worker"
)

type ServeCommander struct {
	configDir string
	listen    string
	debug     bool
	logger    *zap.Logger
}

const serveLongDesc string = `Run the courtside A2A API server.

Serves the NBA agent on POST /a2a/nba along with health and context
management routes. Configuration comes from config.toml, COURTSIDE_*
environment variables, and flags.`

const serveShortDesc string = "Run the courtside A2A API server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			return cmder.run()
		},
	}

	cmd.Flags().StringVarP(&cmder.configDir, "config-dir", "c", ".", "Directory containing config.toml")
	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", "", "Address for the API server to listen on (overrides config)")

	return cmd
}

func (c *ServeCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer c.logger.Sync()

	v, err := config.InitViper(c.configDir)
	if err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	if c.listen != "" {
		cfg.Server.Listen = c.listen
	}

	// Shared context store
	storer, err := c.newStorageDriver(cfg)
	if err != nil {
		return err
	}
	defer storer.Close()

	// Publishers and the async delivery pool
	publishers, err := c.newPublishers(cfg)
	if err != nil {
		return err
	}

	pool, err := worker.NewPool(&worker.Config{
		Publishers: publishers,
		Logger:     c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating worker pool: %w", err)
	}
	defer pool.Close()

	client := nba.NewClient(nba.Config{
		BaseURL: cfg.Upstream.BaseURL,
		APIKey:  cfg.Upstream.APIKey,
		Timeout: time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second,
	})

	nbaAgent, err := agent.New(agent.Config{
		Client:        client,
		Store:         storer,
		Pool:          pool,
		MaxContextAge: time.Duration(cfg.Contexts.MaxAgeHours) * time.Hour,
		Logger:        c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating agent: %w", err)
	}

	apiServer, err := api.NewServer(api.Config{
		ListenAddr: cfg.Server.Listen,
	}, nbaAgent, storer, c.logger)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	// Channel to capture errors from goroutines
	errChan := make(chan error, 2)

	go func() {
		if err := apiServer.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	var mcpHTTP *http.Server
	if cfg.MCP.Enabled {
		mcpServer, err := mcp.NewServer(mcp.Config{
			Client: client,
			Logger: c.logger,
		})
		if err != nil {
			return fmt.Errorf("creating MCP server: %w", err)
		}

		mcpHTTP = &http.Server{
			Addr:    cfg.MCP.Listen,
			Handler: mcpServer.Handler(),
		}

		c.logger.Info("starting MCP server",
			zap.String("listen", cfg.MCP.Listen),
		)

		go func() {
			if err := mcpHTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errChan <- fmt.Errorf("MCP server error: %w", err)
			}
		}()
	}

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	}

	if err := apiServer.Shutdown(); err != nil {
		c.logger.Warn("API server shutdown failed", zap.Error(err))
	}
	if mcpHTTP != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mcpHTTP.Shutdown(shutdownCtx); err != nil {
			c.logger.Warn("MCP server shutdown failed", zap.Error(err))
		}
	}

	return nil
}

func (c *ServeCommander) newStorageDriver(cfg *config.Config) (storage.Driver, error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		driver, err := sqlite.NewDriver(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite storer: %w", err)
		}
		c.logger.Info("using SQLite storage", zap.String("path", cfg.Storage.SQLitePath))
		return driver, nil

	case "postgres":
		driver, err := postgres.NewDriver(context.Background(), cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to create Postgres storer: %w", err)
		}
		c.logger.Info("using Postgres storage")
		return driver, nil

	case "", "memory":
		c.logger.Info("using in-memory storage")
		return inmemory.NewDriver(), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// newPublishers assembles the enabled task event publishers. With nothing
// enabled, a nop publisher keeps the pool wiring uniform.
func (c *ServeCommander) newPublishers(cfg *config.Config) ([]eventstream.Publisher, error) {
	var publishers []eventstream.Publisher

	if cfg.Webhook.Enabled {
		publishers = append(publishers, webhook.NewPublisher(webhook.Config{
			URL:   cfg.Webhook.URL,
			Token: cfg.Webhook.Token,
		}))
		c.logger.Info("webhook publisher enabled", zap.String("url", cfg.Webhook.URL))
	}

	if cfg.Kafka.Enabled {
		pub, err := kafka.NewPublisher(kafka.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		if err != nil {
			return nil, fmt.Errorf("creating kafka publisher: %w", err)
		}
		publishers = append(publishers, pub)
		c.logger.Info("kafka publisher enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}

	if len(publishers) == 0 {
		publishers = append(publishers, nop.NewPublisher())
	}

	return publishers, nil
}
