// Package agent implements the NBA query agent: it routes A2A queries to the
// SportsData.io upstream, maintains per-context conversation history, and
// assembles task results.
package agent

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/courtsideco/courtside/pkg/a2a"
	"github.com/courtsideco/courtside/pkg/eventstream"
	"github.com/courtsideco/courtside/pkg/nba"
	"github.com/courtsideco/courtside/pkg/storage"
	"github.com/courtsideco/courtside/pkg/worker"
)

// Config configures an Agent.
type Config struct {
	// Client calls the SportsData.io upstream.
	Client *nba.Client

	// Store persists conversation contexts.
	Store storage.Driver

	// Pool, when set, receives task events for async delivery.
	Pool *worker.Pool

	// MaxContextAge prunes contexts idle longer than this before reads.
	// Zero disables pruning.
	MaxContextAge time.Duration

	// Logger is the provided zap logger.
	Logger *zap.Logger
}

// Agent processes A2A messages against the NBA upstream.
type Agent struct {
	client *nba.Client
	store  storage.Driver
	pool   *worker.Pool
	maxAge time.Duration
	logger *zap.Logger

	// now is swappable for tests
	now func() time.Time
}

// New creates an Agent.
func New(c Config) (*Agent, error) {
	if c.Client == nil {
		return nil, errors.New("nba client is required")
	}
	if c.Store == nil {
		return nil, errors.New("context store is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	return &Agent{
		client: c.Client,
		store:  c.Store,
		pool:   c.Pool,
		maxAge: c.MaxContextAge,
		logger: c.Logger,
		now:    time.Now,
	}, nil
}

// ProcessMessages handles one batch of A2A messages and returns the task
// result. Missing context and task ids are generated. User messages are
// appended to the context history; the agent reply follows them.
//
// Upstream failures surface as apology text in a completed task; only
// protocol-level problems (no user message) fail the task.
func (a *Agent) ProcessMessages(ctx context.Context, msgs []a2a.Message, contextID, taskID string, cfg *a2a.SendConfig) *a2a.Task {
	if contextID == "" {
		contextID = uuid.NewString()
	}
	if taskID == "" {
		taskID = uuid.NewString()
	}

	a.pruneExpired(ctx)

	var userMsg *a2a.Message
	for i := range msgs {
		if msgs[i].Role != a2a.RoleUser {
			continue
		}
		if err := a.store.AppendMessage(ctx, contextID, msgs[i]); err != nil {
			a.logger.Error("failed to store user message",
				zap.String("context_id", contextID),
				zap.Error(err),
			)
		}
		userMsg = &msgs[i]
	}

	if userMsg == nil {
		task := a2a.NewFailedTask(taskID, contextID, "No user message provided")
		a.publish(task, CategoryNone, cfg)
		return task
	}

	query := userMsg.Text()
	route := RouteQuery(query)

	a.logger.Debug("routing query",
		zap.String("context_id", contextID),
		zap.String("task_id", taskID),
		zap.String("category", string(route.Category)),
		zap.String("season", route.Season),
	)

	replyText := a.answer(ctx, route)

	reply := a2a.NewTextMessage(a2a.RoleAgent, replyText)
	reply.ContextID = contextID
	reply.TaskID = taskID

	if err := a.store.AppendMessage(ctx, contextID, reply); err != nil {
		a.logger.Error("failed to store agent reply",
			zap.String("context_id", contextID),
			zap.Error(err),
		)
	}

	task := a2a.NewTask(taskID, contextID, reply, a.history(ctx, contextID))
	a.publish(task, route.Category, cfg)
	return task
}

// answer executes the routed upstream call and renders the reply text.
func (a *Agent) answer(ctx context.Context, route Route) string {
	switch route.Category {
	case CategoryGames:
		games, err := a.client.GamesBySeason(ctx, route.Season)
		if err != nil {
			a.logUpstreamError(route.Category, err)
			return renderUpstreamFailure("games", err)
		}
		return renderGames(games, route.Season)

	case CategoryTeams:
		teams, err := a.client.Teams(ctx)
		if err != nil {
			a.logUpstreamError(route.Category, err)
			return renderUpstreamFailure("team", err)
		}
		return renderTeams(teams)

	case CategoryPlayers:
		players, err := a.client.Players(ctx)
		if err != nil {
			a.logUpstreamError(route.Category, err)
			return renderUpstreamFailure("player", err)
		}
		return renderPlayers(nba.FilterPlayersByName(players, route.PlayerName), route.PlayerName)

	case CategoryStandings:
		standings, err := a.client.Standings(ctx, route.Season)
		if err != nil {
			a.logUpstreamError(route.Category, err)
			return renderUpstreamFailure("standings", err)
		}
		return renderStandings(standings, route.Season)

	case CategoryStatistics:
		stats, err := a.client.PlayerSeasonStats(ctx, route.Season)
		if err != nil {
			a.logUpstreamError(route.Category, err)
			return renderUpstreamFailure("statistics", err)
		}
		return renderStatLeaders(stats)

	default:
		return greeting
	}
}

// history fetches the context's full history, empty on error.
func (a *Agent) history(ctx context.Context, contextID string) []a2a.Message {
	c, err := a.store.Get(ctx, contextID)
	if err != nil {
		a.logger.Warn("failed to load context history",
			zap.String("context_id", contextID),
			zap.Error(err),
		)
		return nil
	}
	return c.History
}

// pruneExpired lazily removes idle contexts before reads.
func (a *Agent) pruneExpired(ctx context.Context) {
	if a.maxAge == 0 {
		return
	}

	removed, err := a.store.DeleteExpired(ctx, a.now().Add(-a.maxAge))
	if err != nil {
		a.logger.Warn("failed to prune expired contexts", zap.Error(err))
		return
	}
	if removed > 0 {
		a.logger.Info("pruned expired contexts", zap.Int("removed", removed))
	}
}

// publish enqueues the task event for async delivery. Never blocks.
func (a *Agent) publish(task *a2a.Task, category Category, cfg *a2a.SendConfig) {
	if a.pool == nil {
		return
	}

	eventType := eventstream.EventTypeTaskCompleted
	if task.Status.State == a2a.TaskStateFailed {
		eventType = eventstream.EventTypeTaskFailed
	}

	event := &eventstream.TaskCompletedEvent{
		SchemaVersion: eventstream.SchemaVersionV1,
		EventType:     eventType,
		EventID:       uuid.NewString(),
		EmittedAt:     time.Now().UTC(),
		ContextID:     task.ContextID,
		TaskID:        task.ID,
		State:         task.Status.State,
		Category:      string(category),
		Result:        task,
	}
	if cfg != nil {
		event.Push = cfg.PushNotificationConfig
	}

	a.pool.Enqueue(worker.Job{Event: event})
}

func (a *Agent) logUpstreamError(category Category, err error) {
	a.logger.Warn("upstream request failed",
		zap.String("category", string(category)),
		zap.Error(err),
	)
}
