// Package worker provides an asynchronous worker pool for delivering task
// events to the configured eventstream publishers.
//
// The pool decouples event delivery from the A2A HTTP hot path so that a slow
// webhook or broker never delays a client response.
package worker

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/courtsideco/courtside/pkg/eventstream"
)

var (
	defaultNumWorkers   uint = 3
	defaultJobQueueSize uint = 256

	// publishTimeout bounds a single delivery attempt across all publishers.
	publishTimeout = 30 * time.Second
)

// Job is a unit of work for the worker pool to execute against.
type Job struct {
	Event *eventstream.TaskCompletedEvent
}

// Config is the configuration options for the worker pool.
type Config struct {
	// Publishers receive every enqueued event. Failures in one publisher
	// don't stop delivery to the others.
	Publishers []eventstream.Publisher

	// NumWorkers is the number of background workers in the pool.
	NumWorkers uint

	// QueueSize is the capacity of the buffered job channel (defaults to 256).
	QueueSize uint

	// Logger is the provided zap logger
	Logger *zap.Logger
}

// Pool delivers task events asynchronously via a worker pool.
type Pool struct {
	config *Config
	queue  chan Job
	wg     sync.WaitGroup
	logger *zap.Logger
}

// NewPool creates a new Pool and starts its worker goroutines.
func NewPool(c *Config) (*Pool, error) {
	if c.NumWorkers == 0 {
		c.NumWorkers = defaultNumWorkers
	}

	if c.QueueSize == 0 {
		c.QueueSize = defaultJobQueueSize
	}

	if c.NumWorkers > uint(math.MaxInt) {
		return nil, fmt.Errorf("NumWorkers %d exceeds max int", c.NumWorkers)
	}

	wp := &Pool{
		config: c,
		queue:  make(chan Job, c.QueueSize),
		logger: c.Logger,
	}

	wp.wg.Add(int(c.NumWorkers))
	for i := range c.NumWorkers {
		go wp.worker(i)
	}

	return wp, nil
}

// Enqueue submits a job for processing by the worker pool.
// Returns true if enqueued, false if the queue is full, resulting in the job being dropped
func (p *Pool) Enqueue(job Job) bool {
	select {
	case p.queue <- job:
		p.logger.Debug("event queued",
			zap.String("task_id", job.Event.TaskID),
			zap.String("context_id", job.Event.ContextID),
		)
		return true
	default:
		p.logger.Error("event not queued, queue full, event dropped",
			zap.String("task_id", job.Event.TaskID),
			zap.String("context_id", job.Event.ContextID),
		)
		return false
	}
}

// Close signals workers to stop and waits for in-flight jobs to drain, then
// closes the publishers. Call this during graceful shutdown after the HTTP
// server has stopped.
func (p *Pool) Close() {
	close(p.queue)
	p.wg.Wait()

	for _, pub := range p.config.Publishers {
		if err := pub.Close(); err != nil {
			p.logger.Warn("failed to close publisher", zap.Error(err))
		}
	}
}

// worker is the inner worker thread that continuously pulls jobs off the jobs queue
func (p *Pool) worker(id uint) {
	defer p.wg.Done()
	p.logger.Debug("worker started", zap.Uint("worker_id", id))

	for job := range p.queue {
		p.processJob(job)
	}

	p.logger.Debug("publish worker stopped", zap.Uint("worker_id", id))
}

// processJob delivers one event to every configured publisher.
func (p *Pool) processJob(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	failures := 0
	for _, pub := range p.config.Publishers {
		if err := pub.PublishTask(ctx, job.Event); err != nil {
			failures++
			p.logger.Error("async event delivery failed",
				zap.String("task_id", job.Event.TaskID),
				zap.Error(err),
			)
			continue
		}
	}

	if failures > 0 {
		p.logger.Warn("task event delivery incomplete",
			zap.String("task_id", job.Event.TaskID),
			zap.String("context_id", job.Event.ContextID),
			zap.Int("failed", failures),
			zap.Int("publishers", len(p.config.Publishers)),
		)
		return
	}

	p.logger.Info("task event delivered",
		zap.String("task_id", job.Event.TaskID),
		zap.String("context_id", job.Event.ContextID),
		zap.String("state", job.Event.State),
	)
}
