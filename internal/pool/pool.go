package pool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sirilvk/mktdata/internal/queue"
)

// ErrNotRunning is returned by Submit outside the Running state.
var ErrNotRunning = errors.New("pool is not accepting symbols")

// State is the pool lifecycle stage.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateDraining
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateDone:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// Handler processes one symbol on the given worker. Worker indexes run from
// 0 to Workers-1 and are stable for a worker's lifetime.
type Handler interface {
	HandleSymbol(ctx context.Context, worker int, symbol string) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, worker int, symbol string) error

func (f HandlerFunc) HandleSymbol(ctx context.Context, worker int, symbol string) error {
	return f(ctx, worker, symbol)
}

// Config holds pool configuration.
type Config struct {
	Workers       int // Number of workers (default: 5)
	QueueCapacity int // Initial queue capacity; the queue grows as needed
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:       5,
		QueueCapacity: 64,
	}
}

// Stats holds pool counters.
type Stats struct {
	Processed int64
	Failed    int64
	Skipped   int64 // Dequeued after the context was cancelled
}

// job is a queued symbol or a stop sentinel.
type job struct {
	symbol string
	stop   bool
}

// Pool fans symbols out to a fixed set of workers.
type Pool struct {
	cfg     Config
	handler Handler
	logger  *slog.Logger

	queue *queue.Queue[job]
	state atomic.Int32
	group errgroup.Group

	errMu sync.Mutex
	errs  []error

	processed atomic.Int64
	failed    atomic.Int64
	skipped   atomic.Int64
}

// New creates a new Pool in the Idle state.
func New(cfg Config, handler Handler, logger *slog.Logger) *Pool {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Workers < 1 {
		cfg.Workers = DefaultConfig().Workers
	}
	if cfg.QueueCapacity < 1 {
		cfg.QueueCapacity = DefaultConfig().QueueCapacity
	}
	return &Pool{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		queue:   queue.New[job](cfg.QueueCapacity),
	}
}

// State returns the current lifecycle stage.
func (p *Pool) State() State {
	return State(p.state.Load())
}

// Start spawns the workers and moves the pool to Running.
func (p *Pool) Start(ctx context.Context) error {
	if !p.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return fmt.Errorf("start pool: already %s", p.State())
	}

	for i := 0; i < p.cfg.Workers; i++ {
		worker := i
		p.group.Go(func() error {
			return p.work(ctx, worker)
		})
	}

	p.logger.Info("worker pool started", "workers", p.cfg.Workers)
	return nil
}

// Submit queues a symbol for the next free worker.
func (p *Pool) Submit(symbol string) error {
	if p.State() != StateRunning {
		return ErrNotRunning
	}
	p.queue.Put(job{symbol: symbol})
	return nil
}

// Drain queues one sentinel per worker. Symbols already queued are still
// processed; no further symbols are accepted.
func (p *Pool) Drain() {
	if !p.state.CompareAndSwap(int32(StateRunning), int32(StateDraining)) {
		return
	}
	for i := 0; i < p.cfg.Workers; i++ {
		p.queue.Put(job{stop: true})
	}
	p.logger.Debug("worker pool draining", "pending", p.queue.Len())
}

// Wait blocks until every worker has exited and returns the per-symbol
// failures joined together, or the context error if the run was cancelled.
func (p *Pool) Wait() error {
	werr := p.group.Wait()
	p.state.Store(int32(StateDone))

	stats := p.Stats()
	p.logger.Info("worker pool done",
		"processed", stats.Processed,
		"failed", stats.Failed,
		"skipped", stats.Skipped,
	)

	p.errMu.Lock()
	defer p.errMu.Unlock()
	return errors.Join(append([]error{werr}, p.errs...)...)
}

// Stats returns current counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Processed: p.processed.Load(),
		Failed:    p.failed.Load(),
		Skipped:   p.skipped.Load(),
	}
}

// work pulls jobs until it receives a sentinel.
func (p *Pool) work(ctx context.Context, worker int) error {
	logger := p.logger.With("worker", worker)
	for {
		j := p.queue.Get()
		if j.stop {
			logger.Debug("worker stopping")
			return ctx.Err()
		}

		if ctx.Err() != nil {
			p.skipped.Add(1)
			continue
		}

		start := time.Now()
		if err := p.handler.HandleSymbol(ctx, worker, j.symbol); err != nil {
			logger.Warn("failed to process symbol",
				"symbol", j.symbol,
				"error", err,
			)
			p.failed.Add(1)
			p.errMu.Lock()
			p.errs = append(p.errs, fmt.Errorf("symbol %s: %w", j.symbol, err))
			p.errMu.Unlock()
			continue
		}

		p.processed.Add(1)
		logger.Debug("symbol processed",
			"symbol", j.symbol,
			"duration", time.Since(start),
		)
	}
}
