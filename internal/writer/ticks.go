package writer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sirilvk/mktdata/internal/model"
)

const createTicksTable = `
	CREATE TABLE IF NOT EXISTS synthetic_ticks (
		run_id   uuid           NOT NULL,
		symbol   text           NOT NULL,
		ts       timestamptz    NOT NULL,
		price    numeric(12, 2) NOT NULL,
		size     bigint         NOT NULL,
		exchange text           NOT NULL,
		type     text           NOT NULL
	)`

const createTicksIndex = `CREATE INDEX IF NOT EXISTS idx_synthetic_ticks_symbol_ts ON synthetic_ticks (symbol, ts)`

// TickSinkConfig contains configuration for the database sink.
type TickSinkConfig struct {
	// BatchSize is the number of rows sent per pgx.Batch.
	BatchSize int
}

// DefaultTickSinkConfig returns sensible defaults.
func DefaultTickSinkConfig() TickSinkConfig {
	return TickSinkConfig{BatchSize: 1000}
}

// tickRow represents a row to be inserted into the synthetic_ticks table.
type tickRow struct {
	RunID    string // UUID
	Symbol   string
	Ts       time.Time
	Price    string // Fixed 2-decimal text, cast to numeric
	Size     int64
	Exchange string
	Type     string
}

// SinkMetrics holds counters for a TickSink.
type SinkMetrics struct {
	Symbols int64
	Inserts int64
	Batches int64
	Errors  int64
}

// TickSink inserts generated records into TimescaleDB, tagging every row with
// the run that produced it. It is safe for concurrent use by several workers.
type TickSink struct {
	cfg    TickSinkConfig
	db     *pgxpool.Pool
	runID  uuid.UUID
	logger *slog.Logger

	mu      sync.Mutex
	metrics SinkMetrics
}

// NewTickSink creates a new TickSink.
func NewTickSink(cfg TickSinkConfig, db *pgxpool.Pool, runID uuid.UUID, logger *slog.Logger) *TickSink {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = DefaultTickSinkConfig().BatchSize
	}
	return &TickSink{
		cfg:    cfg,
		db:     db,
		runID:  runID,
		logger: logger,
	}
}

// EnsureSchema creates the synthetic_ticks table and index if missing.
func (s *TickSink) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{createTicksTable, createTicksIndex} {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// WriteSymbol implements Sink.
func (s *TickSink) WriteSymbol(ctx context.Context, symbol string, records []model.Record) error {
	start := time.Now()

	rows := make([]tickRow, len(records))
	for i, r := range records {
		rows[i] = s.transform(symbol, r)
	}

	for len(rows) > 0 {
		n := min(len(rows), s.cfg.BatchSize)
		if err := s.batchInsert(ctx, rows[:n]); err != nil {
			s.mu.Lock()
			s.metrics.Errors++
			s.mu.Unlock()
			return fmt.Errorf("insert ticks for %s: %w", symbol, err)
		}
		s.mu.Lock()
		s.metrics.Inserts += int64(n)
		s.metrics.Batches++
		s.mu.Unlock()
		rows = rows[n:]
	}

	s.mu.Lock()
	s.metrics.Symbols++
	s.mu.Unlock()

	s.logger.Debug("inserted ticks",
		"symbol", symbol,
		"count", len(records),
		"duration", time.Since(start),
	)
	return nil
}

// Stats returns current metrics.
func (s *TickSink) Stats() SinkMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

// transform converts a generated record to a tickRow.
func (s *TickSink) transform(symbol string, r model.Record) tickRow {
	return tickRow{
		RunID:    s.runID.String(),
		Symbol:   symbol,
		Ts:       r.Timestamp,
		Price:    r.Price.StringFixed(2),
		Size:     r.Size,
		Exchange: r.Exchange,
		Type:     r.Type.String(),
	}
}

// batchInsert inserts rows using a single pgx.Batch.
func (s *TickSink) batchInsert(ctx context.Context, rows []tickRow) error {
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(`
			INSERT INTO synthetic_ticks (run_id, symbol, ts, price, size, exchange, type)
			VALUES ($1::uuid, $2, $3, $4::numeric, $5, $6, $7)
		`, r.RunID, r.Symbol, r.Ts, r.Price, r.Size, r.Exchange, r.Type)
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}
