// mktgen writes synthetic quote and trade files, one per symbol.
//
// Usage:
//
//	mktgen 09:30:00 16:00:00 -sf symbols.txt -count 1000
//
// Records land in <output_dir>/<SYMBOL>.txt (default mkt/, which must exist).
// Worker count, base price and base size come from the optional YAML config.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sirilvk/mktdata/internal/config"
	"github.com/sirilvk/mktdata/internal/database"
	"github.com/sirilvk/mktdata/internal/pool"
	"github.com/sirilvk/mktdata/internal/randgen"
	"github.com/sirilvk/mktdata/internal/sampler"
	"github.com/sirilvk/mktdata/internal/version"
	"github.com/sirilvk/mktdata/internal/writer"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("mktgen failed", "error", err)
		os.Exit(1)
	}
}

// run is main without the process plumbing. Logs go to logOut, usage to usageOut.
func run(ctx context.Context, args []string, logOut, usageOut io.Writer) error {
	opts, err := parseArgs(args, usageOut)
	if err != nil {
		return err
	}

	cfg, err := config.LoadWithDefaults(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	runID := uuid.New()
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	})).With("run_id", runID.String())
	slog.SetDefault(logger)

	logger.Info("starting mktgen",
		"version", version.Version,
		"commit", version.Commit,
	)

	window, err := parseWindow(opts.start, opts.end)
	if err != nil {
		return err
	}

	// Fail before any worker starts if the symbol file is unusable.
	symbols, err := os.Open(opts.symbolFile)
	if err != nil {
		return fmt.Errorf("open symbol file: %w", err)
	}
	defer symbols.Close()

	sink, closeSink, err := buildSink(ctx, cfg, runID, logger)
	if err != nil {
		return err
	}
	defer closeSink()

	gen := writer.GenConfig{
		Window:    window,
		Count:     cfg.Generator.Count,
		BasePrice: decimal.NewFromFloat(cfg.Generator.BasePrice).Round(2),
		BaseSize:  cfg.Generator.BaseSize,
		Day:       time.Now(),
	}

	fields := make([]*randgen.Fields, cfg.Generator.Workers)
	for i := range fields {
		fields[i] = randgen.NewSeeded(randgen.WorkerSeed(cfg.Generator.Seed, i))
	}

	handler := pool.HandlerFunc(func(ctx context.Context, worker int, symbol string) error {
		records := writer.Generate(gen, fields[worker])
		return sink.WriteSymbol(ctx, symbol, records)
	})

	logger.Info("generating",
		"start", sampler.FormatTimeOfDay(window.Start),
		"end", sampler.FormatTimeOfDay(window.End()),
		"count", gen.Count,
		"workers", cfg.Generator.Workers,
		"output_dir", cfg.Generator.OutputDir,
		"seed", cfg.Generator.Seed,
	)

	started := time.Now()
	p := pool.New(pool.Config{Workers: cfg.Generator.Workers}, handler, logger)
	n, err := p.Run(ctx, symbols)
	if err != nil {
		return err
	}

	logger.Info("mktgen finished",
		"symbols", n,
		"duration", time.Since(started),
	)
	return nil
}

// applyOverrides lets command-line flags win over the config file.
func applyOverrides(cfg *config.Config, opts options) {
	if opts.countSet {
		cfg.Generator.Count = opts.count
	}
	if opts.seedSet {
		cfg.Generator.Seed = opts.seed
	}
	if opts.outDir != "" {
		cfg.Generator.OutputDir = opts.outDir
	}
}

func parseWindow(start, end string) (sampler.TimeWindow, error) {
	st, err := sampler.ParseTimeOfDay(start)
	if err != nil {
		return sampler.TimeWindow{}, fmt.Errorf("start: %w", err)
	}
	en, err := sampler.ParseTimeOfDay(end)
	if err != nil {
		return sampler.TimeWindow{}, fmt.Errorf("end: %w", err)
	}
	return sampler.NewTimeWindow(st, en)
}

// buildSink returns the file sink, plus the TimescaleDB sink when configured.
func buildSink(ctx context.Context, cfg *config.Config, runID uuid.UUID, logger *slog.Logger) (writer.Sink, func(), error) {
	files := writer.FileSink{Dir: cfg.Generator.OutputDir}
	if !cfg.Database.Enabled() {
		return files, func() {}, nil
	}

	db := cfg.Database.Timescale
	logger.Info("connecting to database",
		"host", db.Host,
		"port", db.Port,
		"database", db.Name,
	)
	conn, err := database.Connect(ctx, db)
	if err != nil {
		return nil, nil, fmt.Errorf("connect timescale: %w", err)
	}

	ticks := writer.NewTickSink(writer.TickSinkConfig{BatchSize: cfg.Database.BatchSize}, conn, runID, logger)
	if err := ticks.EnsureSchema(ctx); err != nil {
		conn.Close()
		return nil, nil, err
	}

	closeFn := func() {
		stats := ticks.Stats()
		logger.Info("tick sink closed",
			"symbols", stats.Symbols,
			"inserts", stats.Inserts,
			"batches", stats.Batches,
			"errors", stats.Errors,
		)
		conn.Close()
	}
	return writer.MultiSink{files, ticks}, closeFn, nil
}
