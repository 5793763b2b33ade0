// mktmerge combines a directory of per-symbol tick files into one file
// ordered by timestamp.
//
// Usage:
//
//	mktmerge -i mkt -o merged.txt [-mt] [-t 8]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirilvk/mktdata/internal/config"
	"github.com/sirilvk/mktdata/internal/merge"
	"github.com/sirilvk/mktdata/internal/version"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error("mktmerge failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, logOut, usageOut io.Writer) error {
	fs := flag.NewFlagSet("mktmerge", flag.ContinueOnError)
	fs.SetOutput(usageOut)
	inDir := fs.String("i", "", "input directory path")
	outFile := fs.String("o", "", "output file")
	multi := fs.Bool("mt", false, "run multithreaded")
	threads := fs.Int("t", 0, "thread count (default from config: 5)")
	configPath := fs.String("config", "configs/mktgen.yaml", "path to optional config file")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	// Missing input or output prints usage and succeeds.
	if *inDir == "" || *outFile == "" {
		fmt.Fprintln(fs.Output(), "usage: mktmerge -i <dir> -o <file> [-mt] [-t N]")
		fs.PrintDefaults()
		return nil
	}

	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *threads > 0 {
		cfg.Merge.Threads = *threads
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("starting mktmerge",
		"version", version.Version,
		"input", *inDir,
		"output", *outFile,
	)

	files, err := merge.Discover(*inDir)
	if err != nil {
		return err
	}

	out, err := os.Create(*outFile)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	start := time.Now()
	var n int64
	if *multi {
		logger.Info("merging multithreaded", "files", len(files), "threads", cfg.Merge.Threads)
		n, err = merge.MergeParallel(ctx, files, out, cfg.Merge.Threads)
	} else {
		logger.Info("merging single threaded", "files", len(files))
		n, err = merge.Merge(ctx, files, out)
	}
	if err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	logger.Info("merge complete",
		"records", n,
		"duration", time.Since(start),
	)
	return nil
}
