package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

// options are the parsed command-line arguments.
type options struct {
	start      string
	end        string
	symbolFile string
	configPath string

	// Overrides; applied only when the flag was given.
	count    int
	countSet bool
	seed     uint64
	seedSet  bool
	outDir   string
}

const usage = `usage: mktgen <start> <end> -sf <symbol_file> [-count N] [-seed N] [-out dir] [-config path]

Generates market data with random timestamps between start and end
(ISO-8601 times of day, e.g. 09:30:00), one file per symbol.

`

// parseArgs parses args the way argparse would: flags may appear before,
// between or after the two positional times.
func parseArgs(args []string, output io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("mktgen", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.symbolFile, "sf", "", "symbol file, one symbol per line")
	fs.IntVar(&opts.count, "count", 100, "number of entries per symbol")
	fs.Uint64Var(&opts.seed, "seed", 0, "random seed (0 = random)")
	fs.StringVar(&opts.outDir, "out", "", "output directory (default from config: mkt)")
	fs.StringVar(&opts.configPath, "config", "configs/mktgen.yaml", "path to optional config file")

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return opts, err
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "count":
			opts.countSet = true
		case "seed":
			opts.seedSet = true
		}
	})

	if len(positional) != 2 {
		fs.Usage()
		return opts, fmt.Errorf("expected <start> and <end>, got %d positional argument(s)", len(positional))
	}
	opts.start, opts.end = positional[0], positional[1]

	if opts.symbolFile == "" {
		fs.Usage()
		return opts, errors.New("-sf symbol file is required")
	}
	if opts.count < 0 {
		return opts, fmt.Errorf("-count must be >= 0, got %d", opts.count)
	}
	return opts, nil
}
