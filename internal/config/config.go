package config

import "log/slog"

// Config is the root configuration shared by mktgen and mktmerge.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Merge     MergeConfig     `yaml:"merge"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
}

// GeneratorConfig holds synthetic tick generation settings.
type GeneratorConfig struct {
	Workers   int     `yaml:"workers"`
	Count     int     `yaml:"count"`      // Records per symbol
	BasePrice float64 `yaml:"base_price"` // Prices are drawn within ±10% of this
	BaseSize  int64   `yaml:"base_size"`  // Sizes are drawn within ±20% of this
	OutputDir string  `yaml:"output_dir"`
	Seed      uint64  `yaml:"seed"` // 0 = seed from entropy
}

// MergeConfig holds settings for merging per-symbol files.
type MergeConfig struct {
	Threads int `yaml:"threads"`
}

// DatabaseConfig holds the optional TimescaleDB sink.
// The sink is disabled when timescale.host is empty.
type DatabaseConfig struct {
	Timescale DBConfig `yaml:"timescale"`
	BatchSize int      `yaml:"batch_size"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Enabled reports whether a database sink is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Timescale.Host != ""
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
