package config

import (
	"errors"
	"fmt"
)

// Validate checks that values are usable. The database section is only
// checked when a sink is configured.
func (c *Config) Validate() error {
	if c.Generator.Workers < 1 {
		return errors.New("generator.workers must be >= 1")
	}
	if c.Generator.Count < 0 {
		return errors.New("generator.count must be >= 0")
	}
	if c.Generator.BasePrice <= 0 {
		return fmt.Errorf("generator.base_price must be positive, got %v", c.Generator.BasePrice)
	}
	if c.Generator.BaseSize < 1 {
		return errors.New("generator.base_size must be >= 1")
	}
	if c.Generator.OutputDir == "" {
		return errors.New("generator.output_dir is required")
	}

	if c.Merge.Threads < 1 {
		return errors.New("merge.threads must be >= 1")
	}

	if c.Database.Enabled() {
		if err := c.Database.Timescale.validate("database.timescale"); err != nil {
			return err
		}
		if c.Database.BatchSize < 1 {
			return errors.New("database.batch_size must be >= 1")
		}
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
