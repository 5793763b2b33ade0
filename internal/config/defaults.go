package config

// Default values for optional configuration fields.
const (
	DefaultWorkers      = 5
	DefaultCount        = 100
	DefaultBasePrice    = 45.0
	DefaultBaseSize     = 100
	DefaultOutputDir    = "mkt"
	DefaultMergeThreads = 5
	DefaultDBPort       = 5432
	DefaultDBSSLMode    = "prefer"
	DefaultMaxConns     = 10
	DefaultMinConns     = 2
	DefaultBatchSize    = 1000
	DefaultLogLevel     = "info"
)

func (c *Config) applyDefaults() {
	// Generator defaults
	if c.Generator.Workers == 0 {
		c.Generator.Workers = DefaultWorkers
	}
	if c.Generator.Count == 0 {
		c.Generator.Count = DefaultCount
	}
	if c.Generator.BasePrice == 0 {
		c.Generator.BasePrice = DefaultBasePrice
	}
	if c.Generator.BaseSize == 0 {
		c.Generator.BaseSize = DefaultBaseSize
	}
	if c.Generator.OutputDir == "" {
		c.Generator.OutputDir = DefaultOutputDir
	}

	if c.Merge.Threads == 0 {
		c.Merge.Threads = DefaultMergeThreads
	}

	// Database defaults
	applyDBDefaults(&c.Database.Timescale)
	if c.Database.BatchSize == 0 {
		c.Database.BatchSize = DefaultBatchSize
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
