// Package database provides the TimescaleDB connection pool used by the
// optional synthetic_ticks sink.
package database
