// Package writer generates synthetic records for a symbol and persists them.
//
// Sinks:
//   - FileSink: one text file per symbol, header line plus one record per line
//   - TickSink: batch inserts into a TimescaleDB synthetic_ticks table
//   - MultiSink: fans a symbol out to several sinks
//
// Each symbol is generated in memory and written once; a file is never
// rewritten per record.
package writer
