// Package model defines the tick record and its text encoding, shared by the
// generator and the merger.
//
// Conventions:
//   - Prices: shopspring decimals with 2-digit (cent) precision
//   - Timestamps: local wall-clock time with millisecond precision
//   - Symbol files: one header comment line, then one comma-separated record per line
package model
