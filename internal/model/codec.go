package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// TimestampLayout is the on-disk timestamp format (millisecond precision).
	TimestampLayout = "2006-01-02 15:04:05.000"

	// Header is the first line of every per-symbol file.
	Header = "#Timestamp,Price,Size,Exchange,Type"

	// MergedHeader is the first line of a merged file.
	MergedHeader = "#Symbol,Timestamp,Price,Size,Exchange,Type"

	recordFields = 5
)

// FormatRecord encodes a record as "YYYY-MM-DD HH:MM:SS.mmm,price,size,exchange,type".
func FormatRecord(r Record) string {
	var b strings.Builder
	b.Grow(48)
	b.WriteString(r.Timestamp.Format(TimestampLayout))
	b.WriteByte(',')
	b.WriteString(r.Price.StringFixed(2))
	b.WriteByte(',')
	b.WriteString(strconv.FormatInt(r.Size, 10))
	b.WriteByte(',')
	b.WriteString(r.Exchange)
	b.WriteByte(',')
	b.WriteString(r.Type.String())
	return b.String()
}

// FormatSymbolRecord encodes a merged line: the symbol followed by the record.
func FormatSymbolRecord(r SymbolRecord) string {
	return r.Symbol + "," + FormatRecord(r.Record)
}

// ParseRecord decodes one data line produced by FormatRecord. Timestamps are
// interpreted in the local time zone, matching how they were written.
func ParseRecord(line string) (Record, error) {
	fields := strings.Split(line, ",")
	if len(fields) != recordFields {
		return Record{}, fmt.Errorf("expected %d fields, got %d", recordFields, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	ts, err := time.ParseInLocation(TimestampLayout, fields[0], time.Local)
	if err != nil {
		return Record{}, fmt.Errorf("parse timestamp: %w", err)
	}
	px, err := decimal.NewFromString(fields[1])
	if err != nil {
		return Record{}, fmt.Errorf("parse price: %w", err)
	}
	sz, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("parse size: %w", err)
	}

	return Record{
		Timestamp: ts,
		Price:     px,
		Size:      sz,
		Exchange:  fields[3],
		Type:      ParseRecordType(fields[4]),
	}, nil
}

// IsSkippable reports whether a trimmed line carries no record: blank lines
// and "#" or "//" comments.
func IsSkippable(line string) bool {
	return line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//")
}
