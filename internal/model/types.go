package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordType classifies a tick as a quote side or a trade.
type RecordType uint8

const (
	TypeNone RecordType = iota
	TypeBid
	TypeAsk
	TypeTrade
)

// String returns the wire name of the record type.
func (t RecordType) String() string {
	switch t {
	case TypeBid:
		return "BID"
	case TypeAsk:
		return "ASK"
	case TypeTrade:
		return "TRADE"
	}
	return "NONE"
}

// ParseRecordType maps a wire name to a RecordType. Unknown names map to TypeNone.
func ParseRecordType(s string) RecordType {
	switch s {
	case "BID":
		return TypeBid
	case "ASK":
		return TypeAsk
	case "TRADE":
		return TypeTrade
	}
	return TypeNone
}

// Exchanges is the fixed set of venues a synthetic tick can print on.
var Exchanges = []string{"NYSE", "EDGX", "ARCA"}

// RecordTypes is the fixed set of types drawn by the generator.
var RecordTypes = []RecordType{TypeAsk, TypeBid, TypeTrade}

// Record is one synthetic market event.
type Record struct {
	Timestamp time.Time       // Millisecond precision
	Price     decimal.Decimal // Cent precision
	Size      int64
	Exchange  string
	Type      RecordType
}

// SymbolRecord is a Record tagged with its symbol, as emitted by the merger.
type SymbolRecord struct {
	Symbol string
	Record
}
