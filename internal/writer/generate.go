package writer

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sirilvk/mktdata/internal/model"
	"github.com/sirilvk/mktdata/internal/randgen"
	"github.com/sirilvk/mktdata/internal/sampler"
)

// GenConfig controls how records are drawn for one symbol.
type GenConfig struct {
	Window    sampler.TimeWindow
	Count     int
	BasePrice decimal.Decimal
	BaseSize  int64

	// Day supplies the calendar date and location of every timestamp.
	Day time.Time
}

// Generate draws cfg.Count records with non-decreasing timestamps. Price, size,
// exchange and type are drawn independently for each record.
func Generate(cfg GenConfig, fields *randgen.Fields) []model.Record {
	times := sampler.Sample(fields.Rand(), cfg.Window, cfg.Count)

	records := make([]model.Record, len(times))
	for i, tod := range times {
		records[i] = model.Record{
			Timestamp: sampler.On(cfg.Day, tod),
			Price:     fields.Price(cfg.BasePrice),
			Size:      fields.Size(cfg.BaseSize),
			Exchange:  fields.Exchange(),
			Type:      fields.Type(),
		}
	}
	return records
}
