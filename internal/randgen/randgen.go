// Package randgen draws the random fields of a synthetic tick.
//
// A Fields value owns its random source and is not safe for concurrent use;
// each generator worker gets its own.
package randgen

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/sirilvk/mktdata/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Fields produces random exchanges, record types, prices and sizes.
type Fields struct {
	rng *rand.Rand
}

// New wraps an explicit random source.
func New(rng *rand.Rand) *Fields {
	return &Fields{rng: rng}
}

// NewSeeded returns Fields backed by a PCG source. A zero seed draws the
// seed from crypto/rand.
func NewSeeded(seed uint64) *Fields {
	return New(NewRand(seed))
}

// NewRand returns a PCG-backed *rand.Rand. A zero seed draws the seed from
// crypto/rand.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = entropySeed()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// WorkerSeed derives a distinct per-worker seed from a run seed.
// A zero run seed stays zero so every worker seeds from entropy.
func WorkerSeed(runSeed uint64, worker int) uint64 {
	if runSeed == 0 {
		return 0
	}
	return runSeed + uint64(worker)*0x2545f4914f6cdd1d
}

// Rand exposes the underlying source, shared with the timestamp sampler.
func (f *Fields) Rand() *rand.Rand {
	return f.rng
}

// Exchange returns one of model.Exchanges, uniformly.
func (f *Fields) Exchange() string {
	return model.Exchanges[f.rng.IntN(len(model.Exchanges))]
}

// Type returns one of model.RecordTypes, uniformly.
func (f *Fields) Type() model.RecordType {
	return model.RecordTypes[f.rng.IntN(len(model.RecordTypes))]
}

// Price returns a cent-precision price within ±10% of base. The bounds are
// computed in cents and truncated toward zero before drawing.
func (f *Fields) Price(base decimal.Decimal) decimal.Decimal {
	scaled := base.Mul(hundred)
	tenth := scaled.Div(decimal.NewFromInt(10))
	lo := scaled.Sub(tenth).IntPart()
	hi := scaled.Add(tenth).IntPart()
	return decimal.New(f.between(lo, hi), -2)
}

// Size returns an integer size within ±20% of base, bounds truncated toward zero.
func (f *Fields) Size(base int64) int64 {
	fifth := float64(base) / 5
	lo := int64(float64(base) - fifth)
	hi := int64(float64(base) + fifth)
	return f.between(lo, hi)
}

// between draws uniformly from [lo, hi].
func (f *Fields) between(lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + f.rng.Int64N(hi-lo+1)
}

func entropySeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return rand.Uint64()
	}
	return binary.LittleEndian.Uint64(b[:])
}
