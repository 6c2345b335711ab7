// Package pricing computes the per-unit price breakdown for a ticket:
// base price, convenience fee, the two GST components levied on the fee,
// and the final amount.  All arithmetic is done in integer cents.
package pricing

import "math"

// gstRate is the rate of each GST component.  Central and state GST are
// always equal halves of an 18% tax on the convenience fee.
const gstRate = 0.09

// FeeType selects how the convenience fee is derived from the base price.
type FeeType string

const (
	FeePercentage FeeType = "percentage" // fee = base × percent / 100
	FeeFlat       FeeType = "flat"       // fee = fixed amount per seat
)

// Config carries the operator's convenience-fee policy.
//
// Fields:
//  Type         – percentage or flat.
//  Percent      – fee percentage, used when Type is percentage.
//  FlatCents    – fee amount in cents, used when Type is flat.
type Config struct {
	Type      FeeType
	Percent   float64
	FlatCents uint32
}

// Breakdown is the per-unit result of a price computation.
type Breakdown struct {
	BaseCents       uint32
	FeeCents        uint32
	CentralGSTCents uint32
	StateGSTCents   uint32
	FinalCents      uint32
}

// Compute derives the full per-unit breakdown for one seat of the given
// base price.  Fractions are rounded to the nearest cent.
func Compute(baseCents uint32, cfg Config) Breakdown {
	var fee uint32
	switch cfg.Type {
	case FeeFlat:
		fee = cfg.FlatCents
	default:
		fee = roundCents(float64(baseCents) * cfg.Percent / 100)
	}
	gst := roundCents(float64(fee) * gstRate)
	return Breakdown{
		BaseCents:       baseCents,
		FeeCents:        fee,
		CentralGSTCents: gst,
		StateGSTCents:   gst,
		FinalCents:      baseCents + fee + 2*gst,
	}
}

func roundCents(v float64) uint32 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return uint32(math.Round(v))
}
