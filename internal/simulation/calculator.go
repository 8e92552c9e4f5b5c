package simulation

import (
	"math"
	"strconv"
	"strings"

	"github.com/flowintel/flowintel/internal/core"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Calculator computes return-gap simulations with a configurable default capital.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	defaultCapital float64
}

// NewCalculator creates a calculator. A non-positive or non-finite default
// falls back to DefaultCapital.
func NewCalculator(defaultCapital float64) *Calculator {
	if !ValidCapital(defaultCapital) {
		defaultCapital = DefaultCapital
	}
	return &Calculator{defaultCapital: defaultCapital}
}

// DefaultCapital returns the amount substituted for invalid input.
func (c *Calculator) DefaultCapital() float64 {
	return c.defaultCapital
}

// Compute runs the simulation for in against periods. See Compute.
func (c *Calculator) Compute(in Input, periods []PeriodStats) *Result {
	return compute(in.StartingCapital, c.defaultCapital, in.Period, periods)
}

// Compute derives the actor and follower outcomes for startingCapital over the
// selected period.
//
// Degenerate input never fails: an unusable capital becomes DefaultCapital, an
// unknown period falls back to periods[0], and an empty periods list yields nil.
// Losses are charged against the starting capital, not compounded on the return.
func Compute(startingCapital float64, period core.Period, periods []PeriodStats) *Result {
	return compute(startingCapital, DefaultCapital, period, periods)
}

func compute(capital, fallback float64, period core.Period, periods []PeriodStats) *Result {
	if len(periods) == 0 {
		return nil
	}
	if !ValidCapital(capital) {
		capital = fallback
	}

	stats := Select(period, periods)

	c := decimal.NewFromFloat(capital)
	actor := pct(stats.ActorReturnPct)
	follower := pct(stats.FollowerReturnPct)
	slippage := pct(stats.SlippageLossPct)
	delay := pct(stats.DelayLossPct)

	return &Result{
		Period:             stats.Period,
		StartingCapital:    capital,
		ActorFinalValue:    c.Mul(one.Add(actor.Shift(-2))).InexactFloat64(),
		FollowerFinalValue: c.Mul(one.Add(follower.Shift(-2))).InexactFloat64(),
		ReturnGapPct:       actor.Sub(follower).InexactFloat64(),
		SlippageCost:       c.Mul(slippage.Shift(-2)).InexactFloat64(),
		DelayCost:          c.Mul(delay.Shift(-2)).InexactFloat64(),
		slippagePct:        slippage.InexactFloat64(),
		delayPct:           delay.InexactFloat64(),
	}
}

// Select returns the statistics for period, or the first entry when period is
// not present. periods must not be empty.
func Select(period core.Period, periods []PeriodStats) PeriodStats {
	for _, s := range periods {
		if s.Period == period {
			return s
		}
	}
	return periods[0]
}

// ParseCapital reads a user-typed amount such as "25,000" or "$1500.50".
// Anything unusable comes back as 0, which Compute replaces with the default.
func ParseCapital(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.NewReplacer(",", "", "_", "", " ", "").Replace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !ValidCapital(v) {
		return 0
	}
	return v
}

// ValidCapital reports whether capital can be used as-is: positive and at most
// MaxCapital.
func ValidCapital(capital float64) bool {
	return capital > 0 && capital <= MaxCapital
}

// ValidPct reports whether a percentage field is finite and within MaxPct.
func ValidPct(v float64) bool {
	return !math.IsNaN(v) && math.Abs(v) <= MaxPct
}

// pct converts a percentage field, treating unusable values as zero.
func pct(v float64) decimal.Decimal {
	if !ValidPct(v) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
