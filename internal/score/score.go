// Package score rates how worthwhile a tracked subject is to follow.
package score

import "math"

// Verdict is the recommendation derived from a decision score.
type Verdict string

const (
	VerdictFollow Verdict = "FOLLOW"
	VerdictWatch  Verdict = "WATCH"
	VerdictAvoid  Verdict = "AVOID"
)

// Component weights. Risk enters inverted: lower risk scores higher.
const (
	WeightReliability = 0.35
	WeightRisk        = 0.25
	WeightPnL         = 0.25
	WeightAlignment   = 0.15
)

// Verdict thresholds.
const (
	FollowAbove = 75
	WatchFrom   = 50
)

// Components are the 0-100 inputs to a decision score.
type Components struct {
	Reliability     float64 `json:"reliability" yaml:"reliability"`
	Risk            float64 `json:"risk" yaml:"risk"`
	PnLConsistency  float64 `json:"pnl_consistency" yaml:"pnl_consistency"`
	MarketAlignment float64 `json:"market_alignment" yaml:"market_alignment"`
}

// Decision is a computed score and its verdict.
type Decision struct {
	Score   int     `json:"score"`
	Verdict Verdict `json:"verdict"`
}

// Evaluate computes the weighted decision score. Components outside 0-100 are
// clamped first.
func Evaluate(c Components) Decision {
	raw := WeightReliability*clamp(c.Reliability) +
		WeightRisk*(100-clamp(c.Risk)) +
		WeightPnL*clamp(c.PnLConsistency) +
		WeightAlignment*clamp(c.MarketAlignment)

	s := int(math.Round(raw))
	return Decision{Score: s, Verdict: VerdictFor(s)}
}

// VerdictFor maps a score onto a verdict.
func VerdictFor(score int) Verdict {
	switch {
	case score > FollowAbove:
		return VerdictFollow
	case score >= WatchFrom:
		return VerdictWatch
	default:
		return VerdictAvoid
	}
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}
