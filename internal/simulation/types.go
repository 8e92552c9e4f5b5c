package simulation

import (
	"math"

	"github.com/flowintel/flowintel/internal/core"
)

// DefaultCapital is substituted whenever the caller supplies an unusable amount.
const DefaultCapital = 10000.0

// MaxCapital is the largest starting capital used as-is. Larger amounts are
// substituted like zero or NaN, which keeps every derived amount finite and
// within the minor-unit range of a money display.
const MaxCapital = 1e12

// MaxPct bounds the magnitude of a percentage field the calculator will use.
// Fields beyond it are treated as zero.
const MaxPct = 1e6

// PeriodStats holds the observed returns of an actor over one horizon and the
// modeled frictions a follower would pay when copying it.
//
// FollowerReturnPct is observed, not derived from the loss terms: the losses
// explain the gap but need not sum to it.
type PeriodStats struct {
	Period            core.Period `json:"period" yaml:"period"`
	ActorReturnPct    float64     `json:"actor_return_pct" yaml:"actor_return_pct"`
	FollowerReturnPct float64     `json:"follower_return_pct" yaml:"follower_return_pct"`
	SlippageLossPct   float64     `json:"slippage_loss_pct" yaml:"slippage_loss_pct"`
	DelayLossPct      float64     `json:"delay_loss_pct" yaml:"delay_loss_pct"`
}

// Input is a what-if request against a subject's period statistics.
type Input struct {
	StartingCapital float64
	Period          core.Period
}

// Result is the derived comparison between the actor and a follower.
type Result struct {
	Period             core.Period `json:"period"`
	StartingCapital    float64     `json:"starting_capital"`
	ActorFinalValue    float64     `json:"actor_final_value"`
	FollowerFinalValue float64     `json:"follower_final_value"`
	ReturnGapPct       float64     `json:"return_gap_pct"`
	SlippageCost       float64     `json:"slippage_cost"`
	DelayCost          float64     `json:"delay_cost"`

	slippagePct float64
	delayPct    float64
}

// AttributedPct is the part of the gap explained by slippage and delay.
func (r *Result) AttributedPct() float64 {
	return r.slippagePct + r.delayPct
}

// UnattributedPct is the part of the gap the loss terms do not explain.
// Zero when the source statistics reconcile.
func (r *Result) UnattributedPct() float64 {
	return r.ReturnGapPct - r.AttributedPct()
}

// Reconciles reports whether slippage and delay explain the gap within tolerance
// percentage points.
func (r *Result) Reconciles(tolerance float64) bool {
	return math.Abs(r.UnattributedPct()) <= tolerance
}
