package profile

import (
	"github.com/flowintel/flowintel/internal/core"
	"github.com/flowintel/flowintel/internal/score"
	"github.com/flowintel/flowintel/internal/simulation"
)

// Fixtures returns the built-in demo catalogue served when no profile source
// is configured.
func Fixtures() []Profile {
	return []Profile{
		{
			ID:         "vitalik",
			Label:      "Vitalik.eth",
			Address:    "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045",
			Kind:       core.KindActor,
			Type:       "Whale",
			Strategy:   "Smart Money Trader",
			Confidence: 87,
			Tags:       []string{"Smart Money", "DEX Heavy", "Alpha Hunter", "Narrative Rider"},
			Performance: Performance{
				RealizedPnL:     549000,
				WinRatePct:      66.8,
				AvgHoldHours:    100.8,
				AvgDrawdownPct:  8.2,
				EntryDelayHours: 2.4,
				TradesAnalyzed:  468,
			},
			Score: score.Components{Reliability: 82, Risk: 12, PnLConsistency: 78, MarketAlignment: 100},
			Periods: []simulation.PeriodStats{
				{Period: core.Period7D, ActorReturnPct: 4.8, FollowerReturnPct: 2.1, SlippageLossPct: 0.9, DelayLossPct: 1.8},
				{Period: core.Period30D, ActorReturnPct: 18.5, FollowerReturnPct: 9.2, SlippageLossPct: 2.4, DelayLossPct: 6.9},
				{Period: core.Period90D, ActorReturnPct: 41.2, FollowerReturnPct: 24.6, SlippageLossPct: 4.1, DelayLossPct: 11.8},
			},
		},
		{
			ID:         "alameda",
			Label:      "Alameda Research",
			Address:    "0x28C6c06298d514Db089934071355E5743bf21d60",
			Kind:       core.KindActor,
			Type:       "Fund",
			Strategy:   "Accumulator & Momentum",
			Confidence: 91,
			Tags:       []string{"Accumulator", "Momentum", "Narrative Rider", "Long-term"},
			Performance: Performance{
				RealizedPnL:     2400000,
				WinRatePct:      71.2,
				AvgHoldHours:    300,
				AvgDrawdownPct:  5.1,
				EntryDelayHours: 4.8,
				TradesAnalyzed:  892,
			},
			Score: score.Components{Reliability: 88, Risk: 8, PnLConsistency: 84, MarketAlignment: 75},
			Periods: []simulation.PeriodStats{
				{Period: core.Period30D, ActorReturnPct: 12.4, FollowerReturnPct: 8.9, SlippageLossPct: 1.2, DelayLossPct: 2.3},
				{Period: core.Period90D, ActorReturnPct: 33.7, FollowerReturnPct: 25.1, SlippageLossPct: 2.8, DelayLossPct: 4.9},
				{Period: core.Period1Y, ActorReturnPct: 96.3, FollowerReturnPct: 71.8, SlippageLossPct: 7.5, DelayLossPct: 14.2},
			},
		},
		{
			ID:         "whale-0xa2b7",
			Label:      "Unknown Whale",
			Address:    "0xa2B741C8b4c840082c14A4aDEBFA3F2eAE45d022",
			Kind:       core.KindWallet,
			Type:       "Whale",
			Strategy:   "High Frequency",
			Confidence: 64,
			Performance: Performance{
				RealizedPnL:     -38000,
				WinRatePct:      48.5,
				AvgHoldHours:    9.5,
				AvgDrawdownPct:  14.7,
				EntryDelayHours: 0.6,
				TradesAnalyzed:  1204,
			},
			Score: score.Components{Reliability: 55, Risk: 46, PnLConsistency: 41, MarketAlignment: 60},
			Periods: []simulation.PeriodStats{
				{Period: core.Period7D, ActorReturnPct: -3.2, FollowerReturnPct: -5.9, SlippageLossPct: 0.8, DelayLossPct: 1.6},
				{Period: core.Period30D, ActorReturnPct: 2.1, FollowerReturnPct: 3.4, SlippageLossPct: 0.4, DelayLossPct: 0.3},
			},
		},
		{
			ID:         "fresh-0x1805",
			Label:      "Fresh Wallet",
			Address:    "0x18051a9c643077DC1A14d49E1B804dC857750287",
			Kind:       core.KindWallet,
			Type:       "Unknown",
			Confidence: 12,
			Score:      score.Components{Risk: 50},
		},
	}
}
