package simulation_test

import (
	"math"
	"sync"
	"testing"

	"github.com/flowintel/flowintel/internal/core"
	"github.com/flowintel/flowintel/internal/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPeriods() []simulation.PeriodStats {
	return []simulation.PeriodStats{
		{Period: core.Period7D, ActorReturnPct: 4.2, FollowerReturnPct: 1.1, SlippageLossPct: 0.9, DelayLossPct: 2.2},
		{Period: core.Period30D, ActorReturnPct: 18.5, FollowerReturnPct: 9.2, SlippageLossPct: 2.4, DelayLossPct: 6.9},
		{Period: core.Period90D, ActorReturnPct: 42.0, FollowerReturnPct: 27.5, SlippageLossPct: 4.0, DelayLossPct: 8.0},
	}
}

func TestCompute_ConcreteCase(t *testing.T) {
	r := simulation.Compute(10000, core.Period30D, testPeriods())
	require.NotNil(t, r)

	assert.Equal(t, core.Period30D, r.Period)
	assert.Equal(t, 10000.0, r.StartingCapital)
	assert.Equal(t, 11850.0, r.ActorFinalValue)
	assert.Equal(t, 10920.0, r.FollowerFinalValue)
	assert.Equal(t, 9.3, r.ReturnGapPct)
	assert.Equal(t, 240.0, r.SlippageCost)
	assert.Equal(t, 690.0, r.DelayCost)
}

func TestCompute_Deterministic(t *testing.T) {
	periods := testPeriods()
	first := simulation.Compute(12345.67, core.Period90D, periods)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, simulation.Compute(12345.67, core.Period90D, periods))
	}
}

func TestCompute_DefaultCapitalSubstitution(t *testing.T) {
	periods := testPeriods()
	want := simulation.Compute(10000, core.Period30D, periods)

	tests := []struct {
		name    string
		capital float64
	}{
		{"zero", 0},
		{"NaN", math.NaN()},
		{"negative", -500},
		{"positive infinity", math.Inf(1)},
		{"negative infinity", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := simulation.Compute(tt.capital, core.Period30D, periods)
			assert.Equal(t, want, got)
		})
	}
}

func TestCompute_FallbackPeriod(t *testing.T) {
	periods := testPeriods()
	got := simulation.Compute(10000, core.Period("nonexistent"), periods)
	want := simulation.Compute(10000, periods[0].Period, periods)

	require.NotNil(t, got)
	assert.Equal(t, core.Period7D, got.Period)
	assert.Equal(t, want, got)
}

func TestCompute_EmptyPeriods(t *testing.T) {
	assert.Nil(t, simulation.Compute(10000, core.Period30D, nil))
	assert.Nil(t, simulation.Compute(10000, core.Period30D, []simulation.PeriodStats{}))
}

func TestCompute_NegativeGap(t *testing.T) {
	periods := []simulation.PeriodStats{
		{Period: core.Period30D, ActorReturnPct: 3.0, FollowerReturnPct: 5.5, SlippageLossPct: 0.1, DelayLossPct: 0.2},
	}
	r := simulation.Compute(10000, core.Period30D, periods)
	require.NotNil(t, r)

	assert.Equal(t, -2.5, r.ReturnGapPct)
	assert.Greater(t, r.FollowerFinalValue, r.ActorFinalValue)
}

func TestCompute_NegativeReturns(t *testing.T) {
	periods := []simulation.PeriodStats{
		{Period: core.Period7D, ActorReturnPct: -12.5, FollowerReturnPct: -20, SlippageLossPct: 1.5, DelayLossPct: 6},
	}
	r := simulation.Compute(10000, core.Period7D, periods)
	require.NotNil(t, r)

	assert.Equal(t, 8750.0, r.ActorFinalValue)
	assert.Equal(t, 8000.0, r.FollowerFinalValue)
	assert.Equal(t, 7.5, r.ReturnGapPct)
}

func TestCompute_ScaleInvariance(t *testing.T) {
	periods := testPeriods()
	capitals := []float64{10000, 1234.56, 0.01, 987654.321}

	for _, capital := range capitals {
		for _, p := range periods {
			base := simulation.Compute(capital, p.Period, periods)
			doubled := simulation.Compute(capital*2, p.Period, periods)
			require.NotNil(t, base)
			require.NotNil(t, doubled)

			assert.Equal(t, base.ActorFinalValue*2, doubled.ActorFinalValue)
			assert.Equal(t, base.FollowerFinalValue*2, doubled.FollowerFinalValue)
			assert.Equal(t, base.SlippageCost*2, doubled.SlippageCost)
			assert.Equal(t, base.DelayCost*2, doubled.DelayCost)
			assert.Equal(t, base.ReturnGapPct, doubled.ReturnGapPct)
		}
	}
}

func TestCompute_NonFiniteStatsStayFinite(t *testing.T) {
	periods := []simulation.PeriodStats{
		{Period: core.Period30D, ActorReturnPct: math.NaN(), FollowerReturnPct: math.Inf(1), SlippageLossPct: 1, DelayLossPct: math.Inf(-1)},
	}
	r := simulation.Compute(10000, core.Period30D, periods)
	require.NotNil(t, r)

	for _, v := range []float64{r.ActorFinalValue, r.FollowerFinalValue, r.ReturnGapPct, r.SlippageCost, r.DelayCost} {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "expected finite value, got %v", v)
	}
	assert.Equal(t, 10000.0, r.ActorFinalValue)
	assert.Equal(t, 100.0, r.SlippageCost)
}

func TestCompute_ConcurrentCallers(t *testing.T) {
	periods := testPeriods()
	want := simulation.Compute(10000, core.Period30D, periods)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, simulation.Compute(10000, core.Period30D, periods))
		}()
	}
	wg.Wait()
}

func TestResult_Attribution(t *testing.T) {
	reconciled := []simulation.PeriodStats{
		{Period: core.Period30D, ActorReturnPct: 18.5, FollowerReturnPct: 9.2, SlippageLossPct: 2.4, DelayLossPct: 6.9},
	}
	r := simulation.Compute(10000, core.Period30D, reconciled)
	require.NotNil(t, r)
	assert.InDelta(t, 9.3, r.AttributedPct(), 1e-9)
	assert.InDelta(t, 0, r.UnattributedPct(), 1e-9)
	assert.True(t, r.Reconciles(0.01))

	mismatched := []simulation.PeriodStats{
		{Period: core.Period30D, ActorReturnPct: 18.5, FollowerReturnPct: 9.2, SlippageLossPct: 1.0, DelayLossPct: 2.0},
	}
	r = simulation.Compute(10000, core.Period30D, mismatched)
	require.NotNil(t, r)
	assert.InDelta(t, 6.3, r.UnattributedPct(), 1e-9)
	assert.False(t, r.Reconciles(0.01))
}

func TestCalculator_DefaultCapital(t *testing.T) {
	periods := testPeriods()

	calc := simulation.NewCalculator(25000)
	assert.Equal(t, 25000.0, calc.DefaultCapital())

	r := calc.Compute(simulation.Input{StartingCapital: 0, Period: core.Period30D}, periods)
	require.NotNil(t, r)
	assert.Equal(t, 25000.0, r.StartingCapital)
	assert.Equal(t, 600.0, r.SlippageCost)

	fallback := simulation.NewCalculator(math.NaN())
	assert.Equal(t, simulation.DefaultCapital, fallback.DefaultCapital())
}

func TestCalculator_MatchesCompute(t *testing.T) {
	periods := testPeriods()
	calc := simulation.NewCalculator(simulation.DefaultCapital)

	in := simulation.Input{StartingCapital: 5000, Period: core.Period90D}
	assert.Equal(t, simulation.Compute(5000, core.Period90D, periods), calc.Compute(in, periods))
	assert.Nil(t, calc.Compute(in, nil))
}

func TestParseCapital_TooLarge(t *testing.T) {
	assert.Equal(t, 0.0, simulation.ParseCapital("1.7e308"))
	assert.Equal(t, 0.0, simulation.ParseCapital("1e17"))
	assert.Equal(t, 1e12, simulation.ParseCapital("1e12"))
}

func TestParseCapital(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"10000", 10000},
		{"25,000", 25000},
		{"$1500.50", 1500.5},
		{" 42 ", 42},
		{"", 0},
		{"abc", 0},
		{"-100", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, simulation.ParseCapital(tt.raw))
		})
	}
}

func TestSelect(t *testing.T) {
	periods := testPeriods()
	assert.Equal(t, periods[2], simulation.Select(core.Period90D, periods))
	assert.Equal(t, periods[0], simulation.Select(core.Period1Y, periods))
}

func TestValidCapital(t *testing.T) {
	assert.True(t, simulation.ValidCapital(0.01))
	assert.True(t, simulation.ValidCapital(1e9))
	assert.False(t, simulation.ValidCapital(0))
	assert.False(t, simulation.ValidCapital(-1))
	assert.False(t, simulation.ValidCapital(math.NaN()))
	assert.False(t, simulation.ValidCapital(math.Inf(1)))
	assert.True(t, simulation.ValidCapital(simulation.MaxCapital))
	assert.False(t, simulation.ValidCapital(simulation.MaxCapital*2))
	assert.False(t, simulation.ValidCapital(math.MaxFloat64))
}

func TestCompute_HugeCapitalSubstituted(t *testing.T) {
	for _, capital := range []float64{1.7e308, math.MaxFloat64, 1e17} {
		r := simulation.Compute(capital, core.Period30D, testPeriods())
		require.NotNil(t, r)

		assert.Equal(t, simulation.DefaultCapital, r.StartingCapital, "capital %v", capital)
		assert.Equal(t, 11850.0, r.ActorFinalValue)
		for _, v := range []float64{r.ActorFinalValue, r.FollowerFinalValue, r.ReturnGapPct, r.SlippageCost, r.DelayCost} {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "expected finite value, got %v", v)
		}
	}
}

func TestCompute_ExtremesStayFinite(t *testing.T) {
	periods := []simulation.PeriodStats{
		{Period: core.Period1Y, ActorReturnPct: simulation.MaxPct, FollowerReturnPct: -simulation.MaxPct, SlippageLossPct: simulation.MaxPct, DelayLossPct: 1e300},
	}
	r := simulation.Compute(simulation.MaxCapital, core.Period1Y, periods)
	require.NotNil(t, r)

	for _, v := range []float64{r.ActorFinalValue, r.FollowerFinalValue, r.ReturnGapPct, r.SlippageCost, r.DelayCost} {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "expected finite value, got %v", v)
	}
	assert.Equal(t, 1e16+1e12, r.ActorFinalValue)
	// Out-of-range fields count as zero.
	assert.Equal(t, 0.0, r.DelayCost)
}
