package profile

import (
	"errors"
	"math"
	"testing"

	"github.com/flowintel/flowintel/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vitalikDoc = `
id: vitalik
label: Vitalik.eth
address: "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"
kind: actor
type: Whale
confidence: 87
performance:
  realized_pnl: 549000
  win_rate_pct: 66.8
  entry_delay_hours: 2.4
  trades_analyzed: 468
score:
  reliability: 82
  risk: 12
  pnl_consistency: 78
  market_alignment: 100
periods:
  - period: 30d
    actor_return_pct: 18.5
    follower_return_pct: 9.2
    slippage_loss_pct: 2.4
    delay_loss_pct: 6.9
`

func TestDecode(t *testing.T) {
	p, err := Decode([]byte(vitalikDoc))
	require.NoError(t, err)

	assert.Equal(t, "vitalik", p.ID)
	assert.Equal(t, core.KindActor, p.Kind)
	assert.Equal(t, 468, p.Performance.TradesAnalyzed)
	require.Len(t, p.Periods, 1)
	assert.Equal(t, core.Period30D, p.Periods[0].Period)
	assert.Equal(t, 6.9, p.Periods[0].DelayLossPct)
	assert.Equal(t, 85, p.Decision().Score)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ``},
		{"malformed", `id: [`},
		{"unknown field", "id: a\nlabel: A\nkind: actor\ncolour: red\n"},
		{"missing label", "id: a\nkind: actor\n"},
		{"bad kind", "id: a\nlabel: A\nkind: exchange\n"},
		{"unknown period", "id: a\nlabel: A\nkind: actor\nperiods:\n  - period: 2w\n"},
		{"duplicate period", "id: a\nlabel: A\nkind: actor\nperiods:\n  - period: 7d\n  - period: 7d\n"},
		{"negative slippage", "id: a\nlabel: A\nkind: actor\nperiods:\n  - period: 7d\n    slippage_loss_pct: -1\n"},
		{"nan return", "id: a\nlabel: A\nkind: actor\nperiods:\n  - period: 7d\n    actor_return_pct: .nan\n"},
		{"confidence out of range", "id: a\nlabel: A\nkind: actor\nconfidence: 140\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrProfileInvalid), "got %v", err)
		})
	}
}

func TestEncodeDecode_Fixtures(t *testing.T) {
	for _, want := range Fixtures() {
		data, err := Encode(want)
		require.NoError(t, err, want.ID)

		got, err := Decode(data)
		require.NoError(t, err, want.ID)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Periods, normalizePeriods(got.Periods))
	}
}

func TestEncode_RejectsInvalid(t *testing.T) {
	p := Fixtures()[0]
	p.Periods[0].DelayLossPct = math.Inf(1)

	_, err := Encode(p)
	assert.True(t, errors.Is(err, core.ErrProfileInvalid))
}

func TestValidate_RejectsOutOfRangePercentages(t *testing.T) {
	p := Fixtures()[0]
	p.Periods[1].ActorReturnPct = 1e300

	err := p.Validate()
	require.ErrorIs(t, err, core.ErrProfileInvalid)
	assert.Contains(t, err.Error(), "actor_return_pct out of range")

	p.Periods[1].ActorReturnPct = 1e6
	assert.NoError(t, p.Validate())
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	p := Profile{Kind: "bogus", Confidence: -1}
	err := p.Validate()
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{"id required", "label required", "unknown kind", "confidence"} {
		assert.Contains(t, msg, want)
	}
}

// normalizePeriods maps an empty decoded list onto nil to match fixtures
// without statistics.
func normalizePeriods[T any](in []T) []T {
	if len(in) == 0 {
		return nil
	}
	return in
}
