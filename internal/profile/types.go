// Package profile holds typed records for tracked actors and wallets and the
// repositories that serve them.
package profile

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/flowintel/flowintel/internal/core"
	"github.com/flowintel/flowintel/internal/score"
	"github.com/flowintel/flowintel/internal/simulation"
)

// Performance summarizes a subject's trading history.
type Performance struct {
	RealizedPnL     float64 `json:"realized_pnl" yaml:"realized_pnl"`
	WinRatePct      float64 `json:"win_rate_pct" yaml:"win_rate_pct"`
	AvgHoldHours    float64 `json:"avg_hold_hours" yaml:"avg_hold_hours"`
	AvgDrawdownPct  float64 `json:"avg_drawdown_pct" yaml:"avg_drawdown_pct"`
	EntryDelayHours float64 `json:"entry_delay_hours" yaml:"entry_delay_hours"`
	TradesAnalyzed  int     `json:"trades_analyzed" yaml:"trades_analyzed"`
}

// Profile is a tracked subject with the period statistics used for simulations.
type Profile struct {
	ID          string                   `json:"id" yaml:"id"`
	Label       string                   `json:"label" yaml:"label"`
	Address     string                   `json:"address,omitempty" yaml:"address,omitempty"`
	Kind        core.SubjectKind         `json:"kind" yaml:"kind"`
	Type        string                   `json:"type,omitempty" yaml:"type,omitempty"`
	Strategy    string                   `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Confidence  int                      `json:"confidence" yaml:"confidence"`
	Tags        []string                 `json:"tags,omitempty" yaml:"tags,omitempty"`
	Performance Performance              `json:"performance" yaml:"performance"`
	Score       score.Components         `json:"score" yaml:"score"`
	Periods     []simulation.PeriodStats `json:"periods" yaml:"periods"`
}

// Decision returns the profile's decision score and verdict.
func (p *Profile) Decision() score.Decision {
	return score.Evaluate(p.Score)
}

// AvailablePeriods lists the horizons the profile has statistics for, in order.
func (p *Profile) AvailablePeriods() []core.Period {
	out := make([]core.Period, 0, len(p.Periods))
	for _, s := range p.Periods {
		out = append(out, s.Period)
	}
	return out
}

// Clone returns a deep copy.
func (p Profile) Clone() Profile {
	p.Tags = append([]string(nil), p.Tags...)
	p.Periods = append([]simulation.PeriodStats(nil), p.Periods...)
	return p
}

// Validate checks the record at the data-access boundary so consumers can rely
// on typed, finite values.
func (p *Profile) Validate() error {
	var errs []error

	if strings.TrimSpace(p.ID) == "" {
		errs = append(errs, errors.New("id required"))
	}
	if strings.TrimSpace(p.Label) == "" {
		errs = append(errs, errors.New("label required"))
	}
	if !p.Kind.IsValid() {
		errs = append(errs, fmt.Errorf("unknown kind %q", p.Kind))
	}
	if p.Confidence < 0 || p.Confidence > 100 {
		errs = append(errs, fmt.Errorf("confidence must be between 0 and 100, got %d", p.Confidence))
	}

	seen := make(map[core.Period]bool, len(p.Periods))
	for i, s := range p.Periods {
		if !s.Period.IsValid() {
			errs = append(errs, fmt.Errorf("periods[%d]: unknown period %q", i, s.Period))
		} else if seen[s.Period] {
			errs = append(errs, fmt.Errorf("periods[%d]: duplicate period %q", i, s.Period))
		}
		seen[s.Period] = true

		for _, f := range []struct {
			name string
			v    float64
		}{
			{"actor_return_pct", s.ActorReturnPct},
			{"follower_return_pct", s.FollowerReturnPct},
			{"slippage_loss_pct", s.SlippageLossPct},
			{"delay_loss_pct", s.DelayLossPct},
		} {
			switch {
			case math.IsNaN(f.v) || math.IsInf(f.v, 0):
				errs = append(errs, fmt.Errorf("periods[%d]: %s must be finite", i, f.name))
			case !simulation.ValidPct(f.v):
				errs = append(errs, fmt.Errorf("periods[%d]: %s out of range", i, f.name))
			}
		}
		if s.SlippageLossPct < 0 {
			errs = append(errs, fmt.Errorf("periods[%d]: slippage_loss_pct cannot be negative", i))
		}
		if s.DelayLossPct < 0 {
			errs = append(errs, fmt.Errorf("periods[%d]: delay_loss_pct cannot be negative", i))
		}
	}

	if len(errs) > 0 {
		return core.WrapError(core.ErrProfileInvalid, errors.Join(errs...))
	}
	return nil
}

// SortField orders List results.
type SortField string

const (
	SortConfidence SortField = "confidence"
	SortLabel      SortField = "label"
	SortScore      SortField = "score"
)

// ListFilter defines criteria for listing profiles.
type ListFilter struct {
	Kind   core.SubjectKind
	Query  string // case-insensitive match on id, label or address
	SortBy SortField
	Limit  int
	Offset int
}

// Repository is the data-access boundary for profiles.
type Repository interface {
	// Get returns the profile with the given id, or core.ErrProfileNotFound.
	Get(ctx context.Context, id string) (*Profile, error)

	// List returns profiles matching the filter.
	List(ctx context.Context, filter ListFilter) ([]Profile, error)
}
