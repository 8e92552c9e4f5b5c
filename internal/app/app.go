package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/flowintel/flowintel/internal/config"
	"github.com/flowintel/flowintel/internal/core"
	"github.com/flowintel/flowintel/internal/format"
	"github.com/flowintel/flowintel/internal/metrics"
	"github.com/flowintel/flowintel/internal/profile"
	"github.com/flowintel/flowintel/internal/score"
	"github.com/flowintel/flowintel/internal/simulation"
	"go.uber.org/zap"
)

// ReconcileTolerance is how far, in percentage points, slippage plus delay may
// drift from the return gap before a result is flagged as not reconciling.
const ReconcileTolerance = 0.01

// Reloader is implemented by repositories that can re-read their source.
type Reloader interface {
	Load(ctx context.Context) (int, error)
}

// App serves profiles and simulations on top of a profile repository.
type App struct {
	cfg      *config.Config
	logger   *zap.Logger
	profiles profile.Repository
	calc     *simulation.Calculator
	metrics  *metrics.Registry
}

// New creates a new App. reg may be nil when metrics are disabled.
func New(cfg *config.Config, repo profile.Repository, logger *zap.Logger, reg *metrics.Registry) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.Defaults()
	}

	return &App{
		cfg:      cfg,
		logger:   logger,
		profiles: repo,
		calc:     simulation.NewCalculator(cfg.Simulation.DefaultCapital),
		metrics:  reg,
	}
}

// Currency is the display currency for money amounts.
func (a *App) Currency() string {
	if a.cfg.Simulation.Currency == "" {
		return format.DefaultCurrency
	}
	return a.cfg.Simulation.Currency
}

// DefaultCapital is the capital used when the caller gives none.
func (a *App) DefaultCapital() float64 {
	return a.calc.DefaultCapital()
}

// Summary identifies a profile in nested views.
type Summary struct {
	ID    string           `json:"id"`
	Label string           `json:"label"`
	Kind  core.SubjectKind `json:"kind"`
	Type  string           `json:"type,omitempty"`
}

// ProfileView is a profile with its decision score.
type ProfileView struct {
	profile.Profile
	Decision       score.Decision `json:"decision"`
	RealizedPnLFmt string         `json:"realized_pnl_display"`
}

// Attribution explains how much of the return gap the loss terms account for.
type Attribution struct {
	AttributedPct   float64 `json:"attributed_pct"`
	UnattributedPct float64 `json:"unattributed_pct"`
	Reconciles      bool    `json:"reconciles"`
}

// SimulationDisplay holds preformatted strings for a result.
type SimulationDisplay struct {
	StartingCapital    string `json:"starting_capital"`
	ActorFinalValue    string `json:"actor_final_value"`
	FollowerFinalValue string `json:"follower_final_value"`
	ReturnGap          string `json:"return_gap"`
	SlippageCost       string `json:"slippage_cost"`
	DelayCost          string `json:"delay_cost"`
}

// SimulationView is the answer to a what-if request. Result is nil when the
// profile has no period statistics yet.
type SimulationView struct {
	Profile         Summary            `json:"profile"`
	Periods         []core.Period      `json:"periods"`
	RequestedPeriod core.Period        `json:"requested_period,omitempty"`
	Result          *simulation.Result `json:"result"`
	Attribution     *Attribution       `json:"attribution,omitempty"`
	Display         *SimulationDisplay `json:"display,omitempty"`
	Substituted     []string           `json:"substituted,omitempty"`
}

// Profile returns the profile with the given id and its decision score.
func (a *App) Profile(ctx context.Context, id string) (*ProfileView, error) {
	p, err := a.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.view(*p), nil
}

// Profiles lists profiles matching filter.
func (a *App) Profiles(ctx context.Context, filter profile.ListFilter) ([]ProfileView, error) {
	list, err := a.profiles.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	views := make([]ProfileView, 0, len(list))
	for _, p := range list {
		views = append(views, *a.view(p))
	}
	return views, nil
}

// Simulate runs the return-gap calculator for a profile. Invalid capital and
// unknown periods are substituted, never rejected; only a missing profile is an
// error. An empty period selects the profile's first period.
func (a *App) Simulate(ctx context.Context, id string, capital float64, period core.Period) (*SimulationView, error) {
	p, err := a.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	v := &SimulationView{
		Profile:         summarize(*p),
		Periods:         p.AvailablePeriods(),
		RequestedPeriod: period,
	}

	r := a.calc.Compute(simulation.Input{StartingCapital: capital, Period: period}, p.Periods)
	if r == nil {
		a.recordSimulation("", metrics.OutcomeNoData)
		a.logger.Debug("no period statistics for profile", zap.String("id", id))
		return v, nil
	}

	if !simulation.ValidCapital(capital) {
		v.Substituted = append(v.Substituted, metrics.InputCapital)
		a.recordSubstitution(metrics.InputCapital)
	}
	outcome := metrics.OutcomeComputed
	if period != "" && r.Period != period {
		v.Substituted = append(v.Substituted, metrics.InputPeriod)
		a.recordSubstitution(metrics.InputPeriod)
		outcome = metrics.OutcomeFallback
	}
	a.recordSimulation(string(r.Period), outcome)

	cur := a.Currency()
	v.Result = r
	v.Attribution = &Attribution{
		AttributedPct:   r.AttributedPct(),
		UnattributedPct: r.UnattributedPct(),
		Reconciles:      r.Reconciles(ReconcileTolerance),
	}
	v.Display = &SimulationDisplay{
		StartingCapital:    format.Money(r.StartingCapital, cur),
		ActorFinalValue:    format.Money(r.ActorFinalValue, cur),
		FollowerFinalValue: format.Money(r.FollowerFinalValue, cur),
		ReturnGap:          format.SignedPercent(r.ReturnGapPct),
		SlippageCost:       format.Money(r.SlippageCost, cur),
		DelayCost:          format.Money(r.DelayCost, cur),
	}

	if !v.Attribution.Reconciles {
		a.logger.Debug("loss terms do not reconcile with return gap",
			zap.String("id", id),
			zap.String("period", string(r.Period)),
			zap.Float64("unattributed_pct", v.Attribution.UnattributedPct),
		)
	}

	return v, nil
}

// Reload re-reads the profile source when it supports reloading.
func (a *App) Reload(ctx context.Context) (int, error) {
	rl, ok := a.profiles.(Reloader)
	if !ok {
		return 0, fmt.Errorf("profile source does not support reloading")
	}
	n, err := rl.Load(ctx)
	if err != nil {
		return 0, err
	}
	if a.metrics != nil {
		a.metrics.SetProfilesLoaded(n)
	}
	return n, nil
}

func (a *App) lookup(ctx context.Context, id string) (*profile.Profile, error) {
	p, err := a.profiles.Get(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrProfileNotFound) {
			a.recordLookup("miss")
			return nil, core.WrapError(core.ErrProfileNotFound, fmt.Errorf("id %q", id))
		}
		return nil, fmt.Errorf("getting profile %s: %w", id, err)
	}
	a.recordLookup("hit")
	return p, nil
}

func (a *App) view(p profile.Profile) *ProfileView {
	return &ProfileView{
		Profile:        p,
		Decision:       p.Decision(),
		RealizedPnLFmt: format.Compact(p.Performance.RealizedPnL),
	}
}

func summarize(p profile.Profile) Summary {
	return Summary{ID: p.ID, Label: p.Label, Kind: p.Kind, Type: p.Type}
}

func (a *App) recordSimulation(period, outcome string) {
	if a.metrics != nil {
		a.metrics.RecordSimulation(period, outcome)
	}
}

func (a *App) recordSubstitution(input string) {
	if a.metrics != nil {
		a.metrics.RecordSubstitution(input)
	}
}

func (a *App) recordLookup(result string) {
	if a.metrics != nil {
		a.metrics.RecordProfileLookup(result)
	}
}
