package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/flowintel/flowintel/internal/app"
	"github.com/flowintel/flowintel/internal/core"
	"github.com/flowintel/flowintel/internal/format"
	"github.com/flowintel/flowintel/internal/metrics"
	"github.com/flowintel/flowintel/internal/simulation"
	"github.com/spf13/cobra"
)

var (
	simCapital string
	simPeriod  string
	simJSON    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [profile-id]",
	Short: "Simulate following a profile",
	Long: `Compare what the tracked actor earned over a period with what a follower
copying the same trades would have ended up with after slippage and delay.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simCapital, "capital", "", `starting capital, e.g. 10000 or "$25,000" (default from config)`)
	simulateCmd.Flags().StringVar(&simPeriod, "period", "", "period: 7d, 30d, 90d or 1y (default: first available)")
	simulateCmd.Flags().BoolVar(&simJSON, "json", false, "print the result as JSON")

	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	log := newLogger("")
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	repo, _, err := app.OpenRepository(cmd.Context(), cfg.Profiles, log)
	if err != nil {
		return fmt.Errorf("opening profiles: %w", err)
	}
	a := app.New(cfg, repo, log, nil)

	period := core.Period(strings.ToLower(strings.TrimSpace(simPeriod)))
	v, err := a.Simulate(cmd.Context(), args[0], simulation.ParseCapital(simCapital), period)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if simJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	printSimulation(out, v, format.Money(a.DefaultCapital(), a.Currency()))
	return nil
}

func printSimulation(out io.Writer, v *app.SimulationView, defaultCapital string) {
	fmt.Fprintf(out, "=== %s (%s) ===\n", v.Profile.Label, v.Profile.ID)

	if v.Result == nil {
		fmt.Fprintln(out, "No period statistics available for this profile yet.")
		return
	}

	for _, s := range v.Substituted {
		switch s {
		case metrics.InputCapital:
			fmt.Fprintf(out, "note: capital not usable, using the default %s\n", defaultCapital)
		case metrics.InputPeriod:
			fmt.Fprintf(out, "note: period %s not tracked, using %s\n", v.RequestedPeriod, v.Result.Period)
		}
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Period:\t%s\n", v.Result.Period)
	fmt.Fprintf(w, "Starting capital:\t%s\n", v.Display.StartingCapital)
	fmt.Fprintf(w, "Actor final value:\t%s\n", v.Display.ActorFinalValue)
	fmt.Fprintf(w, "Follower final value:\t%s\n", v.Display.FollowerFinalValue)
	fmt.Fprintf(w, "Return gap:\t%s\n", v.Display.ReturnGap)
	fmt.Fprintf(w, "Slippage cost:\t%s\n", v.Display.SlippageCost)
	fmt.Fprintf(w, "Delay cost:\t%s\n", v.Display.DelayCost)
	if !v.Attribution.Reconciles {
		fmt.Fprintf(w, "Unexplained gap:\t%s\n", format.SignedPercent(v.Attribution.UnattributedPct))
	}
	w.Flush()
}
