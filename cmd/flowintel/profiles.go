package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/flowintel/flowintel/internal/app"
	"github.com/flowintel/flowintel/internal/config"
	"github.com/flowintel/flowintel/internal/core"
	"github.com/flowintel/flowintel/internal/profile"
	"github.com/flowintel/flowintel/internal/storage/archive"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Profile catalogue operations",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked profiles with their decision score",
	RunE:  runProfilesList,
}

var profilesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the built-in profiles as YAML documents",
	Long: `Write the built-in profiles as YAML documents, either into --dir or,
without it, into the configured localfs or s3 profile store.`,
	RunE: runProfilesExport,
}

var (
	listKind  string
	listQuery string
	listSort  string
	listLimit int

	exportDir   string
	exportForce bool
)

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesExportCmd)

	profilesListCmd.Flags().StringVar(&listKind, "kind", "", "filter by kind (actor, wallet)")
	profilesListCmd.Flags().StringVarP(&listQuery, "query", "q", "", "match id, label or address")
	profilesListCmd.Flags().StringVar(&listSort, "sort", "", "sort by confidence, label or score")
	profilesListCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum rows (0 for all)")

	profilesExportCmd.Flags().StringVar(&exportDir, "dir", "", "directory to write documents into")
	profilesExportCmd.Flags().BoolVar(&exportForce, "force", false, "overwrite documents that already exist")
}

func runProfilesList(cmd *cobra.Command, args []string) error {
	log := newLogger("")
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	kind := core.SubjectKind(strings.ToLower(listKind))
	if kind != "" && !kind.IsValid() {
		return fmt.Errorf("unknown kind %q", listKind)
	}

	repo, _, err := app.OpenRepository(cmd.Context(), cfg.Profiles, log)
	if err != nil {
		return fmt.Errorf("opening profiles: %w", err)
	}
	a := app.New(cfg, repo, log, nil)

	views, err := a.Profiles(cmd.Context(), profile.ListFilter{
		Kind:   kind,
		Query:  listQuery,
		SortBy: profile.SortField(listSort),
		Limit:  listLimit,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tKIND\tCONFIDENCE\tSCORE\tVERDICT\tPNL\tPERIODS")
	for _, v := range views {
		periods := make([]string, 0, len(v.Periods))
		for _, p := range v.AvailablePeriods() {
			periods = append(periods, string(p))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			v.ID, v.Label, v.Kind, v.Confidence,
			v.Decision.Score, v.Decision.Verdict, v.RealizedPnLFmt,
			strings.Join(periods, ","),
		)
	}
	return w.Flush()
}

func runProfilesExport(cmd *cobra.Command, args []string) error {
	log := newLogger("")
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	storage, prefix, err := exportTarget(cfg)
	if err != nil {
		return err
	}

	fixtures := profile.Fixtures()
	res, err := profile.Export(cmd.Context(), storage, prefix, fixtures, exportForce)
	if err != nil {
		return fmt.Errorf("exporting profiles: %w", err)
	}

	log.Info("profiles exported",
		zap.Int("written", len(res.Written)),
		zap.Int("skipped", len(res.Skipped)),
		zap.String("prefix", prefix),
	)
	out := cmd.OutOrStdout()
	for _, p := range res.Written {
		fmt.Fprintln(out, p)
	}
	for _, p := range res.Skipped {
		fmt.Fprintf(out, "%s (exists, use --force to overwrite)\n", p)
	}
	return nil
}

func exportTarget(cfg *config.Config) (archive.Storage, string, error) {
	if exportDir != "" {
		storage, err := archive.NewLocalFS(exportDir)
		if err != nil {
			return nil, "", err
		}
		return storage, "", nil
	}

	switch cfg.Profiles.Source {
	case config.SourceLocalFS, config.SourceS3:
		storage, err := app.OpenArchive(cfg.Profiles)
		if err != nil {
			return nil, "", err
		}
		return storage, cfg.Profiles.Prefix, nil
	default:
		return nil, "", fmt.Errorf("--dir is required when the profile source is %q", cfg.Profiles.Source)
	}
}
