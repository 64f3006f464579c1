// Command wcdata is the World Cup 2026 data pipeline CLI.
//
// Usage:
//
//	wcdata scrape elo --output-dir output
//	wcdata scrape fifa
//	wcdata scrape transfermarkt
//	wcdata scrape sofascore
//	wcdata scrape groups
//	wcdata scrape schedule
//	wcdata merge --output output/teams.json
//	wcdata validate output/teams.json
//	wcdata serve --data output/teams.json
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wc26sim/wcdata/internal/config"
	"github.com/wc26sim/wcdata/internal/merge"
	"github.com/wc26sim/wcdata/internal/registry"
	"github.com/wc26sim/wcdata/internal/source"
	"github.com/wc26sim/wcdata/internal/validate"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "wcdata",
		Short:         "World Cup 2026 data pipeline CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(scrapeCmd())
	root.AddCommand(mergeCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		logger.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func setVerbose(verbose bool) {
	cfg := config.Load()
	if verbose || cfg.Debug {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	slog.SetDefault(logger)
}

// --------------------------------------------------------------------------
// merge command
// --------------------------------------------------------------------------

func mergeCmd() *cobra.Command {
	var (
		mappingPath       string
		eloPath           string
		transfermarktPath string
		fifaPath          string
		groupsPath        string
		outputPath        string
		allowTBDDefaults  bool
		allowMissingFIFA  bool
		verbose           bool
	)

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge scraped source files into a validated teams.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			setVerbose(verbose)
			cfg := config.Load()
			dir := cfg.OutputDir

			reg, err := registry.Load(defaultPath(mappingPath, cfg.DataDir, config.MappingFile))
			if err != nil {
				return err
			}
			elo, err := source.LoadFile[source.EloDocument](
				defaultPath(eloPath, dir, config.EloFile), "ELO ratings")
			if err != nil {
				return err
			}
			values, err := source.LoadFile[source.MarketValueDocument](
				defaultPath(transfermarktPath, dir, config.TransfermarktFile), "market values")
			if err != nil {
				return err
			}
			rankings, err := source.LoadFile[source.RankingDocument](
				defaultPath(fifaPath, dir, config.FIFAFile), "FIFA rankings")
			if err != nil {
				return err
			}
			groups, err := source.LoadFile[source.GroupsDocument](
				defaultPath(groupsPath, dir, config.GroupsFile), "group draw")
			if err != nil {
				return err
			}

			in := merge.Inputs{
				Registry:     reg,
				Elo:          elo,
				MarketValues: values,
				Rankings:     rankings,
				Groups:       groups,
			}
			opts := merge.Options{
				AllowTBDDefaults: allowTBDDefaults,
				AllowMissingFIFA: allowMissingFIFA,
			}

			data, res := merge.Run(in, opts, logger)
			for _, w := range res.Warnings {
				logger.Warn("merge warning", "warning", w)
			}
			if data == nil {
				for _, e := range res.Errors {
					logger.Error("merge error", "error", e)
				}
				return fmt.Errorf("merge failed with %d errors, no output written", len(res.Errors))
			}

			encoded, err := data.Encode()
			if err != nil {
				return err
			}
			out := defaultPath(outputPath, dir, config.TeamsFile)
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
			if err := os.WriteFile(out, encoded, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			stats := merge.Describe(data)
			logger.Info("Merge finished", "output", out, "summary", res.Summary())
			logger.Info("Dataset summary",
				"avg_elo", fmt.Sprintf("%.1f", stats.AverageElo),
				"total_market_value_millions", fmt.Sprintf("%.1f", stats.TotalMarketValue),
				"confederations", stats.ConfederationBreakdown())
			return nil
		},
	}

	cmd.Flags().StringVar(&mappingPath, "mapping", "", "Path to team_mapping.json")
	cmd.Flags().StringVar(&eloPath, "elo", "", "Path to elo_ratings.json")
	cmd.Flags().StringVar(&transfermarktPath, "transfermarkt", "", "Path to transfermarkt_values.json")
	cmd.Flags().StringVar(&fifaPath, "fifa", "", "Path to fifa_rankings.json")
	cmd.Flags().StringVar(&groupsPath, "groups", "", "Path to groups.json")
	cmd.Flags().StringVar(&outputPath, "output", "", "Path for merged teams.json")
	cmd.Flags().BoolVar(&allowTBDDefaults, "allow-tbd-defaults", false, "Substitute defaults for undecided playoff slots")
	cmd.Flags().BoolVar(&allowMissingFIFA, "allow-missing-fifa", false, "Estimate FIFA rankings from ELO where missing")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	return cmd
}

// --------------------------------------------------------------------------
// validate command
// --------------------------------------------------------------------------

func validateCmd() *cobra.Command {
	var (
		quiet   bool
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Run the full validation battery against a teams.json",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			path := filepath.Join(cfg.OutputDir, config.TeamsFile)
			if len(args) == 1 {
				path = args[0]
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			report, err := validate.Run(raw)
			if err != nil {
				return err
			}

			if !quiet {
				for _, check := range report.Checks {
					status := "PASS"
					if !check.OK {
						status = "FAIL"
					}
					line := fmt.Sprintf("[%s] %s", status, check.Name)
					if check.Detail != "" && !check.OK {
						line += ": " + check.Detail
					}
					fmt.Println(line)
				}
			}
			if summary || !quiet {
				fmt.Printf("%d/%d checks passed\n", report.PassedCount(), len(report.Checks))
			}

			if !report.Valid() {
				return fmt.Errorf("%s failed validation", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress per-check output")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print the pass count even with --quiet")
	return cmd
}

func defaultPath(explicit, dir, name string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(dir, name)
}

func writeDocument(path string, v any, what string) error {
	if err := source.WriteFile(path, v); err != nil {
		return err
	}
	logger.Info("Wrote "+what, "path", path)
	return nil
}
