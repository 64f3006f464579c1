package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/wc26sim/wcdata/internal/config"
	"github.com/wc26sim/wcdata/internal/registry"
	"github.com/wc26sim/wcdata/internal/scrape"
	"github.com/wc26sim/wcdata/internal/source"
)

// --------------------------------------------------------------------------
// scrape command
// --------------------------------------------------------------------------

func scrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape source data into per-source JSON files",
	}
	cmd.AddCommand(scrapeEloCmd())
	cmd.AddCommand(scrapeFIFACmd())
	cmd.AddCommand(scrapeTransfermarktCmd())
	cmd.AddCommand(scrapeSofascoreCmd())
	cmd.AddCommand(scrapeGroupsCmd())
	cmd.AddCommand(scrapeScheduleCmd())
	return cmd
}

// scrapeEnv bundles what every scrape subcommand needs.
type scrapeEnv struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    *config.Config
	client *scrape.Client
	outDir string
}

func newScrapeEnv(outputDir string, verbose bool) *scrapeEnv {
	setVerbose(verbose)
	cfg := config.Load()
	dir := outputDir
	if dir == "" {
		dir = cfg.OutputDir
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	return &scrapeEnv{
		ctx:    ctx,
		cancel: cancel,
		cfg:    cfg,
		client: scrape.NewClient(cfg, logger),
		outDir: dir,
	}
}

func (e *scrapeEnv) registry(path string) (*registry.Registry, error) {
	return registry.Load(defaultPath(path, e.cfg.DataDir, config.MappingFile))
}

func scrapeEloCmd() *cobra.Command {
	var (
		outputDir   string
		mappingPath string
		verbose     bool
	)
	cmd := &cobra.Command{
		Use:   "elo",
		Short: "Scrape ELO ratings for every registered team",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newScrapeEnv(outputDir, verbose)
			defer env.cancel()
			reg, err := env.registry(mappingPath)
			if err != nil {
				return err
			}
			start := time.Now()
			doc, err := scrape.NewEloScraper(env.client, logger).Scrape(env.ctx, reg)
			if err != nil {
				return err
			}
			logger.Info("ELO scrape finished",
				"teams", len(doc.Teams), "duration", time.Since(start).Round(time.Second))
			return writeDocument(filepath.Join(env.outDir, config.EloFile), doc, "ELO ratings")
		},
	}
	addScrapeFlags(cmd, &outputDir, &mappingPath, &verbose)
	return cmd
}

func scrapeFIFACmd() *cobra.Command {
	var (
		outputDir   string
		mappingPath string
		verbose     bool
	)
	cmd := &cobra.Command{
		Use:   "fifa",
		Short: "Scrape the current FIFA world ranking",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newScrapeEnv(outputDir, verbose)
			defer env.cancel()
			start := time.Now()
			doc, err := scrape.NewFIFAScraper(env.client, logger).Scrape(env.ctx)
			if err != nil {
				return err
			}
			logger.Info("FIFA ranking scrape finished",
				"teams", len(doc.Teams), "duration", time.Since(start).Round(time.Second))
			return writeDocument(filepath.Join(env.outDir, config.FIFAFile), doc, "FIFA rankings")
		},
	}
	addScrapeFlags(cmd, &outputDir, &mappingPath, &verbose)
	return cmd
}

func scrapeTransfermarktCmd() *cobra.Command {
	var (
		outputDir   string
		mappingPath string
		verbose     bool
	)
	cmd := &cobra.Command{
		Use:   "transfermarkt",
		Short: "Scrape squad market values from Transfermarkt",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newScrapeEnv(outputDir, verbose)
			defer env.cancel()
			reg, err := env.registry(mappingPath)
			if err != nil {
				return err
			}
			start := time.Now()
			doc, err := scrape.NewTransfermarktScraper(env.client, logger).Scrape(env.ctx, reg)
			if err != nil {
				return err
			}
			logger.Info("Market value scrape finished",
				"teams", len(doc.Teams), "duration", time.Since(start).Round(time.Second))
			return writeDocument(filepath.Join(env.outDir, config.TransfermarktFile), doc, "market values")
		},
	}
	addScrapeFlags(cmd, &outputDir, &mappingPath, &verbose)
	return cmd
}

func scrapeSofascoreCmd() *cobra.Command {
	var (
		outputDir   string
		mappingPath string
		verbose     bool
	)
	cmd := &cobra.Command{
		Use:   "sofascore",
		Short: "Scrape recent-form scores from the Sofascore API",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newScrapeEnv(outputDir, verbose)
			defer env.cancel()
			reg, err := env.registry(mappingPath)
			if err != nil {
				return err
			}
			start := time.Now()
			doc, err := scrape.NewSofascoreScraper(env.client, logger).Scrape(env.ctx, reg)
			if err != nil {
				return err
			}
			logger.Info("Form scrape finished",
				"teams", len(doc.Teams), "duration", time.Since(start).Round(time.Second))
			return writeDocument(filepath.Join(env.outDir, config.SofascoreFile), doc, "form scores")
		},
	}
	addScrapeFlags(cmd, &outputDir, &mappingPath, &verbose)
	return cmd
}

func scrapeGroupsCmd() *cobra.Command {
	var (
		outputDir   string
		mappingPath string
		verbose     bool
	)
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Scrape the group draw, falling back to the registry draw",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newScrapeEnv(outputDir, verbose)
			defer env.cancel()

			// The mapping file carries the draw as a fallback when the
			// FIFA site cannot be parsed.
			fallback, err := source.LoadFile[struct {
				Groups map[string][]string `json:"groups"`
			}](defaultPath(mappingPath, env.cfg.DataDir, config.MappingFile), "team mapping")
			if err != nil {
				return err
			}

			doc, err := scrape.NewGroupsScraper(env.client, logger).Scrape(env.ctx, fallback.Groups)
			if err != nil {
				return err
			}
			return writeDocument(filepath.Join(env.outDir, config.GroupsFile), doc, "group draw")
		},
	}
	addScrapeFlags(cmd, &outputDir, &mappingPath, &verbose)
	return cmd
}

func scrapeScheduleCmd() *cobra.Command {
	var (
		outputDir string
		verbose   bool
	)
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate the static 104-match tournament schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			setVerbose(verbose)
			cfg := config.Load()
			dir := outputDir
			if dir == "" {
				dir = cfg.OutputDir
			}
			doc, err := scrape.NewScheduleBuilder(logger).Build()
			if err != nil {
				return err
			}
			return writeDocument(filepath.Join(dir, config.ScheduleFile), doc, "schedule")
		},
	}
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for scraper output")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	return cmd
}

func addScrapeFlags(cmd *cobra.Command, outputDir, mappingPath *string, verbose *bool) {
	cmd.Flags().StringVar(outputDir, "output-dir", "", "Directory for scraper output")
	cmd.Flags().StringVar(mappingPath, "mapping", "", "Path to team_mapping.json")
	cmd.Flags().BoolVarP(verbose, "verbose", "v", false, "Debug logging")
}
