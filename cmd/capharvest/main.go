// Package main provides the CLI entry point for capharvest.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridwatch-in/capharvest/pkg/capharvest"
	"github.com/gridwatch-in/capharvest/pkg/capharvest/output"
)

var (
	configPath string
	start      string
	end        string
	workDir    string
	outputPath string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "capharvest",
		Short: "Harvest monthly installed-capacity reports into one CSV",
		Long: `capharvest downloads the regulator's monthly per-region
installed-capacity spreadsheets for a year/month range, normalizes
their drifting layouts into a uniform record schema, and writes one
flat time-series CSV.`,
		Args: cobra.NoArgs,
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (yaml)")
	rootCmd.Flags().StringVar(&start, "start", "", "Start of the period, YYYY-MM")
	rootCmd.Flags().StringVar(&end, "end", "", "End of the period, YYYY-MM")
	rootCmd.Flags().StringVarP(&workDir, "workdir", "w", "", "Working directory for transient downloads")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output CSV path (default: workdir/complete_capacity_data_{start}_{end}.csv)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := capharvest.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if start != "" {
		if cfg.StartYear, cfg.StartMonth, err = parsePeriod(start); err != nil {
			return err
		}
	}
	if end != "" {
		if cfg.EndYear, cfg.EndMonth, err = parsePeriod(end); err != nil {
			return err
		}
	}
	if workDir != "" {
		cfg.WorkDir = workDir
	}
	if outputPath != "" {
		cfg.Output = outputPath
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	table, stats, err := capharvest.New(cfg).Run(context.Background())
	if err != nil {
		return err
	}

	cfg.Logger.Info("harvest complete",
		"months_processed", stats.MonthsProcessed,
		"months_with_data", stats.MonthsWithData,
		"records", stats.Records)

	if len(table) == 0 {
		return fmt.Errorf("no data harvested for %d-%02d..%d-%02d",
			cfg.StartYear, cfg.StartMonth, cfg.EndYear, cfg.EndMonth)
	}

	dest := cfg.Output
	if dest == "" {
		dest = filepath.Join(cfg.WorkDir, output.FileName(cfg.StartYear, cfg.EndYear))
	}
	if err := output.WriteCSV(dest, table); err != nil {
		return err
	}
	cfg.Logger.Info("output written", "path", dest)
	return nil
}

// parsePeriod parses a YYYY-MM flag value.
func parsePeriod(s string) (int, int, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid period %q (want YYYY-MM)", s)
	}
	return t.Year(), int(t.Month()), nil
}
