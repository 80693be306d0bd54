package capharvest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gridwatch-in/capharvest/pkg/capharvest/aggregate"
	"github.com/gridwatch-in/capharvest/pkg/capharvest/fetch"
	"github.com/gridwatch-in/capharvest/pkg/capharvest/models"
	"github.com/gridwatch-in/capharvest/pkg/capharvest/output"
	"github.com/gridwatch-in/capharvest/pkg/capharvest/parser"
)

// Stats summarizes one harvest run.
type Stats struct {
	// MonthsProcessed counts months attempted, available or not.
	MonthsProcessed int
	// MonthsWithData counts months that contributed records.
	MonthsWithData int
	// Records is the size of the master table.
	Records int
}

// Pipeline runs the month/region harvest loops. Months are processed
// strictly in calendar order and regions in fixed order within a
// month; the roll-up gate and master-table ordering depend on
// deterministic completion order.
type Pipeline struct {
	cfg    Config
	client *fetch.Client
	logger *slog.Logger
}

// New creates a Pipeline with the given configuration.
func New(cfg Config) *Pipeline {
	cfg.defaults()
	return &Pipeline{
		cfg:    cfg,
		logger: cfg.Logger,
		client: fetch.NewClient(cfg.BaseURL,
			fetch.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.RequestTimeout)}),
			fetch.WithRetry(cfg.RetryAttempts, time.Duration(cfg.RetryDelay)),
			fetch.WithLogger(cfg.Logger),
		),
	}
}

// Run harvests the configured period and returns the master table.
// No failure at region or month granularity aborts the run; the only
// fatal error is failing to create the working directory up front.
func (p *Pipeline) Run(ctx context.Context) (models.Table, Stats, error) {
	var stats Stats

	if err := os.MkdirAll(p.cfg.WorkDir, 0o755); err != nil {
		return nil, stats, fmt.Errorf("create workdir: %w", err)
	}

	var master models.Table
	for year, month := range p.months() {
		p.logger.Info("processing month", "year", year, "month", month.String())

		monthly := p.processMonth(ctx, year, month)
		stats.MonthsProcessed++

		if len(monthly) > 0 {
			master = append(master, monthly...)
			stats.MonthsWithData++
			p.logger.Info("month processed", "year", year, "month", month.String(), "records", len(monthly))
		} else {
			p.logger.Info("no data for month", "year", year, "month", month.String())
		}

		if p.cfg.MonthPause > 0 {
			select {
			case <-time.After(time.Duration(p.cfg.MonthPause)):
			case <-ctx.Done():
				stats.Records = len(master)
				return master, stats, ctx.Err()
			}
		}
	}

	stats.Records = len(master)
	for _, s := range output.Summarize(master) {
		p.logger.Info("region summary", "region", s.Region, "records", s.Records, "total_mw", s.TotalMW)
	}
	return master, stats, nil
}

// months iterates the configured (year, month) range inclusively, in
// calendar order.
func (p *Pipeline) months() func(yield func(int, time.Month) bool) {
	return func(yield func(int, time.Month) bool) {
		cur := time.Date(p.cfg.StartYear, time.Month(p.cfg.StartMonth), 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(p.cfg.EndYear, time.Month(p.cfg.EndMonth), 1, 0, 0, 0, 0, time.UTC)
		for !cur.After(end) {
			if !yield(cur.Year(), cur.Month()) {
				return
			}
			cur = cur.AddDate(0, 1, 0)
		}
	}
}

// processMonth fetches and extracts all regions for one month. An
// unexpected failure is contained here: the month yields no records
// and the range continues.
func (p *Pipeline) processMonth(ctx context.Context, year int, month time.Month) (monthly models.Table) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("month processing failed", "year", year, "month", month.String(), "panic", r)
			monthly = nil
		}
	}()

	if !p.client.Available(ctx, year, month) {
		p.logger.Info("reports not published, skipping month", "year", year, "month", month.String())
		return nil
	}

	results := make([]aggregate.RegionResult, 0, len(models.Regions))
	for _, region := range models.Regions {
		results = append(results, p.processRegion(ctx, year, month, region))
	}
	return aggregate.Month(results)
}

// processRegion downloads, parses, and cleans up one region file. A
// failed region is reported back as unfetched or empty, never as an
// error that would stop the month.
func (p *Pipeline) processRegion(ctx context.Context, year int, month time.Month, region string) aggregate.RegionResult {
	result := aggregate.RegionResult{Region: region}

	url := p.client.URL(region, year, month)
	dest := filepath.Join(p.cfg.WorkDir, fetch.FileName(region, year, month))

	if err := p.client.Download(ctx, url, dest); err != nil {
		p.logger.Warn("region download failed", "region", region, "err", err)
		return result
	}
	result.Fetched = true
	// Downloaded artifacts are transient; delete on every exit path
	// to bound disk usage.
	defer os.Remove(dest)

	grid, err := parser.LoadGrid(dest)
	if err != nil {
		p.logger.Warn("region file unreadable", "region", region, "err", err)
		return result
	}

	cols := parser.LocateHeaders(grid)
	result.Records = parser.ExtractRecords(grid, cols, models.ReportDate(year, month), region)
	p.logger.Info("region extracted", "region", region, "records", len(result.Records))
	return result
}
