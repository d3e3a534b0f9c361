// Package analysis wires the CSV source, series transforms, statistics, and
// chart renderer into per-metric pipelines.
package analysis

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pyonkichi499/apple-health-export/analysis/defs"
	"github.com/pyonkichi499/apple-health-export/analysis/pkg/healthcsv"
	"github.com/pyonkichi499/apple-health-export/analysis/pkg/render"
	"github.com/pyonkichi499/apple-health-export/analysis/pkg/series"
	"github.com/pyonkichi499/apple-health-export/analysis/pkg/stats"

	"go.uber.org/zap"
)

type Analyzer struct {
	Source   healthcsv.Source
	Renderer *render.Renderer
	Out      io.Writer

	Logger  *zap.Logger
	DataDir string
	Cfg     defs.AnalysisConfig
}

// Result is what one metric pipeline produces; the raw records are gone by
// the time it exists.
type Result struct {
	Metric    defs.Metric
	Daily     []defs.DailyPoint
	Rolling   []defs.DailyPoint
	Summary   stats.Summary
	Coverage  stats.CoverageStats
	ChartPath string
}

// Analyze runs the full pipeline for one metric: load, aggregate to daily,
// roll, summarize, report, render.
func (a *Analyzer) Analyze(m defs.Metric) (*Result, error) {
	if m.Derived == defs.DerivedPrediction {
		return nil, fmt.Errorf("metric %s requires the prediction pipeline", m.Name)
	}

	daily, err := a.loadDaily(m)
	if err != nil {
		return nil, err
	}
	if len(daily) < a.Cfg.MinDataPoints {
		return nil, fmt.Errorf(
			"not enough data for %s: %d days, need %d",
			m.Name, len(daily), a.Cfg.MinDataPoints,
		)
	}

	window := a.rollingWindow(m)
	m.RollingWindow = window
	rolling := series.Rolling(daily, window)

	sum := stats.Summarize(daily)
	cov := stats.Coverage(daily)
	roll := stats.SummarizeRolling(rolling)

	a.Logger.Debug("analyzed metric",
		zap.String("metric", m.Name),
		zap.Int("days", len(daily)),
		zap.Int("rollingDays", len(rolling)),
	)

	if a.Cfg.PrintStats {
		writeReport(a.Out, m, cov, sum, roll, window)
	}

	res := &Result{
		Metric:   m,
		Daily:    daily,
		Rolling:  rolling,
		Summary:  sum,
		Coverage: cov,
	}

	if a.Cfg.SaveCharts {
		dailySegs := series.SplitOnGaps(daily, a.Cfg.GapThreshold)
		rollingSegs := series.SplitOnGaps(rolling, a.Cfg.GapThreshold)
		path, err := a.Renderer.Metric(m, dailySegs, rollingSegs, cov.Start, cov.End)
		if err != nil {
			return nil, fmt.Errorf("unable to render %s: %w", m.Name, err)
		}
		res.ChartPath = path
	}

	return res, nil
}

// loadDaily produces the daily series for a metric, derived or not.
func (a *Analyzer) loadDaily(m defs.Metric) ([]defs.DailyPoint, error) {
	if m.Derived == defs.DerivedBalance {
		return a.balanceDaily(m)
	}

	recs, err := a.Source.Records(filepath.Join(a.DataDir, m.File), a.Cfg.Start, a.Cfg.End)
	if err != nil {
		return nil, fmt.Errorf("unable to load %s: %w", m.Name, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("no %s records in the requested range", m.Name)
	}
	return series.AggregateDaily(recs, m.Aggregation), nil
}

// rollingWindow resolves the window: metric override first, then the run
// configuration.
func (a *Analyzer) rollingWindow(m defs.Metric) int {
	if m.RollingWindow != 0 && m.RollingWindow != defs.DefaultRollingWindow {
		return m.RollingWindow
	}
	if a.Cfg.RollingWindow != 0 {
		return a.Cfg.RollingWindow
	}
	return defs.DefaultRollingWindow
}
