package analysis

import (
	"fmt"

	"github.com/pyonkichi499/apple-health-export/analysis/defs"
	"github.com/pyonkichi499/apple-health-export/analysis/pkg/series"
	"github.com/pyonkichi499/apple-health-export/analysis/pkg/stats"

	"go.uber.org/zap"
)

// Correlate draws two metrics on one chart with separate axes, restricted
// to the period both metrics cover.
func (a *Analyzer) Correlate(primary, secondary defs.Metric) (string, error) {
	if primary.Derived == defs.DerivedPrediction || secondary.Derived == defs.DerivedPrediction {
		return "", fmt.Errorf("prediction metrics cannot be correlated")
	}

	pDaily, err := a.loadDaily(primary)
	if err != nil {
		return "", err
	}
	sDaily, err := a.loadDaily(secondary)
	if err != nil {
		return "", err
	}

	start, end, ok := series.CommonPeriod(pDaily, sDaily)
	if !ok {
		return "", fmt.Errorf("%s and %s have no overlapping period", primary.Name, secondary.Name)
	}
	a.Logger.Debug("found common period",
		zap.String("primary", primary.Name),
		zap.String("secondary", secondary.Name),
		zap.Time("start", start),
		zap.Time("end", end),
	)

	pWindow := a.rollingWindow(primary)
	primary.RollingWindow = pWindow
	sWindow := a.rollingWindow(secondary)
	secondary.RollingWindow = sWindow

	pDaily = series.FilterRange(pDaily, start, end)
	sDaily = series.FilterRange(sDaily, start, end)
	pRolling := series.FilterRange(series.Rolling(pDaily, pWindow), start, end)
	sRolling := series.FilterRange(series.Rolling(sDaily, sWindow), start, end)

	if len(pDaily) < a.Cfg.MinDataPoints || len(sDaily) < a.Cfg.MinDataPoints {
		return "", fmt.Errorf(
			"not enough overlapping data: %s has %d days, %s has %d days, need %d",
			primary.Name, len(pDaily), secondary.Name, len(sDaily), a.Cfg.MinDataPoints,
		)
	}

	if a.Cfg.PrintStats {
		writeReport(a.Out, primary, stats.Coverage(pDaily), stats.Summarize(pDaily),
			stats.SummarizeRolling(pRolling), pWindow)
		writeReport(a.Out, secondary, stats.Coverage(sDaily), stats.Summarize(sDaily),
			stats.SummarizeRolling(sRolling), sWindow)
	}

	if !a.Cfg.SaveCharts {
		return "", nil
	}

	gap := a.Cfg.GapThreshold
	return a.Renderer.DualAxis(primary, secondary,
		series.SplitOnGaps(pDaily, gap),
		series.SplitOnGaps(pRolling, gap),
		series.SplitOnGaps(sDaily, gap),
		series.SplitOnGaps(sRolling, gap),
		start, end,
	)
}
