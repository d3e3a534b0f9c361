package analysis

import (
	"fmt"
	"os"
	"time"

	"github.com/pyonkichi499/apple-health-export/analysis/defs"
	"github.com/pyonkichi499/apple-health-export/analysis/pkg/healthcsv"
	"github.com/pyonkichi499/apple-health-export/analysis/pkg/render"

	"go.uber.org/zap"
)

// Options selects what a run analyzes.
type Options struct {
	Metrics   []string
	Secondary string // when set, the first metric is charted against it on a dual axis
}

// Run analyzes each requested metric and reports a final tally. It fails if
// any metric failed.
func Run(cfg defs.Config, acfg defs.AnalysisConfig, opts Options) error {
	cfg = cfg.WithDefaults()

	loc := time.Local
	if cfg.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return fmt.Errorf("unable to load timezone: %w", err)
		}
	}

	a := &Analyzer{
		Source:   healthcsv.New(cfg.Logger, loc),
		Renderer: render.New(cfg.ResultsDir, cfg.Logger),
		Out:      os.Stdout,
		Logger:   cfg.Logger,
		DataDir:  cfg.DataDir,
		Cfg:      acfg,
	}

	if opts.Secondary != "" {
		return runCorrelation(a, opts)
	}

	failed := 0
	for _, name := range opts.Metrics {
		if err := runMetric(a, name); err != nil {
			cfg.Logger.Error("analysis failed", zap.String("metric", name), zap.Error(err))
			fmt.Fprintf(a.Out, "%s: %v\n", name, err)
			failed++
			continue
		}
	}

	fmt.Fprintf(a.Out, "\n%d/%d analyses completed\n", len(opts.Metrics)-failed, len(opts.Metrics))
	if failed > 0 {
		return fmt.Errorf("%d of %d analyses failed", failed, len(opts.Metrics))
	}
	return nil
}

func runMetric(a *Analyzer, name string) error {
	m, err := defs.MetricByName(name)
	if err != nil {
		return err
	}

	if m.Derived == defs.DerivedPrediction {
		res, err := a.Predict(m)
		if err != nil {
			return err
		}
		if res.ChartPath != "" {
			fmt.Fprintf(a.Out, "Chart: %s\n", res.ChartPath)
		}
		return nil
	}

	res, err := a.Analyze(m)
	if err != nil {
		return err
	}
	if res.ChartPath != "" {
		fmt.Fprintf(a.Out, "Chart: %s\n", res.ChartPath)
	}
	return nil
}

func runCorrelation(a *Analyzer, opts Options) error {
	if len(opts.Metrics) != 1 {
		return fmt.Errorf("dual-axis analysis takes exactly one primary metric")
	}
	primary, err := defs.MetricByName(opts.Metrics[0])
	if err != nil {
		return err
	}
	secondary, err := defs.MetricByName(opts.Secondary)
	if err != nil {
		return err
	}

	path, err := a.Correlate(primary, secondary)
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintf(a.Out, "Chart: %s\n", path)
	}
	return nil
}
