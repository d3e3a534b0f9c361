package analysis

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/pyonkichi499/apple-health-export/analysis/defs"
	"github.com/pyonkichi499/apple-health-export/analysis/pkg/series"
	"github.com/pyonkichi499/apple-health-export/analysis/pkg/stats"

	mstats "github.com/montanaflynn/stats"
	"go.uber.org/zap"
)

// PredictionResult compares recorded weight against the theoretical weight
// implied by the cumulative calorie balance.
type PredictionResult struct {
	Metric      defs.Metric
	Actual      []defs.DailyPoint
	Theoretical []defs.DailyPoint
	Errors      []float64 // actual minus theoretical, per day
	MeanError   float64
	MaxError    float64
	MinError    float64
	ChartPath   string
}

// Predict builds the weight prediction analysis: theoretical weight starts
// at the first recorded weight and moves by cumulative balance divided by
// the energy equivalent of a kilogram. Only days where weight and all three
// calorie components exist participate.
func (a *Analyzer) Predict(m defs.Metric) (*PredictionResult, error) {
	if m.Derived != defs.DerivedPrediction {
		return nil, fmt.Errorf("metric %s is not a prediction metric", m.Name)
	}

	daily := make(map[string]map[time.Time]float64, len(m.Components))
	for name, file := range m.Components {
		rule := defs.AggSum
		if name == "weight" {
			rule = defs.AggMean
		}
		recs, err := a.Source.Records(filepath.Join(a.DataDir, file), a.Cfg.Start, a.Cfg.End)
		if err != nil {
			return nil, fmt.Errorf("unable to load %s component: %w", name, err)
		}
		daily[name] = byDay(series.AggregateDaily(recs, rule))
	}

	days := commonDays(daily)
	if len(days) == 0 {
		return nil, fmt.Errorf("no days where weight and calorie data overlap")
	}

	initial := daily["weight"][days[0]]
	actual := make([]defs.DailyPoint, 0, len(days))
	theoretical := make([]defs.DailyPoint, 0, len(days))
	errors := make([]float64, 0, len(days))

	var cumulative float64
	for _, day := range days {
		weight := daily["weight"][day]
		balance := daily["intake"][day] - daily["basal"][day] - daily["active"][day]
		cumulative += balance
		theo := initial + cumulative/defs.KcalPerKilogram

		actual = append(actual, defs.DailyPoint{Day: day, Value: weight, Samples: 1})
		theoretical = append(theoretical, defs.DailyPoint{Day: day, Value: theo, Samples: 1})
		errors = append(errors, weight-theo)
	}

	meanErr, _ := mstats.Mean(errors)
	maxErr, _ := mstats.Max(errors)
	minErr, _ := mstats.Min(errors)

	a.Logger.Debug("built weight prediction",
		zap.Int("days", len(days)),
		zap.Float64("initialWeight", initial),
		zap.Float64("meanError", meanErr),
	)

	res := &PredictionResult{
		Metric:      m,
		Actual:      actual,
		Theoretical: theoretical,
		Errors:      errors,
		MeanError:   meanErr,
		MaxError:    maxErr,
		MinError:    minErr,
	}

	window := a.rollingWindow(m)
	m.RollingWindow = window

	if a.Cfg.PrintStats {
		a.printPredictionReport(m, res)
	}

	if a.Cfg.SaveCharts {
		gap := a.Cfg.GapThreshold
		path, err := a.Renderer.Prediction(m,
			series.SplitOnGaps(actual, gap),
			series.SplitOnGaps(theoretical, gap),
			series.SplitOnGaps(series.Rolling(actual, window), gap),
			series.SplitOnGaps(series.Rolling(theoretical, window), gap),
			days[0], days[len(days)-1],
		)
		if err != nil {
			return nil, fmt.Errorf("unable to render %s: %w", m.Name, err)
		}
		res.ChartPath = path
	}

	return res, nil
}

func (a *Analyzer) printPredictionReport(m defs.Metric, res *PredictionResult) {
	actual := stats.Summarize(res.Actual)
	theo := stats.Summarize(res.Theoretical)

	fmt.Fprintf(a.Out, "\nWeight prediction (%d days)\n", len(res.Actual))
	fmt.Fprintf(a.Out, "Actual:      %s -> %s (%s)\n",
		FormatValue(actual.First, m, false),
		FormatValue(actual.Last, m, false),
		FormatValue(actual.TotalChange, m, true))
	fmt.Fprintf(a.Out, "Theoretical: %s -> %s (%s)\n",
		FormatValue(theo.First, m, false),
		FormatValue(theo.Last, m, false),
		FormatValue(theo.TotalChange, m, true))
	fmt.Fprintf(a.Out, "Error: mean %s, max %s, min %s\n",
		FormatValue(res.MeanError, m, true),
		FormatValue(res.MaxError, m, true),
		FormatValue(res.MinError, m, true))
}

// commonDays intersects the day sets of every component, ascending.
func commonDays(daily map[string]map[time.Time]float64) []time.Time {
	var days []time.Time
	var smallest map[time.Time]float64
	for _, d := range daily {
		if smallest == nil || len(d) < len(smallest) {
			smallest = d
		}
	}

	for day := range smallest {
		shared := true
		for _, d := range daily {
			if _, ok := d[day]; !ok {
				shared = false
				break
			}
		}
		if shared {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
