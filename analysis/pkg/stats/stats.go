// Package stats computes the descriptive statistics printed alongside each
// chart.
package stats

import (
	"time"

	"github.com/pyonkichi499/apple-health-export/analysis/defs"
	"github.com/pyonkichi499/apple-health-export/analysis/pkg/series"

	"github.com/montanaflynn/stats"
)

type Summary struct {
	Count       int
	Mean        float64
	Median      float64
	Min         float64
	Max         float64
	StdDev      float64
	Range       float64
	First       float64
	Last        float64
	TotalChange float64
}

func Summarize(daily []defs.DailyPoint) Summary {
	if len(daily) == 0 {
		return Summary{}
	}

	values := series.Values(daily)
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	// Sample deviation, zero for a single observation.
	var dev float64
	if len(values) > 1 {
		dev, _ = stats.StandardDeviationSample(values)
	}

	return Summary{
		Count:       len(values),
		Mean:        mean,
		Median:      median,
		Min:         min,
		Max:         max,
		StdDev:      dev,
		Range:       max - min,
		First:       values[0],
		Last:        values[len(values)-1],
		TotalChange: values[len(values)-1] - values[0],
	}
}

type CoverageStats struct {
	Start     time.Time
	End       time.Time
	TotalDays int
	DataDays  int
	Rate      float64 // percent of spanned days with data
}

func Coverage(daily []defs.DailyPoint) CoverageStats {
	if len(daily) == 0 {
		return CoverageStats{}
	}

	start := daily[0].Day
	end := daily[len(daily)-1].Day
	total := series.DaysBetween(start, end) + 1
	return CoverageStats{
		Start:     start,
		End:       end,
		TotalDays: total,
		DataDays:  len(daily),
		Rate:      float64(len(daily)) / float64(total) * 100,
	}
}

type RollingSummary struct {
	Start  float64
	End    float64
	Change float64
}

func SummarizeRolling(rolling []defs.DailyPoint) *RollingSummary {
	if len(rolling) == 0 {
		return nil
	}
	first := rolling[0].Value
	last := rolling[len(rolling)-1].Value
	return &RollingSummary{Start: first, End: last, Change: last - first}
}
