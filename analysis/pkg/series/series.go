// Package series implements the transformations between a raw record list
// and the plottable daily series: daily aggregation, centered rolling
// average, and gap segmentation.
package series

import (
	"math"
	"sort"
	"time"

	"github.com/pyonkichi499/apple-health-export/analysis/defs"

	"github.com/montanaflynn/stats"
)

// Minimum number of values a rolling window must hold to emit a point.
const minWindowValues = 3

// AggregateDaily collapses records to exactly one point per calendar day
// present in the input, ascending by day.
func AggregateDaily(recs []*defs.Record, rule defs.AggRule) []defs.DailyPoint {
	buckets := make(map[time.Time][]float64)
	for _, rec := range recs {
		day := defs.Day(rec.Time)
		buckets[day] = append(buckets[day], rec.Value)
	}

	days := make([]time.Time, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	daily := make([]defs.DailyPoint, 0, len(days))
	for _, day := range days {
		values := buckets[day]
		daily = append(daily, defs.DailyPoint{
			Day:     day,
			Value:   aggregate(values, rule),
			Samples: len(values),
		})
	}
	return daily
}

func aggregate(values []float64, rule defs.AggRule) float64 {
	var v float64
	switch rule {
	case defs.AggSum:
		v, _ = stats.Sum(values)
	case defs.AggMax:
		v, _ = stats.Max(values)
	case defs.AggMin:
		v, _ = stats.Min(values)
	default:
		v, _ = stats.Mean(values)
	}
	return v
}

// Rolling computes a centered rolling average: for day i the window spans
// [i-window/2, i+window/2]. A point is emitted only when the window holds at
// least three values, and a series shorter than three days yields nothing.
func Rolling(daily []defs.DailyPoint, window int) []defs.DailyPoint {
	if len(daily) < minWindowValues {
		return nil
	}

	half := window / 2
	rolling := make([]defs.DailyPoint, 0, len(daily))
	for i := range daily {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half + 1
		if hi > len(daily) {
			hi = len(daily)
		}
		if hi-lo < minWindowValues {
			continue
		}

		values := make([]float64, 0, hi-lo)
		for _, dp := range daily[lo:hi] {
			values = append(values, dp.Value)
		}
		mean, _ := stats.Mean(values)
		rolling = append(rolling, defs.DailyPoint{
			Day:     daily[i].Day,
			Value:   mean,
			Samples: len(values),
		})
	}
	return rolling
}

// SplitOnGaps breaks a daily series into segments wherever consecutive
// points are more than maxGapDays apart, so the plotted line does not bridge
// long outages. Segments that end up with a single point are dropped.
func SplitOnGaps(daily []defs.DailyPoint, maxGapDays int) [][]defs.DailyPoint {
	if len(daily) == 0 {
		return nil
	}
	if len(daily) == 1 {
		return [][]defs.DailyPoint{daily}
	}

	var segments [][]defs.DailyPoint
	current := []defs.DailyPoint{daily[0]}
	for i := 1; i < len(daily); i++ {
		if DaysBetween(daily[i-1].Day, daily[i].Day) > maxGapDays {
			if len(current) > 1 {
				segments = append(segments, current)
			}
			current = []defs.DailyPoint{daily[i]}
			continue
		}
		current = append(current, daily[i])
	}
	if len(current) > 1 {
		segments = append(segments, current)
	}
	return segments
}

// DaysBetween counts calendar days from a to b, rounded to absorb DST
// offsets between midnights.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// FilterRange keeps points within [start, end]; a zero bound is open.
func FilterRange(daily []defs.DailyPoint, start, end time.Time) []defs.DailyPoint {
	out := make([]defs.DailyPoint, 0, len(daily))
	for _, dp := range daily {
		if !start.IsZero() && defs.CompareDays(dp.Day, start) < 0 {
			continue
		}
		if !end.IsZero() && defs.CompareDays(dp.Day, end) > 0 {
			continue
		}
		out = append(out, dp)
	}
	return out
}

// CommonPeriod returns the overlapping [start, end] of two daily series,
// and false when they do not overlap.
func CommonPeriod(a, b []defs.DailyPoint) (time.Time, time.Time, bool) {
	if len(a) == 0 || len(b) == 0 {
		return time.Time{}, time.Time{}, false
	}

	start := a[0].Day
	if b[0].Day.After(start) {
		start = b[0].Day
	}
	end := a[len(a)-1].Day
	if b[len(b)-1].Day.Before(end) {
		end = b[len(b)-1].Day
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// Values extracts the value column.
func Values(daily []defs.DailyPoint) []float64 {
	out := make([]float64, len(daily))
	for i, dp := range daily {
		out[i] = dp.Value
	}
	return out
}

// Days extracts the day column.
func Days(daily []defs.DailyPoint) []time.Time {
	out := make([]time.Time, len(daily))
	for i, dp := range daily {
		out[i] = dp.Day
	}
	return out
}
