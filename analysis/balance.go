package analysis

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/pyonkichi499/apple-health-export/analysis/defs"
	"github.com/pyonkichi499/apple-health-export/analysis/pkg/series"
)

// balanceDaily derives the calorie balance series: intake minus basal minus
// active burn, for every day where all three components were recorded.
func (a *Analyzer) balanceDaily(m defs.Metric) ([]defs.DailyPoint, error) {
	comps := make(map[string][]defs.DailyPoint, len(m.Components))
	for name, file := range m.Components {
		recs, err := a.Source.Records(filepath.Join(a.DataDir, file), a.Cfg.Start, a.Cfg.End)
		if err != nil {
			return nil, fmt.Errorf("unable to load %s component: %w", name, err)
		}
		comps[name] = series.AggregateDaily(recs, defs.AggSum)
	}

	daily := combineBalance(comps["intake"], comps["basal"], comps["active"])
	if len(daily) == 0 {
		return nil, fmt.Errorf("no days with complete calorie data in the requested range")
	}
	return daily, nil
}

func combineBalance(intake, basal, active []defs.DailyPoint) []defs.DailyPoint {
	basalByDay := byDay(basal)
	activeByDay := byDay(active)

	var daily []defs.DailyPoint
	for _, in := range intake {
		b, okB := basalByDay[in.Day]
		ac, okA := activeByDay[in.Day]
		if !okB || !okA {
			continue
		}
		daily = append(daily, defs.DailyPoint{
			Day:     in.Day,
			Value:   in.Value - b - ac,
			Samples: 1,
		})
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Day.Before(daily[j].Day) })
	return daily
}

func byDay(daily []defs.DailyPoint) map[time.Time]float64 {
	m := make(map[time.Time]float64, len(daily))
	for _, dp := range daily {
		m[dp.Day] = dp.Value
	}
	return m
}
