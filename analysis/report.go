package analysis

import (
	"fmt"
	"io"
	"strings"

	"github.com/pyonkichi499/apple-health-export/analysis/defs"
	"github.com/pyonkichi499/apple-health-export/analysis/pkg/stats"
)

// FormatValue renders a value with the metric's unit and precision. Count
// style units are always whole numbers regardless of configured precision.
func FormatValue(v float64, m defs.Metric, showSign bool) string {
	decimals := m.DecimalPlaces
	switch m.Unit {
	case "kcal", "steps":
		decimals = 0
	}

	s := fmt.Sprintf("%.*f", decimals, v)
	if showSign && v >= 0 {
		s = "+" + s
	}
	if m.Unit != "" {
		s += " " + m.Unit
	}
	return s
}

func writeReport(
	w io.Writer,
	m defs.Metric,
	cov stats.CoverageStats,
	sum stats.Summary,
	roll *stats.RollingSummary,
	window int,
) {
	fmt.Fprintf(w, "\n%s statistics\n", m.Title)
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "Period: %s to %s (%d days)\n",
		cov.Start.Format(defs.DayFormat), cov.End.Format(defs.DayFormat), cov.TotalDays)
	fmt.Fprintf(w, "Recorded days: %d (coverage %.1f%%)\n", cov.DataDays, cov.Rate)

	fmt.Fprintf(w, "\nBasic statistics\n")
	fmt.Fprintf(w, "  First:   %s\n", FormatValue(sum.First, m, false))
	fmt.Fprintf(w, "  Last:    %s\n", FormatValue(sum.Last, m, false))
	fmt.Fprintf(w, "  Change:  %s\n", FormatValue(sum.TotalChange, m, true))
	fmt.Fprintf(w, "  Mean:    %s\n", FormatValue(sum.Mean, m, false))
	fmt.Fprintf(w, "  Median:  %s\n", FormatValue(sum.Median, m, false))
	fmt.Fprintf(w, "  Min:     %s\n", FormatValue(sum.Min, m, false))
	fmt.Fprintf(w, "  Max:     %s\n", FormatValue(sum.Max, m, false))
	fmt.Fprintf(w, "  Std dev: %s\n", FormatValue(sum.StdDev, m, false))
	fmt.Fprintf(w, "  Range:   %s\n", FormatValue(sum.Range, m, false))

	if roll != nil {
		fmt.Fprintf(w, "\n%d-day rolling average\n", window)
		fmt.Fprintf(w, "  Start:   %s\n", FormatValue(roll.Start, m, false))
		fmt.Fprintf(w, "  End:     %s\n", FormatValue(roll.End, m, false))
		fmt.Fprintf(w, "  Change:  %s\n", FormatValue(roll.Change, m, true))
	}
}

// ListMetrics prints the registry grouped by category.
func ListMetrics(w io.Writer) {
	fmt.Fprintln(w, "Available metrics:")
	for _, cat := range defs.Categories {
		fmt.Fprintf(w, "\n[%s]\n", cat.Name)
		for _, name := range cat.Metrics {
			m, err := defs.MetricByName(name)
			if err != nil {
				continue
			}
			unit := m.Unit
			if unit == "" {
				unit = "-"
			}
			fmt.Fprintf(w, "  %-20s %s (%s)\n", name, m.Title, unit)
		}
	}
}
