// Package render draws the daily/rolling chart layers to PNG files using
// go-chart.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pyonkichi499/apple-health-export/analysis/defs"
	"github.com/pyonkichi499/apple-health-export/analysis/pkg/series"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.uber.org/zap"
)

const (
	chartWidth  = 1500
	chartHeight = 800

	dailyStrokeWidth   = 1.5
	rollingStrokeWidth = 3.0
	dotWidth           = 2.5

	axisDateFormat = "2006-01"
	fileDateFormat = "20060102"
)

// Dual-axis charts repaint both metrics in a fixed warm/cool split so the
// two scales stay readable regardless of the metrics' own colors.
const (
	warmDaily   = "FF6B35"
	warmRolling = "E55100"
	coolDaily   = "2E86AB"
	coolRolling = "0077B6"
)

type Renderer struct {
	OutDir string
	Logger *zap.Logger
}

func New(outDir string, logger *zap.Logger) *Renderer {
	return &Renderer{OutDir: outDir, Logger: logger}
}

// Metric renders the standard single-metric chart: one thin dotted line per
// daily segment and one thick line per rolling segment.
func (r *Renderer) Metric(
	m defs.Metric,
	dailySegs, rollingSegs [][]defs.DailyPoint,
	start, end time.Time,
) (string, error) {
	var ss []chart.Series
	ss = appendLineSegments(ss, dailySegs, m.Title+" (daily)", lineStyle(m.ChartColor, dailyStrokeWidth, true))
	ss = appendLineSegments(ss, rollingSegs,
		fmt.Sprintf("%d-day average", m.RollingWindow),
		lineStyle(m.RollingColor, rollingStrokeWidth, false))
	if len(ss) == 0 {
		return "", fmt.Errorf("no drawable segments for %s", m.Name)
	}

	title := fmt.Sprintf("%s (%s to %s)",
		m.Title, start.Format(defs.DayFormat), end.Format(defs.DayFormat))
	ch := chart.Chart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      chart.XAxis{ValueFormatter: chart.TimeValueFormatterWithFormat(axisDateFormat)},
		YAxis:      chart.YAxis{Name: m.YLabel},
		Series:     ss,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	name := fmt.Sprintf("%s_%s.png", m.Name, time.Now().Format(fileDateFormat))
	return r.save(ch, name)
}

// DualAxis renders two metrics against separate Y axes over their common
// period: daily values as scatter dots, rolling averages as lines.
func (r *Renderer) DualAxis(
	primary, secondary defs.Metric,
	pDaily, pRolling, sDaily, sRolling [][]defs.DailyPoint,
	start, end time.Time,
) (string, error) {
	var ss []chart.Series
	ss = appendLineSegments(ss, pDaily, primary.Title+" (daily)", scatterStyle(warmDaily))
	ss = appendLineSegments(ss, pRolling,
		fmt.Sprintf("%s (%d-day avg)", primary.Title, primary.RollingWindow),
		lineStyle(warmRolling, rollingStrokeWidth, false))

	base := len(ss)
	ss = appendLineSegments(ss, sDaily, secondary.Title+" (daily)", scatterStyle(coolDaily))
	ss = appendLineSegments(ss, sRolling,
		fmt.Sprintf("%s (%d-day avg)", secondary.Title, secondary.RollingWindow),
		dashedStyle(coolRolling))
	for i := base; i < len(ss); i++ {
		ts := ss[i].(chart.TimeSeries)
		ts.YAxis = chart.YAxisSecondary
		ss[i] = ts
	}

	if len(ss) == 0 {
		return "", fmt.Errorf("no drawable segments for %s vs %s", primary.Name, secondary.Name)
	}

	title := fmt.Sprintf("%s vs %s (%s to %s)",
		primary.Title, secondary.Title,
		start.Format(defs.DayFormat), end.Format(defs.DayFormat))
	ch := chart.Chart{
		Title:          title,
		Width:          chartWidth,
		Height:         chartHeight,
		Background:     chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis:          chart.XAxis{ValueFormatter: chart.TimeValueFormatterWithFormat(axisDateFormat)},
		YAxis:          chart.YAxis{Name: primary.YLabel},
		YAxisSecondary: chart.YAxis{Name: secondary.YLabel},
		Series:         ss,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	name := fmt.Sprintf("%s_vs_%s_%s.png",
		primary.Name, secondary.Name, time.Now().Format(fileDateFormat))
	return r.save(ch, name)
}

// Prediction renders actual and theoretical weight with their rolling
// averages on a single axis.
func (r *Renderer) Prediction(
	m defs.Metric,
	actual, theoretical, actualRolling, theoreticalRolling [][]defs.DailyPoint,
	start, end time.Time,
) (string, error) {
	var ss []chart.Series
	ss = appendLineSegments(ss, actual, "Actual weight", lineStyle(warmDaily, dailyStrokeWidth, true))
	ss = appendLineSegments(ss, theoretical, "Theoretical weight", lineStyle(coolDaily, 2, false))
	ss = appendLineSegments(ss, actualRolling,
		fmt.Sprintf("Actual (%d-day avg)", m.RollingWindow),
		lineStyle(warmRolling, rollingStrokeWidth, false))
	ss = appendLineSegments(ss, theoreticalRolling,
		fmt.Sprintf("Theoretical (%d-day avg)", m.RollingWindow),
		lineStyle(coolRolling, rollingStrokeWidth, false))
	if len(ss) == 0 {
		return "", fmt.Errorf("no drawable segments for %s", m.Name)
	}

	title := fmt.Sprintf("%s (%s to %s)",
		m.Title, start.Format(defs.DayFormat), end.Format(defs.DayFormat))
	ch := chart.Chart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      chart.XAxis{ValueFormatter: chart.TimeValueFormatterWithFormat(axisDateFormat)},
		YAxis:      chart.YAxis{Name: m.YLabel},
		Series:     ss,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	name := fmt.Sprintf("%s_%s.png", m.Name, time.Now().Format(fileDateFormat))
	return r.save(ch, name)
}

// appendLineSegments adds one TimeSeries per segment; only the first carries
// the legend name so each layer shows up once. go-chart needs two points to
// draw anything, so shorter segments are skipped.
func appendLineSegments(
	ss []chart.Series,
	segments [][]defs.DailyPoint,
	name string,
	style chart.Style,
) []chart.Series {
	first := true
	for _, seg := range segments {
		if len(seg) < 2 {
			continue
		}
		ts := chart.TimeSeries{
			XValues: series.Days(seg),
			YValues: series.Values(seg),
			Style:   style,
		}
		if first {
			ts.Name = name
			first = false
		}
		ss = append(ss, ts)
	}
	return ss
}

func lineStyle(hex string, width float64, dots bool) chart.Style {
	col := drawing.ColorFromHex(hex)
	s := chart.Style{StrokeColor: col, StrokeWidth: width}
	if dots {
		s.DotColor = col
		s.DotWidth = dotWidth
	}
	return s
}

func scatterStyle(hex string) chart.Style {
	col := drawing.ColorFromHex(hex).WithAlpha(120)
	return chart.Style{StrokeWidth: 0, DotColor: col, DotWidth: dotWidth}
}

func dashedStyle(hex string) chart.Style {
	return chart.Style{
		StrokeColor:     drawing.ColorFromHex(hex),
		StrokeWidth:     2,
		StrokeDashArray: []float64{5.0, 5.0},
	}
}

func (r *Renderer) save(ch chart.Chart, name string) (string, error) {
	if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("unable to create results dir: %w", err)
	}

	path := filepath.Join(r.OutDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("unable to create chart file: %w", err)
	}
	defer f.Close()

	if err := ch.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("unable to render chart: %w", err)
	}

	r.Logger.Debug("saved chart", zap.String("path", path))
	return path, nil
}
