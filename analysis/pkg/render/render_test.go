package render

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pyonkichi499/apple-health-export/analysis/defs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func daily(start string, values ...float64) []defs.DailyPoint {
	first, err := time.ParseInLocation(defs.DayFormat, start, time.UTC)
	if err != nil {
		panic(err)
	}
	dps := make([]defs.DailyPoint, len(values))
	for i, v := range values {
		dps[i] = defs.DailyPoint{Day: first.AddDate(0, 0, i), Value: v, Samples: 1}
	}
	return dps
}

func metric(t *testing.T, name string) defs.Metric {
	t.Helper()
	m, err := defs.MetricByName(name)
	require.NoError(t, err)
	return m
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "chart file should not be empty")
	assert.Equal(t, ".png", filepath.Ext(path))
}

func TestMetricChart(t *testing.T) {
	r := New(t.TempDir(), zap.NewNop())
	weight := metric(t, "body_weight")

	dailySegs := [][]defs.DailyPoint{
		daily("2023-01-01", 80, 79.8, 79.6, 79.5, 79.4),
		daily("2023-03-01", 78.9, 78.8, 78.6),
	}
	rollingSegs := [][]defs.DailyPoint{
		daily("2023-01-02", 79.8, 79.6, 79.5),
	}

	path, err := r.Metric(weight, dailySegs, rollingSegs,
		dailySegs[0][0].Day, dailySegs[1][2].Day)

	require.NoError(t, err)
	assertPNG(t, path)
}

func TestMetricChartNoSegments(t *testing.T) {
	r := New(t.TempDir(), zap.NewNop())

	_, err := r.Metric(metric(t, "body_weight"), nil, nil, time.Time{}, time.Time{})

	assert.Error(t, err)
}

func TestMetricChartSkipsSingletons(t *testing.T) {
	r := New(t.TempDir(), zap.NewNop())

	dailySegs := [][]defs.DailyPoint{
		daily("2023-01-01", 80),
		daily("2023-02-01", 79, 78.5),
	}

	path, err := r.Metric(metric(t, "body_weight"), dailySegs, nil,
		dailySegs[0][0].Day, dailySegs[1][1].Day)

	require.NoError(t, err)
	assertPNG(t, path)
}

func TestDualAxisChart(t *testing.T) {
	r := New(t.TempDir(), zap.NewNop())

	pDaily := [][]defs.DailyPoint{daily("2023-01-01", 80, 79.8, 79.6, 79.5, 79.4)}
	pRolling := [][]defs.DailyPoint{daily("2023-01-02", 79.8, 79.6, 79.5)}
	sDaily := [][]defs.DailyPoint{daily("2023-01-01", 2000, 2200, 1900, 2100, 2000)}
	sRolling := [][]defs.DailyPoint{daily("2023-01-02", 2030, 2060, 2000)}

	path, err := r.DualAxis(metric(t, "body_weight"), metric(t, "calorie_intake"),
		pDaily, pRolling, sDaily, sRolling,
		pDaily[0][0].Day, pDaily[0][4].Day)

	require.NoError(t, err)
	assertPNG(t, path)
}

func TestPredictionChart(t *testing.T) {
	r := New(t.TempDir(), zap.NewNop())

	actual := [][]defs.DailyPoint{daily("2023-01-01", 80, 79.9, 79.95, 79.8)}
	theoretical := [][]defs.DailyPoint{daily("2023-01-01", 79.9, 79.8, 79.7, 79.6)}

	path, err := r.Prediction(metric(t, "weight_prediction"),
		actual, theoretical, nil, nil,
		actual[0][0].Day, actual[0][3].Day)

	require.NoError(t, err)
	assertPNG(t, path)
}
