package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pyonkichi499/apple-health-export/analysis/defs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const weightExport = `sourceName,startDate,value
Health,2023-01-01 08:00:00 +0000,80.0
Health,2023-01-02 08:00:00 +0000,79.8
Health,2023-01-03 08:00:00 +0000,79.6
Health,2023-01-04 08:00:00 +0000,79.5
Health,2023-01-05 08:00:00 +0000,79.4
Health,2023-01-06 08:00:00 +0000,79.2
Health,2023-01-07 08:00:00 +0000,79.0
`

func TestRunEndToEnd(t *testing.T) {
	dataDir := t.TempDir()
	resultsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "BodyMass.csv"), []byte(weightExport), 0o644))

	cfg := defs.Config{
		DataDir:    dataDir,
		ResultsDir: resultsDir,
		Logger:     zap.NewNop(),
	}
	acfg := defs.AnalysisConfig{
		RollingWindow: defs.DefaultRollingWindow,
		GapThreshold:  defs.DefaultGapThreshold,
		MinDataPoints: defs.DefaultMinDataPoints,
		SaveCharts:    true,
	}

	err := Run(cfg, acfg, Options{Metrics: []string{"body_weight"}})

	require.NoError(t, err)
	entries, err := os.ReadDir(resultsDir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "one chart per analyzed metric")
	assert.Contains(t, entries[0].Name(), "body_weight_")
}

func TestRunUnknownMetric(t *testing.T) {
	cfg := defs.Config{DataDir: t.TempDir(), ResultsDir: t.TempDir(), Logger: zap.NewNop()}
	acfg := defs.AnalysisConfig{MinDataPoints: 1}

	err := Run(cfg, acfg, Options{Metrics: []string{"blood_type"}})

	assert.ErrorContains(t, err, "1 of 1 analyses failed")
}
