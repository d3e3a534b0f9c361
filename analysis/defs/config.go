package defs

import (
	"time"

	"go.uber.org/zap"
)

// Analysis defaults.
const (
	DefaultRollingWindow = 7
	DefaultGapThreshold  = 30
	DefaultMinDataPoints = 5

	// Energy equivalent of one kilogram of body mass, used by the
	// weight prediction analysis.
	KcalPerKilogram = 7200
)

type Config struct {
	DataDir    string `yaml:"dataDir"`
	ResultsDir string `yaml:"resultsDir"`
	Timezone   string `yaml:"timezone"`

	RollingWindow int `yaml:"rollingWindow"`
	GapThreshold  int `yaml:"gapThreshold"`
	MinDataPoints int `yaml:"minDataPoints"`

	Logger *zap.Logger `yaml:"-"`
}

// WithDefaults fills zero-valued analysis knobs.
func (c Config) WithDefaults() Config {
	if c.DataDir == "" {
		c.DataDir = "data/csv"
	}
	if c.ResultsDir == "" {
		c.ResultsDir = "results"
	}
	if c.RollingWindow == 0 {
		c.RollingWindow = DefaultRollingWindow
	}
	if c.GapThreshold == 0 {
		c.GapThreshold = DefaultGapThreshold
	}
	if c.MinDataPoints == 0 {
		c.MinDataPoints = DefaultMinDataPoints
	}
	return c
}

// AnalysisConfig carries the resolved per-run parameters. Zero Start or End
// means unbounded on that side.
type AnalysisConfig struct {
	Start time.Time
	End   time.Time

	RollingWindow int
	GapThreshold  int
	MinDataPoints int

	SaveCharts bool
	PrintStats bool
}
