package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pyonkichi499/apple-health-export/analysis"
	"github.com/pyonkichi499/apple-health-export/analysis/defs"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	configFile string
	metricsArg string
	secondary  string
	startArg   string
	endArg     string
	lastDays   int
	rollingWin int
	gapDays    int
	minPoints  int
	outputDir  string
	noChart    bool
	noStats    bool
	listTypes  bool
)

func init() {
	flag.StringVar(&configFile, "f", "config.yaml", "config file")
	flag.StringVar(&metricsArg, "t", "", "metric name(s), comma separated")
	flag.StringVar(&secondary, "vs", "", "secondary metric for a dual-axis chart")
	flag.StringVar(&startArg, "s", "", "start date (YYYY-MM-DD)")
	flag.StringVar(&endArg, "e", "", "end date (YYYY-MM-DD)")
	flag.IntVar(&lastDays, "d", 0, "analyze the last N days (overrides -s)")
	flag.IntVar(&rollingWin, "r", 0, "rolling average window in days")
	flag.IntVar(&gapDays, "g", 0, "gap threshold in days before the line breaks")
	flag.IntVar(&minPoints, "m", 0, "minimum daily data points")
	flag.StringVar(&outputDir, "o", "", "chart output directory")
	flag.BoolVar(&noChart, "no-chart", false, "skip chart rendering")
	flag.BoolVar(&noStats, "no-stats", false, "skip the statistics report")
	flag.BoolVar(&listTypes, "l", false, "list available metrics and exit")
	flag.Parse()
}

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	if listTypes {
		analysis.ListMetrics(os.Stdout)
		return
	}

	config := defs.Config{Logger: logger}
	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			panic(err)
		}
		logger.Debug("loaded config file", zap.String("file", configFile))
	}
	config = config.WithDefaults()
	if outputDir != "" {
		config.ResultsDir = outputDir
	}

	acfg := defs.AnalysisConfig{
		RollingWindow: config.RollingWindow,
		GapThreshold:  config.GapThreshold,
		MinDataPoints: config.MinDataPoints,
		SaveCharts:    !noChart,
		PrintStats:    !noStats,
	}
	if rollingWin > 0 {
		acfg.RollingWindow = rollingWin
	}
	if gapDays > 0 {
		acfg.GapThreshold = gapDays
	}
	if minPoints > 0 {
		acfg.MinDataPoints = minPoints
	}

	var err error
	if acfg.Start, err = parseDate(startArg); err != nil {
		fail(err)
	}
	if acfg.End, err = parseDate(endArg); err != nil {
		fail(err)
	}
	if lastDays > 0 {
		acfg.Start = time.Now().AddDate(0, 0, -lastDays)
	}

	if metricsArg == "" {
		fmt.Fprintln(os.Stderr, "no metric selected; use -t, or -l to list metrics")
		os.Exit(1)
	}

	opts := analysis.Options{Secondary: secondary}
	for _, name := range strings.Split(metricsArg, ",") {
		if name = strings.TrimSpace(name); name != "" {
			opts.Metrics = append(opts.Metrics, name)
		}
	}

	if err := analysis.Run(config, acfg, opts); err != nil {
		logger.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(defs.DayFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
