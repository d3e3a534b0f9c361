package stats

import (
	"testing"
	"time"

	"github.com/pyonkichi499/apple-health-export/analysis/defs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type StatsTestSuite struct {
	suite.Suite
}

func TestStatsTestSuite(t *testing.T) {
	suite.Run(t, new(StatsTestSuite))
}

func day(s string) time.Time {
	t, err := time.ParseInLocation(defs.DayFormat, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func daily(start string, values ...float64) []defs.DailyPoint {
	first := day(start)
	dps := make([]defs.DailyPoint, len(values))
	for i, v := range values {
		dps[i] = defs.DailyPoint{Day: first.AddDate(0, 0, i), Value: v, Samples: 1}
	}
	return dps
}

func (suite *StatsTestSuite) TestSummarize() {
	sum := Summarize(daily("2023-01-01", 2, 4, 4, 4, 5, 5, 7, 9))

	assert.Equal(suite.T(), 8, sum.Count)
	assert.InDelta(suite.T(), 5.0, sum.Mean, 1e-9)
	assert.InDelta(suite.T(), 4.5, sum.Median, 1e-9)
	assert.Equal(suite.T(), 2.0, sum.Min)
	assert.Equal(suite.T(), 9.0, sum.Max)
	assert.InDelta(suite.T(), 2.1381, sum.StdDev, 1e-4, "sample deviation")
	assert.Equal(suite.T(), 7.0, sum.Range)
	assert.Equal(suite.T(), 2.0, sum.First)
	assert.Equal(suite.T(), 9.0, sum.Last)
	assert.Equal(suite.T(), 7.0, sum.TotalChange)
}

func (suite *StatsTestSuite) TestSummarizeSinglePoint() {
	sum := Summarize(daily("2023-01-01", 42))

	assert.Equal(suite.T(), 1, sum.Count)
	assert.Equal(suite.T(), 0.0, sum.StdDev, "deviation of one observation is zero")
	assert.Equal(suite.T(), 0.0, sum.TotalChange)
}

func (suite *StatsTestSuite) TestSummarizeEmpty() {
	assert.Equal(suite.T(), Summary{}, Summarize(nil))
}

func (suite *StatsTestSuite) TestCoverage() {
	dps := []defs.DailyPoint{
		{Day: day("2023-01-01"), Value: 1},
		{Day: day("2023-01-02"), Value: 2},
		{Day: day("2023-01-04"), Value: 3},
		{Day: day("2023-01-11"), Value: 4},
	}

	cov := Coverage(dps)

	assert.Equal(suite.T(), day("2023-01-01"), cov.Start)
	assert.Equal(suite.T(), day("2023-01-11"), cov.End)
	assert.Equal(suite.T(), 11, cov.TotalDays)
	assert.Equal(suite.T(), 4, cov.DataDays)
	assert.InDelta(suite.T(), 36.36, cov.Rate, 0.01)
}

func (suite *StatsTestSuite) TestSummarizeRolling() {
	roll := SummarizeRolling(daily("2023-01-01", 80.0, 79.5, 79.0))

	assert.NotNil(suite.T(), roll)
	assert.Equal(suite.T(), 80.0, roll.Start)
	assert.Equal(suite.T(), 79.0, roll.End)
	assert.InDelta(suite.T(), -1.0, roll.Change, 1e-9)
}

func (suite *StatsTestSuite) TestSummarizeRollingEmpty() {
	assert.Nil(suite.T(), SummarizeRolling(nil))
}
