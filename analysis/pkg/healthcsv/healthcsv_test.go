package healthcsv

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

const sampleExport = `sourceName,startDate,endDate,value
Health,2023-01-01 08:30:00 +0900,2023-01-01 08:31:00 +0900,80.5
Health,2023-01-01 21:00:00 +0900,2023-01-01 21:01:00 +0900,80.1
Health,2023-01-02,2023-01-02,79.8
Health,not-a-date,x,79.0
Health,2023-01-03 07:15:00 +0900,2023-01-03 07:16:00 +0900,not-a-number
Health,2023-01-04 09:00:00 +0900,2023-01-04 09:01:00 +0900,79.2
`

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "BodyMass.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newLoader(t *testing.T) *Loader {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	return New(zap.NewNop(), loc)
}

func TestRecords(t *testing.T) {
	path := writeExport(t, sampleExport)

	recs, err := newLoader(t).Records(path, time.Time{}, time.Time{})

	require.NoError(t, err)
	assert.Len(t, recs, 4, "bad date and bad value rows are skipped")
	assert.Equal(t, 80.5, recs[0].Value)
	assert.Equal(t, "Health", recs[0].Source)
	assert.Equal(t, 2023, recs[0].Time.Year())
	assert.Equal(t, 79.8, recs[2].Value, "date-only rows parse too")
}

func TestRecordsStartDateFilter(t *testing.T) {
	path := writeExport(t, sampleExport)
	start, _ := time.Parse(defs.DayFormat, "2023-01-02")

	recs, err := newLoader(t).Records(path, start, time.Time{})

	require.NoError(t, err)
	assert.Len(t, recs, 2, "rows strictly before the start date are excluded")
	for _, rec := range recs {
		assert.GreaterOrEqual(t, defs.CompareDays(rec.Time, start), 0)
	}
}

func TestRecordsEndDateInclusive(t *testing.T) {
	path := writeExport(t, sampleExport)
	end, _ := time.Parse(defs.DayFormat, "2023-01-02")

	recs, err := newLoader(t).Records(path, time.Time{}, end)

	require.NoError(t, err)
	assert.Len(t, recs, 3, "the end date itself is included")
}

func TestRecordsMissingFile(t *testing.T) {
	_, err := newLoader(t).Records(filepath.Join(t.TempDir(), "nope.csv"), time.Time{}, time.Time{})
	assert.Error(t, err)
}

func TestRecordsMissingValueColumn(t *testing.T) {
	path := writeExport(t, "sourceName,startDate\nHealth,2023-01-01\n")

	_, err := newLoader(t).Records(path, time.Time{}, time.Time{})

	assert.ErrorContains(t, err, "value")
}
