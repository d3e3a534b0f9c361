package healthcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pyonkichi499/apple-health-export/analysis/defs"

	"go.uber.org/zap"
)

// Expected header columns in a Health app CSV export.
const (
	dateColumn   = "startDate"
	valueColumn  = "value"
	sourceColumn = "sourceName"
)

// Export timestamps come in a few shapes depending on the exporting app
// version; try the most specific first.
var timeLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type Source interface {
	Records(path string, start, end time.Time) ([]*defs.Record, error)
}

type Loader struct {
	logger   *zap.Logger
	location *time.Location
}

func New(logger *zap.Logger, loc *time.Location) *Loader {
	return &Loader{logger: logger, location: loc}
}

// Records reads a dated-value CSV and returns rows within [start, end],
// compared by calendar day. A zero start or end leaves that side unbounded.
// Rows with unparseable dates or values are skipped, not fatal.
func (l *Loader) Records(path string, start, end time.Time) ([]*defs.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open export: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	dateIdx, ok := cols[dateColumn]
	if !ok {
		return nil, fmt.Errorf("export %s has no %s column", path, dateColumn)
	}
	valueIdx, ok := cols[valueColumn]
	if !ok {
		return nil, fmt.Errorf("export %s has no %s column", path, valueColumn)
	}
	sourceIdx, hasSource := cols[sourceColumn]

	var recs []*defs.Record
	var skipped int
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read row: %w", err)
		}
		if dateIdx >= len(row) || valueIdx >= len(row) {
			skipped++
			continue
		}

		t, ok := l.parseTime(row[dateIdx])
		if !ok {
			skipped++
			continue
		}
		if !inRange(t, start, end) {
			continue
		}

		v, err := strconv.ParseFloat(row[valueIdx], 64)
		if err != nil {
			skipped++
			continue
		}

		rec := &defs.Record{Time: t, Value: v}
		if hasSource && sourceIdx < len(row) {
			rec.Source = row[sourceIdx]
		}
		recs = append(recs, rec)
	}

	l.logger.Debug("loaded export",
		zap.String("path", path),
		zap.Int("records", len(recs)),
		zap.Int("skipped", skipped),
	)

	return recs, nil
}

func (l *Loader) parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, l.location); err == nil {
			return t.In(l.location), true
		}
	}
	return time.Time{}, false
}

func inRange(t, start, end time.Time) bool {
	if !start.IsZero() && defs.CompareDays(t, start) < 0 {
		return false
	}
	if !end.IsZero() && defs.CompareDays(t, end) > 0 {
		return false
	}
	return true
}
