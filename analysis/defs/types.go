package defs

import "time"

// DayFormat is the canonical format for daily bucket keys and report dates.
const DayFormat = "2006-01-02"

type TimePoint interface {
	GetTime() time.Time
}

// Record is a single row from a health CSV export, after parsing.
type Record struct {
	Time   time.Time
	Value  float64
	Source string
}

func (r *Record) GetTime() time.Time {
	return r.Time
}

// DailyPoint is one aggregated value for a calendar day. Day is always
// midnight in the analysis location.
type DailyPoint struct {
	Day     time.Time
	Value   float64
	Samples int
}

func (dp *DailyPoint) GetTime() time.Time {
	return dp.Day
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CompareDays orders two instants by calendar date, each in its own
// location, ignoring time of day. Range bounds come from flags parsed in
// UTC while records carry the analysis location, so instant comparison
// would shift days near midnight.
func CompareDays(a, b time.Time) int {
	ak := a.Year()*10000 + int(a.Month())*100 + a.Day()
	bk := b.Year()*10000 + int(b.Month())*100 + b.Day()
	switch {
	case ak < bk:
		return -1
	case ak > bk:
		return 1
	}
	return 0
}
