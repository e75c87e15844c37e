package reportsvc

import (
	"time"

	"github.com/corray333/backoffice/internal/service/models/report"
)

// rangeBounds resolves the inclusive start and exclusive end of the period
// containing date, in the reporting timezone. Weeks start on Monday.
func (s *ReportService) rangeBounds(rangeType report.RangeType, date time.Time) (time.Time, time.Time) {
	if date.IsZero() {
		date = time.Now()
	}
	d := date.In(s.location)
	midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, s.location)

	switch rangeType {
	case report.RangeDay:
		return midnight, midnight.AddDate(0, 0, 1)
	case report.RangeWeek:
		offset := (int(midnight.Weekday()) + 6) % 7
		start := midnight.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	default:
		start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, s.location)
		return start, start.AddDate(0, 1, 0)
	}
}

func daysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, -1).Day()
}
