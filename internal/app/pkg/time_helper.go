package pkg

import "time"

const DayLayout = "2006-01-02"

// CalendarDay renders t as the calendar day it falls on in loc.
func CalendarDay(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DayLayout)
}
