package event

import "time"

// Calendar is the off-day calendar for one company: the union of declared
// holidays and the weekly weekend days. A date fully inside it suppresses
// check-in/out and is excluded from late/absent accounting in reports.
type Calendar struct {
	holidays []Holiday
	weekend  map[time.Weekday]bool
}

func NewCalendar(holidays []Holiday, weekendDays []time.Weekday) *Calendar {
	weekend := make(map[time.Weekday]bool, len(weekendDays))
	for _, d := range weekendDays {
		weekend[d] = true
	}
	return &Calendar{holidays: holidays, weekend: weekend}
}

func (c *Calendar) IsHoliday(date time.Time) bool {
	for _, h := range c.holidays {
		if h.Covers(date) {
			return true
		}
	}
	return false
}

func (c *Calendar) IsWeekend(date time.Time) bool {
	return c.weekend[date.Weekday()]
}

// IsOffDay reports whether the date is a holiday or weekend.
func (c *Calendar) IsOffDay(date time.Time) bool {
	return c.IsHoliday(date) || c.IsWeekend(date)
}
