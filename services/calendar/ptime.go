package calsvc

import (
	"time"

	ptime "github.com/yaa110/go-persian-calendar"

	"github.com/dojanghq/dojang/core"
)

// JalaliCalendar implements core.Calendar on top of go-persian-calendar.
type JalaliCalendar struct {
	loc *time.Location
}

var _ core.Calendar = (*JalaliCalendar)(nil)

func NewJalaliCalendar() *JalaliCalendar {
	return &JalaliCalendar{loc: ptime.Iran()}
}

func (c *JalaliCalendar) Today() core.JDate {
	return c.FromGregorian(time.Now().In(c.loc))
}

// Weekday reports the day of the week of d, 0 = Saturday .. 6 = Friday.
func (c *JalaliCalendar) Weekday(d core.JDate) (int, error) {
	t, err := c.ToGregorian(d)
	if err != nil {
		return 0, err
	}
	// time.Weekday has Sunday = 0; shift so Saturday = 0
	return (int(t.Weekday()) + 1) % 7, nil
}

func (c *JalaliCalendar) IsLeapYear(year int) bool {
	return ptime.Date(year, ptime.Farvardin, 1, 12, 0, 0, 0, c.loc).IsLeap()
}

// ToGregorian converts d to its Gregorian value at date precision, UTC.
// ptime silently normalizes out-of-range days, so a round trip that does
// not land back on d means d never existed.
func (c *JalaliCalendar) ToGregorian(d core.JDate) (time.Time, error) {
	pt := ptime.Date(d.Year, ptime.Month(d.Month), d.Day, 12, 0, 0, 0, c.loc)
	if pt.Year() != d.Year || int(pt.Month()) != d.Month || pt.Day() != d.Day {
		return time.Time{}, core.ErrBadJDate
	}
	t := pt.Time()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func (c *JalaliCalendar) FromGregorian(t time.Time) core.JDate {
	pt := ptime.New(t.In(c.loc))
	return core.JDate{Year: pt.Year(), Month: int(pt.Month()), Day: pt.Day()}
}
