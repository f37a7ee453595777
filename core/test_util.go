package core

import "time"

// FakeCalendar is a deterministic Calendar for tests. It applies the fixed
// Jalali month lengths with year%4 == 3 leap years and anchors 1350/01/01 on
// a Saturday, mapped to 1971-03-21 UTC.
type FakeCalendar struct {
	Now JDate
}

var _ Calendar = (*FakeCalendar)(nil)

var fakeEpoch = time.Date(1971, time.March, 21, 0, 0, 0, 0, time.UTC)

func (c *FakeCalendar) Today() JDate { return c.Now }

func (c *FakeCalendar) IsLeapYear(year int) bool { return year%4 == 3 }

func (c *FakeCalendar) yearDays(year int) int {
	if c.IsLeapYear(year) {
		return 366
	}
	return 365
}

// ordinal counts days from 1350/01/01.
func (c *FakeCalendar) ordinal(d JDate) (int, error) {
	if d.Year < 1350 || d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return 0, ErrBadJDate
	}
	days := 0
	for y := 1350; y < d.Year; y++ {
		days += c.yearDays(y)
	}
	for m := 1; m < d.Month; m++ {
		n, err := JMonthDays(c, d.Year, m)
		if err != nil {
			return 0, err
		}
		days += n
	}
	max, err := JMonthDays(c, d.Year, d.Month)
	if err != nil {
		return 0, err
	}
	if d.Day > max {
		return 0, ErrBadJDate
	}
	return days + d.Day - 1, nil
}

func (c *FakeCalendar) Weekday(d JDate) (int, error) {
	ord, err := c.ordinal(d)
	if err != nil {
		return 0, err
	}
	return ord % 7, nil
}

func (c *FakeCalendar) ToGregorian(d JDate) (time.Time, error) {
	ord, err := c.ordinal(d)
	if err != nil {
		return time.Time{}, err
	}
	return fakeEpoch.AddDate(0, 0, ord), nil
}

func (c *FakeCalendar) FromGregorian(t time.Time) JDate {
	days := int(t.Sub(fakeEpoch).Hours() / 24)
	year := 1350
	for days >= c.yearDays(year) {
		days -= c.yearDays(year)
		year++
	}
	month := 1
	for {
		n, _ := JMonthDays(c, year, month)
		if days < n {
			break
		}
		days -= n
		month++
	}
	return JDate{Year: year, Month: month, Day: days + 1}
}
