package attendance

import (
	"github.com/pkg/errors"

	"github.com/dojanghq/dojang/core"
	"github.com/dojanghq/dojang/core/club"
)

var ErrUnknownDayType = errors.New("unknown day pattern")

// SessionDate is one date a session meets on, paired with its weekday name
// for display.
type SessionDate struct {
	Date    core.JDate `json:"date"`
	Weekday string     `json:"weekday"`
}

// AllowedDates lists, in order, the dates in the given Jalali month on which
// a session with the given day pattern meets.
func AllowedDates(cal core.Calendar, dayType string, year, month int) ([]SessionDate, error) {
	weekdays, ok := club.DayTypeWeekdays(dayType)
	if !ok {
		return nil, ErrUnknownDayType
	}
	meets := make(map[int]struct{}, len(weekdays))
	for _, wd := range weekdays {
		meets[wd] = struct{}{}
	}

	days, err := core.JMonthDays(cal, year, month)
	if err != nil {
		return nil, err
	}

	var dates []SessionDate
	for day := 1; day <= days; day++ {
		jd := core.JDate{Year: year, Month: month, Day: day}
		wd, err := cal.Weekday(jd)
		if err != nil {
			return nil, errors.Wrapf(err, "weekday of %s", jd)
		}
		if _, ok := meets[wd]; ok {
			dates = append(dates, SessionDate{Date: jd, Weekday: core.JWeekdayName(wd)})
		}
	}
	return dates, nil
}
