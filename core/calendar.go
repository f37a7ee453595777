package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrBadJDate = errors.New("malformed date: want YYYY/MM/DD")

	jWeekdayNames = [7]string{"Saturday", "Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	jMonthNames   = [12]string{
		"Farvardin", "Ordibehesht", "Khordad", "Tir", "Mordad", "Shahrivar",
		"Mehr", "Aban", "Azar", "Dey", "Bahman", "Esfand",
	}
)

type (
	// JDate is a calendar day in the Jalali (Persian) calendar.
	JDate struct {
		Year  int
		Month int
		Day   int
	}

	// Calendar converts between Jalali and Gregorian dates and answers
	// weekday and leap-year questions. Implementations live in services/.
	Calendar interface {
		Today() JDate
		// Weekday reports the day of the week, 0 = Saturday .. 6 = Friday.
		Weekday(d JDate) (int, error)
		IsLeapYear(year int) bool
		ToGregorian(d JDate) (time.Time, error)
		FromGregorian(t time.Time) JDate
	}
)

// ParseJDate parses a zero-padded or plain "YYYY/MM/DD" string. Persian and
// Arabic-Indic digits are accepted.
func ParseJDate(s string) (JDate, error) {
	parts := strings.Split(NormalizeDigits(strings.TrimSpace(s)), "/")
	if len(parts) != 3 {
		return JDate{}, NewValidationError(ErrBadJDate, FieldError{Field: "date", Error: ErrBadJDate.Error()})
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return JDate{}, NewValidationError(ErrBadJDate, FieldError{Field: "date", Error: ErrBadJDate.Error()})
		}
		nums[i] = n
	}
	d := JDate{Year: nums[0], Month: nums[1], Day: nums[2]}
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return JDate{}, NewValidationError(ErrBadJDate, FieldError{Field: "date", Error: ErrBadJDate.Error()})
	}
	return d, nil
}

func (d JDate) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// JDate travels as its "YYYY/MM/DD" string on the wire.

func (d JDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.String())
}

func (d *JDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = JDate{}
		return nil
	}
	parsed, err := ParseJDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d JDate) IsZero() bool {
	return d == JDate{}
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d JDate) Compare(other JDate) int {
	a := d.Year*10000 + d.Month*100 + d.Day
	b := other.Year*10000 + other.Month*100 + other.Day
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (d JDate) Before(other JDate) bool { return d.Compare(other) < 0 }
func (d JDate) After(other JDate) bool  { return d.Compare(other) > 0 }

// NextMonth returns the period one billing month after d, day preserved.
// Month 12 wraps into the next year.
func (d JDate) NextMonth() JDate {
	if d.Month == 12 {
		return JDate{Year: d.Year + 1, Month: 1, Day: d.Day}
	}
	return JDate{Year: d.Year, Month: d.Month + 1, Day: d.Day}
}

// JMonthDays reports the number of days in a Jalali month: months 1-6 have
// 31 days, 7-11 have 30 and Esfand has 30 in a leap year, 29 otherwise.
func JMonthDays(cal Calendar, year, month int) (int, error) {
	switch {
	case month >= 1 && month <= 6:
		return 31, nil
	case month >= 7 && month <= 11:
		return 30, nil
	case month == 12:
		if cal.IsLeapYear(year) {
			return 30, nil
		}
		return 29, nil
	}
	return 0, errors.Wrapf(ErrBadJDate, "month %d", month)
}

// JWeekdayName names a weekday index, 0 = Saturday .. 6 = Friday.
func JWeekdayName(weekday int) string {
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return jWeekdayNames[weekday]
}

// JMonthName names a Jalali month, 1 = Farvardin .. 12 = Esfand.
func JMonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return jMonthNames[month-1]
}
