package club

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dojanghq/dojang/core"
)

// Day patterns: a session meets on a fixed weekday set fully determined by
// its type. Weekday indexes are Jalali, 0 = Saturday .. 6 = Friday.
const (
	DayTypeEven    = "even"    // Saturday, Monday, Wednesday
	DayTypeOdd     = "odd"     // Sunday, Tuesday, Thursday
	DayTypeWeekend = "weekend" // Thursday, Friday
)

var dayTypeWeekdays = map[string][]int{
	DayTypeEven:    {0, 2, 4},
	DayTypeOdd:     {1, 3, 5},
	DayTypeWeekend: {5, 6},
}

// DayTypeWeekdays returns the weekday set a day pattern meets on; ok is
// false for an unknown pattern.
func DayTypeWeekdays(dayType string) ([]int, bool) {
	days, ok := dayTypeWeekdays[dayType]
	return days, ok
}

// DayTypeDisplay names the meeting days of a pattern for listings.
func DayTypeDisplay(dayType string) string {
	days, ok := dayTypeWeekdays[dayType]
	if !ok {
		return ""
	}
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, core.JWeekdayName(d))
	}
	out := names[0]
	for _, n := range names[1:] {
		out += ", " + n
	}
	return out
}

type Club struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

type Session struct {
	ID        int       `json:"id"`
	ClubID    int       `json:"club_id"`
	CoachName string    `json:"coach_name"`
	DayType   string    `json:"day_type"`
	ClassTime string    `json:"class_time"` // "HH:MM"
	CreatedAt time.Time `json:"created_at"` // UTC
}

// DaysDisplay names the weekdays this session meets on.
func (s Session) DaysDisplay() string {
	return DayTypeDisplay(s.DayType)
}

// NewClub contains information needed to register a new Club.
type NewClub struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (nc *NewClub) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Address = core.CleanString(nc.Address)
	nc.Phone = core.CleanString(nc.Phone)
	return validate.Struct(nc)
}

// UpdateClub defines what information may be provided to modify an existing
// Club. Empty strings leave the original value untouched.
type UpdateClub struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (uc *UpdateClub) Validate(validate *validator.Validate) error {
	uc.Name = core.CleanString(uc.Name)
	uc.Address = core.CleanString(uc.Address)
	uc.Phone = core.CleanString(uc.Phone)
	return validate.Struct(uc)
}

// NewSession contains information needed to add a Session to a Club.
type NewSession struct {
	ClubID    int    `json:"club_id" validate:"required"`
	CoachName string `json:"coach_name" validate:"required"`
	DayType   string `json:"day_type" validate:"required,daytype"`
	ClassTime string `json:"class_time" validate:"required"`
}

func (ns *NewSession) Validate(validate *validator.Validate) error {
	ns.CoachName = core.CleanString(ns.CoachName)
	ns.ClassTime = core.CleanString(ns.ClassTime)
	ns.DayType = core.CleanString(ns.DayType, true /* lower */)
	return validate.Struct(ns)
}

// UpdateSession defines what information may be provided to modify an
// existing Session.
type UpdateSession struct {
	CoachName string `json:"coach_name"`
	DayType   string `json:"day_type" validate:"omitempty,daytype"`
	ClassTime string `json:"class_time"`
}

func (us *UpdateSession) Validate(validate *validator.Validate) error {
	us.CoachName = core.CleanString(us.CoachName)
	us.ClassTime = core.CleanString(us.ClassTime)
	us.DayType = core.CleanString(us.DayType, true /* lower */)
	return validate.Struct(us)
}
