package alert

import (
	"fmt"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/dojanghq/dojang/core/member"
)

// Rule thresholds, in days.
const (
	insuranceUrgentWindow = 10
	beltUpgradeWindow     = 15
	beltOverdueGrace      = 30 // past this, overdue is reported in months
	birthdayWindow        = 5
)

// daysUntil counts whole days from `today` to `target`. Both are expected
// at date precision.
func daysUntil(today, target time.Time) int {
	return int(target.Sub(today).Hours() / 24)
}

// CheckInsurance evaluates the 365-day coverage window. No policy on
// record, or more than 10 days remaining: no alert.
func CheckInsurance(insuranceDate null.Time, today time.Time) (Alert, bool) {
	if !insuranceDate.Valid {
		return Alert{}, false
	}
	expiry := insuranceDate.Time.AddDate(0, 0, 365)
	daysLeft := daysUntil(today, expiry)

	switch {
	case daysLeft <= 0:
		return Alert{
			Kind:     KindInsuranceExpired,
			Message:  "insurance expired",
			CSSClass: "insurance-expired",
			DaysLeft: daysLeft,
			Priority: PriorityInsurance,
		}, true
	case daysLeft <= insuranceUrgentWindow:
		return Alert{
			Kind:     KindInsuranceUrgent,
			Message:  fmt.Sprintf("%d days until insurance expires", daysLeft),
			CSSClass: "insurance-urgent",
			DaysLeft: daysLeft,
			Priority: PriorityInsurance,
		}, true
	}
	return Alert{}, false
}

// CheckBeltProgress evaluates promotion readiness against the rank table.
// The due date uses a fixed 30-day month approximation, not calendar
// months. Unknown or terminal ranks never alert.
func CheckBeltProgress(belt string, beltDate null.Time, today time.Time) (Alert, bool) {
	if belt == "" || !beltDate.Valid {
		return Alert{}, false
	}
	rule, ok := member.BeltRuleFor(belt)
	if !ok {
		return Alert{}, false
	}

	due := beltDate.Time.AddDate(0, 0, rule.Months*30)
	daysDiff := daysUntil(today, due)

	switch {
	case daysDiff > beltUpgradeWindow:
		return Alert{}, false
	case daysDiff > 0:
		return Alert{
			Kind:     KindBeltUpgrade,
			Message:  fmt.Sprintf("%d days until %s", daysDiff, rule.Next),
			CSSClass: "belt-alert",
			DaysLeft: daysDiff,
			Priority: PriorityBelt,
		}, true
	case daysDiff > -beltOverdueGrace:
		return Alert{
			Kind:     KindBeltUpgrade,
			Message:  fmt.Sprintf("%d days past %s due date", -daysDiff, rule.Next),
			CSSClass: "belt-alert",
			DaysLeft: daysDiff,
			Priority: PriorityBelt,
		}, true
	}
	return Alert{
		Kind:     KindBeltExpired,
		Message:  fmt.Sprintf("%d months past %s due date", -daysDiff/30, rule.Next),
		CSSClass: "belt-expired",
		DaysLeft: daysDiff,
		Priority: PriorityBelt,
	}, true
}

// CheckBirthday alerts when the next occurrence of the birthday is at most
// 5 days away. Idempotent across repeated calls on the same day.
func CheckBirthday(birthDate null.Time, today time.Time) (Alert, bool) {
	if !birthDate.Valid {
		return Alert{}, false
	}
	birth := birthDate.Time
	next := time.Date(today.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, today.Location())
	if next.Before(today) {
		next = time.Date(today.Year()+1, birth.Month(), birth.Day(), 0, 0, 0, 0, today.Location())
	}
	daysLeft := daysUntil(today, next)

	if daysLeft > 0 && daysLeft <= birthdayWindow {
		return Alert{
			Kind:     KindBirthday,
			Message:  fmt.Sprintf("%d days until birthday", daysLeft),
			CSSClass: "birthday-alert",
			DaysLeft: daysLeft,
			Priority: PriorityBirthday,
		}, true
	}
	return Alert{}, false
}
