package alert

import (
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/dojanghq/dojang/core"
	"github.com/dojanghq/dojang/core/member"
	"github.com/dojanghq/dojang/core/payment"
)

// Engine aggregates the rule evaluators' outputs for one member into a
// single prioritized list.
type Engine struct {
	cal      core.Calendar
	payments *payment.Service
}

func NewEngine(cal core.Calendar, paySvc *payment.Service) *Engine {
	return &Engine{cal: cal, payments: paySvc}
}

// MemberAlerts evaluates every rule for one member as of `today` (Gregorian,
// date precision) and returns the alerts ordered most urgent first. The
// date-based rules fail soft on bad stored data; a failed arrears
// computation is a hard error since a wrong count is worse than none.
func (e *Engine) MemberAlerts(mbr member.Member, today time.Time) ([]Alert, error) {
	alerts := make([]Alert, 0, 4)

	if a, ok := CheckInsurance(mbr.InsuranceDate, today); ok {
		alerts = append(alerts, a)
	}
	if a, ok := CheckBirthday(mbr.BirthDate, today); ok {
		alerts = append(alerts, a)
	}
	if a, ok := CheckBeltProgress(mbr.Belt, mbr.BeltDate, today); ok {
		alerts = append(alerts, a)
	}

	a, ok, err := e.paymentAlert(mbr.ID, today)
	if err != nil {
		return nil, errors.Wrapf(err, "payment alert for member %d", mbr.ID)
	}
	if ok {
		alerts = append(alerts, a)
	}

	sort.SliceStable(alerts, func(i, j int) bool { return alerts[i].Priority < alerts[j].Priority })
	return alerts, nil
}

// paymentAlert produces at most one payment-related alert: missing history,
// months in arrears, or the end-of-month reminder.
func (e *Engine) paymentAlert(memberID int, today time.Time) (Alert, bool, error) {
	jToday := e.cal.FromGregorian(today)

	od, err := e.payments.ComputeOverdue(memberID, jToday)
	if err != nil {
		return Alert{}, false, err
	}

	if od.NoHistory {
		return Alert{
			Kind:     KindPaymentMissing,
			Message:  "no payment on record",
			CSSClass: "payment-missing",
			DaysLeft: -1,
			Priority: PriorityPayment,
		}, true, nil
	}

	if od.Count > 0 {
		return Alert{
			Kind:     KindPaymentOverdue,
			Message:  fmt.Sprintf("%d months in arrears", od.Count),
			CSSClass: "payment-overdue blink-red",
			DaysLeft: -1,
			Priority: PriorityPayment,
		}, true, nil
	}

	days, due, err := e.payments.ReminderDays(jToday)
	if err != nil {
		return Alert{}, false, err
	}
	if due {
		return Alert{
			Kind:     KindPaymentReminder,
			Message:  fmt.Sprintf("%d days until next payment", days),
			CSSClass: "payment-reminder",
			DaysLeft: days,
			Priority: PriorityPayment,
		}, true, nil
	}
	return Alert{}, false, nil
}
