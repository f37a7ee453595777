package payment

import (
	"github.com/pkg/errors"

	"github.com/dojanghq/dojang/core"
)

// Arrears severity classes.
const (
	SeverityCurrent = "current" // no overdue months
	SeverityWarning = "warning" // exactly one overdue month
	SeverityDanger  = "danger"  // two or more overdue months
)

// Overdue is the arrears standing of one member as of a billing month.
type Overdue struct {
	Count       int    `json:"overdue_count"`
	Severity    string `json:"severity"`
	LastOverdue Period `json:"last_overdue,omitempty"`
	NoHistory   bool   `json:"no_history,omitempty"` // member has no payment on record at all
}

func classify(count int) string {
	switch {
	case count == 0:
		return SeverityCurrent
	case count == 1:
		return SeverityWarning
	}
	return SeverityDanger
}

// ComputeOverdue walks the billing months from the one after the member's
// last recorded payment through today's month inclusive, counting months
// with no payment. A payment is never required for a future month.
//
// A member with no payment history at all is treated as maximally overdue:
// the count is today's month number, i.e. every month since the start of the
// tracking year.
//
// The walk is fed by a single range query; classification is identical to
// checking each stepped month individually.
func (svc *Service) ComputeOverdue(memberID int, today core.JDate) (Overdue, error) {
	current := Period{Year: today.Year, Month: today.Month}

	last, err := svc.repo.GetLatestPayment(memberID)
	if err == ErrNotFound {
		return Overdue{
			Count:       today.Month,
			Severity:    SeverityDanger,
			LastOverdue: current,
			NoHistory:   true,
		}, nil
	}
	if err != nil {
		return Overdue{}, errors.Wrap(err, "fetching latest payment")
	}

	paid, err := svc.repo.PaidPeriodsSince(memberID, last.Period, current)
	if err != nil {
		return Overdue{}, errors.Wrap(err, "fetching paid periods")
	}
	paidSet := make(map[Period]struct{}, len(paid))
	for _, p := range paid {
		paidSet[p] = struct{}{}
	}

	var od Overdue
	for period := last.Period.Next(); !period.After(current); period = period.Next() {
		if _, ok := paidSet[period]; !ok {
			od.Count++
			od.LastOverdue = period
		}
	}
	od.Severity = classify(od.Count)
	return od, nil
}

// ReminderDays reports how many days remain until the 1st of the next
// billing month. The reminder window opens on the 15th; before that (or when
// the member has arrears) there is nothing to remind about.
func (svc *Service) ReminderDays(today core.JDate) (int, bool, error) {
	if today.Day < 15 {
		return 0, false, nil
	}
	next := Period{Year: today.Year, Month: today.Month}.Next()

	deadline, err := svc.cal.ToGregorian(core.JDate{Year: next.Year, Month: next.Month, Day: 1})
	if err != nil {
		return 0, false, errors.Wrap(err, "converting payment deadline")
	}
	now, err := svc.cal.ToGregorian(today)
	if err != nil {
		return 0, false, errors.Wrap(err, "converting today")
	}
	days := int(deadline.Sub(now).Hours() / 24)
	return days, true, nil
}
