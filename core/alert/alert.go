// Package alert derives time-sensitive status signals for one member from
// raw dates and payment history: insurance expiry, belt-promotion due dates,
// birthdays and payment arrears.
package alert

// Alert kinds.
const (
	KindInsuranceExpired = "insurance_expired"
	KindInsuranceUrgent  = "insurance_urgent"
	KindBeltUpgrade      = "belt_upgrade"
	KindBeltExpired      = "belt_expired"
	KindBirthday         = "birthday"
	KindPaymentMissing   = "payment_missing"
	KindPaymentOverdue   = "payment_overdue"
	KindPaymentReminder  = "payment_reminder"
)

// Canonical priority ranking, most urgent first. The ordering is fixed
// process-wide: payment standing outranks insurance, insurance outranks
// belt progression, birthdays come last.
const (
	PriorityPayment = iota + 1
	PriorityInsurance
	PriorityBelt
	PriorityBirthday
)

var kindPriorities = map[string]int{
	KindPaymentMissing:   PriorityPayment,
	KindPaymentOverdue:   PriorityPayment,
	KindPaymentReminder:  PriorityPayment,
	KindInsuranceExpired: PriorityInsurance,
	KindInsuranceUrgent:  PriorityInsurance,
	KindBeltUpgrade:      PriorityBelt,
	KindBeltExpired:      PriorityBelt,
	KindBirthday:         PriorityBirthday,
}

// Priority ranks an alert kind; unknown kinds sort last.
func Priority(kind string) int {
	if p, ok := kindPriorities[kind]; ok {
		return p
	}
	return PriorityBirthday + 1
}

// Alert is one status signal for one member. CSSClass is the style hook the
// presentation layer renders the badge with.
type Alert struct {
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	CSSClass string `json:"css_class"`
	DaysLeft int    `json:"days_left"`
	Priority int    `json:"priority"`
}
