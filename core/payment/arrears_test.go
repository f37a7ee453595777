package payment

import (
	"testing"

	"github.com/dojanghq/dojang/core"
)

// fakeRepo serves ComputeOverdue's two queries from a fixed payment list.
type fakeRepo struct {
	Repository
	payments []Payment
}

func (r *fakeRepo) GetLatestPayment(memberID int) (Payment, error) {
	var latest *Payment
	for i := range r.payments {
		p := &r.payments[i]
		if p.MemberID != memberID {
			continue
		}
		if latest == nil || p.Period.After(latest.Period) {
			latest = p
		}
	}
	if latest == nil {
		return Payment{}, ErrNotFound
	}
	return *latest, nil
}

func (r *fakeRepo) PaidPeriodsSince(memberID int, after, until Period) ([]Period, error) {
	var periods []Period
	for _, p := range r.payments {
		if p.MemberID != memberID {
			continue
		}
		if p.Period.After(after) && !p.Period.After(until) {
			periods = append(periods, p.Period)
		}
	}
	return periods, nil
}

func paid(memberID, year, month int) Payment {
	return Payment{MemberID: memberID, Period: Period{Year: year, Month: month}}
}

func TestService_ComputeOverdue(t *testing.T) {
	today := core.JDate{Year: 1402, Month: 6, Day: 10}

	tests := []struct {
		name         string
		payments     []Payment
		want         int
		wantSeverity string
		wantLast     Period
		wantNoHist   bool
	}{
		{
			name:         "no history",
			want:         6,
			wantSeverity: SeverityDanger,
			wantLast:     Period{1402, 6},
			wantNoHist:   true,
		},
		{
			name:         "paid through last month",
			payments:     []Payment{paid(1, 1402, 5)},
			want:         1,
			wantSeverity: SeverityWarning,
			wantLast:     Period{1402, 6},
		},
		{
			name:         "paid current month",
			payments:     []Payment{paid(1, 1402, 6)},
			want:         0,
			wantSeverity: SeverityCurrent,
		},
		{
			name:         "three months behind",
			payments:     []Payment{paid(1, 1402, 3)},
			want:         3,
			wantSeverity: SeverityDanger,
			wantLast:     Period{1402, 6},
		},
		{
			name:         "gap partially filled",
			payments:     []Payment{paid(1, 1402, 3), paid(1, 1402, 4)},
			want:         2,
			wantSeverity: SeverityDanger,
			wantLast:     Period{1402, 6},
		},
		{
			name:         "last payment previous year",
			payments:     []Payment{paid(1, 1401, 11)},
			want:         7, // 1401/12 plus 1402/01 through 1402/06
			wantSeverity: SeverityDanger,
			wantLast:     Period{1402, 6},
		},
		{
			name:         "paid ahead",
			payments:     []Payment{paid(1, 1402, 8)},
			want:         0,
			wantSeverity: SeverityCurrent,
		},
		{
			name:         "other member's payments ignored",
			payments:     []Payment{paid(2, 1402, 6)},
			want:         6,
			wantSeverity: SeverityDanger,
			wantLast:     Period{1402, 6},
			wantNoHist:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeRepo{payments: tt.payments}, &core.FakeCalendar{Now: today})

			od, err := svc.ComputeOverdue(1, today)
			if err != nil {
				t.Fatalf("ComputeOverdue() error = %v", err)
			}
			if od.Count != tt.want {
				t.Errorf("Count = %v, want %v", od.Count, tt.want)
			}
			if od.Severity != tt.wantSeverity {
				t.Errorf("Severity = %q, want %q", od.Severity, tt.wantSeverity)
			}
			if tt.wantLast != (Period{}) && od.LastOverdue != tt.wantLast {
				t.Errorf("LastOverdue = %v, want %v", od.LastOverdue, tt.wantLast)
			}
			if od.NoHistory != tt.wantNoHist {
				t.Errorf("NoHistory = %v, want %v", od.NoHistory, tt.wantNoHist)
			}
		})
	}
}

func TestService_ReminderDays(t *testing.T) {
	cal := &core.FakeCalendar{Now: core.JDate{Year: 1402, Month: 6, Day: 20}}
	svc := NewService(&fakeRepo{}, cal)

	// before the 15th the window is closed
	if _, due, err := svc.ReminderDays(core.JDate{Year: 1402, Month: 6, Day: 14}); err != nil || due {
		t.Errorf("ReminderDays(day 14) = due %v, err %v; want closed", due, err)
	}

	// Shahrivar has 31 days: from the 20th, 12 days remain until Mehr 1st
	days, due, err := svc.ReminderDays(core.JDate{Year: 1402, Month: 6, Day: 20})
	if err != nil {
		t.Fatalf("ReminderDays() error = %v", err)
	}
	if !due {
		t.Fatal("ReminderDays() due = false, want true")
	}
	if days != 12 {
		t.Errorf("ReminderDays() = %v, want 12", days)
	}

	// Esfand wraps into the next year: 1402 is a common year, 29 days
	days, due, err = svc.ReminderDays(core.JDate{Year: 1402, Month: 12, Day: 15})
	if err != nil {
		t.Fatalf("ReminderDays() error = %v", err)
	}
	if !due || days != 15 {
		t.Errorf("ReminderDays(Esfand 15) = %v days, due %v; want 15, true", days, due)
	}
}

func TestPeriod(t *testing.T) {
	if got := (Period{1402, 12}).Next(); got != (Period{1403, 1}) {
		t.Errorf("Next() Esfand = %v", got)
	}
	if got := (Period{1402, 6}).Next(); got != (Period{1402, 7}) {
		t.Errorf("Next() = %v", got)
	}
	if !(Period{1403, 1}).After(Period{1402, 12}) {
		t.Error("After() across years = false")
	}
	if got := (Period{Year: 1402, Month: 6}).String(); got != "Shahrivar 1402" {
		t.Errorf("String() = %q", got)
	}
}
