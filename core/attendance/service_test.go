package attendance_test

import (
	"testing"

	"github.com/dojanghq/dojang/core"
	"github.com/dojanghq/dojang/core/attendance"
	dummydb "github.com/dojanghq/dojang/storage/database/dummy"
)

func newTestService(t *testing.T) *attendance.Service {
	t.Helper()
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("opening dummy db: %v", err)
	}
	cal := &core.FakeCalendar{Now: core.JDate{Year: 1402, Month: 6, Day: 10}}
	return attendance.NewService(dummydb.NewAttendanceRepository(db), cal)
}

func mark(t *testing.T, svc *attendance.Service, memberID, sessionID int, date, status string) attendance.Record {
	t.Helper()
	rec, _, err := svc.Record(attendance.NewRecord{
		MemberID:  memberID,
		SessionID: sessionID,
		Date:      date,
		Status:    status,
	})
	if err != nil {
		t.Fatalf("recording %s %s: %v", date, status, err)
	}
	return rec
}

func TestService_Record(t *testing.T) {
	svc := newTestService(t)

	rec, created, err := svc.Record(attendance.NewRecord{
		MemberID:  1,
		SessionID: 1,
		Date:      "1402/06/10",
		Status:    attendance.StatusPresent,
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if !created {
		t.Error("created = false, want true")
	}
	if rec.Status != attendance.StatusPresent {
		t.Errorf("Status = %q, want present", rec.Status)
	}

	// the same triple overwrites instead of duplicating
	again, created, err := svc.Record(attendance.NewRecord{
		MemberID:  1,
		SessionID: 1,
		Date:      "1402/06/10",
		Status:    attendance.StatusAbsent,
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if created {
		t.Error("created = true on overwrite, want false")
	}
	if again.ID != rec.ID {
		t.Errorf("ID = %v, want %v", again.ID, rec.ID)
	}
	if again.Status != attendance.StatusAbsent {
		t.Errorf("Status = %q, want absent", again.Status)
	}

	if _, _, err := svc.Record(attendance.NewRecord{
		MemberID: 1, SessionID: 1, Date: "1402/13/01", Status: attendance.StatusPresent,
	}); err == nil {
		t.Error("expected an error for a bad date")
	}
}

func TestService_BySessionDate(t *testing.T) {
	svc := newTestService(t)
	mark(t, svc, 1, 1, "1402/06/10", attendance.StatusPresent)
	mark(t, svc, 2, 1, "1402/06/10", attendance.StatusAbsent)
	mark(t, svc, 1, 1, "1402/06/12", attendance.StatusPresent)

	records, err := svc.BySessionDate(1, core.JDate{Year: 1402, Month: 6, Day: 10})
	if err != nil {
		t.Fatalf("BySessionDate() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].MemberID != 1 || records[1].MemberID != 2 {
		t.Errorf("records not ordered by member: %v, %v", records[0].MemberID, records[1].MemberID)
	}
}

func TestService_SuspendReactivate(t *testing.T) {
	svc := newTestService(t)
	mark(t, svc, 1, 1, "1402/06/05", attendance.StatusPresent) // past, untouched
	mark(t, svc, 1, 1, "1402/06/10", attendance.StatusPresent) // today
	mark(t, svc, 1, 1, "1402/06/15", attendance.StatusAbsent)  // future
	mark(t, svc, 1, 2, "1402/06/15", attendance.StatusPresent) // same member, other session
	mark(t, svc, 2, 1, "1402/06/15", attendance.StatusPresent) // other member

	changed, err := svc.Suspend(1, 1)
	if err != nil {
		t.Fatalf("Suspend() error = %v", err)
	}
	if changed != 2 {
		t.Errorf("Suspend() changed = %v, want 2", changed)
	}

	records, err := svc.ByMember(1)
	if err != nil {
		t.Fatalf("ByMember() error = %v", err)
	}
	wantStatuses := map[int]map[int]string{
		1: {
			5:  attendance.StatusPresent,
			10: attendance.StatusSuspended,
			15: attendance.StatusSuspended,
		},
		2: {15: attendance.StatusPresent}, // suspension is per session
	}
	for _, rec := range records {
		if want := wantStatuses[rec.SessionID][rec.Date.Day]; rec.Status != want {
			t.Errorf("status in session %d on %s = %q, want %q", rec.SessionID, rec.Date, rec.Status, want)
		}
		if rec.Status == attendance.StatusSuspended && !rec.UpdatedAt.After(rec.CreatedAt) {
			t.Errorf("UpdatedAt on %s not advanced by the status change", rec.Date)
		}
	}

	// reactivation only touches suspended records
	changed, err = svc.Reactivate(1, 1)
	if err != nil {
		t.Fatalf("Reactivate() error = %v", err)
	}
	if changed != 2 {
		t.Errorf("Reactivate() changed = %v, want 2", changed)
	}
	records, _ = svc.ByMember(1)
	for _, rec := range records {
		if rec.SessionID != 1 {
			continue
		}
		if rec.Date.Day >= 10 && rec.Status != attendance.StatusAbsent {
			t.Errorf("status on %s = %q, want absent", rec.Date, rec.Status)
		}
	}

	// the other member was never touched
	other, _ := svc.ByMember(2)
	if len(other) != 1 || other[0].Status != attendance.StatusPresent {
		t.Errorf("member 2 records changed: %+v", other)
	}
}
