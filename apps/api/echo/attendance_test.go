package echoapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dojanghq/dojang/core/attendance"
	"github.com/dojanghq/dojang/core/club"
)

func Test_attendanceApi_record(t *testing.T) {
	env := setupServer(t)
	sess := createSession(t, env, "even")
	mbr := createMember(t, env, "Reza", "Karimi", sess.ID)

	record := func(memberID, sessionID int, date, status string) []byte {
		return marchallObj(t, attendance.NewRecord{
			MemberID: memberID, SessionID: sessionID, Date: date, Status: status,
		})
	}

	tests := []httpTest{
		{
			name:     "first mark",
			body:     record(mbr.ID, sess.ID, "1402/06/10", attendance.StatusPresent),
			wantCode: http.StatusCreated,
		},
		{
			name:     "same triple overwrites",
			body:     record(mbr.ID, sess.ID, "1402/06/10", attendance.StatusAbsent),
			wantCode: http.StatusOK,
		},
		{
			name:     "unknown status",
			body:     record(mbr.ID, sess.ID, "1402/06/10", "late"),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad date",
			body:     record(mbr.ID, sess.ID, "1402/13/01", attendance.StatusPresent),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown member",
			body:     record(999, sess.ID, "1402/06/10", attendance.StatusPresent),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "unknown session",
			body:     record(mbr.ID, 999, "1402/06/10", attendance.StatusPresent),
			wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/attendance", tt.body)
			env.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_attendanceApi_sessionDates(t *testing.T) {
	env := setupServer(t)
	sess := createSession(t, env, "weekend")

	t.Run("current month by default", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, fmt.Sprintf("/v1/sessions/%d/dates", sess.ID))
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want 200; body %s", rec.Code, rec.Body.String())
		}
		var dates []attendance.SessionDate
		mustUnmarshal(t, rec.Body.Bytes(), &dates)
		if len(dates) == 0 {
			t.Fatal("got no dates")
		}
		for _, d := range dates {
			if d.Weekday != "Thursday" && d.Weekday != "Friday" {
				t.Errorf("date %s has weekday %s, want Thursday or Friday", d.Date, d.Weekday)
			}
		}
	})

	t.Run("bad month", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, fmt.Sprintf("/v1/sessions/%d/dates?year=1402&month=13", sess.ID))
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v; want 400; body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/sessions/999/dates")
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %v; want 404", rec.Code)
		}
	})
}

func Test_attendanceApi_suspendReactivate(t *testing.T) {
	env := setupServer(t)
	sess := createSession(t, env, "even")
	other, err := env.clubSvc.AddSession(club.NewSession{
		ClubID:    sess.ClubID,
		CoachName: "Master Lee",
		DayType:   "odd",
		ClassTime: "19:30",
	})
	if err != nil {
		t.Fatalf("seeding second session: %v", err)
	}
	mbr := createMember(t, env, "Reza", "Karimi", sess.ID)

	seed := func(sessionID int, date, status string) {
		t.Helper()
		if _, _, err := env.attendanceSvc.Record(attendance.NewRecord{
			MemberID: mbr.ID, SessionID: sessionID, Date: date, Status: status,
		}); err != nil {
			t.Fatalf("seeding attendance: %v", err)
		}
	}
	seed(sess.ID, "1402/06/05", attendance.StatusPresent)  // past
	seed(sess.ID, "1402/06/10", attendance.StatusPresent)  // today
	seed(sess.ID, "1402/06/15", attendance.StatusAbsent)   // future
	seed(other.ID, "1402/06/15", attendance.StatusPresent) // other session

	post := func(action string, sessionID int) StatusChangeResponse {
		t.Helper()
		body := marchallObj(t, StatusChangeRequest{SessionID: sessionID})
		req, rec := newRequest(http.MethodPost, fmt.Sprintf("/v1/members/%d/%s", mbr.ID, action), body)
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s code = %v; want 200; body %s", action, rec.Code, rec.Body.String())
		}
		var resp StatusChangeResponse
		mustUnmarshal(t, rec.Body.Bytes(), &resp)
		return resp
	}

	// session_id is mandatory
	req, rec := newRequest(http.MethodPost, fmt.Sprintf("/v1/members/%d/suspend", mbr.ID), []byte(`{}`))
	env.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("suspend without session_id code = %v; want 400", rec.Code)
	}

	if resp := post("suspend", sess.ID); resp.Changed != 2 {
		t.Errorf("suspend changed = %v, want 2", resp.Changed)
	}
	if resp := post("reactivate", sess.ID); resp.Changed != 2 {
		t.Errorf("reactivate changed = %v, want 2", resp.Changed)
	}

	// the past record and the other session were never touched
	req, rec = newRequest(http.MethodGet, fmt.Sprintf("/v1/members/%d/attendance", mbr.ID))
	env.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; want 200", rec.Code)
	}
	var records []attendance.Record
	mustUnmarshal(t, rec.Body.Bytes(), &records)
	for _, r := range records {
		want := attendance.StatusAbsent
		if r.Date.Day == 5 || r.SessionID == other.ID {
			want = attendance.StatusPresent
		}
		if r.Status != want {
			t.Errorf("status in session %d on %s = %q, want %q", r.SessionID, r.Date, r.Status, want)
		}
	}
}
