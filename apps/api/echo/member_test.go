package echoapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dojanghq/dojang/core/alert"
	"github.com/dojanghq/dojang/core/member"
)

func Test_memberApi_create(t *testing.T) {
	env := setupServer(t)
	sess := createSession(t, env, "even")

	tests := []httpTest{
		{
			name:   "valid member",
			body:   marchallObj(t, member.NewMember{Name: "Sara", FamilyName: "Ahmadi", NationalID: "0012345678", Belt: member.BeltWhite, BirthDate: "1390/02/14", SessionID: sess.ID}),
			wantCode: http.StatusCreated,
		},
		{
			name:     "missing required fields",
			body:     marchallObj(t, member.NewMember{Name: "Sara"}),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown belt",
			body:     marchallObj(t, member.NewMember{Name: "Sara", FamilyName: "Ahmadi", NationalID: "0012345679", Belt: "Purple", SessionID: sess.ID}),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad birth date",
			body:     marchallObj(t, member.NewMember{Name: "Sara", FamilyName: "Ahmadi", NationalID: "0012345670", BirthDate: "1390/13/01", SessionID: sess.ID}),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/members", tt.body)
			env.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_memberApi_retrieve(t *testing.T) {
	env := setupServer(t)
	sess := createSession(t, env, "even")
	mbr := createMember(t, env, "Reza", "Karimi", sess.ID)

	t.Run("found", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, fmt.Sprintf("/v1/members/%d", mbr.ID))
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want 200; body %s", rec.Code, rec.Body.String())
		}
	})

	tests := []httpTest{
		{
			name:     "not found",
			path:     "/v1/members/12345",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: member.ErrNotFound.Error()}),
		},
		{
			name:     "garbage id",
			path:     "/v1/members/abc",
			wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			env.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_memberApi_query(t *testing.T) {
	env := setupServer(t)
	sess := createSession(t, env, "even")
	createMember(t, env, "Reza", "Karimi", sess.ID)
	createMember(t, env, "Sara", "Ahmadi", sess.ID)

	tests := []struct {
		name      string
		path      string
		wantCount int
	}{
		{name: "all", path: "/v1/members", wantCount: 2},
		{name: "search hit", path: "/v1/members?search=ahmadi", wantCount: 1},
		{name: "search miss", path: "/v1/members?search=nobody", wantCount: 0},
		{name: "by session", path: fmt.Sprintf("/v1/members?session_id=%d", sess.ID), wantCount: 2},
		{name: "other session", path: "/v1/members?session_id=999", wantCount: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			env.server.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("code = %v; want 200; body %s", rec.Code, rec.Body.String())
			}
			var members []member.Member
			mustUnmarshal(t, rec.Body.Bytes(), &members)
			if len(members) != tt.wantCount {
				t.Errorf("got %d members, want %d", len(members), tt.wantCount)
			}
		})
	}
}

func Test_memberApi_memberAlerts(t *testing.T) {
	env := setupServer(t)
	sess := createSession(t, env, "even")
	mbr := createMember(t, env, "Reza", "Karimi", sess.ID)

	req, rec := newRequest(http.MethodGet, fmt.Sprintf("/v1/members/%d/alerts", mbr.ID))
	env.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; want 200; body %s", rec.Code, rec.Body.String())
	}

	// a fresh member has no payment on record
	var alerts []alert.Alert
	mustUnmarshal(t, rec.Body.Bytes(), &alerts)
	var found bool
	for _, a := range alerts {
		if a.Kind == alert.KindPaymentMissing {
			found = true
		}
	}
	if !found {
		t.Errorf("alerts = %+v; want a %s alert", alerts, alert.KindPaymentMissing)
	}
}

func Test_memberApi_ageReport(t *testing.T) {
	env := setupServer(t)
	sess := createSession(t, env, "even")
	createMember(t, env, "Reza", "Karimi", sess.ID) // no birth date on record
	_, err := env.memberSvc.Create(member.NewMember{
		Name:       "Sara",
		FamilyName: "Ahmadi",
		NationalID: "Sara-Ahmadi",
		Belt:       member.BeltWhite,
		SessionID:  sess.ID,
		BirthDate:  "1380/01/01", // adult for the foreseeable future
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	req, rec := newRequest(http.MethodGet, "/v1/members/age-categories")
	env.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; want 200; body %s", rec.Code, rec.Body.String())
	}
	var resp AgeReportResponse
	mustUnmarshal(t, rec.Body.Bytes(), &resp)
	if len(resp.Members) != 2 {
		t.Fatalf("got %d members, want 2", len(resp.Members))
	}
	if got := resp.Counts["Seniors"]; got != 1 {
		t.Errorf("Counts[Seniors] = %d; want 1", got)
	}
	if got := resp.Counts["Unknown"]; got != 1 {
		t.Errorf("Counts[Unknown] = %d; want 1", got)
	}

	req, rec = newRequest(http.MethodGet, "/v1/members/age-categories?category=Seniors")
	env.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; want 200; body %s", rec.Code, rec.Body.String())
	}
	mustUnmarshal(t, rec.Body.Bytes(), &resp)
	if len(resp.Members) != 1 || resp.Members[0].AgeCategory != "Seniors" {
		t.Errorf("filtered members = %+v; want the one senior", resp.Members)
	}
}

func Test_memberApi_destroy(t *testing.T) {
	env := setupServer(t)
	sess := createSession(t, env, "even")
	mbr := createMember(t, env, "Reza", "Karimi", sess.ID)

	req, rec := newRequest(http.MethodDelete, fmt.Sprintf("/v1/members/%d", mbr.ID))
	env.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("code = %v; want 204; body %s", rec.Code, rec.Body.String())
	}

	req, rec = newRequest(http.MethodGet, fmt.Sprintf("/v1/members/%d", mbr.ID))
	env.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("code = %v after delete; want 404", rec.Code)
	}
}
