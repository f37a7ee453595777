package echoapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dojanghq/dojang/core/club"
)

func Test_clubApi_create(t *testing.T) {
	env := setupServer(t)

	tests := []httpTest{
		{
			name:     "valid club",
			body:     marchallObj(t, club.NewClub{Name: "Olympic", Address: "12 Azadi St", Phone: "021555"}),
			wantCode: http.StatusCreated,
		},
		{
			name:     "missing name",
			body:     marchallObj(t, club.NewClub{Address: "12 Azadi St"}),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/clubs", tt.body)
			env.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_clubApi_createSession(t *testing.T) {
	env := setupServer(t)
	c, err := env.clubSvc.Create(club.NewClub{Name: "Olympic"})
	if err != nil {
		t.Fatalf("seeding club: %v", err)
	}

	tests := []httpTest{
		{
			name:     "valid session",
			body:     marchallObj(t, club.NewSession{ClubID: c.ID, CoachName: "Master Kim", DayType: club.DayTypeOdd, ClassTime: "18:00"}),
			wantCode: http.StatusCreated,
		},
		{
			name:     "unknown day pattern",
			body:     marchallObj(t, club.NewSession{ClubID: c.ID, CoachName: "Master Kim", DayType: "daily", ClassTime: "18:00"}),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown club",
			body:     marchallObj(t, club.NewSession{ClubID: 999, CoachName: "Master Kim", DayType: club.DayTypeOdd, ClassTime: "18:00"}),
			wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/sessions", tt.body)
			env.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_clubApi_deleteGuards(t *testing.T) {
	env := setupServer(t)
	sess := createSession(t, env, "even")
	mbr := createMember(t, env, "Reza", "Karimi", sess.ID)

	t.Run("club with sessions", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, fmt.Sprintf("/v1/clubs/%d", sess.ClubID))
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v; want 400; body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("session with members", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, fmt.Sprintf("/v1/sessions/%d", sess.ID))
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v; want 400; body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("empty session then club", func(t *testing.T) {
		if err := env.memberSvc.Delete(mbr.ID); err != nil {
			t.Fatalf("deleting member: %v", err)
		}

		req, rec := newRequest(http.MethodDelete, fmt.Sprintf("/v1/sessions/%d", sess.ID))
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("session delete code = %v; want 204; body %s", rec.Code, rec.Body.String())
		}

		req, rec = newRequest(http.MethodDelete, fmt.Sprintf("/v1/clubs/%d", sess.ClubID))
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("club delete code = %v; want 204; body %s", rec.Code, rec.Body.String())
		}
	})
}
