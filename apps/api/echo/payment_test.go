package echoapi

import (
	"net/http"
	"testing"

	"github.com/dojanghq/dojang/core/payment"
)

func Test_paymentApi_create(t *testing.T) {
	env := setupServer(t)
	sess := createSession(t, env, "even")
	mbr := createMember(t, env, "Reza", "Karimi", sess.ID)

	newPayment := func(month int, code string) []byte {
		return marchallObj(t, payment.NewPayment{
			MemberID:     mbr.ID,
			Amount:       500000,
			PaymentDate:  "1402/06/05",
			Month:        month,
			Year:         1402,
			TrackingCode: code,
		})
	}

	tests := []httpTest{
		{
			name:     "first payment",
			body:     newPayment(6, "TRK-100"),
			wantCode: http.StatusCreated,
		},
		{
			name:     "duplicate billing month",
			body:     newPayment(6, "TRK-101"),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "duplicate tracking code",
			body:     newPayment(7, "TRK-100"),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "blank tracking code never collides",
			body:     newPayment(7, ""),
			wantCode: http.StatusCreated,
		},
		{
			name:     "second blank tracking code",
			body:     newPayment(8, ""),
			wantCode: http.StatusCreated,
		},
		{
			name:     "month out of range",
			body:     newPayment(13, "TRK-102"),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/payments", tt.body)
			env.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_paymentApi_report(t *testing.T) {
	env := setupServer(t)
	sess := createSession(t, env, "even")
	payer := createMember(t, env, "Sara", "Ahmadi", sess.ID)
	createMember(t, env, "Reza", "Karimi", sess.ID) // never paid

	if _, err := env.paymentSvc.Create(payment.NewPayment{
		MemberID:    payer.ID,
		Amount:      500000,
		PaymentDate: "1402/06/05",
		Month:       6,
		Year:        1402,
	}); err != nil {
		t.Fatalf("seeding payment: %v", err)
	}

	// default period is the current billing month
	req, rec := newRequest(http.MethodGet, "/v1/payments/report")
	env.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; want 200; body %s", rec.Code, rec.Body.String())
	}
	var resp PaymentReportResponse
	mustUnmarshal(t, rec.Body.Bytes(), &resp)
	if resp.Period.Year != 1402 || resp.Period.Month != 6 {
		t.Errorf("period = %v, want Shahrivar 1402", resp.Period)
	}
	if len(resp.Members) != 2 {
		t.Fatalf("got %d entries, want 2", len(resp.Members))
	}
	// ordered by family name
	paid, unpaid := resp.Members[0], resp.Members[1]
	if paid.FamilyName != "Ahmadi" || unpaid.FamilyName != "Karimi" {
		t.Fatalf("entries out of order: %q, %q", paid.FamilyName, unpaid.FamilyName)
	}
	if paid.PaymentStatus != PaymentStatusPaid || paid.Payment == nil {
		t.Errorf("payer entry = %+v; want a paid entry", paid)
	}
	if want := "1402/06/05"; paid.PaymentDateJalali.String() != want {
		t.Errorf("PaymentDateJalali = %s, want %s", paid.PaymentDateJalali, want)
	}
	if paid.Overdue.Count != 0 || paid.Overdue.Severity != payment.SeverityCurrent {
		t.Errorf("payer arrears = %+v; want current", paid.Overdue)
	}
	if unpaid.PaymentStatus != PaymentStatusUnpaid || unpaid.Payment != nil {
		t.Errorf("non-payer entry = %+v; want an unpaid entry", unpaid)
	}
	if !unpaid.Overdue.NoHistory || unpaid.Overdue.Severity != payment.SeverityDanger {
		t.Errorf("non-payer arrears = %+v; want danger with no history", unpaid.Overdue)
	}

	// paid/unpaid filter
	req, rec = newRequest(http.MethodGet, "/v1/payments/report?status=unpaid")
	env.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; want 200; body %s", rec.Code, rec.Body.String())
	}
	mustUnmarshal(t, rec.Body.Bytes(), &resp)
	if len(resp.Members) != 1 || resp.Members[0].FamilyName != "Karimi" {
		t.Errorf("unpaid entries = %+v; want only Karimi", resp.Members)
	}
}

func Test_paymentApi_retrieveByTrackingCode(t *testing.T) {
	env := setupServer(t)
	sess := createSession(t, env, "even")
	mbr := createMember(t, env, "Reza", "Karimi", sess.ID)

	seeded, err := env.paymentSvc.Create(payment.NewPayment{
		MemberID:     mbr.ID,
		Amount:       500000,
		PaymentDate:  "1402/06/05",
		Month:        6,
		Year:         1402,
		TrackingCode: "TRK-200",
	})
	if err != nil {
		t.Fatalf("seeding payment: %v", err)
	}

	req, rec := newRequest(http.MethodGet, "/v1/payments/tracking/TRK-200")
	env.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; want 200; body %s", rec.Code, rec.Body.String())
	}
	var got payment.Payment
	mustUnmarshal(t, rec.Body.Bytes(), &got)
	if got.ID != seeded.ID {
		t.Errorf("ID = %v, want %v", got.ID, seeded.ID)
	}

	req, rec = newRequest(http.MethodGet, "/v1/payments/tracking/TRK-999")
	env.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("code = %v; want 404", rec.Code)
	}
}
