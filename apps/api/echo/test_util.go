package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/dojanghq/dojang/core"
	"github.com/dojanghq/dojang/core/alert"
	"github.com/dojanghq/dojang/core/attendance"
	"github.com/dojanghq/dojang/core/club"
	"github.com/dojanghq/dojang/core/member"
	"github.com/dojanghq/dojang/core/payment"
	dummydb "github.com/dojanghq/dojang/storage/database/dummy"
)

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

// nopLogger discards everything; handler tests assert on responses, not logs.
type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

type testEnv struct {
	server        Server
	memberSvc     *member.Service
	clubSvc       *club.Service
	paymentSvc    *payment.Service
	attendanceSvc *attendance.Service
	cal           *core.FakeCalendar
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setupServer() failed: %v", err)
	}
	cal := &core.FakeCalendar{Now: core.JDate{Year: 1402, Month: 6, Day: 10}}

	env := &testEnv{
		cal:           cal,
		memberSvc:     member.NewService(dummydb.NewMemberRepository(db), cal),
		clubSvc:       club.NewService(dummydb.NewClubRepository(db)),
		paymentSvc:    payment.NewService(dummydb.NewPaymentRepository(db), cal),
		attendanceSvc: attendance.NewService(dummydb.NewAttendanceRepository(db), cal),
	}

	validate := validator.New()
	translator := newTestTranslator()
	core.InitValidators(validate, translator)
	member.InitValidators(validate, translator)
	club.InitValidators(validate, translator)
	attendance.InitValidators(validate, translator)

	env.server = NewServer(ServerDeps{
		Conf:          &core.Config{AppName: "Dojang", TestMode: true},
		Logger:        nopLogger{},
		Calendar:      cal,
		MemberSvc:     env.memberSvc,
		ClubSvc:       env.clubSvc,
		PaymentSvc:    env.paymentSvc,
		AttendanceSvc: env.attendanceSvc,
		AlertEngine:   alert.NewEngine(cal, env.paymentSvc),
		Validate:      validate,
		Translator:    translator,
	})
	return env
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// createSession seeds a club with one session and returns the session.
func createSession(t *testing.T, env *testEnv, dayType string) club.Session {
	t.Helper()
	c, err := env.clubSvc.Create(club.NewClub{Name: "Olympic"})
	if err != nil {
		t.Fatalf("createSession() failed: %v", err)
	}
	sess, err := env.clubSvc.AddSession(club.NewSession{
		ClubID:    c.ID,
		CoachName: "Master Kim",
		DayType:   dayType,
		ClassTime: "18:00",
	})
	if err != nil {
		t.Fatalf("createSession() failed: %v", err)
	}
	return sess
}

func createMember(t *testing.T, env *testEnv, name, family string, sessionID int) member.Member {
	t.Helper()
	mbr, err := env.memberSvc.Create(member.NewMember{
		Name:       name,
		FamilyName: family,
		NationalID: name + "-" + family,
		Belt:       member.BeltWhite,
		SessionID:  sessionID,
	})
	if err != nil {
		t.Fatalf("createMember() failed: %v", err)
	}
	return mbr
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func mustUnmarshal(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("mustUnmarshal() failed: %v", err)
	}
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
