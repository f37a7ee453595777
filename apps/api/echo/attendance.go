package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/dojanghq/dojang/core"
	"github.com/dojanghq/dojang/core/attendance"
	"github.com/dojanghq/dojang/core/club"
	"github.com/dojanghq/dojang/core/member"
)

type attendanceApi struct {
	svc        *attendance.Service
	clubSvc    *club.Service
	memberSvc  *member.Service
	cal        core.Calendar
	validate   *validator.Validate
	translator ut.Translator
}

func registerAttendanceAPI(g *echo.Group, deps ServerDeps) {
	api := attendanceApi{
		svc:        deps.AttendanceSvc,
		clubSvc:    deps.ClubSvc,
		memberSvc:  deps.MemberSvc,
		cal:        deps.Calendar,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	g.POST("/attendance", api.record)

	sg := g.Group("/sessions/:id")
	sg.GET("/dates", api.sessionDates)
	sg.GET("/attendance", api.sessionAttendance)

	mg := g.Group("/members/:id")
	mg.GET("/attendance", api.memberAttendance)
	mg.POST("/suspend", api.suspend)
	mg.POST("/reactivate", api.reactivate)
}

// Handlers

func (api *attendanceApi) record(ctx echo.Context) error {
	var data attendance.NewRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRecord")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	if _, err := api.memberSvc.GetByID(data.MemberID); err != nil {
		return err
	}
	if _, err := api.clubSvc.GetSession(data.SessionID); err != nil {
		return err
	}

	rec, created, err := api.svc.Record(data)
	if err != nil {
		return err
	}
	if created {
		return ctx.JSON(http.StatusCreated, rec)
	}
	return ctx.JSON(http.StatusOK, rec)
}

// sessionDates lists the dates a session meets on in the requested Jalali
// month, defaulting to the current one.
func (api *attendanceApi) sessionDates(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	sess, err := api.clubSvc.GetSession(id)
	if err != nil {
		return err
	}

	var query MonthQuery
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to MonthQuery")
	}
	today := api.cal.Today()
	if query.Year == 0 {
		query.Year = today.Year
	}
	if query.Month == 0 {
		query.Month = today.Month
	}

	dates, err := attendance.AllowedDates(api.cal, sess.DayType, query.Year, query.Month)
	if err != nil {
		if errors.Cause(err) == core.ErrBadJDate {
			return core.NewValidationError(err, core.FieldError{Field: "month", Error: err.Error()})
		}
		return errors.Wrap(err, "listing session dates")
	}
	return ctx.JSON(http.StatusOK, dates)
}

func (api *attendanceApi) sessionAttendance(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if _, err := api.clubSvc.GetSession(id); err != nil {
		return err
	}

	date, err := core.ParseJDate(ctx.QueryParam("date"))
	if err != nil {
		return err
	}

	records, err := api.svc.BySessionDate(id, date)
	if err != nil {
		return errors.Wrap(err, "querying session attendance")
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) memberAttendance(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if _, err := api.memberSvc.GetByID(id); err != nil {
		return err
	}

	records, err := api.svc.ByMember(id)
	if err != nil {
		return errors.Wrap(err, "querying member attendance")
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return ctx.JSON(http.StatusOK, records)
}

// suspendTarget resolves the (member, session) pair a status change applies
// to, checking both exist.
func (api *attendanceApi) suspendTarget(ctx echo.Context) (int, int, error) {
	id, err := pathID(ctx)
	if err != nil {
		return 0, 0, err
	}
	if _, err := api.memberSvc.GetByID(id); err != nil {
		return 0, 0, err
	}

	var data StatusChangeRequest
	if err := ctx.Bind(&data); err != nil {
		return 0, 0, errors.Wrap(err, "binding to StatusChangeRequest")
	}
	if data.SessionID == 0 {
		return 0, 0, core.NewValidationError(errSessionIDRequired,
			core.FieldError{Field: "session_id", Error: errSessionIDRequired.Error()})
	}
	if _, err := api.clubSvc.GetSession(data.SessionID); err != nil {
		return 0, 0, err
	}
	return id, data.SessionID, nil
}

func (api *attendanceApi) suspend(ctx echo.Context) error {
	memberID, sessionID, err := api.suspendTarget(ctx)
	if err != nil {
		return err
	}

	count, err := api.svc.Suspend(memberID, sessionID)
	if err != nil {
		return errors.Wrap(err, "suspending member")
	}
	return ctx.JSON(http.StatusOK, StatusChangeResponse{Changed: count})
}

func (api *attendanceApi) reactivate(ctx echo.Context) error {
	memberID, sessionID, err := api.suspendTarget(ctx)
	if err != nil {
		return err
	}

	count, err := api.svc.Reactivate(memberID, sessionID)
	if err != nil {
		return errors.Wrap(err, "reactivating member")
	}
	return ctx.JSON(http.StatusOK, StatusChangeResponse{Changed: count})
}

var errSessionIDRequired = errors.New("session_id is required")

type (
	MonthQuery struct {
		Year  int `query:"year"`
		Month int `query:"month"`
	}

	StatusChangeRequest struct {
		SessionID int `json:"session_id"`
	}

	StatusChangeResponse struct {
		Changed int `json:"changed"`
	}
)
