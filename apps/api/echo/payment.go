package echoapi

import (
	"net/http"
	"sort"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/dojanghq/dojang/core"
	"github.com/dojanghq/dojang/core/member"
	"github.com/dojanghq/dojang/core/payment"
)

type paymentApi struct {
	svc        *payment.Service
	memberSvc  *member.Service
	cal        core.Calendar
	validate   *validator.Validate
	translator ut.Translator
}

func registerPaymentAPI(g *echo.Group, deps ServerDeps) {
	api := paymentApi{
		svc:        deps.PaymentSvc,
		memberSvc:  deps.MemberSvc,
		cal:        deps.Calendar,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	pg := g.Group("/payments")
	pg.POST("", api.create)
	pg.GET("", api.query)
	pg.GET("/report", api.report)
	pg.GET("/tracking/:code", api.retrieveByTrackingCode)
	pg.GET("/:id", api.retrieve)
	pg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *paymentApi) create(ctx echo.Context) error {
	var data payment.NewPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPayment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.svc.Create(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *paymentApi) query(ctx echo.Context) error {
	filter := new(payment.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []payment.Payment{})
	}

	payments, err := api.svc.Filter(*filter)
	if err != nil {
		return errors.Wrap(err, "querying payments")
	}
	if payments == nil {
		payments = []payment.Payment{}
	}
	return ctx.JSON(http.StatusOK, payments)
}

// report lists every member with their standing for one billing month,
// defaulting to the current one. Each entry carries the month's payment (if
// any) with its Jalali date, and the member's arrears.
func (api *paymentApi) report(ctx echo.Context) error {
	var query PaymentReportQuery
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to PaymentReportQuery")
	}

	today := api.cal.Today()
	if query.Year == 0 {
		query.Year = today.Year
	}
	if query.Month == 0 {
		query.Month = today.Month
	}
	period := payment.Period{Year: query.Year, Month: query.Month}

	members, err := api.memberSvc.Filter(member.QueryFilter{
		Search:    query.Search,
		SessionID: query.SessionID,
	}, nil)
	if err != nil {
		return errors.Wrap(err, "querying members")
	}

	entries := make([]PaymentReportEntry, 0, len(members))
	for _, mbr := range members {
		entry := PaymentReportEntry{Member: mbr, PaymentStatus: PaymentStatusUnpaid}

		p, err := api.svc.ByPeriod(mbr.ID, period)
		switch errors.Cause(err) {
		case nil:
			entry.Payment = &p
			entry.PaymentDateJalali = api.cal.FromGregorian(p.PaymentDate)
			entry.PaymentStatus = PaymentStatusPaid
		case payment.ErrNotFound:
		default:
			return errors.Wrap(err, "querying period payment")
		}

		if entry.Overdue, err = api.svc.ComputeOverdue(mbr.ID, today); err != nil {
			return errors.Wrap(err, "computing arrears")
		}

		if query.Status != "" && entry.PaymentStatus != query.Status {
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].FamilyName != entries[j].FamilyName {
			return entries[i].FamilyName < entries[j].FamilyName
		}
		return entries[i].Name < entries[j].Name
	})
	return ctx.JSON(http.StatusOK, PaymentReportResponse{Period: period, Members: entries})
}

func (api *paymentApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	p, err := api.svc.GetByID(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, p)
}

// retrieveByTrackingCode answers whether a bank tracking code is already on
// record, so the front desk can spot a double entry before saving.
func (api *paymentApi) retrieveByTrackingCode(ctx echo.Context) error {
	p, err := api.svc.GetByTrackingCode(ctx.Param("code"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, p)
}

// Payment standing of a member for the reported month.
const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)

type (
	PaymentReportQuery struct {
		Search    string `query:"search"`
		SessionID int    `query:"session_id"`
		Month     int    `query:"month"`
		Year      int    `query:"year"`
		Status    string `query:"status"` // paid | unpaid
	}

	PaymentReportEntry struct {
		member.Member
		Payment           *payment.Payment `json:"payment,omitempty"`
		PaymentDateJalali core.JDate       `json:"payment_date_jalali"`
		PaymentStatus     string           `json:"payment_status"`
		Overdue           payment.Overdue  `json:"overdue"`
	}

	PaymentReportResponse struct {
		Period  payment.Period       `json:"period"`
		Members []PaymentReportEntry `json:"members"`
	}
)

func (api *paymentApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if _, err := api.svc.GetByID(id); err != nil {
		return err
	}
	if err := api.svc.Delete(id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
