package echoapi

import (
	"net/http"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/dojanghq/dojang/core/alert"
	"github.com/dojanghq/dojang/core/member"
)

type memberApi struct {
	svc        *member.Service
	alerts     *alert.Engine
	validate   *validator.Validate
	translator ut.Translator
}

func registerMemberAPI(g *echo.Group, deps ServerDeps) {
	api := memberApi{
		svc:        deps.MemberSvc,
		alerts:     deps.AlertEngine,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	mg := g.Group("/members")
	mg.POST("", api.create)
	mg.GET("", api.query)
	mg.DELETE("", api.destroyMultiple)
	mg.GET("/age-categories", api.ageReport)
	mg.GET("/:id", api.retrieve)
	mg.PUT("/:id", api.update)
	mg.DELETE("/:id", api.destroy)
	mg.GET("/:id/alerts", api.memberAlerts)
}

// Handlers

func (api *memberApi) create(ctx echo.Context) error {
	var data member.NewMember
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMember")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	mbr, err := api.svc.Create(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, mbr)
}

func (api *memberApi) query(ctx echo.Context) error {
	filter := new(member.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []member.Member{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	members, err := api.svc.Filter(*filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying members")
	}
	if members == nil {
		members = []member.Member{}
	}
	return ctx.JSON(http.StatusOK, members)
}

func (api *memberApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	mbr, err := api.svc.GetByID(id)
	if err != nil {
		return err
	}

	resp := MemberDetailResponse{
		Member:          mbr,
		InsuranceStatus: mbr.InsuranceStatus(time.Now().UTC()),
	}
	if mbr.BirthDate.Valid {
		now := time.Now().UTC()
		resp.Age = member.Age(mbr.BirthDate.Time, now)
		if cat, ok := member.AgeCategoryFor(mbr.BirthDate.Time, now); ok {
			resp.AgeCategory = cat.Name
		}
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *memberApi) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var data member.UpdateMember
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateMember")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	mbr, err := api.svc.Update(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mbr)
}

func (api *memberApi) destroy(ctx echo.Context) error {
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

func (api *memberApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.Delete(query.IDs...); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *memberApi) memberAlerts(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	mbr, err := api.svc.GetByID(id)
	if err != nil {
		return err
	}

	alerts, err := api.alerts.MemberAlerts(mbr, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "evaluating member alerts")
	}
	if alerts == nil {
		alerts = []alert.Alert{}
	}
	return ctx.JSON(http.StatusOK, alerts)
}

// ageReport lists members bucketed into the federation age bands, with
// per-band counts. Accepts the same filters as the member listing plus an
// optional ?category= band name.
func (api *memberApi) ageReport(ctx echo.Context) error {
	filter := new(member.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	category := ctx.QueryParam("category")

	members, err := api.svc.Filter(*filter, nil)
	if err != nil {
		return errors.Wrap(err, "querying members")
	}

	now := time.Now().UTC()
	resp := AgeReportResponse{
		Counts:  make(map[string]int, len(member.AgeCategories)+1),
		Members: make([]AgeReportMember, 0, len(members)),
	}
	for _, cat := range member.AgeCategories {
		resp.Counts[cat.Name] = 0
	}
	resp.Counts[ageCategoryUnknown] = 0

	for _, mbr := range members {
		name := ageCategoryUnknown
		var age int
		if mbr.BirthDate.Valid {
			age = member.Age(mbr.BirthDate.Time, now)
			if cat, ok := member.AgeCategoryFor(mbr.BirthDate.Time, now); ok {
				name = cat.Name
			}
		}
		resp.Counts[name]++
		if category != "" && name != category {
			continue
		}
		resp.Members = append(resp.Members, AgeReportMember{Member: mbr, Age: age, AgeCategory: name})
	}
	return ctx.JSON(http.StatusOK, resp)
}

const ageCategoryUnknown = "Unknown"

type (
	MemberDetailResponse struct {
		member.Member
		InsuranceStatus string `json:"insurance_status,omitempty"`
		Age             int    `json:"age,omitempty"`
		AgeCategory     string `json:"age_category,omitempty"`
	}

	DestroyMultipleRequest struct {
		IDs []int `query:"id"`
	}

	AgeReportMember struct {
		member.Member
		Age         int    `json:"age"`
		AgeCategory string `json:"age_category"`
	}

	AgeReportResponse struct {
		Members []AgeReportMember `json:"members"`
		Counts  map[string]int    `json:"counts"`
	}
)
