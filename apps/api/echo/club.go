package echoapi

import (
	"net/http"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/dojanghq/dojang/core/club"
)

type clubApi struct {
	svc        *club.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerClubAPI(g *echo.Group, deps ServerDeps) {
	api := clubApi{
		svc:        deps.ClubSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	cg := g.Group("/clubs")
	cg.POST("", api.create)
	cg.GET("", api.query)
	cg.GET("/:id", api.retrieve)
	cg.PUT("/:id", api.update)
	cg.DELETE("/:id", api.destroy)
	cg.GET("/:id/sessions", api.querySessions)

	sg := g.Group("/sessions")
	sg.POST("", api.createSession)
	sg.GET("/:id", api.retrieveSession)
	sg.PUT("/:id", api.updateSession)
	sg.DELETE("/:id", api.destroySession)
}

// Handlers

func (api *clubApi) create(ctx echo.Context) error {
	var data club.NewClub
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClub")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating club")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *clubApi) query(ctx echo.Context) error {
	clubs, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying clubs")
	}
	if clubs == nil {
		clubs = []club.Club{}
	}
	return ctx.JSON(http.StatusOK, clubs)
}

func (api *clubApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	c, err := api.svc.GetByID(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *clubApi) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var data club.UpdateClub
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateClub")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Update(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *clubApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *clubApi) querySessions(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if _, err := api.svc.GetByID(id); err != nil {
		return err
	}
	sessions, err := api.svc.SessionsByClub(id)
	if err != nil {
		return errors.Wrap(err, "querying club sessions")
	}
	if sessions == nil {
		sessions = []club.Session{}
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *clubApi) createSession(ctx echo.Context) error {
	var data club.NewSession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSession")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.AddSession(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *clubApi) retrieveSession(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	s, err := api.svc.GetSession(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *clubApi) updateSession(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var data club.UpdateSession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSession")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.UpdateSession(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *clubApi) destroySession(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.DeleteSession(id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// pathID parses the :id path param; a malformed ID reads as "not found".
func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}
