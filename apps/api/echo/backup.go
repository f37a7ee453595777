package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	backupsvc "github.com/dojanghq/dojang/services/backup"
)

type backupApi struct {
	manager *backupsvc.Manager
}

func registerBackupAPI(g *echo.Group, deps ServerDeps) {
	api := backupApi{manager: deps.Backup}
	g.POST("/backups", api.create)
}

// create takes a manual database snapshot on demand.
func (api *backupApi) create(ctx echo.Context) error {
	path, err := api.manager.Snapshot(backupsvc.KindManual)
	if err != nil {
		return errors.Wrap(err, "taking manual snapshot")
	}
	return ctx.JSON(http.StatusCreated, BackupResponse{Path: path})
}

type BackupResponse struct {
	Path string `json:"path"`
}
