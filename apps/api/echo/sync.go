package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/document"
	appsync "github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/sync"
)

// driveTokenHeader carries the bearer credential the client's sign-in flow
// obtained for the cloud file store; the server never stores it.
const driveTokenHeader = "X-Drive-Token"

type syncApi struct {
	store      *document.Store
	reconciler *appsync.Reconciler
}

func registerSyncAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := syncApi{store: opts.Store, reconciler: opts.Reconciler}

	sg := g.Group("/sync", jwt)
	sg.GET("/status", api.status)
	sg.POST("/push", api.push)
	sg.POST("/pull", api.pull, adminMiddleware())
	sg.PUT("/auto", api.setAuto)
	sg.GET("/probe", api.probe)

	// academic config rides along with the document endpoints
	dg := g.Group("/document", jwt)
	dg.GET("", api.snapshot)
	dg.GET("/academic-config", api.academicConfig)
	dg.PUT("/academic-config", api.updateAcademicConfig, adminMiddleware())
	dg.DELETE("", api.clear, adminMiddleware())
}

type SyncStatusResponse struct {
	document.SyncStatus
	State appsync.State `json:"state"`
}

func (api *syncApi) status(ctx echo.Context) error {
	status, err := api.store.SyncStatus()
	if err != nil {
		return errors.Wrap(err, "reading sync status")
	}
	return ctx.JSON(http.StatusOK, SyncStatusResponse{SyncStatus: status, State: api.reconciler.State()})
}

func syncError(err error) error {
	switch errors.Cause(err) {
	case appsync.ErrDisabled:
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	case appsync.ErrNoCredential:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case appsync.ErrBusy:
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case appsync.ErrRemoteEmpty:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return err
}

func (api *syncApi) push(ctx echo.Context) error {
	force := ctx.QueryParam("force") == "true"
	if err := api.reconciler.Push(ctx.Request().Context(), ctx.Request().Header.Get(driveTokenHeader), force); err != nil {
		return syncError(err)
	}
	return api.status(ctx)
}

func (api *syncApi) pull(ctx echo.Context) error {
	doc, err := api.reconciler.Pull(ctx.Request().Context(), ctx.Request().Header.Get(driveTokenHeader))
	if err != nil {
		return syncError(err)
	}
	return ctx.JSON(http.StatusOK, doc)
}

func (api *syncApi) setAuto(ctx echo.Context) error {
	var data struct {
		AutoSync bool `json:"autoSync"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to auto sync toggle")
	}
	status, err := api.store.SetAutoSync(data.AutoSync)
	if err != nil {
		return errors.Wrap(err, "toggling auto sync")
	}
	return ctx.JSON(http.StatusOK, SyncStatusResponse{SyncStatus: status, State: api.reconciler.State()})
}

func (api *syncApi) probe(ctx echo.Context) error {
	if err := api.reconciler.Probe(ctx.Request().Context(), ctx.Request().Header.Get(driveTokenHeader)); err != nil {
		if errors.Cause(err) == appsync.ErrDisabled || errors.Cause(err) == appsync.ErrNoCredential {
			return syncError(err)
		}
		return echo.NewHTTPError(http.StatusBadGateway, "backup store unreachable")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"reachable": true})
}

func (api *syncApi) snapshot(ctx echo.Context) error {
	doc, err := api.store.Snapshot()
	if err != nil {
		return errors.Wrap(err, "reading document snapshot")
	}
	return ctx.JSON(http.StatusOK, doc)
}

func (api *syncApi) academicConfig(ctx echo.Context) error {
	doc, err := api.store.Snapshot()
	if err != nil {
		return errors.Wrap(err, "reading document snapshot")
	}
	return ctx.JSON(http.StatusOK, doc.AcademicConfig)
}

func (api *syncApi) updateAcademicConfig(ctx echo.Context) error {
	var data document.AcademicConfig
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AcademicConfig")
	}
	doc, err := api.store.SetAcademicConfig(data)
	if err != nil {
		return errors.Wrap(err, "updating academic config")
	}
	return ctx.JSON(http.StatusOK, doc.AcademicConfig)
}

// clear wipes the document only; registered operators and the session slot
// are separate stores and survive.
func (api *syncApi) clear(ctx echo.Context) error {
	if _, err := api.store.Clear(); err != nil {
		return errors.Wrap(err, "clearing document")
	}
	return ctx.NoContent(http.StatusNoContent)
}
