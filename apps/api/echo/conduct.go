package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/conduct"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/operator"
)

type conductApi struct {
	svc         *conduct.Service
	operatorSvc *operator.Service
	validate    *validator.Validate
}

func registerConductAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := conductApi{
		svc:         opts.ConductSvc,
		operatorSvc: opts.OperatorSvc,
		validate:    opts.Validate,
	}

	rg := g.Group("/reports", jwt)
	rg.GET("", api.query)
	rg.POST("", api.create)
	rg.PUT("/:id/action", api.act)
	rg.DELETE("/:id", api.destroy, adminMiddleware())

	tg := g.Group("/templates", jwt)
	tg.GET("/:polarity", api.queryTemplates)
	tg.PUT("/:polarity", api.replaceTemplates, adminMiddleware())
}

func (api *conductApi) query(ctx echo.Context) error {
	reports, err := api.svc.QueryReports()
	if err != nil {
		return errors.Wrap(err, "querying reports")
	}
	if reports == nil {
		reports = []conduct.Report{}
	}
	return ctx.JSON(http.StatusOK, reports)
}

func (api *conductApi) create(ctx echo.Context) error {
	var data conduct.NewReport
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewReport")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	report, err := api.svc.File(claims.FullName, data)
	if err != nil {
		return errors.Wrap(err, "filing report")
	}
	return ctx.JSON(http.StatusCreated, report)
}

func (api *conductApi) act(ctx echo.Context) error {
	var data conduct.ReportAction
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ReportAction")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	report, err := api.svc.Act(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == conduct.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "acting on report")
	}
	return ctx.JSON(http.StatusOK, report)
}

func (api *conductApi) destroy(ctx echo.Context) error {
	ctxOp, err := getContextOperator(ctx, api.operatorSvc)
	if err != nil {
		return errors.Wrap(err, "getting context operator")
	}

	if err := api.svc.Delete(ctxOp, ctx.Param("id")); err != nil {
		if errors.Cause(err) == conduct.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting report")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func polarityParam(ctx echo.Context) (conduct.Polarity, error) {
	switch ctx.Param("polarity") {
	case "violations":
		return conduct.PolarityViolation, nil
	case "achievements":
		return conduct.PolarityAchievement, nil
	default:
		return "", errHttpNotFound
	}
}

func (api *conductApi) queryTemplates(ctx echo.Context) error {
	polarity, err := polarityParam(ctx)
	if err != nil {
		return err
	}
	templates, err := api.svc.QueryTemplates(polarity)
	if err != nil {
		return errors.Wrap(err, "querying templates")
	}
	if templates == nil {
		templates = []conduct.Template{}
	}
	return ctx.JSON(http.StatusOK, templates)
}

func (api *conductApi) replaceTemplates(ctx echo.Context) error {
	polarity, err := polarityParam(ctx)
	if err != nil {
		return err
	}

	var templates []conduct.Template
	if err := ctx.Bind(&templates); err != nil {
		return errors.Wrap(err, "binding to templates")
	}
	if err := api.svc.ReplaceTemplates(polarity, templates); err != nil {
		return errors.Wrap(err, "replacing templates")
	}

	templates, err = api.svc.QueryTemplates(polarity)
	if err != nil {
		return errors.Wrap(err, "querying templates")
	}
	return ctx.JSON(http.StatusOK, templates)
}
