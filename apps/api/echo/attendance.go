package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/attendance"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/operator"
)

type attendanceApi struct {
	svc         *attendance.Service
	operatorSvc *operator.Service
	validate    *validator.Validate
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := attendanceApi{
		svc:         opts.AttendanceSvc,
		operatorSvc: opts.OperatorSvc,
		validate:    opts.Validate,
	}

	ag := g.Group("/attendance", jwt)
	ag.POST("", api.recordBatch, roleMiddleware(teacherRoles...))
	ag.DELETE("/:id", api.destroyRecord, adminMiddleware())

	tg := g.Group("/teacher-sessions", jwt)
	tg.GET("/today", api.todaySessions)
	tg.POST("/check-in", api.checkIn, roleMiddleware(teacherRoles...))
	tg.POST("/check-out", api.checkOut, roleMiddleware(teacherRoles...))
	tg.DELETE("/:id", api.destroySession, adminMiddleware())
}

func (api *attendanceApi) recordBatch(ctx echo.Context) error {
	var data attendance.NewBatch
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBatch")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	records, err := api.svc.RecordBatch(claims.FullName, data)
	if err != nil {
		return errors.Wrap(err, "recording attendance batch")
	}
	return ctx.JSON(http.StatusCreated, records)
}

func (api *attendanceApi) destroyRecord(ctx echo.Context) error {
	if err := api.svc.DeleteRecord(ctx.Param("id")); err != nil {
		if errors.Cause(err) == attendance.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting attendance record")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *attendanceApi) todaySessions(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	sessions, err := api.svc.TodaySessions(claims.FullName)
	if err != nil {
		return errors.Wrap(err, "querying today's sessions")
	}
	if sessions == nil {
		sessions = []attendance.TeacherSession{}
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *attendanceApi) checkIn(ctx echo.Context) error {
	var data attendance.CheckIn
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CheckIn")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	session, err := api.svc.CheckIn(claims.FullName, data)
	if err != nil {
		return errors.Wrap(err, "checking in")
	}
	return ctx.JSON(http.StatusCreated, session)
}

func (api *attendanceApi) checkOut(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	session, err := api.svc.CheckOut(claims.FullName)
	if err != nil {
		if errors.Cause(err) == attendance.ErrNoOpenSession {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return errors.Wrap(err, "checking out")
	}
	return ctx.JSON(http.StatusOK, session)
}

func (api *attendanceApi) destroySession(ctx echo.Context) error {
	if err := api.svc.DeleteTeacherSession(ctx.Param("id")); err != nil {
		if errors.Cause(err) == attendance.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting teacher session")
	}
	return ctx.NoContent(http.StatusNoContent)
}
