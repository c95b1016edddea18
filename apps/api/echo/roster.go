package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/operator"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/roster"
)

type rosterApi struct {
	svc      *roster.Service
	validate *validator.Validate
}

func registerRosterAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := rosterApi{svc: opts.RosterSvc, validate: opts.Validate}

	rg := g.Group("/roster", jwt)

	// students are scoped by the caller's role; master-data writes are
	// an admin concern
	rg.GET("/students", api.queryStudents)
	rg.POST("/students", api.createStudent, adminMiddleware())
	rg.PUT("/students/:id", api.updateStudent, adminMiddleware())
	rg.DELETE("/students/:id", api.destroyStudent, adminMiddleware())

	rg.GET("/teachers", api.queryTeachers)
	rg.POST("/teachers", api.createTeacher, adminMiddleware())
	rg.PUT("/teachers/:id", api.updateTeacher, adminMiddleware())
	rg.DELETE("/teachers/:id", api.destroyTeacher, adminMiddleware())

	rg.GET("/schedules", api.querySchedules)
	rg.POST("/schedules", api.createSchedule, adminMiddleware())
	rg.DELETE("/schedules/:id", api.destroySchedule, adminMiddleware())

	rg.GET("/organizations/:org", api.queryOrgMembers)
	rg.PUT("/organizations/:org", api.replaceOrgMembers, adminMiddleware())
}

func (api *rosterApi) queryStudents(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var dims DimensionsQuery
	dims.Bind(ctx)

	students, err := api.svc.ScopedStudents(claims.Scope(), dims.Dimensions)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []roster.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *rosterApi) createStudent(ctx echo.Context) error {
	var data roster.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	student, err := api.svc.CreateStudent(data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, student)
}

func (api *rosterApi) updateStudent(ctx echo.Context) error {
	var data roster.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	student, err := api.svc.UpdateStudent(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == roster.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, student)
}

func (api *rosterApi) destroyStudent(ctx echo.Context) error {
	if err := api.svc.DeleteStudent(ctx.Param("id")); err != nil {
		if errors.Cause(err) == roster.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *rosterApi) queryTeachers(ctx echo.Context) error {
	teachers, err := api.svc.QueryTeachers()
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	if teachers == nil {
		teachers = []roster.Teacher{}
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *rosterApi) createTeacher(ctx echo.Context) error {
	var data roster.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	teacher, err := api.svc.CreateTeacher(data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return ctx.JSON(http.StatusCreated, teacher)
}

func (api *rosterApi) updateTeacher(ctx echo.Context) error {
	var data roster.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	teacher, err := api.svc.UpdateTeacher(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == roster.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating teacher")
	}
	return ctx.JSON(http.StatusOK, teacher)
}

func (api *rosterApi) destroyTeacher(ctx echo.Context) error {
	if err := api.svc.DeleteTeacher(ctx.Param("id")); err != nil {
		if errors.Cause(err) == roster.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting teacher")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *rosterApi) querySchedules(ctx echo.Context) error {
	schedules, err := api.svc.QuerySchedules()
	if err != nil {
		return errors.Wrap(err, "querying schedules")
	}
	if schedules == nil {
		schedules = []roster.Schedule{}
	}
	return ctx.JSON(http.StatusOK, schedules)
}

func (api *rosterApi) createSchedule(ctx echo.Context) error {
	var data roster.NewSchedule
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSchedule")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	schedule, err := api.svc.CreateSchedule(data)
	if err != nil {
		return errors.Wrap(err, "creating schedule")
	}
	return ctx.JSON(http.StatusCreated, schedule)
}

func (api *rosterApi) destroySchedule(ctx echo.Context) error {
	if err := api.svc.DeleteSchedule(ctx.Param("id")); err != nil {
		if errors.Cause(err) == roster.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting schedule")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func orgParam(ctx echo.Context) (roster.Org, error) {
	switch org := roster.Org(ctx.Param("org")); org {
	case roster.OrgSantri, roster.OrgKelas:
		return org, nil
	default:
		return "", errHttpNotFound
	}
}

func (api *rosterApi) queryOrgMembers(ctx echo.Context) error {
	org, err := orgParam(ctx)
	if err != nil {
		return err
	}
	members, err := api.svc.QueryOrgMembers(org)
	if err != nil {
		return errors.Wrap(err, "querying organization members")
	}
	if members == nil {
		members = []roster.OrgMember{}
	}
	return ctx.JSON(http.StatusOK, members)
}

func (api *rosterApi) replaceOrgMembers(ctx echo.Context) error {
	org, err := orgParam(ctx)
	if err != nil {
		return err
	}

	var members []roster.OrgMember
	if err := ctx.Bind(&members); err != nil {
		return errors.Wrap(err, "binding to organization members")
	}
	if err := api.svc.ReplaceOrgMembers(org, members); err != nil {
		return errors.Wrap(err, "replacing organization members")
	}

	members, err = api.svc.QueryOrgMembers(org)
	if err != nil {
		return errors.Wrap(err, "querying organization members")
	}
	return ctx.JSON(http.StatusOK, members)
}

// teacherRoles may record attendance and reports in addition to admins.
var teacherRoles = []string{operator.RoleGuru, operator.RoleMusyrif}
