package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/analytics"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/attendance"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/conduct"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/document"
)

type analyticsApi struct {
	store *document.Store
}

func registerAnalyticsAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := analyticsApi{store: opts.Store}

	ag := g.Group("/analytics", jwt)
	ag.GET("/summary", api.summary)
	ag.GET("/rankings", api.rankings)
}

type SummaryResponse struct {
	Students          int                       `json:"students"`
	AttendanceMatches int                       `json:"attendanceMatches"`
	ReportMatches     int                       `json:"reportMatches"`
	TeacherSessions   int                       `json:"teacherSessions"`
	StatusCounts      map[attendance.Status]int `json:"statusCounts"`
	AttendanceRate    float64                   `json:"attendanceRate"`
	ViolationPoints   int                       `json:"violationPoints"`
	AchievementPoints int                       `json:"achievementPoints"`
	Violations        map[conduct.Category]int  `json:"violations"`
	Achievements      map[conduct.Category]int  `json:"achievements"`
}

func (api *analyticsApi) summary(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var query AnalyticsQuery
	query.Bind(ctx)

	doc, err := api.store.Snapshot()
	if err != nil {
		return errors.Wrap(err, "reading document snapshot")
	}

	agg := analytics.Run(doc, claims.Scope(), query.Query)
	return ctx.JSON(http.StatusOK, SummaryResponse{
		Students:          len(agg.Students),
		AttendanceMatches: len(agg.Attendance),
		ReportMatches:     len(agg.Reports),
		TeacherSessions:   len(agg.TeacherSessions),
		StatusCounts:      agg.StatusCounts,
		AttendanceRate:    agg.AttendanceRate(),
		ViolationPoints:   agg.ViolationPoints,
		AchievementPoints: agg.AchievementPoints,
		Violations:        agg.ViolationCategories,
		Achievements:      agg.AchievementCategories,
	})
}

func (api *analyticsApi) rankings(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var query RankingQuery
	query.Bind(ctx)

	doc, err := api.store.Snapshot()
	if err != nil {
		return errors.Wrap(err, "reading document snapshot")
	}
	agg := analytics.Run(doc, claims.Scope(), query.Query)

	var entries []analytics.Entry
	switch query.Metric {
	case "", "violations":
		entries = analytics.TopConduct(agg, conduct.PolarityViolation, query.N, query.Grouping)
	case "achievements":
		entries = analytics.TopConduct(agg, conduct.PolarityAchievement, query.N, query.Grouping)
	default:
		status := attendance.Status(query.Metric)
		if !attendance.ValidStatus(status) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown ranking metric")
		}
		entries = analytics.TopAttendance(agg, status, query.N, query.Grouping)
	}
	if entries == nil {
		entries = []analytics.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}
