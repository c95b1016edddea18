package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/analytics"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/calendar"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/roster"
)

// AnalyticsQuery binds the aggregation filters from query parameters. All
// parameters are optional; omitted ones widen the query.
type AnalyticsQuery struct {
	analytics.Query
}

func (q *AnalyticsQuery) Bind(ctx echo.Context) {
	params := ctx.QueryParams()
	if v := params.Get("period"); v != "" {
		q.Period = calendar.Period(v)
	}
	if v := params.Get("date"); v != "" {
		q.CustomDate = v
	}
	if v := params.Get("session"); v != "" {
		q.SessionKind = roster.SessionKind(v)
	}
	if v := params.Get("class"); v != "" {
		q.Class = v
	}
	if v := params.Get("filterClass"); v != "" {
		q.Dims.Class = v
	}
	if v := params.Get("level"); v != "" {
		q.Dims.Level = roster.Level(v)
	}
	if v := params.Get("gender"); v != "" {
		q.Dims.Gender = roster.Gender(v)
	}
}

// RankingQuery adds the leaderboard knobs on top of the aggregation filters.
type RankingQuery struct {
	AnalyticsQuery
	Metric   string
	Grouping analytics.Grouping
	N        int
}

func (q *RankingQuery) Bind(ctx echo.Context) {
	q.AnalyticsQuery.Bind(ctx)
	q.Metric = ctx.QueryParam("metric")
	q.Grouping = analytics.GroupStudent
	if v := ctx.QueryParam("grouping"); v != "" {
		q.Grouping = analytics.Grouping(v)
	}
	if v := ctx.QueryParam("n"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.N = n
		}
	}
}

// DimensionsQuery binds the roster narrowing filters alone.
type DimensionsQuery struct {
	roster.Dimensions
}

func (q *DimensionsQuery) Bind(ctx echo.Context) {
	params := ctx.QueryParams()
	if v := params.Get("class"); v != "" {
		q.Class = v
	}
	if v := params.Get("level"); v != "" {
		q.Level = roster.Level(v)
	}
	if v := params.Get("gender"); v != "" {
		q.Gender = roster.Gender(v)
	}
}
