package analytics

import (
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/attendance"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/calendar"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/conduct"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/document"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/operator"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/roster"
)

// Query narrows an aggregation run. Zero values mean "no filter" except
// Period, which defaults to the full year.
type Query struct {
	Period      calendar.Period
	CustomDate  string // ISO, only read when Period is the custom one
	SessionKind roster.SessionKind
	Class       string
	Dims        roster.Dimensions
}

// Aggregate is a pure derivation over one document snapshot: the events
// visible to the scope within the queried period, plus their tallies.
// It never mutates the document.
type Aggregate struct {
	Students        []roster.Student
	Attendance      []attendance.Record
	Reports         []conduct.Report
	TeacherSessions []attendance.TeacherSession

	StatusCounts          map[attendance.Status]int
	ViolationCategories   map[conduct.Category]int
	AchievementCategories map[conduct.Category]int
	ViolationPoints       int
	AchievementPoints     int

	students map[string]roster.Student
}

// Run filters the snapshot down to scope and period. Events pass when their
// student is in scope, their date matches the period, and any exact
// session-kind or class filter matches.
func Run(doc document.Document, scope roster.Scope, q Query) Aggregate {
	if q.Period == "" {
		q.Period = calendar.PeriodFullYear
	}
	now := calendar.Today()

	students := roster.FilterStudents(scope, doc.Students, doc.Schedules, q.Dims)
	allowed := roster.AllowedIDSet(students)

	agg := Aggregate{
		Students:              students,
		StatusCounts:          make(map[attendance.Status]int),
		ViolationCategories:   make(map[conduct.Category]int),
		AchievementCategories: make(map[conduct.Category]int),
		students:              make(map[string]roster.Student, len(students)),
	}
	for _, s := range students {
		agg.students[s.ID] = s
	}

	for _, rec := range doc.Attendance {
		if !allowed[rec.StudentID] {
			continue
		}
		if !calendar.WithinPeriod(rec.Date, q.Period, now, q.CustomDate) {
			continue
		}
		if q.SessionKind != "" && rec.SessionKind != q.SessionKind {
			continue
		}
		if q.Class != "" && rec.Class != q.Class {
			continue
		}
		agg.Attendance = append(agg.Attendance, rec)
		agg.StatusCounts[rec.Status]++
	}

	for _, rep := range doc.Reports {
		if !allowed[rep.StudentID] {
			continue
		}
		if !calendar.WithinPeriod(rep.Date, q.Period, now, q.CustomDate) {
			continue
		}
		agg.Reports = append(agg.Reports, rep)
		switch rep.Type {
		case conduct.PolarityAchievement:
			agg.AchievementCategories[rep.Category]++
			agg.AchievementPoints += rep.Points
		default:
			agg.ViolationCategories[rep.Category]++
			agg.ViolationPoints += rep.Points
		}
	}

	for _, ts := range doc.TeacherAttendance {
		if !teacherSessionVisible(ts, scope) {
			continue
		}
		if !calendar.WithinPeriod(ts.Date, q.Period, now, q.CustomDate) {
			continue
		}
		if q.SessionKind != "" && ts.SessionKind != q.SessionKind {
			continue
		}
		if q.Class != "" && ts.Class != q.Class {
			continue
		}
		agg.TeacherSessions = append(agg.TeacherSessions, ts)
	}

	return agg
}

// teacherSessionVisible: a Guru sees only their own rows (exact name, these
// rows are self-recorded); every other signed-in role sees the full log.
func teacherSessionVisible(ts attendance.TeacherSession, scope roster.Scope) bool {
	if scope.Role == operator.RoleGuru {
		return ts.TeacherName == scope.OperatorName
	}
	return true
}

// AttendanceRate is the share of present marks over all marks in the
// aggregate, as a percentage rounded to one decimal. No marks means 0.
func (agg Aggregate) AttendanceRate() float64 {
	return rate(agg.StatusCounts[attendance.StatusHadir], len(agg.Attendance))
}

// StudentAttendanceRate computes the rate over one student's marks only.
func (agg Aggregate) StudentAttendanceRate(studentID string) float64 {
	var present, total int
	for _, rec := range agg.Attendance {
		if rec.StudentID != studentID {
			continue
		}
		total++
		if rec.Status == attendance.StatusHadir {
			present++
		}
	}
	return rate(present, total)
}

func rate(present, total int) float64 {
	if total == 0 {
		return 0
	}
	pct := float64(present) / float64(total) * 100
	return float64(int(pct*10+0.5)) / 10
}

func (agg Aggregate) student(id string) (roster.Student, bool) {
	s, ok := agg.students[id]
	return s, ok
}
