package conduct

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/calendar"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/operator"
)

type fakeRepo struct {
	reports              []Report
	violationTemplates   []Template
	achievementTemplates []Template
}

func (r *fakeRepo) QueryReports() ([]Report, error)       { return r.reports, nil }
func (r *fakeRepo) ReplaceReports(reports []Report) error { r.reports = reports; return nil }

func (r *fakeRepo) QueryTemplates(polarity Polarity) ([]Template, error) {
	if polarity == PolarityAchievement {
		return r.achievementTemplates, nil
	}
	return r.violationTemplates, nil
}

func (r *fakeRepo) ReplaceTemplates(polarity Polarity, templates []Template) error {
	if polarity == PolarityAchievement {
		r.achievementTemplates = templates
	} else {
		r.violationTemplates = templates
	}
	return nil
}

func withFrozenClock(t *testing.T, at time.Time) {
	t.Helper()
	orig := calendar.NowFunc
	calendar.NowFunc = func() time.Time { return at }
	t.Cleanup(func() { calendar.NowFunc = orig })
}

func TestFileReport(t *testing.T) {
	withFrozenClock(t, time.Date(2025, time.March, 5, 13, 20, 0, 0, time.UTC))

	repo := &fakeRepo{violationTemplates: []Template{
		{Label: "Terlambat masuk kelas", Points: 10, Category: CategoryKedisiplinan},
	}}
	svc := NewService(repo)

	t.Run("custom points", func(t *testing.T) {
		report, err := svc.File("Ust. Hamzah", NewReport{
			StudentID:   "s1",
			Type:        PolarityViolation,
			Category:    CategoryAkhlak,
			Description: "berkata kasar",
			Points:      25,
		})
		require.NoError(t, err)
		assert.Equal(t, 25, report.Points)
		assert.Equal(t, "05/03/2025", report.Date)
		assert.Equal(t, "13:20", report.Timestamp)
		assert.Equal(t, StatusPending, report.Status)
	})

	t.Run("template points win over submitted", func(t *testing.T) {
		report, err := svc.File("Ust. Hamzah", NewReport{
			StudentID:   "s1",
			Type:        PolarityViolation,
			Category:    CategoryKedisiplinan,
			Label:       "Terlambat masuk kelas",
			Description: "Terlambat masuk kelas",
			Points:      999,
		})
		require.NoError(t, err)
		assert.Equal(t, 10, report.Points)
	})

	t.Run("action note at filing marks actioned", func(t *testing.T) {
		report, err := svc.File("Ust. Hamzah", NewReport{
			StudentID:   "s2",
			Type:        PolarityViolation,
			Category:    CategoryIbadah,
			Description: "tidak ikut jamaah subuh",
			Points:      15,
			ActionNote:  "sudah dinasihati",
		})
		require.NoError(t, err)
		assert.Equal(t, StatusActioned, report.Status)
		assert.Equal(t, "sudah dinasihati", report.ActionNote)
	})
}

func TestActOnReport(t *testing.T) {
	repo := &fakeRepo{reports: []Report{
		{ID: "r1", Status: StatusPending},
	}}
	svc := NewService(repo)

	report, err := svc.Act("r1", ReportAction{ActionNote: "dipanggil wali kelas"})
	require.NoError(t, err)
	assert.Equal(t, StatusActioned, report.Status)
	assert.Equal(t, "dipanggil wali kelas", report.ActionNote)

	_, err = svc.Act("missing", ReportAction{ActionNote: "x"})
	assert.Equal(t, ErrNotFound, err)
}

func TestDeleteReport(t *testing.T) {
	admin := operator.Operator{Role: operator.RoleIdaroh}
	guru := operator.Operator{Role: operator.RoleGuru}

	repo := &fakeRepo{reports: []Report{{ID: "r1"}, {ID: "r2"}}}
	svc := NewService(repo)

	err := svc.Delete(guru, "r1")
	assert.True(t, core.IsPermissionDenied(err))
	assert.Len(t, repo.reports, 2)

	require.NoError(t, svc.Delete(admin, "r1"))
	require.Len(t, repo.reports, 1)
	assert.Equal(t, "r2", repo.reports[0].ID)

	assert.Equal(t, ErrNotFound, svc.Delete(admin, "missing"))
}
