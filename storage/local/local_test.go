package local

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/attendance"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/conduct"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/document"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/operator"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/roster"
)

// Every field written must come back identical after a save/load cycle.
func TestDocumentRoundTrip(t *testing.T) {
	repo := NewDocumentRepository(t.TempDir())

	_, exists, err := repo.LoadDocument()
	require.NoError(t, err)
	assert.False(t, exists)

	doc := document.Defaults()
	doc.Profile = &document.Profile{ID: "op1", FullName: "Ust. Hamzah", Role: operator.RoleGuru}
	doc.Students = []roster.Student{{
		ID: "s1", NIS: "2024001", Name: "Ahmad Fauzi", FormalClass: "11 IPA",
		SessionClasses: map[roster.SessionKind]string{roster.SessionQuran: "Halaqah Ulya (A)"},
		Level:          roster.LevelMA, Gender: roster.GenderPutra,
	}}
	doc.Attendance = []attendance.Record{{
		ID: "a1", Date: "05/03/2025", StudentID: "s1", Status: attendance.StatusHadir,
		RecordedBy: "Ust. Hamzah", Class: "Halaqah Ulya (A)", SessionKind: roster.SessionQuran,
	}}
	doc.Reports = []conduct.Report{{
		ID: "r1", StudentID: "s1", Type: conduct.PolarityViolation,
		Category: conduct.CategoryKedisiplinan, Points: 10, Date: "05/03/2025",
		Timestamp: "07:45", Reporter: "Ust. Hamzah", Status: conduct.StatusPending,
	}}
	doc.AcademicConfig.SessionHolidays = map[roster.SessionKind]bool{roster.SessionMajlis: true}

	require.NoError(t, repo.SaveDocument(doc))

	loaded, exists, err := repo.LoadDocument()
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, doc, loaded)
}

func TestSyncStatusRoundTrip(t *testing.T) {
	repo := NewDocumentRepository(t.TempDir())

	_, exists, err := repo.LoadSyncStatus()
	require.NoError(t, err)
	assert.False(t, exists)

	status := document.SyncStatus{Pending: true, Timestamp: "2025-03-05T10:00:00Z", IsNewLocal: true, AutoSync: true}
	require.NoError(t, repo.SaveSyncStatus(status))

	loaded, exists, err := repo.LoadSyncStatus()
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, status, loaded)
}

func newTestOperator(t *testing.T, name, email string) operator.Operator {
	t.Helper()
	op := operator.Operator{
		ID:        email, // stable for assertions
		FullName:  name,
		Email:     email,
		Role:      operator.RoleGuru,
		CreatedAt: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, op.SetPassword("k3amanan-pondok"))
	return op
}

func TestOperatorRepository(t *testing.T) {
	repo := NewOperatorRepository(t.TempDir())

	op := newTestOperator(t, "Ust. Hamzah", "hamzah@mahasina.id")
	_, err := repo.CreateOperator(op)
	require.NoError(t, err)

	t.Run("password hash survives persistence", func(t *testing.T) {
		got, err := repo.GetOperatorByID(op.ID)
		require.NoError(t, err)
		assert.NoError(t, got.CheckPassword("k3amanan-pondok"))
	})

	t.Run("email lookup is case insensitive", func(t *testing.T) {
		got, err := repo.GetOperatorByEmail("HAMZAH@mahasina.id")
		require.NoError(t, err)
		assert.Equal(t, op.ID, got.ID)
	})

	t.Run("uniqueness check", func(t *testing.T) {
		assert.Equal(t, operator.ErrEmailExists, repo.CheckEmailUniqueness("hamzah@mahasina.id"))
		assert.NoError(t, repo.CheckEmailUniqueness("hamzah@mahasina.id", op))
		assert.NoError(t, repo.CheckEmailUniqueness("baru@mahasina.id"))
	})

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		updated, err := repo.UpdateOperator(operator.Operator{ID: op.ID, Phone: "0812000111"})
		require.NoError(t, err)
		assert.Equal(t, "0812000111", updated.Phone)
		assert.Equal(t, "Ust. Hamzah", updated.FullName)
		assert.NoError(t, updated.CheckPassword("k3amanan-pondok"))
	})

	t.Run("delete", func(t *testing.T) {
		other := newTestOperator(t, "Ustzh. Aisyah", "aisyah@mahasina.id")
		_, err := repo.CreateOperator(other)
		require.NoError(t, err)

		require.NoError(t, repo.DeleteOperatorsByID(op.ID))
		_, err = repo.GetOperatorByID(op.ID)
		assert.Equal(t, operator.ErrNotFound, err)

		remaining, err := repo.QueryAllOperators()
		require.NoError(t, err)
		assert.Len(t, remaining, 1)
	})
}

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository(t.TempDir())

	id, err := repo.GetSessionOperatorID()
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, repo.SetSessionOperatorID("op1"))
	id, err = repo.GetSessionOperatorID()
	require.NoError(t, err)
	assert.Equal(t, "op1", id)

	require.NoError(t, repo.ClearSession())
	id, err = repo.GetSessionOperatorID()
	require.NoError(t, err)
	assert.Empty(t, id)

	// clearing an already clear session is fine
	require.NoError(t, repo.ClearSession())
}
