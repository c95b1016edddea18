package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/calendar"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/roster"
)

type fakeRepo struct {
	records  []Record
	sessions []TeacherSession
}

func (r *fakeRepo) QueryRecords() ([]Record, error)          { return r.records, nil }
func (r *fakeRepo) ReplaceRecords(records []Record) error    { r.records = records; return nil }
func (r *fakeRepo) QueryTeacherSessions() ([]TeacherSession, error) {
	return r.sessions, nil
}
func (r *fakeRepo) ReplaceTeacherSessions(sessions []TeacherSession) error {
	r.sessions = sessions
	return nil
}

func withFrozenClock(t *testing.T, at time.Time) {
	t.Helper()
	orig := calendar.NowFunc
	calendar.NowFunc = func() time.Time { return at }
	t.Cleanup(func() { calendar.NowFunc = orig })
}

func TestRecordBatch(t *testing.T) {
	withFrozenClock(t, time.Date(2025, time.March, 5, 7, 45, 0, 0, time.UTC))

	repo := &fakeRepo{}
	svc := NewService(repo)

	created, err := svc.RecordBatch("Ust. Abdul Malik", NewBatch{
		Class:       "11 IPA",
		SessionKind: roster.SessionMadrasah,
		Subject:     "Biologi",
		Marks: []NewMark{
			{StudentID: "s1", Status: StatusHadir},
			{StudentID: "s2", Status: StatusAlpha, Note: "tanpa keterangan"},
		},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Len(t, repo.records, 2)

	for _, rec := range created {
		assert.NotEmpty(t, rec.ID)
		assert.Equal(t, "05/03/2025", rec.Date)
		assert.Equal(t, "11 IPA", rec.Class)
		assert.Equal(t, roster.SessionMadrasah, rec.SessionKind)
		assert.Equal(t, "Ust. Abdul Malik", rec.RecordedBy)
	}
	assert.Equal(t, StatusAlpha, created[1].Status)
	assert.Equal(t, "tanpa keterangan", created[1].Note)
}

func TestDeleteRecord(t *testing.T) {
	repo := &fakeRepo{records: []Record{{ID: "a1"}, {ID: "a2"}}}
	svc := NewService(repo)

	require.NoError(t, svc.DeleteRecord("a1"))
	require.Len(t, repo.records, 1)
	assert.Equal(t, "a2", repo.records[0].ID)

	assert.Equal(t, ErrNotFound, svc.DeleteRecord("nope"))
}

func TestCheckInCheckOut(t *testing.T) {
	withFrozenClock(t, time.Date(2025, time.March, 5, 7, 30, 0, 0, time.UTC))

	repo := &fakeRepo{}
	svc := NewService(repo)

	session, err := svc.CheckIn("Ust. Abdul Malik", CheckIn{
		Subject:     "Fisika Terapan",
		Class:       "11 IPA",
		Level:       roster.LevelMA,
		Gender:      roster.GenderPutra,
		Status:      StatusHadir,
		SessionKind: roster.SessionMadrasah,
	})
	require.NoError(t, err)
	assert.Equal(t, "05/03/2025", session.Date)
	assert.Equal(t, "07:30", session.CheckInTime)
	assert.True(t, session.Open())

	withFrozenClock(t, time.Date(2025, time.March, 5, 9, 0, 0, 0, time.UTC))
	closed, err := svc.CheckOut("Ust. Abdul Malik")
	require.NoError(t, err)
	assert.Equal(t, session.ID, closed.ID)
	assert.Equal(t, "09:00", closed.CheckOutTime)
	assert.False(t, closed.Open())

	_, err = svc.CheckOut("Ust. Abdul Malik")
	assert.Equal(t, ErrNoOpenSession, err)
}

// A second check-in while the first is still open creates a new session and
// check-out closes the newest one first.
func TestCheckOutClosesMostRecent(t *testing.T) {
	withFrozenClock(t, time.Date(2025, time.March, 5, 7, 30, 0, 0, time.UTC))

	repo := &fakeRepo{}
	svc := NewService(repo)

	first, err := svc.CheckIn("Ust. Hamzah", CheckIn{
		Subject: "Tahfidz", Class: "Halaqah Ulya (A)",
		Level: roster.LevelMA, Gender: roster.GenderPutra,
		Status: StatusHadir, SessionKind: roster.SessionQuran,
	})
	require.NoError(t, err)

	second, err := svc.CheckIn("Ust. Hamzah", CheckIn{
		Subject: "Hadis Tematik", Class: "Bulughul Maram Pagi",
		Level: roster.LevelMA, Gender: roster.GenderPutra,
		Status: StatusTerlambat, SessionKind: roster.SessionHadis,
	})
	require.NoError(t, err)

	closed, err := svc.CheckOut("Ust. Hamzah")
	require.NoError(t, err)
	assert.Equal(t, second.ID, closed.ID)

	closed, err = svc.CheckOut("Ust. Hamzah")
	require.NoError(t, err)
	assert.Equal(t, first.ID, closed.ID)
}

func TestCheckOutIgnoresOtherDaysAndTeachers(t *testing.T) {
	withFrozenClock(t, time.Date(2025, time.March, 5, 9, 0, 0, 0, time.UTC))

	repo := &fakeRepo{sessions: []TeacherSession{
		{ID: "t1", TeacherName: "Ust. Hamzah", Date: "04/03/2025"},                  // yesterday, open
		{ID: "t2", TeacherName: "Ust. Abdul Malik", Date: "05/03/2025"},             // other teacher
		{ID: "t3", TeacherName: "Ust. Hamzah", Date: "05/03/2025", CheckOutTime: "08:00"}, // already closed
	}}
	svc := NewService(repo)

	_, err := svc.CheckOut("Ust. Hamzah")
	assert.Equal(t, ErrNoOpenSession, err)
}

func TestTodaySessions(t *testing.T) {
	withFrozenClock(t, time.Date(2025, time.March, 5, 9, 0, 0, 0, time.UTC))

	repo := &fakeRepo{sessions: []TeacherSession{
		{ID: "t1", TeacherName: "Ust. Hamzah", Date: "05/03/2025"},
		{ID: "t2", TeacherName: "Ust. Hamzah", Date: "04/03/2025"},
		{ID: "t3", TeacherName: "Ust. Abdul Malik", Date: "05/03/2025"},
	}}
	svc := NewService(repo)

	sessions, err := svc.TodaySessions("Ust. Hamzah")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "t1", sessions[0].ID)
}
