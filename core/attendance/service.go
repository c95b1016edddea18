package attendance

import (
	"errors"

	"github.com/google/uuid"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/calendar"
)

var (
	ErrNotFound      = errors.New("attendance record not found")
	ErrNoOpenSession = errors.New("no open teaching session to check out of")
)

type (
	// Repository persists the attendance event collections.
	Repository interface {
		QueryRecords() ([]Record, error)
		ReplaceRecords(records []Record) error
		QueryTeacherSessions() ([]TeacherSession, error)
		ReplaceTeacherSessions(sessions []TeacherSession) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryRecords() ([]Record, error) { return svc.repo.QueryRecords() }

func (svc *Service) QueryTeacherSessions() ([]TeacherSession, error) {
	return svc.repo.QueryTeacherSessions()
}

// RecordBatch appends one mark per student, all stamped with today's date.
func (svc *Service) RecordBatch(recordedBy string, nb NewBatch) ([]Record, error) {
	records, err := svc.repo.QueryRecords()
	if err != nil {
		return nil, err
	}
	today := calendar.Today().String()
	created := make([]Record, 0, len(nb.Marks))
	for _, mark := range nb.Marks {
		created = append(created, Record{
			ID:          uuid.NewString(),
			Date:        today,
			StudentID:   mark.StudentID,
			Status:      mark.Status,
			Note:        mark.Note,
			RecordedBy:  recordedBy,
			Class:       nb.Class,
			SessionKind: nb.SessionKind,
			Subject:     nb.Subject,
		})
	}
	if err = svc.repo.ReplaceRecords(append(records, created...)); err != nil {
		return nil, err
	}
	return created, nil
}

func (svc *Service) DeleteRecord(id string) error {
	records, err := svc.repo.QueryRecords()
	if err != nil {
		return err
	}
	kept := records[:0]
	found := false
	for _, rec := range records {
		if rec.ID == id {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return ErrNotFound
	}
	return svc.repo.ReplaceRecords(kept)
}

// CheckIn opens a teaching session for today. Re-checking in while a session
// is still open is tolerated; the newest session is the authoritative one.
func (svc *Service) CheckIn(teacherName string, ci CheckIn) (TeacherSession, error) {
	sessions, err := svc.repo.QueryTeacherSessions()
	if err != nil {
		return TeacherSession{}, err
	}
	now := calendar.NowFunc()
	session := TeacherSession{
		ID:            uuid.NewString(),
		Date:          calendar.DateOf(now).String(),
		TeacherName:   teacherName,
		Subject:       ci.Subject,
		Class:         ci.Class,
		Level:         ci.Level,
		Gender:        ci.Gender,
		TimeScheduled: ci.TimeScheduled,
		CheckInTime:   now.Format("15:04"),
		Status:        ci.Status,
		Note:          ci.Note,
		SessionKind:   ci.SessionKind,
	}
	if err = svc.repo.ReplaceTeacherSessions(append(sessions, session)); err != nil {
		return TeacherSession{}, err
	}
	return session, nil
}

// CheckOut closes the most recently opened session the teacher still has open
// today.
func (svc *Service) CheckOut(teacherName string) (TeacherSession, error) {
	sessions, err := svc.repo.QueryTeacherSessions()
	if err != nil {
		return TeacherSession{}, err
	}
	now := calendar.NowFunc()
	today := calendar.DateOf(now).String()
	for i := len(sessions) - 1; i >= 0; i-- {
		s := sessions[i]
		if s.TeacherName != teacherName || s.Date != today || !s.Open() {
			continue
		}
		sessions[i].CheckOutTime = now.Format("15:04")
		if err = svc.repo.ReplaceTeacherSessions(sessions); err != nil {
			return TeacherSession{}, err
		}
		return sessions[i], nil
	}
	return TeacherSession{}, ErrNoOpenSession
}

// TodaySessions lists the teacher's own sessions for the current day.
func (svc *Service) TodaySessions(teacherName string) ([]TeacherSession, error) {
	sessions, err := svc.repo.QueryTeacherSessions()
	if err != nil {
		return nil, err
	}
	today := calendar.Today().String()
	var out []TeacherSession
	for _, s := range sessions {
		if s.TeacherName == teacherName && s.Date == today {
			out = append(out, s)
		}
	}
	return out, nil
}

func (svc *Service) DeleteTeacherSession(id string) error {
	sessions, err := svc.repo.QueryTeacherSessions()
	if err != nil {
		return err
	}
	kept := sessions[:0]
	found := false
	for _, s := range sessions {
		if s.ID == id {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return ErrNotFound
	}
	return svc.repo.ReplaceTeacherSessions(kept)
}
