package document

import (
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/attendance"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/conduct"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/roster"
)

// The domain repositories are thin views over the store: reads snapshot the
// document, writes go through Mutate so every change sets the dirty flag.

type RosterRepository struct{ store *Store }

var _ roster.Repository = (*RosterRepository)(nil)

func NewRosterRepository(store *Store) *RosterRepository {
	return &RosterRepository{store: store}
}

func (r *RosterRepository) QueryStudents() ([]roster.Student, error) {
	doc, err := r.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return doc.Students, nil
}

func (r *RosterRepository) ReplaceStudents(students []roster.Student) error {
	_, err := r.store.Mutate(Patch{Students: &students})
	return err
}

func (r *RosterRepository) QueryTeachers() ([]roster.Teacher, error) {
	doc, err := r.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return doc.Teachers, nil
}

func (r *RosterRepository) ReplaceTeachers(teachers []roster.Teacher) error {
	_, err := r.store.Mutate(Patch{Teachers: &teachers})
	return err
}

func (r *RosterRepository) QuerySchedules() ([]roster.Schedule, error) {
	doc, err := r.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return doc.Schedules, nil
}

func (r *RosterRepository) ReplaceSchedules(schedules []roster.Schedule) error {
	_, err := r.store.Mutate(Patch{Schedules: &schedules})
	return err
}

func (r *RosterRepository) QueryOrgMembers(org roster.Org) ([]roster.OrgMember, error) {
	doc, err := r.store.Snapshot()
	if err != nil {
		return nil, err
	}
	if org == roster.OrgKelas {
		return doc.Orklas, nil
	}
	return doc.Orsam, nil
}

func (r *RosterRepository) ReplaceOrgMembers(org roster.Org, members []roster.OrgMember) error {
	patch := Patch{Orsam: &members}
	if org == roster.OrgKelas {
		patch = Patch{Orklas: &members}
	}
	_, err := r.store.Mutate(patch)
	return err
}

type AttendanceRepository struct{ store *Store }

var _ attendance.Repository = (*AttendanceRepository)(nil)

func NewAttendanceRepository(store *Store) *AttendanceRepository {
	return &AttendanceRepository{store: store}
}

func (r *AttendanceRepository) QueryRecords() ([]attendance.Record, error) {
	doc, err := r.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return doc.Attendance, nil
}

func (r *AttendanceRepository) ReplaceRecords(records []attendance.Record) error {
	_, err := r.store.Mutate(Patch{Attendance: &records})
	return err
}

func (r *AttendanceRepository) QueryTeacherSessions() ([]attendance.TeacherSession, error) {
	doc, err := r.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return doc.TeacherAttendance, nil
}

func (r *AttendanceRepository) ReplaceTeacherSessions(sessions []attendance.TeacherSession) error {
	_, err := r.store.Mutate(Patch{TeacherAttendance: &sessions})
	return err
}

type ConductRepository struct{ store *Store }

var _ conduct.Repository = (*ConductRepository)(nil)

func NewConductRepository(store *Store) *ConductRepository {
	return &ConductRepository{store: store}
}

func (r *ConductRepository) QueryReports() ([]conduct.Report, error) {
	doc, err := r.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return doc.Reports, nil
}

func (r *ConductRepository) ReplaceReports(reports []conduct.Report) error {
	_, err := r.store.Mutate(Patch{Reports: &reports})
	return err
}

func (r *ConductRepository) QueryTemplates(polarity conduct.Polarity) ([]conduct.Template, error) {
	doc, err := r.store.Snapshot()
	if err != nil {
		return nil, err
	}
	if polarity == conduct.PolarityAchievement {
		return doc.AchievementTemplates, nil
	}
	return doc.ViolationTemplates, nil
}

func (r *ConductRepository) ReplaceTemplates(polarity conduct.Polarity, templates []conduct.Template) error {
	patch := Patch{ViolationTemplates: &templates}
	if polarity == conduct.PolarityAchievement {
		patch = Patch{AchievementTemplates: &templates}
	}
	_, err := r.store.Mutate(patch)
	return err
}
