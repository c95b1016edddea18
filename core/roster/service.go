package roster

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("roster entry not found")

// Org identifies which student organization a member list belongs to.
type Org string

const (
	OrgSantri Org = "orsam"  // campus-wide organization
	OrgKelas  Org = "orklas" // class-level organization
)

type (
	// Repository persists the master-data collections. Collections are
	// replaced wholesale; the backing store applies its own dirty tracking.
	Repository interface {
		QueryStudents() ([]Student, error)
		ReplaceStudents(students []Student) error
		QueryTeachers() ([]Teacher, error)
		ReplaceTeachers(teachers []Teacher) error
		QuerySchedules() ([]Schedule, error)
		ReplaceSchedules(schedules []Schedule) error
		QueryOrgMembers(org Org) ([]OrgMember, error)
		ReplaceOrgMembers(org Org, members []OrgMember) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryStudents() ([]Student, error) { return svc.repo.QueryStudents() }
func (svc *Service) QueryTeachers() ([]Teacher, error) { return svc.repo.QueryTeachers() }
func (svc *Service) QuerySchedules() ([]Schedule, error) {
	return svc.repo.QuerySchedules()
}
func (svc *Service) QueryOrgMembers(org Org) ([]OrgMember, error) {
	return svc.repo.QueryOrgMembers(org)
}

// ScopedStudents applies role visibility plus ad-hoc dimensions.
func (svc *Service) ScopedStudents(scope Scope, dims Dimensions) ([]Student, error) {
	students, err := svc.repo.QueryStudents()
	if err != nil {
		return nil, err
	}
	schedules, err := svc.repo.QuerySchedules()
	if err != nil {
		return nil, err
	}
	return FilterStudents(scope, students, schedules, dims), nil
}

func (svc *Service) GetStudentByID(id string) (Student, error) {
	students, err := svc.repo.QueryStudents()
	if err != nil {
		return Student{}, err
	}
	for _, s := range students {
		if s.ID == id {
			return s, nil
		}
	}
	return Student{}, ErrNotFound
}

func (svc *Service) CreateStudent(ns NewStudent) (Student, error) {
	students, err := svc.repo.QueryStudents()
	if err != nil {
		return Student{}, err
	}
	s := Student{
		ID:             uuid.NewString(),
		NIS:            ns.NIS,
		Name:           ns.Name,
		FormalClass:    ns.FormalClass,
		SessionClasses: ns.SessionClasses,
		Level:          ns.Level,
		Gender:         ns.Gender,
	}
	if err = svc.repo.ReplaceStudents(append(students, s)); err != nil {
		return Student{}, err
	}
	return s, nil
}

func (svc *Service) UpdateStudent(id string, ns NewStudent) (Student, error) {
	students, err := svc.repo.QueryStudents()
	if err != nil {
		return Student{}, err
	}
	for i, s := range students {
		if s.ID != id {
			continue
		}
		students[i] = Student{
			ID:             id,
			NIS:            ns.NIS,
			Name:           ns.Name,
			FormalClass:    ns.FormalClass,
			SessionClasses: ns.SessionClasses,
			Level:          ns.Level,
			Gender:         ns.Gender,
		}
		if err = svc.repo.ReplaceStudents(students); err != nil {
			return Student{}, err
		}
		return students[i], nil
	}
	return Student{}, ErrNotFound
}

func (svc *Service) DeleteStudent(id string) error {
	students, err := svc.repo.QueryStudents()
	if err != nil {
		return err
	}
	kept := students[:0]
	found := false
	for _, s := range students {
		if s.ID == id {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return ErrNotFound
	}
	return svc.repo.ReplaceStudents(kept)
}

func (svc *Service) CreateTeacher(nt NewTeacher) (Teacher, error) {
	teachers, err := svc.repo.QueryTeachers()
	if err != nil {
		return Teacher{}, err
	}
	t := Teacher{
		ID:              uuid.NewString(),
		Name:            nt.Name,
		Subject:         nt.Subject,
		Phone:           nt.Phone,
		Email:           nt.Email,
		Gender:          nt.Gender,
		IsWaliKelas:     nt.IsWaliKelas,
		WaliKelasFor:    nt.WaliKelasFor,
		TeachingClasses: nt.TeachingClasses,
	}
	if err = svc.repo.ReplaceTeachers(append(teachers, t)); err != nil {
		return Teacher{}, err
	}
	return t, nil
}

func (svc *Service) UpdateTeacher(id string, nt NewTeacher) (Teacher, error) {
	teachers, err := svc.repo.QueryTeachers()
	if err != nil {
		return Teacher{}, err
	}
	for i, t := range teachers {
		if t.ID != id {
			continue
		}
		teachers[i] = Teacher{
			ID:              id,
			Name:            nt.Name,
			Subject:         nt.Subject,
			Phone:           nt.Phone,
			Email:           nt.Email,
			Gender:          nt.Gender,
			IsWaliKelas:     nt.IsWaliKelas,
			WaliKelasFor:    nt.WaliKelasFor,
			TeachingClasses: nt.TeachingClasses,
		}
		if err = svc.repo.ReplaceTeachers(teachers); err != nil {
			return Teacher{}, err
		}
		return teachers[i], nil
	}
	return Teacher{}, ErrNotFound
}

func (svc *Service) DeleteTeacher(id string) error {
	teachers, err := svc.repo.QueryTeachers()
	if err != nil {
		return err
	}
	kept := teachers[:0]
	found := false
	for _, t := range teachers {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return ErrNotFound
	}
	return svc.repo.ReplaceTeachers(kept)
}

func (svc *Service) CreateSchedule(ns NewSchedule) (Schedule, error) {
	schedules, err := svc.repo.QuerySchedules()
	if err != nil {
		return Schedule{}, err
	}
	sch := Schedule{
		ID:          uuid.NewString(),
		Class:       ns.Class,
		Level:       ns.Level,
		Gender:      ns.Gender,
		Day:         ns.Day,
		Time:        ns.Time,
		Subject:     ns.Subject,
		TeacherName: ns.TeacherName,
		SessionKind: ns.SessionKind,
	}
	if err = svc.repo.ReplaceSchedules(append(schedules, sch)); err != nil {
		return Schedule{}, err
	}
	return sch, nil
}

func (svc *Service) DeleteSchedule(id string) error {
	schedules, err := svc.repo.QuerySchedules()
	if err != nil {
		return err
	}
	kept := schedules[:0]
	found := false
	for _, sch := range schedules {
		if sch.ID == id {
			found = true
			continue
		}
		kept = append(kept, sch)
	}
	if !found {
		return ErrNotFound
	}
	return svc.repo.ReplaceSchedules(kept)
}

func (svc *Service) ReplaceOrgMembers(org Org, members []OrgMember) error {
	for i := range members {
		if members[i].ID == "" {
			members[i].ID = uuid.NewString()
		}
	}
	return svc.repo.ReplaceOrgMembers(org, members)
}
