package roster

import (
	"github.com/go-playground/validator/v10"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
)

// Level is the two-tier school unit a student belongs to.
type Level string

const (
	LevelMTs Level = "MTs"
	LevelMA  Level = "MA"
)

// Gender is the student housing category.
type Gender string

const (
	GenderPutra Gender = "Putra"
	GenderPutri Gender = "Putri"
)

// SessionKind is a fixed category of activity under which attendance and
// schedules are recorded.
type SessionKind string

const (
	SessionQuran     SessionKind = "Al-Quran"
	SessionMadrasah  SessionKind = "Madrasah"
	SessionHadis     SessionKind = "Hadis"
	SessionKitab     SessionKind = "Kitab Kuning"
	SessionPeminatan SessionKind = "Peminatan"
	SessionMajlis    SessionKind = "Majlis Malam"
	SessionTambahan  SessionKind = "Tambahan/Sesi Lain"
)

var AllSessionKinds = []SessionKind{
	SessionQuran,
	SessionMadrasah,
	SessionHadis,
	SessionKitab,
	SessionPeminatan,
	SessionMajlis,
	SessionTambahan,
}

func ValidSessionKind(k SessionKind) bool {
	for _, s := range AllSessionKinds {
		if k == s {
			return true
		}
	}
	return false
}

// Student is a tracked santri. FormalClass is the administrative class and is
// never empty once the student is created; SessionClasses maps an activity
// session kind to the group the student attends for it (unique per kind).
type Student struct {
	ID             string                 `json:"id"`
	NIS            string                 `json:"nis"`
	Name           string                 `json:"name"`
	FormalClass    string                 `json:"formalClass"`
	SessionClasses map[SessionKind]string `json:"sessionClasses,omitempty"`
	Level          Level                  `json:"level"`
	Gender         Gender                 `json:"gender"`
}

// Teacher is master data for teaching staff; distinct from the registered
// operator identity, which has no stable link to it (schedule rows reference
// teachers by free-text name only).
type Teacher struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Subject         string   `json:"subject"`
	Phone           string   `json:"phone,omitempty"`
	Email           string   `json:"email,omitempty"`
	Gender          Gender   `json:"gender"`
	IsWaliKelas     bool     `json:"isWaliKelas"`
	WaliKelasFor    string   `json:"waliKelasFor,omitempty"`
	TeachingClasses []string `json:"teachingClasses,omitempty"`
}

// Schedule is one teaching slot.
type Schedule struct {
	ID          string      `json:"id"`
	Class       string      `json:"class"`
	Level       Level       `json:"level"`
	Gender      Gender      `json:"gender"`
	Day         string      `json:"day"`
	Time        string      `json:"time"`
	Subject     string      `json:"subject"`
	TeacherName string      `json:"teacherName"`
	SessionKind SessionKind `json:"sessionType"`
}

// OrgMember is a student-organization position holder (ORSAM/ORKLAS).
type OrgMember struct {
	ID         string `json:"id"`
	Position   string `json:"position"`
	Name       string `json:"name"`
	NIS        string `json:"nis,omitempty"`
	Class      string `json:"class"`
	Department string `json:"department,omitempty"`
}

// NewStudent contains information needed to add a Student.
type NewStudent struct {
	NIS            string                 `json:"nis" validate:"required"`
	Name           string                 `json:"name" validate:"required"`
	FormalClass    string                 `json:"formalClass" validate:"required"`
	SessionClasses map[SessionKind]string `json:"sessionClasses"`
	Level          Level                  `json:"level" validate:"required,oneof=MTs MA"`
	Gender         Gender                 `json:"gender" validate:"required,oneof=Putra Putri"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.NIS = core.CleanString(ns.NIS)
	ns.FormalClass = core.CleanString(ns.FormalClass)
	for kind := range ns.SessionClasses {
		if !ValidSessionKind(kind) {
			return core.NewValidationError(nil, core.FieldError{
				Field: "sessionClasses", Error: "unknown session kind: " + string(kind),
			})
		}
	}
	return validate.Struct(ns)
}

// NewTeacher contains information needed to add a Teacher.
type NewTeacher struct {
	Name            string   `json:"name" validate:"required"`
	Subject         string   `json:"subject" validate:"required"`
	Phone           string   `json:"phone"`
	Email           string   `json:"email" validate:"omitempty,email"`
	Gender          Gender   `json:"gender" validate:"required,oneof=Putra Putri"`
	IsWaliKelas     bool     `json:"isWaliKelas"`
	WaliKelasFor    string   `json:"waliKelasFor"`
	TeachingClasses []string `json:"teachingClasses"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Subject = core.CleanString(nt.Subject)
	return validate.Struct(nt)
}

// NewSchedule contains information needed to add a Schedule row.
type NewSchedule struct {
	Class       string      `json:"class" validate:"required"`
	Level       Level       `json:"level" validate:"required,oneof=MTs MA"`
	Gender      Gender      `json:"gender" validate:"required,oneof=Putra Putri"`
	Day         string      `json:"day" validate:"required"`
	Time        string      `json:"time" validate:"required"`
	Subject     string      `json:"subject" validate:"required"`
	TeacherName string      `json:"teacherName" validate:"required"`
	SessionKind SessionKind `json:"sessionType" validate:"required,sessionkind"`
}

func (ns *NewSchedule) Validate(validate *validator.Validate) error {
	ns.Class = core.CleanString(ns.Class)
	ns.TeacherName = core.CleanString(ns.TeacherName)
	ns.Subject = core.CleanString(ns.Subject)
	return validate.Struct(ns)
}
