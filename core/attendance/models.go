package attendance

import (
	"github.com/go-playground/validator/v10"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/roster"
)

// Status is an attendance mark. Stored values match the labels used on the
// recap sheets.
type Status string

const (
	StatusHadir     Status = "Hadir"
	StatusSakit     Status = "Sakit"
	StatusIzin      Status = "Izin"
	StatusTerlambat Status = "Terlambat"
	StatusAlpha     Status = "Alpha"
)

var AllStatuses = []Status{StatusHadir, StatusSakit, StatusIzin, StatusTerlambat, StatusAlpha}

func ValidStatus(s Status) bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Record is one student attendance mark. Date is locale-formatted d/m/yyyy;
// records written by this system are normalized at creation, records merged
// in from older backups may not be.
type Record struct {
	ID          string             `json:"id"`
	Date        string             `json:"date"`
	StudentID   string             `json:"studentId"`
	Status      Status             `json:"status"`
	Note        string             `json:"note,omitempty"`
	RecordedBy  string             `json:"recordedBy"`
	Class       string             `json:"class"`
	SessionKind roster.SessionKind `json:"sessionType"`
	Subject     string             `json:"subject,omitempty"`
}

// TeacherSession is a teaching-slot check-in. A session with no check-out
// time is open; checking out closes it.
type TeacherSession struct {
	ID            string             `json:"id"`
	Date          string             `json:"date"`
	TeacherName   string             `json:"teacherName"`
	Subject       string             `json:"subject"`
	Class         string             `json:"class"`
	Level         roster.Level       `json:"level"`
	Gender        roster.Gender      `json:"gender"`
	TimeScheduled string             `json:"timeScheduled,omitempty"`
	CheckInTime   string             `json:"checkInTime"`
	CheckOutTime  string             `json:"checkOutTime,omitempty"`
	Status        Status             `json:"status"`
	Note          string             `json:"note,omitempty"`
	SessionKind   roster.SessionKind `json:"sessionType"`
}

func (ts TeacherSession) Open() bool { return ts.CheckOutTime == "" }

// NewMark is one entry of a batch attendance submission.
type NewMark struct {
	StudentID string `json:"studentId" validate:"required"`
	Status    Status `json:"status" validate:"required,attstatus"`
	Note      string `json:"note"`
}

// NewBatch records marks for a whole class group in one write.
type NewBatch struct {
	Class       string             `json:"class" validate:"required"`
	SessionKind roster.SessionKind `json:"sessionType" validate:"required,sessionkind"`
	Subject     string             `json:"subject"`
	Marks       []NewMark          `json:"marks" validate:"required,min=1,dive"`
}

func (nb *NewBatch) Validate(validate *validator.Validate) error {
	nb.Class = core.CleanString(nb.Class)
	nb.Subject = core.CleanString(nb.Subject)
	return validate.Struct(nb)
}

// CheckIn opens a teacher session for the current day.
type CheckIn struct {
	Subject       string             `json:"subject" validate:"required"`
	Class         string             `json:"class" validate:"required"`
	Level         roster.Level       `json:"level" validate:"required,oneof=MTs MA"`
	Gender        roster.Gender      `json:"gender" validate:"required,oneof=Putra Putri"`
	TimeScheduled string             `json:"timeScheduled"`
	Status        Status             `json:"status" validate:"required,attstatus"`
	Note          string             `json:"note"`
	SessionKind   roster.SessionKind `json:"sessionType" validate:"required,sessionkind"`
}

func (ci *CheckIn) Validate(validate *validator.Validate) error {
	ci.Subject = core.CleanString(ci.Subject)
	ci.Class = core.CleanString(ci.Class)
	return validate.Struct(ci)
}
