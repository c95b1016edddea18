package conduct

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
)

// Polarity separates violation reports from achievement reports. Points are
// always stored non-negative; the polarity carries the sign of the deed.
type Polarity string

const (
	PolarityViolation   Polarity = "Violation"
	PolarityAchievement Polarity = "Achievement"
)

// Category groups reports for tallies and template catalogs.
type Category string

const (
	CategoryAkademik     Category = "Akademik"
	CategoryIbadah       Category = "Ibadah"
	CategoryAkhlak       Category = "Akhlak"
	CategoryKedisiplinan Category = "Kedisiplinan"
	CategoryKebersihan   Category = "Kebersihan"
	CategoryLain         Category = "Lain-lain"
)

var AllCategories = []Category{
	CategoryAkademik,
	CategoryIbadah,
	CategoryAkhlak,
	CategoryKedisiplinan,
	CategoryKebersihan,
	CategoryLain,
}

func ValidCategory(c Category) bool {
	for _, cat := range AllCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// ActionStatus tracks whether a report has been followed up. It is derived,
// never free-form: a report with an action note is Ditindak, one without is
// Belum Ditindak.
type ActionStatus string

const (
	StatusPending  ActionStatus = "Belum Ditindak"
	StatusActioned ActionStatus = "Ditindak"
)

func statusFor(actionNote string) ActionStatus {
	if strings.TrimSpace(actionNote) != "" {
		return StatusActioned
	}
	return StatusPending
}

// Report is one conduct event for a student.
type Report struct {
	ID          string       `json:"id"`
	StudentID   string       `json:"studentId"`
	Type        Polarity     `json:"type"`
	Category    Category     `json:"category"`
	Description string       `json:"description"`
	Points      int          `json:"points"`
	Date        string       `json:"date"`
	Timestamp   string       `json:"timestamp"`
	Reporter    string       `json:"reporter"`
	Status      ActionStatus `json:"status"`
	ActionNote  string       `json:"actionNote,omitempty"`
}

// Template is a catalog entry pairing a canonical description with its point
// value, so reporters pick rules instead of inventing point amounts.
type Template struct {
	Label    string   `json:"label"`
	Points   int      `json:"points"`
	Category Category `json:"category"`
}

// NewReport contains information needed to file a Report. When Label matches
// a catalog template, the template's points win over the submitted ones.
type NewReport struct {
	StudentID   string   `json:"studentId" validate:"required"`
	Type        Polarity `json:"type" validate:"required,oneof=Violation Achievement"`
	Category    Category `json:"category" validate:"required,conductcat"`
	Label       string   `json:"label"`
	Description string   `json:"description" validate:"required"`
	Points      int      `json:"points" validate:"min=0"`
	ActionNote  string   `json:"actionNote"`
}

func (nr *NewReport) Validate(validate *validator.Validate) error {
	nr.Description = core.CleanString(nr.Description)
	nr.Label = core.CleanString(nr.Label)
	nr.ActionNote = strings.TrimSpace(nr.ActionNote)
	return validate.Struct(nr)
}

// ReportAction records a follow-up on an existing report.
type ReportAction struct {
	ActionNote string `json:"actionNote" validate:"required"`
}

func (ra *ReportAction) Validate(validate *validator.Validate) error {
	ra.ActionNote = core.CleanString(ra.ActionNote)
	return validate.Struct(ra)
}
