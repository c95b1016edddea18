package conduct

import (
	"errors"

	"github.com/google/uuid"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/calendar"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/operator"
)

var ErrNotFound = errors.New("report not found")

type (
	// Repository persists reports and the two template catalogs.
	Repository interface {
		QueryReports() ([]Report, error)
		ReplaceReports(reports []Report) error
		QueryTemplates(polarity Polarity) ([]Template, error)
		ReplaceTemplates(polarity Polarity, templates []Template) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryReports() ([]Report, error) { return svc.repo.QueryReports() }

func (svc *Service) QueryTemplates(polarity Polarity) ([]Template, error) {
	return svc.repo.QueryTemplates(polarity)
}

func (svc *Service) ReplaceTemplates(polarity Polarity, templates []Template) error {
	return svc.repo.ReplaceTemplates(polarity, templates)
}

// File creates a report stamped with today's date and the current time.
// Points come from the matching catalog template when the label names one;
// otherwise the submitted amount stands. Filing with an action note already
// written lands the report directly in the actioned state.
func (svc *Service) File(reporter string, nr NewReport) (Report, error) {
	reports, err := svc.repo.QueryReports()
	if err != nil {
		return Report{}, err
	}
	points := nr.Points
	if nr.Label != "" {
		templates, err := svc.repo.QueryTemplates(nr.Type)
		if err != nil {
			return Report{}, err
		}
		for _, tpl := range templates {
			if tpl.Label == nr.Label {
				points = tpl.Points
				break
			}
		}
	}

	now := calendar.NowFunc()
	report := Report{
		ID:          uuid.NewString(),
		StudentID:   nr.StudentID,
		Type:        nr.Type,
		Category:    nr.Category,
		Description: nr.Description,
		Points:      points,
		Date:        calendar.DateOf(now).String(),
		Timestamp:   now.Format("15:04"),
		Reporter:    reporter,
		Status:      statusFor(nr.ActionNote),
		ActionNote:  nr.ActionNote,
	}
	if err = svc.repo.ReplaceReports(append(reports, report)); err != nil {
		return Report{}, err
	}
	return report, nil
}

// Act records a follow-up note and moves the report to the actioned state.
func (svc *Service) Act(id string, ra ReportAction) (Report, error) {
	reports, err := svc.repo.QueryReports()
	if err != nil {
		return Report{}, err
	}
	for i, r := range reports {
		if r.ID != id {
			continue
		}
		reports[i].ActionNote = ra.ActionNote
		reports[i].Status = statusFor(ra.ActionNote)
		if err = svc.repo.ReplaceReports(reports); err != nil {
			return Report{}, err
		}
		return reports[i], nil
	}
	return Report{}, ErrNotFound
}

// Delete removes a report. Only full-visibility roles may delete.
func (svc *Service) Delete(requestor operator.Operator, id string) error {
	if !requestor.IsAdmin() {
		return core.NewPermissionError("permission denied")
	}
	reports, err := svc.repo.QueryReports()
	if err != nil {
		return err
	}
	kept := reports[:0]
	found := false
	for _, r := range reports {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return ErrNotFound
	}
	return svc.repo.ReplaceReports(kept)
}
