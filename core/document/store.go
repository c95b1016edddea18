package document

import (
	"sync"
	"time"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/attendance"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/calendar"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/conduct"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/roster"
)

type (
	// Repository is the raw persistence under the store: one slot for the
	// document blob and one for the sync bookkeeping beside it.
	Repository interface {
		LoadDocument() (doc Document, exists bool, err error)
		SaveDocument(doc Document) error
		LoadSyncStatus() (status SyncStatus, exists bool, err error)
		SaveSyncStatus(status SyncStatus) error
	}

	// Store serializes access to the document. Mutations go through Patch
	// merges that read the full document, overlay the provided collections
	// and write the result back, marking the sync state dirty. The lock is
	// process-local only; two devices writing the same backup still race,
	// last writer wins.
	Store struct {
		mu   sync.Mutex
		repo Repository
	}

	// Patch is a shallow overlay: nil fields keep the current value, set
	// fields replace their collection wholesale.
	Patch struct {
		Profile              **Profile
		Attendance           *[]attendance.Record
		TeacherAttendance    *[]attendance.TeacherSession
		Reports              *[]conduct.Report
		Students             *[]roster.Student
		Teachers             *[]roster.Teacher
		Schedules            *[]roster.Schedule
		Orsam                *[]roster.OrgMember
		Orklas               *[]roster.OrgMember
		ViolationTemplates   *[]conduct.Template
		AchievementTemplates *[]conduct.Template
		AcademicConfig       *AcademicConfig
	}
)

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// Snapshot returns the current document, seeded from defaults when nothing
// has been persisted yet and backfilled field-by-field otherwise.
func (st *Store) Snapshot() (Document, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.snapshotLocked()
}

func (st *Store) snapshotLocked() (Document, error) {
	doc, exists, err := st.repo.LoadDocument()
	if err != nil {
		return Document{}, err
	}
	if !exists {
		return Defaults(), nil
	}
	return withDefaults(doc), nil
}

// Mutate merges patch over the current document and persists the result.
// Every successful mutate marks the document dirty and stamps the change
// time, so the reconciler knows there is something to push.
func (st *Store) Mutate(patch Patch) (Document, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	doc, err := st.snapshotLocked()
	if err != nil {
		return Document{}, err
	}
	doc = applyPatch(doc, patch)
	if err = st.repo.SaveDocument(doc); err != nil {
		return Document{}, err
	}
	if err = st.markDirtyLocked(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Replace swaps in a whole document, e.g. one pulled from the remote backup.
// The result counts as clean: it is what the remote already has.
func (st *Store) Replace(doc Document) (Document, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	doc = withDefaults(doc)
	if err := st.repo.SaveDocument(doc); err != nil {
		return Document{}, err
	}
	status, err := st.syncStatusLocked()
	if err != nil {
		return Document{}, err
	}
	status.Pending = false
	status.IsNewLocal = false
	status.Timestamp = calendar.NowFunc().UTC().Format(time.RFC3339)
	if err = st.repo.SaveSyncStatus(status); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Clear wipes the document slot. Registered operators and the session slot
// live elsewhere and are not touched.
func (st *Store) Clear() (Document, error) {
	return st.Replace(Defaults())
}

func (st *Store) SyncStatus() (SyncStatus, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.syncStatusLocked()
}

func (st *Store) syncStatusLocked() (SyncStatus, error) {
	status, exists, err := st.repo.LoadSyncStatus()
	if err != nil {
		return SyncStatus{}, err
	}
	if !exists {
		return DefaultSyncStatus(), nil
	}
	return status, nil
}

func (st *Store) markDirtyLocked() error {
	status, err := st.syncStatusLocked()
	if err != nil {
		return err
	}
	status.Pending = true
	status.IsNewLocal = true
	status.Timestamp = calendar.NowFunc().UTC().Format(time.RFC3339)
	return st.repo.SaveSyncStatus(status)
}

// MarkSynced clears the dirty flag and stamps both the status and the
// document's last-synced field after a successful push.
func (st *Store) MarkSynced() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := calendar.NowFunc().UTC().Format(time.RFC3339)

	doc, err := st.snapshotLocked()
	if err != nil {
		return err
	}
	doc.LastSynced = now
	if err = st.repo.SaveDocument(doc); err != nil {
		return err
	}

	status, err := st.syncStatusLocked()
	if err != nil {
		return err
	}
	status.Pending = false
	status.IsNewLocal = false
	status.Timestamp = now
	return st.repo.SaveSyncStatus(status)
}

// SetAutoSync flips the opportunistic-push preference without touching the
// dirty flag.
func (st *Store) SetAutoSync(enabled bool) (SyncStatus, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	status, err := st.syncStatusLocked()
	if err != nil {
		return SyncStatus{}, err
	}
	status.AutoSync = enabled
	if err = st.repo.SaveSyncStatus(status); err != nil {
		return SyncStatus{}, err
	}
	return status, nil
}

// SetProfile stores the active operator snapshot in the document.
func (st *Store) SetProfile(p *Profile) (Document, error) {
	return st.Mutate(Patch{Profile: &p})
}

func (st *Store) SetAcademicConfig(cfg AcademicConfig) (Document, error) {
	return st.Mutate(Patch{AcademicConfig: &cfg})
}

func applyPatch(doc Document, patch Patch) Document {
	if patch.Profile != nil {
		doc.Profile = *patch.Profile
	}
	if patch.Attendance != nil {
		doc.Attendance = *patch.Attendance
	}
	if patch.TeacherAttendance != nil {
		doc.TeacherAttendance = *patch.TeacherAttendance
	}
	if patch.Reports != nil {
		doc.Reports = *patch.Reports
	}
	if patch.Students != nil {
		doc.Students = *patch.Students
	}
	if patch.Teachers != nil {
		doc.Teachers = *patch.Teachers
	}
	if patch.Schedules != nil {
		doc.Schedules = *patch.Schedules
	}
	if patch.Orsam != nil {
		doc.Orsam = *patch.Orsam
	}
	if patch.Orklas != nil {
		doc.Orklas = *patch.Orklas
	}
	if patch.ViolationTemplates != nil {
		doc.ViolationTemplates = *patch.ViolationTemplates
	}
	if patch.AchievementTemplates != nil {
		doc.AchievementTemplates = *patch.AchievementTemplates
	}
	if patch.AcademicConfig != nil {
		doc.AcademicConfig = *patch.AcademicConfig
	}
	return doc
}
