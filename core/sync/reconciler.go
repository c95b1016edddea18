package sync

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/document"
)

// State is the reconciler's visible phase. Success and error are transient
// display states that revert to idle on a timer; they carry no retry logic.
type State string

const (
	StateIdle    State = "idle"
	StateSyncing State = "syncing"
	StateSuccess State = "success"
	StateError   State = "error"
)

const (
	successRevertAfter = 3 * time.Second
	errorRevertAfter   = 5 * time.Second
)

var (
	ErrDisabled     = stderrors.New("backup is disabled")
	ErrNoCredential = stderrors.New("no backup credential")
	ErrBusy         = stderrors.New("a sync is already running")
	ErrRemoteEmpty  = stderrors.New("no remote backup found")
)

// BackupService is the remote single-file store the document is mirrored to.
type BackupService interface {
	// Upload writes content to the named backup file, creating it when the
	// by-name search finds nothing and overwriting it otherwise.
	Upload(ctx context.Context, token string, content []byte) error
	// Download fetches the backup file content; found is false when no file
	// with the configured name exists.
	Download(ctx context.Context, token string) (content []byte, found bool, err error)
	// Probe checks connectivity and credential validity without transferring
	// the document.
	Probe(ctx context.Context, token string) error
}

// Reconciler pushes the local document to the remote backup and pulls it
// back on request. One transfer runs at a time; a failed transfer leaves
// the document and its dirty flag exactly as they were.
type Reconciler struct {
	store  *document.Store
	backup BackupService
	logger core.Logger

	enabled bool

	mu     sync.Mutex
	state  State
	revert *time.Timer

	successRevert time.Duration
	errorRevert   time.Duration
}

func NewReconciler(store *document.Store, backup BackupService, logger core.Logger, enabled bool) *Reconciler {
	return &Reconciler{
		store:         store,
		backup:        backup,
		logger:        logger,
		enabled:       enabled,
		state:         StateIdle,
		successRevert: successRevertAfter,
		errorRevert:   errorRevertAfter,
	}
}

func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Push uploads the document when there is something to upload. A clean
// document is a no-op unless force is set. Preconditions fail fast without
// touching the state machine.
func (r *Reconciler) Push(ctx context.Context, token string, force bool) error {
	if !r.enabled {
		return ErrDisabled
	}
	if token == "" {
		return ErrNoCredential
	}

	status, err := r.store.SyncStatus()
	if err != nil {
		return err
	}
	if !status.Pending && !force {
		return nil
	}

	if err = r.begin(); err != nil {
		return err
	}

	doc, err := r.store.Snapshot()
	if err != nil {
		r.fail(err)
		return err
	}
	content, err := json.Marshal(doc)
	if err != nil {
		err = errors.Wrap(err, "serializing document")
		r.fail(err)
		return err
	}
	if err = r.backup.Upload(ctx, token, content); err != nil {
		err = errors.Wrap(err, "uploading backup")
		r.fail(err)
		return err
	}
	if err = r.store.MarkSynced(); err != nil {
		r.fail(err)
		return err
	}
	r.succeed()
	return nil
}

// AutoPush is the opportunistic variant invoked after mutations. It stays
// quiet when auto sync is off or nothing is pending and logs instead of
// propagating transfer failures.
func (r *Reconciler) AutoPush(ctx context.Context, token string) {
	status, err := r.store.SyncStatus()
	if err != nil {
		r.logger.Error("reading sync status", "error", err)
		return
	}
	if !status.AutoSync || !status.Pending {
		return
	}
	if err := r.Push(ctx, token, false); err != nil && err != ErrBusy {
		r.logger.Warn("auto push failed", "error", err)
	}
}

// Pull replaces the local document with the remote backup wholesale. This is
// the explicit, destructive restore path; it is never triggered implicitly.
func (r *Reconciler) Pull(ctx context.Context, token string) (document.Document, error) {
	if !r.enabled {
		return document.Document{}, ErrDisabled
	}
	if token == "" {
		return document.Document{}, ErrNoCredential
	}
	if err := r.begin(); err != nil {
		return document.Document{}, err
	}

	content, found, err := r.backup.Download(ctx, token)
	if err != nil {
		err = errors.Wrap(err, "downloading backup")
		r.fail(err)
		return document.Document{}, err
	}
	if !found {
		r.fail(ErrRemoteEmpty)
		return document.Document{}, ErrRemoteEmpty
	}

	var doc document.Document
	if err = json.Unmarshal(content, &doc); err != nil {
		err = errors.Wrap(err, "decoding backup")
		r.fail(err)
		return document.Document{}, err
	}

	doc, err = r.store.Replace(doc)
	if err != nil {
		r.fail(err)
		return document.Document{}, err
	}
	r.succeed()
	return doc, nil
}

// Probe reports whether the remote is reachable with the given credential.
func (r *Reconciler) Probe(ctx context.Context, token string) error {
	if !r.enabled {
		return ErrDisabled
	}
	if token == "" {
		return ErrNoCredential
	}
	return r.backup.Probe(ctx, token)
}

func (r *Reconciler) begin() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateSyncing {
		return ErrBusy
	}
	if r.revert != nil {
		r.revert.Stop()
		r.revert = nil
	}
	r.state = StateSyncing
	return nil
}

func (r *Reconciler) succeed() {
	r.transition(StateSuccess, r.successRevert)
}

func (r *Reconciler) fail(err error) {
	r.logger.Error("sync failed", "error", err)
	r.transition(StateError, r.errorRevert)
}

// transition enters a terminal display state and schedules the fall back to
// idle. The timer only notifies; nothing is retried.
func (r *Reconciler) transition(state State, after time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = state
	r.revert = time.AfterFunc(after, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.state == state {
			r.state = StateIdle
		}
	})
}
