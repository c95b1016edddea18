// Package local persists the application stores as JSON files on disk, one
// file per store, mirroring the storage-key layout of the backup format.
// Writes are atomic (temp file + rename). Locking is per process; two
// processes on the same data directory race with last writer winning, the
// same way two devices sharing a backup do.
package local

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

const (
	documentFile  = "mahasina_report_v2.json"
	operatorsFile = "mahasina_users_db_v2.json"
	sessionFile   = "mahasina_session.json"
	syncMetaFile  = "mahasina_sync_meta.json"
)

// fileSlot is one JSON value stored in one file.
type fileSlot struct {
	mu   sync.Mutex
	path string
}

func newFileSlot(dataDir, name string) *fileSlot {
	return &fileSlot{path: filepath.Join(dataDir, name)}
}

// load decodes the slot into v; exists is false when the file was never
// written.
func (f *fileSlot) load(v interface{}) (exists bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "reading %s", f.path)
	}
	if err = json.Unmarshal(data, v); err != nil {
		return false, errors.Wrapf(err, "decoding %s", f.path)
	}
	return true, nil
}

func (f *fileSlot) save(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", f.path)
	}
	if err = os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return errors.Wrapf(err, "creating data dir for %s", f.path)
	}
	tmp := f.path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", tmp)
	}
	if err = os.Rename(tmp, f.path); err != nil {
		return errors.Wrapf(err, "replacing %s", f.path)
	}
	return nil
}

func (f *fileSlot) remove() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing %s", f.path)
	}
	return nil
}
