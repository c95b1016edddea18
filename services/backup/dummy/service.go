package dummybackup

import (
	"context"
	"sync"

	appsync "github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/sync"
)

// service keeps the backup file in memory. Used in tests and local
// development where hitting Google Drive is unwanted.
type service struct {
	mu      sync.Mutex
	content []byte

	Uploads  int
	FailWith error
}

var _ appsync.BackupService = (*service)(nil)

func NewService() *service {
	return &service{}
}

func (svc *service) Upload(_ context.Context, _ string, content []byte) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.FailWith != nil {
		return svc.FailWith
	}
	svc.content = append([]byte(nil), content...)
	svc.Uploads++
	return nil
}

func (svc *service) Download(context.Context, string) ([]byte, bool, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.FailWith != nil {
		return nil, false, svc.FailWith
	}
	if svc.content == nil {
		return nil, false, nil
	}
	return append([]byte(nil), svc.content...), true, nil
}

func (svc *service) Probe(context.Context, string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.FailWith
}
