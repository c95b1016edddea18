package local

import (
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/document"
)

// DocumentRepository stores the document blob and its sync bookkeeping in
// two separate files, so clearing the document never loses sync settings.
type DocumentRepository struct {
	doc  *fileSlot
	sync *fileSlot
}

var _ document.Repository = (*DocumentRepository)(nil)

func NewDocumentRepository(dataDir string) *DocumentRepository {
	return &DocumentRepository{
		doc:  newFileSlot(dataDir, documentFile),
		sync: newFileSlot(dataDir, syncMetaFile),
	}
}

func (r *DocumentRepository) LoadDocument() (document.Document, bool, error) {
	var doc document.Document
	exists, err := r.doc.load(&doc)
	return doc, exists, err
}

func (r *DocumentRepository) SaveDocument(doc document.Document) error {
	return r.doc.save(doc)
}

func (r *DocumentRepository) LoadSyncStatus() (document.SyncStatus, bool, error) {
	var status document.SyncStatus
	exists, err := r.sync.load(&status)
	return status, exists, err
}

func (r *DocumentRepository) SaveSyncStatus(status document.SyncStatus) error {
	return r.sync.save(status)
}
