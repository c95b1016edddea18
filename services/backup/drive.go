package backupsvc

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/sync"
)

// DriveBackupService mirrors the document to a single named JSON file in
// Google Drive. The file is located by name search on every transfer, so
// overwrites always land on the first file created.
type DriveBackupService struct {
	meta     *resty.Client
	upload   *resty.Client
	fileName string
	logger   core.Logger
}

var _ sync.BackupService = (*DriveBackupService)(nil)

func NewDriveBackupService(conf *core.Config, logger core.Logger) *DriveBackupService {
	newClient := func(baseURL string) *resty.Client {
		return resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30 * time.Second).
			SetHeader("Accept", "application/json")
	}
	return &DriveBackupService{
		meta:     newClient(conf.Backup.MetaURL),
		upload:   newClient(conf.Backup.UploadURL),
		fileName: conf.Backup.FileName,
		logger:   logger,
	}
}

type driveFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type driveFileList struct {
	Files []driveFile `json:"files"`
}

// findFile searches the backup file by name, skipping trashed copies.
func (svc *DriveBackupService) findFile(ctx context.Context, token string) (string, error) {
	var list driveFileList
	res, err := svc.meta.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("q", fmt.Sprintf("name='%s' and trashed=false", svc.fileName)).
		SetResult(&list).
		Get("/files")
	if err != nil {
		return "", errors.Wrap(err, "searching backup file")
	}
	if res.IsError() {
		return "", errors.Errorf("searching backup file: %s", res.Status())
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].ID, nil
}

func (svc *DriveBackupService) Upload(ctx context.Context, token string, content []byte) error {
	fileID, err := svc.findFile(ctx, token)
	if err != nil {
		return err
	}

	if fileID != "" {
		res, err := svc.upload.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetQueryParam("uploadType", "media").
			SetHeader("Content-Type", "application/json").
			SetBody(content).
			Patch("/files/" + fileID)
		if err != nil {
			return errors.Wrap(err, "updating backup file")
		}
		if res.IsError() {
			return errors.Errorf("updating backup file: %s", res.Status())
		}
		svc.logger.Debug("backup file updated", map[string]interface{}{"fileId": fileID})
		return nil
	}

	metadata := fmt.Sprintf(`{"name":%q,"mimeType":"application/json"}`, svc.fileName)
	res, err := svc.upload.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("uploadType", "multipart").
		SetMultipartField("metadata", "", "application/json", bytes.NewReader([]byte(metadata))).
		SetMultipartField("file", svc.fileName, "application/json", bytes.NewReader(content)).
		Post("/files")
	if err != nil {
		return errors.Wrap(err, "creating backup file")
	}
	if res.IsError() {
		return errors.Errorf("creating backup file: %s", res.Status())
	}
	svc.logger.Debug("backup file created")
	return nil
}

func (svc *DriveBackupService) Download(ctx context.Context, token string) ([]byte, bool, error) {
	fileID, err := svc.findFile(ctx, token)
	if err != nil {
		return nil, false, err
	}
	if fileID == "" {
		return nil, false, nil
	}

	res, err := svc.meta.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("alt", "media").
		Get("/files/" + fileID)
	if err != nil {
		return nil, false, errors.Wrap(err, "downloading backup file")
	}
	if res.IsError() {
		return nil, false, errors.Errorf("downloading backup file: %s", res.Status())
	}
	return res.Body(), true, nil
}

// Probe hits the about endpoint; it validates both connectivity and the
// bearer credential without transferring any document content.
func (svc *DriveBackupService) Probe(ctx context.Context, token string) error {
	res, err := svc.meta.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("fields", "user").
		Get("/about")
	if err != nil {
		return errors.Wrap(err, "probing backup store")
	}
	if res.IsError() {
		return errors.Errorf("probing backup store: %s", res.Status())
	}
	return nil
}
