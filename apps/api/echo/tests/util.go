package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/apps/api/echo"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/attendance"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/conduct"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/document"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/operator"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/roster"
	appsync "github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/sync"
	dummybackup "github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/services/backup/dummy"
	logsvc "github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/services/logger"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/storage/local"
)

var (
	conf      *core.Config
	oprRepo   operator.Repository
	oprSvc    *operator.Service
	store     *document.Store
	backupSvc appsync.BackupService

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

func setup(t *testing.T) Server {
	conf = &core.Config{
		Env:       "TEST",
		AppName:   "Smart Report Mahasina",
		TestMode:  true,
		SecretKey: []byte("t3st=s3cr3t-k3y"),
		DataDir:   t.TempDir(),
		Server: core.ServerConfig{
			JWTExpirationDelta:        1 * time.Hour,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
	}

	// set up storage & repos
	oprRepo = local.NewOperatorRepository(conf.DataDir)
	store = document.NewStore(local.NewDocumentRepository(conf.DataDir))

	// set up services
	logger := logsvc.NewConsoleLogger(true /* silent */)
	oprSvc = operator.NewService(oprRepo, local.NewSessionRepository(conf.DataDir))
	backupSvc = dummybackup.NewService()

	validate, translator := core.NewValidator()
	operator.RegisterValidators(validate, translator)
	roster.RegisterValidators(validate, translator)
	attendance.RegisterValidators(validate, translator)
	conduct.RegisterValidators(validate, translator)

	// set up server
	return NewServer(
		&Options{
			Conf:           conf,
			Logger:         logger,
			Validate:       validate,
			Translator:     translator,
			DisableReqLogs: true,
			OperatorSvc:    oprSvc,
			RosterSvc:      roster.NewService(document.NewRosterRepository(store)),
			AttendanceSvc:  attendance.NewService(document.NewAttendanceRepository(store)),
			ConductSvc:     conduct.NewService(document.NewConductRepository(store)),
			Store:          store,
			Reconciler:     appsync.NewReconciler(store, backupSvc, logger, true /* enabled */),
		},
	)
}

func createOperator(t *testing.T, name, email, role string, classes ...string) operator.Operator {
	op, err := oprSvc.Register(operator.NewOperator{
		FullName: name,
		Email:    email,
		Role:     role,
		Classes:  classes,
		Password: "V3ry#S3cret!",
	})
	if err != nil {
		t.Fatalf("createOperator() failed: %v", err)
	}
	return op
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, op operator.Operator) string {
	claims := GetOperatorClaims(conf, op)
	token, err := GenerateToken(conf, claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

// nolint
func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func unmarshalBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) error {
	t.Helper()
	return json.Unmarshal(rec.Body.Bytes(), v)
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
