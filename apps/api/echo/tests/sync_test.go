package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	echoapi "github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/apps/api/echo"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/document"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/operator"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/roster"
	appsync "github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/sync"
)

const testDriveToken = "ya29.test-credential"

func newSyncRequest(method, path, token, driveToken string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	req, rec := newAuthRequest(method, path, token, data...)
	if driveToken != "" {
		req.Header.Set("X-Drive-Token", driveToken)
	}
	return req, rec
}

func Test_syncApi_status(t *testing.T) {
	app := setup(t)

	guru := createOperator(t, "Ust. Umar", "umar@mahasina.id", operator.RoleGuru)

	req, rec := newAuthRequest(http.MethodGet, "/v1/sync/status", getToken(t, guru))
	app.ServeHTTP(rec, req)

	var status echoapi.SyncStatusResponse
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v", rec.Code)
	}
	if err := unmarshalBody(t, rec, &status); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if status.Pending || !status.AutoSync || status.State != appsync.StateIdle {
		t.Errorf("unexpected initial status: %+v", status)
	}
}

func Test_syncApi_push(t *testing.T) {
	app := setup(t)

	guru := createOperator(t, "Ust. Umar", "umar@mahasina.id", operator.RoleGuru)
	guruToken := getToken(t, guru)

	seedRoster(t) // dirties the document

	// no credential, no transfer
	req, rec := newSyncRequest(http.MethodPost, "/v1/sync/push", guruToken, "")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "no backup credential"})}, rec)

	status, err := store.SyncStatus()
	if err != nil {
		t.Fatalf("SyncStatus() failed: %v", err)
	}
	if !status.Pending {
		t.Fatal("document should still be dirty")
	}

	req, rec = newSyncRequest(http.MethodPost, "/v1/sync/push", guruToken, testDriveToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}

	var resp echoapi.SyncStatusResponse
	if err := unmarshalBody(t, rec, &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Pending {
		t.Error("push should clear the dirty flag")
	}
	if resp.State != appsync.StateSuccess {
		t.Errorf("State = %q; want %q", resp.State, appsync.StateSuccess)
	}

	doc, err := store.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}
	if doc.LastSynced == "" {
		t.Error("push should stamp lastSynced")
	}
}

func Test_syncApi_pull(t *testing.T) {
	app := setup(t)

	admin := createOperator(t, "Ust. Ahmad", "ahmad@mahasina.id", operator.RoleIdaroh)
	guru := createOperator(t, "Ust. Umar", "umar@mahasina.id", operator.RoleGuru)
	adminToken := getToken(t, admin)

	// restoring is an admin concern
	req, rec := newSyncRequest(http.MethodPost, "/v1/sync/pull", getToken(t, guru), testDriveToken)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})}, rec)

	// nothing uploaded yet
	req, rec = newSyncRequest(http.MethodPost, "/v1/sync/pull", adminToken, testDriveToken)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "no remote backup found"})}, rec)

	// push three students, lose one locally, pull it back
	seedRoster(t)
	req, rec = newSyncRequest(http.MethodPost, "/v1/sync/push", adminToken, testDriveToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("push failed! code = %v; body %s", rec.Code, rec.Body.String())
	}

	rosterSvc := roster.NewService(document.NewRosterRepository(store))
	students, err := rosterSvc.QueryStudents()
	if err != nil {
		t.Fatalf("QueryStudents() failed: %v", err)
	}
	if err := rosterSvc.DeleteStudent(students[0].ID); err != nil {
		t.Fatalf("DeleteStudent() failed: %v", err)
	}

	req, rec = newSyncRequest(http.MethodPost, "/v1/sync/pull", adminToken, testDriveToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("pull failed! code = %v; body %s", rec.Code, rec.Body.String())
	}

	restored, err := rosterSvc.QueryStudents()
	if err != nil {
		t.Fatalf("QueryStudents() failed: %v", err)
	}
	if len(restored) != len(students) {
		t.Errorf("expected the remote roster back; got %d students, want %d", len(restored), len(students))
	}

	status, err := store.SyncStatus()
	if err != nil {
		t.Fatalf("SyncStatus() failed: %v", err)
	}
	if status.Pending {
		t.Error("a pulled document is clean")
	}
}

func Test_syncApi_setAuto(t *testing.T) {
	app := setup(t)

	guru := createOperator(t, "Ust. Umar", "umar@mahasina.id", operator.RoleGuru)

	body := marchallObj(t, map[string]bool{"autoSync": false})
	req, rec := newAuthRequest(http.MethodPut, "/v1/sync/auto", getToken(t, guru), body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}

	var resp echoapi.SyncStatusResponse
	if err := unmarshalBody(t, rec, &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AutoSync {
		t.Error("auto sync should be off")
	}
	if resp.Pending {
		t.Error("toggling the preference never dirties the document")
	}
}

func Test_syncApi_probe(t *testing.T) {
	app := setup(t)

	guru := createOperator(t, "Ust. Umar", "umar@mahasina.id", operator.RoleGuru)
	guruToken := getToken(t, guru)

	req, rec := newSyncRequest(http.MethodGet, "/v1/sync/probe", guruToken, "")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "no backup credential"})}, rec)

	req, rec = newSyncRequest(http.MethodGet, "/v1/sync/probe", guruToken, testDriveToken)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, map[string]bool{"reachable": true})}, rec)
}

func Test_syncApi_document(t *testing.T) {
	app := setup(t)

	admin := createOperator(t, "Ust. Ahmad", "ahmad@mahasina.id", operator.RoleIdaroh)
	guru := createOperator(t, "Ust. Umar", "umar@mahasina.id", operator.RoleGuru)
	adminToken := getToken(t, admin)

	// the academic config is seeded with the defaults
	req, rec := newAuthRequest(http.MethodGet, "/v1/document/academic-config", getToken(t, guru))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v", rec.Code)
	}
	var config document.AcademicConfig
	if err := unmarshalBody(t, rec, &config); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if config.SchoolYear == "" || config.Semester == "" {
		t.Fatalf("expected seeded academic config; got %+v", config)
	}

	// updating it is an admin concern
	update := marchallObj(t, document.AcademicConfig{SchoolYear: "2026/2027", Semester: document.SemesterGanjil})
	req, rec = newAuthRequest(http.MethodPut, "/v1/document/academic-config", getToken(t, guru), update)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})}, rec)

	req, rec = newAuthRequest(http.MethodPut, "/v1/document/academic-config", adminToken, update)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, document.AcademicConfig{SchoolYear: "2026/2027", Semester: document.SemesterGanjil}),
	}, rec)

	// clearing resets the document but keeps registered operators
	req, rec = newAuthRequest(http.MethodDelete, "/v1/document", adminToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("failed! code = %v", rec.Code)
	}

	doc, err := store.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}
	defaults := document.Defaults()
	if len(doc.ViolationTemplates) != len(defaults.ViolationTemplates) {
		t.Errorf("expected default catalogs after clear; got %d templates", len(doc.ViolationTemplates))
	}
	if _, err := oprSvc.GetByID(admin.ID); err != nil {
		t.Errorf("operators must survive a document clear: %v", err)
	}
}
