package tests

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/operator"
)

func Test_operatorApi_login(t *testing.T) {
	app := setup(t)

	createOperator(t, "Ust. Ahmad", "ahmad@mahasina.id", operator.RoleIdaroh)

	tests := []httpTest{
		{
			name: "empty payload", body: marchallObj(t, map[string]string{}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "this field is required", "password": "this field is required"}),
		},
		{
			name: "unknown email", body: marchallObj(t, map[string]string{"email": "lol@mahasina.id", "password": "V3ry#S3cret!"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "wrong password", body: marchallObj(t, map[string]string{"email": "ahmad@mahasina.id", "password": "lolmdr"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "login ok", body: marchallObj(t, map[string]string{"email": "ahmad@mahasina.id", "password": "V3ry#S3cret!"}),
			wantCode: http.StatusOK,
		},
		{
			name: "login is case-insensitive on email", body: marchallObj(t, map[string]string{"email": "Ahmad@Mahasina.ID", "password": "V3ry#S3cret!"}),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/operators/login", tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
			}
			var resp struct {
				Token string `json:"token"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Token == "" {
				t.Error("expected a token")
			}
		})
	}
}

func Test_operatorApi_loginStoresProfileSnapshot(t *testing.T) {
	app := setup(t)

	createOperator(t, "Ust. Ahmad", "ahmad@mahasina.id", operator.RoleIdaroh)

	body := marchallObj(t, map[string]string{"email": "ahmad@mahasina.id", "password": "V3ry#S3cret!"})
	req, rec := newRequest(http.MethodPost, "/v1/operators/login", body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed! code = %v", rec.Code)
	}

	doc, err := store.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}
	if doc.Profile == nil || doc.Profile.FullName != "Ust. Ahmad" {
		t.Errorf("profile snapshot not stored; got %+v", doc.Profile)
	}
}

func Test_operatorApi_register(t *testing.T) {
	app := setup(t)

	existing := createOperator(t, "Ust. Ahmad", "ahmad@mahasina.id", operator.RoleIdaroh)

	tests := []httpTest{
		{
			name: "password policy applies",
			body: marchallObj(t, map[string]interface{}{
				"fullName": "Ust. Umar", "email": "umar@mahasina.id", "role": operator.RoleGuru,
				"password": "12345678", "password_confirm": "12345678",
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password": "password cannot be entirely numeric"}),
		},
		{
			name: "unknown role",
			body: marchallObj(t, map[string]interface{}{
				"fullName": "Ust. Umar", "email": "umar@mahasina.id", "role": "Sultan",
				"password": "V3ry#S3cret!", "password_confirm": "V3ry#S3cret!",
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"role": "invalid role"}),
		},
		{
			name: "duplicate email",
			body: marchallObj(t, map[string]interface{}{
				"fullName": "Impostor", "email": existing.Email, "role": operator.RoleGuru,
				"password": "V3ry#S3cret!", "password_confirm": "V3ry#S3cret!",
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "an operator with this email is already registered"}),
		},
		{
			name: "register ok",
			body: marchallObj(t, map[string]interface{}{
				"fullName": "Ust. Umar", "email": "umar@mahasina.id", "role": operator.RoleGuru,
				"password": "V3ry#S3cret!", "password_confirm": "V3ry#S3cret!",
			}),
			wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/operators/register", tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if _, err := oprSvc.GetByEmail("umar@mahasina.id"); err != nil {
				t.Errorf("registered operator not found: %v", err)
			}
		})
	}
}

func Test_operatorApi_query(t *testing.T) {
	app := setup(t)

	admin := createOperator(t, "Ust. Ahmad", "ahmad@mahasina.id", operator.RoleIdaroh)
	guru := createOperator(t, "Ust. Umar", "umar@mahasina.id", operator.RoleGuru)
	musyrif := createOperator(t, "Ust. Malik", "malik@mahasina.id", operator.RoleMusyrif, "7A")

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin required", token: getToken(t, guru), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Get all", token: getToken(t, admin), wantCode: http.StatusOK,
			wantData: marchallList(t, admin, guru, musyrif),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/operators", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_operatorApi_me(t *testing.T) {
	app := setup(t)

	guru := createOperator(t, "Ust. Umar", "umar@mahasina.id", operator.RoleGuru)

	tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, guru)}
	req, rec := newAuthRequest(http.MethodGet, "/v1/operators/me", getToken(t, guru))
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}

func Test_operatorApi_update(t *testing.T) {
	app := setup(t)

	admin := createOperator(t, "Ust. Ahmad", "ahmad@mahasina.id", operator.RoleIdaroh)
	guru := createOperator(t, "Ust. Umar", "umar@mahasina.id", operator.RoleGuru)

	tests := []httpTest{
		{
			name: "operator cannot change own role", path: "/v1/operators/" + guru.ID, token: getToken(t, guru),
			body:     marchallObj(t, map[string]interface{}{"role": operator.RolePengasuh}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "operator cannot reach others", path: "/v1/operators/" + admin.ID, token: getToken(t, guru),
			body:     marchallObj(t, map[string]interface{}{"fullName": "Gotcha"}),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name: "operator updates own name", path: "/v1/operators/" + guru.ID, token: getToken(t, guru),
			body:     marchallObj(t, map[string]interface{}{"fullName": "Ust. Umar Faruq"}),
			wantCode: http.StatusOK,
		},
		{
			name: "admin promotes", path: "/v1/operators/" + guru.ID, token: getToken(t, admin),
			body:     marchallObj(t, map[string]interface{}{"role": operator.RoleMusyrif, "classes": []string{"7A"}}),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPut, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}

	refreshed, err := oprSvc.GetByID(guru.ID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if refreshed.FullName != "Ust. Umar Faruq" || refreshed.Role != operator.RoleMusyrif {
		t.Errorf("updates not applied; got %+v", refreshed)
	}
}

func Test_operatorApi_destroy(t *testing.T) {
	app := setup(t)

	admin := createOperator(t, "Ust. Ahmad", "ahmad@mahasina.id", operator.RoleIdaroh)
	guru := createOperator(t, "Ust. Umar", "umar@mahasina.id", operator.RoleGuru)
	adminToken := getToken(t, admin)

	// Say No to Suicide!
	req, rec := newAuthRequest(http.MethodDelete, "/v1/operators/"+admin.ID, adminToken)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})}, rec)

	req, rec = newAuthRequest(http.MethodDelete, "/v1/operators/"+guru.ID, adminToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusNoContent)
	}
	if _, err := oprSvc.GetByID(guru.ID); err != operator.ErrNotFound {
		t.Errorf("operator not deleted; err = %v", err)
	}
}

func Test_operatorApi_destroyMultiple(t *testing.T) {
	app := setup(t)

	admin := createOperator(t, "Ust. Ahmad", "ahmad@mahasina.id", operator.RoleIdaroh)
	guru := createOperator(t, "Ust. Umar", "umar@mahasina.id", operator.RoleGuru)
	musyrif := createOperator(t, "Ust. Malik", "malik@mahasina.id", operator.RoleMusyrif, "7A")

	v := make(url.Values)
	v.Add("id", guru.ID)
	v.Add("id", musyrif.ID)
	req, rec := newAuthRequest(http.MethodDelete, "/v1/operators?"+v.Encode(), getToken(t, admin))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusNoContent)
	}

	remaining, err := oprSvc.QueryAll()
	if err != nil {
		t.Fatalf("QueryAll() failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != admin.ID {
		t.Errorf("expected only admin to remain; got %v", remaining)
	}
}

func Test_operatorApi_refreshToken(t *testing.T) {
	app := setup(t)

	guru := createOperator(t, "Ust. Umar", "umar@mahasina.id", operator.RoleGuru)

	req, rec := newAuthRequest(http.MethodPost, "/v1/operators/token-refresh", getToken(t, guru))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a fresh token")
	}
}

func Test_operatorApi_queryRoles(t *testing.T) {
	app := setup(t)

	guru := createOperator(t, "Ust. Umar", "umar@mahasina.id", operator.RoleGuru)

	tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, operator.AllRoles)}
	req, rec := newAuthRequest(http.MethodGet, "/v1/operators/roles", getToken(t, guru))
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}
