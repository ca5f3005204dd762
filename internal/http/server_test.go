package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/splitpay/splitpay/internal/auth"
	"github.com/splitpay/splitpay/internal/cache"
	"github.com/splitpay/splitpay/internal/models"
	"github.com/splitpay/splitpay/internal/service"
	"github.com/splitpay/splitpay/internal/storage/sqlite"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	mem := cache.NewMemory()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	server := NewServer(
		service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store),
		service.NewGroupService(store),
		service.NewExpenseService(store, mem),
		service.NewSettlementService(store, mem, time.Minute),
		service.NewReportService(store),
		jwtManager,
	)
	return server.Handler()
}

func doRequest(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func registerUser(t *testing.T, handler http.Handler, name, email string) (userID, token string) {
	t.Helper()

	rec := doRequest(t, handler, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "password123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", email, rec.Code, rec.Body.String())
	}
	session := decodeBody[sessionResponse](t, rec)
	return session.User.ID, session.Token
}

func TestServerAuthFlow(t *testing.T) {
	handler := newTestHandler(t)

	_, token := registerUser(t, handler, "Alice", "alice@example.com")

	rec := doRequest(t, handler, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Alice Again", "email": "alice@example.com", "password": "password123",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate email: expected 400, got %d", rec.Code)
	}

	rec = doRequest(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad password: expected 401, got %d", rec.Code)
	}

	rec = doRequest(t, handler, http.MethodGet, "/api/auth/profile", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing token: expected 401, got %d", rec.Code)
	}

	rec = doRequest(t, handler, http.MethodGet, "/api/auth/profile", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d", rec.Code)
	}
	profile := decodeBody[models.User](t, rec)
	if profile.Email != "alice@example.com" {
		t.Errorf("unexpected profile email %q", profile.Email)
	}
}

func TestServerSettlementFlow(t *testing.T) {
	handler := newTestHandler(t)

	aliceID, aliceToken := registerUser(t, handler, "Alice", "alice@example.com")
	bobID, bobToken := registerUser(t, handler, "Bob", "bob@example.com")

	rec := doRequest(t, handler, http.MethodPost, "/api/groups", aliceToken, map[string]any{
		"name": "Road Trip", "members": []string{"bob@example.com"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create group: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[createGroupResponse](t, rec)
	groupID := created.Group.ID
	if len(created.Group.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(created.Group.Members))
	}

	rec = doRequest(t, handler, http.MethodPost, "/api/groups/"+groupID+"/expenses", aliceToken, map[string]any{
		"description": "Fuel", "amount": 90,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add expense: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	expense := decodeBody[models.Expense](t, rec)

	rec = doRequest(t, handler, http.MethodGet, "/api/groups/"+groupID+"/settlements", bobToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get plan: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	plan := decodeBody[service.Plan](t, rec)
	if plan.TotalSpent != 90 {
		t.Errorf("expected total 90, got %v", plan.TotalSpent)
	}
	if len(plan.Transfers) != 1 || plan.Transfers[0].From != bobID || plan.Transfers[0].To != aliceID || plan.Transfers[0].Amount != 45 {
		t.Fatalf("unexpected plan transfers: %+v", plan.Transfers)
	}

	// Bob marks his debt settled and the plan empties.
	rec = doRequest(t, handler, http.MethodPost, "/api/groups/"+groupID+"/settlements", bobToken, plan.Transfers[0])
	if rec.Code != http.StatusCreated {
		t.Fatalf("record settlement: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	settled := decodeBody[models.Expense](t, rec)
	if !settled.Settlement {
		t.Error("recorded expense should carry the settlement flag")
	}

	rec = doRequest(t, handler, http.MethodGet, "/api/groups/"+groupID+"/settlements", aliceToken, nil)
	plan = decodeBody[service.Plan](t, rec)
	if len(plan.Transfers) != 0 {
		t.Errorf("expected empty plan after settling, got %+v", plan.Transfers)
	}

	// Only the payer may edit or delete.
	rec = doRequest(t, handler, http.MethodPut, "/api/expenses/"+expense.ID, bobToken, map[string]any{
		"description": "Petrol",
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-payer update: expected 403, got %d", rec.Code)
	}
	rec = doRequest(t, handler, http.MethodPut, "/api/expenses/"+expense.ID, aliceToken, map[string]any{
		"description": "Petrol",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("payer update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := decodeBody[models.Expense](t, rec)
	if updated.Description != "Petrol" || updated.Amount != 90 {
		t.Errorf("unexpected update result: %q %v", updated.Description, updated.Amount)
	}

	rec = doRequest(t, handler, http.MethodDelete, "/api/expenses/"+expense.ID, aliceToken, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", rec.Code)
	}
	rec = doRequest(t, handler, http.MethodDelete, "/api/expenses/"+expense.ID, aliceToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("double delete: expected 404, got %d", rec.Code)
	}
}

func TestServerMembershipErrors(t *testing.T) {
	handler := newTestHandler(t)

	_, aliceToken := registerUser(t, handler, "Alice", "alice@example.com")
	_, carolToken := registerUser(t, handler, "Carol", "carol@example.com")

	rec := doRequest(t, handler, http.MethodPost, "/api/groups", aliceToken, map[string]any{"name": "Flat"})
	created := decodeBody[createGroupResponse](t, rec)
	groupID := created.Group.ID

	rec = doRequest(t, handler, http.MethodGet, "/api/groups/"+groupID, carolToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("outsider group read: expected 403, got %d", rec.Code)
	}
	var errBody map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&errBody); err != nil || errBody["message"] == "" {
		t.Errorf("error body should carry a message, got %q", rec.Body.String())
	}

	rec = doRequest(t, handler, http.MethodGet, "/api/groups/does-not-exist", aliceToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown group: expected 404, got %d", rec.Code)
	}

	rec = doRequest(t, handler, http.MethodPost, "/api/groups/"+groupID+"/expenses", aliceToken, map[string]any{
		"description": "Rent", "amount": -5,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative amount: expected 400, got %d", rec.Code)
	}
}

func TestServerGroupReportPDF(t *testing.T) {
	handler := newTestHandler(t)

	_, aliceToken := registerUser(t, handler, "Alice", "alice@example.com")

	rec := doRequest(t, handler, http.MethodPost, "/api/groups", aliceToken, map[string]any{"name": "Solo"})
	created := decodeBody[createGroupResponse](t, rec)

	rec = doRequest(t, handler, http.MethodGet, "/api/groups/"+created.Group.ID+"/report", aliceToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("report: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf, got %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("response body does not look like a PDF")
	}
}

func TestServerManualReports(t *testing.T) {
	handler := newTestHandler(t)

	_, aliceToken := registerUser(t, handler, "Alice", "alice@example.com")
	_, bobToken := registerUser(t, handler, "Bob", "bob@example.com")

	rec := doRequest(t, handler, http.MethodPost, "/api/reports", aliceToken, map[string]any{
		"name": "Picnic",
		"data": map[string]any{"people": []map[string]any{{"name": "Alice", "amount": 40}}},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("save report: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, handler, http.MethodGet, "/api/reports", aliceToken, nil)
	reports := decodeBody[[]models.ManualReport](t, rec)
	if len(reports) != 1 || reports[0].Name != "Picnic" {
		t.Fatalf("unexpected reports: %+v", reports)
	}

	rec = doRequest(t, handler, http.MethodGet, "/api/reports", bobToken, nil)
	reports = decodeBody[[]models.ManualReport](t, rec)
	if len(reports) != 0 {
		t.Errorf("reports must be scoped per user, got %+v", reports)
	}
}

func TestServerHealthAndCORS(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("healthz: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("unexpected healthz body %q", rec.Body.String())
	}

	rec = doRequest(t, handler, http.MethodOptions, "/api/groups", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("preflight: expected 200, got %d", rec.Code)
	}
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("expected permissive CORS, got %q", origin)
	}

	rec = doRequest(t, handler, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("metrics: expected 200, got %d", rec.Code)
	}
}
