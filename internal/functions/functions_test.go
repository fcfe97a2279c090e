package functions

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/haiderali9-9/edifice/internal/auth"
	"github.com/haiderali9-9/edifice/internal/models"
	"github.com/haiderali9-9/edifice/internal/notify"
	"github.com/haiderali9-9/edifice/internal/store"
)

const testSecret = "functions-test-secret"

func testHandler(t *testing.T) *Handler {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Profile{}, &models.Invitation{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return &Handler{
		Store:      store.FromDB(db),
		Secret:     testSecret,
		BaseURL:    "https://edifice.example.com",
		ExpiryDays: 7,
		Notifier:   notify.New(""),
	}
}

func seedProfile(t *testing.T, h *Handler, id, email string, admin bool) {
	t.Helper()
	db, _ := h.Store.DB()
	p := models.Profile{ID: id, Email: email, IsAdmin: admin}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
}

func mintToken(t *testing.T, subject string) string {
	t.Helper()
	token, err := auth.Mint(subject, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func doRequest(h *Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)
	return w
}

func TestInviteSuccess(t *testing.T) {
	h := testHandler(t)
	seedProfile(t, h, "usr-admin01", "admin@example.com", true)
	token := mintToken(t, "usr-admin01")

	w := doRequest(h, http.MethodPost, "/functions/invite", token, `{"email":"new@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Debug   struct {
			InvitationURL string `json:"invitationUrl"`
		} `json:"debug"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false")
	}
	if !strings.Contains(resp.Debug.InvitationURL, "https://edifice.example.com/accept-invite?token=") {
		t.Errorf("invitationUrl = %q", resp.Debug.InvitationURL)
	}

	db, _ := h.Store.DB()
	var inv models.Invitation
	if err := db.First(&inv, "email = ?", "new@example.com").Error; err != nil {
		t.Fatalf("invitation row not persisted: %v", err)
	}
	if inv.InvitedBy != "usr-admin01" {
		t.Errorf("invited_by = %q", inv.InvitedBy)
	}
	if !inv.ExpiresAt.After(time.Now().Add(6 * 24 * time.Hour)) {
		t.Errorf("expires_at = %v, want about 7 days out", inv.ExpiresAt)
	}
}

func TestInviteMissingEmail(t *testing.T) {
	h := testHandler(t)
	token := mintToken(t, "usr-admin01")

	for _, body := range []string{`{}`, `{"email":""}`, `not json`} {
		w := doRequest(h, http.MethodPost, "/functions/invite", token, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
	}
}

func TestInviteUnauthenticated(t *testing.T) {
	h := testHandler(t)

	w := doRequest(h, http.MethodPost, "/functions/invite", "", `{"email":"a@b.com"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing header: status = %d, want 401", w.Code)
	}

	w = doRequest(h, http.MethodPost, "/functions/invite", "bogus.token.here", `{"email":"a@b.com"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("invalid token: status = %d, want 401", w.Code)
	}
}

func TestInviteDegradedStore(t *testing.T) {
	h := testHandler(t)
	h.Store = store.Degraded(&store.ConfigurationError{Missing: []string{"host"}})
	token := mintToken(t, "usr-admin01")

	w := doRequest(h, http.MethodPost, "/functions/invite", token, `{"email":"a@b.com"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Error == "" {
		t.Errorf("want {error} body, got %s", w.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	h := testHandler(t)
	for _, path := range []string{"/functions/invite", "/functions/admin-emails"} {
		w := doRequest(h, http.MethodOptions, path, "", "")
		if w.Code != http.StatusOK {
			t.Errorf("%s: preflight status = %d, want 200", path, w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("%s: Allow-Origin = %q", path, got)
		}
	}
}

func TestAdminEmailsSuccess(t *testing.T) {
	h := testHandler(t)
	seedProfile(t, h, "usr-admin01", "admin@example.com", true)
	seedProfile(t, h, "usr-alice01", "alice@example.com", false)
	seedProfile(t, h, "usr-bob0001", "bob@example.com", false)
	token := mintToken(t, "usr-admin01")

	w := doRequest(h, http.MethodPost, "/functions/admin-emails", token,
		`{"userIds":["usr-alice01","usr-bob0001"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Users []struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"users"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Users) != 2 {
		t.Fatalf("users count = %d, want 2", len(resp.Users))
	}
	emails := map[string]string{}
	for _, u := range resp.Users {
		emails[u.ID] = u.Email
	}
	if emails["usr-alice01"] != "alice@example.com" || emails["usr-bob0001"] != "bob@example.com" {
		t.Errorf("unexpected users: %v", emails)
	}
}

func TestAdminEmailsForbiddenForNonAdmin(t *testing.T) {
	h := testHandler(t)
	seedProfile(t, h, "usr-alice01", "alice@example.com", false)
	token := mintToken(t, "usr-alice01")

	w := doRequest(h, http.MethodPost, "/functions/admin-emails", token, `{"userIds":["usr-alice01"]}`)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAdminEmailsUnknownCallerForbidden(t *testing.T) {
	h := testHandler(t)
	token := mintToken(t, "usr-ghost01")

	w := doRequest(h, http.MethodPost, "/functions/admin-emails", token, `{"userIds":["usr-alice01"]}`)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAdminEmailsMissingUserIDs(t *testing.T) {
	h := testHandler(t)
	seedProfile(t, h, "usr-admin01", "admin@example.com", true)
	token := mintToken(t, "usr-admin01")

	for _, body := range []string{`{}`, `{"userIds":[]}`} {
		w := doRequest(h, http.MethodPost, "/functions/admin-emails", token, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
	}
}

func TestAdminEmailsUnauthenticated(t *testing.T) {
	h := testHandler(t)
	w := doRequest(h, http.MethodPost, "/functions/admin-emails", "", `{"userIds":["x"]}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAdminEmailsCustomCheck(t *testing.T) {
	h := testHandler(t)
	seedProfile(t, h, "usr-alice01", "alice@example.com", false)
	h.AdminCheck = func(callerID string) (bool, error) {
		return callerID == "usr-alice01", nil
	}
	token := mintToken(t, "usr-alice01")

	w := doRequest(h, http.MethodPost, "/functions/admin-emails", token, `{"userIds":["usr-alice01"]}`)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with custom check", w.Code)
	}
}
