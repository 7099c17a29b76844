package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"arcticfresh/internal/config"
	"arcticfresh/internal/domain"
	"arcticfresh/internal/http/handlers"
	"arcticfresh/internal/media"
	"arcticfresh/internal/repos"
	"arcticfresh/internal/services"
)

const (
	testAdmin    = "admin"
	testPassword = "correct horse battery"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []domain.Inquiry
	err  error
}

func (m *recordingMailer) Configured() bool { return true }

func (m *recordingMailer) SendInquiry(_ context.Context, in domain.Inquiry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, in)
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type testEnv struct {
	app    *fiber.App
	deps   *handlers.Deps
	mailer *recordingMailer
}

func relaxedLimits() handlers.Limits {
	lim := handlers.DefaultLimits()
	lim.LoginMax, lim.SubmitMax = 1000, 1000
	return lim
}

// newTestApp wires the real routes over an in-memory sqlite database.
func newTestApp(t *testing.T, lim handlers.Limits) *testEnv {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	creds, err := services.NewStaticCredentials(testAdmin, testPassword, "")
	if err != nil {
		t.Fatalf("credentials: %v", err)
	}
	auth := services.NewAuthService(creds, "test-secret")
	mediaDir := t.TempDir()
	up, err := media.NewLocal(mediaDir, "/media")
	if err != nil {
		t.Fatalf("media: %v", err)
	}
	mailer := &recordingMailer{}
	cfg := config.Config{MediaDir: mediaDir}

	deps := handlers.NewDeps(handlers.Backend{
		Products:   repos.NewProductRepo(db),
		Categories: repos.NewCategoryRepo(db),
		Inquiries:  repos.NewInquiryRepo(db),
		Wishlist:   repos.NewWishlistRepo(db).Storage,
	}, cfg, auth, mailer, up)

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine, ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	handlers.Mount(app, deps, lim)
	return &testEnv{app: app, deps: deps, mailer: mailer}
}

func (e *testEnv) seed(t *testing.T) {
	t.Helper()
	if _, err := services.SeedDemo(context.Background(), e.deps.Catalog); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Reason  string `json:"reason"`
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"error"`
	Meta json.RawMessage `json:"meta"`
}

func (e envelope) reason() string {
	if e.Error == nil {
		return ""
	}
	return e.Error.Reason
}

// call sends a JSON request and decodes the response envelope.
func (e *testEnv) call(t *testing.T, method, path string, body any, cookies ...*http.Cookie) (*http.Response, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := e.app.Test(req, int((5 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, raw, err)
		}
	}
	return resp, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return v
}

func cookieNamed(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// login returns the admin auth-token cookie.
func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	resp, env := e.call(t, "POST", "/api/auth/login", map[string]string{"username": testAdmin, "password": testPassword})
	if resp.StatusCode != http.StatusOK || !env.Success {
		t.Fatalf("login: status %d env %+v", resp.StatusCode, env)
	}
	c := cookieNamed(resp, "auth-token")
	if c == nil || c.Value == "" {
		t.Fatal("auth-token cookie missing")
	}
	return c
}

var csrfField = regexp.MustCompile(`name="csrf" value="([^"]*)"`)

// csrfToken fetches a page and returns the token rendered into its form,
// which must match the csrf cookie.
func (e *testEnv) csrfToken(t *testing.T, page string) string {
	t.Helper()
	resp, err := e.app.Test(httptest.NewRequest("GET", page, nil))
	if err != nil {
		t.Fatal(err)
	}
	c := cookieNamed(resp, "csrf_")
	if c == nil || c.Value == "" {
		t.Fatal("csrf cookie missing")
	}
	m := csrfField.FindStringSubmatch(readBody(t, resp))
	if m == nil || m[1] == "" {
		t.Fatalf("%s: form renders no csrf token", page)
	}
	if m[1] != c.Value {
		t.Fatalf("%s: rendered token %q differs from cookie %q", page, m[1], c.Value)
	}
	return m[1]
}

func (e *testEnv) postForm(t *testing.T, path, csrfTok, form string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	body := "csrf=" + csrfTok
	if form != "" {
		body += "&" + form
	}
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := e.app.Test(req, int((5 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Admin  string         `json:"admin"`
	Status int            `json:"status"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

// captureLogs swaps the standard logger output while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedWriter{w: &buf, mu: &mu})
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	mu.Lock()
	defer mu.Unlock()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}
