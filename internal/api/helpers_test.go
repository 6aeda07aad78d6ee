package api_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kdimtricp/videogrid/internal/admin"
	"github.com/kdimtricp/videogrid/internal/api"
	"github.com/kdimtricp/videogrid/internal/auth"
	"github.com/kdimtricp/videogrid/internal/catalog"
	"github.com/kdimtricp/videogrid/internal/database"
	"github.com/kdimtricp/videogrid/internal/logger"
	"github.com/kdimtricp/videogrid/internal/notify"
	"github.com/kdimtricp/videogrid/internal/retry"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminUser     = "admin"
	adminPassword = "correct horse"
)

type TestServer struct {
	Server   *httptest.Server
	App      *api.App
	DB       *database.DB
	Store    catalog.Store
	Sessions *auth.Provider
}

func setupTestServer(t *testing.T) *TestServer {
	t.Helper()
	ctx := context.Background()
	log := logger.Nop()

	db, err := database.NewDB(ctx, database.Config{
		Type:       database.TypeSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
		Retry:      retry.Config{MaxRetries: 1, InitialInterval: 10 * time.Millisecond, MaxInterval: 10 * time.Millisecond, Multiplier: 1},
	}, log)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	store := database.NewVideoStore(db)
	client := catalog.NewClient(store, log)
	sessions := auth.NewProvider(auth.Credentials{
		User:         adminUser,
		PasswordHash: string(hash),
		SessionTTL:   time.Hour,
	}, log)

	app := &api.App{
		Catalog:  client,
		Admin:    admin.NewController(client, sessions, notify.Noop{}, log),
		Sessions: sessions,
		Limiter:  auth.NewLoginLimiter(60, 20),
		DB:       db.Conn(),
		Location: time.UTC,
		Logger:   log,
	}

	server := httptest.NewServer(api.NewRouter(app))
	t.Cleanup(server.Close)

	return &TestServer{
		Server:   server,
		App:      app,
		DB:       db,
		Store:    store,
		Sessions: sessions,
	}
}

// newClient returns a client with its own cookie jar.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	return &http.Client{Jar: jar, Timeout: 10 * time.Second}
}

func (ts *TestServer) get(t *testing.T, client *http.Client, path string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(ts.Server.URL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	return resp, string(body)
}

func (ts *TestServer) post(t *testing.T, client *http.Client, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := client.PostForm(ts.Server.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	return resp, string(body)
}

// postWithHeader sends a form POST carrying an extra request header.
func (ts *TestServer) postWithHeader(t *testing.T, client *http.Client, path string, form url.Values, key, value string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(key, value)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return resp
}

func (ts *TestServer) login(t *testing.T, client *http.Client) {
	t.Helper()
	resp, body := ts.post(t, client, "/admin/login", url.Values{
		"user":     {adminUser},
		"password": {adminPassword},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected login to land on admin page with 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `action="/admin/videos"`) {
		t.Fatalf("Expected add form after login")
	}
}

func (ts *TestServer) sessionToken(t *testing.T, client *http.Client) string {
	t.Helper()
	u, _ := url.Parse(ts.Server.URL + "/admin")
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == api.SessionCookie {
			return c.Value
		}
	}
	t.Fatal("No session cookie in jar")
	return ""
}

func (ts *TestServer) insert(t *testing.T, name string, date time.Time) string {
	t.Helper()
	id, err := ts.Store.Insert(context.Background(), catalog.Record{
		Name:          name,
		URL:           "https://youtu.be/dQw4w9WgXcQ",
		Category:      "Music",
		RecommendedBy: "Ana",
		Date:          date,
	})
	if err != nil {
		t.Fatalf("Failed to insert %s: %v", name, err)
	}
	return id
}
