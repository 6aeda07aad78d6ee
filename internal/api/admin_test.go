package api_test

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/kdimtricp/videogrid/internal/api"
	"github.com/kdimtricp/videogrid/internal/auth"
)

func TestAdmin_UnauthenticatedShowsLoginOnly(t *testing.T) {
	ts := setupTestServer(t)
	ts.insert(t, "Hidden from anonymous", time.Now())

	resp, body := ts.get(t, newClient(t), "/admin")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `action="/admin/login"`) {
		t.Error("Expected login form")
	}
	if strings.Contains(body, `action="/admin/videos"`) {
		t.Error("Add form must not be rendered without a session")
	}
	if strings.Contains(body, "Hidden from anonymous") {
		t.Error("List must not be rendered without a session")
	}
}

func TestAdmin_StaleCookieShowsLogin(t *testing.T) {
	ts := setupTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, ts.Server.URL+"/admin", nil)
	req.AddCookie(&http.Cookie{Name: api.SessionCookie, Value: "forged"})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}

	if strings.Contains(string(body), `action="/admin/videos"`) {
		t.Error("Add form must not be rendered for an unknown session")
	}
}

func TestAdmin_LoginRejectsBadPassword(t *testing.T) {
	ts := setupTestServer(t)

	resp, body := ts.post(t, newClient(t), "/admin/login", url.Values{
		"user":     {adminUser},
		"password": {"wrong"},
	})

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Invalid user or password.") {
		t.Error("Expected login error message")
	}
}

func TestAdmin_LoginRateLimited(t *testing.T) {
	ts := setupTestServer(t)
	ts.App.Limiter = auth.NewLoginLimiter(1, 2)
	client := newClient(t)

	var statuses []int
	for i := 0; i < 3; i++ {
		resp, _ := ts.post(t, client, "/admin/login", url.Values{"user": {adminUser}, "password": {"wrong"}})
		statuses = append(statuses, resp.StatusCode)
	}

	if statuses[0] != http.StatusUnauthorized || statuses[1] != http.StatusUnauthorized {
		t.Errorf("Expected the first two attempts to be checked, got %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("Expected 429 once the bucket is empty, got %d", statuses[2])
	}
}

func TestAdmin_LoginRateLimitIgnoresForwardedFor(t *testing.T) {
	ts := setupTestServer(t)
	ts.App.Limiter = auth.NewLoginLimiter(1, 2)
	client := newClient(t)
	wrong := url.Values{"user": {adminUser}, "password": {"wrong"}}

	var statuses []int
	for i := 0; i < 6; i++ {
		resp := ts.postWithHeader(t, client, "/admin/login", wrong, "X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		statuses = append(statuses, resp.StatusCode)
	}

	for i, status := range statuses[2:] {
		if status != http.StatusTooManyRequests {
			t.Errorf("Expected attempt %d to be limited despite a new X-Forwarded-For, got %v", i+3, statuses)
			break
		}
	}
}

func TestAdmin_TrustedProxyForwardedFor(t *testing.T) {
	ts := setupTestServer(t)
	ts.App.Limiter = auth.NewLoginLimiter(1, 1)
	ts.App.TrustedProxies = []netip.Prefix{
		netip.MustParsePrefix("127.0.0.0/8"),
		netip.MustParsePrefix("::1/128"),
	}
	proxied := httptest.NewServer(api.NewRouter(ts.App))
	t.Cleanup(proxied.Close)
	ts.Server = proxied

	client := newClient(t)
	wrong := url.Values{"user": {adminUser}, "password": {"wrong"}}

	for _, ip := range []string{"198.51.100.1", "198.51.100.2"} {
		resp := ts.postWithHeader(t, client, "/admin/login", wrong, "X-Forwarded-For", ip)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Expected a separate bucket for %s behind the proxy, got %d", ip, resp.StatusCode)
		}
	}

	resp := ts.postWithHeader(t, client, "/admin/login", wrong, "X-Forwarded-For", "198.51.100.1")
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("Expected 429 for a repeated forwarded client, got %d", resp.StatusCode)
	}
}

func TestAdmin_AddThenDelete(t *testing.T) {
	ts := setupTestServer(t)
	client := newClient(t)
	ts.login(t, client)

	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	before := time.Now().UTC()
	resp, _ := ts.post(t, client, "/admin/videos", url.Values{
		"name":          {"Never Gonna Give You Up"},
		"url":           {"https://youtu.be/dQw4w9WgXcQ"},
		"category":      {"Music"},
		"recommendedBy": {"Ana"},
	})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("Expected status 303 after a successful add, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/admin" {
		t.Errorf("Expected redirect to /admin, got %q", loc)
	}

	resp, body := ts.get(t, client, "/admin")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Never Gonna Give You Up") {
		t.Error("Expected the new video in the re-fetched list")
	}
	if strings.Contains(body, `value="Never Gonna Give You Up"`) {
		t.Error("Expected the form to be reset after a successful add")
	}

	records, err := ts.Store.ListByDateDesc(context.Background())
	if err != nil {
		t.Fatalf("Failed to list videos: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 stored video, got %d", len(records))
	}
	added := records[0]
	if added.ID == "" {
		t.Error("Expected a store-assigned id")
	}
	if added.Date.Before(before.Add(-time.Second)) || added.Date.After(time.Now().Add(time.Second)) {
		t.Errorf("Expected date close to now, got %v", added.Date)
	}

	_, gallery := ts.get(t, client, "/")
	if !strings.Contains(gallery, "Never Gonna Give You Up") {
		t.Error("Expected the gallery to show the new video")
	}

	resp, _ = ts.post(t, client, "/admin/videos/"+added.ID+"/delete", nil)
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("Expected status 303 after a successful delete, got %d", resp.StatusCode)
	}

	_, body = ts.get(t, client, "/admin")
	if strings.Contains(body, "Never Gonna Give You Up") {
		t.Error("Expected the deleted video to be gone from the list")
	}
}

func TestAdmin_DeleteUnknownRendersInPlace(t *testing.T) {
	ts := setupTestServer(t)
	ts.insert(t, "Still here", time.Now())
	client := newClient(t)
	ts.login(t, client)
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, body := ts.post(t, client, "/admin/videos/no-such-id/delete", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected the page rendered in place, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Still here") {
		t.Error("Expected the re-fetched list after a failed delete")
	}
}

func TestAdmin_MissingFieldsRetainInput(t *testing.T) {
	ts := setupTestServer(t)
	client := newClient(t)
	ts.login(t, client)

	_, body := ts.post(t, client, "/admin/videos", url.Values{
		"name": {"Half filled"},
	})

	if !strings.Contains(body, "Required: url, category, recommendedBy") {
		t.Error("Expected the missing fields to be listed")
	}
	if !strings.Contains(body, `value="Half filled"`) {
		t.Error("Expected the form to keep its input")
	}
}

func TestAdmin_MutationsRequireSession(t *testing.T) {
	ts := setupTestServer(t)
	id := ts.insert(t, "Keep me", time.Now())
	client := newClient(t)

	resp, _ := ts.post(t, client, "/admin/videos", url.Values{
		"name": {"x"}, "url": {"y"}, "category": {"z"}, "recommendedBy": {"w"},
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 for anonymous add, got %d", resp.StatusCode)
	}

	resp, _ = ts.post(t, client, "/admin/videos/"+id+"/delete", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 for anonymous delete, got %d", resp.StatusCode)
	}

	_, gallery := ts.get(t, client, "/")
	if !strings.Contains(gallery, "Keep me") || strings.Contains(gallery, `>x</a>`) {
		t.Error("Expected the catalog to be unchanged")
	}
}

func TestAdmin_Logout(t *testing.T) {
	ts := setupTestServer(t)
	client := newClient(t)
	ts.login(t, client)
	token := ts.sessionToken(t, client)

	resp, body := ts.post(t, client, "/admin/logout", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `action="/admin/login"`) {
		t.Error("Expected login form after logout")
	}
	if _, ok := ts.Sessions.Current(token); ok {
		t.Error("Expected the session to be gone")
	}
}

func TestAdmin_SessionEvents(t *testing.T) {
	ts := setupTestServer(t)
	client := newClient(t)
	ts.login(t, client)
	token := ts.sessionToken(t, client)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.Server.URL+"/admin/session/events", nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Failed to open event stream: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Expected text/event-stream, got %q", ct)
	}

	events := make(chan string, 4)
	go func() {
		defer close(events)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			if data, ok := strings.CutPrefix(scanner.Text(), "data: "); ok {
				events <- data
			}
		}
	}()

	if got := <-events; got != "active" {
		t.Fatalf("Expected first event 'active', got %q", got)
	}

	if err := ts.Sessions.SignOut(ctx, token); err != nil {
		t.Fatalf("Failed to sign out: %v", err)
	}

	if got := <-events; got != "ended" {
		t.Errorf("Expected 'ended' after sign-out, got %q", got)
	}
	if _, open := <-events; open {
		t.Error("Expected the stream to close after the session ended")
	}
}
