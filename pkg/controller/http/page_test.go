package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	controller "github.com/m-mizutani/releasepage/pkg/controller/http"
	"github.com/m-mizutani/releasepage/pkg/domain/interfaces"
	"github.com/m-mizutani/releasepage/pkg/domain/model"
	"github.com/m-mizutani/releasepage/pkg/infra/memory"
	"github.com/m-mizutani/releasepage/pkg/usecase"
)

func newTestServer(t *testing.T, client *stubReleaseClient, opts ...controller.Option) http.Handler {
	t.Helper()
	uc := usecase.NewRelease(client, testSite)
	server, err := controller.NewServer(context.Background(), testSite, uc, memory.New(), opts...)
	gt.NoError(t, err)
	return server.Handler
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestIndex_RendersRelease(t *testing.T) {
	client := &stubReleaseClient{release: sampleRelease()}
	handler := newTestServer(t, client)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	gt.Value(t, w.Code).Equal(http.StatusOK)
	body := w.Body.String()
	gt.String(t, body).Contains(`<span id="latestVersion">v1.4.0</span>`)
	gt.String(t, body).Contains(`href="https://dl.test/app-release.apk"`)
	gt.String(t, body).Contains("Download on GitHub (v1.4.0)")
	gt.String(t, body).Contains("<h2>Fixes</h2><ul><li>crash on start</li></ul>")
	gt.String(t, body).Contains("June 1, 2024")
	gt.String(t, body).Contains(`data-theme="light"`)
	gt.Value(t, w.Header().Get("Accept-CH")).Equal("Sec-CH-Prefers-Color-Scheme")

	session := findCookie(w.Result(), "ff_session")
	gt.Value(t, session).NotNil()
	gt.Value(t, session.MaxAge).Equal(0)
}

func TestIndex_SessionCache(t *testing.T) {
	client := &stubReleaseClient{release: sampleRelease()}
	handler := newTestServer(t, client)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	session := findCookie(first.Result(), "ff_session")
	gt.Value(t, session).NotNil()
	gt.Value(t, client.calls).Equal(1)

	// same browser session is served from cache
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "ff_session", Value: session.Value})
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	gt.Value(t, client.calls).Equal(1)
	gt.String(t, second.Body.String()).Contains("v1.4.0")

	// a new browser session fetches again
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	gt.Value(t, client.calls).Equal(2)
}

func TestIndex_SharedCache(t *testing.T) {
	client := &stubReleaseClient{release: sampleRelease()}
	handler := newTestServer(t, client, controller.WithSharedCache())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.Value(t, findCookie(w.Result(), "ff_session")).Nil()
	}
	gt.Value(t, client.calls).Equal(1)
}

func TestIndex_APIFailureKeepsFallback(t *testing.T) {
	client := &stubReleaseClient{err: errors.New("403 rate limit exceeded")}
	handler := newTestServer(t, client)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	gt.Value(t, w.Code).Equal(http.StatusOK)
	body := w.Body.String()
	gt.String(t, body).Contains(`href="https://github.com/owner/repo/releases"`)
	gt.String(t, body).Contains(`<span id="latestVersion">Request failed</span>`)
	gt.String(t, body).Contains(`<span id="changelogTag">—</span>`)
}

func TestIndex_MenuAndTheme(t *testing.T) {
	handler := newTestServer(t, &stubReleaseClient{release: sampleRelease()})

	req := httptest.NewRequest(http.MethodGet, "/?menu=open", nil)
	req.Header.Set("Sec-CH-Prefers-Color-Scheme", `"dark"`)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	body := w.Body.String()
	gt.String(t, body).Contains(`<nav id="mainNav" class="open">`)
	gt.String(t, body).Contains(`data-theme="dark"`)
	gt.String(t, body).Contains(`class="back-to-top "`)
}

func TestToggleTheme(t *testing.T) {
	handler := newTestServer(t, &stubReleaseClient{release: sampleRelease()})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/theme", nil))

	gt.Value(t, w.Code).Equal(http.StatusSeeOther)
	gt.Value(t, w.Header().Get("Location")).Equal("/")

	theme := findCookie(w.Result(), "ff_theme")
	gt.Value(t, theme).NotNil()
	gt.Value(t, theme.Value).Equal("dark")

	// saved preference wins over the system hint
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "ff_theme", Value: theme.Value})
	req.Header.Set("Sec-CH-Prefers-Color-Scheme", `"light"`)
	page := httptest.NewRecorder()
	handler.ServeHTTP(page, req)
	gt.String(t, page.Body.String()).Contains(`data-theme="dark"`)

	// toggling again flips back
	req = httptest.NewRequest(http.MethodPost, "/theme", nil)
	req.AddCookie(&http.Cookie{Name: "ff_theme", Value: theme.Value})
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	gt.Value(t, findCookie(w.Result(), "ff_theme").Value).Equal("light")
}

func TestToggleTheme_VisitorPreferences(t *testing.T) {
	prefs := memory.New()
	handler := newTestServer(t, &stubReleaseClient{release: sampleRelease()},
		controller.WithVisitorPreferences(func(visitorID string) interfaces.KVStore {
			return prefs.Namespace(visitorID)
		}),
	)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/theme", nil))
	visitor := findCookie(w.Result(), "ff_visitor")
	gt.Value(t, visitor).NotNil()
	gt.Value(t, findCookie(w.Result(), "ff_theme")).Nil()

	v, ok, err := prefs.Namespace(visitor.Value).Get(context.Background(), model.ThemeKey)
	gt.NoError(t, err)
	gt.True(t, ok)
	gt.Value(t, v).Equal("dark")
}

func TestReleaseAPI(t *testing.T) {
	t.Run("resolved", func(t *testing.T) {
		handler := newTestServer(t, &stubReleaseClient{release: sampleRelease()})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/release", nil))
		gt.Value(t, w.Code).Equal(http.StatusOK)

		var view model.ReleaseView
		gt.NoError(t, json.NewDecoder(w.Body).Decode(&view))
		gt.True(t, view.Resolved)
		gt.Value(t, view.Version).Equal("v1.4.0")
		gt.Value(t, view.DownloadURL).Equal("https://dl.test/app-release.apk")
		gt.Value(t, view.ChangelogHTML).Equal("<h2>Fixes</h2><ul><li>crash on start</li></ul>")
	})

	t.Run("failed", func(t *testing.T) {
		handler := newTestServer(t, &stubReleaseClient{err: errors.New("boom")})

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/release", nil))
		gt.Value(t, w.Code).Equal(http.StatusOK)

		var view model.ReleaseView
		gt.NoError(t, json.NewDecoder(w.Body).Decode(&view))
		gt.False(t, view.Resolved)
		gt.Value(t, view.Version).Equal("Request failed")
		gt.Value(t, view.DownloadURL).Equal("https://github.com/owner/repo/releases")
	})
}
