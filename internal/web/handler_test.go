package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lojasmm/convostarter/internal/catalog"
	"github.com/lojasmm/convostarter/internal/logger"
	"github.com/lojasmm/convostarter/internal/practice"
	"github.com/lojasmm/convostarter/internal/session"
)

type client struct {
	t        *testing.T
	router   http.Handler
	sessions *session.Manager
	cookie   *http.Cookie
}

func newClient(t *testing.T) (*client, *clockwork.FakeClock) {
	t.Helper()
	log := logger.FromZap(zaptest.NewLogger(t))
	clock := clockwork.NewFakeClock()
	// Sessions finish delayed work on clock goroutines that can outlive the test.
	sessionLog := logger.Nop()
	resolver := practice.NewResolver(catalog.DefaultPrompts(), sessionLog)
	sessions := session.NewManager(func() *practice.Session {
		return practice.NewSession(resolver, clock, practice.DefaultDelays, sessionLog)
	}, clock)
	t.Cleanup(sessions.CloseAll)

	r := chi.NewRouter()
	NewHandler(sessions, log).Routes(r)
	return &client{t: t, router: r, sessions: sessions}, clock
}

func (c *client) do(method, path, contentType, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == cookieName {
			c.cookie = ck
		}
	}
	return rec
}

func (c *client) state(rec *httptest.ResponseRecorder) practice.Snapshot {
	c.t.Helper()
	var snap practice.Snapshot
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &snap))
	return snap
}

// eventually polls the state endpoint until cond holds.
func (c *client) eventually(cond func(practice.Snapshot) bool) practice.Snapshot {
	c.t.Helper()
	var snap practice.Snapshot
	require.Eventually(c.t, func() bool {
		snap = c.state(c.do(http.MethodGet, "/api/state", "", ""))
		return cond(snap)
	}, time.Second, time.Millisecond)
	return snap
}

// eventuallyPage fetches the page until it contains want.
func (c *client) eventuallyPage(want string) string {
	c.t.Helper()
	var body string
	require.Eventually(c.t, func() bool {
		body = c.do(http.MethodGet, "/", "", "").Body.String()
		return strings.Contains(body, want)
	}, time.Second, time.Millisecond)
	return body
}

func TestStateIssuesSessionCookie(t *testing.T) {
	c, _ := newClient(t)

	rec := c.do(http.MethodGet, "/api/state", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, c.cookie)
	first := c.cookie.Value

	snap := c.state(rec)
	assert.Equal(t, practice.StatusIdle, snap.Status)
	assert.Equal(t, "Waiting", snap.Badge)

	c.do(http.MethodGet, "/api/state", "", "")
	assert.Equal(t, first, c.cookie.Value)
}

func TestAPIPracticeFlow(t *testing.T) {
	c, clock := newClient(t)

	rec := c.do(http.MethodPut, "/api/selection", "application/json", `{"language":"fr","scenario":"cafe"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, practice.StatusGenerating, c.state(rec).Status)

	clock.Advance(practice.DefaultDelays.Generate)
	snap := c.eventually(func(s practice.Snapshot) bool { return s.Status == practice.StatusReady })
	assert.Equal(t, "You are at a cafe in Paris. Order a coffee and ask if they have oat milk.", snap.Prompt)

	rec = c.do(http.MethodPost, "/api/response", "application/json", `{"response":"Hello, could I get a coffee with oat milk?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, c.state(rec).Submitting)

	rec = c.do(http.MethodPost, "/api/response", "application/json", `{"response":"Hi"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	clock.Advance(practice.DefaultDelays.Check)
	snap = c.eventually(func(s practice.Snapshot) bool { return !s.Submitting })
	assert.Equal(t, practice.TierComplete, snap.Tier)
	assert.Equal(t, "Great flow! Your response sounds conversational and polite.", snap.Feedback)
}

func TestAPIValidationErrorsAreInline(t *testing.T) {
	c, clock := newClient(t)

	rec := c.do(http.MethodPost, "/api/response", "application/json", `{"response":"Bonjour"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Select a language and scenario to get a prompt.", c.state(rec).Error)

	c.do(http.MethodPut, "/api/selection", "application/json", `{"language":"es","scenario":"shop"}`)
	clock.Advance(practice.DefaultDelays.Generate)
	c.eventually(func(s practice.Snapshot) bool { return s.Status == practice.StatusReady })

	rec = c.do(http.MethodPost, "/api/response", "application/json", `{"response":"   "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	snap := c.state(rec)
	assert.Equal(t, "Type a response before submitting.", snap.Error)
	assert.Empty(t, snap.Tier)
	assert.False(t, snap.Submitting)

	clock.Advance(practice.DefaultDelays.Check)
	assert.Empty(t, c.state(c.do(http.MethodGet, "/api/state", "", "")).Tier)
}

func TestAPISubmitOnClosedSession(t *testing.T) {
	c, _ := newClient(t)
	c.do(http.MethodGet, "/api/state", "", "")
	require.NotNil(t, c.cookie)

	// Cleanup can close a session while a request still holds it.
	_, s := c.sessions.Get(c.cookie.Value)
	s.Close()

	rec := c.do(http.MethodPost, "/api/response", "application/json", `{"response":"Hi"}`)
	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Equal(t, "This practice session has ended. Reload to start again.", c.state(rec).Error)
}

func TestAPIBadJSON(t *testing.T) {
	c, _ := newClient(t)
	rec := c.do(http.MethodPut, "/api/selection", "application/json", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalog(t *testing.T) {
	c, _ := newClient(t)
	rec := c.do(http.MethodGet, "/api/catalog", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var out catalogJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Languages, 3)
	assert.Equal(t, languageJSON{ID: "fr", Label: "French", Native: "français"}, out.Languages[0])
	require.Len(t, out.Scenarios, 4)
	assert.Equal(t, "directions", out.Scenarios[2].ID)
}

func TestPageFormFlow(t *testing.T) {
	c, clock := newClient(t)

	rec := c.do(http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Select a language and scenario to begin.")
	assert.Contains(t, body, `<option value="jp">Japanese (日本語)</option>`)
	assert.NotContains(t, body, `http-equiv="refresh"`)

	form := url.Values{"language": {"jp"}, "scenario": {"directions"}}
	rec = c.do(http.MethodPost, "/selection", "application/x-www-form-urlencoded", form.Encode())
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	body = c.do(http.MethodGet, "/", "", "").Body.String()
	assert.Contains(t, body, "Creating a prompt...")
	assert.Contains(t, body, `http-equiv="refresh"`)
	assert.Contains(t, body, ">Loading<")

	clock.Advance(practice.DefaultDelays.Generate)
	body = c.eventuallyPage("Ask which platform you need for Shibuya.")
	assert.Contains(t, body, `lang="ja"`)
	assert.Contains(t, body, `<option value="jp" selected>`)

	form = url.Values{"response": {"Hi"}}
	rec = c.do(http.MethodPost, "/response", "application/x-www-form-urlencoded", form.Encode())
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	body = c.do(http.MethodGet, "/", "", "").Body.String()
	assert.Contains(t, body, "Checking...")
	assert.Contains(t, body, `<button type="submit" disabled>`)

	clock.Advance(practice.DefaultDelays.Check)
	body = c.eventuallyPage("Quick feedback")
	assert.Contains(t, body, "Good start. Try adding one more sentence to make it feel natural.")
	assert.Contains(t, body, "Submit response")
}
