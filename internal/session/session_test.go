package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithCookies(resp *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range resp.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestStart_CreatesAnonymousSessionOnce(t *testing.T) {
	m := NewManager(false)

	w := httptest.NewRecorder()
	sess, err := m.Start(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.False(t, sess.IsAuthenticated())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.False(t, cookies[0].Secure)

	w2 := httptest.NewRecorder()
	again, err := m.Start(w2, requestWithCookies(w))
	require.NoError(t, err)
	assert.Equal(t, sess.ID, again.ID)
	assert.Empty(t, w2.Result().Cookies())
	assert.Equal(t, 1, m.Len())
}

func TestVisit_ReturnsCountBeforeIncrement(t *testing.T) {
	m := NewManager(false)
	w := httptest.NewRecorder()
	sess, err := m.Start(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	assert.Equal(t, 0, m.Visit(sess.ID))
	assert.Equal(t, 1, m.Visit(sess.ID))
	assert.Equal(t, 2, m.Visit(sess.ID))
	assert.Equal(t, 0, m.Visit("unknown"))
}

func TestLogin_RotatesSessionAndKeepsVisits(t *testing.T) {
	m := NewManager(true)
	w := httptest.NewRecorder()
	anon, err := m.Start(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	m.Visit(anon.ID)
	m.Visit(anon.ID)

	lw := httptest.NewRecorder()
	sess, err := m.Login(lw, requestWithCookies(w), "user-1")
	require.NoError(t, err)

	assert.NotEqual(t, anon.ID, sess.ID)
	assert.Equal(t, "user-1", sess.UserID)
	assert.Equal(t, 2, sess.Visits)
	assert.True(t, lw.Result().Cookies()[0].Secure)

	_, ok := m.Get(anon.ID)
	assert.False(t, ok)

	got, ok := m.FromRequest(requestWithCookies(lw))
	require.True(t, ok)
	assert.True(t, got.IsAuthenticated())
}

func TestLogout_DeletesSessionAndClearsCookie(t *testing.T) {
	m := NewManager(false)
	w := httptest.NewRecorder()
	_, err := m.Login(w, httptest.NewRequest(http.MethodGet, "/", nil), "user-1")
	require.NoError(t, err)

	lw := httptest.NewRecorder()
	m.Logout(lw, requestWithCookies(w))

	assert.Equal(t, 0, m.Len())
	cookies := lw.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestExpiredSessions(t *testing.T) {
	m := NewManager(false)
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	w := httptest.NewRecorder()
	sess, err := m.Start(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	now = now.Add(sessionDuration + time.Minute)
	_, ok := m.Get(sess.ID)
	assert.False(t, ok)

	m.removeExpired()
	assert.Equal(t, 0, m.Len())
}
