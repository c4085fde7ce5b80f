package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"sync"
	"time"
)

const (
	sessionCookieName = "session_id"
	sessionDuration   = 24 * time.Hour
	cleanupInterval   = 1 * time.Hour
)

// Session reprezentuje sesję przeglądarki. Pusty UserID oznacza sesję anonimową.
type Session struct {
	ID        string
	UserID    string
	Visits    int
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsAuthenticated sprawdza czy sesja należy do zalogowanego użytkownika
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID != ""
}

// Manager zarządza sesjami w pamięci procesu
type Manager struct {
	sessions     map[string]*Session
	mu           sync.RWMutex
	secureCookie bool
	now          func() time.Time
}

// NewManager tworzy manager sesji. secureCookie ustawia flagę Secure ciasteczka (HTTPS).
func NewManager(secureCookie bool) *Manager {
	return &Manager{
		sessions:     make(map[string]*Session),
		secureCookie: secureCookie,
		now:          time.Now,
	}
}

// Start zwraca sesję z requestu albo tworzy nową anonimową i ustawia cookie
func (m *Manager) Start(w http.ResponseWriter, r *http.Request) (*Session, error) {
	if sess, ok := m.FromRequest(r); ok {
		return sess, nil
	}

	sess, err := m.create("", 0)
	if err != nil {
		return nil, err
	}
	m.setCookie(w, sess.ID)
	return sess, nil
}

// FromRequest pobiera sesję wskazaną przez cookie
func (m *Manager) FromRequest(r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil, false
	}
	return m.Get(cookie.Value)
}

// Get pobiera kopię sesji po ID
func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, exists := m.sessions[sessionID]
	if !exists {
		return nil, false
	}

	// Sprawdź czy sesja nie wygasła
	if m.now().After(sess.ExpiresAt) {
		return nil, false
	}

	c := *sess
	return &c, true
}

// Login tworzy nową sesję dla użytkownika, przenosząc licznik wizyt z poprzedniej
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, userID string) (*Session, error) {
	visits := 0
	if old, ok := m.FromRequest(r); ok {
		visits = old.Visits
		m.Delete(old.ID)
	}

	sess, err := m.create(userID, visits)
	if err != nil {
		return nil, err
	}
	m.setCookie(w, sess.ID)
	return sess, nil
}

// Logout usuwa sesję i czyści cookie
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := m.FromRequest(r); ok {
		m.Delete(sess.ID)
	}
	m.clearCookie(w)
}

// Delete usuwa sesję
func (m *Manager) Delete(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

// Visit zwiększa licznik wizyt i zwraca wartość sprzed zwiększenia
func (m *Manager) Visit(sessionID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return 0
	}
	before := sess.Visits
	sess.Visits++
	return before
}

// Len zwraca liczbę przechowywanych sesji
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// RunCleanup usuwa wygasłe sesje co godzinę aż do anulowania ctx
func (m *Manager) RunCleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.removeExpired()
		}
	}
}

func (m *Manager) removeExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, sess := range m.sessions {
		if now.After(sess.ExpiresAt) {
			delete(m.sessions, id)
		}
	}
}

func (m *Manager) create(userID string, visits int) (*Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	now := m.now()
	sess := &Session{
		ID:        sessionID,
		UserID:    userID,
		Visits:    visits,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionDuration),
	}

	m.mu.Lock()
	m.sessions[sessionID] = sess
	m.mu.Unlock()

	c := *sess
	return &c, nil
}

func (m *Manager) setCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(sessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   m.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secureCookie,
	})
}

// generateSessionID generuje losowy ID sesji
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
