package handlers

import (
	"errors"
	"log"
	"net/http"

	"local-library/internal/auth"
	"local-library/internal/session"
)

// AuthHandler obsługuje logowanie i wylogowanie
type AuthHandler struct {
	authenticator auth.Authenticator
	sessions      *session.Manager
	render        *Renderer
}

// NewAuthHandler tworzy nowy handler autoryzacji
func NewAuthHandler(authenticator auth.Authenticator, sessions *session.Manager, render *Renderer) *AuthHandler {
	return &AuthHandler{authenticator: authenticator, sessions: sessions, render: render}
}

// ShowLoginPage wyświetla stronę logowania (GET /login)
func (h *AuthHandler) ShowLoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, "", r.URL.Query().Get("next"), "")
}

// HandleLogin obsługuje logowanie (POST /login)
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	next := r.PostFormValue("next")

	user, err := h.authenticator.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrInactive) {
			h.renderLogin(w, r, email, next, err.Error())
			return
		}
		log.Printf("Błąd logowania %s: %v", email, err)
		h.renderLogin(w, r, email, next, "Login is temporarily unavailable.")
		return
	}

	if _, err := h.sessions.Login(w, r, user.ID); err != nil {
		log.Printf("Błąd tworzenia sesji: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Printf("Użytkownik zalogowany: %s", user.Email)
	http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
}

// HandleLogout obsługuje wylogowanie (POST /logout)
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(w, r)
	log.Println("Użytkownik wylogowany")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, email, next, errorMsg string) {
	data := NewTemplateData(r)
	data["Email"] = email
	data["Next"] = next
	data["Error"] = errorMsg
	h.render.Render(w, http.StatusOK, "auth/login.html", data)
}
