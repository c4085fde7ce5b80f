package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"

	"local-library/internal/catalog"
	"local-library/internal/models"
	"local-library/internal/session"
)

// Klucze do przechowywania wartości w context
type contextKey string

const (
	sessionContextKey contextKey = "session"
	userContextKey    contextKey = "user"
)

// Session dodaje istniejącą sesję i zalogowanego użytkownika do kontekstu.
// Nowe sesje tworzą dopiero handlery, które ich potrzebują.
func Session(mgr *session.Manager, users catalog.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, exists := mgr.FromRequest(r)
			if !exists {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, sess)

			if sess.IsAuthenticated() {
				user, err := users.GetUser(r.Context(), sess.UserID)
				switch {
				case errors.Is(err, catalog.ErrNotFound):
					mgr.Delete(sess.ID)
				case err != nil:
					log.Printf("Błąd pobierania użytkownika sesji %s: %v", sess.UserID, err)
				case user.IsActive:
					ctx = context.WithValue(ctx, userContextKey, user)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth przekierowuje niezalogowanych na /login?next=<bieżący adres>
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserFromContext(r.Context()) == nil {
			RedirectToLogin(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RedirectToLogin odsyła do formularza logowania z powrotem na bieżący adres
func RedirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
}

// GetSessionFromContext pobiera sesję z kontekstu
func GetSessionFromContext(ctx context.Context) *session.Session {
	sess, ok := ctx.Value(sessionContextKey).(*session.Session)
	if !ok {
		return nil
	}
	return sess
}

// GetUserFromContext pobiera zalogowanego użytkownika z kontekstu
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(userContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// PrincipalFromContext buduje principal dla serwisów katalogu
func PrincipalFromContext(ctx context.Context) catalog.Principal {
	return catalog.PrincipalFor(GetUserFromContext(ctx))
}
