// Package server składa router chi z handlerów katalogu.
package server

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"local-library/internal/auth"
	"local-library/internal/catalog"
	"local-library/internal/handlers"
	authmw "local-library/internal/middleware"
	"local-library/internal/session"
	"local-library/internal/templates"
)

// Deps to zależności potrzebne do zbudowania routera
type Deps struct {
	Store         catalog.Store
	Users         catalog.UserStore
	Authenticator auth.Authenticator
	Sessions      *session.Manager
	Clock         catalog.Clock
	StaticDir     string // pusty = pliki wbudowane w binarkę
	AccessLog     bool
}

// NewRouter tworzy router z pełną tablicą routingu aplikacji
func NewRouter(deps Deps) (http.Handler, error) {
	if deps.Clock == nil {
		deps.Clock = catalog.SystemClock
	}

	render, err := handlers.NewRenderer()
	if err != nil {
		return nil, err
	}

	static, err := staticFiles(deps.StaticDir)
	if err != nil {
		return nil, err
	}

	validator := catalog.NewValidator()
	browse := catalog.NewBrowseService(deps.Store)

	indexHandler := handlers.NewIndexHandler(browse, deps.Sessions, render)
	booksHandler := handlers.NewBooksHandler(browse, catalog.NewBookService(deps.Store, validator), render)
	authorsHandler := handlers.NewAuthorsHandler(browse, catalog.NewAuthorService(deps.Store, validator), render)
	loansHandler := handlers.NewLoansHandler(
		catalog.NewLoanService(deps.Store, deps.Users, deps.Clock),
		catalog.NewRenewalService(deps.Store, deps.Clock),
		render,
	)
	authHandler := handlers.NewAuthHandler(deps.Authenticator, deps.Sessions, render)

	// Inicjalizacja routera Chi
	r := chi.NewRouter()

	// Middleware do logowania requestów
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if deps.AccessLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	// Middleware sesji - dodaj sesję i użytkownika do kontekstu każdego żądania
	r.Use(authmw.Session(deps.Sessions, deps.Users))

	// Serwowanie plików statycznych (CSS)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// Strona główna - publiczna
	r.Get("/", indexHandler.ServeHTTP)

	// Routy dla autoryzacji
	r.Get("/login", authHandler.ShowLoginPage)
	r.Post("/login", authHandler.HandleLogin)
	r.Post("/logout", authHandler.HandleLogout)

	r.Route("/catalog", func(r chi.Router) {
		// Publiczny katalog
		r.Get("/books", booksHandler.ListBooks)
		r.Get("/books/{id}", booksHandler.ShowBook)
		r.Get("/authors", authorsHandler.ListAuthors)
		r.Get("/authors/{id}", authorsHandler.ShowAuthor)

		// Wypożyczenia zalogowanego użytkownika
		r.With(authmw.RequireAuth).Get("/mybooks", loansHandler.ShowMyBooks)

		// Personel - uprawnienia sprawdzają serwisy katalogu
		r.Get("/borrowed", loansHandler.ShowAllBorrowed)
		r.Get("/book/{id}/renew", loansHandler.ShowRenewForm)
		r.Post("/book/{id}/renew", loansHandler.RenewBook)

		r.Get("/author/create", authorsHandler.ShowCreateForm)
		r.Post("/author/create", authorsHandler.CreateAuthor)
		r.Get("/author/{id}/update", authorsHandler.ShowUpdateForm)
		r.Post("/author/{id}/update", authorsHandler.UpdateAuthor)
		r.Get("/author/{id}/delete", authorsHandler.ShowDeleteForm)
		r.Post("/author/{id}/delete", authorsHandler.DeleteAuthor)

		r.Get("/book/create", booksHandler.ShowCreateForm)
		r.Post("/book/create", booksHandler.CreateBook)
		r.Get("/book/{id}/update", booksHandler.ShowUpdateForm)
		r.Post("/book/{id}/update", booksHandler.UpdateBook)
		r.Get("/book/{id}/delete", booksHandler.ShowDeleteForm)
		r.Post("/book/{id}/delete", booksHandler.DeleteBook)
	})

	return r, nil
}

func staticFiles(dir string) (fs.FS, error) {
	if dir != "" {
		return os.DirFS(dir), nil
	}
	sub, err := fs.Sub(templates.Static, "static")
	if err != nil {
		return nil, fmt.Errorf("błąd ładowania plików statycznych: %w", err)
	}
	return sub, nil
}
