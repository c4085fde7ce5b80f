package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"local-library/internal/catalog"
	"local-library/internal/middleware"
	"local-library/internal/models"
	"local-library/internal/templates"
)

// TemplateData zawiera wspólne dane dla wszystkich szablonów
type TemplateData map[string]interface{}

// NewTemplateData tworzy nowe dane szablonu z automatycznym dodaniem użytkownika
func NewTemplateData(r *http.Request) TemplateData {
	data := make(TemplateData)
	user := middleware.GetUserFromContext(r.Context())

	data["RequestURI"] = r.URL.RequestURI()
	if user != nil {
		data["User"] = user
		data["IsLoggedIn"] = true
		data["IsStaff"] = user.IsStaff()
		data["CanViewAllLoans"] = user.HasPermission(models.PermStaffMember)
		data["CanMarkReturned"] = user.HasPermission(models.PermCanMarkReturned)
		data["CanManageCatalog"] = user.HasPermission(models.PermManageCatalog)
	} else {
		data["User"] = nil
		data["IsLoggedIn"] = false
		data["IsStaff"] = false
		data["CanViewAllLoans"] = false
		data["CanMarkReturned"] = false
		data["CanManageCatalog"] = false
	}

	return data
}

// Set ustawia wartość w danych szablonu
func (t TemplateData) Set(key string, value interface{}) TemplateData {
	t[key] = value
	return t
}

var pageFiles = []string{
	"index.html",
	"auth/login.html",
	"catalog/book_list.html",
	"catalog/book_detail.html",
	"catalog/book_form.html",
	"catalog/book_confirm_delete.html",
	"catalog/author_list.html",
	"catalog/author_detail.html",
	"catalog/author_form.html",
	"catalog/author_confirm_delete.html",
	"catalog/mybooks.html",
	"catalog/borrowed.html",
	"catalog/book_renew.html",
}

var funcMap = template.FuncMap{
	"date": func(d *civil.Date) string {
		if d == nil {
			return ""
		}
		return d.String()
	},
}

// Renderer trzyma sparsowane szablony stron (każda strona osadzona w base.html)
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer ładuje wszystkie szablony z wbudowanego systemu plików
func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, page := range pageFiles {
		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(templates.FS, "base.html", page)
		if err != nil {
			return nil, fmt.Errorf("błąd ładowania szablonu %s: %w", page, err)
		}
		pages[page] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render wykonuje szablon do bufora i dopiero wtedy wysyła odpowiedź
func (rd *Renderer) Render(w http.ResponseWriter, status int, page string, data TemplateData) {
	tmpl, ok := rd.pages[page]
	if !ok {
		log.Printf("Nieznany szablon: %s", page)
		http.Error(w, "Szablon nie został załadowany", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		log.Printf("Błąd renderowania szablonu %s: %v", page, err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Błąd wysyłania odpowiedzi: %v", err)
	}
}

// handleError mapuje błędy serwisów katalogu na odpowiedzi HTTP
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	case errors.Is(err, catalog.ErrUnauthorized):
		middleware.RedirectToLogin(w, r)
	case errors.Is(err, catalog.ErrForbidden):
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
	default:
		log.Printf("Błąd obsługi %s %s: %v", r.Method, r.URL.Path, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// pageNumber odczytuje parametr ?page=
func pageNumber(r *http.Request) (int, error) {
	return catalog.ParsePageNumber(r.URL.Query().Get("page"))
}

var dateLayouts = []string{"2006-01-02", "01/02/2006", "01/02/06"}

var errInvalidDate = errors.New("Enter a valid date.")

// parseDate akceptuje daty w formatach RRRR-MM-DD, MM/DD/RRRR i MM/DD/RR
func parseDate(raw string) (civil.Date, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return civil.DateOf(t), nil
		}
	}
	return civil.Date{}, errInvalidDate
}

// parseOptionalDate zwraca nil dla pustego pola
func parseOptionalDate(raw string) (*civil.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// safeNext dopuszcza tylko lokalne ścieżki jako cel przekierowania po logowaniu
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
