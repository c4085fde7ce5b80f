package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"local-library/internal/catalog"
	"local-library/internal/middleware"
	"local-library/internal/models"
)

// AuthorsHandler obsługuje przeglądanie autorów i ich edycję przez personel
type AuthorsHandler struct {
	browse  *catalog.BrowseService
	authors *catalog.AuthorService
	render  *Renderer
}

// NewAuthorsHandler tworzy nowy handler autorów
func NewAuthorsHandler(browse *catalog.BrowseService, authors *catalog.AuthorService, render *Renderer) *AuthorsHandler {
	return &AuthorsHandler{browse: browse, authors: authors, render: render}
}

// ListAuthors wyświetla stronę listy autorów (GET /catalog/authors)
func (h *AuthorsHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	number, err := pageNumber(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	page, err := h.browse.ListAllAuthors(r.Context(), number)
	if err != nil {
		handleError(w, r, err)
		return
	}

	data := NewTemplateData(r)
	data["Page"] = page
	h.render.Render(w, http.StatusOK, "catalog/author_list.html", data)
}

// ShowAuthor wyświetla autora i jego książki (GET /catalog/authors/{id})
func (h *AuthorsHandler) ShowAuthor(w http.ResponseWriter, r *http.Request) {
	detail, err := h.browse.GetAuthorDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	data := NewTemplateData(r)
	data["Detail"] = detail
	h.render.Render(w, http.StatusOK, "catalog/author_detail.html", data)
}

// ShowCreateForm wyświetla pusty formularz autora (GET /catalog/author/create)
func (h *AuthorsHandler) ShowCreateForm(w http.ResponseWriter, r *http.Request) {
	if err := middleware.PrincipalFromContext(r.Context()).Require(models.PermManageCatalog); err != nil {
		handleError(w, r, err)
		return
	}
	h.renderForm(w, r, &models.Author{}, nil)
}

// CreateAuthor zapisuje nowego autora (POST /catalog/author/create)
func (h *AuthorsHandler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	author, verrs := authorFromForm(r)
	if len(verrs) > 0 {
		h.renderGuarded(w, r, author, verrs)
		return
	}

	err := h.authors.Create(r.Context(), middleware.PrincipalFromContext(r.Context()), author)
	if h.formFailed(w, r, author, err) {
		return
	}

	log.Printf("Utworzono autora: %s (%s)", author.FullName(), author.ID)
	http.Redirect(w, r, "/catalog/authors/"+author.ID, http.StatusSeeOther)
}

// ShowUpdateForm wyświetla formularz edycji autora (GET /catalog/author/{id}/update)
func (h *AuthorsHandler) ShowUpdateForm(w http.ResponseWriter, r *http.Request) {
	author, err := h.authors.Get(r.Context(), middleware.PrincipalFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	h.renderForm(w, r, author, nil)
}

// UpdateAuthor zapisuje zmiany autora (POST /catalog/author/{id}/update)
func (h *AuthorsHandler) UpdateAuthor(w http.ResponseWriter, r *http.Request) {
	author, verrs := authorFromForm(r)
	author.ID = chi.URLParam(r, "id")
	if len(verrs) > 0 {
		h.renderGuarded(w, r, author, verrs)
		return
	}

	err := h.authors.Update(r.Context(), middleware.PrincipalFromContext(r.Context()), author)
	if h.formFailed(w, r, author, err) {
		return
	}

	log.Printf("Zaktualizowano autora: %s (%s)", author.FullName(), author.ID)
	http.Redirect(w, r, "/catalog/authors/"+author.ID, http.StatusSeeOther)
}

// ShowDeleteForm wyświetla potwierdzenie usunięcia (GET /catalog/author/{id}/delete)
func (h *AuthorsHandler) ShowDeleteForm(w http.ResponseWriter, r *http.Request) {
	author, err := h.authors.Get(r.Context(), middleware.PrincipalFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	data := NewTemplateData(r)
	data["Author"] = author
	h.render.Render(w, http.StatusOK, "catalog/author_confirm_delete.html", data)
}

// DeleteAuthor usuwa autora (POST /catalog/author/{id}/delete)
func (h *AuthorsHandler) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.authors.Delete(r.Context(), middleware.PrincipalFromContext(r.Context()), id); err != nil {
		handleError(w, r, err)
		return
	}

	log.Printf("Usunięto autora: %s", id)
	http.Redirect(w, r, "/catalog/authors", http.StatusSeeOther)
}

func (h *AuthorsHandler) formFailed(w http.ResponseWriter, r *http.Request, author *models.Author, err error) bool {
	if err == nil {
		return false
	}

	var verrs catalog.ValidationErrors
	if errors.As(err, &verrs) {
		h.renderForm(w, r, author, verrs)
		return true
	}

	handleError(w, r, err)
	return true
}

// renderGuarded pokazuje błędy parsowania dat tylko uprawnionym użytkownikom
func (h *AuthorsHandler) renderGuarded(w http.ResponseWriter, r *http.Request, author *models.Author, verrs catalog.ValidationErrors) {
	if err := middleware.PrincipalFromContext(r.Context()).Require(models.PermManageCatalog); err != nil {
		handleError(w, r, err)
		return
	}
	h.renderForm(w, r, author, verrs)
}

func (h *AuthorsHandler) renderForm(w http.ResponseWriter, r *http.Request, author *models.Author, verrs catalog.ValidationErrors) {
	if verrs == nil {
		verrs = catalog.ValidationErrors{}
	}

	data := NewTemplateData(r)
	data["Author"] = author
	data["Errors"] = verrs
	h.render.Render(w, http.StatusOK, "catalog/author_form.html", data)
}

func authorFromForm(r *http.Request) (*models.Author, catalog.ValidationErrors) {
	verrs := catalog.ValidationErrors{}
	author := &models.Author{
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
	}

	born, err := parseOptionalDate(r.PostFormValue("date_of_birth"))
	if err != nil {
		verrs["date_of_birth"] = err.Error()
	}
	died, err := parseOptionalDate(r.PostFormValue("date_of_death"))
	if err != nil {
		verrs["date_of_death"] = err.Error()
	}
	author.DateOfBirth = born
	author.DateOfDeath = died

	return author, verrs
}
