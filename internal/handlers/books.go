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

// BooksHandler obsługuje przeglądanie książek i ich edycję przez personel
type BooksHandler struct {
	browse *catalog.BrowseService
	books  *catalog.BookService
	render *Renderer
}

// NewBooksHandler tworzy nowy handler książek
func NewBooksHandler(browse *catalog.BrowseService, books *catalog.BookService, render *Renderer) *BooksHandler {
	return &BooksHandler{browse: browse, books: books, render: render}
}

// ListBooks wyświetla stronę listy książek (GET /catalog/books)
func (h *BooksHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	number, err := pageNumber(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	page, err := h.browse.ListAllBooks(r.Context(), number)
	if err != nil {
		handleError(w, r, err)
		return
	}

	data := NewTemplateData(r)
	data["Page"] = page
	h.render.Render(w, http.StatusOK, "catalog/book_list.html", data)
}

// ShowBook wyświetla szczegóły książki (GET /catalog/books/{id})
func (h *BooksHandler) ShowBook(w http.ResponseWriter, r *http.Request) {
	detail, err := h.browse.GetBookDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	data := NewTemplateData(r)
	data["Detail"] = detail
	h.render.Render(w, http.StatusOK, "catalog/book_detail.html", data)
}

// ShowCreateForm wyświetla pusty formularz książki (GET /catalog/book/create)
func (h *BooksHandler) ShowCreateForm(w http.ResponseWriter, r *http.Request) {
	if err := middleware.PrincipalFromContext(r.Context()).Require(models.PermManageCatalog); err != nil {
		handleError(w, r, err)
		return
	}
	h.renderForm(w, r, &models.Book{}, nil)
}

// CreateBook zapisuje nową książkę (POST /catalog/book/create)
func (h *BooksHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	book := bookFromForm(r)

	err := h.books.Create(r.Context(), middleware.PrincipalFromContext(r.Context()), book)
	if h.formFailed(w, r, book, err) {
		return
	}

	log.Printf("Utworzono książkę: %s (%s)", book.Title, book.ID)
	http.Redirect(w, r, "/catalog/books/"+book.ID, http.StatusSeeOther)
}

// ShowUpdateForm wyświetla formularz edycji książki (GET /catalog/book/{id}/update)
func (h *BooksHandler) ShowUpdateForm(w http.ResponseWriter, r *http.Request) {
	book, err := h.books.Get(r.Context(), middleware.PrincipalFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	h.renderForm(w, r, book, nil)
}

// UpdateBook zapisuje zmiany książki (POST /catalog/book/{id}/update)
func (h *BooksHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	book := bookFromForm(r)
	book.ID = chi.URLParam(r, "id")

	err := h.books.Update(r.Context(), middleware.PrincipalFromContext(r.Context()), book)
	if h.formFailed(w, r, book, err) {
		return
	}

	log.Printf("Zaktualizowano książkę: %s (%s)", book.Title, book.ID)
	http.Redirect(w, r, "/catalog/books/"+book.ID, http.StatusSeeOther)
}

// ShowDeleteForm wyświetla potwierdzenie usunięcia (GET /catalog/book/{id}/delete)
func (h *BooksHandler) ShowDeleteForm(w http.ResponseWriter, r *http.Request) {
	book, err := h.books.Get(r.Context(), middleware.PrincipalFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	data := NewTemplateData(r)
	data["Book"] = book
	h.render.Render(w, http.StatusOK, "catalog/book_confirm_delete.html", data)
}

// DeleteBook usuwa książkę (POST /catalog/book/{id}/delete)
func (h *BooksHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.books.Delete(r.Context(), middleware.PrincipalFromContext(r.Context()), id); err != nil {
		handleError(w, r, err)
		return
	}

	log.Printf("Usunięto książkę: %s", id)
	http.Redirect(w, r, "/catalog/books", http.StatusSeeOther)
}

// formFailed renderuje formularz z błędami walidacji albo obsługuje inny błąd.
// Zwraca false, gdy zapis się powiódł.
func (h *BooksHandler) formFailed(w http.ResponseWriter, r *http.Request, book *models.Book, err error) bool {
	if err == nil {
		return false
	}

	var verrs catalog.ValidationErrors
	if errors.As(err, &verrs) {
		h.renderForm(w, r, book, verrs)
		return true
	}

	handleError(w, r, err)
	return true
}

func (h *BooksHandler) renderForm(w http.ResponseWriter, r *http.Request, book *models.Book, verrs catalog.ValidationErrors) {
	opts, err := h.books.FormOptions(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if verrs == nil {
		verrs = catalog.ValidationErrors{}
	}

	data := NewTemplateData(r)
	data["Book"] = book
	data["Options"] = opts
	data["Errors"] = verrs
	h.render.Render(w, http.StatusOK, "catalog/book_form.html", data)
}

func bookFromForm(r *http.Request) *models.Book {
	_ = r.ParseForm()
	return &models.Book{
		Title:      r.PostFormValue("title"),
		Summary:    r.PostFormValue("summary"),
		ISBN:       r.PostFormValue("isbn"),
		AuthorID:   r.PostFormValue("author_id"),
		GenreIDs:   r.PostForm["genre_ids"],
		LanguageID: r.PostFormValue("language_id"),
	}
}
