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

// LoansHandler obsługuje listy wypożyczeń i przedłużanie terminów
type LoansHandler struct {
	loans    *catalog.LoanService
	renewals *catalog.RenewalService
	render   *Renderer
}

// NewLoansHandler tworzy nowy handler wypożyczeń
func NewLoansHandler(loans *catalog.LoanService, renewals *catalog.RenewalService, render *Renderer) *LoansHandler {
	return &LoansHandler{loans: loans, renewals: renewals, render: render}
}

// ShowMyBooks wyświetla egzemplarze wypożyczone przez zalogowanego użytkownika (GET /catalog/mybooks)
func (h *LoansHandler) ShowMyBooks(w http.ResponseWriter, r *http.Request) {
	number, err := pageNumber(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	page, err := h.loans.ListOnLoanForUser(r.Context(), middleware.PrincipalFromContext(r.Context()), number)
	if err != nil {
		handleError(w, r, err)
		return
	}
	h.renderLoans(w, r, "catalog/mybooks.html", page)
}

// ShowAllBorrowed wyświetla wszystkie wypożyczone egzemplarze (GET /catalog/borrowed)
func (h *LoansHandler) ShowAllBorrowed(w http.ResponseWriter, r *http.Request) {
	number, err := pageNumber(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	page, err := h.loans.ListAllOnLoan(r.Context(), middleware.PrincipalFromContext(r.Context()), number)
	if err != nil {
		handleError(w, r, err)
		return
	}
	h.renderLoans(w, r, "catalog/borrowed.html", page)
}

func (h *LoansHandler) renderLoans(w http.ResponseWriter, r *http.Request, tmpl string, page *catalog.Page[*models.BookInstance]) {
	views, err := h.loans.Describe(r.Context(), page.Items)
	if err != nil {
		handleError(w, r, err)
		return
	}

	data := NewTemplateData(r)
	data["Page"] = page
	data["Loans"] = views
	h.render.Render(w, http.StatusOK, tmpl, data)
}

// ShowRenewForm wyświetla formularz przedłużenia z propozycją dziś + 3 tygodnie (GET /catalog/book/{id}/renew)
func (h *LoansHandler) ShowRenewForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.renewals.Display(r.Context(), middleware.PrincipalFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.handleRenewError(w, r, err)
		return
	}

	h.renderRenewForm(w, r, form.Instance, form.ProposedDueDate.String(), nil)
}

// RenewBook zapisuje nowy termin zwrotu (POST /catalog/book/{id}/renew)
func (h *LoansHandler) RenewBook(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	id := chi.URLParam(r, "id")
	raw := r.PostFormValue(catalog.DueBackField)

	form, err := h.renewals.Display(r.Context(), principal, id)
	if err != nil {
		h.handleRenewError(w, r, err)
		return
	}

	due, err := parseDate(raw)
	if err != nil {
		h.renderRenewForm(w, r, form.Instance, raw, catalog.ValidationErrors{catalog.DueBackField: err.Error()})
		return
	}

	bi, err := h.renewals.Apply(r.Context(), principal, id, due)
	var fieldErr *catalog.FieldError
	if errors.As(err, &fieldErr) {
		h.renderRenewForm(w, r, bi, raw, catalog.ValidationErrors{fieldErr.Field: fieldErr.Err.Error()})
		return
	}
	if err != nil {
		h.handleRenewError(w, r, err)
		return
	}

	log.Printf("Przedłużono termin zwrotu egzemplarza %s do %s", bi.ID, due)
	http.Redirect(w, r, "/catalog/borrowed", http.StatusSeeOther)
}

// handleRenewError przekierowuje na logowanie także zalogowanych bez uprawnienia
func (h *LoansHandler) handleRenewError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, catalog.ErrForbidden) {
		middleware.RedirectToLogin(w, r)
		return
	}
	handleError(w, r, err)
}

func (h *LoansHandler) renderRenewForm(w http.ResponseWriter, r *http.Request, bi *models.BookInstance, dueBack string, verrs catalog.ValidationErrors) {
	views, err := h.loans.Describe(r.Context(), []*models.BookInstance{bi})
	if err != nil {
		handleError(w, r, err)
		return
	}
	if verrs == nil {
		verrs = catalog.ValidationErrors{}
	}

	view := views[0]
	data := NewTemplateData(r)
	data["Instance"] = bi
	data["BookTitle"] = view.BookTitle
	data["Borrower"] = view.Borrower
	data["IsOverdue"] = view.IsOverdue
	data["DueBack"] = dueBack
	data["Errors"] = verrs
	h.render.Render(w, http.StatusOK, "catalog/book_renew.html", data)
}
