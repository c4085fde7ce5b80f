package catalog

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"

	"local-library/internal/models"
)

// LoanService udostępnia listy wypożyczonych egzemplarzy dla trzech grup odbiorców
type LoanService struct {
	store Store
	users UserStore
	today Clock
}

// NewLoanService tworzy serwis wypożyczeń. users może być nil - wtedy
// w widokach nie ma nazwisk wypożyczających.
func NewLoanService(store Store, users UserStore, today Clock) *LoanService {
	if today == nil {
		today = SystemClock
	}
	return &LoanService{store: store, users: users, today: today}
}

// LoanView to egzemplarz wzbogacony o dane do wyświetlenia
type LoanView struct {
	Instance  *models.BookInstance
	BookTitle string
	Borrower  string
	IsOverdue bool
}

// ListAllOnLoan zwraca wszystkie wypożyczone egzemplarze posortowane po terminie zwrotu.
// Wymaga uprawnienia catalog.staff_member_required.
func (s *LoanService) ListAllOnLoan(ctx context.Context, p Principal, page int) (*Page[*models.BookInstance], error) {
	if err := p.Require(models.PermStaffMember); err != nil {
		return nil, err
	}
	return s.onLoan(ctx, InstanceFilter{Status: models.StatusOnLoan}, page)
}

// ListOnLoanForUser zwraca egzemplarze wypożyczone przez zalogowanego użytkownika,
// posortowane po terminie zwrotu.
func (s *LoanService) ListOnLoanForUser(ctx context.Context, p Principal, page int) (*Page[*models.BookInstance], error) {
	if err := p.RequireAuthenticated(); err != nil {
		return nil, err
	}
	return s.onLoan(ctx, InstanceFilter{Status: models.StatusOnLoan, BorrowerID: p.UserID}, page)
}

func (s *LoanService) onLoan(ctx context.Context, filter InstanceFilter, page int) (*Page[*models.BookInstance], error) {
	return fetchPage(page, func(opts ListOptions) ([]*models.BookInstance, int, error) {
		items, total, err := s.store.ListBookInstances(ctx, filter, opts)
		if err != nil {
			return nil, 0, fmt.Errorf("listing book instances: %w", err)
		}
		return items, total, nil
	})
}

// Describe dokłada tytuły książek i nazwiska wypożyczających do listy egzemplarzy
func (s *LoanService) Describe(ctx context.Context, instances []*models.BookInstance) ([]LoanView, error) {
	today := s.today()
	titles := make(map[string]string)
	names := make(map[string]string)

	views := make([]LoanView, 0, len(instances))
	for _, bi := range instances {
		view := LoanView{Instance: bi, IsOverdue: bi.IsOverdue(today)}

		if bi.BookID != "" {
			title, ok := titles[bi.BookID]
			if !ok {
				book, err := s.store.GetBook(ctx, bi.BookID)
				switch {
				case errors.Is(err, ErrNotFound):
				case err != nil:
					return nil, fmt.Errorf("loading book %s: %w", bi.BookID, err)
				default:
					title = book.Title
				}
				titles[bi.BookID] = title
			}
			view.BookTitle = title
		}

		if bi.BorrowerID != "" && s.users != nil {
			name, ok := names[bi.BorrowerID]
			if !ok {
				user, err := s.users.GetUser(ctx, bi.BorrowerID)
				switch {
				case errors.Is(err, ErrNotFound):
				case err != nil:
					return nil, fmt.Errorf("loading borrower %s: %w", bi.BorrowerID, err)
				default:
					name = user.FullName()
				}
				names[bi.BorrowerID] = name
			}
			view.Borrower = name
		}

		views = append(views, view)
	}
	return views, nil
}

// Today zwraca bieżącą datę z zegara serwisu
func (s *LoanService) Today() civil.Date {
	return s.today()
}
