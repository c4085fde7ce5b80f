package catalog

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"

	"local-library/internal/models"
)

// DueBackField to nazwa pola formularza przedłużenia
const DueBackField = "due_back"

// RenewalService obsługuje przedłużanie terminu zwrotu przez bibliotekarza.
// Odczyt, walidacja i zapis nie są objęte blokadą - przy dwóch równoległych
// przedłużeniach wygrywa ostatni zapis.
type RenewalService struct {
	store Store
	today Clock
}

// NewRenewalService tworzy serwis przedłużeń
func NewRenewalService(store Store, today Clock) *RenewalService {
	if today == nil {
		today = SystemClock
	}
	return &RenewalService{store: store, today: today}
}

// RenewalForm to dane formularza przedłużenia
type RenewalForm struct {
	Instance        *models.BookInstance
	ProposedDueDate civil.Date
}

// Display ładuje egzemplarz i proponuje termin dziś + 3 tygodnie. Nic nie zapisuje.
func (s *RenewalService) Display(ctx context.Context, p Principal, instanceID string) (*RenewalForm, error) {
	if err := p.Require(models.PermCanMarkReturned); err != nil {
		return nil, err
	}

	bi, err := s.load(ctx, instanceID)
	if err != nil {
		return nil, err
	}

	return &RenewalForm{
		Instance:        bi,
		ProposedDueDate: s.today().AddDays(DefaultRenewalDays),
	}, nil
}

// Apply waliduje przesłany termin i nadpisuje termin zwrotu egzemplarza.
// Błąd walidacji zwracany jest jako *FieldError dla pola due_back, a rekord pozostaje bez zmian.
// Status egzemplarza nie jest zmieniany.
func (s *RenewalService) Apply(ctx context.Context, p Principal, instanceID string, submitted civil.Date) (*models.BookInstance, error) {
	if err := p.Require(models.PermCanMarkReturned); err != nil {
		return nil, err
	}

	bi, err := s.load(ctx, instanceID)
	if err != nil {
		return nil, err
	}

	due, err := ValidateDueDate(submitted, s.today())
	if err != nil {
		return bi, &FieldError{Field: DueBackField, Err: err}
	}

	if err := s.store.SetDueBack(ctx, bi.ID, due); err != nil {
		return nil, fmt.Errorf("saving due date for %s: %w", bi.ID, err)
	}

	bi.DueBack = &due
	return bi, nil
}

func (s *RenewalService) load(ctx context.Context, id string) (*models.BookInstance, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	bi, err := s.store.GetBookInstance(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("loading book instance %s: %w", id, err)
	}
	return bi, nil
}
