package catalog

import (
	"fmt"
	"strconv"
)

// PageSize to stała liczba elementów na stronie listy
const PageSize = 10

// Page to jedna strona wyników listy
type Page[T any] struct {
	Items       []T
	Number      int // numer strony od 1
	NumPages    int
	TotalCount  int
	IsPaginated bool
}

// HasNext sprawdza czy istnieje następna strona
func (p *Page[T]) HasNext() bool { return p.Number < p.NumPages }

// HasPrevious sprawdza czy istnieje poprzednia strona
func (p *Page[T]) HasPrevious() bool { return p.Number > 1 }

// NextNumber zwraca numer następnej strony
func (p *Page[T]) NextNumber() int { return p.Number + 1 }

// PreviousNumber zwraca numer poprzedniej strony
func (p *Page[T]) PreviousNumber() int { return p.Number - 1 }

// ParsePageNumber zamienia parametr ?page= na numer strony. Pusty parametr to strona 1,
// "last" to ostatnia strona (rozwiązywana przez fetchPage jako 0).
func ParsePageNumber(raw string) (int, error) {
	switch raw {
	case "":
		return 1, nil
	case "last":
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid page %q: %w", raw, ErrNotFound)
	}
	return n, nil
}

// fetchPage pobiera stronę number (0 = ostatnia) za pomocą funkcji list.
// Strona poza zakresem daje ErrNotFound, z wyjątkiem strony 1 pustej listy.
func fetchPage[T any](number int, list func(opts ListOptions) ([]T, int, error)) (*Page[T], error) {
	if number < 0 {
		return nil, ErrNotFound
	}

	if number == 0 {
		// Ostatnia strona - najpierw trzeba poznać liczbę wyników
		_, total, err := list(ListOptions{Limit: 1})
		if err != nil {
			return nil, err
		}
		number = numPages(total)
	}

	items, total, err := list(ListOptions{Offset: (number - 1) * PageSize, Limit: PageSize})
	if err != nil {
		return nil, err
	}

	pages := numPages(total)
	if number > pages {
		return nil, fmt.Errorf("page %d of %d: %w", number, pages, ErrNotFound)
	}

	return &Page[T]{
		Items:       items,
		Number:      number,
		NumPages:    pages,
		TotalCount:  total,
		IsPaginated: pages > 1,
	}, nil
}

// numPages zwraca liczbę stron; pusta lista ma jedną (pustą) stronę
func numPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}
