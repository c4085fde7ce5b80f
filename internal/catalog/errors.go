package catalog

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound oznacza nieznany identyfikator rekordu
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized oznacza brak zalogowania
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden oznacza zalogowanego użytkownika bez wymaganego uprawnienia
	ErrForbidden = errors.New("permission denied")
)

// PastDateError zwracany, gdy proponowany termin zwrotu jest w przeszłości
type PastDateError struct{}

func (*PastDateError) Error() string { return "Invalid date - renewal in past" }

// TooFarAheadError zwracany, gdy proponowany termin zwrotu wypada później niż 4 tygodnie od dziś
type TooFarAheadError struct{}

func (*TooFarAheadError) Error() string { return "Invalid date - renewal more than 4 weeks ahead" }

// FieldError przypina błąd walidacji do konkretnego pola formularza
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

// ValidationErrors mapuje nazwę pola na komunikat błędu
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
