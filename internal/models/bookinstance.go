package models

import "cloud.google.com/go/civil"

// LoanStatus określa status egzemplarza
type LoanStatus string

const (
	StatusMaintenance LoanStatus = "m" // W naprawie
	StatusOnLoan      LoanStatus = "o" // Wypożyczony
	StatusAvailable   LoanStatus = "a" // Dostępny
	StatusReserved    LoanStatus = "r" // Zarezerwowany
)

// Label zwraca czytelną nazwę statusu
func (s LoanStatus) Label() string {
	switch s {
	case StatusMaintenance:
		return "Maintenance"
	case StatusOnLoan:
		return "On loan"
	case StatusAvailable:
		return "Available"
	case StatusReserved:
		return "Reserved"
	}
	return string(s)
}

// Valid sprawdza czy status należy do znanego zbioru
func (s LoanStatus) Valid() bool {
	switch s {
	case StatusMaintenance, StatusOnLoan, StatusAvailable, StatusReserved:
		return true
	}
	return false
}

// BookInstance reprezentuje fizyczny egzemplarz książki, który można wypożyczyć.
// ID to losowy UUID, żeby nie dało się zgadywać kolejnych egzemplarzy.
type BookInstance struct {
	ID         string      `json:"id"`
	BookID     string      `json:"book_id"`
	Imprint    string      `json:"imprint"`
	DueBack    *civil.Date `json:"due_back,omitempty"`
	Status     LoanStatus  `json:"status"`
	BorrowerID string      `json:"borrower_id,omitempty"`
}

// IsOverdue sprawdza czy termin zwrotu minął względem podanego dnia
func (bi *BookInstance) IsOverdue(today civil.Date) bool {
	return bi.DueBack != nil && bi.DueBack.Before(today)
}

// Clone zwraca niezależną kopię egzemplarza
func (bi *BookInstance) Clone() *BookInstance {
	c := *bi
	if bi.DueBack != nil {
		d := *bi.DueBack
		c.DueBack = &d
	}
	return &c
}
