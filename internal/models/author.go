package models

import "cloud.google.com/go/civil"

// Author reprezentuje autora książek
type Author struct {
	ID          string      `json:"id"`
	FirstName   string      `json:"first_name" validate:"required,max=100"`
	LastName    string      `json:"last_name" validate:"required,max=100"`
	DateOfBirth *civil.Date `json:"date_of_birth,omitempty"`
	DateOfDeath *civil.Date `json:"date_of_death,omitempty"`
}

// FullName zwraca nazwisko i imię w formacie katalogowym
func (a *Author) FullName() string {
	return a.LastName + ", " + a.FirstName
}

// Lifespan zwraca zakres dat życia do wyświetlenia, np. "1920-01-02 - 1992-04-06"
func (a *Author) Lifespan() string {
	if a.DateOfBirth == nil && a.DateOfDeath == nil {
		return ""
	}
	s := ""
	if a.DateOfBirth != nil {
		s = a.DateOfBirth.String()
	}
	s += " - "
	if a.DateOfDeath != nil {
		s += a.DateOfDeath.String()
	}
	return s
}
