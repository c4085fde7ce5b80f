package catalog

import "cloud.google.com/go/civil"

const (
	// MaxRenewalDays to najdalszy dopuszczalny termin zwrotu (4 tygodnie)
	MaxRenewalDays = 28
	// DefaultRenewalDays to domyślna propozycja w formularzu (3 tygodnie)
	DefaultRenewalDays = 21
)

// ValidateDueDate sprawdza, czy proponowany termin zwrotu mieści się w [today, today+28 dni].
// Obie granice są włączone.
func ValidateDueDate(proposed, today civil.Date) (civil.Date, error) {
	if proposed.Before(today) {
		return civil.Date{}, &PastDateError{}
	}
	if proposed.After(today.AddDays(MaxRenewalDays)) {
		return civil.Date{}, &TooFarAheadError{}
	}
	return proposed, nil
}
