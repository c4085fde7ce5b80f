package catalog

import (
	"time"

	"cloud.google.com/go/civil"
)

// Clock zwraca dzisiejszą datę; podmieniany w testach
type Clock func() civil.Date

// SystemClock zwraca bieżącą datę w lokalnej strefie czasowej
func SystemClock() civil.Date {
	return civil.DateOf(time.Now())
}

// FixedClock zwraca zegar, który zawsze wskazuje podany dzień
func FixedClock(d civil.Date) Clock {
	return func() civil.Date { return d }
}
