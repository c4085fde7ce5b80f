package models

// Permission to uprawnienie (capability) przyznane użytkownikowi
type Permission string

const (
	PermCanMarkReturned Permission = "catalog.can_mark_returned"     // Przedłużanie terminów zwrotu
	PermStaffMember     Permission = "catalog.staff_member_required" // Podgląd wszystkich wypożyczeń
	PermManageCatalog   Permission = "catalog.manage_catalog"        // Dodawanie/edycja/usuwanie autorów i książek
)

// AllPermissions zwraca wszystkie uprawnienia bibliotekarza
func AllPermissions() []Permission {
	return []Permission{PermCanMarkReturned, PermStaffMember, PermManageCatalog}
}

// User reprezentuje użytkownika systemu
type User struct {
	ID           string       `json:"id" firestore:"id"`
	FirebaseUID  string       `json:"firebase_uid" firestore:"firebase_uid"` // UID z Firebase Auth
	Email        string       `json:"email" firestore:"email"`
	FirstName    string       `json:"first_name" firestore:"first_name"`
	LastName     string       `json:"last_name" firestore:"last_name"`
	PasswordHash string       `json:"-" firestore:"-"`
	IsActive     bool         `json:"is_active" firestore:"is_active"`
	Permissions  []Permission `json:"permissions" firestore:"permissions"`
}

// HasPermission sprawdza czy użytkownik posiada uprawnienie
func (u *User) HasPermission(p Permission) bool {
	for _, have := range u.Permissions {
		if have == p {
			return true
		}
	}
	return false
}

// IsStaff sprawdza czy użytkownik ma jakiekolwiek uprawnienia personelu
func (u *User) IsStaff() bool {
	return len(u.Permissions) > 0
}

// FullName zwraca pełne imię i nazwisko użytkownika
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
