package catalog

import "local-library/internal/models"

// Principal to jawny token uprawnień przekazywany do każdej operacji serwisu.
// Zerowa wartość oznacza anonimowego użytkownika.
type Principal struct {
	UserID      string
	Permissions []models.Permission
}

// Anonymous zwraca principal niezalogowanego użytkownika
func Anonymous() Principal {
	return Principal{}
}

// PrincipalFor buduje principal na podstawie użytkownika z sesji
func PrincipalFor(u *models.User) Principal {
	if u == nil {
		return Principal{}
	}
	perms := make([]models.Permission, len(u.Permissions))
	copy(perms, u.Permissions)
	return Principal{UserID: u.ID, Permissions: perms}
}

// IsAuthenticated sprawdza czy principal reprezentuje zalogowanego użytkownika
func (p Principal) IsAuthenticated() bool {
	return p.UserID != ""
}

// Has sprawdza czy principal posiada uprawnienie
func (p Principal) Has(perm models.Permission) bool {
	for _, have := range p.Permissions {
		if have == perm {
			return true
		}
	}
	return false
}

// RequireAuthenticated zwraca ErrUnauthorized dla anonimowego użytkownika
func (p Principal) RequireAuthenticated() error {
	if !p.IsAuthenticated() {
		return ErrUnauthorized
	}
	return nil
}

// Require zwraca ErrUnauthorized dla anonimowego użytkownika i ErrForbidden,
// gdy zalogowanemu brakuje uprawnienia.
func (p Principal) Require(perm models.Permission) error {
	if err := p.RequireAuthenticated(); err != nil {
		return err
	}
	if !p.Has(perm) {
		return ErrForbidden
	}
	return nil
}
