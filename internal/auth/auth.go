// Package auth weryfikuje dane logowania użytkowników katalogu.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"local-library/internal/catalog"
	"local-library/internal/models"
)

var (
	// ErrInvalidCredentials oznacza nieznany email lub błędne hasło
	ErrInvalidCredentials = errors.New("Please enter a correct email and password.")
	// ErrInactive oznacza zablokowane konto
	ErrInactive = errors.New("This account is inactive.")
)

// Authenticator zamienia email i hasło na użytkownika
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// HashPassword zwraca skrót bcrypt hasła
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("błąd hashowania hasła: %w", err)
	}
	return string(hash), nil
}

// PasswordAuthenticator sprawdza hasła zapisane jako skróty bcrypt w magazynie użytkowników
type PasswordAuthenticator struct {
	users catalog.UserStore
}

// NewPasswordAuthenticator tworzy autoryzację opartą na bcrypt
func NewPasswordAuthenticator(users catalog.UserStore) *PasswordAuthenticator {
	return &PasswordAuthenticator{users: users}
}

func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := a.users.GetUserByEmail(ctx, email)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("błąd pobierania użytkownika: %w", err)
	}

	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrInactive
	}
	return user, nil
}

// FirebaseBackend to część klienta Firebase potrzebna do logowania
type FirebaseBackend interface {
	VerifyPassword(ctx context.Context, email, password string) (string, error)
	GetUserByFirebaseUID(ctx context.Context, uid string) (*models.User, error)
}

// FirebaseAuthenticator weryfikuje hasło w Firebase Authentication i wiąże UID z użytkownikiem z Firestore
type FirebaseAuthenticator struct {
	backend FirebaseBackend
}

// NewFirebaseAuthenticator tworzy autoryzację przez Firebase
func NewFirebaseAuthenticator(backend FirebaseBackend) *FirebaseAuthenticator {
	return &FirebaseAuthenticator{backend: backend}
}

func (a *FirebaseAuthenticator) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	uid, err := a.backend.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user, err := a.backend.GetUserByFirebaseUID(ctx, uid)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("błąd pobierania użytkownika: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInactive
	}
	return user, nil
}
