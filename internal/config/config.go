// Package config wczytuje konfigurację aplikacji z pliku .env i zmiennych środowiskowych.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"local-library/internal/firebase"
)

// Dostępne magazyny danych
const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
)

// Config to ustawienia serwera
type Config struct {
	Port                string
	StoreBackend        string
	DatabaseURL         string
	Firebase            firebase.Config
	SessionSecureCookie bool
	StaticDir           string
}

// Load wczytuje .env (jeśli istnieje), a następnie zmienne środowiskowe
func Load(envFiles ...string) (*Config, error) {
	// Wczytaj zmienne środowiskowe z pliku .env
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("Brak pliku .env - używam zmiennych systemowych")
	}
	return FromEnv()
}

// FromEnv buduje konfigurację wyłącznie ze zmiennych środowiskowych
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:         getenv("PORT", "8080"),
		StoreBackend: strings.ToLower(getenv("STORE_BACKEND", BackendMemory)),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		Firebase: firebase.Config{
			CredentialsPath: os.Getenv("FIREBASE_CREDENTIALS_PATH"),
			CredentialsJSON: os.Getenv("FIREBASE_CREDENTIALS_JSON"),
			WebAPIKey:       os.Getenv("FIREBASE_WEB_API_KEY"),
		},
		StaticDir: os.Getenv("STATIC_DIR"),
	}

	if raw := os.Getenv("SESSION_SECURE_COOKIE"); raw != "" {
		secure, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("nieprawidłowa wartość SESSION_SECURE_COOKIE %q: %w", raw, err)
		}
		cfg.SessionSecureCookie = secure
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate sprawdza czy wybrany magazyn ma komplet ustawień
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("STORE_BACKEND=postgres wymaga DATABASE_URL")
		}
	case BackendFirestore:
		if c.Firebase.CredentialsPath == "" && c.Firebase.CredentialsJSON == "" {
			return fmt.Errorf("STORE_BACKEND=firestore wymaga FIREBASE_CREDENTIALS_PATH lub FIREBASE_CREDENTIALS_JSON")
		}
	default:
		return fmt.Errorf("nieznany STORE_BACKEND %q (dozwolone: memory, firestore, postgres)", c.StoreBackend)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
