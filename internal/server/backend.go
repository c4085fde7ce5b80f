package server

import (
	"context"
	"fmt"
	"log"

	"local-library/internal/auth"
	"local-library/internal/catalog"
	"local-library/internal/config"
	"local-library/internal/firebase"
	"local-library/internal/postgres"
	"local-library/internal/store/memory"
)

// Backend to wybrany magazyn danych wraz z pasującą metodą logowania
type Backend struct {
	Name          string
	Store         catalog.Store
	Users         catalog.UserStore
	Authenticator auth.Authenticator

	Memory   *memory.Store    // tylko STORE_BACKEND=memory
	Firebase *firebase.Client // tylko STORE_BACKEND=firestore
	Postgres *postgres.Store  // tylko STORE_BACKEND=postgres
}

// OpenBackend otwiera magazyn wskazany w konfiguracji
func OpenBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		store := memory.New()
		log.Println("Magazyn w pamięci - dane znikną po zatrzymaniu serwera")
		return &Backend{
			Name:          cfg.StoreBackend,
			Store:         store,
			Users:         store,
			Authenticator: auth.NewPasswordAuthenticator(store),
			Memory:        store,
		}, nil

	case config.BackendPostgres:
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, err
		}
		return &Backend{
			Name:          cfg.StoreBackend,
			Store:         store,
			Users:         store,
			Authenticator: auth.NewPasswordAuthenticator(store),
			Postgres:      store,
		}, nil

	case config.BackendFirestore:
		client, err := firebase.InitFirebase(ctx, cfg.Firebase)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Name:          cfg.StoreBackend,
			Store:         client,
			Users:         client,
			Authenticator: auth.NewFirebaseAuthenticator(client),
			Firebase:      client,
		}, nil
	}

	return nil, fmt.Errorf("nieznany STORE_BACKEND %q", cfg.StoreBackend)
}

// Close zamyka połączenia magazynu
func (b *Backend) Close() {
	switch {
	case b.Postgres != nil:
		b.Postgres.Close()
	case b.Firebase != nil:
		if err := b.Firebase.Close(); err != nil {
			log.Printf("Błąd zamykania Firebase: %v", err)
		}
	}
}
