package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"local-library/internal/auth"
	"local-library/internal/catalog"
	"local-library/internal/config"
	"local-library/internal/models"
	"local-library/internal/seed"
	"local-library/internal/server"
	"local-library/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Błąd konfiguracji: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := server.OpenBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("Nie można otworzyć magazynu %s: %v", cfg.StoreBackend, err)
	}
	defer backend.Close()
	log.Printf("Magazyn danych: %s", backend.Name)

	if backend.Memory != nil {
		if err := seedDemo(ctx, backend); err != nil {
			log.Fatalf("Błąd wypełniania katalogu demonstracyjnego: %v", err)
		}
	}

	// Inicjalizacja systemu sesji
	sessions := session.NewManager(cfg.SessionSecureCookie)
	go sessions.RunCleanup(ctx)
	log.Println("System sesji zainicjalizowany")

	router, err := server.NewRouter(server.Deps{
		Store:         backend.Store,
		Users:         backend.Users,
		Authenticator: backend.Authenticator,
		Sessions:      sessions,
		Clock:         catalog.SystemClock,
		StaticDir:     cfg.StaticDir,
		AccessLog:     true,
	})
	if err != nil {
		log.Fatalf("Błąd inicjalizacji routera: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Błąd zatrzymywania serwera: %v", err)
		}
	}()

	// Start serwera
	log.Printf("Serwer uruchomiony na porcie %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Nie można uruchomić serwera: %v", err)
	}
	log.Println("Serwer zatrzymany")
}

// seedDemo zakłada konta demonstracyjne i przykładowy katalog w magazynie w pamięci
func seedDemo(ctx context.Context, backend *server.Backend) error {
	librarian, err := demoUser(ctx, backend.Users, "librarian@library.local", "Bibliotekarz", "Demo", models.AllPermissions())
	if err != nil {
		return err
	}
	reader, err := demoUser(ctx, backend.Users, "reader@library.local", "Czytelnik", "Demo", nil)
	if err != nil {
		return err
	}

	res, err := seed.Catalog(ctx, backend.Store, catalog.SystemClock(), reader.ID)
	if err != nil {
		return err
	}

	log.Printf("Katalog demonstracyjny: %d książek, %d autorów, %d egzemplarzy", res.Books, res.Authors, res.Instances)
	log.Printf("Konta demonstracyjne: %s / %s (hasło: demo)", librarian.Email, reader.Email)
	return nil
}

func demoUser(ctx context.Context, users catalog.UserStore, email, firstName, lastName string, perms []models.Permission) (*models.User, error) {
	hash, err := auth.HashPassword("demo")
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		IsActive:     true,
		Permissions:  perms,
	}
	if err := users.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
