package main

import (
	"context"
	"flag"
	"log"

	"local-library/internal/catalog"
	"local-library/internal/config"
	"local-library/internal/seed"
	"local-library/internal/server"
)

func main() {
	borrower := flag.String("borrower", "", "email użytkownika, który dostanie część egzemplarzy jako wypożyczone")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Błąd konfiguracji: %v", err)
	}

	ctx := context.Background()
	backend, err := server.OpenBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("Błąd otwierania magazynu: %v", err)
	}
	defer backend.Close()

	borrowerID := ""
	if *borrower != "" {
		u, err := backend.Users.GetUserByEmail(ctx, *borrower)
		if err != nil {
			log.Fatalf("Nie znaleziono użytkownika %s: %v", *borrower, err)
		}
		borrowerID = u.ID
	}

	log.Println("Dodawanie przykładowego katalogu do bazy danych...")

	res, err := seed.Catalog(ctx, backend.Store, catalog.SystemClock(), borrowerID)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	log.Printf("✅ Pomyślnie dodano %d książek, %d autorów i %d egzemplarzy", res.Books, res.Authors, res.Instances)
}
