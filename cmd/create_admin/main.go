package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	firebaseAuth "firebase.google.com/go/v4/auth"

	"local-library/internal/auth"
	"local-library/internal/config"
	"local-library/internal/models"
	"local-library/internal/server"
)

func main() {
	email := flag.String("email", "admin@biblioteka.pl", "email bibliotekarza")
	password := flag.String("password", "", "hasło (wymagane)")
	firstName := flag.String("first-name", "Admin", "imię")
	lastName := flag.String("last-name", "System", "nazwisko")
	flag.Parse()

	if *password == "" {
		log.Fatal("Podaj hasło: -password")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Błąd konfiguracji: %v", err)
	}
	if cfg.StoreBackend == config.BackendMemory {
		log.Fatal("STORE_BACKEND=memory nie przechowuje danych - wybierz firestore lub postgres")
	}

	ctx := context.Background()
	backend, err := server.OpenBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("Błąd otwierania magazynu: %v", err)
	}
	defer backend.Close()

	fmt.Println("=== Tworzenie konta bibliotekarza ===")

	user := &models.User{
		Email:       *email,
		FirstName:   *firstName,
		LastName:    *lastName,
		IsActive:    true,
		Permissions: models.AllPermissions(),
	}

	if backend.Firebase != nil {
		// Utwórz użytkownika w Firebase Auth
		params := (&firebaseAuth.UserToCreate{}).
			Email(*email).
			Password(*password).
			DisplayName(*firstName + " " + *lastName)

		firebaseUser, err := backend.Firebase.Auth.CreateUser(ctx, params)
		if err != nil {
			log.Fatalf("Błąd tworzenia użytkownika w Firebase Auth: %v", err)
		}
		user.FirebaseUID = firebaseUser.UID
		fmt.Printf("✓ Utworzono użytkownika Auth: %s (UID: %s)\n", *email, firebaseUser.UID)
	} else {
		hash, err := auth.HashPassword(*password)
		if err != nil {
			log.Fatalf("Błąd hashowania hasła: %v", err)
		}
		user.PasswordHash = hash
	}

	if err := backend.Users.CreateUser(ctx, user); err != nil {
		log.Fatalf("Błąd zapisywania użytkownika: %v", err)
	}

	fmt.Printf("✓ Utworzono użytkownika: %s\n", user.ID)
	fmt.Println("\n=== Konto bibliotekarza utworzone pomyślnie ===")
	fmt.Printf("Email: %s\n", *email)
	fmt.Printf("Uprawnienia: %v\n", user.Permissions)
}
