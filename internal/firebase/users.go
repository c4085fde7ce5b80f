package firebase

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"local-library/internal/catalog"
	"local-library/internal/models"
)

const (
	// UsersCollection to nazwa kolekcji użytkowników w Firestore
	UsersCollection = "users"
)

// GetUser pobiera użytkownika po ID
func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, catalog.ErrNotFound
	}

	doc, err := c.Firestore.Collection(UsersCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("błąd pobierania użytkownika: %w", notFound(err))
	}

	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("błąd parsowania danych użytkownika: %w", err)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}

// GetUserByFirebaseUID pobiera użytkownika po Firebase UID
func (c *Client) GetUserByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	if uid == "" {
		return nil, catalog.ErrNotFound
	}
	return c.findUser(ctx, "firebase_uid", uid)
}

// GetUserByEmail pobiera użytkownika po adresie email
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, catalog.ErrNotFound
	}
	return c.findUser(ctx, "email", strings.ToLower(email))
}

func (c *Client) findUser(ctx context.Context, field, value string) (*models.User, error) {
	iter := c.Firestore.Collection(UsersCollection).
		Where(field, "==", value).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, catalog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("błąd wyszukiwania użytkownika: %w", err)
	}

	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("błąd parsowania danych użytkownika: %w", err)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}

// CreateUser tworzy nowego użytkownika
func (c *Client) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("użytkownik nie może być nil")
	}
	if user.Email == "" {
		return fmt.Errorf("email jest wymagany")
	}
	user.Email = strings.ToLower(user.Email)

	var docRef *firestore.DocumentRef
	if user.ID == "" {
		docRef = c.Firestore.Collection(UsersCollection).NewDoc()
		user.ID = docRef.ID
	} else {
		docRef = c.Firestore.Collection(UsersCollection).Doc(user.ID)
	}

	if _, err := docRef.Set(ctx, user); err != nil {
		return fmt.Errorf("błąd zapisywania użytkownika: %w", err)
	}

	return nil
}
