package firebase

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"local-library/internal/catalog"
	"local-library/internal/models"
)

const (
	// AuthorsCollection to nazwa kolekcji autorów w Firestore
	AuthorsCollection = "authors"
)

// authorDoc to zapis autora w Firestore (daty jako timestamp o północy UTC)
type authorDoc struct {
	FirstName   string     `firestore:"first_name"`
	LastName    string     `firestore:"last_name"`
	DateOfBirth *time.Time `firestore:"date_of_birth"`
	DateOfDeath *time.Time `firestore:"date_of_death"`
}

func toAuthorDoc(a *models.Author) authorDoc {
	return authorDoc{
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		DateOfBirth: dateToTime(a.DateOfBirth),
		DateOfDeath: dateToTime(a.DateOfDeath),
	}
}

func fromAuthorDoc(id string, d authorDoc) *models.Author {
	return &models.Author{
		ID:          id,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		DateOfBirth: timeToDate(d.DateOfBirth),
		DateOfDeath: timeToDate(d.DateOfDeath),
	}
}

// GetAuthor pobiera autora po ID
func (c *Client) GetAuthor(ctx context.Context, id string) (*models.Author, error) {
	if id == "" {
		return nil, catalog.ErrNotFound
	}

	doc, err := c.Firestore.Collection(AuthorsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("błąd pobierania autora: %w", notFound(err))
	}

	var d authorDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, fmt.Errorf("błąd parsowania danych autora: %w", err)
	}
	return fromAuthorDoc(doc.Ref.ID, d), nil
}

// ListAuthors pobiera stronę autorów posortowanych po nazwisku i imieniu
func (c *Client) ListAuthors(ctx context.Context, opts catalog.ListOptions) ([]*models.Author, int, error) {
	totalCount, err := c.CountAuthors(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := c.Firestore.Collection(AuthorsCollection).
		OrderBy("last_name", firestore.Asc).
		OrderBy("first_name", firestore.Asc).
		Offset(opts.Offset)
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	var authors []*models.Author

	iter := query.Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("błąd iteracji po autorach: %w", err)
		}

		var d authorDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, 0, fmt.Errorf("błąd parsowania autora: %w", err)
		}
		authors = append(authors, fromAuthorDoc(doc.Ref.ID, d))
	}

	return authors, totalCount, nil
}

// CreateAuthor tworzy nowego autora
func (c *Client) CreateAuthor(ctx context.Context, a *models.Author) error {
	docRef := c.Firestore.Collection(AuthorsCollection).NewDoc()
	if a.ID != "" {
		docRef = c.Firestore.Collection(AuthorsCollection).Doc(a.ID)
	}
	a.ID = docRef.ID

	if _, err := docRef.Set(ctx, toAuthorDoc(a)); err != nil {
		return fmt.Errorf("błąd zapisywania autora: %w", err)
	}
	return nil
}

// UpdateAuthor nadpisuje dane autora
func (c *Client) UpdateAuthor(ctx context.Context, a *models.Author) error {
	if _, err := c.GetAuthor(ctx, a.ID); err != nil {
		return err
	}

	if _, err := c.Firestore.Collection(AuthorsCollection).Doc(a.ID).Set(ctx, toAuthorDoc(a)); err != nil {
		return fmt.Errorf("błąd aktualizacji autora: %w", err)
	}
	return nil
}

// DeleteAuthor usuwa autora i czyści author_id w jego książkach
func (c *Client) DeleteAuthor(ctx context.Context, id string) error {
	authorRef := c.Firestore.Collection(AuthorsCollection).Doc(id)
	books := c.Firestore.Collection(BooksCollection).Where("author_id", "==", id)

	return c.Firestore.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(authorRef); err != nil {
			return fmt.Errorf("autor nie istnieje: %w", notFound(err))
		}

		docs, err := tx.Documents(books).GetAll()
		if err != nil {
			return fmt.Errorf("błąd pobierania książek autora: %w", err)
		}

		for _, doc := range docs {
			if err := tx.Update(doc.Ref, []firestore.Update{{Path: "author_id", Value: ""}}); err != nil {
				return err
			}
		}
		return tx.Delete(authorRef)
	})
}

// CountAuthors zwraca liczbę autorów
func (c *Client) CountAuthors(ctx context.Context) (int, error) {
	docs, err := c.Firestore.Collection(AuthorsCollection).Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("błąd liczenia autorów: %w", err)
	}
	return len(docs), nil
}
