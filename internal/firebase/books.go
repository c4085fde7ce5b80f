package firebase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"local-library/internal/catalog"
	"local-library/internal/models"
)

const (
	// BooksCollection to nazwa kolekcji książek w Firestore
	BooksCollection = "books"
	// GenresCollection to nazwa kolekcji gatunków
	GenresCollection = "genres"
	// LanguagesCollection to nazwa kolekcji języków
	LanguagesCollection = "languages"
)

// GetBook pobiera książkę po ID
func (c *Client) GetBook(ctx context.Context, id string) (*models.Book, error) {
	if id == "" {
		return nil, catalog.ErrNotFound
	}

	doc, err := c.Firestore.Collection(BooksCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("błąd pobierania książki: %w", notFound(err))
	}

	var book models.Book
	if err := doc.DataTo(&book); err != nil {
		return nil, fmt.Errorf("błąd parsowania danych książki: %w", err)
	}

	// Ustaw ID z dokumentu Firestore
	book.ID = doc.Ref.ID
	return &book, nil
}

// CreateBook tworzy nową książkę w bazie
func (c *Client) CreateBook(ctx context.Context, book *models.Book) error {
	// Jeśli nie ma ID, Firestore wygeneruje automatycznie
	var docRef *firestore.DocumentRef
	if book.ID == "" {
		docRef = c.Firestore.Collection(BooksCollection).NewDoc()
		book.ID = docRef.ID
	} else {
		docRef = c.Firestore.Collection(BooksCollection).Doc(book.ID)
	}

	if _, err := docRef.Set(ctx, book); err != nil {
		return fmt.Errorf("błąd zapisywania książki: %w", err)
	}
	return nil
}

// UpdateBook nadpisuje istniejącą książkę
func (c *Client) UpdateBook(ctx context.Context, book *models.Book) error {
	if _, err := c.GetBook(ctx, book.ID); err != nil {
		return err
	}

	if _, err := c.Firestore.Collection(BooksCollection).Doc(book.ID).Set(ctx, book); err != nil {
		return fmt.Errorf("błąd aktualizacji książki: %w", err)
	}
	return nil
}

// DeleteBook usuwa książkę i czyści book_id w jej egzemplarzach (w jednej transakcji)
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	bookRef := c.Firestore.Collection(BooksCollection).Doc(id)
	instances := c.Firestore.Collection(InstancesCollection).Where("book_id", "==", id)

	return c.Firestore.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(bookRef); err != nil {
			return fmt.Errorf("książka nie istnieje: %w", notFound(err))
		}

		docs, err := tx.Documents(instances).GetAll()
		if err != nil {
			return fmt.Errorf("błąd pobierania egzemplarzy: %w", err)
		}

		for _, doc := range docs {
			if err := tx.Update(doc.Ref, []firestore.Update{{Path: "book_id", Value: ""}}); err != nil {
				return err
			}
		}
		return tx.Delete(bookRef)
	})
}

// ListBooks pobiera stronę książek posortowanych po tytule
func (c *Client) ListBooks(ctx context.Context, opts catalog.ListOptions) ([]*models.Book, int, error) {
	// Pobierz całkowitą liczbę dokumentów dla paginacji
	totalCount, err := c.CountBooks(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := c.Firestore.Collection(BooksCollection).OrderBy("title", firestore.Asc).Offset(opts.Offset)
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	books, err := c.collectBooks(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return books, totalCount, nil
}

// ListBooksByAuthor pobiera książki danego autora
func (c *Client) ListBooksByAuthor(ctx context.Context, authorID string) ([]*models.Book, error) {
	books, err := c.collectBooks(ctx, c.Firestore.Collection(BooksCollection).Where("author_id", "==", authorID))
	if err != nil {
		return nil, err
	}

	// Sortowanie po stronie aplikacji - bez indeksu złożonego author_id + title
	sort.Slice(books, func(i, j int) bool {
		return strings.ToLower(books[i].Title) < strings.ToLower(books[j].Title)
	})
	return books, nil
}

func (c *Client) collectBooks(ctx context.Context, query firestore.Query) ([]*models.Book, error) {
	var books []*models.Book

	iter := query.Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("błąd iteracji po książkach: %w", err)
		}

		var book models.Book
		if err := doc.DataTo(&book); err != nil {
			return nil, fmt.Errorf("błąd parsowania książki: %w", err)
		}

		book.ID = doc.Ref.ID
		books = append(books, &book)
	}

	return books, nil
}

// CountBooks zwraca całkowitą liczbę książek w systemie
func (c *Client) CountBooks(ctx context.Context) (int, error) {
	docs, err := c.Firestore.Collection(BooksCollection).Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("błąd liczenia książek: %w", err)
	}
	return len(docs), nil
}

// ListGenres pobiera wszystkie gatunki posortowane po nazwie
func (c *Client) ListGenres(ctx context.Context) ([]*models.Genre, error) {
	docs, err := c.Firestore.Collection(GenresCollection).OrderBy("name", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("błąd pobierania gatunków: %w", err)
	}

	genres := make([]*models.Genre, 0, len(docs))
	for _, doc := range docs {
		var g models.Genre
		if err := doc.DataTo(&g); err != nil {
			return nil, fmt.Errorf("błąd parsowania gatunku: %w", err)
		}
		g.ID = doc.Ref.ID
		genres = append(genres, &g)
	}
	return genres, nil
}

// CreateGenre tworzy nowy gatunek
func (c *Client) CreateGenre(ctx context.Context, g *models.Genre) error {
	docRef := c.Firestore.Collection(GenresCollection).NewDoc()
	g.ID = docRef.ID
	if _, err := docRef.Set(ctx, g); err != nil {
		return fmt.Errorf("błąd zapisywania gatunku: %w", err)
	}
	return nil
}

// ListLanguages pobiera wszystkie języki posortowane po nazwie
func (c *Client) ListLanguages(ctx context.Context) ([]*models.Language, error) {
	docs, err := c.Firestore.Collection(LanguagesCollection).OrderBy("name", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("błąd pobierania języków: %w", err)
	}

	languages := make([]*models.Language, 0, len(docs))
	for _, doc := range docs {
		var l models.Language
		if err := doc.DataTo(&l); err != nil {
			return nil, fmt.Errorf("błąd parsowania języka: %w", err)
		}
		l.ID = doc.Ref.ID
		languages = append(languages, &l)
	}
	return languages, nil
}

// CreateLanguage tworzy nowy język
func (c *Client) CreateLanguage(ctx context.Context, l *models.Language) error {
	docRef := c.Firestore.Collection(LanguagesCollection).NewDoc()
	l.ID = docRef.ID
	if _, err := docRef.Set(ctx, l); err != nil {
		return fmt.Errorf("błąd zapisywania języka: %w", err)
	}
	return nil
}
