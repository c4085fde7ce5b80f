package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"local-library/internal/models"
)

const invalidChoice = "Select a valid choice."

// BookService to operacje tworzenia, edycji i usuwania książek
type BookService struct {
	store     Store
	validator *Validator
}

// NewBookService tworzy serwis książek
func NewBookService(store Store, v *Validator) *BookService {
	if v == nil {
		v = NewValidator()
	}
	return &BookService{store: store, validator: v}
}

// BookFormOptions to listy wyboru formularza książki
type BookFormOptions struct {
	Authors   []*models.Author
	Genres    []*models.Genre
	Languages []*models.Language
}

// Get pobiera książkę do formularza edycji
func (s *BookService) Get(ctx context.Context, p Principal, id string) (*models.Book, error) {
	if err := p.Require(models.PermManageCatalog); err != nil {
		return nil, err
	}
	return s.store.GetBook(ctx, id)
}

// FormOptions zwraca autorów, gatunki i języki do list wyboru
func (s *BookService) FormOptions(ctx context.Context) (*BookFormOptions, error) {
	authors, _, err := s.store.ListAuthors(ctx, ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing authors: %w", err)
	}
	genres, err := s.store.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing genres: %w", err)
	}
	languages, err := s.store.ListLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing languages: %w", err)
	}
	return &BookFormOptions{Authors: authors, Genres: genres, Languages: languages}, nil
}

// Create zapisuje nową książkę
func (s *BookService) Create(ctx context.Context, p Principal, b *models.Book) error {
	if err := p.Require(models.PermManageCatalog); err != nil {
		return err
	}
	if err := s.validate(ctx, b); err != nil {
		return err
	}
	if err := s.store.CreateBook(ctx, b); err != nil {
		return fmt.Errorf("creating book: %w", err)
	}
	return nil
}

// Update nadpisuje pola istniejącej książki
func (s *BookService) Update(ctx context.Context, p Principal, b *models.Book) error {
	if err := p.Require(models.PermManageCatalog); err != nil {
		return err
	}
	if _, err := s.store.GetBook(ctx, b.ID); err != nil {
		return err
	}
	if err := s.validate(ctx, b); err != nil {
		return err
	}
	if err := s.store.UpdateBook(ctx, b); err != nil {
		return fmt.Errorf("updating book %s: %w", b.ID, err)
	}
	return nil
}

// Delete usuwa książkę; egzemplarze tracą referencję do niej
func (s *BookService) Delete(ctx context.Context, p Principal, id string) error {
	if err := p.Require(models.PermManageCatalog); err != nil {
		return err
	}
	if err := s.store.DeleteBook(ctx, id); err != nil {
		return fmt.Errorf("deleting book %s: %w", id, err)
	}
	return nil
}

// validate sprawdza obecność pól oraz to, czy wskazane referencje istnieją
func (s *BookService) validate(ctx context.Context, b *models.Book) error {
	b.Title = strings.TrimSpace(b.Title)
	b.Summary = strings.TrimSpace(b.Summary)
	b.ISBN = strings.TrimSpace(b.ISBN)

	verrs := ValidationErrors{}
	if err := s.validator.Validate(b); err != nil {
		if !errors.As(err, &verrs) {
			return err
		}
	}

	if b.AuthorID != "" {
		if _, err := s.store.GetAuthor(ctx, b.AuthorID); err != nil {
			if !errors.Is(err, ErrNotFound) {
				return fmt.Errorf("checking author: %w", err)
			}
			verrs["author_id"] = invalidChoice
		}
	}

	if len(b.GenreIDs) > 0 || b.LanguageID != "" {
		opts, err := s.FormOptions(ctx)
		if err != nil {
			return err
		}
		known := make(map[string]bool, len(opts.Genres))
		for _, g := range opts.Genres {
			known[g.ID] = true
		}
		for _, id := range b.GenreIDs {
			if !known[id] {
				verrs["genre_ids"] = invalidChoice
				break
			}
		}
		if b.LanguageID != "" {
			found := false
			for _, l := range opts.Languages {
				if l.ID == b.LanguageID {
					found = true
					break
				}
			}
			if !found {
				verrs["language_id"] = invalidChoice
			}
		}
	}

	if len(verrs) > 0 {
		return verrs
	}
	return nil
}
