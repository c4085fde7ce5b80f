package catalog

import (
	"context"
	"errors"
	"fmt"

	"local-library/internal/models"
)

// BrowseService obsługuje publiczne przeglądanie katalogu
type BrowseService struct {
	store Store
}

// NewBrowseService tworzy serwis przeglądania katalogu
func NewBrowseService(store Store) *BrowseService {
	return &BrowseService{store: store}
}

// Stats to liczniki wyświetlane na stronie głównej
type Stats struct {
	NumBooks              int
	NumInstances          int
	NumInstancesAvailable int
	NumInstancesOnLoan    int
	NumInstancesReserved  int
	NumAuthors            int
}

// Stats zlicza książki, egzemplarze według statusu i autorów
func (s *BrowseService) Stats(ctx context.Context) (*Stats, error) {
	var (
		st  Stats
		err error
	)
	if st.NumBooks, err = s.store.CountBooks(ctx); err != nil {
		return nil, fmt.Errorf("counting books: %w", err)
	}
	if st.NumAuthors, err = s.store.CountAuthors(ctx); err != nil {
		return nil, fmt.Errorf("counting authors: %w", err)
	}

	counts := []struct {
		status models.LoanStatus
		dst    *int
	}{
		{"", &st.NumInstances},
		{models.StatusAvailable, &st.NumInstancesAvailable},
		{models.StatusOnLoan, &st.NumInstancesOnLoan},
		{models.StatusReserved, &st.NumInstancesReserved},
	}
	for _, c := range counts {
		n, err := s.store.CountBookInstances(ctx, InstanceFilter{Status: c.status})
		if err != nil {
			return nil, fmt.Errorf("counting book instances: %w", err)
		}
		*c.dst = n
	}
	return &st, nil
}

// ListAllBooks zwraca stronę listy książek (10 na stronę)
func (s *BrowseService) ListAllBooks(ctx context.Context, page int) (*Page[*models.Book], error) {
	return fetchPage(page, func(opts ListOptions) ([]*models.Book, int, error) {
		return s.store.ListBooks(ctx, opts)
	})
}

// ListAllAuthors zwraca stronę listy autorów (10 na stronę)
func (s *BrowseService) ListAllAuthors(ctx context.Context, page int) (*Page[*models.Author], error) {
	return fetchPage(page, func(opts ListOptions) ([]*models.Author, int, error) {
		return s.store.ListAuthors(ctx, opts)
	})
}

// BookDetail to książka razem z powiązanymi rekordami
type BookDetail struct {
	Book      *models.Book
	Author    *models.Author
	Genres    []*models.Genre
	Language  *models.Language
	Instances []*models.BookInstance
}

// GetBookDetail pobiera książkę, jej autora, gatunki, język i egzemplarze
func (s *BrowseService) GetBookDetail(ctx context.Context, id string) (*BookDetail, error) {
	book, err := s.store.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &BookDetail{Book: book}

	if book.AuthorID != "" {
		author, err := s.store.GetAuthor(ctx, book.AuthorID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("loading author: %w", err)
		}
		detail.Author = author
	}

	if len(book.GenreIDs) > 0 {
		genres, err := s.store.ListGenres(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing genres: %w", err)
		}
		for _, g := range genres {
			if book.HasGenre(g.ID) {
				detail.Genres = append(detail.Genres, g)
			}
		}
	}

	if book.LanguageID != "" {
		languages, err := s.store.ListLanguages(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing languages: %w", err)
		}
		for _, l := range languages {
			if l.ID == book.LanguageID {
				detail.Language = l
				break
			}
		}
	}

	detail.Instances, _, err = s.store.ListBookInstances(ctx, InstanceFilter{BookID: book.ID}, ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing book instances: %w", err)
	}
	return detail, nil
}

// AuthorDetail to autor razem z jego książkami
type AuthorDetail struct {
	Author *models.Author
	Books  []*models.Book
}

// GetAuthorDetail pobiera autora i jego książki
func (s *BrowseService) GetAuthorDetail(ctx context.Context, id string) (*AuthorDetail, error) {
	author, err := s.store.GetAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	books, err := s.store.ListBooksByAuthor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing books of author %s: %w", id, err)
	}
	return &AuthorDetail{Author: author, Books: books}, nil
}
