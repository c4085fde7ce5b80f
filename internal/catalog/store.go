package catalog

import (
	"context"

	"cloud.google.com/go/civil"

	"local-library/internal/models"
)

// ListOptions określa okno wyników (paginacja po stronie magazynu)
type ListOptions struct {
	Offset int
	Limit  int // 0 oznacza brak limitu
}

// InstanceFilter zawęża listę egzemplarzy; puste pola nie filtrują
type InstanceFilter struct {
	Status     models.LoanStatus
	BorrowerID string
	BookID     string
}

// Store to magazyn katalogu. Implementacje: pamięć, Firestore, PostgreSQL.
// Metody Get* zwracają ErrNotFound dla nieznanych identyfikatorów.
type Store interface {
	GetAuthor(ctx context.Context, id string) (*models.Author, error)
	// ListAuthors zwraca autorów posortowanych po nazwisku i imieniu oraz łączną liczbę
	ListAuthors(ctx context.Context, opts ListOptions) ([]*models.Author, int, error)
	CreateAuthor(ctx context.Context, a *models.Author) error
	UpdateAuthor(ctx context.Context, a *models.Author) error
	// DeleteAuthor usuwa autora i czyści referencję w jego książkach
	DeleteAuthor(ctx context.Context, id string) error
	CountAuthors(ctx context.Context) (int, error)

	GetBook(ctx context.Context, id string) (*models.Book, error)
	// ListBooks zwraca książki posortowane po tytule oraz łączną liczbę
	ListBooks(ctx context.Context, opts ListOptions) ([]*models.Book, int, error)
	ListBooksByAuthor(ctx context.Context, authorID string) ([]*models.Book, error)
	CreateBook(ctx context.Context, b *models.Book) error
	UpdateBook(ctx context.Context, b *models.Book) error
	// DeleteBook usuwa książkę i czyści referencję w jej egzemplarzach
	DeleteBook(ctx context.Context, id string) error
	CountBooks(ctx context.Context) (int, error)

	ListGenres(ctx context.Context) ([]*models.Genre, error)
	CreateGenre(ctx context.Context, g *models.Genre) error
	ListLanguages(ctx context.Context) ([]*models.Language, error)
	CreateLanguage(ctx context.Context, l *models.Language) error

	GetBookInstance(ctx context.Context, id string) (*models.BookInstance, error)
	// ListBookInstances zwraca egzemplarze posortowane rosnąco po terminie zwrotu
	// (puste terminy na końcu, remisy po ID) oraz łączną liczbę pasujących.
	ListBookInstances(ctx context.Context, filter InstanceFilter, opts ListOptions) ([]*models.BookInstance, int, error)
	CountBookInstances(ctx context.Context, filter InstanceFilter) (int, error)
	CreateBookInstance(ctx context.Context, bi *models.BookInstance) error
	// SetDueBack nadpisuje wyłącznie termin zwrotu egzemplarza
	SetDueBack(ctx context.Context, id string, due civil.Date) error
}

// UserStore przechowuje konta użytkowników
type UserStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
}
