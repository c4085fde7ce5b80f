// Package memory to magazyn katalogu trzymany w pamięci procesu.
// Używany w trybie deweloperskim (bez bazy danych) i w testach.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"local-library/internal/catalog"
	"local-library/internal/models"
)

// Store przechowuje rekordy katalogu i użytkowników w mapach chronionych mutexem
type Store struct {
	mu        sync.RWMutex
	authors   map[string]*models.Author
	books     map[string]*models.Book
	genres    map[string]*models.Genre
	languages map[string]*models.Language
	instances map[string]*models.BookInstance
	users     map[string]*models.User
}

var (
	_ catalog.Store     = (*Store)(nil)
	_ catalog.UserStore = (*Store)(nil)
)

// New tworzy pusty magazyn
func New() *Store {
	return &Store{
		authors:   make(map[string]*models.Author),
		books:     make(map[string]*models.Book),
		genres:    make(map[string]*models.Genre),
		languages: make(map[string]*models.Language),
		instances: make(map[string]*models.BookInstance),
		users:     make(map[string]*models.User),
	}
}

func newID() string {
	return uuid.NewString()
}

// Autorzy

func copyAuthor(a *models.Author) *models.Author {
	c := *a
	if a.DateOfBirth != nil {
		d := *a.DateOfBirth
		c.DateOfBirth = &d
	}
	if a.DateOfDeath != nil {
		d := *a.DateOfDeath
		c.DateOfDeath = &d
	}
	return &c
}

func (s *Store) GetAuthor(_ context.Context, id string) (*models.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.authors[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return copyAuthor(a), nil
}

func (s *Store) ListAuthors(_ context.Context, opts catalog.ListOptions) ([]*models.Author, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*models.Author, 0, len(s.authors))
	for _, a := range s.authors {
		all = append(all, copyAuthor(a))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].LastName != all[j].LastName {
			return all[i].LastName < all[j].LastName
		}
		if all[i].FirstName != all[j].FirstName {
			return all[i].FirstName < all[j].FirstName
		}
		return all[i].ID < all[j].ID
	})
	return catalog.Window(all, opts), len(all), nil
}

func (s *Store) CreateAuthor(_ context.Context, a *models.Author) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = newID()
	}
	s.authors[a.ID] = copyAuthor(a)
	return nil
}

func (s *Store) UpdateAuthor(_ context.Context, a *models.Author) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.authors[a.ID]; !ok {
		return catalog.ErrNotFound
	}
	s.authors[a.ID] = copyAuthor(a)
	return nil
}

func (s *Store) DeleteAuthor(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.authors[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(s.authors, id)
	for _, b := range s.books {
		if b.AuthorID == id {
			b.AuthorID = ""
		}
	}
	return nil
}

func (s *Store) CountAuthors(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.authors), nil
}

// Książki

func copyBook(b *models.Book) *models.Book {
	c := *b
	c.GenreIDs = append([]string(nil), b.GenreIDs...)
	return &c
}

func sortBooks(books []*models.Book) {
	sort.Slice(books, func(i, j int) bool {
		ti, tj := strings.ToLower(books[i].Title), strings.ToLower(books[j].Title)
		if ti != tj {
			return ti < tj
		}
		return books[i].ID < books[j].ID
	})
}

func (s *Store) GetBook(_ context.Context, id string) (*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.books[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return copyBook(b), nil
}

func (s *Store) ListBooks(_ context.Context, opts catalog.ListOptions) ([]*models.Book, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*models.Book, 0, len(s.books))
	for _, b := range s.books {
		all = append(all, copyBook(b))
	}
	sortBooks(all)
	return catalog.Window(all, opts), len(all), nil
}

func (s *Store) ListBooksByAuthor(_ context.Context, authorID string) ([]*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Book
	for _, b := range s.books {
		if b.AuthorID == authorID {
			out = append(out, copyBook(b))
		}
	}
	sortBooks(out)
	return out, nil
}

func (s *Store) CreateBook(_ context.Context, b *models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == "" {
		b.ID = newID()
	}
	s.books[b.ID] = copyBook(b)
	return nil
}

func (s *Store) UpdateBook(_ context.Context, b *models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[b.ID]; !ok {
		return catalog.ErrNotFound
	}
	s.books[b.ID] = copyBook(b)
	return nil
}

func (s *Store) DeleteBook(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(s.books, id)
	for _, bi := range s.instances {
		if bi.BookID == id {
			bi.BookID = ""
		}
	}
	return nil
}

func (s *Store) CountBooks(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books), nil
}

// Gatunki i języki

func (s *Store) ListGenres(_ context.Context) ([]*models.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Genre, 0, len(s.genres))
	for _, g := range s.genres {
		c := *g
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateGenre(_ context.Context, g *models.Genre) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g.ID == "" {
		g.ID = newID()
	}
	c := *g
	s.genres[g.ID] = &c
	return nil
}

func (s *Store) ListLanguages(_ context.Context) ([]*models.Language, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Language, 0, len(s.languages))
	for _, l := range s.languages {
		c := *l
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateLanguage(_ context.Context, l *models.Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l.ID == "" {
		l.ID = newID()
	}
	c := *l
	s.languages[l.ID] = &c
	return nil
}

// Egzemplarze

func matches(bi *models.BookInstance, f catalog.InstanceFilter) bool {
	if f.Status != "" && bi.Status != f.Status {
		return false
	}
	if f.BorrowerID != "" && bi.BorrowerID != f.BorrowerID {
		return false
	}
	if f.BookID != "" && bi.BookID != f.BookID {
		return false
	}
	return true
}

func (s *Store) GetBookInstance(_ context.Context, id string) (*models.BookInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bi, ok := s.instances[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return bi.Clone(), nil
}

func (s *Store) ListBookInstances(_ context.Context, filter catalog.InstanceFilter, opts catalog.ListOptions) ([]*models.BookInstance, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []*models.BookInstance
	for _, bi := range s.instances {
		if matches(bi, filter) {
			all = append(all, bi.Clone())
		}
	}
	catalog.SortByDueBack(all)
	return catalog.Window(all, opts), len(all), nil
}

func (s *Store) CountBookInstances(_ context.Context, filter catalog.InstanceFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, bi := range s.instances {
		if matches(bi, filter) {
			n++
		}
	}
	return n, nil
}

func (s *Store) CreateBookInstance(_ context.Context, bi *models.BookInstance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bi.ID == "" {
		bi.ID = newID()
	}
	if bi.Status == "" {
		bi.Status = models.StatusMaintenance
	}
	s.instances[bi.ID] = bi.Clone()
	return nil
}

func (s *Store) SetDueBack(_ context.Context, id string, due civil.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bi, ok := s.instances[id]
	if !ok {
		return catalog.ErrNotFound
	}
	bi.DueBack = &due
	return nil
}

// Użytkownicy

func copyUser(u *models.User) *models.User {
	c := *u
	c.Permissions = append([]models.Permission(nil), u.Permissions...)
	return &c
}

func (s *Store) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return copyUser(u), nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = newID()
	}
	s.users[u.ID] = copyUser(u)
	return nil
}
