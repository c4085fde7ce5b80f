package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"local-library/internal/catalog"
	"local-library/internal/models"
)

var bookColumns = []interface{}{"id", "title", "summary", "isbn", "author_id", "genre_ids", "language_id"}

func bookRecord(b *models.Book) (goqu.Record, error) {
	genres := b.GenreIDs
	if genres == nil {
		genres = []string{}
	}
	encoded, err := json.Marshal(genres)
	if err != nil {
		return nil, fmt.Errorf("błąd kodowania gatunków: %w", err)
	}

	return goqu.Record{
		"title":       b.Title,
		"summary":     b.Summary,
		"isbn":        b.ISBN,
		"author_id":   nullable(b.AuthorID),
		"genre_ids":   string(encoded),
		"language_id": nullable(b.LanguageID),
	}, nil
}

func selectBooks() *goqu.SelectDataset {
	return dialect.From(tableBooks).
		Select(bookColumns...).
		Order(goqu.Func("LOWER", goqu.C("title")).Asc(), goqu.C("id").Asc())
}

func scanBook(row rowScanner) (*models.Book, error) {
	var (
		b                  models.Book
		authorID, language pgtype.Text
		genres             []byte
	)
	if err := row.Scan(&b.ID, &b.Title, &b.Summary, &b.ISBN, &authorID, &genres, &language); err != nil {
		return nil, err
	}
	b.AuthorID = authorID.String
	b.LanguageID = language.String

	if len(genres) > 0 {
		if err := json.Unmarshal(genres, &b.GenreIDs); err != nil {
			return nil, fmt.Errorf("błąd dekodowania gatunków: %w", err)
		}
	}
	return &b, nil
}

func (s *Store) queryBooks(ctx context.Context, ds *goqu.SelectDataset) ([]*models.Book, error) {
	query, err := toSQL(ds)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("błąd pobierania książek: %w", err)
	}
	defer rows.Close()

	var books []*models.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("błąd parsowania książki: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("błąd iteracji po książkach: %w", err)
	}
	return books, nil
}

func (s *Store) GetBook(ctx context.Context, id string) (*models.Book, error) {
	query, err := toSQL(dialect.From(tableBooks).Select(bookColumns...).Where(goqu.C("id").Eq(id)))
	if err != nil {
		return nil, err
	}

	b, err := scanBook(s.pool.QueryRow(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("błąd pobierania książki: %w", notFound(err))
	}
	return b, nil
}

func (s *Store) ListBooks(ctx context.Context, opts catalog.ListOptions) ([]*models.Book, int, error) {
	total, err := s.CountBooks(ctx)
	if err != nil {
		return nil, 0, err
	}

	books, err := s.queryBooks(ctx, paginate(selectBooks(), opts))
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (s *Store) ListBooksByAuthor(ctx context.Context, authorID string) ([]*models.Book, error) {
	return s.queryBooks(ctx, selectBooks().Where(goqu.C("author_id").Eq(authorID)))
}

func (s *Store) CreateBook(ctx context.Context, b *models.Book) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	rec, err := bookRecord(b)
	if err != nil {
		return err
	}
	rec["id"] = b.ID

	if err := s.exec(ctx, dialect.Insert(tableBooks).Rows(rec), false); err != nil {
		return fmt.Errorf("błąd zapisywania książki: %w", err)
	}
	return nil
}

func (s *Store) UpdateBook(ctx context.Context, b *models.Book) error {
	rec, err := bookRecord(b)
	if err != nil {
		return err
	}

	ds := dialect.Update(tableBooks).Set(rec).Where(goqu.C("id").Eq(b.ID))
	if err := s.exec(ctx, ds, true); err != nil {
		return fmt.Errorf("błąd aktualizacji książki: %w", err)
	}
	return nil
}

// DeleteBook usuwa książkę; book_instances.book_id czyści klucz obcy ON DELETE SET NULL
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	if err := s.exec(ctx, dialect.Delete(tableBooks).Where(goqu.C("id").Eq(id)), true); err != nil {
		return fmt.Errorf("błąd usuwania książki: %w", err)
	}
	return nil
}

func (s *Store) CountBooks(ctx context.Context) (int, error) {
	return s.count(ctx, dialect.From(tableBooks))
}

// Gatunki i języki

func (s *Store) listNamed(ctx context.Context, table string) ([][2]string, error) {
	query, err := toSQL(dialect.From(table).Select("id", "name").Order(goqu.C("name").Asc()))
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("błąd pobierania %s: %w", table, err)
	}
	defer rows.Close()

	var out [][2]string
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("błąd parsowania %s: %w", table, err)
		}
		out = append(out, [2]string{id, name})
	}
	return out, rows.Err()
}

func (s *Store) ListGenres(ctx context.Context) ([]*models.Genre, error) {
	named, err := s.listNamed(ctx, tableGenres)
	if err != nil {
		return nil, err
	}
	genres := make([]*models.Genre, 0, len(named))
	for _, n := range named {
		genres = append(genres, &models.Genre{ID: n[0], Name: n[1]})
	}
	return genres, nil
}

func (s *Store) CreateGenre(ctx context.Context, g *models.Genre) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	ds := dialect.Insert(tableGenres).Rows(goqu.Record{"id": g.ID, "name": g.Name})
	if err := s.exec(ctx, ds, false); err != nil {
		return fmt.Errorf("błąd zapisywania gatunku: %w", err)
	}
	return nil
}

func (s *Store) ListLanguages(ctx context.Context) ([]*models.Language, error) {
	named, err := s.listNamed(ctx, tableLanguages)
	if err != nil {
		return nil, err
	}
	languages := make([]*models.Language, 0, len(named))
	for _, n := range named {
		languages = append(languages, &models.Language{ID: n[0], Name: n[1]})
	}
	return languages, nil
}

func (s *Store) CreateLanguage(ctx context.Context, l *models.Language) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	ds := dialect.Insert(tableLanguages).Rows(goqu.Record{"id": l.ID, "name": l.Name})
	if err := s.exec(ctx, ds, false); err != nil {
		return fmt.Errorf("błąd zapisywania języka: %w", err)
	}
	return nil
}
