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

var authorColumns = []interface{}{"id", "first_name", "last_name", "date_of_birth", "date_of_death"}

func authorRecord(a *models.Author) goqu.Record {
	return goqu.Record{
		"first_name":    a.FirstName,
		"last_name":     a.LastName,
		"date_of_birth": dateValue(a.DateOfBirth),
		"date_of_death": dateValue(a.DateOfDeath),
	}
}

func selectAuthors(opts catalog.ListOptions) *goqu.SelectDataset {
	ds := dialect.From(tableAuthors).
		Select(authorColumns...).
		Order(goqu.C("last_name").Asc(), goqu.C("first_name").Asc(), goqu.C("id").Asc())
	return paginate(ds, opts)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuthor(row rowScanner) (*models.Author, error) {
	var (
		a          models.Author
		born, died pgtype.Date
	)
	if err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &born, &died); err != nil {
		return nil, err
	}
	a.DateOfBirth = scanDate(born)
	a.DateOfDeath = scanDate(died)
	return &a, nil
}

func (s *Store) GetAuthor(ctx context.Context, id string) (*models.Author, error) {
	query, err := toSQL(dialect.From(tableAuthors).Select(authorColumns...).Where(goqu.C("id").Eq(id)))
	if err != nil {
		return nil, err
	}

	a, err := scanAuthor(s.pool.QueryRow(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("błąd pobierania autora: %w", notFound(err))
	}
	return a, nil
}

func (s *Store) ListAuthors(ctx context.Context, opts catalog.ListOptions) ([]*models.Author, int, error) {
	total, err := s.CountAuthors(ctx)
	if err != nil {
		return nil, 0, err
	}

	query, err := toSQL(selectAuthors(opts))
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("błąd pobierania autorów: %w", err)
	}
	defer rows.Close()

	var authors []*models.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("błąd parsowania autora: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("błąd iteracji po autorach: %w", err)
	}
	return authors, total, nil
}

func (s *Store) CreateAuthor(ctx context.Context, a *models.Author) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	rec := authorRecord(a)
	rec["id"] = a.ID

	if err := s.exec(ctx, dialect.Insert(tableAuthors).Rows(rec), false); err != nil {
		return fmt.Errorf("błąd zapisywania autora: %w", err)
	}
	return nil
}

func (s *Store) UpdateAuthor(ctx context.Context, a *models.Author) error {
	ds := dialect.Update(tableAuthors).Set(authorRecord(a)).Where(goqu.C("id").Eq(a.ID))
	if err := s.exec(ctx, ds, true); err != nil {
		return fmt.Errorf("błąd aktualizacji autora: %w", err)
	}
	return nil
}

// DeleteAuthor usuwa autora; books.author_id czyści klucz obcy ON DELETE SET NULL
func (s *Store) DeleteAuthor(ctx context.Context, id string) error {
	if err := s.exec(ctx, dialect.Delete(tableAuthors).Where(goqu.C("id").Eq(id)), true); err != nil {
		return fmt.Errorf("błąd usuwania autora: %w", err)
	}
	return nil
}

func (s *Store) CountAuthors(ctx context.Context) (int, error) {
	return s.count(ctx, dialect.From(tableAuthors))
}
