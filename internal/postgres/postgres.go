// Package postgres implementuje magazyn katalogu na PostgreSQL (pgxpool + goqu).
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/civil"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // rejestracja dialektu
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	jsoniter "github.com/json-iterator/go"

	"local-library/internal/catalog"
)

//go:embed schema.sql
var schemaSQL string

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var dialect = goqu.Dialect("postgres")

const (
	tableAuthors   = "authors"
	tableBooks     = "books"
	tableGenres    = "genres"
	tableLanguages = "languages"
	tableInstances = "book_instances"
	tableUsers     = "users"
)

// Store to magazyn katalogu oparty na puli połączeń pgx
type Store struct {
	pool *pgxpool.Pool
}

var (
	_ catalog.Store     = (*Store)(nil)
	_ catalog.UserStore = (*Store)(nil)
)

// New łączy się z bazą wskazaną przez dsn
func New(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("błąd parsowania DATABASE_URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("błąd tworzenia puli połączeń: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("baza danych nie odpowiada: %w", err)
	}

	log.Println("PostgreSQL połączony pomyślnie")
	return &Store{pool: pool}, nil
}

// Close zamyka pulę połączeń
func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema tworzy brakujące tabele
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("błąd tworzenia schematu: %w", err)
	}
	return nil
}

type sqlBuilder interface {
	ToSQL() (string, []interface{}, error)
}

func toSQL(b sqlBuilder) (string, error) {
	query, _, err := b.ToSQL()
	if err != nil {
		return "", fmt.Errorf("błąd budowania zapytania: %w", err)
	}
	return query, nil
}

// exec wykonuje polecenie i zwraca ErrNotFound, gdy nie zmieniono żadnego wiersza
func (s *Store) exec(ctx context.Context, b sqlBuilder, mustAffect bool) error {
	query, err := toSQL(b)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("błąd wykonania zapytania: %w", err)
	}
	if mustAffect && tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *Store) count(ctx context.Context, ds *goqu.SelectDataset) (int, error) {
	query, err := toSQL(ds.Select(goqu.COUNT(goqu.Star())))
	if err != nil {
		return 0, err
	}

	var n int64
	if err := s.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("błąd liczenia rekordów: %w", err)
	}
	return int(n), nil
}

func paginate(ds *goqu.SelectDataset, opts catalog.ListOptions) *goqu.SelectDataset {
	if opts.Offset > 0 {
		ds = ds.Offset(uint(opts.Offset))
	}
	if opts.Limit > 0 {
		ds = ds.Limit(uint(opts.Limit))
	}
	return ds
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.ErrNotFound
	}
	return err
}

// nullable zamienia pusty identyfikator na NULL
func nullable(id string) interface{} {
	if id == "" {
		return nil
	}
	return id
}

func dateValue(d *civil.Date) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}

func scanDate(d pgtype.Date) *civil.Date {
	if !d.Valid {
		return nil
	}
	cd := civil.DateOf(d.Time)
	return &cd
}
