package postgres

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"local-library/internal/catalog"
	"local-library/internal/models"
)

var instanceColumns = []interface{}{"id", "book_id", "imprint", "due_back", "status", "borrower_id"}

func filterInstances(ds *goqu.SelectDataset, filter catalog.InstanceFilter) *goqu.SelectDataset {
	ex := goqu.Ex{}
	if filter.Status != "" {
		ex["status"] = string(filter.Status)
	}
	if filter.BorrowerID != "" {
		ex["borrower_id"] = filter.BorrowerID
	}
	if filter.BookID != "" {
		ex["book_id"] = filter.BookID
	}
	if len(ex) == 0 {
		return ds
	}
	return ds.Where(ex)
}

// selectInstances sortuje po terminie zwrotu (brak terminu na końcu), remisy po id
func selectInstances(filter catalog.InstanceFilter, opts catalog.ListOptions) *goqu.SelectDataset {
	ds := dialect.From(tableInstances).
		Select(instanceColumns...).
		Order(goqu.C("due_back").Asc().NullsLast(), goqu.C("id").Asc())
	return paginate(filterInstances(ds, filter), opts)
}

func updateDueBack(id string, due civil.Date) *goqu.UpdateDataset {
	return dialect.Update(tableInstances).
		Set(goqu.Record{"due_back": due.String()}).
		Where(goqu.C("id").Eq(id))
}

func scanInstance(row rowScanner) (*models.BookInstance, error) {
	var (
		bi               models.BookInstance
		bookID, borrower pgtype.Text
		due              pgtype.Date
		status           string
	)
	if err := row.Scan(&bi.ID, &bookID, &bi.Imprint, &due, &status, &borrower); err != nil {
		return nil, err
	}
	bi.BookID = bookID.String
	bi.BorrowerID = borrower.String
	bi.DueBack = scanDate(due)
	bi.Status = models.LoanStatus(status)
	return &bi, nil
}

func (s *Store) GetBookInstance(ctx context.Context, id string) (*models.BookInstance, error) {
	query, err := toSQL(dialect.From(tableInstances).Select(instanceColumns...).Where(goqu.C("id").Eq(id)))
	if err != nil {
		return nil, err
	}

	bi, err := scanInstance(s.pool.QueryRow(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("błąd pobierania egzemplarza: %w", notFound(err))
	}
	return bi, nil
}

func (s *Store) ListBookInstances(ctx context.Context, filter catalog.InstanceFilter, opts catalog.ListOptions) ([]*models.BookInstance, int, error) {
	total, err := s.CountBookInstances(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	query, err := toSQL(selectInstances(filter, opts))
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("błąd pobierania egzemplarzy: %w", err)
	}
	defer rows.Close()

	var instances []*models.BookInstance
	for rows.Next() {
		bi, err := scanInstance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("błąd parsowania egzemplarza: %w", err)
		}
		instances = append(instances, bi)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("błąd iteracji po egzemplarzach: %w", err)
	}
	return instances, total, nil
}

func (s *Store) CountBookInstances(ctx context.Context, filter catalog.InstanceFilter) (int, error) {
	return s.count(ctx, filterInstances(dialect.From(tableInstances), filter))
}

func (s *Store) CreateBookInstance(ctx context.Context, bi *models.BookInstance) error {
	if bi.ID == "" {
		bi.ID = uuid.NewString()
	}
	if bi.Status == "" {
		bi.Status = models.StatusMaintenance
	}

	ds := dialect.Insert(tableInstances).Rows(goqu.Record{
		"id":          bi.ID,
		"book_id":     nullable(bi.BookID),
		"imprint":     bi.Imprint,
		"due_back":    dateValue(bi.DueBack),
		"status":      string(bi.Status),
		"borrower_id": nullable(bi.BorrowerID),
	})
	if err := s.exec(ctx, ds, false); err != nil {
		return fmt.Errorf("błąd zapisywania egzemplarza: %w", err)
	}
	return nil
}

// SetDueBack zmienia wyłącznie kolumnę due_back
func (s *Store) SetDueBack(ctx context.Context, id string, due civil.Date) error {
	if err := s.exec(ctx, updateDueBack(id, due), true); err != nil {
		return fmt.Errorf("błąd aktualizacji terminu zwrotu: %w", err)
	}
	return nil
}
