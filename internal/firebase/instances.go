package firebase

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"local-library/internal/catalog"
	"local-library/internal/models"
)

const (
	// InstancesCollection to nazwa kolekcji egzemplarzy w Firestore
	InstancesCollection = "book_instances"
)

// instanceDoc to zapis egzemplarza w Firestore
type instanceDoc struct {
	BookID     string     `firestore:"book_id"`
	Imprint    string     `firestore:"imprint"`
	DueBack    *time.Time `firestore:"due_back"`
	Status     string     `firestore:"status"`
	BorrowerID string     `firestore:"borrower_id"`
}

func fromInstanceDoc(id string, d instanceDoc) *models.BookInstance {
	return &models.BookInstance{
		ID:         id,
		BookID:     d.BookID,
		Imprint:    d.Imprint,
		DueBack:    timeToDate(d.DueBack),
		Status:     models.LoanStatus(d.Status),
		BorrowerID: d.BorrowerID,
	}
}

// GetBookInstance pobiera egzemplarz po ID
func (c *Client) GetBookInstance(ctx context.Context, id string) (*models.BookInstance, error) {
	if id == "" {
		return nil, catalog.ErrNotFound
	}

	doc, err := c.Firestore.Collection(InstancesCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("błąd pobierania egzemplarza: %w", notFound(err))
	}

	var d instanceDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, fmt.Errorf("błąd parsowania danych egzemplarza: %w", err)
	}
	return fromInstanceDoc(doc.Ref.ID, d), nil
}

// CreateBookInstance tworzy egzemplarz; ID to zawsze losowy UUID
func (c *Client) CreateBookInstance(ctx context.Context, bi *models.BookInstance) error {
	if bi.ID == "" {
		bi.ID = uuid.NewString()
	}
	if bi.Status == "" {
		bi.Status = models.StatusMaintenance
	}

	d := instanceDoc{
		BookID:     bi.BookID,
		Imprint:    bi.Imprint,
		DueBack:    dateToTime(bi.DueBack),
		Status:     string(bi.Status),
		BorrowerID: bi.BorrowerID,
	}
	if _, err := c.Firestore.Collection(InstancesCollection).Doc(bi.ID).Set(ctx, d); err != nil {
		return fmt.Errorf("błąd zapisywania egzemplarza: %w", err)
	}
	return nil
}

// SetDueBack aktualizuje tylko pole due_back
func (c *Client) SetDueBack(ctx context.Context, id string, due civil.Date) error {
	_, err := c.Firestore.Collection(InstancesCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "due_back", Value: due.In(time.UTC)},
	})
	if err != nil {
		return fmt.Errorf("błąd aktualizacji terminu zwrotu: %w", notFound(err))
	}
	return nil
}

func (c *Client) instanceQuery(filter catalog.InstanceFilter) firestore.Query {
	query := c.Firestore.Collection(InstancesCollection).Query
	if filter.Status != "" {
		query = query.Where("status", "==", string(filter.Status))
	}
	if filter.BorrowerID != "" {
		query = query.Where("borrower_id", "==", filter.BorrowerID)
	}
	if filter.BookID != "" {
		query = query.Where("book_id", "==", filter.BookID)
	}
	return query
}

// ListBookInstances pobiera egzemplarze pasujące do filtra.
// Firestore sortuje null przed datami, więc sortowanie i okno liczymy po stronie aplikacji.
func (c *Client) ListBookInstances(ctx context.Context, filter catalog.InstanceFilter, opts catalog.ListOptions) ([]*models.BookInstance, int, error) {
	docs, err := c.instanceQuery(filter).Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, fmt.Errorf("błąd pobierania egzemplarzy: %w", err)
	}

	instances := make([]*models.BookInstance, 0, len(docs))
	for _, doc := range docs {
		var d instanceDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, 0, fmt.Errorf("błąd parsowania egzemplarza: %w", err)
		}
		instances = append(instances, fromInstanceDoc(doc.Ref.ID, d))
	}

	catalog.SortByDueBack(instances)
	return catalog.Window(instances, opts), len(instances), nil
}

// CountBookInstances zwraca liczbę egzemplarzy pasujących do filtra
func (c *Client) CountBookInstances(ctx context.Context, filter catalog.InstanceFilter) (int, error) {
	docs, err := c.instanceQuery(filter).Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("błąd liczenia egzemplarzy: %w", err)
	}
	return len(docs), nil
}
