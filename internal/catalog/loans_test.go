package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-library/internal/catalog"
	"local-library/internal/models"
)

// seedCopies tworzy 30 egzemplarzy na przemian dla user1 i user2
func seedCopies(t *testing.T, f *fixture, status func(i int) models.LoanStatus) {
	t.Helper()
	for i := 0; i < 30; i++ {
		borrower := f.user2
		if i%2 == 1 {
			borrower = f.user1
		}
		f.addInstance(t, status(i), borrower, i%5)
	}
}

func assertSortedByDueBack(t *testing.T, items []*models.BookInstance) {
	t.Helper()
	for i := 1; i < len(items); i++ {
		require.NotNil(t, items[i].DueBack)
		assert.False(t, items[i].DueBack.Before(*items[i-1].DueBack), "item %d is due before item %d", i, i-1)
	}
}

func TestListOnLoanForUser_RequiresAuthentication(t *testing.T) {
	f := newFixture(t)
	svc := catalog.NewLoanService(f.store, f.store, catalog.FixedClock(today))

	_, err := svc.ListOnLoanForUser(context.Background(), catalog.Anonymous(), 1)
	assert.ErrorIs(t, err, catalog.ErrUnauthorized)
}

func TestListOnLoanForUser_EmptyWhenNothingOnLoan(t *testing.T) {
	f := newFixture(t)
	seedCopies(t, f, func(int) models.LoanStatus { return models.StatusMaintenance })
	svc := catalog.NewLoanService(f.store, f.store, catalog.FixedClock(today))

	page, err := svc.ListOnLoanForUser(context.Background(), principal(f.user1), 1)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.IsPaginated)
}

func TestListOnLoanForUser_OnlyOwnOnLoanCopies(t *testing.T) {
	f := newFixture(t)
	// pierwsze 10 egzemplarzy wypożyczone, reszta w naprawie
	seedCopies(t, f, func(i int) models.LoanStatus {
		if i < 10 {
			return models.StatusOnLoan
		}
		return models.StatusMaintenance
	})
	svc := catalog.NewLoanService(f.store, f.store, catalog.FixedClock(today))

	for _, u := range []*models.User{f.user1, f.user2} {
		page, err := svc.ListOnLoanForUser(context.Background(), principal(u), 1)
		require.NoError(t, err)
		assert.Len(t, page.Items, 5)
		for _, bi := range page.Items {
			assert.Equal(t, u.ID, bi.BorrowerID)
			assert.Equal(t, models.StatusOnLoan, bi.Status)
		}
	}
}

func TestListOnLoanForUser_OrderedByDueDateAndPaginated(t *testing.T) {
	f := newFixture(t)
	seedCopies(t, f, func(int) models.LoanStatus { return models.StatusOnLoan })
	svc := catalog.NewLoanService(f.store, f.store, catalog.FixedClock(today))

	page, err := svc.ListOnLoanForUser(context.Background(), principal(f.user1), 1)
	require.NoError(t, err)
	assert.Len(t, page.Items, catalog.PageSize)
	assert.True(t, page.IsPaginated)
	assert.Equal(t, 15, page.TotalCount)
	assertSortedByDueBack(t, page.Items)

	second, err := svc.ListOnLoanForUser(context.Background(), principal(f.user1), 2)
	require.NoError(t, err)
	assert.Len(t, second.Items, 5)
	assert.False(t, second.Items[0].DueBack.Before(*page.Items[len(page.Items)-1].DueBack))
}

func TestListAllOnLoan_Guards(t *testing.T) {
	f := newFixture(t)
	svc := catalog.NewLoanService(f.store, f.store, catalog.FixedClock(today))

	_, err := svc.ListAllOnLoan(context.Background(), catalog.Anonymous(), 1)
	assert.ErrorIs(t, err, catalog.ErrUnauthorized)

	_, err = svc.ListAllOnLoan(context.Background(), principal(f.user1), 1)
	assert.ErrorIs(t, err, catalog.ErrForbidden)
}

func TestListAllOnLoan_AllBorrowersSorted(t *testing.T) {
	f := newFixture(t)
	seedCopies(t, f, func(i int) models.LoanStatus {
		if i%3 == 0 {
			return models.StatusAvailable
		}
		return models.StatusOnLoan
	})
	svc := catalog.NewLoanService(f.store, f.store, catalog.FixedClock(today))

	var all []*models.BookInstance
	for n := 1; ; n++ {
		page, err := svc.ListAllOnLoan(context.Background(), principal(f.librarian), n)
		require.NoError(t, err)
		all = append(all, page.Items...)
		if !page.HasNext() {
			break
		}
	}

	assert.Len(t, all, 20)
	for _, bi := range all {
		assert.Equal(t, models.StatusOnLoan, bi.Status)
	}
	assertSortedByDueBack(t, all)
}

func TestListAllOnLoan_PageOutOfRange(t *testing.T) {
	f := newFixture(t)
	f.addInstance(t, models.StatusOnLoan, f.user1, 3)
	svc := catalog.NewLoanService(f.store, f.store, catalog.FixedClock(today))

	_, err := svc.ListAllOnLoan(context.Background(), principal(f.librarian), 2)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestDescribe_AddsTitleBorrowerAndOverdue(t *testing.T) {
	f := newFixture(t)
	late := f.addInstance(t, models.StatusOnLoan, f.user1, -2)
	svc := catalog.NewLoanService(f.store, f.store, catalog.FixedClock(today))

	views, err := svc.Describe(context.Background(), []*models.BookInstance{late})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Book Title", views[0].BookTitle)
	assert.Equal(t, f.user1.FullName(), views[0].Borrower)
	assert.True(t, views[0].IsOverdue)
}
