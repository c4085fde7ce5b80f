package memory

import (
	"context"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-library/internal/catalog"
	"local-library/internal/models"
)

func date(day int) *civil.Date {
	d := civil.Date{Year: 2024, Month: 5, Day: day}
	return &d
}

func TestListBookInstances_OrderAndFilter(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, bi := range []*models.BookInstance{
		{ID: "c", DueBack: date(3), Status: models.StatusOnLoan, BorrowerID: "u1"},
		{ID: "a", DueBack: nil, Status: models.StatusOnLoan, BorrowerID: "u1"},
		{ID: "b", DueBack: date(1), Status: models.StatusOnLoan, BorrowerID: "u2"},
		{ID: "d", DueBack: date(3), Status: models.StatusOnLoan, BorrowerID: "u1"},
		{ID: "e", DueBack: date(2), Status: models.StatusAvailable},
	} {
		require.NoError(t, s.CreateBookInstance(ctx, bi))
	}

	all, total, err := s.ListBookInstances(ctx, catalog.InstanceFilter{Status: models.StatusOnLoan}, catalog.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	ids := make([]string, 0, len(all))
	for _, bi := range all {
		ids = append(ids, bi.ID)
	}
	assert.Equal(t, []string{"b", "c", "d", "a"}, ids)

	mine, total, err := s.ListBookInstances(ctx, catalog.InstanceFilter{Status: models.StatusOnLoan, BorrowerID: "u1"}, catalog.ListOptions{Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, mine, 1)
	assert.Equal(t, "d", mine[0].ID)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	bi := &models.BookInstance{DueBack: date(4), Status: models.StatusOnLoan}
	require.NoError(t, s.CreateBookInstance(ctx, bi))
	_, err := uuid.Parse(bi.ID)
	require.NoError(t, err, "instance ids are random UUIDs")

	got, err := s.GetBookInstance(ctx, bi.ID)
	require.NoError(t, err)
	got.DueBack.Day = 20
	got.Status = models.StatusAvailable

	again, err := s.GetBookInstance(ctx, bi.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, again.DueBack.Day)
	assert.Equal(t, models.StatusOnLoan, again.Status)
}

func TestSetDueBack(t *testing.T) {
	s := New()
	ctx := context.Background()

	assert.ErrorIs(t, s.SetDueBack(ctx, "missing", *date(1)), catalog.ErrNotFound)

	bi := &models.BookInstance{Status: models.StatusOnLoan}
	require.NoError(t, s.CreateBookInstance(ctx, bi))
	require.NoError(t, s.SetDueBack(ctx, bi.ID, *date(9)))

	got, err := s.GetBookInstance(ctx, bi.ID)
	require.NoError(t, err)
	assert.Equal(t, *date(9), *got.DueBack)
}

func TestGetUserByEmail_CaseInsensitive(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "Librarian@Example.com"}))

	u, err := s.GetUserByEmail(ctx, "librarian@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Librarian@Example.com", u.Email)

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}
