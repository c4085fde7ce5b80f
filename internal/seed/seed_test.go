package seed

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-library/internal/catalog"
	"local-library/internal/models"
	"local-library/internal/store/memory"
)

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	today := civil.Date{Year: 2024, Month: time.March, Day: 15}

	res, err := Catalog(ctx, store, today, "reader-1")
	require.NoError(t, err)

	assert.Equal(t, len(books), res.Books)
	assert.Equal(t, len(books), res.Authors)

	total := 0
	for _, b := range books {
		total += b.Copies
	}
	assert.Equal(t, total, res.Instances)

	onLoan, err := store.CountBookInstances(ctx, catalog.InstanceFilter{Status: models.StatusOnLoan, BorrowerID: "reader-1"})
	require.NoError(t, err)
	assert.Equal(t, (total+2)/3, onLoan)

	genres, err := store.ListGenres(ctx)
	require.NoError(t, err)
	assert.Len(t, genres, 5)
}

func TestCatalog_NoBorrower(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	_, err := Catalog(ctx, store, civil.Date{Year: 2024, Month: time.March, Day: 15}, "")
	require.NoError(t, err)

	onLoan, err := store.CountBookInstances(ctx, catalog.InstanceFilter{Status: models.StatusOnLoan})
	require.NoError(t, err)
	assert.Zero(t, onLoan)
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Yuval Noah Harari")
	assert.Equal(t, "Yuval Noah", first)
	assert.Equal(t, "Harari", last)

	first, last = splitName("Homer")
	assert.Equal(t, "Homer", first)
	assert.Equal(t, "Homer", last)
}
