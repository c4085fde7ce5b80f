package postgres

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-library/internal/catalog"
	"local-library/internal/models"
)

func render(t *testing.T, b sqlBuilder) string {
	t.Helper()
	query, err := toSQL(b)
	require.NoError(t, err)
	return query
}

func TestSelectInstances_FilterOrderAndWindow(t *testing.T) {
	filter := catalog.InstanceFilter{Status: models.StatusOnLoan, BorrowerID: "user-1"}
	query := render(t, selectInstances(filter, catalog.ListOptions{Offset: 20, Limit: 10}))

	assert.Contains(t, query, `FROM "book_instances"`)
	assert.Contains(t, query, `"status" = 'o'`)
	assert.Contains(t, query, `"borrower_id" = 'user-1'`)
	assert.Contains(t, query, `ORDER BY "due_back" ASC NULLS LAST, "id" ASC`)
	assert.Contains(t, query, "LIMIT 10")
	assert.Contains(t, query, "OFFSET 20")
}

func TestSelectInstances_NoFilterNoWindow(t *testing.T) {
	query := render(t, selectInstances(catalog.InstanceFilter{}, catalog.ListOptions{}))

	assert.NotContains(t, query, "WHERE")
	assert.NotContains(t, query, "LIMIT")
	assert.NotContains(t, query, "OFFSET")
}

func TestCountInstances(t *testing.T) {
	ds := filterInstances(dialect.From(tableInstances), catalog.InstanceFilter{Status: models.StatusAvailable})
	query := render(t, ds.Select(goqu.COUNT(goqu.Star())))

	assert.Contains(t, query, "COUNT(*)")
	assert.Contains(t, query, `"status" = 'a'`)
	assert.NotContains(t, query, "ORDER BY")
}

func TestUpdateDueBack_TouchesOnlyDueBack(t *testing.T) {
	due := civil.Date{Year: 2024, Month: time.March, Day: 29}
	query := render(t, updateDueBack("abc", due))

	assert.Contains(t, query, `UPDATE "book_instances"`)
	assert.Contains(t, query, `"due_back"='2024-03-29'`)
	assert.Contains(t, query, `"id" = 'abc'`)
	assert.NotContains(t, query, "status")
	assert.NotContains(t, query, "borrower_id")
}

func TestSelectAuthors_OrderedByName(t *testing.T) {
	query := render(t, selectAuthors(catalog.ListOptions{Offset: 10, Limit: 10}))

	assert.Contains(t, query, `ORDER BY "last_name" ASC, "first_name" ASC, "id" ASC`)
	assert.Contains(t, query, "LIMIT 10")
	assert.Contains(t, query, "OFFSET 10")
}

func TestBookRecord_EncodesGenresAndNullReferences(t *testing.T) {
	rec, err := bookRecord(&models.Book{
		Title:    "Book Title",
		Summary:  "Summary",
		ISBN:     "1234567890123",
		GenreIDs: []string{"g1", "g2"},
	})
	require.NoError(t, err)

	assert.Equal(t, `["g1","g2"]`, rec["genre_ids"])
	assert.Nil(t, rec["author_id"])
	assert.Nil(t, rec["language_id"])

	query := render(t, dialect.Insert(tableBooks).Rows(rec))
	assert.Contains(t, query, `'["g1","g2"]'`)
	assert.Contains(t, query, "NULL")
}

func TestBookRecord_EmptyGenres(t *testing.T) {
	rec, err := bookRecord(&models.Book{Title: "T"})
	require.NoError(t, err)
	assert.Equal(t, "[]", rec["genre_ids"])
}

func TestAuthorRecord_Dates(t *testing.T) {
	born := civil.Date{Year: 1920, Month: time.January, Day: 2}
	rec := authorRecord(&models.Author{FirstName: "Isaac", LastName: "Asimov", DateOfBirth: &born})

	assert.Equal(t, "1920-01-02", rec["date_of_birth"])
	assert.Nil(t, rec["date_of_death"])
}

func TestSchemaEmbedded(t *testing.T) {
	for _, table := range []string{tableAuthors, tableBooks, tableGenres, tableLanguages, tableInstances, tableUsers} {
		assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, schemaSQL, "ON DELETE SET NULL")
}
