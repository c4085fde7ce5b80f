package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-library/internal/catalog"
	"local-library/internal/models"
)

func TestAuthorCreate_RequiresNames(t *testing.T) {
	f := newFixture(t)
	svc := catalog.NewAuthorService(f.store, nil)

	err := svc.Create(context.Background(), principal(f.librarian), &models.Author{FirstName: "  "})

	var verrs catalog.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "This field is required.", verrs["first_name"])
	assert.Equal(t, "This field is required.", verrs["last_name"])
}

func TestAuthorCreateUpdateDelete(t *testing.T) {
	f := newFixture(t)
	svc := catalog.NewAuthorService(f.store, nil)
	ctx := context.Background()
	p := principal(f.librarian)

	born := today.AddDays(-365 * 60)
	a := &models.Author{FirstName: "Ursula", LastName: "Le Guin", DateOfBirth: &born}
	require.NoError(t, svc.Create(ctx, p, a))
	require.NotEmpty(t, a.ID)

	a.LastName = "K. Le Guin"
	require.NoError(t, svc.Update(ctx, p, a))
	got, err := svc.Get(ctx, p, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "K. Le Guin", got.LastName)
	assert.Equal(t, born, *got.DateOfBirth)

	require.NoError(t, svc.Delete(ctx, p, a.ID))
	_, err = f.store.GetAuthor(ctx, a.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestAuthorDelete_ClearsBookReference(t *testing.T) {
	f := newFixture(t)
	svc := catalog.NewAuthorService(f.store, nil)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, principal(f.librarian), f.book.AuthorID))

	book, err := f.store.GetBook(ctx, f.book.ID)
	require.NoError(t, err)
	assert.Empty(t, book.AuthorID)
}

func TestAuthorUpdate_Unknown(t *testing.T) {
	f := newFixture(t)
	svc := catalog.NewAuthorService(f.store, nil)

	err := svc.Update(context.Background(), principal(f.librarian), &models.Author{ID: "missing", FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestCRUD_RequiresManageCatalog(t *testing.T) {
	f := newFixture(t)
	authors := catalog.NewAuthorService(f.store, nil)
	books := catalog.NewBookService(f.store, nil)
	ctx := context.Background()

	assert.ErrorIs(t, authors.Create(ctx, catalog.Anonymous(), &models.Author{FirstName: "A", LastName: "B"}), catalog.ErrUnauthorized)
	assert.ErrorIs(t, authors.Delete(ctx, principal(f.user1), f.book.AuthorID), catalog.ErrForbidden)
	assert.ErrorIs(t, books.Delete(ctx, principal(f.user1), f.book.ID), catalog.ErrForbidden)

	n, err := f.store.CountAuthors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBookCreate_Validation(t *testing.T) {
	f := newFixture(t)
	svc := catalog.NewBookService(f.store, nil)

	err := svc.Create(context.Background(), principal(f.librarian), &models.Book{
		Title:      "No summary",
		ISBN:       "97800000000001",
		AuthorID:   "nobody",
		GenreIDs:   []string{"nope"},
		LanguageID: "klingon",
	})

	var verrs catalog.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "This field is required.", verrs["summary"])
	assert.Equal(t, "Ensure this value has at most 13 characters.", verrs["isbn"])
	assert.Equal(t, "Select a valid choice.", verrs["author_id"])
	assert.Equal(t, "Select a valid choice.", verrs["genre_ids"])
	assert.Equal(t, "Select a valid choice.", verrs["language_id"])
	assert.NotContains(t, verrs, "title")
}

func TestBookCreateUpdateDelete(t *testing.T) {
	f := newFixture(t)
	svc := catalog.NewBookService(f.store, nil)
	ctx := context.Background()
	p := principal(f.librarian)

	b := &models.Book{
		Title:      "A Wizard of Earthsea",
		Summary:    "A young wizard.",
		ISBN:       "9780547773742",
		AuthorID:   f.book.AuthorID,
		GenreIDs:   f.book.GenreIDs,
		LanguageID: f.book.LanguageID,
	}
	require.NoError(t, svc.Create(ctx, p, b))
	require.NotEmpty(t, b.ID)

	b.Summary = "A young wizard learns his true name."
	require.NoError(t, svc.Update(ctx, p, b))
	got, err := svc.Get(ctx, p, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Summary, got.Summary)

	bi := &models.BookInstance{BookID: b.ID, Status: models.StatusAvailable}
	require.NoError(t, f.store.CreateBookInstance(ctx, bi))

	require.NoError(t, svc.Delete(ctx, p, b.ID))
	_, err = f.store.GetBook(ctx, b.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	orphan, err := f.store.GetBookInstance(ctx, bi.ID)
	require.NoError(t, err)
	assert.Empty(t, orphan.BookID)
}

func TestBookFormOptions(t *testing.T) {
	f := newFixture(t)
	svc := catalog.NewBookService(f.store, nil)

	opts, err := svc.FormOptions(context.Background())
	require.NoError(t, err)
	assert.Len(t, opts.Authors, 1)
	assert.Len(t, opts.Genres, 1)
	assert.Len(t, opts.Languages, 1)
}
