package catalog_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"local-library/internal/catalog"
	"local-library/internal/models"
	"local-library/internal/store/memory"
)

type fixture struct {
	store     *memory.Store
	book      *models.Book
	user1     *models.User
	user2     *models.User
	librarian *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := memory.New()

	author := &models.Author{FirstName: "John", LastName: "Smith"}
	require.NoError(t, st.CreateAuthor(ctx, author))
	genre := &models.Genre{Name: "Fantasy"}
	require.NoError(t, st.CreateGenre(ctx, genre))
	lang := &models.Language{Name: "English"}
	require.NoError(t, st.CreateLanguage(ctx, lang))

	book := &models.Book{
		Title:      "Book Title",
		Summary:    "My book summary",
		ISBN:       "ABCDEFG",
		AuthorID:   author.ID,
		GenreIDs:   []string{genre.ID},
		LanguageID: lang.ID,
	}
	require.NoError(t, st.CreateBook(ctx, book))

	f := &fixture{store: st, book: book}
	f.user1 = f.addUser(t, "testuser1@example.com")
	f.user2 = f.addUser(t, "testuser2@example.com")
	f.librarian = f.addUser(t, "librarian@example.com", models.AllPermissions()...)
	return f
}

func (f *fixture) addUser(t *testing.T, email string, perms ...models.Permission) *models.User {
	t.Helper()
	u := &models.User{Email: email, FirstName: "Test", LastName: email, IsActive: true, Permissions: perms}
	require.NoError(t, f.store.CreateUser(context.Background(), u))
	return u
}

func (f *fixture) addInstance(t *testing.T, status models.LoanStatus, borrower *models.User, dueOffset int) *models.BookInstance {
	t.Helper()
	due := today.AddDays(dueOffset)
	bi := &models.BookInstance{
		BookID:  f.book.ID,
		Imprint: "Unlikely Imprint, 2016",
		DueBack: &due,
		Status:  status,
	}
	if borrower != nil {
		bi.BorrowerID = borrower.ID
	}
	require.NoError(t, f.store.CreateBookInstance(context.Background(), bi))
	return bi
}

func (f *fixture) addAuthors(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, f.store.CreateAuthor(context.Background(), &models.Author{
			FirstName: fmt.Sprintf("Christina %d", i),
			LastName:  fmt.Sprintf("Surname %d", i),
		}))
	}
}

func principal(u *models.User) catalog.Principal {
	return catalog.PrincipalFor(u)
}
