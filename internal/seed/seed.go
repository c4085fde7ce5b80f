// Package seed wypełnia magazyn przykładowym katalogiem.
package seed

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/civil"

	"local-library/internal/catalog"
	"local-library/internal/models"
)

type bookSeed struct {
	ISBN     string
	Title    string
	Author   string // "Imię Nazwisko"
	Genre    string
	Language string
	Summary  string
	Copies   int
}

var books = []bookSeed{
	{"9788380324648", "Wiedźmin: Ostatnie życzenie", "Andrzej Sapkowski", "Fantasy", "Polski",
		"Zbiór opowiadań o wiedźminie Geralcie z Rivii, łowcy potworów. Pierwsza książka w słynnej serii fantasy.", 3},
	{"9788324014555", "Zbrodnia i kara", "Fiodor Dostojewski", "Klasyka", "Polski",
		"Psychologiczna powieść o studencie Rodionie Raskolnikowie, który popełnia morderstwo i zmaga się z konsekwencjami swojego czynu.", 2},
	{"9788376863204", "Sapiens: Od zwierząt do bogów", "Yuval Noah Harari", "Popularnonaukowa", "Polski",
		"Historia ludzkości od czasów prehistorycznych po współczesność, analizująca rozwój Homo sapiens.", 4},
	{"9788378855858", "Rok 1984", "George Orwell", "Science Fiction", "Polski",
		"Dystopijny obraz totalitarnego społeczeństwa przyszłości, w którym rząd inwigiluje każdy aspekt życia obywateli.", 2},
	{"9788324045320", "Harry Potter i Kamień Filozoficzny", "J.K. Rowling", "Fantasy", "Polski",
		"Pierwsza część serii o młodym czarodzieju i jego przygodach w Szkole Magii i Czarodziejstwa Hogwart.", 5},
	{"9788375066513", "Władca Pierścieni: Drużyna Pierścienia", "J.R.R. Tolkien", "Fantasy", "Polski",
		"Pierwsza część epickiej trylogii fantasy o wyprawie mającej na celu zniszczenie Pierścienia Mocy.", 3},
	{"9788324058962", "Mistrz i Małgorzata", "Michaił Bułhakow", "Klasyka", "Polski",
		"Satyryczna powieść łącząca realia sowieckiej Moskwy lat 30. z opowieścią o Piłacie.", 2},
	{"9788381005670", "Thinking, Fast and Slow", "Daniel Kahneman", "Psychologia", "English",
		"Analiza dwóch systemów myślenia: szybkiego, intuicyjnego i wolnego, analitycznego.", 2},
}

// Result podsumowuje dodane rekordy
type Result struct {
	Authors   int
	Books     int
	Instances int
}

// Catalog dodaje autorów, gatunki, języki, książki i egzemplarze.
// Co trzeci egzemplarz jest wypożyczony przez borrowerID (jeśli podany) z terminem zwrotu względem today.
func Catalog(ctx context.Context, store catalog.Store, today civil.Date, borrowerID string) (*Result, error) {
	res := &Result{}
	authors := make(map[string]string)
	genres := make(map[string]string)
	languages := make(map[string]string)

	for _, s := range books {
		authorID, ok := authors[s.Author]
		if !ok {
			first, last := splitName(s.Author)
			a := &models.Author{FirstName: first, LastName: last}
			if err := store.CreateAuthor(ctx, a); err != nil {
				return res, fmt.Errorf("błąd dodawania autora '%s': %w", s.Author, err)
			}
			authorID = a.ID
			authors[s.Author] = authorID
			res.Authors++
		}

		genreID, ok := genres[s.Genre]
		if !ok {
			g := &models.Genre{Name: s.Genre}
			if err := store.CreateGenre(ctx, g); err != nil {
				return res, fmt.Errorf("błąd dodawania gatunku '%s': %w", s.Genre, err)
			}
			genreID = g.ID
			genres[s.Genre] = genreID
		}

		languageID, ok := languages[s.Language]
		if !ok {
			l := &models.Language{Name: s.Language}
			if err := store.CreateLanguage(ctx, l); err != nil {
				return res, fmt.Errorf("błąd dodawania języka '%s': %w", s.Language, err)
			}
			languageID = l.ID
			languages[s.Language] = languageID
		}

		book := &models.Book{
			Title:      s.Title,
			Summary:    s.Summary,
			ISBN:       s.ISBN,
			AuthorID:   authorID,
			GenreIDs:   []string{genreID},
			LanguageID: languageID,
		}
		if err := store.CreateBook(ctx, book); err != nil {
			return res, fmt.Errorf("błąd dodawania książki '%s': %w", s.Title, err)
		}
		res.Books++
		log.Printf("✓ Dodano: %s - %s", s.Title, s.Author)

		for i := 0; i < s.Copies; i++ {
			bi := &models.BookInstance{
				BookID:  book.ID,
				Imprint: fmt.Sprintf("Wydanie %d", i+1),
				Status:  models.StatusAvailable,
			}
			if borrowerID != "" && (res.Instances%3) == 0 {
				due := today.AddDays(res.Instances%20 - 5)
				bi.Status = models.StatusOnLoan
				bi.BorrowerID = borrowerID
				bi.DueBack = &due
			}
			if err := store.CreateBookInstance(ctx, bi); err != nil {
				return res, fmt.Errorf("błąd dodawania egzemplarza '%s': %w", s.Title, err)
			}
			res.Instances++
		}
	}

	return res, nil
}

// splitName dzieli "Imię Drugie Nazwisko" na imiona i nazwisko
func splitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	i := strings.LastIndex(full, " ")
	if i < 0 {
		return full, full
	}
	return full[:i], full[i+1:]
}
