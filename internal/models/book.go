package models

// Book reprezentuje tytuł w katalogu (nie konkretny egzemplarz)
type Book struct {
	ID         string   `json:"id" firestore:"id"`
	Title      string   `json:"title" firestore:"title" validate:"required,max=200"`
	Summary    string   `json:"summary" firestore:"summary" validate:"required,max=1000"`
	ISBN       string   `json:"isbn" firestore:"isbn" validate:"required,max=13"`
	AuthorID   string   `json:"author_id" firestore:"author_id"`
	GenreIDs   []string `json:"genre_ids" firestore:"genre_ids"`
	LanguageID string   `json:"language_id" firestore:"language_id"`
}

// HasGenre sprawdza czy książka należy do danego gatunku
func (b *Book) HasGenre(genreID string) bool {
	for _, id := range b.GenreIDs {
		if id == genreID {
			return true
		}
	}
	return false
}

// Genre to gatunek literacki
type Genre struct {
	ID   string `json:"id" firestore:"id"`
	Name string `json:"name" firestore:"name" validate:"required,max=200"`
}

// Language to język, w którym wydano książkę
type Language struct {
	ID   string `json:"id" firestore:"id"`
	Name string `json:"name" firestore:"name" validate:"required,max=200"`
}
