package catalog

import (
	"sort"

	"local-library/internal/models"
)

// SortByDueBack porządkuje egzemplarze rosnąco po terminie zwrotu.
// Egzemplarze bez terminu trafiają na koniec, remisy rozstrzyga ID.
func SortByDueBack(items []*models.BookInstance) {
	sort.SliceStable(items, func(i, j int) bool { return dueBackLess(items[i], items[j]) })
}

func dueBackLess(a, b *models.BookInstance) bool {
	switch {
	case a.DueBack == nil && b.DueBack == nil:
	case a.DueBack == nil:
		return false
	case b.DueBack == nil:
		return true
	case a.DueBack.Before(*b.DueBack):
		return true
	case b.DueBack.Before(*a.DueBack):
		return false
	}
	return a.ID < b.ID
}

// Window wycina z pełnej listy okno opisane przez ListOptions
func Window[T any](items []T, opts ListOptions) []T {
	if opts.Offset >= len(items) {
		return []T{}
	}
	items = items[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	return items
}
