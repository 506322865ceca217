package app

import (
	"cmp"
	"slices"
	"strings"

	"noto/internal/noto/domain/entities"
)

// SortLibraries упорядочивает библиотеки по настройкам главного экрана.
// Равные элементы упорядочиваются по ID.
func SortLibraries(libraries []*entities.Library, sortingType entities.LibraryListSortingType, order entities.SortingOrder) {
	slices.SortStableFunc(libraries, func(a, b *entities.Library) int {
		c := compareLibraries(a, b, sortingType)
		if c == 0 {
			return cmp.Compare(a.ID, b.ID)
		}
		if order == entities.SortingOrderDescending {
			return -c
		}
		return c
	})
}

func compareLibraries(a, b *entities.Library, sortingType entities.LibraryListSortingType) int {
	switch sortingType {
	case entities.LibraryListSortingManual:
		return a.Position - b.Position
	case entities.LibraryListSortingAlphabetical:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	default:
		return a.CreationDate.Compare(b.CreationDate)
	}
}

// SortNotes упорядочивает заметки по настройкам библиотеки. Закрепленные идут первыми.
func SortNotes(notes []entities.NoteWithLabels, library *entities.Library) {
	slices.SortStableFunc(notes, func(x, y entities.NoteWithLabels) int {
		a, b := &x.Note, &y.Note
		if a.IsPinned != b.IsPinned {
			if a.IsPinned {
				return -1
			}
			return 1
		}
		c := compareNotes(a, b, library.SortingType)
		if c == 0 {
			return cmp.Compare(a.ID, b.ID)
		}
		if library.SortingMethod == entities.SortingOrderDescending {
			return -c
		}
		return c
	})
}

func compareNotes(a, b *entities.Note, sortingType entities.SortingType) int {
	switch sortingType {
	case entities.SortingTypeManual:
		return a.Position - b.Position
	case entities.SortingTypeAlphabetical:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	default:
		return a.CreationDate.Compare(b.CreationDate)
	}
}

// SortNoteList - SortNotes для заметок без меток.
func SortNoteList(notes []*entities.Note, library *entities.Library) {
	wrapped := make([]entities.NoteWithLabels, len(notes))
	for i, n := range notes {
		wrapped[i] = entities.NoteWithLabels{Note: *n}
	}
	SortNotes(wrapped, library)
	for i := range wrapped {
		n := wrapped[i].Note
		notes[i] = &n
	}
}
