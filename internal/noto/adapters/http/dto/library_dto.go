package dto

import (
	"noto/internal/noto/app"
	"noto/internal/noto/domain/entities"
)

// Имена фильтров главного списка библиотек.
const (
	FilterMain     = "main"
	FilterArchived = "archived"
)

// LibraryFilters сопоставляет имя фильтра из запроса с фильтром списка.
// Библиотеки хранилища отдаются только через /vault/libraries.
var LibraryFilters = map[string]app.LibraryFilter{
	FilterMain:     app.MainLibraries,
	FilterArchived: app.ArchivedLibraries,
}

// LibraryListQuery - параметры запроса списка библиотек.
type LibraryListQuery struct {
	Filter string `query:"filter" json:"filter" validate:"omitempty,library_filter"`
}

// SaveLibraryRequest - поля формы библиотеки. Отсутствующие поля не меняются.
type SaveLibraryRequest struct {
	Title                  string  `json:"title"`
	Color                  *string `json:"color" validate:"omitempty,noto_color"`
	SortingType            *string `json:"sorting_type" validate:"omitempty,sorting_type"`
	SortingMethod          *string `json:"sorting_method" validate:"omitempty,sorting_order"`
	IsPinned               *bool   `json:"is_pinned"`
	IsShowNoteCreationDate *bool   `json:"is_show_note_creation_date"`
	NotePreviewSize        *int    `json:"note_preview_size" validate:"omitempty,gte=0,lte=100"`
	IsArchived             *bool   `json:"is_archived"`
	IsVaulted              *bool   `json:"is_vaulted"`
}

// Options переводит заданные поля в опции формы.
func (r *SaveLibraryRequest) Options() []app.LibraryOption {
	var opts []app.LibraryOption
	if r.SortingType != nil {
		t, _ := entities.ParseSortingType(*r.SortingType)
		opts = append(opts, app.WithSortingType(t))
	}
	if r.SortingMethod != nil {
		o, _ := entities.ParseSortingOrder(*r.SortingMethod)
		opts = append(opts, app.WithSortingMethod(o))
	}
	if r.IsPinned != nil {
		opts = append(opts, app.WithPinned(*r.IsPinned))
	}
	if r.IsShowNoteCreationDate != nil {
		opts = append(opts, app.WithShowNoteCreationDate(*r.IsShowNoteCreationDate))
	}
	if r.NotePreviewSize != nil {
		opts = append(opts, app.WithNotePreviewSize(*r.NotePreviewSize))
	}
	if r.IsArchived != nil {
		opts = append(opts, app.WithArchived(*r.IsArchived))
	}
	if r.IsVaulted != nil {
		opts = append(opts, app.WithVaulted(*r.IsVaulted))
	}
	return opts
}

// LibraryFormResponse - библиотека вместе с палитрой формы.
type LibraryFormResponse struct {
	Library *entities.Library `json:"library"`
	Colors  []app.ColorChoice `json:"colors"`
}

// CreateNoteRequest содержит данные для создания заметки.
type CreateNoteRequest struct {
	Title    string `json:"title" validate:"max=1000"`
	Body     string `json:"body"`
	IsPinned bool   `json:"is_pinned"`
}

// NotesResponse - заметки библиотеки.
type NotesResponse struct {
	Notes []*entities.Note `json:"notes"`
}

// CreateLabelRequest содержит заголовок новой метки.
type CreateLabelRequest struct {
	Title string `json:"title" validate:"max=100"`
}

// LabelsResponse - метки библиотеки.
type LabelsResponse struct {
	Labels []*entities.Label `json:"labels"`
}
