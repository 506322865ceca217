package entities

import (
	"strings"
	"time"
)

// InboxLibraryID - идентификатор библиотеки "Входящие", создаваемой миграцией.
const InboxLibraryID int64 = 1

// SortingType - порядок заметок внутри библиотеки.
type SortingType string

const (
	SortingTypeManual       SortingType = "Manual"
	SortingTypeCreationDate SortingType = "CreationDate"
	SortingTypeAlphabetical SortingType = "Alphabetical"
)

var SortingTypes = []SortingType{SortingTypeManual, SortingTypeCreationDate, SortingTypeAlphabetical}

func ParseSortingType(s string) (SortingType, bool) { return parseEnum(s, SortingTypes) }

// DefaultNotePreviewSize - сколько строк тела заметки показывать в списке.
const DefaultNotePreviewSize = 15

// Library - именованная группа заметок. ID == 0 означает еще не сохраненную библиотеку.
type Library struct {
	ID                     int64        `json:"id"`
	Title                  string       `json:"title"`
	Color                  NotoColor    `json:"color"`
	Position               int          `json:"position"`
	SortingType            SortingType  `json:"sorting_type"`
	SortingMethod          SortingOrder `json:"sorting_method"`
	IsPinned               bool         `json:"is_pinned"`
	IsShowNoteCreationDate bool         `json:"is_show_note_creation_date"`
	NotePreviewSize        int          `json:"note_preview_size"`
	IsArchived             bool         `json:"is_archived"`
	IsVaulted              bool         `json:"is_vaulted"`
	CreationDate           time.Time    `json:"creation_date"`
}

// NewLibrary создает несохраненную библиотеку с настройками по умолчанию.
func NewLibrary(id int64, position int) *Library {
	return &Library{
		ID:              id,
		Color:           NotoColorGray,
		Position:        position,
		SortingType:     SortingTypeCreationDate,
		SortingMethod:   SortingOrderDescending,
		NotePreviewSize: DefaultNotePreviewSize,
		CreationDate:    time.Now().UTC(),
	}
}

// IsInbox сообщает, является ли библиотека системной "Входящие".
func (l *Library) IsInbox() bool {
	return l.ID == InboxLibraryID
}

// HasTitle сравнивает заголовки без учета пробелов по краям.
func (l *Library) HasTitle(title string) bool {
	return strings.TrimSpace(l.Title) == strings.TrimSpace(title)
}
