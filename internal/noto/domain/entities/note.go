package entities

import (
	"strings"
	"time"
)

// Note - заметка внутри библиотеки.
type Note struct {
	ID           int64     `json:"id"`
	LibraryID    int64     `json:"library_id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	Position     int       `json:"position"`
	CreationDate time.Time `json:"creation_date"`
	IsPinned     bool      `json:"is_pinned"`
	IsArchived   bool      `json:"is_archived"`
}

// NewNote создает несохраненную заметку.
func NewNote(libraryID int64, title, body string) *Note {
	return &Note{
		LibraryID:    libraryID,
		Title:        title,
		Body:         body,
		CreationDate: time.Now().UTC(),
	}
}

// Matches проверяет вхождение term в заголовок или тело без учета регистра.
// Пустой term подходит любой заметке.
func (n *Note) Matches(term string) bool {
	if strings.TrimSpace(term) == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(n.Title), term) ||
		strings.Contains(strings.ToLower(n.Body), term)
}

// NoteWithLabels - заметка вместе с ее метками.
type NoteWithLabels struct {
	Note   Note    `json:"note"`
	Labels []Label `json:"labels"`
}
