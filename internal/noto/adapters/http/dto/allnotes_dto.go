package dto

import (
	"noto/internal/noto/app"
)

// SearchRequest включает или выключает поиск по всем заметкам.
type SearchRequest struct {
	Enabled bool   `json:"enabled"`
	Term    string `json:"term" validate:"max=200"`
}

// AllNotesResponse - отрисованный список всех заметок.
type AllNotesResponse struct {
	IsLoading       bool       `json:"is_loading"`
	IsSearchEnabled bool       `json:"is_search_enabled"`
	SearchTerm      string     `json:"search_term"`
	Items           []app.Item `json:"items"`
}

// NewAllNotesResponse отрисовывает состояние экрана.
func NewAllNotesResponse(state app.AllNotesState) AllNotesResponse {
	return AllNotesResponse{
		IsLoading:       state.Notes.IsLoading(),
		IsSearchEnabled: state.IsSearchEnabled,
		SearchTerm:      state.SearchTerm,
		Items:           app.RenderAllNotes(state),
	}
}
