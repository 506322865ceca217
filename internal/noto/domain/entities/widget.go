package entities

// WidgetSettings - настройки виджета домашнего экрана.
type WidgetSettings struct {
	WidgetID               int     `json:"widget_id"`
	IsCreated              bool    `json:"is_created"`
	IsHeaderEnabled        bool    `json:"is_header_enabled"`
	IsEditButtonEnabled    bool    `json:"is_edit_button_enabled"`
	IsAppIconEnabled       bool    `json:"is_app_icon_enabled"`
	IsNewItemButtonEnabled bool    `json:"is_new_item_button_enabled"`
	IsNotesCountEnabled    bool    `json:"is_notes_count_enabled"`
	Radius                 int     `json:"radius"`
	LibraryID              int64   `json:"library_id"`
	SelectedLabelIDs       []int64 `json:"selected_label_ids"`
}

// DefaultWidgetSettings возвращает настройки виджета, который еще не настраивали.
func DefaultWidgetSettings(widgetID int, libraryID int64) WidgetSettings {
	return WidgetSettings{
		WidgetID:               widgetID,
		IsHeaderEnabled:        true,
		IsEditButtonEnabled:    true,
		IsAppIconEnabled:       true,
		IsNewItemButtonEnabled: true,
		IsNotesCountEnabled:    true,
		Radius:                 DefaultWidgetRadius,
		LibraryID:              libraryID,
		SelectedLabelIDs:       []int64{},
	}
}
