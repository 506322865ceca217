package dto

import (
	"noto/internal/noto/app"
	"noto/internal/noto/domain/entities"
)

// SettingsResponse - все настройки, доступные по имени.
type SettingsResponse struct {
	Settings []app.NamedValue `json:"settings"`
}

// SetSettingRequest - новое значение настройки в строковом представлении.
// Пустая строка у необязательной настройки удаляет ее.
type SetSettingRequest struct {
	Value string `json:"value"`
}

// UpdateSettingsRequest задает несколько настроек по имени.
type UpdateSettingsRequest struct {
	Values map[string]string `json:"values" validate:"required,min=1"`
}

// WidgetRequest - настройки виджета.
type WidgetRequest struct {
	LibraryID              int64   `json:"library_id" validate:"gte=0"`
	IsCreated              bool    `json:"is_created"`
	IsHeaderEnabled        bool    `json:"is_header_enabled"`
	IsEditButtonEnabled    bool    `json:"is_edit_button_enabled"`
	IsAppIconEnabled       bool    `json:"is_app_icon_enabled"`
	IsNewItemButtonEnabled bool    `json:"is_new_item_button_enabled"`
	IsNotesCountEnabled    bool    `json:"is_notes_count_enabled"`
	Radius                 int     `json:"radius" validate:"gte=0,lte=64"`
	SelectedLabelIDs       []int64 `json:"selected_label_ids"`
}

// ToEntity собирает настройки виджета widgetID.
func (r *WidgetRequest) ToEntity(widgetID int) entities.WidgetSettings {
	labels := r.SelectedLabelIDs
	if labels == nil {
		labels = []int64{}
	}
	return entities.WidgetSettings{
		WidgetID:               widgetID,
		IsCreated:              r.IsCreated,
		IsHeaderEnabled:        r.IsHeaderEnabled,
		IsEditButtonEnabled:    r.IsEditButtonEnabled,
		IsAppIconEnabled:       r.IsAppIconEnabled,
		IsNewItemButtonEnabled: r.IsNewItemButtonEnabled,
		IsNotesCountEnabled:    r.IsNotesCountEnabled,
		Radius:                 r.Radius,
		LibraryID:              r.LibraryID,
		SelectedLabelIDs:       labels,
	}
}
