// Package keys описывает ключи хранилища настроек.
//
// Глобальные настройки имеют фиксированные ключи. Настройки виджетов
// параметризованы идентификатором виджета (и библиотеки для выбранных меток),
// ключи для них строятся функциями этого пакета.
package keys

import (
	"fmt"
	"strconv"
	"strings"
)

// Key - ключ в хранилище настроек.
type Key string

func (k Key) String() string { return string(k) }

// Ключи глобальных настроек.
const (
	Theme                   Key = "Theme"
	Font                    Key = "Font"
	Language                Key = "Language"
	LibraryListSortingType  Key = "Library_List_Sorting_Type"
	LibraryListSortingOrder Key = "Library_List_Sorting_Order"
	ShowNotesCount          Key = "Show_Notes_Count"
	IsVaultOpen             Key = "IsVaultOpen"
	VaultPasscode           Key = "VaultPasscode"
	VaultTimeout            Key = "VaultTimeout"
	ScheduledVaultTimeout   Key = "ScheduledVaultTimeout"
	LastVersion             Key = "LastVersion"
	IsBioAuthEnabled        Key = "IsBioAuthEnabled"
	MainLibraryID           Key = "MainLibraryId"
	CollapseToolbar         Key = "CollapseToolbar"
	LibraryLayoutManager    Key = "Library_Layout_Manager"
)

const widgetPrefix = "Widget_"

func widgetKey(part string, widgetID int) Key {
	return Key(widgetPrefix + part + "_" + strconv.Itoa(widgetID))
}

// WidgetID - флаг "виджет создан".
func WidgetID(widgetID int) Key { return widgetKey("Id", widgetID) }

func WidgetHeader(widgetID int) Key { return widgetKey("Header", widgetID) }

func WidgetEditButton(widgetID int) Key { return widgetKey("Edit_Button", widgetID) }

func WidgetAppIcon(widgetID int) Key { return widgetKey("App_Icon", widgetID) }

func WidgetNewItemButton(widgetID int) Key { return widgetKey("New_Item_Button", widgetID) }

func WidgetNotesCount(widgetID int) Key { return widgetKey("Notes_Count", widgetID) }

func WidgetRadius(widgetID int) Key { return widgetKey("Radius", widgetID) }

// WidgetSelectedLabelIDs - метки, выбранные в виджете для конкретной библиотеки.
func WidgetSelectedLabelIDs(widgetID int, libraryID int64) Key {
	return Key(fmt.Sprintf("%s_Library_Id_%d", WidgetID(widgetID), libraryID))
}

// WidgetKeys возвращает все ключи виджета без выбранных меток.
func WidgetKeys(widgetID int) []Key {
	return []Key{
		WidgetID(widgetID),
		WidgetHeader(widgetID),
		WidgetEditButton(widgetID),
		WidgetAppIcon(widgetID),
		WidgetNewItemButton(widgetID),
		WidgetNotesCount(widgetID),
		WidgetRadius(widgetID),
	}
}

// IsWidgetKey сообщает, относится ли ключ к настройкам виджета widgetID,
// включая выбранные метки любой библиотеки.
func IsWidgetKey(key string, widgetID int) bool {
	for _, k := range WidgetKeys(widgetID) {
		if key == string(k) {
			return true
		}
	}
	return strings.HasPrefix(key, string(WidgetID(widgetID))+"_Library_Id_")
}
