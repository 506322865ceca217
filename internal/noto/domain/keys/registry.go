package keys

import (
	"sort"

	"noto/internal/noto/domain/entities"
)

// Kind - тип значения настройки.
type Kind string

const (
	KindString Kind = "string"
	KindBool   Kind = "bool"
	KindInt    Kind = "int"
	KindEnum   Kind = "enum"
)

// Definition связывает логическое имя настройки с ключом хранилища.
type Definition struct {
	Name     string   `json:"name"`
	Key      Key      `json:"key"`
	Kind     Kind     `json:"kind"`
	Options  []string `json:"options,omitempty"`
	Optional bool     `json:"optional"`
	Secret   bool     `json:"-"`
}

// Логические имена глобальных настроек.
const (
	NameTheme                 = "theme"
	NameFont                  = "font"
	NameLanguage              = "language"
	NameVaultPasscode         = "vault_passcode"
	NameVaultTimeout          = "vault_timeout"
	NameScheduledVaultTimeout = "scheduled_vault_timeout"
	NameIsVaultOpen           = "is_vault_open"
	NameIsBioAuthEnabled      = "is_bio_auth_enabled"
	NameLastVersion           = "last_version"
	NameSortingType           = "sorting_type"
	NameSortingOrder          = "sorting_order"
	NameCollapseToolbar       = "collapse_toolbar"
	NameShowNotesCount        = "show_notes_count"
	NameMainLibraryID         = "main_library_id"
	NameLibraryLayout         = "library_layout"
)

func options[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

var registry = map[string]Definition{
	NameTheme:                 {Name: NameTheme, Key: Theme, Kind: KindEnum, Options: options(entities.Themes)},
	NameFont:                  {Name: NameFont, Key: Font, Kind: KindEnum, Options: options(entities.Fonts)},
	NameLanguage:              {Name: NameLanguage, Key: Language, Kind: KindEnum, Options: options(entities.Languages)},
	NameVaultPasscode:         {Name: NameVaultPasscode, Key: VaultPasscode, Kind: KindString, Optional: true, Secret: true},
	NameVaultTimeout:          {Name: NameVaultTimeout, Key: VaultTimeout, Kind: KindEnum, Options: options(entities.VaultTimeouts)},
	NameScheduledVaultTimeout: {Name: NameScheduledVaultTimeout, Key: ScheduledVaultTimeout, Kind: KindEnum, Options: options(entities.VaultTimeouts), Optional: true},
	NameIsVaultOpen:           {Name: NameIsVaultOpen, Key: IsVaultOpen, Kind: KindBool},
	NameIsBioAuthEnabled:      {Name: NameIsBioAuthEnabled, Key: IsBioAuthEnabled, Kind: KindBool},
	NameLastVersion:           {Name: NameLastVersion, Key: LastVersion, Kind: KindString},
	NameSortingType:           {Name: NameSortingType, Key: LibraryListSortingType, Kind: KindEnum, Options: options(entities.LibraryListSortingTypes)},
	NameSortingOrder:          {Name: NameSortingOrder, Key: LibraryListSortingOrder, Kind: KindEnum, Options: options(entities.SortingOrders)},
	NameCollapseToolbar:       {Name: NameCollapseToolbar, Key: CollapseToolbar, Kind: KindBool},
	NameShowNotesCount:        {Name: NameShowNotesCount, Key: ShowNotesCount, Kind: KindBool},
	NameMainLibraryID:         {Name: NameMainLibraryID, Key: MainLibraryID, Kind: KindInt},
	NameLibraryLayout:         {Name: NameLibraryLayout, Key: LibraryLayoutManager, Kind: KindEnum, Options: options(entities.Layouts)},
}

// Lookup ищет настройку по логическому имени.
func Lookup(name string) (Definition, bool) {
	def, ok := registry[name]
	return def, ok
}

// Definitions возвращает все глобальные настройки, отсортированные по имени.
func Definitions() []Definition {
	defs := make([]Definition, 0, len(registry))
	for _, def := range registry {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}
