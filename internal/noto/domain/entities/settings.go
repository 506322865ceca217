package entities

// Theme - тема оформления.
type Theme string

const (
	ThemeSystem      Theme = "System"
	ThemeLight       Theme = "Light"
	ThemeDark        Theme = "Dark"
	ThemeSystemBlack Theme = "SystemBlack"
	ThemeBlack       Theme = "Black"
)

var Themes = []Theme{ThemeSystem, ThemeLight, ThemeDark, ThemeSystemBlack, ThemeBlack}

func ParseTheme(s string) (Theme, bool) { return parseEnum(s, Themes) }

// Font - шрифт заметок.
type Font string

const (
	FontNunito    Font = "Nunito"
	FontMonospace Font = "Monospace"
)

var Fonts = []Font{FontNunito, FontMonospace}

func ParseFont(s string) (Font, bool) { return parseEnum(s, Fonts) }

// Language - язык интерфейса. System означает язык устройства.
type Language string

const (
	LanguageSystem     Language = "System"
	LanguageEnglish    Language = "English"
	LanguageTurkish    Language = "Turkish"
	LanguageArabic     Language = "Arabic"
	LanguageIndonesian Language = "Indonesian"
	LanguageRussian    Language = "Russian"
	LanguageTamil      Language = "Tamil"
	LanguageSpanish    Language = "Spanish"
	LanguageFrench     Language = "French"
	LanguageGerman     Language = "German"
	LanguageItalian    Language = "Italian"
	LanguageCzech      Language = "Czech"
	LanguageLithuanian Language = "Lithuanian"
	LanguageChinese    Language = "Chinese"
	LanguagePortuguese Language = "Portuguese"
	LanguageKorean     Language = "Korean"
)

var Languages = []Language{
	LanguageSystem, LanguageEnglish, LanguageTurkish, LanguageArabic,
	LanguageIndonesian, LanguageRussian, LanguageTamil, LanguageSpanish,
	LanguageFrench, LanguageGerman, LanguageItalian, LanguageCzech,
	LanguageLithuanian, LanguageChinese, LanguagePortuguese, LanguageKorean,
}

func ParseLanguage(s string) (Language, bool) { return parseEnum(s, Languages) }

// VaultTimeout - через сколько хранилище закрывается автоматически.
type VaultTimeout string

const (
	VaultTimeoutImmediately  VaultTimeout = "Immediately"
	VaultTimeoutOnAppClose   VaultTimeout = "OnAppClose"
	VaultTimeoutAfter1Hour   VaultTimeout = "After1Hour"
	VaultTimeoutAfter4Hours  VaultTimeout = "After4Hours"
	VaultTimeoutAfter12Hours VaultTimeout = "After12Hours"
)

var VaultTimeouts = []VaultTimeout{
	VaultTimeoutImmediately, VaultTimeoutOnAppClose,
	VaultTimeoutAfter1Hour, VaultTimeoutAfter4Hours, VaultTimeoutAfter12Hours,
}

func ParseVaultTimeout(s string) (VaultTimeout, bool) { return parseEnum(s, VaultTimeouts) }

// LibraryListSortingType - порядок списка библиотек.
type LibraryListSortingType string

const (
	LibraryListSortingManual       LibraryListSortingType = "Manual"
	LibraryListSortingCreationDate LibraryListSortingType = "CreationDate"
	LibraryListSortingAlphabetical LibraryListSortingType = "Alphabetical"
)

var LibraryListSortingTypes = []LibraryListSortingType{
	LibraryListSortingManual, LibraryListSortingCreationDate, LibraryListSortingAlphabetical,
}

func ParseLibraryListSortingType(s string) (LibraryListSortingType, bool) {
	return parseEnum(s, LibraryListSortingTypes)
}

// SortingOrder - направление сортировки.
type SortingOrder string

const (
	SortingOrderAscending  SortingOrder = "Ascending"
	SortingOrderDescending SortingOrder = "Descending"
)

var SortingOrders = []SortingOrder{SortingOrderAscending, SortingOrderDescending}

func ParseSortingOrder(s string) (SortingOrder, bool) { return parseEnum(s, SortingOrders) }

// Layout - раскладка списка заметок библиотеки.
type Layout string

const (
	LayoutLinear Layout = "Linear"
	LayoutGrid   Layout = "Grid"
)

var Layouts = []Layout{LayoutLinear, LayoutGrid}

func ParseLayout(s string) (Layout, bool) { return parseEnum(s, Layouts) }

// Значения настроек по умолчанию.
const (
	DefaultLastVersion   = "1.0.0"
	DefaultMainLibraryID = InboxLibraryID
	DefaultWidgetRadius  = 16
)

// SettingsConfig - снимок всех глобальных настроек.
type SettingsConfig struct {
	Theme                 Theme                  `json:"theme" yaml:"theme"`
	Font                  Font                   `json:"font" yaml:"font"`
	Language              Language               `json:"language" yaml:"language"`
	VaultPasscode         *string                `json:"vault_passcode,omitempty" yaml:"vault_passcode,omitempty"`
	VaultTimeout          VaultTimeout           `json:"vault_timeout" yaml:"vault_timeout"`
	ScheduledVaultTimeout *VaultTimeout          `json:"scheduled_vault_timeout,omitempty" yaml:"scheduled_vault_timeout,omitempty"`
	IsVaultOpen           bool                   `json:"is_vault_open" yaml:"is_vault_open"`
	IsBioAuthEnabled      bool                   `json:"is_bio_auth_enabled" yaml:"is_bio_auth_enabled"`
	LastVersion           string                 `json:"last_version" yaml:"last_version"`
	SortingType           LibraryListSortingType `json:"sorting_type" yaml:"sorting_type"`
	SortingOrder          SortingOrder           `json:"sorting_order" yaml:"sorting_order"`
	IsCollapseToolbar     bool                   `json:"is_collapse_toolbar" yaml:"is_collapse_toolbar"`
	IsShowNotesCount      bool                   `json:"is_show_notes_count" yaml:"is_show_notes_count"`
	MainLibraryID         int64                  `json:"main_library_id" yaml:"main_library_id"`
}

// DefaultSettingsConfig возвращает настройки пустого хранилища.
func DefaultSettingsConfig() SettingsConfig {
	return SettingsConfig{
		Theme:         ThemeSystem,
		Font:          FontNunito,
		Language:      LanguageSystem,
		VaultTimeout:  VaultTimeoutImmediately,
		LastVersion:   DefaultLastVersion,
		SortingType:   LibraryListSortingCreationDate,
		SortingOrder:  SortingOrderDescending,
		MainLibraryID: DefaultMainLibraryID,
	}
}
