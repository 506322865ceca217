// Package app содержит сценарии Noto: типизированные настройки, библиотеки,
// модели представления списков и хранилище (vault).
package app

import (
	"strconv"
	"strings"

	"noto/internal/noto/domain/entities"
	"noto/internal/noto/domain/keys"
	"noto/internal/noto/ports/storage"
)

// labelIDsSeparator - разделитель идентификаторов меток в строковом значении.
const labelIDsSeparator = ", "

// Setting связывает ключ хранилища с типом значения и значением по умолчанию.
type Setting[T any] struct {
	Key     keys.Key
	Default T
	// decode разбирает сохраненную строку. ok == false означает значение неверного формата.
	decode func(raw string) (T, bool)
	// encode возвращает строку для записи. ok == false означает удаление ключа.
	encode func(v T) (string, bool)
}

// Decode возвращает значение из снимка. Отсутствующее или испорченное значение
// заменяется значением по умолчанию, invalid сообщает о втором случае.
func (s Setting[T]) Decode(p storage.Preferences) (value T, invalid bool) {
	raw, ok := p.Get(string(s.Key))
	if !ok {
		return s.Default, false
	}
	v, ok := s.decode(raw)
	if !ok {
		return s.Default, true
	}
	return v, false
}

// Parse разбирает значение, введенное пользователем.
func (s Setting[T]) Parse(raw string) (T, bool) {
	return s.decode(raw)
}

// Write записывает v в редактируемый снимок.
func (s Setting[T]) Write(m *storage.MutablePreferences, v T) {
	raw, ok := s.encode(v)
	if !ok {
		m.Remove(string(s.Key))
		return
	}
	m.Set(string(s.Key), raw)
}

// Encode возвращает строковое представление v.
func (s Setting[T]) Encode(v T) (string, bool) {
	return s.encode(v)
}

func present(s string) (string, bool) { return s, true }

// EnumSetting - перечисление, хранящееся по имени значения.
func EnumSetting[T ~string](key keys.Key, def T, parse func(string) (T, bool)) Setting[T] {
	return Setting[T]{
		Key:     key,
		Default: def,
		decode:  parse,
		encode:  func(v T) (string, bool) { return string(v), true },
	}
}

// OptionalEnumSetting - перечисление, которое может отсутствовать. nil удаляет ключ.
func OptionalEnumSetting[T ~string](key keys.Key, parse func(string) (T, bool)) Setting[*T] {
	return Setting[*T]{
		Key: key,
		decode: func(raw string) (*T, bool) {
			v, ok := parse(raw)
			if !ok {
				return nil, false
			}
			return &v, true
		},
		encode: func(v *T) (string, bool) {
			if v == nil {
				return "", false
			}
			return string(*v), true
		},
	}
}

// BoolSetting хранит "true"/"false". Регистр при чтении не важен.
func BoolSetting(key keys.Key, def bool) Setting[bool] {
	return Setting[bool]{
		Key:     key,
		Default: def,
		decode:  parseBool,
		encode:  func(v bool) (string, bool) { return strconv.FormatBool(v), true },
	}
}

func parseBool(raw string) (bool, bool) {
	switch {
	case strings.EqualFold(raw, "true"):
		return true, true
	case strings.EqualFold(raw, "false"):
		return false, true
	default:
		return false, false
	}
}

func StringSetting(key keys.Key, def string) Setting[string] {
	return Setting[string]{
		Key:     key,
		Default: def,
		decode:  present,
		encode:  present,
	}
}

// OptionalStringSetting - строка, которая может отсутствовать. nil удаляет ключ.
func OptionalStringSetting(key keys.Key) Setting[*string] {
	return Setting[*string]{
		Key:    key,
		decode: func(raw string) (*string, bool) { return &raw, true },
		encode: func(v *string) (string, bool) {
			if v == nil {
				return "", false
			}
			return *v, true
		},
	}
}

func IntSetting(key keys.Key, def int) Setting[int] {
	return Setting[int]{
		Key:     key,
		Default: def,
		decode: func(raw string) (int, bool) {
			v, err := strconv.Atoi(strings.TrimSpace(raw))
			return v, err == nil
		},
		encode: func(v int) (string, bool) { return strconv.Itoa(v), true },
	}
}

func Int64Setting(key keys.Key, def int64) Setting[int64] {
	return Setting[int64]{
		Key:     key,
		Default: def,
		decode: func(raw string) (int64, bool) {
			v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			return v, err == nil
		},
		encode: func(v int64) (string, bool) { return strconv.FormatInt(v, 10), true },
	}
}

// Int64ListSetting хранит список через ", ". Нечисловые элементы пропускаются.
func Int64ListSetting(key keys.Key) Setting[[]int64] {
	return Setting[[]int64]{
		Key:     key,
		Default: []int64{},
		decode: func(raw string) ([]int64, bool) {
			return parseInt64List(raw), true
		},
		encode: func(v []int64) (string, bool) {
			parts := make([]string, len(v))
			for i, id := range v {
				parts[i] = strconv.FormatInt(id, 10)
			}
			return strings.Join(parts, labelIDsSeparator), true
		},
	}
}

func parseInt64List(raw string) []int64 {
	out := []int64{}
	for _, part := range strings.Split(raw, labelIDsSeparator) {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}

// Глобальные настройки.
var (
	ThemeSetting                 = EnumSetting(keys.Theme, entities.ThemeSystem, entities.ParseTheme)
	FontSetting                  = EnumSetting(keys.Font, entities.FontNunito, entities.ParseFont)
	LanguageSetting              = EnumSetting(keys.Language, entities.LanguageSystem, entities.ParseLanguage)
	VaultPasscodeSetting         = OptionalStringSetting(keys.VaultPasscode)
	VaultTimeoutSetting          = EnumSetting(keys.VaultTimeout, entities.VaultTimeoutImmediately, entities.ParseVaultTimeout)
	ScheduledVaultTimeoutSetting = OptionalEnumSetting(keys.ScheduledVaultTimeout, entities.ParseVaultTimeout)
	IsVaultOpenSetting           = BoolSetting(keys.IsVaultOpen, false)
	IsBioAuthEnabledSetting      = BoolSetting(keys.IsBioAuthEnabled, false)
	LastVersionSetting           = StringSetting(keys.LastVersion, entities.DefaultLastVersion)
	SortingTypeSetting           = EnumSetting(keys.LibraryListSortingType, entities.LibraryListSortingCreationDate, entities.ParseLibraryListSortingType)
	SortingOrderSetting          = EnumSetting(keys.LibraryListSortingOrder, entities.SortingOrderDescending, entities.ParseSortingOrder)
	CollapseToolbarSetting       = BoolSetting(keys.CollapseToolbar, false)
	ShowNotesCountSetting        = BoolSetting(keys.ShowNotesCount, false)
	MainLibraryIDSetting         = Int64Setting(keys.MainLibraryID, entities.DefaultMainLibraryID)
	LibraryLayoutSetting         = EnumSetting(keys.LibraryLayoutManager, entities.LayoutLinear, entities.ParseLayout)
)

// Настройки виджета строятся для конкретного widgetID.

func WidgetCreatedSetting(widgetID int) Setting[bool] {
	return BoolSetting(keys.WidgetID(widgetID), false)
}

func WidgetHeaderSetting(widgetID int) Setting[bool] {
	return BoolSetting(keys.WidgetHeader(widgetID), true)
}

func WidgetEditButtonSetting(widgetID int) Setting[bool] {
	return BoolSetting(keys.WidgetEditButton(widgetID), true)
}

func WidgetAppIconSetting(widgetID int) Setting[bool] {
	return BoolSetting(keys.WidgetAppIcon(widgetID), true)
}

func WidgetNewItemButtonSetting(widgetID int) Setting[bool] {
	return BoolSetting(keys.WidgetNewItemButton(widgetID), true)
}

func WidgetNotesCountSetting(widgetID int) Setting[bool] {
	return BoolSetting(keys.WidgetNotesCount(widgetID), true)
}

func WidgetRadiusSetting(widgetID int) Setting[int] {
	return IntSetting(keys.WidgetRadius(widgetID), entities.DefaultWidgetRadius)
}

func WidgetSelectedLabelIDsSetting(widgetID int, libraryID int64) Setting[[]int64] {
	return Int64ListSetting(keys.WidgetSelectedLabelIDs(widgetID, libraryID))
}

// decodeConfig собирает SettingsConfig, разбирая каждое поле независимо.
func decodeConfig(p storage.Preferences) entities.SettingsConfig {
	cfg := entities.SettingsConfig{}
	cfg.Theme, _ = ThemeSetting.Decode(p)
	cfg.Font, _ = FontSetting.Decode(p)
	cfg.Language, _ = LanguageSetting.Decode(p)
	cfg.VaultPasscode, _ = VaultPasscodeSetting.Decode(p)
	cfg.VaultTimeout, _ = VaultTimeoutSetting.Decode(p)
	cfg.ScheduledVaultTimeout, _ = ScheduledVaultTimeoutSetting.Decode(p)
	cfg.IsVaultOpen, _ = IsVaultOpenSetting.Decode(p)
	cfg.IsBioAuthEnabled, _ = IsBioAuthEnabledSetting.Decode(p)
	cfg.LastVersion, _ = LastVersionSetting.Decode(p)
	cfg.SortingType, _ = SortingTypeSetting.Decode(p)
	cfg.SortingOrder, _ = SortingOrderSetting.Decode(p)
	cfg.IsCollapseToolbar, _ = CollapseToolbarSetting.Decode(p)
	cfg.IsShowNotesCount, _ = ShowNotesCountSetting.Decode(p)
	cfg.MainLibraryID, _ = MainLibraryIDSetting.Decode(p)
	return cfg
}

// writeConfig записывает все поля cfg. Пустой код доступа не трогается,
// пустой ScheduledVaultTimeout удаляет ключ.
func writeConfig(m *storage.MutablePreferences, cfg entities.SettingsConfig) {
	ThemeSetting.Write(m, cfg.Theme)
	FontSetting.Write(m, cfg.Font)
	LanguageSetting.Write(m, cfg.Language)
	if cfg.VaultPasscode != nil {
		VaultPasscodeSetting.Write(m, cfg.VaultPasscode)
	}
	VaultTimeoutSetting.Write(m, cfg.VaultTimeout)
	ScheduledVaultTimeoutSetting.Write(m, cfg.ScheduledVaultTimeout)
	IsVaultOpenSetting.Write(m, cfg.IsVaultOpen)
	IsBioAuthEnabledSetting.Write(m, cfg.IsBioAuthEnabled)
	LastVersionSetting.Write(m, cfg.LastVersion)
	SortingTypeSetting.Write(m, cfg.SortingType)
	SortingOrderSetting.Write(m, cfg.SortingOrder)
	CollapseToolbarSetting.Write(m, cfg.IsCollapseToolbar)
	ShowNotesCountSetting.Write(m, cfg.IsShowNotesCount)
	MainLibraryIDSetting.Write(m, cfg.MainLibraryID)
}

func decodeWidget(p storage.Preferences, widgetID int, libraryID int64) entities.WidgetSettings {
	w := entities.WidgetSettings{WidgetID: widgetID, LibraryID: libraryID}
	w.IsCreated, _ = WidgetCreatedSetting(widgetID).Decode(p)
	w.IsHeaderEnabled, _ = WidgetHeaderSetting(widgetID).Decode(p)
	w.IsEditButtonEnabled, _ = WidgetEditButtonSetting(widgetID).Decode(p)
	w.IsAppIconEnabled, _ = WidgetAppIconSetting(widgetID).Decode(p)
	w.IsNewItemButtonEnabled, _ = WidgetNewItemButtonSetting(widgetID).Decode(p)
	w.IsNotesCountEnabled, _ = WidgetNotesCountSetting(widgetID).Decode(p)
	w.Radius, _ = WidgetRadiusSetting(widgetID).Decode(p)
	w.SelectedLabelIDs, _ = WidgetSelectedLabelIDsSetting(widgetID, libraryID).Decode(p)
	return w
}

func writeWidget(m *storage.MutablePreferences, w entities.WidgetSettings) {
	WidgetCreatedSetting(w.WidgetID).Write(m, w.IsCreated)
	WidgetHeaderSetting(w.WidgetID).Write(m, w.IsHeaderEnabled)
	WidgetEditButtonSetting(w.WidgetID).Write(m, w.IsEditButtonEnabled)
	WidgetAppIconSetting(w.WidgetID).Write(m, w.IsAppIconEnabled)
	WidgetNewItemButtonSetting(w.WidgetID).Write(m, w.IsNewItemButtonEnabled)
	WidgetNotesCountSetting(w.WidgetID).Write(m, w.IsNotesCountEnabled)
	WidgetRadiusSetting(w.WidgetID).Write(m, w.Radius)
	ids := w.SelectedLabelIDs
	if ids == nil {
		ids = []int64{}
	}
	WidgetSelectedLabelIDsSetting(w.WidgetID, w.LibraryID).Write(m, ids)
}
