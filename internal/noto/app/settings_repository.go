package app

import (
	"context"
	"errors"
	"fmt"

	"noto/internal/noto/domain/entities"
	"noto/internal/noto/domain/keys"
	"noto/internal/noto/ports/storage"
	"noto/pkg/flow"
	"noto/pkg/logger"

	"go.uber.org/zap"
)

// Ошибки доступа к настройкам по имени.
var (
	ErrUnknownSetting = errors.New("unknown setting")
	ErrSecretSetting  = errors.New("setting is not accessible by name")
)

const (
	msgInvalidStoredValue = "stored setting value is invalid, using default"
	msgSettingUpdated     = "setting updated"
	msgConfigUpdated      = "settings config updated"
	msgWidgetUpdated      = "widget settings updated"
	msgWidgetRemoved      = "widget settings removed"
	msgInvalidValue       = "invalid value"

	errCtxReadingSettings = "reading settings"
	errCtxWritingSetting  = "writing setting"
	errCtxWritingConfig   = "writing settings config"
	errCtxWritingWidget   = "writing widget settings"
	errCtxRemovingWidget  = "removing widget settings"
)

// SettingsRepository - типизированный фасад над хранилищем настроек.
type SettingsRepository struct {
	store storage.PreferenceStore
}

// NewSettingsRepository создает фасад над store.
func NewSettingsRepository(store storage.PreferenceStore) *SettingsRepository {
	return &SettingsRepository{store: store}
}

// Store возвращает нижележащее хранилище.
func (r *SettingsRepository) Store() storage.PreferenceStore {
	return r.store
}

func decodeLogged[T any](ctx context.Context, s Setting[T], p storage.Preferences) T {
	v, invalid := s.Decode(p)
	if invalid {
		logger.Log(ctx).Debug(ctx, msgInvalidStoredValue, zap.String("key", string(s.Key)))
	}
	return v
}

// Observe отдает значение настройки при каждом изменении хранилища.
// Первым приходит текущее значение. Канал закрывается при отмене ctx.
func Observe[T any](ctx context.Context, r *SettingsRepository, s Setting[T]) <-chan T {
	return flow.Map(ctx, r.store.Data(ctx), func(p storage.Preferences) T {
		return decodeLogged(ctx, s, p)
	})
}

// Load возвращает текущее значение настройки.
func Load[T any](ctx context.Context, r *SettingsRepository, s Setting[T]) (T, error) {
	p, err := r.store.Snapshot(ctx)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w", errCtxReadingSettings, err)
	}
	return decodeLogged(ctx, s, p), nil
}

// Save записывает значение настройки. Ошибка хранилища возвращается без повторов.
func Save[T any](ctx context.Context, r *SettingsRepository, s Setting[T], v T) error {
	if err := r.store.Edit(ctx, func(m *storage.MutablePreferences) { s.Write(m, v) }); err != nil {
		return fmt.Errorf("%s %s: %w", errCtxWritingSetting, s.Key, err)
	}
	logger.Log(ctx).Debug(ctx, msgSettingUpdated, zap.String("key", string(s.Key)))
	return nil
}

func (r *SettingsRepository) Theme(ctx context.Context) <-chan entities.Theme {
	return Observe(ctx, r, ThemeSetting)
}

func (r *SettingsRepository) UpdateTheme(ctx context.Context, v entities.Theme) error {
	return Save(ctx, r, ThemeSetting, v)
}

func (r *SettingsRepository) Font(ctx context.Context) <-chan entities.Font {
	return Observe(ctx, r, FontSetting)
}

func (r *SettingsRepository) UpdateFont(ctx context.Context, v entities.Font) error {
	return Save(ctx, r, FontSetting, v)
}

func (r *SettingsRepository) Language(ctx context.Context) <-chan entities.Language {
	return Observe(ctx, r, LanguageSetting)
}

func (r *SettingsRepository) UpdateLanguage(ctx context.Context, v entities.Language) error {
	return Save(ctx, r, LanguageSetting, v)
}

// VaultPasscode отдает хэш кода доступа или nil, если он не задан.
func (r *SettingsRepository) VaultPasscode(ctx context.Context) <-chan *string {
	return Observe(ctx, r, VaultPasscodeSetting)
}

func (r *SettingsRepository) UpdateVaultPasscode(ctx context.Context, hash string) error {
	return Save(ctx, r, VaultPasscodeSetting, &hash)
}

func (r *SettingsRepository) VaultTimeout(ctx context.Context) <-chan entities.VaultTimeout {
	return Observe(ctx, r, VaultTimeoutSetting)
}

func (r *SettingsRepository) UpdateVaultTimeout(ctx context.Context, v entities.VaultTimeout) error {
	return Save(ctx, r, VaultTimeoutSetting, v)
}

func (r *SettingsRepository) ScheduledVaultTimeout(ctx context.Context) <-chan *entities.VaultTimeout {
	return Observe(ctx, r, ScheduledVaultTimeoutSetting)
}

// UpdateScheduledVaultTimeout записывает запланированное автозакрытие. nil удаляет ключ.
func (r *SettingsRepository) UpdateScheduledVaultTimeout(ctx context.Context, v *entities.VaultTimeout) error {
	return Save(ctx, r, ScheduledVaultTimeoutSetting, v)
}

func (r *SettingsRepository) IsVaultOpen(ctx context.Context) <-chan bool {
	return Observe(ctx, r, IsVaultOpenSetting)
}

func (r *SettingsRepository) UpdateIsVaultOpen(ctx context.Context, v bool) error {
	return Save(ctx, r, IsVaultOpenSetting, v)
}

func (r *SettingsRepository) IsBioAuthEnabled(ctx context.Context) <-chan bool {
	return Observe(ctx, r, IsBioAuthEnabledSetting)
}

func (r *SettingsRepository) UpdateIsBioAuthEnabled(ctx context.Context, v bool) error {
	return Save(ctx, r, IsBioAuthEnabledSetting, v)
}

func (r *SettingsRepository) LastVersion(ctx context.Context) <-chan string {
	return Observe(ctx, r, LastVersionSetting)
}

func (r *SettingsRepository) UpdateLastVersion(ctx context.Context, v string) error {
	return Save(ctx, r, LastVersionSetting, v)
}

func (r *SettingsRepository) SortingType(ctx context.Context) <-chan entities.LibraryListSortingType {
	return Observe(ctx, r, SortingTypeSetting)
}

func (r *SettingsRepository) UpdateSortingType(ctx context.Context, v entities.LibraryListSortingType) error {
	return Save(ctx, r, SortingTypeSetting, v)
}

func (r *SettingsRepository) SortingOrder(ctx context.Context) <-chan entities.SortingOrder {
	return Observe(ctx, r, SortingOrderSetting)
}

func (r *SettingsRepository) UpdateSortingOrder(ctx context.Context, v entities.SortingOrder) error {
	return Save(ctx, r, SortingOrderSetting, v)
}

func (r *SettingsRepository) IsCollapseToolbar(ctx context.Context) <-chan bool {
	return Observe(ctx, r, CollapseToolbarSetting)
}

func (r *SettingsRepository) UpdateIsCollapseToolbar(ctx context.Context, v bool) error {
	return Save(ctx, r, CollapseToolbarSetting, v)
}

func (r *SettingsRepository) IsShowNotesCount(ctx context.Context) <-chan bool {
	return Observe(ctx, r, ShowNotesCountSetting)
}

func (r *SettingsRepository) UpdateIsShowNotesCount(ctx context.Context, v bool) error {
	return Save(ctx, r, ShowNotesCountSetting, v)
}

func (r *SettingsRepository) MainLibraryID(ctx context.Context) <-chan int64 {
	return Observe(ctx, r, MainLibraryIDSetting)
}

func (r *SettingsRepository) UpdateMainLibraryID(ctx context.Context, v int64) error {
	return Save(ctx, r, MainLibraryIDSetting, v)
}

func (r *SettingsRepository) LibraryLayout(ctx context.Context) <-chan entities.Layout {
	return Observe(ctx, r, LibraryLayoutSetting)
}

func (r *SettingsRepository) UpdateLibraryLayout(ctx context.Context, v entities.Layout) error {
	return Save(ctx, r, LibraryLayoutSetting, v)
}

// Config отдает полный снимок глобальных настроек при каждом изменении хранилища.
func (r *SettingsRepository) Config(ctx context.Context) <-chan entities.SettingsConfig {
	return flow.Map(ctx, r.store.Data(ctx), decodeConfig)
}

// LoadConfig возвращает текущие глобальные настройки.
func (r *SettingsRepository) LoadConfig(ctx context.Context) (entities.SettingsConfig, error) {
	p, err := r.store.Snapshot(ctx)
	if err != nil {
		return entities.SettingsConfig{}, fmt.Errorf("%s: %w", errCtxReadingSettings, err)
	}
	return decodeConfig(p), nil
}

// UpdateConfig записывает все поля cfg одной атомарной операцией.
func (r *SettingsRepository) UpdateConfig(ctx context.Context, cfg entities.SettingsConfig) error {
	if err := r.store.Edit(ctx, func(m *storage.MutablePreferences) { writeConfig(m, cfg) }); err != nil {
		return fmt.Errorf("%s: %w", errCtxWritingConfig, err)
	}
	logger.Log(ctx).Debug(ctx, msgConfigUpdated)
	return nil
}

// Widget отдает настройки виджета при каждом изменении хранилища.
func (r *SettingsRepository) Widget(ctx context.Context, widgetID int, libraryID int64) <-chan entities.WidgetSettings {
	return flow.Map(ctx, r.store.Data(ctx), func(p storage.Preferences) entities.WidgetSettings {
		return decodeWidget(p, widgetID, libraryID)
	})
}

func (r *SettingsRepository) LoadWidget(ctx context.Context, widgetID int, libraryID int64) (entities.WidgetSettings, error) {
	p, err := r.store.Snapshot(ctx)
	if err != nil {
		return entities.WidgetSettings{}, fmt.Errorf("%s: %w", errCtxReadingSettings, err)
	}
	return decodeWidget(p, widgetID, libraryID), nil
}

// UpdateWidget записывает все настройки виджета одной операцией.
func (r *SettingsRepository) UpdateWidget(ctx context.Context, w entities.WidgetSettings) error {
	if err := r.store.Edit(ctx, func(m *storage.MutablePreferences) { writeWidget(m, w) }); err != nil {
		return fmt.Errorf("%s %d: %w", errCtxWritingWidget, w.WidgetID, err)
	}
	logger.Log(ctx).Debug(ctx, msgWidgetUpdated, zap.Int("widget_id", w.WidgetID))
	return nil
}

// RemoveWidget удаляет все ключи виджета, включая выбранные метки для любых библиотек.
func (r *SettingsRepository) RemoveWidget(ctx context.Context, widgetID int) error {
	p, err := r.store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxReadingSettings, err)
	}
	err = r.store.Edit(ctx, func(m *storage.MutablePreferences) {
		for _, key := range p.Keys() {
			if keys.IsWidgetKey(key, widgetID) {
				m.Remove(key)
			}
		}
	})
	if err != nil {
		return fmt.Errorf("%s %d: %w", errCtxRemovingWidget, widgetID, err)
	}
	logger.Log(ctx).Debug(ctx, msgWidgetRemoved, zap.Int("widget_id", widgetID))
	return nil
}

// NamedValue - значение настройки, доступной по логическому имени.
type NamedValue struct {
	keys.Definition
	Value any `json:"value"`
}

type binding struct {
	read func(storage.Preferences) any
	// parse проверяет raw и возвращает функцию записи.
	parse func(raw string) (func(*storage.MutablePreferences), bool)
}

func bind[T any](s Setting[T]) binding {
	return binding{
		read: func(p storage.Preferences) any {
			v, _ := s.Decode(p)
			return v
		},
		parse: func(raw string) (func(*storage.MutablePreferences), bool) {
			v, ok := s.Parse(raw)
			if !ok {
				return nil, false
			}
			return func(m *storage.MutablePreferences) { s.Write(m, v) }, true
		},
	}
}

// bindOptional дополнительно трактует пустую строку как удаление ключа.
func bindOptional[T any](s Setting[*T]) binding {
	b := bind(s)
	parse := b.parse
	b.parse = func(raw string) (func(*storage.MutablePreferences), bool) {
		if raw == "" {
			return func(m *storage.MutablePreferences) { s.Write(m, nil) }, true
		}
		return parse(raw)
	}
	return b
}

var bindings = map[string]binding{
	keys.NameTheme:                 bind(ThemeSetting),
	keys.NameFont:                  bind(FontSetting),
	keys.NameLanguage:              bind(LanguageSetting),
	keys.NameVaultTimeout:          bind(VaultTimeoutSetting),
	keys.NameScheduledVaultTimeout: bindOptional(ScheduledVaultTimeoutSetting),
	keys.NameIsVaultOpen:           bind(IsVaultOpenSetting),
	keys.NameIsBioAuthEnabled:      bind(IsBioAuthEnabledSetting),
	keys.NameLastVersion:           bind(LastVersionSetting),
	keys.NameSortingType:           bind(SortingTypeSetting),
	keys.NameSortingOrder:          bind(SortingOrderSetting),
	keys.NameCollapseToolbar:       bind(CollapseToolbarSetting),
	keys.NameShowNotesCount:        bind(ShowNotesCountSetting),
	keys.NameMainLibraryID:         bind(MainLibraryIDSetting),
	keys.NameLibraryLayout:         bind(LibraryLayoutSetting),
}

func lookupBinding(name string) (keys.Definition, binding, error) {
	def, ok := keys.Lookup(name)
	if !ok {
		return keys.Definition{}, binding{}, fmt.Errorf("%w: %s", ErrUnknownSetting, name)
	}
	if def.Secret {
		return keys.Definition{}, binding{}, fmt.Errorf("%w: %s", ErrSecretSetting, name)
	}
	b, ok := bindings[name]
	if !ok {
		return keys.Definition{}, binding{}, fmt.Errorf("%w: %s", ErrUnknownSetting, name)
	}
	return def, b, nil
}

// Get возвращает значение настройки по логическому имени.
func (r *SettingsRepository) Get(ctx context.Context, name string) (NamedValue, error) {
	def, b, err := lookupBinding(name)
	if err != nil {
		return NamedValue{}, err
	}
	p, err := r.store.Snapshot(ctx)
	if err != nil {
		return NamedValue{}, fmt.Errorf("%s: %w", errCtxReadingSettings, err)
	}
	return NamedValue{Definition: def, Value: b.read(p)}, nil
}

// List возвращает все настройки, доступные по имени, отсортированные по имени.
func (r *SettingsRepository) List(ctx context.Context) ([]NamedValue, error) {
	p, err := r.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxReadingSettings, err)
	}
	out := make([]NamedValue, 0, len(bindings))
	for _, def := range keys.Definitions() {
		b, ok := bindings[def.Name]
		if !ok || def.Secret {
			continue
		}
		out = append(out, NamedValue{Definition: def, Value: b.read(p)})
	}
	return out, nil
}

// Set проверяет raw по типу настройки и записывает его.
// Неверное значение возвращает *entities.ValidationError, хранилище не меняется.
func (r *SettingsRepository) Set(ctx context.Context, name, raw string) error {
	_, b, err := lookupBinding(name)
	if err != nil {
		return err
	}

	write, ok := b.parse(raw)
	if !ok {
		return entities.NewValidationError(name, msgInvalidValue)
	}
	if err := r.store.Edit(ctx, write); err != nil {
		return fmt.Errorf("%s %s: %w", errCtxWritingSetting, name, err)
	}
	logger.Log(ctx).Debug(ctx, msgSettingUpdated, zap.String("name", name))
	return nil
}
