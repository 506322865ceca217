package app

import (
	"context"
	"fmt"

	"noto/internal/noto/domain/entities"
	"noto/pkg/flow"
)

// ColorChoice - цвет в палитре формы и признак его выбора.
type ColorChoice struct {
	Color      entities.NotoColor `json:"color"`
	IsSelected bool               `json:"is_selected"`
}

// LibraryOption изменяет библиотеку перед сохранением формы.
type LibraryOption func(*entities.Library)

func WithSortingType(t entities.SortingType) LibraryOption {
	return func(l *entities.Library) { l.SortingType = t }
}

func WithSortingMethod(o entities.SortingOrder) LibraryOption {
	return func(l *entities.Library) { l.SortingMethod = o }
}

func WithPinned(pinned bool) LibraryOption {
	return func(l *entities.Library) { l.IsPinned = pinned }
}

func WithShowNoteCreationDate(show bool) LibraryOption {
	return func(l *entities.Library) { l.IsShowNoteCreationDate = show }
}

func WithNotePreviewSize(size int) LibraryOption {
	return func(l *entities.Library) { l.NotePreviewSize = size }
}

func WithArchived(archived bool) LibraryOption {
	return func(l *entities.Library) { l.IsArchived = archived }
}

func WithVaulted(vaulted bool) LibraryOption {
	return func(l *entities.Library) { l.IsVaulted = vaulted }
}

// LibraryViewModel - состояние формы и экрана одной библиотеки.
// libraryID == 0 означает создание новой библиотеки.
type LibraryViewModel struct {
	libraries *LibraryUseCase
	settings  *SettingsRepository
	libraryID int64

	library *flow.State[entities.Library]
	notes   *flow.State[[]*entities.Note]
	colors  *flow.State[[]ColorChoice]
}

// NewLibraryViewModel загружает библиотеку и ее заметки.
func NewLibraryViewModel(
	ctx context.Context,
	libraries *LibraryUseCase,
	settings *SettingsRepository,
	libraryID int64,
) (*LibraryViewModel, error) {
	vm := &LibraryViewModel{
		libraries: libraries,
		settings:  settings,
		libraryID: libraryID,
		library:   flow.NewState(*entities.NewLibrary(libraryID, 0)),
		notes:     flow.NewState([]*entities.Note{}),
		colors:    flow.NewState(colorChoices(entities.NotoColorGray)),
	}
	if err := vm.Refresh(ctx); err != nil {
		vm.Close()
		return nil, err
	}
	return vm, nil
}

func colorChoices(selected entities.NotoColor) []ColorChoice {
	out := make([]ColorChoice, len(entities.NotoColors))
	for i, c := range entities.NotoColors {
		out[i] = ColorChoice{Color: c, IsSelected: c == selected}
	}
	return out
}

// Refresh перечитывает библиотеку и ее заметки. Выбор цвета сбрасывается на цвет библиотеки.
func (vm *LibraryViewModel) Refresh(ctx context.Context) error {
	if vm.libraryID == 0 {
		return nil
	}
	lib, err := vm.libraries.Get(ctx, vm.libraryID)
	if err != nil {
		return err
	}
	vm.library.Set(*lib)
	vm.colors.Set(colorChoices(lib.Color))
	return vm.SearchNotes(ctx, "")
}

// Library отдает текущую библиотеку и ее последующие изменения.
func (vm *LibraryViewModel) Library(ctx context.Context) <-chan entities.Library {
	return vm.library.Subscribe(ctx)
}

func (vm *LibraryViewModel) Notes(ctx context.Context) <-chan []*entities.Note {
	return vm.notes.Subscribe(ctx)
}

// NotoColors отдает палитру. Выбран ровно один цвет.
func (vm *LibraryViewModel) NotoColors(ctx context.Context) <-chan []ColorChoice {
	return vm.colors.Subscribe(ctx)
}

// Layout отдает раскладку списка заметок из настроек.
func (vm *LibraryViewModel) Layout(ctx context.Context) <-chan entities.Layout {
	return vm.settings.LibraryLayout(ctx)
}

// Snapshot возвращает текущее состояние формы.
func (vm *LibraryViewModel) Snapshot() entities.Library {
	return vm.library.Value()
}

// Colors возвращает текущую палитру.
func (vm *LibraryViewModel) Colors() []ColorChoice {
	return vm.colors.Value()
}

// SelectNotoColor делает color единственным выбранным цветом.
func (vm *LibraryViewModel) SelectNotoColor(color entities.NotoColor) {
	vm.colors.Set(colorChoices(color))
}

// SelectedColor возвращает выбранный цвет палитры.
func (vm *LibraryViewModel) SelectedColor() entities.NotoColor {
	for _, c := range vm.colors.Value() {
		if c.IsSelected {
			return c.Color
		}
	}
	return entities.NotoColorGray
}

// CreateOrUpdateLibrary сохраняет библиотеку с заголовком title и выбранным цветом.
func (vm *LibraryViewModel) CreateOrUpdateLibrary(ctx context.Context, title string, opts ...LibraryOption) (*entities.Library, error) {
	lib := vm.library.Value()
	lib.Title = title
	lib.Color = vm.SelectedColor()
	for _, opt := range opts {
		opt(&lib)
	}

	saved, err := vm.libraries.Save(ctx, &lib)
	if err != nil {
		return nil, err
	}
	vm.library.Set(*saved)
	return saved, nil
}

func (vm *LibraryViewModel) DeleteLibrary(ctx context.Context) error {
	return vm.libraries.Delete(ctx, vm.libraryID)
}

func (vm *LibraryViewModel) UpdateLayout(ctx context.Context, layout entities.Layout) error {
	return vm.settings.UpdateLibraryLayout(ctx, layout)
}

// SearchNotes заменяет список заметок отфильтрованным по term. Пустой term снимает фильтр.
func (vm *LibraryViewModel) SearchNotes(ctx context.Context, term string) error {
	if vm.libraryID == 0 {
		return nil
	}
	notes, err := vm.libraries.Notes(ctx, vm.libraryID, term)
	if err != nil {
		return err
	}
	vm.notes.Set(notes)
	return nil
}

func (vm *LibraryViewModel) UpdateSortingType(ctx context.Context, sortingType entities.SortingType) error {
	return vm.updateStored(ctx, WithSortingType(sortingType))
}

func (vm *LibraryViewModel) UpdateSortingMethod(ctx context.Context, method entities.SortingOrder) error {
	return vm.updateStored(ctx, WithSortingMethod(method))
}

// updateStored меняет сохраненную библиотеку, не трогая заголовок и цвет формы.
func (vm *LibraryViewModel) updateStored(ctx context.Context, opt LibraryOption) error {
	if vm.libraryID == 0 {
		return fmt.Errorf("%s: %w", errCtxUpdatingLibrary, entities.ErrLibraryNotFound)
	}
	lib := vm.library.Value()
	opt(&lib)
	saved, err := vm.libraries.Save(ctx, &lib)
	if err != nil {
		return err
	}
	vm.library.Set(*saved)
	return vm.SearchNotes(ctx, "")
}

// Close завершает все подписки.
func (vm *LibraryViewModel) Close() {
	vm.library.Close()
	vm.notes.Close()
	vm.colors.Close()
}
