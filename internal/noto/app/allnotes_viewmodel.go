package app

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strconv"
	"strings"

	"noto/internal/noto/domain/entities"
	"noto/internal/noto/ports/repositories"
	"noto/pkg/flow"
	"noto/pkg/logger"

	"go.uber.org/zap"
)

const (
	msgAllNotesRefreshed = "all notes refreshed"
	msgErrRefreshNotes   = "failed to refresh all notes"
)

// UiStateKind различает состояния экрана.
type UiStateKind string

const (
	UiStateLoading UiStateKind = "loading"
	UiStateSuccess UiStateKind = "success"
)

// UiState - результат загрузки: Loading до первых данных, затем Success с данными.
type UiState[T any] struct {
	Kind  UiStateKind `json:"state"`
	Value T           `json:"value"`
}

func Loading[T any]() UiState[T] {
	return UiState[T]{Kind: UiStateLoading}
}

func Success[T any](v T) UiState[T] {
	return UiState[T]{Kind: UiStateSuccess, Value: v}
}

func (s UiState[T]) IsLoading() bool { return s.Kind != UiStateSuccess }

// LibraryNotes - группа заметок одной библиотеки.
type LibraryNotes struct {
	Library *entities.Library         `json:"library"`
	Notes   []entities.NoteWithLabels `json:"notes"`
}

// AllNotesState - комбинированное состояние экрана всех заметок.
type AllNotesState struct {
	Notes           UiState[[]LibraryNotes] `json:"notes"`
	Visibility      map[int64]bool          `json:"visibility"`
	Font            entities.Font           `json:"font"`
	IsSearchEnabled bool                    `json:"is_search_enabled"`
	SearchTerm      string                  `json:"search_term"`
}

// IsVisible возвращает видимость группы. Отсутствующая группа видима.
func (s AllNotesState) IsVisible(libraryID int64) bool {
	visible, ok := s.Visibility[libraryID]
	return !ok || visible
}

// CombineAllNotes строит состояние из пяти входов. Поиск применяется, только
// когда он включен и term не пуст. При поиске пустые группы отбрасываются.
func CombineAllNotes(
	data UiState[[]LibraryNotes],
	visibility map[int64]bool,
	font entities.Font,
	isSearchEnabled bool,
	term string,
) AllNotesState {
	state := AllNotesState{
		Notes:           data,
		Visibility:      maps.Clone(visibility),
		Font:            font,
		IsSearchEnabled: isSearchEnabled,
		SearchTerm:      term,
	}
	if state.Visibility == nil {
		state.Visibility = map[int64]bool{}
	}
	if data.IsLoading() || !isSearchEnabled || strings.TrimSpace(term) == "" {
		return state
	}

	filtered := make([]LibraryNotes, 0, len(data.Value))
	for _, group := range data.Value {
		notes := make([]entities.NoteWithLabels, 0, len(group.Notes))
		for _, n := range group.Notes {
			if n.Note.Matches(term) {
				notes = append(notes, n)
			}
		}
		if len(notes) > 0 {
			filtered = append(filtered, LibraryNotes{Library: group.Library, Notes: notes})
		}
	}
	state.Notes = Success(filtered)
	return state
}

// GroupNotes группирует заметки по библиотекам. Архивные и скрытые в хранилище
// библиотеки пропускаются, группы упорядочены по позиции, затем по ID.
func GroupNotes(libraries []*entities.Library, notes []entities.NoteWithLabels) []LibraryNotes {
	byLibrary := make(map[int64][]entities.NoteWithLabels)
	for _, n := range notes {
		if n.Note.IsArchived {
			continue
		}
		byLibrary[n.Note.LibraryID] = append(byLibrary[n.Note.LibraryID], n)
	}

	groups := make([]LibraryNotes, 0, len(byLibrary))
	for _, lib := range libraries {
		if lib.IsArchived || lib.IsVaulted {
			continue
		}
		group, ok := byLibrary[lib.ID]
		if !ok {
			continue
		}
		SortNotes(group, lib)
		groups = append(groups, LibraryNotes{Library: lib, Notes: group})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Library, groups[j].Library
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.ID < b.ID
	})
	return groups
}

// AllNotesViewModel объединяет заметки всех библиотек с состоянием экрана.
type AllNotesViewModel struct {
	libraries repositories.LibraryRepository
	notes     repositories.NoteRepository
	settings  *SettingsRepository

	data            *flow.State[UiState[[]LibraryNotes]]
	visibility      *flow.State[map[int64]bool]
	font            *flow.State[entities.Font]
	isSearchEnabled *flow.State[bool]
	searchTerm      *flow.State[string]
	state           *flow.State[AllNotesState]

	scrollToTop chan struct{}
}

// NewAllNotesViewModel создает модель в состоянии Loading. Комбинирование начинается в Start.
func NewAllNotesViewModel(
	libraries repositories.LibraryRepository,
	notes repositories.NoteRepository,
	settings *SettingsRepository,
) *AllNotesViewModel {
	data := Loading[[]LibraryNotes]()
	return &AllNotesViewModel{
		libraries:       libraries,
		notes:           notes,
		settings:        settings,
		data:            flow.NewState(data),
		visibility:      flow.NewState(map[int64]bool{}),
		font:            flow.NewState(entities.FontNunito),
		isSearchEnabled: flow.NewState(false),
		searchTerm:      flow.NewState(""),
		state:           flow.NewState(CombineAllNotes(data, nil, entities.FontNunito, false, "")),
		scrollToTop:     make(chan struct{}, 1),
	}
}

// Start подписывается на входы и пересчитывает состояние при изменении любого из них.
// Работает до отмены ctx или Close.
func (vm *AllNotesViewModel) Start(ctx context.Context) {
	fonts := vm.settings.Font(ctx)
	data := vm.data.Subscribe(ctx)
	visibility := vm.visibility.Subscribe(ctx)
	searchEnabled := vm.isSearchEnabled.Subscribe(ctx)
	terms := vm.searchTerm.Subscribe(ctx)

	go func() {
		for font := range fonts {
			vm.font.Set(font)
		}
	}()

	go func() {
		fontCh := vm.font.Subscribe(ctx)
		var (
			curData       = <-data
			curVisibility = <-visibility
			curFont       = <-fontCh
			curEnabled    = <-searchEnabled
			curTerm       = <-terms
			ok            bool
		)
		vm.state.Set(CombineAllNotes(curData, curVisibility, curFont, curEnabled, curTerm))
		for {
			select {
			case <-ctx.Done():
				return
			case curData, ok = <-data:
			case curVisibility, ok = <-visibility:
			case curFont, ok = <-fontCh:
			case curEnabled, ok = <-searchEnabled:
			case curTerm, ok = <-terms:
			}
			if !ok {
				return
			}
			vm.state.Set(CombineAllNotes(curData, curVisibility, curFont, curEnabled, curTerm))
		}
	}()
}

// State отдает комбинированное состояние.
func (vm *AllNotesViewModel) State(ctx context.Context) <-chan AllNotesState {
	return vm.state.Subscribe(ctx)
}

// Items отдает отрисованный список при каждом изменении состояния.
func (vm *AllNotesViewModel) Items(ctx context.Context) <-chan []Item {
	return flow.Map(ctx, vm.state.Subscribe(ctx), RenderAllNotes)
}

// Snapshot комбинирует текущие значения входов без ожидания фонового пересчета.
func (vm *AllNotesViewModel) Snapshot() AllNotesState {
	return CombineAllNotes(
		vm.data.Value(),
		vm.visibility.Value(),
		vm.font.Value(),
		vm.isSearchEnabled.Value(),
		vm.searchTerm.Value(),
	)
}

// ScrollToTop сигнализирует, что список нужно прокрутить в начало.
func (vm *AllNotesViewModel) ScrollToTop() <-chan struct{} {
	return vm.scrollToTop
}

// Refresh перечитывает библиотеки и заметки из хранилища.
func (vm *AllNotesViewModel) Refresh(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", "RefreshAllNotes"))

	libs, err := vm.libraries.List(ctx)
	if err != nil {
		log.Error(ctx, msgErrRefreshNotes, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxListingLibraries, err)
	}
	notes, err := vm.notes.ListWithLabels(ctx)
	if err != nil {
		log.Error(ctx, msgErrRefreshNotes, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxListingNotes, err)
	}

	groups := GroupNotes(libs, notes)
	vm.data.Set(Success(groups))
	log.Debug(ctx, msgAllNotesRefreshed, zap.Int("groups", len(groups)))
	return nil
}

// EnableSearch включает поиск и запрашивает прокрутку в начало.
func (vm *AllNotesViewModel) EnableSearch() {
	vm.isSearchEnabled.Set(true)
	select {
	case vm.scrollToTop <- struct{}{}:
	default:
	}
}

// DisableSearch выключает поиск и сбрасывает строку поиска.
func (vm *AllNotesViewModel) DisableSearch() {
	vm.isSearchEnabled.Set(false)
	vm.searchTerm.Set("")
}

func (vm *AllNotesViewModel) SetSearchTerm(term string) {
	vm.searchTerm.Set(term)
}

// ToggleVisibilityForLibrary меняет видимость одной группы.
func (vm *AllNotesViewModel) ToggleVisibilityForLibrary(libraryID int64) {
	vm.visibility.Update(func(current map[int64]bool) map[int64]bool {
		next := maps.Clone(current)
		visible, ok := next[libraryID]
		next[libraryID] = ok && !visible
		return next
	})
}

// CollapseAll скрывает все группы одним изменением.
func (vm *AllNotesViewModel) CollapseAll() {
	vm.setAllVisibility(false)
}

// ExpandAll показывает все группы одним изменением.
func (vm *AllNotesViewModel) ExpandAll() {
	vm.setAllVisibility(true)
}

// ToggleAllVisibility скрывает все группы, если видна хотя бы одна, иначе показывает все.
func (vm *AllNotesViewModel) ToggleAllVisibility() {
	state := vm.Snapshot()
	if state.Notes.IsLoading() {
		return
	}
	for _, group := range state.Notes.Value {
		if state.IsVisible(group.Library.ID) {
			vm.CollapseAll()
			return
		}
	}
	vm.ExpandAll()
}

func (vm *AllNotesViewModel) setAllVisibility(visible bool) {
	data := vm.data.Value()
	if data.IsLoading() {
		return
	}
	next := make(map[int64]bool, len(data.Value))
	for _, group := range data.Value {
		next[group.Library.ID] = visible
	}
	vm.visibility.Set(next)
}

// Close завершает все подписки модели.
func (vm *AllNotesViewModel) Close() {
	vm.data.Close()
	vm.visibility.Close()
	vm.font.Close()
	vm.isSearchEnabled.Close()
	vm.searchTerm.Close()
	vm.state.Close()
}

// ItemType - вид элемента отрисованного списка.
type ItemType string

const (
	ItemProgress    ItemType = "progress"
	ItemSearch      ItemType = "search"
	ItemPlaceholder ItemType = "placeholder"
	ItemHeader      ItemType = "header"
	ItemNote        ItemType = "note"
)

// PlaceholderNoNotes - текст заглушки пустого списка.
const PlaceholderNoNotes = "No notes found"

// HeaderItem - заголовок группы.
type HeaderItem struct {
	LibraryID int64              `json:"library_id"`
	Title     string             `json:"title"`
	Color     entities.NotoColor `json:"color"`
	IsVisible bool               `json:"is_visible"`
}

// NoteItem - заметка в списке.
type NoteItem struct {
	Note               entities.Note      `json:"note"`
	Labels             []entities.Label   `json:"labels"`
	Font               entities.Font      `json:"font"`
	Color              entities.NotoColor `json:"color"`
	PreviewSize        int                `json:"preview_size"`
	IsShowCreationDate bool               `json:"is_show_creation_date"`
}

// Item - элемент отрисованного списка. Заполнено только поле, соответствующее Type.
type Item struct {
	ID          string      `json:"id"`
	Type        ItemType    `json:"type"`
	SearchTerm  string      `json:"search_term,omitempty"`
	Placeholder string      `json:"placeholder,omitempty"`
	Header      *HeaderItem `json:"header,omitempty"`
	Note        *NoteItem   `json:"note,omitempty"`
}

// RenderAllNotes превращает состояние в упорядоченный список элементов.
func RenderAllNotes(state AllNotesState) []Item {
	if state.Notes.IsLoading() {
		return []Item{{ID: "progress", Type: ItemProgress}}
	}

	items := make([]Item, 0)
	if state.IsSearchEnabled {
		items = append(items, Item{ID: "search", Type: ItemSearch, SearchTerm: state.SearchTerm})
	}

	empty := true
	for _, group := range state.Notes.Value {
		if len(group.Notes) > 0 {
			empty = false
			break
		}
	}
	if empty {
		return append(items, Item{ID: "placeholder", Type: ItemPlaceholder, Placeholder: PlaceholderNoNotes})
	}

	for _, group := range state.Notes.Value {
		lib := group.Library
		visible := state.IsVisible(lib.ID)
		items = append(items, Item{
			ID:   "library " + strconv.FormatInt(lib.ID, 10),
			Type: ItemHeader,
			Header: &HeaderItem{
				LibraryID: lib.ID,
				Title:     lib.Title,
				Color:     lib.Color,
				IsVisible: visible,
			},
		})
		if !visible {
			continue
		}
		for _, n := range group.Notes {
			labels := n.Labels
			if labels == nil {
				labels = []entities.Label{}
			}
			items = append(items, Item{
				ID:   strconv.FormatInt(n.Note.ID, 10),
				Type: ItemNote,
				Note: &NoteItem{
					Note:               n.Note,
					Labels:             labels,
					Font:               state.Font,
					Color:              lib.Color,
					PreviewSize:        lib.NotePreviewSize,
					IsShowCreationDate: lib.IsShowNoteCreationDate,
				},
			})
		}
	}
	return items
}
