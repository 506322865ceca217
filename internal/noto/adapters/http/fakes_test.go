package http_test

import (
	"context"
	"sort"
	"sync"

	"noto/internal/noto/domain/entities"
)

// memoryRepos - репозитории в памяти для сквозных тестов API.
type memoryRepos struct {
	mu        sync.Mutex
	libraries map[int64]*entities.Library
	notes     map[int64]*entities.Note
	labels    map[int64]*entities.Label
	links     map[int64][]int64
	nextID    int64
}

func newMemoryRepos() *memoryRepos {
	inbox := entities.NewLibrary(entities.InboxLibraryID, 0)
	inbox.Title = "Inbox"
	return &memoryRepos{
		libraries: map[int64]*entities.Library{inbox.ID: inbox},
		notes:     map[int64]*entities.Note{},
		labels:    map[int64]*entities.Label{},
		links:     map[int64][]int64{},
		nextID:    100,
	}
}

func (r *memoryRepos) id() int64 {
	r.nextID++
	return r.nextID
}

type libraryRepo struct{ *memoryRepos }

func (r libraryRepo) Create(_ context.Context, library *entities.Library) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lib := *library
	lib.ID = r.id()
	r.libraries[lib.ID] = &lib
	return lib.ID, nil
}

func (r libraryRepo) GetByID(_ context.Context, libraryID int64) (*entities.Library, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lib, ok := r.libraries[libraryID]
	if !ok {
		return nil, entities.ErrLibraryNotFound
	}
	out := *lib
	return &out, nil
}

func (r libraryRepo) List(_ context.Context) ([]*entities.Library, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.Library, 0, len(r.libraries))
	for _, lib := range r.libraries {
		l := *lib
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r libraryRepo) Update(_ context.Context, library *entities.Library) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.libraries[library.ID]; !ok {
		return entities.ErrLibraryNotFound
	}
	lib := *library
	r.libraries[lib.ID] = &lib
	return nil
}

func (r libraryRepo) Delete(_ context.Context, libraryID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.libraries[libraryID]; !ok {
		return entities.ErrLibraryNotFound
	}
	delete(r.libraries, libraryID)
	for id, n := range r.notes {
		if n.LibraryID == libraryID {
			delete(r.notes, id)
		}
	}
	return nil
}

func (r libraryRepo) CountNotes(_ context.Context) (map[int64]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[int64]int{}
	for _, n := range r.notes {
		if !n.IsArchived {
			counts[n.LibraryID]++
		}
	}
	return counts, nil
}

type noteRepo struct{ *memoryRepos }

func (r noteRepo) Create(_ context.Context, note *entities.Note) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := *note
	n.ID = r.id()
	r.notes[n.ID] = &n
	return n.ID, nil
}

func (r noteRepo) GetByID(_ context.Context, noteID int64) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[noteID]
	if !ok {
		return nil, entities.ErrNoteNotFound
	}
	out := *n
	return &out, nil
}

func (r noteRepo) ListByLibraryID(_ context.Context, libraryID int64) ([]*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.Note, 0)
	for _, n := range r.notes {
		if n.LibraryID == libraryID {
			c := *n
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r noteRepo) ListWithLabels(_ context.Context) ([]entities.NoteWithLabels, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.NoteWithLabels, 0)
	for _, n := range r.notes {
		if n.IsArchived {
			continue
		}
		labels := []entities.Label{}
		for _, labelID := range r.links[n.ID] {
			labels = append(labels, *r.labels[labelID])
		}
		out = append(out, entities.NoteWithLabels{Note: *n, Labels: labels})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Note.ID < out[j].Note.ID })
	return out, nil
}

func (r noteRepo) Update(_ context.Context, note *entities.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[note.ID]; !ok {
		return entities.ErrNoteNotFound
	}
	n := *note
	r.notes[n.ID] = &n
	return nil
}

func (r noteRepo) Delete(_ context.Context, noteID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[noteID]; !ok {
		return entities.ErrNoteNotFound
	}
	delete(r.notes, noteID)
	return nil
}

type labelRepo struct{ *memoryRepos }

func (r labelRepo) Create(_ context.Context, label *entities.Label) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l := *label
	l.ID = r.id()
	r.labels[l.ID] = &l
	return l.ID, nil
}

func (r labelRepo) ListByLibraryID(_ context.Context, libraryID int64) ([]*entities.Label, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.Label, 0)
	for _, l := range r.labels {
		if l.LibraryID == libraryID {
			c := *l
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r labelRepo) Attach(_ context.Context, noteID, labelID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.links[noteID] {
		if id == labelID {
			return nil
		}
	}
	r.links[noteID] = append(r.links[noteID], labelID)
	return nil
}
