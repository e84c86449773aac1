package planner

import (
	"errors"
	"sync"
	"time"
)

// ErrItineraryNotFound is returned for unknown or evicted itineraries
var ErrItineraryNotFound = errors.New("itinerary not found")

type workspaceEntry struct {
	mu       sync.Mutex
	editor   *Editor
	lastUsed time.Time
}

// Workspace keeps the open editors of the server, one per itinerary id
type Workspace struct {
	mu        sync.Mutex
	entries   map[string]*workspaceEntry
	depth     int
	observers []func(id string, it ItineraryData)
	now       func() time.Time
}

// NewWorkspace creates an empty workspace whose editors keep depth snapshots.
func NewWorkspace(depth int) *Workspace {
	return &Workspace{
		entries: make(map[string]*workspaceEntry),
		depth:   depth,
		now:     time.Now,
	}
}

// OnChange registers an observer attached to every editor opened afterwards.
func (w *Workspace) OnChange(fn func(id string, it ItineraryData)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.observers = append(w.observers, fn)
}

// Open registers a freshly generated itinerary for editing.
func (w *Workspace) Open(it ItineraryData) *Editor {
	editor := NewEditor(it, w.depth)

	w.mu.Lock()
	defer w.mu.Unlock()

	id := it.ID
	for _, fn := range w.observers {
		fn := fn
		editor.Subscribe(func(snapshot ItineraryData) { fn(id, snapshot) })
	}
	w.entries[id] = &workspaceEntry{editor: editor, lastUsed: w.now()}
	return editor
}

// Do runs fn with exclusive access to the itinerary's editor.
func (w *Workspace) Do(id string, fn func(*Editor) error) error {
	w.mu.Lock()
	entry, ok := w.entries[id]
	w.mu.Unlock()
	if !ok {
		return ErrItineraryNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.lastUsed = w.now()
	return fn(entry.editor)
}

// Get returns the current snapshot of an itinerary.
func (w *Workspace) Get(id string) (ItineraryData, error) {
	var it ItineraryData
	err := w.Do(id, func(e *Editor) error {
		it = e.Current()
		return nil
	})
	return it, err
}

// Close drops the editor of an itinerary.
func (w *Workspace) Close(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.entries[id]
	delete(w.entries, id)
	return ok
}

// Len returns the number of open editors.
func (w *Workspace) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

// Sweep evicts editors untouched for longer than idle and returns how many
// were removed.
func (w *Workspace) Sweep(idle time.Duration) int {
	cutoff := w.now().Add(-idle)

	w.mu.Lock()
	defer w.mu.Unlock()

	removed := 0
	for id, entry := range w.entries {
		entry.mu.Lock()
		stale := entry.lastUsed.Before(cutoff)
		entry.mu.Unlock()
		if stale {
			delete(w.entries, id)
			removed++
		}
	}
	return removed
}
