package planner

// DefaultHistoryDepth is the number of snapshots kept for undo
const DefaultHistoryDepth = 10

// Observer is notified with every new current snapshot
type Observer func(ItineraryData)

// Editor applies mutations to an itinerary and keeps a bounded undo history.
// It is not safe for concurrent use; Workspace serialises access.
type Editor struct {
	current   ItineraryData
	history   []ItineraryData
	depth     int
	observers []Observer
}

// NewEditor starts an editing session on the generated itinerary.
func NewEditor(initial ItineraryData, depth int) *Editor {
	if depth < 2 {
		depth = DefaultHistoryDepth
	}
	return &Editor{
		current: initial,
		history: []ItineraryData{initial},
		depth:   depth,
	}
}

// Subscribe registers an observer for snapshot changes.
func (e *Editor) Subscribe(fn Observer) {
	e.observers = append(e.observers, fn)
}

// Current returns the current snapshot.
func (e *Editor) Current() ItineraryData {
	return e.current.Clone()
}

// CanUndo reports whether there is a snapshot to step back to.
func (e *Editor) CanUndo() bool {
	return len(e.history) > 1
}

// HistoryLen returns the number of snapshots held for undo.
func (e *Editor) HistoryLen() int {
	return len(e.history)
}

// AddActivity appends an activity to a day.
func (e *Editor) AddActivity(activity Activity, day int) (ItineraryData, error) {
	next, err := AddActivity(e.current, activity, day)
	if err != nil {
		return e.Current(), err
	}
	e.commit(next)
	return e.Current(), nil
}

// RemoveActivity removes an activity from a day.
func (e *Editor) RemoveActivity(activityID string, day int) (ItineraryData, error) {
	next, err := RemoveActivity(e.current, activityID, day)
	if err != nil {
		return e.Current(), err
	}
	e.commit(next)
	return e.Current(), nil
}

// ReorderWithinDay moves an activity inside a day. Equal indices are a no-op
// and leave the history untouched.
func (e *Editor) ReorderWithinDay(day, from, to int) (ItineraryData, error) {
	next, err := ReorderWithinDay(e.current, day, from, to)
	if err != nil {
		return e.Current(), err
	}
	if from != to {
		e.commit(next)
	}
	return e.Current(), nil
}

// MoveBetweenDays moves an activity to the end of another day.
func (e *Editor) MoveBetweenDays(activityID string, fromDay, toDay int) (ItineraryData, error) {
	next, err := MoveBetweenDays(e.current, activityID, fromDay, toDay)
	if err != nil {
		return e.Current(), err
	}
	if fromDay != toDay {
		e.commit(next)
	}
	return e.Current(), nil
}

// Undo restores the most recent history entry. It reports false and changes
// nothing when only the initial snapshot remains.
func (e *Editor) Undo() (ItineraryData, bool) {
	if !e.CanUndo() {
		return e.Current(), false
	}

	last := len(e.history) - 1
	e.current = e.history[last]
	e.history = e.history[:last]
	e.notify()
	return e.Current(), true
}

// commit pushes the pre-mutation snapshot and makes next current.
func (e *Editor) commit(next ItineraryData) {
	e.history = append(e.history, e.current)
	if len(e.history) > e.depth {
		e.history = append([]ItineraryData(nil), e.history[len(e.history)-e.depth:]...)
	}
	e.current = next
	e.notify()
}

func (e *Editor) notify() {
	for _, fn := range e.observers {
		fn(e.Current())
	}
}
