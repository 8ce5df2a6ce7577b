// Package history implements the linear undo/redo stack of annotation
// records.
package history

import (
	"log/slog"

	"github.com/example/annotator/internal/shape"
)

// Entry is one authored step: either the creation of Record or, when
// Edit is set, an edit appended to Record's log.
type Entry struct {
	Record *shape.Record
	Edit   *shape.Edit
}

// Creation returns an entry for a newly created record.
func Creation(r *shape.Record) Entry {
	return Entry{Record: r}
}

// Modification returns an entry for an edit already appended to its owner.
func Modification(e *shape.Edit) Entry {
	return Entry{Record: e.Owner(), Edit: e}
}

// IsEdit reports whether the entry records an edit.
func (e Entry) IsEdit() bool {
	return e.Edit != nil
}

// Snapshot is a copy of the stack's entries and cursor.
type Snapshot struct {
	Entries []Entry
	Index   int
}

// Stack is an ordered log of entries with an undo cursor. Index is -1
// when nothing is authored or everything is undone.
type Stack struct {
	entries   []Entry
	index     int
	listeners map[int]func(*Stack)
	nextID    int
	log       *slog.Logger
}

// Option configures a Stack.
type Option func(*Stack)

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *slog.Logger) Option {
	return func(s *Stack) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns an empty stack.
func New(opts ...Option) *Stack {
	s := &Stack{
		index:     -1,
		listeners: map[int]func(*Stack){},
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers fn to run after every change. The returned func
// removes it.
func (s *Stack) OnChange(fn func(*Stack)) func() {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *Stack) changed() {
	for _, fn := range s.listeners {
		fn(s)
	}
}

// Push discards any undone entries, appends e and moves the cursor onto it.
func (s *Stack) Push(e Entry) {
	if e.Record == nil {
		return
	}
	for _, dropped := range s.entries[s.index+1:] {
		if dropped.IsEdit() {
			dropped.Record.Prune()
		}
	}
	s.entries = append(s.entries[:s.index+1], e)
	s.index = len(s.entries) - 1
	s.log.Debug("history push", "kind", e.Record.Kind, "edit", e.IsEdit(), "index", s.index)
	s.changed()
}

// Undo steps the cursor back one entry.
func (s *Stack) Undo() bool {
	if s.index < 0 {
		return false
	}
	e := s.entries[s.index]
	if e.IsEdit() {
		e.Record.Retract()
	} else {
		e.Record.Selected = false
	}
	s.index--
	s.log.Debug("history undo", "index", s.index)
	s.changed()
	return true
}

// Redo steps the cursor forward one entry.
func (s *Stack) Redo() bool {
	if s.index+1 >= len(s.entries) {
		return false
	}
	s.index++
	if e := s.entries[s.index]; e.IsEdit() {
		e.Record.Reinstate()
	}
	s.log.Debug("history redo", "index", s.index)
	s.changed()
	return true
}

// Select marks r as the only selected record.
func (s *Stack) Select(r *shape.Record) {
	for _, e := range s.entries {
		if !e.IsEdit() {
			e.Record.Selected = e.Record == r
		}
	}
	s.changed()
}

// ClearSelect deselects every record.
func (s *Stack) ClearSelect() {
	for _, e := range s.entries {
		if !e.IsEdit() {
			e.Record.Selected = false
		}
	}
	s.changed()
}

// Snapshot returns a copy of the entries and cursor.
func (s *Stack) Snapshot() Snapshot {
	return Snapshot{
		Entries: append([]Entry(nil), s.entries...),
		Index:   s.index,
	}
}

// Set replaces the whole structure. Each record's log is retracted or
// reinstated so that exactly its edits up to the cursor apply.
func (s *Stack) Set(snap Snapshot) {
	s.entries = append([]Entry(nil), snap.Entries...)
	s.index = snap.Index
	if s.index >= len(s.entries) {
		s.index = len(s.entries) - 1
	}
	if s.index < -1 {
		s.index = -1
	}
	s.realign()
	s.changed()
}

func (s *Stack) realign() {
	want := map[*shape.Record]int{}
	for i, e := range s.entries {
		if e.Record == nil {
			continue
		}
		if _, ok := want[e.Record]; !ok {
			want[e.Record] = 0
		}
		if e.IsEdit() && i <= s.index {
			want[e.Record]++
		}
	}
	for r, n := range want {
		for len(r.Edits()) > n && r.Retract() {
		}
		for len(r.Edits()) < n && r.Reinstate() {
		}
	}
}

// Refresh publishes an in-place mutation of an already pushed entry.
func (s *Stack) Refresh() {
	s.changed()
}

// Top returns the entry at the cursor.
func (s *Stack) Top() (Entry, bool) {
	if s.index < 0 {
		return Entry{}, false
	}
	return s.entries[s.index], true
}

// Index returns the cursor position.
func (s *Stack) Index() int {
	return s.index
}

// Len returns the number of entries, including undone ones.
func (s *Stack) Len() int {
	return len(s.entries)
}

// CanUndo reports whether Undo would move the cursor.
func (s *Stack) CanUndo() bool {
	return s.index >= 0
}

// CanRedo reports whether Redo would move the cursor.
func (s *Stack) CanRedo() bool {
	return s.index+1 < len(s.entries)
}

// Records returns the created records up to the cursor, oldest first.
func (s *Stack) Records() []*shape.Record {
	var out []*shape.Record
	for _, e := range s.entries[:s.index+1] {
		if !e.IsEdit() {
			out = append(out, e.Record)
		}
	}
	return out
}

// Selected returns the selected record among Records, or nil.
func (s *Stack) Selected() *shape.Record {
	for _, r := range s.Records() {
		if r.Selected {
			return r
		}
	}
	return nil
}
