// Package history keeps the undo and redo stacks of markdown snapshots for an
// editing session.
package history

import (
	"github.com/emirpasic/gods/lists/doublylinkedlist"
)

// DefaultDepth is the number of undo steps kept when none is configured.
const DefaultDepth = 20

// History is a bounded undo stack plus a redo stack. The front of each list
// is the most recent entry. It is not safe for concurrent use.
type History struct {
	undo  *doublylinkedlist.List
	redo  *doublylinkedlist.List
	depth int
}

// New creates a history holding at most depth undo entries.
func New(depth int) *History {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &History{
		undo:  doublylinkedlist.New(),
		redo:  doublylinkedlist.New(),
		depth: depth,
	}
}

// Record saves the state before a mutation. A new edit invalidates every
// redo entry. When the stack is full the oldest entry is evicted.
func (h *History) Record(current string) {
	h.undo.Prepend(current)
	for h.undo.Size() > h.depth {
		h.undo.Remove(h.undo.Size() - 1)
	}
	h.redo.Clear()
}

// Undo returns the previous state and moves current onto the redo stack.
func (h *History) Undo(current string) (string, bool) {
	prev, ok := pop(h.undo)
	if !ok {
		return "", false
	}
	h.redo.Prepend(current)
	return prev, true
}

// Redo returns the most recently undone state and moves current back onto
// the undo stack.
func (h *History) Redo(current string) (string, bool) {
	next, ok := pop(h.redo)
	if !ok {
		return "", false
	}
	h.undo.Prepend(current)
	for h.undo.Size() > h.depth {
		h.undo.Remove(h.undo.Size() - 1)
	}
	return next, true
}

func (h *History) CanUndo() bool {
	return !h.undo.Empty()
}

func (h *History) CanRedo() bool {
	return !h.redo.Empty()
}

// UndoDepth is the number of available undo steps.
func (h *History) UndoDepth() int {
	return h.undo.Size()
}

// RedoDepth is the number of available redo steps.
func (h *History) RedoDepth() int {
	return h.redo.Size()
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.undo.Clear()
	h.redo.Clear()
}

func pop(l *doublylinkedlist.List) (string, bool) {
	v, ok := l.Get(0)
	if !ok {
		return "", false
	}
	l.Remove(0)
	return v.(string), true
}
