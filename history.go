package pixedit

import "image"

// History is a linear undo/redo stack of buffer snapshots. Snapshots are
// treated as immutable once pushed; callers hand in copies they will not
// touch again.
//
// The cursor always addresses a valid snapshot except before the first push,
// when the stack is empty and the cursor is -1.
type History struct {
	snapshots []image.Image
	cursor    int
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{cursor: -1}
}

// Push commits a snapshot. If the cursor is not at the tail, everything
// after it is discarded first: new edits truncate the redo branch rather
// than preserving it as a tree.
func (h *History) Push(snap image.Image) {
	h.snapshots = append(h.snapshots[:h.cursor+1], snap)
	h.cursor = len(h.snapshots) - 1
}

// Undo steps the cursor back and returns the snapshot at the new position.
// At the bottom of the stack it is a no-op and returns ok=false.
func (h *History) Undo() (image.Image, bool) {
	if h.cursor <= 0 {
		return nil, false
	}
	h.cursor--
	return h.snapshots[h.cursor], true
}

// Redo steps the cursor forward and returns the snapshot at the new
// position. At the tail it is a no-op and returns ok=false.
func (h *History) Redo() (image.Image, bool) {
	if h.cursor < 0 || h.cursor >= len(h.snapshots)-1 {
		return nil, false
	}
	h.cursor++
	return h.snapshots[h.cursor], true
}

// Current returns the snapshot at the cursor, or nil while empty.
func (h *History) Current() image.Image {
	if h.cursor < 0 {
		return nil
	}
	return h.snapshots[h.cursor]
}

// Len returns the number of snapshots on the stack.
func (h *History) Len() int {
	return len(h.snapshots)
}

// Cursor returns the current snapshot index, or -1 while empty.
func (h *History) Cursor() int {
	return h.cursor
}

// CanUndo reports whether Undo would move the cursor.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether Redo would move the cursor.
func (h *History) CanRedo() bool {
	return h.cursor >= 0 && h.cursor < len(h.snapshots)-1
}
