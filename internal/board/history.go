package board

import "taskboard/internal/model"

// HistoryLimit is the number of snapshots kept for undo.
const HistoryLimit = 50

// History is a bounded, linear list of snapshots with a cursor pointing at
// the active one. Recording while the cursor is behind the tail discards
// the redo branch.
type History struct {
	entries []model.Snapshot
	cursor  int
	limit   int
}

func NewHistory() *History {
	return &History{cursor: -1, limit: HistoryLimit}
}

// Record appends s. When the list overflows the oldest entry is evicted and
// the cursor keeps pointing at s.
func (h *History) Record(s model.Snapshot) {
	h.DropRedo()
	h.entries = append(h.entries, s)
	if len(h.entries) > h.limit {
		h.entries[0] = model.Snapshot{}
		h.entries = h.entries[1:]
		return
	}
	h.cursor++
}

// DropRedo discards every entry after the cursor.
func (h *History) DropRedo() {
	if h.cursor < len(h.entries)-1 {
		h.entries = h.entries[:h.cursor+1]
	}
}

// Undo steps back one entry and returns it.
func (h *History) Undo() (model.Snapshot, bool) {
	if h.cursor <= 0 {
		return model.Snapshot{}, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Redo steps forward one entry and returns it.
func (h *History) Redo() (model.Snapshot, bool) {
	if h.cursor >= len(h.entries)-1 {
		return model.Snapshot{}, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

func (h *History) CanUndo() bool { return h.cursor > 0 }

func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }

func (h *History) Len() int { return len(h.entries) }

func (h *History) Cursor() int { return h.cursor }

func (h *History) Reset() {
	h.entries = nil
	h.cursor = -1
}
