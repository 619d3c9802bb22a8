package scene

// History is a bounded linear undo/redo log. Discrete actions go
// through Do, which executes and records; finished drag gestures go
// through Push, because their mutation already happened live during
// the drag and running Execute again would apply it twice.
type History struct {
	undo []*Command
	redo []*Command
	max  int
}

// NewHistory creates a history holding at most max commands. The
// oldest command is dropped silently when the bound is exceeded.
func NewHistory(max int) *History {
	if max < 1 {
		max = 1
	}
	return &History{max: max}
}

// Do executes the command and, if it took effect, records it. Commands
// that report no effect (for example an AddLine below the minimum
// length) are discarded so the undo stack stays semantically
// meaningful. Any recorded command clears the redo stack.
func (h *History) Do(m *Manager, c *Command) bool {
	if !c.Execute(m) {
		return false
	}
	h.push(c)
	return true
}

// Push records a command whose mutation already happened, without
// executing it. Used for drag-built commands.
func (h *History) Push(c *Command) {
	h.push(c)
}

// Undo reverts the most recent command and moves it to the redo stack.
// Returns false if there was nothing to undo.
func (h *History) Undo(m *Manager) bool {
	if len(h.undo) == 0 {
		return false
	}
	c := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	c.Undo(m)
	h.redo = append(h.redo, c)
	return true
}

// Redo re-applies the most recently undone command and moves it back
// to the undo stack. Returns false if there was nothing to redo.
func (h *History) Redo(m *Manager) bool {
	if len(h.redo) == 0 {
		return false
	}
	c := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	c.Execute(m)
	h.undo = append(h.undo, c)
	return true
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the number of commands on the undo stack.
func (h *History) Len() int { return len(h.undo) }

func (h *History) push(c *Command) {
	h.undo = append(h.undo, c)
	if len(h.undo) > h.max {
		// Drop the oldest; copy down so the backing array does not
		// pin discarded commands.
		copy(h.undo, h.undo[1:])
		h.undo[len(h.undo)-1] = nil
		h.undo = h.undo[:len(h.undo)-1]
	}
	h.redo = h.redo[:0]
}
