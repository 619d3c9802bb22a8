package scene

import "time"

// CommandKind tags which scene mutation a Command performs.
type CommandKind int

const (
	CmdAddLine CommandKind = iota
	CmdRemoveLine
	CmdMoveEndpoint
	CmdMoveLine
	CmdAddSpawner
	CmdRemoveSpawner
	CmdMoveGroup
	CmdScaleGroup
	CmdClearAll
)

// LineGeom captures a line's geometry independent of identity.
type LineGeom struct {
	X1, Y1, X2, Y2 float64
}

func snapshotLine(l *Line) LineGeom {
	return LineGeom{X1: l.X1, Y1: l.Y1, X2: l.X2, Y2: l.Y2}
}

// spawnerSnapshot captures a spawner's position and interval.
type spawnerSnapshot struct {
	X, Y     float64
	Interval time.Duration
}

func snapshotSpawner(sp *Spawner) spawnerSnapshot {
	return spawnerSnapshot{X: sp.X, Y: sp.Y, Interval: sp.Interval}
}

// Command is one reversible scene mutation: a kind tag plus the
// snapshot data captured when the command was built. Execute and Undo
// switch on the tag; undo never reads live entity state, only the
// captured snapshots, so it stays correct no matter what happened to
// the scene in between.
//
// Commands that resurrect entities (undo of a removal, redo of an
// add) re-register the same object and rebuild its physics body, so
// other commands on the history that captured the pointer stay valid.
type Command struct {
	Kind CommandKind

	// Targets. line/spawner point at the live entity a single-entity
	// command operates on; lines/spawners are the group targets.
	line     *Line
	spawner  *Spawner
	lines    []*Line
	spawners []*Spawner

	// Captured state, populated per kind.
	endpoint     int
	oldPt, newPt Point
	oldGeom      LineGeom
	newGeom      LineGeom
	spawnerSnap  spawnerSnapshot
	dx, dy       float64
	oldBounds    Rect
	newBounds    Rect
}

// NewAddLineCommand builds a command that creates a line between the
// given endpoints.
func NewAddLineCommand(x1, y1, x2, y2 float64) *Command {
	return &Command{
		Kind:    CmdAddLine,
		newGeom: LineGeom{X1: x1, Y1: y1, X2: x2, Y2: y2},
	}
}

// NewRemoveLineCommand builds a command that removes the line,
// capturing its geometry now so undo can rebuild it.
func NewRemoveLineCommand(l *Line) *Command {
	return &Command{
		Kind:    CmdRemoveLine,
		line:    l,
		oldGeom: snapshotLine(l),
	}
}

// NewMoveEndpointCommand builds a command recording an endpoint drag.
// oldPt must be the endpoint position captured before the drag began,
// not read back from the line afterwards.
func NewMoveEndpointCommand(l *Line, which int, oldPt, newPt Point) *Command {
	return &Command{
		Kind:     CmdMoveEndpoint,
		line:     l,
		endpoint: which,
		oldPt:    oldPt,
		newPt:    newPt,
	}
}

// NewMoveLineCommand builds a command recording a whole-line drag from
// the pre-drag geometry to the final geometry.
func NewMoveLineCommand(l *Line, old, new LineGeom) *Command {
	return &Command{
		Kind:    CmdMoveLine,
		line:    l,
		oldGeom: old,
		newGeom: new,
	}
}

// NewAddSpawnerCommand builds a command that creates a spawner at the
// given position.
func NewAddSpawnerCommand(x, y float64) *Command {
	return &Command{
		Kind:        CmdAddSpawner,
		spawnerSnap: spawnerSnapshot{X: x, Y: y},
	}
}

// NewRemoveSpawnerCommand builds a command that removes the spawner,
// capturing position and interval for undo.
func NewRemoveSpawnerCommand(sp *Spawner) *Command {
	return &Command{
		Kind:        CmdRemoveSpawner,
		spawner:     sp,
		spawnerSnap: snapshotSpawner(sp),
	}
}

// NewMoveGroupCommand builds a command recording a finished group drag
// as its accumulated delta.
func NewMoveGroupCommand(lines []*Line, spawners []*Spawner, dx, dy float64) *Command {
	return &Command{
		Kind:     CmdMoveGroup,
		lines:    append([]*Line(nil), lines...),
		spawners: append([]*Spawner(nil), spawners...),
		dx:       dx,
		dy:       dy,
	}
}

// NewScaleGroupCommand builds a command recording a finished group
// resize as the original and final bounding boxes.
func NewScaleGroupCommand(lines []*Line, spawners []*Spawner, old, new Rect) *Command {
	return &Command{
		Kind:      CmdScaleGroup,
		lines:     append([]*Line(nil), lines...),
		spawners:  append([]*Spawner(nil), spawners...),
		oldBounds: old,
		newBounds: new,
	}
}

// NewClearAllCommand builds a command that clears the scene, capturing
// every line and spawner so undo can put all of them back. Balls are
// not captured; they are ephemeral.
func NewClearAllCommand(m *Manager) *Command {
	return &Command{
		Kind:     CmdClearAll,
		lines:    append([]*Line(nil), m.Lines()...),
		spawners: append([]*Spawner(nil), m.Spawners()...),
	}
}

// Execute applies the command's forward mutation. It reports whether
// the command took effect; a false return means the command must not
// be pushed onto the history.
func (c *Command) Execute(m *Manager) bool {
	switch c.Kind {
	case CmdAddLine:
		if c.line == nil {
			c.line = m.AddLine(c.newGeom.X1, c.newGeom.Y1, c.newGeom.X2, c.newGeom.Y2)
			return c.line != nil
		}
		// Redo: put the same line back.
		m.restoreLine(c.line)
		return true

	case CmdRemoveLine:
		m.RemoveLine(c.line)
		return true

	case CmdMoveEndpoint:
		m.SetLineEndpoint(c.line, c.endpoint, c.newPt.X, c.newPt.Y)
		return true

	case CmdMoveLine:
		m.SetLinePosition(c.line, c.newGeom.X1, c.newGeom.Y1, c.newGeom.X2, c.newGeom.Y2)
		return true

	case CmdAddSpawner:
		if c.spawner == nil {
			c.spawner = m.AddSpawner(c.spawnerSnap.X, c.spawnerSnap.Y)
			return c.spawner != nil
		}
		m.restoreSpawner(c.spawner)
		return true

	case CmdRemoveSpawner:
		m.RemoveSpawner(c.spawner)
		return true

	case CmdMoveGroup:
		m.MoveGroup(c.lines, c.spawners, c.dx, c.dy)
		return true

	case CmdScaleGroup:
		m.ScaleGroup(c.lines, c.spawners, c.oldBounds, c.newBounds)
		return true

	case CmdClearAll:
		m.Clear()
		return true
	}
	return false
}

// Undo applies the exact inverse of Execute using only captured data.
func (c *Command) Undo(m *Manager) {
	switch c.Kind {
	case CmdAddLine:
		m.RemoveLine(c.line)

	case CmdRemoveLine:
		m.restoreLine(c.line)

	case CmdMoveEndpoint:
		m.SetLineEndpoint(c.line, c.endpoint, c.oldPt.X, c.oldPt.Y)

	case CmdMoveLine:
		m.SetLinePosition(c.line, c.oldGeom.X1, c.oldGeom.Y1, c.oldGeom.X2, c.oldGeom.Y2)

	case CmdAddSpawner:
		m.RemoveSpawner(c.spawner)

	case CmdRemoveSpawner:
		m.restoreSpawner(c.spawner)
		c.spawner.Interval = c.spawnerSnap.Interval

	case CmdMoveGroup:
		m.MoveGroup(c.lines, c.spawners, -c.dx, -c.dy)

	case CmdScaleGroup:
		m.ScaleGroup(c.lines, c.spawners, c.newBounds, c.oldBounds)

	case CmdClearAll:
		for _, l := range c.lines {
			m.restoreLine(l)
		}
		for _, sp := range c.spawners {
			m.restoreSpawner(sp)
		}
	}
}
