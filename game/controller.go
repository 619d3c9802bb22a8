package game

import (
	"math"
	"math/rand"
	"time"

	"linechime/scene"
)

// Mode is the controller's current interaction state. Exactly one mode
// is active at a time.
type Mode int

const (
	// ModeIdle means no gesture is in progress; the pointer only
	// updates hover targets.
	ModeIdle Mode = iota

	// ModeDrawing stretches a new line from a fixed start point to the
	// live pointer position.
	ModeDrawing

	// ModeDragEndpoint drags one endpoint of an existing line.
	ModeDragEndpoint

	// ModeDragLine drags a whole line.
	ModeDragLine

	// ModeDragGroup drags the multi-selection.
	ModeDragGroup

	// ModeResizeGroup resizes the multi-selection by a handle.
	ModeResizeGroup

	// ModeAreaSelect stretches a selection rectangle.
	ModeAreaSelect
)

// ChromeAction identifies a UI chrome element the renderer lays out
// and the controller hit-tests on pointer-down.
type ChromeAction int

const (
	ChromeHelp ChromeAction = iota
	ChromeDeleteSelection
)

// ChromeRegion is one clickable chrome element's bounds for the next
// hit-test pass.
type ChromeRegion struct {
	Bounds scene.Rect
	Action ChromeAction
}

// ControllerHooks are the app-level reactions the controller triggers
// but does not own. Injected at construction so the controller never
// reaches back into the game object.
type ControllerHooks struct {
	// ToggleHelp flips the help overlay.
	ToggleHelp func()

	// FirstGesture fires once on the first pointer-down, for
	// gesture-gated audio init.
	FirstGesture func()
}

// Controller is the interaction state machine. It turns pointer events
// into scene mutations, always through the manager's operations or
// through commands, and owns all transient interaction state: hover
// targets, the single and multi selection, and the active gesture.
type Controller struct {
	cfg     Config
	scene   *scene.Manager
	history *scene.History
	hooks   ControllerHooks

	mode      Mode
	hover     Hover
	selected  *scene.Line
	selection Selection

	chrome []ChromeRegion

	// Pointer state shared by all gestures.
	pointerDown    bool
	pressX, pressY float64
	curX, curY     float64
	pressTime      time.Time
	gestured       bool

	// Held-pointer spray.
	lastSpray time.Time

	// Endpoint drag.
	dragLine  *scene.Line
	dragEnd   int
	dragOldPt scene.Point

	// Whole-line drag.
	dragOldGeom scene.LineGeom

	// Group resize.
	resizeHandle int
	resizeOrig   scene.Rect
}

// NewController creates a controller bound to a scene manager and a
// command history.
func NewController(cfg Config, m *scene.Manager, h *scene.History, hooks ControllerHooks) *Controller {
	return &Controller{
		cfg:          cfg,
		scene:        m,
		history:      h,
		hooks:        hooks,
		hover:        emptyHover(),
		resizeHandle: handleNone,
	}
}

// Mode returns the active interaction mode.
func (c *Controller) Mode() Mode { return c.mode }

// Hover returns the current hover targets.
func (c *Controller) Hover() Hover { return c.hover }

// Selected returns the single-selected line, if any.
func (c *Controller) Selected() *scene.Line { return c.selected }

// Selection returns the multi-selection.
func (c *Controller) Selection() *Selection { return &c.selection }

// SetChrome installs the chrome hit regions the renderer produced for
// the current frame.
func (c *Controller) SetChrome(regions []ChromeRegion) {
	c.chrome = regions
}

// DrawingLine returns the in-progress line geometry and whether a draw
// gesture is active.
func (c *Controller) DrawingLine() (x1, y1, x2, y2 float64, ok bool) {
	if c.mode != ModeDrawing {
		return 0, 0, 0, 0, false
	}
	return c.pressX, c.pressY, c.curX, c.curY, true
}

// AreaRect returns the in-progress area-selection rectangle and
// whether an area-select gesture is active.
func (c *Controller) AreaRect() (scene.Rect, bool) {
	if c.mode != ModeAreaSelect {
		return scene.Rect{}, false
	}
	return scene.NormalizedRect(c.pressX, c.pressY, c.curX, c.curY), true
}

// PointerDown starts a gesture. The next state is chosen by a fixed
// priority: chrome hit or spawner removal first (handled immediately,
// no mode change), then a resize handle, then the selection box, then
// a hovered endpoint, then a hovered line, and finally area-select or
// drawing depending on the modifier key.
func (c *Controller) PointerDown(x, y float64, now time.Time, areaModifier bool) {
	if !c.gestured {
		c.gestured = true
		if c.hooks.FirstGesture != nil {
			c.hooks.FirstGesture()
		}
	}

	c.pointerDown = true
	c.pressX, c.pressY = x, y
	c.curX, c.curY = x, y
	c.pressTime = now
	c.lastSpray = time.Time{}

	// Chrome wins over everything and changes no state.
	for _, region := range c.chrome {
		if region.Bounds.Contains(x, y) {
			c.pointerDown = false
			c.runChrome(region.Action)
			return
		}
	}
	if sp := c.scene.NearestSpawner(x, y, c.cfg.SpawnerHoverDist); sp != nil {
		c.pointerDown = false
		c.history.Do(c.scene, scene.NewRemoveSpawnerCommand(sp))
		c.updateHover(x, y)
		return
	}

	if h := c.selection.HandleAt(x, y, c.cfg.HandleSize); h != handleNone {
		c.mode = ModeResizeGroup
		c.resizeHandle = h
		c.resizeOrig = c.selection.Bounds
		return
	}

	if !c.selection.Empty() && c.selection.Bounds.Contains(x, y) {
		c.mode = ModeDragGroup
		return
	}

	if l, which := c.scene.NearestEndpoint(x, y, c.cfg.EndpointHoverDist); l != nil {
		c.mode = ModeDragEndpoint
		c.dragLine = l
		c.dragEnd = which
		c.dragOldPt = l.Endpoint(which)
		return
	}

	if l := c.scene.NearestLine(x, y, c.cfg.LineHoverDist); l != nil {
		c.mode = ModeDragLine
		c.dragLine = l
		c.selected = l
		c.dragOldGeom = scene.LineGeom{X1: l.X1, Y1: l.Y1, X2: l.X2, Y2: l.Y2}
		return
	}

	if areaModifier {
		c.mode = ModeAreaSelect
		return
	}
	c.mode = ModeDrawing
}

// PointerMove routes pointer motion to the active mode. Drag modes
// mutate the scene live for responsive feedback; the matching command
// is only built at release.
func (c *Controller) PointerMove(x, y float64) {
	dx := x - c.curX
	dy := y - c.curY
	c.curX, c.curY = x, y

	switch c.mode {
	case ModeIdle:
		c.updateHover(x, y)

	case ModeDrawing, ModeAreaSelect:
		// Geometry is derived from pressX/curX at draw or release time.

	case ModeDragEndpoint:
		c.scene.SetLineEndpoint(c.dragLine, c.dragEnd, x, y)

	case ModeDragLine:
		tx := x - c.pressX
		ty := y - c.pressY
		g := c.dragOldGeom
		c.scene.SetLinePosition(c.dragLine, g.X1+tx, g.Y1+ty, g.X2+tx, g.Y2+ty)

	case ModeDragGroup:
		c.scene.MoveGroup(c.selection.Lines, c.selection.Spawners, dx, dy)
		c.selection.RecomputeBounds()

	case ModeResizeGroup:
		target := resizeBounds(c.selection.Bounds, c.resizeHandle, x, y)
		if !validResizeBounds(target, c.cfg.MinSelectionSize) {
			return
		}
		c.scene.ScaleGroup(c.selection.Lines, c.selection.Spawners, c.selection.Bounds, target)
		c.selection.Bounds = target
	}
}

// PointerUp finalizes the active gesture. Drag gestures that actually
// moved something push their pre-executed command; a draw gesture that
// stayed under the minimum length degrades into a click or hold.
func (c *Controller) PointerUp(x, y float64, now time.Time) {
	if !c.pointerDown {
		return
	}
	c.pointerDown = false
	c.curX, c.curY = x, y
	mode := c.mode
	c.mode = ModeIdle

	switch mode {
	case ModeDrawing:
		c.finishDrawing(x, y, now)

	case ModeDragEndpoint:
		newPt := c.dragLine.Endpoint(c.dragEnd)
		if newPt != c.dragOldPt {
			c.history.Push(scene.NewMoveEndpointCommand(c.dragLine, c.dragEnd, c.dragOldPt, newPt))
		}
		c.dragLine = nil

	case ModeDragLine:
		l := c.dragLine
		newGeom := scene.LineGeom{X1: l.X1, Y1: l.Y1, X2: l.X2, Y2: l.Y2}
		if newGeom != c.dragOldGeom {
			c.history.Push(scene.NewMoveLineCommand(l, c.dragOldGeom, newGeom))
		}
		c.dragLine = nil

	case ModeDragGroup:
		dx := x - c.pressX
		dy := y - c.pressY
		if dx != 0 || dy != 0 {
			c.history.Push(scene.NewMoveGroupCommand(c.selection.Lines, c.selection.Spawners, dx, dy))
		}

	case ModeResizeGroup:
		if c.selection.Bounds != c.resizeOrig {
			c.history.Push(scene.NewScaleGroupCommand(c.selection.Lines, c.selection.Spawners, c.resizeOrig, c.selection.Bounds))
		}
		c.resizeHandle = handleNone

	case ModeAreaSelect:
		lines, spawners := c.scene.EntitiesInArea(scene.NormalizedRect(c.pressX, c.pressY, x, y))
		c.selection.Set(lines, spawners)
		c.selected = nil
	}

	c.updateHover(x, y)
}

// finishDrawing ends a draw gesture: a long enough stroke becomes an
// undoable line, otherwise the press is classified as a click (one
// ball) or a hold (a spawner).
func (c *Controller) finishDrawing(x, y float64, now time.Time) {
	cmd := scene.NewAddLineCommand(c.pressX, c.pressY, x, y)
	if c.history.Do(c.scene, cmd) {
		return
	}
	if now.Sub(c.pressTime) >= c.cfg.HoldThreshold() {
		c.history.Do(c.scene, scene.NewAddSpawnerCommand(x, y))
		return
	}
	c.scene.AddBall(x, y)
}

// Tick runs per-frame gesture upkeep: a pointer held still past the
// hold threshold sprays balls near the cursor at a fixed minimum
// interval. Sprayed balls are ephemeral and never recorded.
func (c *Controller) Tick(now time.Time) {
	if !c.pointerDown || c.mode != ModeDrawing {
		return
	}
	if distance(c.pressX, c.pressY, c.curX, c.curY) >= c.cfg.MinLineLength {
		return
	}
	if now.Sub(c.pressTime) < c.cfg.HoldThreshold() {
		return
	}
	if !c.lastSpray.IsZero() && now.Sub(c.lastSpray) < c.cfg.SprayInterval() {
		return
	}
	c.lastSpray = now
	jitter := c.cfg.BallRadius * 2
	c.scene.AddBall(c.curX+(rand.Float64()-0.5)*jitter, c.curY+(rand.Float64()-0.5)*jitter)
}

// updateHover recomputes hover targets for an idle pointer. Resize
// handles win over endpoints, endpoints over lines, lines over
// spawners.
func (c *Controller) updateHover(x, y float64) {
	h := emptyHover()
	if hi := c.selection.HandleAt(x, y, c.cfg.HandleSize); hi != handleNone {
		h.Handle = hi
	} else if l, which := c.scene.NearestEndpoint(x, y, c.cfg.EndpointHoverDist); l != nil {
		h.EndpointLine = l
		h.Endpoint = which
	} else if l := c.scene.NearestLine(x, y, c.cfg.LineHoverDist); l != nil {
		h.Line = l
	} else if sp := c.scene.NearestSpawner(x, y, c.cfg.SpawnerHoverDist); sp != nil {
		h.Spawner = sp
	}
	c.hover = h
}

// runChrome executes a chrome element's action.
func (c *Controller) runChrome(action ChromeAction) {
	switch action {
	case ChromeHelp:
		if c.hooks.ToggleHelp != nil {
			c.hooks.ToggleHelp()
		}
	case ChromeDeleteSelection:
		c.DeleteSelection()
	}
}

// Undo reverts the most recent command and refreshes selection
// bookkeeping, since undone entities may have left the scene.
func (c *Controller) Undo() bool {
	ok := c.history.Undo(c.scene)
	if ok {
		c.pruneSelection()
	}
	return ok
}

// Redo re-applies the most recently undone command.
func (c *Controller) Redo() bool {
	ok := c.history.Redo(c.scene)
	if ok {
		c.pruneSelection()
	}
	return ok
}

// DeleteSelection removes what is selected, preferring the
// multi-selection, then the single selection. Returns false with
// nothing selected, letting the caller decide whether the press meant
// a full clear.
func (c *Controller) DeleteSelection() bool {
	if !c.selection.Empty() {
		for _, l := range c.selection.Lines {
			c.history.Do(c.scene, scene.NewRemoveLineCommand(l))
		}
		for _, sp := range c.selection.Spawners {
			c.history.Do(c.scene, scene.NewRemoveSpawnerCommand(sp))
		}
		c.selection.Clear()
		return true
	}
	if c.selected != nil {
		c.history.Do(c.scene, scene.NewRemoveLineCommand(c.selected))
		c.selected = nil
		return true
	}
	return false
}

// ClearAll clears the whole scene through an undoable command.
func (c *Controller) ClearAll() {
	c.history.Do(c.scene, scene.NewClearAllCommand(c.scene))
	c.selection.Clear()
	c.selected = nil
	c.hover = emptyHover()
}

// ClearBalls removes every ball. Balls are not undo-tracked, so this
// is a direct manager call.
func (c *Controller) ClearBalls() {
	c.scene.ClearBalls()
}

// Deselect drops both the single and the multi selection.
func (c *Controller) Deselect() {
	c.selected = nil
	c.selection.Clear()
}

// pruneSelection drops selected entities that are no longer in the
// scene, so stale pointers never reach the manager's group operations.
func (c *Controller) pruneSelection() {
	if c.selected != nil && !c.lineInScene(c.selected) {
		c.selected = nil
	}
	if c.selection.Empty() {
		return
	}
	var lines []*scene.Line
	for _, l := range c.selection.Lines {
		if c.lineInScene(l) {
			lines = append(lines, l)
		}
	}
	var spawners []*scene.Spawner
	for _, sp := range c.selection.Spawners {
		if c.spawnerInScene(sp) {
			spawners = append(spawners, sp)
		}
	}
	if len(lines) == 0 && len(spawners) == 0 {
		c.selection.Clear()
		return
	}
	c.selection.Set(lines, spawners)
}

func (c *Controller) lineInScene(l *scene.Line) bool {
	for _, other := range c.scene.Lines() {
		if other == l {
			return true
		}
	}
	return false
}

func (c *Controller) spawnerInScene(sp *scene.Spawner) bool {
	for _, other := range c.scene.Spawners() {
		if other == sp {
			return true
		}
	}
	return false
}

func distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
