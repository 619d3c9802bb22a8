package scene

import (
	"math"
	"time"

	"linechime/phys"
)

// Config holds the scene-level tunables.
type Config struct {
	// MinLineLength is the shortest line AddLine will accept. Shorter
	// requests are rejected so no degenerate physics segment is built.
	MinLineLength float64

	// LineThickness is the visual and collision thickness of lines.
	LineThickness float64

	// BallRadius is the radius of every spawned ball.
	BallRadius float64

	// MaxBallSpeed bounds ball velocity; applied every frame.
	MaxBallSpeed float64

	// OffscreenMargin is how far below the visible area a ball may
	// fall before it is culled.
	OffscreenMargin float64

	// MaxSpawners caps the number of spawners; zero means uncapped.
	MaxSpawners int

	// MinSpawnInterval and MaxSpawnInterval bound a spawner's
	// emission interval.
	MinSpawnInterval time.Duration
	MaxSpawnInterval time.Duration

	// DefaultSpawnInterval is the interval a new spawner starts with.
	DefaultSpawnInterval time.Duration

	// TrailLength is the number of positions kept per ball trail.
	TrailLength int
}

// DefaultConfig returns scene parameters tuned for the toy.
func DefaultConfig() Config {
	return Config{
		MinLineLength:        14.0,
		LineThickness:        4.0,
		BallRadius:           6.0,
		MaxBallSpeed:         1200.0,
		OffscreenMargin:      60.0,
		MaxSpawners:          0,
		MinSpawnInterval:     100 * time.Millisecond,
		MaxSpawnInterval:     5 * time.Second,
		DefaultSpawnInterval: 900 * time.Millisecond,
		TrailLength:          10,
	}
}

// Manager is the authoritative owner of the scene collections and the
// only component allowed to add or remove physics bodies. Everything
// that edits the scene goes through it, either directly (ephemeral
// balls) or via commands (undoable edits).
type Manager struct {
	cfg   Config
	world *phys.World

	lines    []*Line
	balls    []*Ball
	spawners []*Spawner
}

// NewManager creates a scene manager bound to a physics world.
func NewManager(world *phys.World, cfg Config) *Manager {
	return &Manager{
		cfg:   cfg,
		world: world,
	}
}

// Config returns the manager's configuration.
func (m *Manager) Config() Config { return m.cfg }

// Lines returns the live line collection. Callers must treat it as
// read-only.
func (m *Manager) Lines() []*Line { return m.lines }

// Balls returns the live ball collection. Read-only for callers.
func (m *Manager) Balls() []*Ball { return m.balls }

// Spawners returns the live spawner collection. Read-only for callers.
func (m *Manager) Spawners() []*Spawner { return m.spawners }

// AddLine creates a line between the two endpoints, registers its
// physics body and appends it to the collection. Returns nil without
// side effects if the line is shorter than the configured minimum.
func (m *Manager) AddLine(x1, y1, x2, y2 float64) *Line {
	if math.Hypot(x2-x1, y2-y1) < m.cfg.MinLineLength {
		return nil
	}
	l := &Line{X1: x1, Y1: y1, X2: x2, Y2: y2}
	l.Body = m.world.AddLineBody(x1, y1, x2, y2, m.cfg.LineThickness)
	l.Body.UserData = l
	m.lines = append(m.lines, l)
	return l
}

// restoreLine re-registers a line that was removed earlier, rebuilding
// its physics body from its current endpoints. The same object is
// reinserted so commands still holding the pointer keep working across
// undo/redo cycles. A line that is already present is a no-op.
func (m *Manager) restoreLine(l *Line) {
	if l == nil || m.lineIndex(l) >= 0 {
		return
	}
	l.Body = m.world.AddLineBody(l.X1, l.Y1, l.X2, l.Y2, m.cfg.LineThickness)
	l.Body.UserData = l
	m.lines = append(m.lines, l)
}

// restoreSpawner re-registers a removed spawner, identity preserved.
// Restoration bypasses the spawner cap; it is undo putting state back,
// not a new request. Already-present spawners are a no-op.
func (m *Manager) restoreSpawner(sp *Spawner) {
	if sp == nil {
		return
	}
	for _, other := range m.spawners {
		if other == sp {
			return
		}
	}
	sp.LastSpawn = time.Time{}
	m.spawners = append(m.spawners, sp)
}

// RemoveLine detaches the line's body and removes it from the
// collection. Nil lines and lines that are not present are a no-op.
func (m *Manager) RemoveLine(l *Line) {
	idx := m.lineIndex(l)
	if idx < 0 {
		return
	}
	m.world.RemoveBody(l.Body)
	m.lines = append(m.lines[:idx], m.lines[idx+1:]...)
}

// SetLineEndpoint moves one endpoint (0 or 1) of the line and swaps in
// a physics body matching the new geometry. No-op if the line is not
// in the scene.
func (m *Manager) SetLineEndpoint(l *Line, which int, x, y float64) {
	if m.lineIndex(l) < 0 {
		return
	}
	if which == 0 {
		l.X1, l.Y1 = x, y
	} else {
		l.X2, l.Y2 = x, y
	}
	m.swapLineBody(l)
}

// SetLinePosition moves both endpoints of the line at once, swapping
// the physics body a single time.
func (m *Manager) SetLinePosition(l *Line, x1, y1, x2, y2 float64) {
	if m.lineIndex(l) < 0 {
		return
	}
	l.X1, l.Y1, l.X2, l.Y2 = x1, y1, x2, y2
	m.swapLineBody(l)
}

// swapLineBody replaces the line's physics body with one matching its
// current endpoints. The replace is one call into the adapter, so no
// physics tick observes the line with zero or two bodies.
func (m *Manager) swapLineBody(l *Line) {
	l.Body = m.world.ReplaceLineBody(l.Body, l.X1, l.Y1, l.X2, l.Y2, m.cfg.LineThickness)
}

// AddBall spawns a ball at the given position with zero velocity.
func (m *Manager) AddBall(x, y float64) *Ball {
	b := &Ball{
		Radius: m.cfg.BallRadius,
		trail:  make([]Point, m.cfg.TrailLength),
	}
	b.Body = m.world.AddBallBody(x, y, m.cfg.BallRadius)
	b.Body.UserData = b
	m.balls = append(m.balls, b)
	return b
}

// RemoveBall detaches the ball's body and drops it from the
// collection. Missing balls are a no-op.
func (m *Manager) RemoveBall(b *Ball) {
	for i, other := range m.balls {
		if other == b {
			m.world.RemoveBody(b.Body)
			m.balls = append(m.balls[:i], m.balls[i+1:]...)
			return
		}
	}
}

// RemoveOffscreenBalls removes every ball that has fallen past the
// bottom of the visible area plus the configured margin. The scan runs
// back to front so removal during iteration is safe. Returns how many
// balls were removed.
func (m *Manager) RemoveOffscreenBalls(screenHeight float64) int {
	removed := 0
	limit := screenHeight + m.cfg.OffscreenMargin
	for i := len(m.balls) - 1; i >= 0; i-- {
		_, y := m.balls[i].Body.Position()
		if y > limit {
			m.world.RemoveBody(m.balls[i].Body)
			m.balls = append(m.balls[:i], m.balls[i+1:]...)
			removed++
		}
	}
	return removed
}

// ClearBalls removes every ball.
func (m *Manager) ClearBalls() {
	for _, b := range m.balls {
		m.world.RemoveBody(b.Body)
	}
	m.balls = m.balls[:0]
}

// AddSpawner creates a spawner at the given position with the default
// interval. Returns nil if the configured spawner cap is reached.
func (m *Manager) AddSpawner(x, y float64) *Spawner {
	if m.cfg.MaxSpawners > 0 && len(m.spawners) >= m.cfg.MaxSpawners {
		return nil
	}
	sp := &Spawner{
		X:        x,
		Y:        y,
		Interval: m.cfg.DefaultSpawnInterval,
	}
	m.spawners = append(m.spawners, sp)
	return sp
}

// RemoveSpawner drops the spawner from the collection. Missing
// spawners are a no-op.
func (m *Manager) RemoveSpawner(sp *Spawner) {
	for i, other := range m.spawners {
		if other == sp {
			m.spawners = append(m.spawners[:i], m.spawners[i+1:]...)
			return
		}
	}
}

// SetSpawnerInterval sets the spawner's emission interval, clamped to
// the configured bounds.
func (m *Manager) SetSpawnerInterval(sp *Spawner, d time.Duration) {
	if d < m.cfg.MinSpawnInterval {
		d = m.cfg.MinSpawnInterval
	}
	if d > m.cfg.MaxSpawnInterval {
		d = m.cfg.MaxSpawnInterval
	}
	sp.Interval = d
}

// TickSpawners emits one ball from every spawner whose interval has
// elapsed and resets its timer. A spawner with a zero LastSpawn starts
// its first interval now instead of emitting immediately.
func (m *Manager) TickSpawners(now time.Time) {
	for _, sp := range m.spawners {
		if sp.LastSpawn.IsZero() {
			sp.LastSpawn = now
			continue
		}
		if now.Sub(sp.LastSpawn) > sp.Interval {
			m.AddBall(sp.X, sp.Y)
			sp.LastSpawn = now
		}
	}
}

// Update runs the per-frame scene bookkeeping in a fixed order:
// spawner ticks, ball speed clamping and trail recording, then
// offscreen culling.
func (m *Manager) Update(now time.Time, screenHeight float64) {
	m.TickSpawners(now)
	for _, b := range m.balls {
		b.Body.ClampSpeed(m.cfg.MaxBallSpeed)
		b.PushTrail()
	}
	m.RemoveOffscreenBalls(screenHeight)
}

// NearestLine returns the first line in insertion order within
// threshold of the point, or nil. Ties are not re-ranked by distance;
// a linear scan in insertion order keeps hover feel stable.
func (m *Manager) NearestLine(x, y, threshold float64) *Line {
	for _, l := range m.lines {
		if distToSegment(x, y, l.X1, l.Y1, l.X2, l.Y2) <= threshold {
			return l
		}
	}
	return nil
}

// NearestEndpoint returns the first line endpoint within threshold of
// the point, as the line and which endpoint (0 or 1). Returns (nil, 0)
// if none is close enough.
func (m *Manager) NearestEndpoint(x, y, threshold float64) (*Line, int) {
	for _, l := range m.lines {
		if math.Hypot(x-l.X1, y-l.Y1) <= threshold {
			return l, 0
		}
		if math.Hypot(x-l.X2, y-l.Y2) <= threshold {
			return l, 1
		}
	}
	return nil, 0
}

// NearestSpawner returns the first spawner within threshold of the
// point, or nil.
func (m *Manager) NearestSpawner(x, y, threshold float64) *Spawner {
	for _, sp := range m.spawners {
		if math.Hypot(x-sp.X, y-sp.Y) <= threshold {
			return sp
		}
	}
	return nil
}

// EntitiesInArea returns the lines whose midpoint and the spawners
// whose position fall inside the rectangle. Containment is tested on
// those single points, not on full shapes.
func (m *Manager) EntitiesInArea(r Rect) ([]*Line, []*Spawner) {
	var lines []*Line
	var spawners []*Spawner
	for _, l := range m.lines {
		mx, my := l.Midpoint()
		if r.Contains(mx, my) {
			lines = append(lines, l)
		}
	}
	for _, sp := range m.spawners {
		if r.Contains(sp.X, sp.Y) {
			spawners = append(spawners, sp)
		}
	}
	return lines, spawners
}

// MoveGroup translates every given line and spawner by (dx, dy).
func (m *Manager) MoveGroup(lines []*Line, spawners []*Spawner, dx, dy float64) {
	for _, l := range lines {
		m.SetLinePosition(l, l.X1+dx, l.Y1+dy, l.X2+dx, l.Y2+dy)
	}
	for _, sp := range spawners {
		sp.X += dx
		sp.Y += dy
	}
}

// degenerateExtent is the extent below which a bounding-box axis is
// treated as zero-sized and left unscaled.
const degenerateExtent = 1e-6

// ScaleGroup remaps every point of the given entities from the old
// bounding box onto the new one: new = newMin + (old - oldMin) * scale,
// with independent X and Y factors. An axis whose old extent is
// degenerate is translated by the box offset instead of scaled, so no
// non-finite coordinate can ever reach an entity.
func (m *Manager) ScaleGroup(lines []*Line, spawners []*Spawner, from, to Rect) {
	scaleX, scaleY := 1.0, 1.0
	xOK := from.Width() > degenerateExtent
	yOK := from.Height() > degenerateExtent
	if xOK {
		scaleX = to.Width() / from.Width()
	}
	if yOK {
		scaleY = to.Height() / from.Height()
	}

	mapX := func(x float64) float64 {
		if !xOK {
			return x + (to.MinX - from.MinX)
		}
		return to.MinX + (x-from.MinX)*scaleX
	}
	mapY := func(y float64) float64 {
		if !yOK {
			return y + (to.MinY - from.MinY)
		}
		return to.MinY + (y-from.MinY)*scaleY
	}

	for _, l := range lines {
		m.SetLinePosition(l, mapX(l.X1), mapY(l.Y1), mapX(l.X2), mapY(l.Y2))
	}
	for _, sp := range spawners {
		sp.X = mapX(sp.X)
		sp.Y = mapY(sp.Y)
	}
}

// Clear removes every line, ball and spawner together with their
// physics bodies.
func (m *Manager) Clear() {
	for _, l := range m.lines {
		m.world.RemoveBody(l.Body)
	}
	m.lines = m.lines[:0]
	m.ClearBalls()
	m.spawners = m.spawners[:0]
}

// lineIndex returns the index of the line in the collection, or -1.
func (m *Manager) lineIndex(l *Line) int {
	if l == nil {
		return -1
	}
	for i, other := range m.lines {
		if other == l {
			return i
		}
	}
	return -1
}
