// Package scene owns the toy's mutable state: the lines, balls and
// spawners on the canvas, the manager that keeps them in lockstep with
// the physics world, and the command history that makes edits undoable.
package scene

import (
	"math"
	"time"

	"linechime/phys"
)

// Point is a position on the canvas.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle with Min <= Max on both axes.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the rectangle's horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the rectangle's vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Contains reports whether the point lies inside the rectangle,
// borders included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// NormalizedRect builds a Rect from two opposite corners given in any
// order.
func NormalizedRect(x1, y1, x2, y2 float64) Rect {
	return Rect{
		MinX: math.Min(x1, x2),
		MinY: math.Min(y1, y2),
		MaxX: math.Max(x1, x2),
		MaxY: math.Max(y1, y2),
	}
}

// Line is a drawn segment the balls bounce off. It owns exactly one
// physics body whose geometry always matches the endpoints; every
// endpoint change swaps the body for a freshly built one because the
// engine cannot resize a shape in place.
type Line struct {
	X1, Y1 float64
	X2, Y2 float64

	// Body is the line's physics handle. Managed by Manager; nobody
	// else may create or remove it.
	Body *phys.Body
}

// Length returns the Euclidean distance between the endpoints.
func (l *Line) Length() float64 {
	return math.Hypot(l.X2-l.X1, l.Y2-l.Y1)
}

// Angle returns the line's angle in radians.
func (l *Line) Angle() float64 {
	return math.Atan2(l.Y2-l.Y1, l.X2-l.X1)
}

// Midpoint returns the center of the line.
func (l *Line) Midpoint() (x, y float64) {
	return (l.X1 + l.X2) / 2, (l.Y1 + l.Y2) / 2
}

// Endpoint returns endpoint 0 or 1.
func (l *Line) Endpoint(which int) Point {
	if which == 0 {
		return Point{X: l.X1, Y: l.Y1}
	}
	return Point{X: l.X2, Y: l.Y2}
}

// Ball is an ephemeral bouncing circle. Its position and velocity live
// in the physics body; the scene only keeps a short trail of recent
// positions for rendering. Balls are never undo-tracked.
type Ball struct {
	Body   *phys.Body
	Radius float64

	trail []Point
	head  int
	count int
}

// PushTrail records the ball's current position into its trail ring,
// dropping the oldest point once the ring is full.
func (b *Ball) PushTrail() {
	if len(b.trail) == 0 {
		return
	}
	x, y := b.Body.Position()
	b.trail[b.head] = Point{X: x, Y: y}
	b.head = (b.head + 1) % len(b.trail)
	if b.count < len(b.trail) {
		b.count++
	}
}

// Trail returns the recorded positions oldest-first.
func (b *Ball) Trail() []Point {
	out := make([]Point, 0, b.count)
	start := b.head - b.count
	for i := 0; i < b.count; i++ {
		idx := (start + i + len(b.trail)) % len(b.trail)
		out = append(out, b.trail[idx])
	}
	return out
}

// Spawner is a timer-point that periodically emits balls. It is not
// physically simulated; the manager ticks it against wall-clock time.
type Spawner struct {
	X, Y float64

	// Interval is the time between emissions, kept within the
	// configured bounds by Manager.SetSpawnerInterval.
	Interval time.Duration

	// LastSpawn is when the spawner last emitted a ball.
	LastSpawn time.Time
}

// distToSegment returns the distance from point (px,py) to the segment
// (x1,y1)-(x2,y2).
func distToSegment(px, py, x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-x1, py-y1)
	}
	t := ((px-x1)*dx + (py-y1)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}
