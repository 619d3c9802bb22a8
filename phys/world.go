// Package phys wraps the Chipmunk2D rigid-body engine behind a small
// adapter so the rest of the program never touches the engine directly.
// The scene layer owns body lifecycle through this package; everything
// else only reads positions and velocities off the opaque Body handles.
package phys

import (
	"github.com/jakecoffman/cp/v2"
)

// Collision types used to route begin events. Balls collide with lines
// and with nothing else that we care to hear about.
const (
	collisionTypeBall cp.CollisionType = iota + 1
	collisionTypeLine
)

// ballGroup puts every ball shape in the same filter group so balls
// pass through each other instead of clattering.
const ballGroup uint = 1

// Config holds the tunable parameters of the simulation world.
type Config struct {
	// GravityX and GravityY are the constant acceleration applied to
	// dynamic bodies, in pixels per second squared.
	GravityX float64
	GravityY float64

	// Iterations is the solver iteration count per step.
	Iterations uint

	// FixedStep is the fixed substep size in seconds. The world always
	// advances in whole multiples of this.
	FixedStep float64

	// MaxFrameDelta caps a single frame's contribution to the substep
	// accumulator, so a long stall does not trigger a catch-up spiral.
	MaxFrameDelta float64

	// MaxSubsteps caps how many fixed steps one Step call may run.
	// Any backlog beyond that is dropped rather than simulated.
	MaxSubsteps int

	// LineElasticity and BallElasticity are the restitution of the two
	// shape kinds. Values near 1.0 give the lively bounce the toy wants.
	LineElasticity float64
	BallElasticity float64
}

// DefaultConfig returns simulation parameters tuned for the toy.
func DefaultConfig() Config {
	return Config{
		GravityX:       0,
		GravityY:       600.0,
		Iterations:     10,
		FixedStep:      1.0 / 120.0,
		MaxFrameDelta:  0.1,
		MaxSubsteps:    8,
		LineElasticity: 1.0,
		BallElasticity: 0.92,
	}
}

// Body is an opaque handle pairing one rigid body with its single shape.
// A handle becomes dead after RemoveBody or ReplaceLineBody; operating on
// a dead handle is a no-op.
type Body struct {
	body    *cp.Body
	shape   *cp.Shape
	removed bool

	// UserData is an arbitrary tag the owner may attach; it is carried
	// over when a line body is replaced.
	UserData interface{}
}

// Position returns the body's current position.
func (b *Body) Position() (x, y float64) {
	p := b.body.Position()
	return p.X, p.Y
}

// Velocity returns the body's current velocity.
func (b *Body) Velocity() (x, y float64) {
	v := b.body.Velocity()
	return v.X, v.Y
}

// SetVelocity overwrites the body's velocity.
func (b *Body) SetVelocity(x, y float64) {
	b.body.SetVelocity(x, y)
}

// Speed returns the magnitude of the body's velocity.
func (b *Body) Speed() float64 {
	return b.body.Velocity().Length()
}

// ClampSpeed rescales the body's velocity so its magnitude does not
// exceed max. Called once per frame on every ball to bound the error
// the solver can accumulate.
func (b *Body) ClampSpeed(max float64) {
	v := b.body.Velocity()
	speed := v.Length()
	if speed > max && speed > 0 {
		b.body.SetVelocityVector(v.Mult(max / speed))
	}
}

// Contact records one ball-line collision-start event.
type Contact struct {
	// Line is the handle of the line body that was hit.
	Line *Body

	// Speed is the ball's speed at the moment of impact.
	Speed float64
}

// World owns the Chipmunk space, the substep accumulator and the queue
// of collision events seen since the last Drain.
type World struct {
	space       *cp.Space
	cfg         Config
	accumulator float64
	contacts    []Contact
	bodyCount   int
}

// NewWorld creates a simulation world and registers the ball-line
// collision handler.
func NewWorld(cfg Config) *World {
	space := cp.NewSpace()
	space.Iterations = cfg.Iterations
	space.SetGravity(cp.Vector{X: cfg.GravityX, Y: cfg.GravityY})

	w := &World{
		space:    space,
		cfg:      cfg,
		contacts: make([]Contact, 0, 64),
	}

	handler := space.NewCollisionHandler(collisionTypeBall, collisionTypeLine)
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		ballBody, lineBody := arb.Bodies()
		if h, ok := lineBody.UserData.(*Body); ok {
			w.contacts = append(w.contacts, Contact{
				Line:  h,
				Speed: ballBody.Velocity().Length(),
			})
		}
		return true
	}

	return w
}

// AddLineBody creates a static segment body for a line between the two
// endpoints. The segment is given half the line's visual thickness as
// its radius so the rendered stroke and the collision shape agree.
func (w *World) AddLineBody(x1, y1, x2, y2, thickness float64) *Body {
	body := w.space.AddBody(cp.NewStaticBody())
	shape := w.space.AddShape(cp.NewSegment(body,
		cp.Vector{X: x1, Y: y1},
		cp.Vector{X: x2, Y: y2},
		thickness/2,
	))
	shape.SetElasticity(w.cfg.LineElasticity)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeLine)

	h := &Body{body: body, shape: shape}
	body.UserData = h
	w.bodyCount++
	return h
}

// AddBallBody creates a dynamic circle body at the given position with
// zero initial velocity.
func (w *World) AddBallBody(x, y, radius float64) *Body {
	const mass = 1.0
	body := w.space.AddBody(cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{})))
	body.SetPosition(cp.Vector{X: x, Y: y})

	shape := w.space.AddShape(cp.NewCircle(body, radius, cp.Vector{}))
	shape.SetElasticity(w.cfg.BallElasticity)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeBall)
	shape.SetFilter(cp.NewShapeFilter(ballGroup, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))

	h := &Body{body: body, shape: shape}
	body.UserData = h
	w.bodyCount++
	return h
}

// RemoveBody detaches a body and its shape from the space. Nil handles
// and handles that were already removed are tolerated silently.
func (w *World) RemoveBody(h *Body) {
	if h == nil || h.removed {
		return
	}
	h.removed = true
	w.space.RemoveShape(h.shape)
	w.space.RemoveBody(h.body)
	w.bodyCount--
}

// ReplaceLineBody removes the old segment body and creates one with the
// new geometry in a single call, so callers can swap the handle without
// a physics tick ever seeing zero or two bodies for the same line. The
// old handle's UserData is carried over to the new handle.
func (w *World) ReplaceLineBody(old *Body, x1, y1, x2, y2, thickness float64) *Body {
	var tag interface{}
	if old != nil {
		tag = old.UserData
	}
	w.RemoveBody(old)
	h := w.AddLineBody(x1, y1, x2, y2, thickness)
	h.UserData = tag
	return h
}

// Step advances the simulation by the given frame delta, in fixed-size
// substeps. The delta is capped, accumulated, and drained at most
// MaxSubsteps at a time; leftover backlog beyond a full substep is
// discarded so the simulation never chases an unpayable debt.
func (w *World) Step(frameDT float64) {
	if frameDT < 0 {
		return
	}
	if frameDT > w.cfg.MaxFrameDelta {
		frameDT = w.cfg.MaxFrameDelta
	}
	w.accumulator += frameDT

	steps := 0
	for w.accumulator >= w.cfg.FixedStep && steps < w.cfg.MaxSubsteps {
		w.space.Step(w.cfg.FixedStep)
		w.accumulator -= w.cfg.FixedStep
		steps++
	}
	if w.accumulator >= w.cfg.FixedStep {
		// Ran out of substep budget; drop the backlog.
		w.accumulator = 0
	}
}

// Drain returns the collision-start events recorded since the previous
// Drain and resets the queue. Intended to be called exactly once per
// frame, after Step.
func (w *World) Drain() []Contact {
	if len(w.contacts) == 0 {
		return nil
	}
	out := make([]Contact, len(w.contacts))
	copy(out, w.contacts)
	w.contacts = w.contacts[:0]
	return out
}

// BodyCount returns the number of live bodies in the world.
func (w *World) BodyCount() int {
	return w.bodyCount
}
