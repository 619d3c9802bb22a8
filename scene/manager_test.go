package scene

import (
	"math"
	"testing"
	"time"

	"linechime/phys"
)

func newTestManager() (*Manager, *phys.World) {
	world := phys.NewWorld(phys.DefaultConfig())
	cfg := DefaultConfig()
	cfg.MinLineLength = 50
	return NewManager(world, cfg), world
}

func TestAddLineRejectsShortLines(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		want           bool
	}{
		{"Zero length", 10, 10, 10, 10, false},
		{"Below minimum", 0, 0, 0, 10, false},
		{"Just below minimum", 0, 0, 49, 0, false},
		{"At minimum", 0, 0, 50, 0, true},
		{"Well above minimum", 100, 100, 100, 200, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, world := newTestManager()
			l := m.AddLine(tt.x1, tt.y1, tt.x2, tt.y2)
			if got := l != nil; got != tt.want {
				t.Fatalf("AddLine(%v,%v,%v,%v) accepted=%v, want %v",
					tt.x1, tt.y1, tt.x2, tt.y2, got, tt.want)
			}
			wantCount := 0
			if tt.want {
				wantCount = 1
			}
			if len(m.Lines()) != wantCount {
				t.Errorf("line count = %d, want %d", len(m.Lines()), wantCount)
			}
			if world.BodyCount() != wantCount {
				t.Errorf("body count = %d, want %d", world.BodyCount(), wantCount)
			}
		})
	}
}

func TestRemoveLineToleratesMissing(t *testing.T) {
	m, world := newTestManager()
	l := m.AddLine(0, 0, 100, 0)

	m.RemoveLine(l)
	m.RemoveLine(l)
	m.RemoveLine(nil)

	if len(m.Lines()) != 0 {
		t.Errorf("line count = %d, want 0", len(m.Lines()))
	}
	if world.BodyCount() != 0 {
		t.Errorf("body count = %d, want 0", world.BodyCount())
	}
}

func TestSetLineEndpointSwapsBody(t *testing.T) {
	m, world := newTestManager()
	l := m.AddLine(0, 0, 100, 0)
	oldBody := l.Body

	m.SetLineEndpoint(l, 1, 100, 80)

	if l.X2 != 100 || l.Y2 != 80 {
		t.Errorf("endpoint not moved: (%f, %f)", l.X2, l.Y2)
	}
	if l.Body == oldBody {
		t.Error("physics body was not replaced")
	}
	if world.BodyCount() != 1 {
		t.Errorf("body count = %d, want exactly 1", world.BodyCount())
	}
}

func TestSetLineEndpointIgnoresForeignLine(t *testing.T) {
	m, world := newTestManager()
	foreign := &Line{X1: 0, Y1: 0, X2: 100, Y2: 0}

	m.SetLineEndpoint(foreign, 0, 5, 5)

	if foreign.X1 != 0 || foreign.Y1 != 0 {
		t.Error("foreign line was mutated")
	}
	if world.BodyCount() != 0 {
		t.Errorf("body count = %d, want 0", world.BodyCount())
	}
}

func TestRemoveOffscreenBalls(t *testing.T) {
	m, _ := newTestManager()
	const screenHeight = 500.0

	inside := m.AddBall(100, 100)
	nearEdge := m.AddBall(100, screenHeight+m.Config().OffscreenMargin-1)
	outside := m.AddBall(100, screenHeight+m.Config().OffscreenMargin+1)

	removed := m.RemoveOffscreenBalls(screenHeight)
	if removed != 1 {
		t.Fatalf("removed %d balls, want 1", removed)
	}
	for _, b := range m.Balls() {
		if b == outside {
			t.Error("offscreen ball still present")
		}
	}
	if len(m.Balls()) != 2 {
		t.Errorf("ball count = %d, want 2", len(m.Balls()))
	}
	_ = inside
	_ = nearEdge
}

func TestSpawnerTiming(t *testing.T) {
	m, _ := newTestManager()
	sp := m.AddSpawner(100, 100)
	if sp == nil {
		t.Fatal("AddSpawner returned nil")
	}
	m.SetSpawnerInterval(sp, 100*time.Millisecond)

	t0 := time.Unix(0, 0)
	m.TickSpawners(t0)
	if len(m.Balls()) != 0 {
		t.Fatalf("spawner emitted %d balls at creation", len(m.Balls()))
	}

	// Before one interval has elapsed: nothing.
	m.TickSpawners(t0.Add(90 * time.Millisecond))
	if len(m.Balls()) != 0 {
		t.Fatalf("spawner emitted before its interval elapsed")
	}

	// Tick every 10ms for one second; one ball roughly every 100ms.
	for ms := 10; ms <= 1000; ms += 10 {
		m.TickSpawners(t0.Add(time.Duration(ms) * time.Millisecond))
	}
	got := len(m.Balls())
	if got < 9 || got > 10 {
		t.Errorf("spawner emitted %d balls over 1s at 100ms interval, want 9 or 10", got)
	}
}

func TestSetSpawnerIntervalClamps(t *testing.T) {
	m, _ := newTestManager()
	sp := m.AddSpawner(0, 0)

	m.SetSpawnerInterval(sp, time.Millisecond)
	if sp.Interval != m.Config().MinSpawnInterval {
		t.Errorf("interval %v not clamped up to %v", sp.Interval, m.Config().MinSpawnInterval)
	}

	m.SetSpawnerInterval(sp, time.Hour)
	if sp.Interval != m.Config().MaxSpawnInterval {
		t.Errorf("interval %v not clamped down to %v", sp.Interval, m.Config().MaxSpawnInterval)
	}
}

func TestSpawnerCap(t *testing.T) {
	world := phys.NewWorld(phys.DefaultConfig())
	cfg := DefaultConfig()
	cfg.MaxSpawners = 2
	m := NewManager(world, cfg)

	if m.AddSpawner(0, 0) == nil || m.AddSpawner(10, 0) == nil {
		t.Fatal("spawners under the cap were rejected")
	}
	if m.AddSpawner(20, 0) != nil {
		t.Error("spawner beyond the cap was accepted")
	}
	if len(m.Spawners()) != 2 {
		t.Errorf("spawner count = %d, want 2", len(m.Spawners()))
	}
}

func TestNearestQueriesUseInsertionOrder(t *testing.T) {
	m, _ := newTestManager()
	first := m.AddLine(0, 0, 100, 0)
	second := m.AddLine(0, 4, 100, 4)

	// Both lines are within threshold of the probe; the first inserted
	// wins even though the second is closer.
	if got := m.NearestLine(50, 3, 10); got != first {
		t.Error("nearest line is not the first within threshold in insertion order")
	}
	_ = second

	if got := m.NearestLine(50, 300, 10); got != nil {
		t.Error("far probe matched a line")
	}
}

func TestNearestEndpoint(t *testing.T) {
	m, _ := newTestManager()
	l := m.AddLine(0, 0, 100, 0)

	gotLine, which := m.NearestEndpoint(98, 3, 10)
	if gotLine != l || which != 1 {
		t.Fatalf("NearestEndpoint = (%v, %d), want (line, 1)", gotLine, which)
	}

	gotLine, _ = m.NearestEndpoint(50, 0, 10)
	if gotLine != nil {
		t.Error("mid-line probe matched an endpoint")
	}
}

func TestEntitiesInArea(t *testing.T) {
	m, _ := newTestManager()
	inside := m.AddLine(100, 100, 200, 100)   // midpoint (150, 100)
	straddle := m.AddLine(240, 100, 340, 100) // midpoint (290, 100), outside
	spIn := m.AddSpawner(150, 150)
	spOut := m.AddSpawner(500, 500)

	lines, spawners := m.EntitiesInArea(Rect{MinX: 50, MinY: 50, MaxX: 220, MaxY: 220})

	if len(lines) != 1 || lines[0] != inside {
		t.Errorf("lines in area = %v, want just the contained line", lines)
	}
	if len(spawners) != 1 || spawners[0] != spIn {
		t.Errorf("spawners in area = %v, want just the contained spawner", spawners)
	}
	_ = straddle
	_ = spOut
}

func TestMoveGroup(t *testing.T) {
	m, _ := newTestManager()
	l := m.AddLine(0, 0, 100, 0)
	sp := m.AddSpawner(50, 50)

	m.MoveGroup([]*Line{l}, []*Spawner{sp}, 30, -20)

	if l.X1 != 30 || l.Y1 != -20 || l.X2 != 130 || l.Y2 != -20 {
		t.Errorf("line not translated: %+v", *l)
	}
	if sp.X != 80 || sp.Y != 30 {
		t.Errorf("spawner not translated: (%f, %f)", sp.X, sp.Y)
	}
}

func TestScaleGroupRoundTrip(t *testing.T) {
	m, _ := newTestManager()
	l := m.AddLine(100, 100, 200, 150)
	sp := m.AddSpawner(150, 120)
	orig := *l
	origX, origY := sp.X, sp.Y

	a := Rect{MinX: 100, MinY: 100, MaxX: 200, MaxY: 150}
	b := Rect{MinX: 50, MinY: 80, MaxX: 350, MaxY: 300}

	m.ScaleGroup([]*Line{l}, []*Spawner{sp}, a, b)
	m.ScaleGroup([]*Line{l}, []*Spawner{sp}, b, a)

	const tol = 1e-9
	if math.Abs(l.X1-orig.X1) > tol || math.Abs(l.Y1-orig.Y1) > tol ||
		math.Abs(l.X2-orig.X2) > tol || math.Abs(l.Y2-orig.Y2) > tol {
		t.Errorf("line did not round-trip: %+v vs %+v", *l, orig)
	}
	if math.Abs(sp.X-origX) > tol || math.Abs(sp.Y-origY) > tol {
		t.Errorf("spawner did not round-trip: (%f, %f)", sp.X, sp.Y)
	}
}

func TestScaleGroupDegenerateAxis(t *testing.T) {
	m, _ := newTestManager()
	l := m.AddLine(100, 100, 100, 200) // vertical: zero-width bounds

	old := Rect{MinX: 100, MinY: 100, MaxX: 100, MaxY: 200}
	new := Rect{MinX: 150, MinY: 100, MaxX: 250, MaxY: 300}

	m.ScaleGroup([]*Line{l}, nil, old, new)

	for _, v := range []float64{l.X1, l.Y1, l.X2, l.Y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("degenerate scale produced a non-finite coordinate: %+v", *l)
		}
	}
	// The degenerate X axis is translated, the healthy Y axis scaled.
	if l.X1 != 150 || l.X2 != 150 {
		t.Errorf("X axis not translated: %+v", *l)
	}
	if l.Y1 != 100 || l.Y2 != 300 {
		t.Errorf("Y axis not scaled: %+v", *l)
	}
}

func TestClear(t *testing.T) {
	m, world := newTestManager()
	m.AddLine(0, 0, 100, 0)
	m.AddLine(0, 50, 100, 50)
	m.AddBall(10, 10)
	m.AddSpawner(20, 20)

	m.Clear()

	if len(m.Lines()) != 0 || len(m.Balls()) != 0 || len(m.Spawners()) != 0 {
		t.Errorf("collections not empty: %d lines, %d balls, %d spawners",
			len(m.Lines()), len(m.Balls()), len(m.Spawners()))
	}
	if world.BodyCount() != 0 {
		t.Errorf("body count = %d, want 0", world.BodyCount())
	}
}

func TestBallTrailRing(t *testing.T) {
	m, _ := newTestManager()
	b := m.AddBall(10, 20)

	for i := 0; i < m.Config().TrailLength*2; i++ {
		b.PushTrail()
	}

	trail := b.Trail()
	if len(trail) != m.Config().TrailLength {
		t.Fatalf("trail length = %d, want %d", len(trail), m.Config().TrailLength)
	}
	for _, p := range trail {
		if p.X != 10 || p.Y != 20 {
			t.Fatalf("trail point (%f, %f) does not match ball position", p.X, p.Y)
		}
	}
}
