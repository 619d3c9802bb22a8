package phys

import (
	"math"
	"testing"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.GravityY = 600
	return cfg
}

func TestAddAndRemoveBodies(t *testing.T) {
	w := NewWorld(testConfig())

	line := w.AddLineBody(0, 100, 200, 100, 4)
	ball := w.AddBallBody(100, 0, 6)
	if got := w.BodyCount(); got != 2 {
		t.Fatalf("expected 2 bodies, got %d", got)
	}

	w.RemoveBody(ball)
	if got := w.BodyCount(); got != 1 {
		t.Fatalf("expected 1 body after removal, got %d", got)
	}

	// Double removal and nil removal are silent no-ops.
	w.RemoveBody(ball)
	w.RemoveBody(nil)
	if got := w.BodyCount(); got != 1 {
		t.Fatalf("expected 1 body after repeated removals, got %d", got)
	}

	w.RemoveBody(line)
	if got := w.BodyCount(); got != 0 {
		t.Fatalf("expected empty world, got %d bodies", got)
	}
}

func TestReplaceLineBodyKeepsExactlyOneBody(t *testing.T) {
	w := NewWorld(testConfig())

	old := w.AddLineBody(0, 0, 100, 0, 4)
	old.UserData = "tag"

	replaced := w.AddLineBody(0, 50, 100, 50, 4)
	_ = replaced

	before := w.BodyCount()
	fresh := w.ReplaceLineBody(old, 0, 0, 100, 30, 4)
	if got := w.BodyCount(); got != before {
		t.Fatalf("body count changed across replace: had %d, got %d", before, got)
	}
	if fresh == old {
		t.Fatal("replace returned the old handle")
	}
	if fresh.UserData != "tag" {
		t.Errorf("UserData not carried over, got %v", fresh.UserData)
	}

	// The old handle is dead; removing it must not disturb the world.
	w.RemoveBody(old)
	if got := w.BodyCount(); got != before {
		t.Fatalf("removing the dead handle changed the count to %d", got)
	}
}

func TestStepAppliesGravity(t *testing.T) {
	w := NewWorld(testConfig())
	ball := w.AddBallBody(100, 0, 6)

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60.0)
	}

	_, y := ball.Position()
	if y <= 0 {
		t.Fatalf("ball did not fall, y = %f", y)
	}
	_, vy := ball.Velocity()
	if vy <= 0 {
		t.Fatalf("ball has no downward velocity, vy = %f", vy)
	}
}

func TestStepCapsFrameDelta(t *testing.T) {
	cfg := testConfig()
	w := NewWorld(cfg)
	ball := w.AddBallBody(100, 0, 6)

	// A huge stall delta must simulate at most
	// MaxSubsteps * FixedStep seconds of time.
	w.Step(10.0)

	maxSim := float64(cfg.MaxSubsteps) * cfg.FixedStep
	_, vy := ball.Velocity()
	if vy > cfg.GravityY*maxSim+1e-6 {
		t.Fatalf("stall simulated too much time: vy = %f, limit %f", vy, cfg.GravityY*maxSim)
	}
}

func TestBallBouncesAndReportsContact(t *testing.T) {
	w := NewWorld(testConfig())
	w.AddLineBody(0, 300, 200, 300, 4)
	ball := w.AddBallBody(100, 100, 6)

	var contacts []Contact
	for i := 0; i < 240; i++ {
		w.Step(1.0 / 60.0)
		contacts = append(contacts, w.Drain()...)
	}

	if len(contacts) == 0 {
		t.Fatal("no contact reported for a ball dropped onto a line")
	}
	if contacts[0].Speed <= 0 {
		t.Errorf("contact has no impact speed: %f", contacts[0].Speed)
	}

	// With near-elastic materials the ball must still be above the line
	// after bouncing, not through it.
	_, y := ball.Position()
	if y > 300 {
		t.Errorf("ball fell through the line, y = %f", y)
	}
}

func TestDrainConsumesContacts(t *testing.T) {
	w := NewWorld(testConfig())
	w.AddLineBody(0, 200, 200, 200, 4)
	w.AddBallBody(100, 150, 6)

	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60.0)
	}
	if first := w.Drain(); len(first) == 0 {
		t.Fatal("expected contacts before the first drain")
	}
	if second := w.Drain(); len(second) != 0 {
		t.Fatalf("second drain returned %d contacts, want 0", len(second))
	}
}

func TestClampSpeed(t *testing.T) {
	w := NewWorld(testConfig())
	ball := w.AddBallBody(0, 0, 6)
	ball.SetVelocity(3000, 4000)

	ball.ClampSpeed(500)
	if speed := ball.Speed(); math.Abs(speed-500) > 1e-9 {
		t.Fatalf("speed not clamped, got %f", speed)
	}

	// Direction must be preserved.
	vx, vy := ball.Velocity()
	if vx <= 0 || vy <= 0 || math.Abs(vy/vx-4.0/3.0) > 1e-9 {
		t.Errorf("clamp changed direction: (%f, %f)", vx, vy)
	}

	// Clamping a slow body is a no-op.
	ball.SetVelocity(1, 2)
	ball.ClampSpeed(500)
	if vx, vy := ball.Velocity(); vx != 1 || vy != 2 {
		t.Errorf("clamp disturbed a slow body: (%f, %f)", vx, vy)
	}
}
