package game

import "testing"

func TestNoteForLengthMonotonic(t *testing.T) {
	// Longer lines never ring higher than shorter ones.
	prev := noteForLength(1)
	for length := 10.0; length <= 1000; length += 10 {
		n := noteForLength(length)
		if n > prev {
			t.Fatalf("note rose from %d to %d at length %f", prev, n, length)
		}
		prev = n
	}
}

func TestNoteForLengthRange(t *testing.T) {
	tests := []struct {
		name   string
		length float64
		want   int
	}{
		{"very short line plays the top note", 1, noteBase + 12*(noteOctaves-1) + 10},
		{"maximum length plays the base note", noteMaxLength, noteBase},
		{"beyond maximum stays at the base note", noteMaxLength * 3, noteBase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := noteForLength(tt.length); got != tt.want {
				t.Errorf("noteForLength(%f) = %d, want %d", tt.length, got, tt.want)
			}
		})
	}
}

func TestNoteForLengthStaysInScale(t *testing.T) {
	inScale := map[int]bool{}
	for _, s := range minorPentatonic {
		inScale[s] = true
	}
	for length := 1.0; length <= 900; length += 7 {
		n := noteForLength(length)
		if !inScale[(n-noteBase)%12] {
			t.Errorf("note %d (length %f) is off the scale", n, length)
		}
	}
}

func TestVelocityForSpeed(t *testing.T) {
	tests := []struct {
		name     string
		speed    float64
		maxSpeed float64
		want     float64
	}{
		{"half of max", 600, 1200, 0.5},
		{"slow contact gets the floor", 10, 1200, 0.1},
		{"zero speed gets the floor", 0, 1200, 0.1},
		{"at max", 1200, 1200, 1},
		{"over max is capped", 5000, 1200, 1},
		{"degenerate max speed", 300, 0, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := velocityForSpeed(tt.speed, tt.maxSpeed); got != tt.want {
				t.Errorf("velocityForSpeed(%f, %f) = %f, want %f", tt.speed, tt.maxSpeed, got, tt.want)
			}
		})
	}
}
