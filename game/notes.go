package game

// Pitch mapping from line geometry to musical notes. Synthesis lives
// in the audio package; this file only decides what to play.

// minorPentatonic is the scale impacts are quantized onto, as semitone
// offsets within one octave.
var minorPentatonic = []int{0, 3, 5, 7, 10}

const (
	// noteBase is the MIDI note the longest lines play (A2).
	noteBase = 45

	// noteOctaves is how many octaves of the scale are used.
	noteOctaves = 3

	// noteMaxLength is the line length mapped to the lowest note;
	// longer lines stay at the bottom of the range.
	noteMaxLength = 700.0
)

// noteForLength quantizes a line length onto the scale: short lines
// ring high, long lines ring low.
func noteForLength(length float64) int {
	t := 1 - length/noteMaxLength
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	degrees := noteOctaves * len(minorPentatonic)
	degree := int(t * float64(degrees))
	if degree >= degrees {
		degree = degrees - 1
	}
	return noteBase + 12*(degree/len(minorPentatonic)) + minorPentatonic[degree%len(minorPentatonic)]
}

// velocityForSpeed maps an impact speed to a note velocity in
// [0.1, 1]. Even the softest audible impact gets a floor so slow
// rolling contacts still tick.
func velocityForSpeed(speed, maxSpeed float64) float64 {
	if maxSpeed <= 0 {
		return 0.1
	}
	v := speed / maxSpeed
	if v < 0.1 {
		v = 0.1
	} else if v > 1 {
		v = 1
	}
	return v
}
