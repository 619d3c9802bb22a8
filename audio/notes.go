package audio

import "math"

// NoteFreq returns the frequency in Hz of a MIDI note number, equal
// temperament with A4 (note 69) at 440 Hz. Out-of-range notes return
// zero.
func NoteFreq(midi int) float64 {
	if midi < 0 || midi > 127 {
		return 0
	}
	return 440.0 * math.Pow(2, (float64(midi)-69.0)/12.0)
}
