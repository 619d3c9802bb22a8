package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const (
	attackSeconds  = 0.004
	releaseSeconds = 0.25
)

// tone is a finite sine streamer with an attack/release envelope and a
// fixed gain. It drains itself: once the duration is played out it
// reports done and the mixer drops it.
type tone struct {
	freq     float64
	phase    float64
	gain     float64
	rate     beep.SampleRate
	duration int
	position int
}

// NewTone creates a sine note streamer at the given frequency, length
// and gain.
func NewTone(freq float64, duration time.Duration, gain float64, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:     freq,
		gain:     gain,
		rate:     rate,
		duration: rate.N(duration),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.duration {
			return i, i > 0
		}

		val := math.Sin(2*math.Pi*t.phase) * t.gain * t.envelope()

		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope returns the amplitude factor at the current position: a
// short linear attack, then an exponential-feeling release toward the
// end of the note.
func (t *tone) envelope() float64 {
	attack := int(attackSeconds * float64(t.rate))
	release := int(releaseSeconds * float64(t.rate))
	if release > t.duration {
		release = t.duration
	}

	env := 1.0
	if attack > 0 && t.position < attack {
		env = float64(t.position) / float64(attack)
	}
	if remaining := t.duration - t.position; remaining < release {
		frac := float64(remaining) / float64(release)
		env *= frac * frac
	}
	return env
}
