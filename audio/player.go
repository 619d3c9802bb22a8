// Package audio turns note requests into sound with the beep library.
// Initialization is deliberately lazy: browsers and some desktops
// refuse audio output before a user gesture, so the speaker is only
// opened from the first interaction.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes short synthesized notes into a single speaker stream.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer creates a player. No audio device is touched until Init.
func NewPlayer() *Player {
	return &Player{
		mixer: &beep.Mixer{},
	}
}

// Init opens the speaker and starts the mixer. Safe to call more than
// once; only the first call does work.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play sounds a MIDI note at the given velocity in [0, 1]. A no-op
// before Init succeeds.
func (p *Player) Play(midi int, velocity float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	if velocity <= 0 {
		return
	}
	if velocity > 1 {
		velocity = 1
	}

	freq := NoteFreq(midi)
	if freq <= 0 {
		return
	}
	// The speaker goroutine streams from the mixer; mutations must
	// happen under its lock.
	speaker.Lock()
	p.mixer.Add(NewTone(freq, 450*time.Millisecond, velocity*0.35, sampleRate))
	speaker.Unlock()
}
