package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestNoteFreq(t *testing.T) {
	tests := []struct {
		name string
		midi int
		want float64
	}{
		{"A4 concert pitch", 69, 440},
		{"A5 one octave up", 81, 880},
		{"A3 one octave down", 57, 220},
		{"below range", -1, 0},
		{"above range", 128, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NoteFreq(tt.midi)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NoteFreq(%d) = %f, want %f", tt.midi, got, tt.want)
			}
		})
	}
}

func TestNoteFreqMiddleC(t *testing.T) {
	got := NoteFreq(60)
	if math.Abs(got-261.6255653) > 1e-4 {
		t.Errorf("NoteFreq(60) = %f, want ~261.63", got)
	}
}

func drainStreamer(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestToneTerminates(t *testing.T) {
	rate := beep.SampleRate(44100)
	s := NewTone(440, 100*time.Millisecond, 0.3, rate)

	got := drainStreamer(s)
	want := rate.N(100 * time.Millisecond)
	if got != want {
		t.Errorf("tone streamed %d samples, want %d", got, want)
	}

	// A drained streamer stays drained.
	buf := make([][2]float64, 16)
	if n, ok := s.Stream(buf); n != 0 || ok {
		t.Errorf("drained tone streamed %d more samples, ok=%v", n, ok)
	}
}

func TestToneAmplitudeBounded(t *testing.T) {
	rate := beep.SampleRate(44100)
	gain := 0.35
	s := NewTone(440, 200*time.Millisecond, gain, rate)

	buf := make([][2]float64, 256)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for ch := 0; ch < 2; ch++ {
				if v := math.Abs(buf[i][ch]); v > gain+1e-9 {
					t.Fatalf("sample %f exceeds gain %f", v, gain)
				}
			}
		}
		if !ok {
			break
		}
	}
}

func TestToneStartsAndEndsQuiet(t *testing.T) {
	rate := beep.SampleRate(44100)
	s := NewTone(440, 200*time.Millisecond, 0.5, rate)

	total := rate.N(200 * time.Millisecond)
	all := make([][2]float64, total)
	pos := 0
	for pos < total {
		n, ok := s.Stream(all[pos:])
		pos += n
		if !ok {
			break
		}
	}

	// The attack ramps from silence.
	if v := math.Abs(all[0][0]); v > 1e-9 {
		t.Errorf("first sample %f, want silence", v)
	}
	// The release squeezes the tail toward silence.
	if v := math.Abs(all[total-1][0]); v > 0.01 {
		t.Errorf("last sample %f, want near silence", v)
	}
}

func TestToneIsStereoCoherent(t *testing.T) {
	s := NewTone(330, 50*time.Millisecond, 0.4, beep.SampleRate(44100))
	buf := make([][2]float64, 128)
	n, _ := s.Stream(buf)
	for i := 0; i < n; i++ {
		if buf[i][0] != buf[i][1] {
			t.Fatalf("sample %d differs across channels: %f vs %f", i, buf[i][0], buf[i][1])
		}
	}
}
