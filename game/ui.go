package game

import "linechime/scene"

// WelcomePhase is one stage of the intro overlay sequence.
type WelcomePhase int

const (
	WelcomeFadeIn WelcomePhase = iota
	WelcomeShowing
	WelcomeFadeOut
	WelcomeDone
)

const (
	welcomeFadeInSeconds  = 0.8
	welcomeFadeOutSeconds = 0.5
)

// Welcome is the intro overlay's state machine. It is explicit state
// passed into the update and draw steps each frame rather than ambient
// fields on the game.
type Welcome struct {
	phase WelcomePhase
	t     float64
}

// NewWelcome returns the intro overlay in its initial phase.
func NewWelcome() *Welcome {
	return &Welcome{phase: WelcomeFadeIn}
}

// Update advances the sequence. Any user input while the overlay is
// visible starts the fade-out.
func (w *Welcome) Update(dt float64, anyInput bool) {
	switch w.phase {
	case WelcomeFadeIn:
		w.t += dt
		if w.t >= welcomeFadeInSeconds {
			w.phase = WelcomeShowing
			w.t = 0
		}
		if anyInput {
			w.phase = WelcomeFadeOut
			w.t = 0
		}
	case WelcomeShowing:
		if anyInput {
			w.phase = WelcomeFadeOut
			w.t = 0
		}
	case WelcomeFadeOut:
		w.t += dt
		if w.t >= welcomeFadeOutSeconds {
			w.phase = WelcomeDone
		}
	}
}

// Visible reports whether the overlay should still be drawn.
func (w *Welcome) Visible() bool { return w.phase != WelcomeDone }

// Alpha returns the overlay's current opacity in [0, 1].
func (w *Welcome) Alpha() float64 {
	switch w.phase {
	case WelcomeFadeIn:
		return w.t / welcomeFadeInSeconds
	case WelcomeShowing:
		return 1
	case WelcomeFadeOut:
		return 1 - w.t/welcomeFadeOutSeconds
	default:
		return 0
	}
}

// chromeLayout computes the clickable chrome regions for this frame:
// the help icon in the corner and, when a multi-selection exists, its
// delete button above the selection box. The renderer draws the same
// regions; the controller hit-tests them on the next pointer-down.
func chromeLayout(cfg Config, sel *Selection) []ChromeRegion {
	const iconSize = 24.0
	regions := []ChromeRegion{
		{
			Bounds: scene.Rect{
				MinX: float64(cfg.ScreenWidth) - iconSize - 12,
				MinY: 12,
				MaxX: float64(cfg.ScreenWidth) - 12,
				MaxY: 12 + iconSize,
			},
			Action: ChromeHelp,
		},
	}
	if !sel.Empty() {
		const btnW, btnH = 22.0, 22.0
		b := sel.Bounds
		regions = append(regions, ChromeRegion{
			Bounds: scene.Rect{
				MinX: b.MaxX + 6,
				MinY: b.MinY - btnH - 6,
				MaxX: b.MaxX + 6 + btnW,
				MaxY: b.MinY - 6,
			},
			Action: ChromeDeleteSelection,
		})
	}
	return regions
}

// helpLines is the text of the help overlay.
var helpLines = []string{
	"drag          draw a line",
	"click         drop a ball",
	"hold          spray balls, then leave a spawner",
	"drag line     move it",
	"drag endpoint reshape it",
	"shift-drag    select an area",
	"u / ctrl-z    undo",
	"ctrl-y        redo",
	"del           delete selection (or everything)",
	"esc           deselect",
	"c             clear all",
	"b             clear balls",
	"space         pause",
	"s             stats",
	"h             this help",
}
