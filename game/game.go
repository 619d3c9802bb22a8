package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"linechime/phys"
	"linechime/scene"
)

// NoteSink is the audio collaborator: gesture-gated initialization and
// one call per impact. The game never depends on how notes are made.
type NoteSink interface {
	// Init prepares audio output. Called on the first user gesture;
	// platform policy forbids starting sooner.
	Init() error

	// Play sounds the given MIDI note at the given velocity in [0, 1].
	Play(midi int, velocity float64)
}

// Game ties the pieces together and implements ebiten.Game. Per frame
// the order is fixed: input, physics stepping, scene bookkeeping,
// contact-to-note dispatch, and only then rendering, so the renderer
// never observes a half-updated frame.
type Game struct {
	cfg Config
	log *zap.Logger

	world      *phys.World
	scene      *scene.Manager
	history    *scene.History
	controller *Controller
	renderer   *Renderer
	welcome    *Welcome
	notes      NoteSink

	paused    bool
	showHelp  bool
	showStats bool

	audioReady  bool
	audioFailed bool

	lastUpdate time.Time
}

// New builds the game and all of its collaborators.
func New(cfg Config, logger *zap.Logger, notes NoteSink) *Game {
	world := phys.NewWorld(cfg.physConfig())
	manager := scene.NewManager(world, cfg.sceneConfig())
	history := scene.NewHistory(cfg.HistorySize)

	g := &Game{
		cfg:        cfg,
		log:        logger,
		world:      world,
		scene:      manager,
		history:    history,
		renderer:   NewRenderer(cfg),
		welcome:    NewWelcome(),
		notes:      notes,
		lastUpdate: time.Now(),
	}
	g.controller = NewController(cfg, manager, history, ControllerHooks{
		ToggleHelp:   func() { g.showHelp = !g.showHelp },
		FirstGesture: g.initAudio,
	})
	return g
}

// Scene returns the scene manager, for tests and tooling.
func (g *Game) Scene() *scene.Manager { return g.scene }

// Update advances the game by one frame.
func (g *Game) Update() error {
	now := time.Now()
	dt := now.Sub(g.lastUpdate).Seconds()
	g.lastUpdate = now
	// Clamp delta time to prevent large jumps after a stall.
	if dt > 0.1 {
		dt = 0.1
	}

	anyInput := g.pumpPointer(now)
	anyInput = g.pumpKeyboard() || anyInput
	g.welcome.Update(dt, anyInput)

	if !g.paused {
		g.world.Step(dt)
		g.scene.Update(now, float64(g.cfg.ScreenHeight))
		g.controller.Tick(now)
		g.playContacts()
	} else {
		// Discard contacts accumulated while paused so unpausing does
		// not replay a burst of stale notes.
		g.world.Drain()
	}

	g.controller.SetChrome(chromeLayout(g.cfg, g.controller.Selection()))
	return nil
}

// pumpPointer feeds this frame's mouse state to the controller and
// reports whether any pointer input happened.
func (g *Game) pumpPointer(now time.Time) bool {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	any := false
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.controller.PointerDown(x, y, now, shiftPressed())
		any = true
	}
	g.controller.PointerMove(x, y)
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.controller.PointerUp(x, y, now)
		any = true
	}
	return any
}

// pumpKeyboard resolves pressed keys into actions and dispatches them.
func (g *Game) pumpKeyboard() bool {
	actions := pressedActions()
	for _, action := range actions {
		switch action {
		case ActionUndo:
			g.controller.Undo()
		case ActionRedo:
			g.controller.Redo()
		case ActionDelete:
			// Multi-selection first, then single; with nothing
			// selected the press unambiguously means wipe the scene.
			if !g.controller.DeleteSelection() {
				g.controller.ClearAll()
			}
		case ActionDeselect:
			g.controller.Deselect()
		case ActionClearAll:
			g.controller.ClearAll()
		case ActionClearBalls:
			g.controller.ClearBalls()
		case ActionPause:
			g.paused = !g.paused
		case ActionHelp:
			g.showHelp = !g.showHelp
		case ActionStats:
			g.showStats = !g.showStats
		}
	}
	return len(actions) > 0
}

// playContacts turns this frame's collision events into notes: pitch
// from the struck line's length, velocity from the impact speed.
func (g *Game) playContacts() {
	contacts := g.world.Drain()
	if len(contacts) == 0 || g.notes == nil || !g.audioReady {
		return
	}
	for _, contact := range contacts {
		l, ok := contact.Line.UserData.(*scene.Line)
		if !ok {
			continue
		}
		g.notes.Play(noteForLength(l.Length()), velocityForSpeed(contact.Speed, g.cfg.MaxBallSpeed))
	}
}

// initAudio performs the gesture-gated audio start. A failure is
// logged once and audio stays off; the toy keeps running silently.
func (g *Game) initAudio() {
	if g.audioReady || g.audioFailed || g.notes == nil || g.cfg.Muted {
		return
	}
	if err := g.notes.Init(); err != nil {
		g.audioFailed = true
		if g.log != nil {
			g.log.Warn("audio init failed, continuing without sound", zap.Error(err))
		}
		return
	}
	g.audioReady = true
	if g.log != nil {
		g.log.Info("audio ready")
	}
}

// Draw renders the frame from read-only scene snapshots.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, RenderState{
		Scene:      g.scene,
		Controller: g.controller,
		Welcome:    g.welcome,
		Paused:     g.paused,
		ShowHelp:   g.showHelp,
		ShowStats:  g.showStats,
		CanUndo:    g.history.CanUndo(),
		CanRedo:    g.history.CanRedo(),
	})
}

// Layout returns the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.ScreenWidth, g.cfg.ScreenHeight
}
