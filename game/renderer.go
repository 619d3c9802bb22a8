package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"linechime/scene"
)

// RenderState is the read-only snapshot the renderer consumes. The
// renderer queries, never mutates.
type RenderState struct {
	Scene      *scene.Manager
	Controller *Controller
	Welcome    *Welcome
	Paused     bool
	ShowHelp   bool
	ShowStats  bool
	CanUndo    bool
	CanRedo    bool
}

// Palette.
var (
	colorBackground = color.RGBA{16, 16, 24, 255}
	colorLine       = color.RGBA{235, 235, 235, 255}
	colorLineHover  = color.RGBA{255, 210, 90, 255}
	colorLineSel    = color.RGBA{120, 200, 255, 255}
	colorEndpoint   = color.RGBA{255, 160, 60, 255}
	colorBall       = color.RGBA{110, 220, 170, 255}
	colorTrail      = color.RGBA{110, 220, 170, 70}
	colorSpawner    = color.RGBA{210, 120, 255, 255}
	colorDrawing    = color.RGBA{235, 235, 235, 130}
	colorSelectBox  = color.RGBA{120, 200, 255, 200}
	colorAreaRect   = color.RGBA{120, 200, 255, 60}
	colorHandle     = color.RGBA{120, 200, 255, 255}
	colorChrome     = color.RGBA{200, 200, 210, 220}
	colorDanger     = color.RGBA{255, 100, 100, 230}
	colorOverlayBG  = color.RGBA{0, 0, 0, 180}
)

// Renderer draws the scene and UI chrome.
type Renderer struct {
	cfg  Config
	face font.Face
}

// NewRenderer creates a renderer.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{
		cfg:  cfg,
		face: basicfont.Face7x13,
	}
}

// Draw renders one frame. All state mutation for the frame has already
// happened by the time this runs.
func (r *Renderer) Draw(screen *ebiten.Image, state RenderState) {
	screen.Fill(colorBackground)

	hover := state.Controller.Hover()
	sel := state.Controller.Selection()

	r.drawTrails(screen, state.Scene.Balls())
	r.drawLines(screen, state, hover, sel)
	r.drawBalls(screen, state.Scene.Balls())
	r.drawSpawners(screen, state.Scene.Spawners(), hover.Spawner)
	r.drawGestures(screen, state.Controller)
	r.drawSelection(screen, sel)
	r.drawChrome(screen, sel)
	r.drawOverlays(screen, state)
}

func (r *Renderer) drawLines(screen *ebiten.Image, state RenderState, hover Hover, sel *Selection) {
	selected := make(map[*scene.Line]bool, len(sel.Lines))
	for _, l := range sel.Lines {
		selected[l] = true
	}

	for _, l := range state.Scene.Lines() {
		clr := colorLine
		switch {
		case selected[l] || l == state.Controller.Selected():
			clr = colorLineSel
		case l == hover.Line || l == hover.EndpointLine:
			clr = colorLineHover
		}
		vector.StrokeLine(screen,
			float32(l.X1), float32(l.Y1), float32(l.X2), float32(l.Y2),
			float32(r.cfg.LineThickness), clr, true)
	}

	// Endpoint grips on the hovered line, with the hovered endpoint
	// drawn larger.
	if l := hover.EndpointLine; l != nil {
		for which := 0; which < 2; which++ {
			p := l.Endpoint(which)
			radius := 3.0
			if which == hover.Endpoint {
				radius = 5.0
			}
			vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(radius), colorEndpoint, true)
		}
	}
}

func (r *Renderer) drawTrails(screen *ebiten.Image, balls []*scene.Ball) {
	for _, b := range balls {
		trail := b.Trail()
		for i, p := range trail {
			// Older points shrink toward nothing.
			frac := float64(i+1) / float64(len(trail)+1)
			vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(b.Radius*frac*0.8), colorTrail, true)
		}
	}
}

func (r *Renderer) drawBalls(screen *ebiten.Image, balls []*scene.Ball) {
	for _, b := range balls {
		x, y := b.Body.Position()
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(b.Radius), colorBall, true)
	}
}

func (r *Renderer) drawSpawners(screen *ebiten.Image, spawners []*scene.Spawner, hovered *scene.Spawner) {
	for _, sp := range spawners {
		clr := colorSpawner
		ring := float32(9.0)
		if sp == hovered {
			ring = 12.0
		}
		vector.StrokeCircle(screen, float32(sp.X), float32(sp.Y), ring, 2, clr, true)
		vector.DrawFilledCircle(screen, float32(sp.X), float32(sp.Y), 3, clr, true)
	}
}

// drawGestures draws in-progress gesture geometry: the stretching line
// of a draw, or the rubber-band rectangle of an area-select.
func (r *Renderer) drawGestures(screen *ebiten.Image, c *Controller) {
	if x1, y1, x2, y2, ok := c.DrawingLine(); ok {
		vector.StrokeLine(screen,
			float32(x1), float32(y1), float32(x2), float32(y2),
			float32(r.cfg.LineThickness), colorDrawing, true)
	}
	if rect, ok := c.AreaRect(); ok {
		vector.DrawFilledRect(screen,
			float32(rect.MinX), float32(rect.MinY),
			float32(rect.Width()), float32(rect.Height()),
			colorAreaRect, true)
		vector.StrokeRect(screen,
			float32(rect.MinX), float32(rect.MinY),
			float32(rect.Width()), float32(rect.Height()),
			1, colorSelectBox, true)
	}
}

func (r *Renderer) drawSelection(screen *ebiten.Image, sel *Selection) {
	if sel.Empty() {
		return
	}
	b := sel.Bounds
	vector.StrokeRect(screen,
		float32(b.MinX), float32(b.MinY),
		float32(b.Width()), float32(b.Height()),
		1, colorSelectBox, true)

	half := float32(r.cfg.HandleSize / 2)
	for _, center := range handleCenters(b) {
		vector.DrawFilledRect(screen,
			float32(center.X)-half, float32(center.Y)-half,
			half*2, half*2, colorHandle, true)
	}
}

// drawChrome draws the clickable chrome. Its layout comes from the
// same chromeLayout the controller hit-tests, so what is drawn is what
// is clickable.
func (r *Renderer) drawChrome(screen *ebiten.Image, sel *Selection) {
	for _, region := range chromeLayout(r.cfg, sel) {
		b := region.Bounds
		switch region.Action {
		case ChromeHelp:
			vector.StrokeCircle(screen,
				float32((b.MinX+b.MaxX)/2), float32((b.MinY+b.MaxY)/2),
				float32(b.Width()/2), 1.5, colorChrome, true)
			text.Draw(screen, "?", r.face, int(b.MinX)+9, int(b.MaxY)-8, colorChrome)
		case ChromeDeleteSelection:
			vector.DrawFilledRect(screen,
				float32(b.MinX), float32(b.MinY),
				float32(b.Width()), float32(b.Height()),
				colorDanger, true)
			text.Draw(screen, "x", r.face, int(b.MinX)+8, int(b.MaxY)-7, colorBackground)
		}
	}
}

func (r *Renderer) drawOverlays(screen *ebiten.Image, state RenderState) {
	if state.Paused {
		text.Draw(screen, "paused", r.face, r.cfg.ScreenWidth/2-21, 24, colorChrome)
	}
	if state.ShowStats {
		r.drawStats(screen, state)
	}
	if state.ShowHelp {
		r.drawHelp(screen)
	}
	if state.Welcome.Visible() {
		r.drawWelcome(screen, state.Welcome)
	}
}

func (r *Renderer) drawStats(screen *ebiten.Image, state RenderState) {
	lines := []string{
		fmt.Sprintf("lines    %d", len(state.Scene.Lines())),
		fmt.Sprintf("balls    %d", len(state.Scene.Balls())),
		fmt.Sprintf("spawners %d", len(state.Scene.Spawners())),
		fmt.Sprintf("undo     %v", state.CanUndo),
		fmt.Sprintf("redo     %v", state.CanRedo),
		fmt.Sprintf("tps      %0.1f", ebiten.ActualTPS()),
		fmt.Sprintf("fps      %0.1f", ebiten.ActualFPS()),
	}
	for i, s := range lines {
		text.Draw(screen, s, r.face, 12, 24+i*16, colorChrome)
	}
}

func (r *Renderer) drawHelp(screen *ebiten.Image) {
	const pad = 20
	w := 350
	h := len(helpLines)*16 + pad*2
	x := (r.cfg.ScreenWidth - w) / 2
	y := (r.cfg.ScreenHeight - h) / 2
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), colorOverlayBG, true)
	for i, s := range helpLines {
		text.Draw(screen, s, r.face, x+pad, y+pad+12+i*16, colorChrome)
	}
}

func (r *Renderer) drawWelcome(screen *ebiten.Image, w *Welcome) {
	alpha := w.Alpha()
	bg := colorOverlayBG
	bg.A = uint8(float64(bg.A) * alpha)
	vector.DrawFilledRect(screen, 0, 0,
		float32(r.cfg.ScreenWidth), float32(r.cfg.ScreenHeight), bg, true)

	fg := colorChrome
	fg.A = uint8(float64(fg.A) * alpha)
	msgs := []string{
		"linechime",
		"",
		"draw lines, drop balls, make music",
		"press h for help",
	}
	for i, s := range msgs {
		x := (r.cfg.ScreenWidth - len(s)*7) / 2
		text.Draw(screen, s, r.face, x, r.cfg.ScreenHeight/2-30+i*18, fg)
	}
}
