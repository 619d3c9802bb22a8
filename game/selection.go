package game

import (
	"math"

	"linechime/scene"
)

// Handle indices for the multi-selection resize handles, four corners
// then four edge midpoints.
const (
	handleNone = -1

	handleTopLeft = iota - 1
	handleTopRight
	handleBottomRight
	handleBottomLeft
	handleTop
	handleRight
	handleBottom
	handleLeft

	handleCount
)

// Selection is the multi-selection: the selected lines and spawners
// plus their cached bounding box. It is transient UI state, never
// undo-tracked.
type Selection struct {
	Lines    []*scene.Line
	Spawners []*scene.Spawner
	Bounds   scene.Rect
}

// Empty reports whether nothing is selected.
func (s *Selection) Empty() bool {
	return len(s.Lines) == 0 && len(s.Spawners) == 0
}

// Clear drops the selection.
func (s *Selection) Clear() {
	s.Lines = nil
	s.Spawners = nil
	s.Bounds = scene.Rect{}
}

// Set installs a new selection and computes its bounds.
func (s *Selection) Set(lines []*scene.Line, spawners []*scene.Spawner) {
	s.Lines = lines
	s.Spawners = spawners
	s.RecomputeBounds()
}

// RecomputeBounds rebuilds the cached bounding box from the selected
// entities' current geometry.
func (s *Selection) RecomputeBounds() {
	if s.Empty() {
		s.Bounds = scene.Rect{}
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	for _, l := range s.Lines {
		grow(l.X1, l.Y1)
		grow(l.X2, l.Y2)
	}
	for _, sp := range s.Spawners {
		grow(sp.X, sp.Y)
	}
	s.Bounds = scene.Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// handleCenters returns the center points of the eight resize handles
// around the given bounds.
func handleCenters(b scene.Rect) [handleCount]scene.Point {
	cx := (b.MinX + b.MaxX) / 2
	cy := (b.MinY + b.MaxY) / 2
	return [handleCount]scene.Point{
		handleTopLeft:     {X: b.MinX, Y: b.MinY},
		handleTopRight:    {X: b.MaxX, Y: b.MinY},
		handleBottomRight: {X: b.MaxX, Y: b.MaxY},
		handleBottomLeft:  {X: b.MinX, Y: b.MaxY},
		handleTop:         {X: cx, Y: b.MinY},
		handleRight:       {X: b.MaxX, Y: cy},
		handleBottom:      {X: cx, Y: b.MaxY},
		handleLeft:        {X: b.MinX, Y: cy},
	}
}

// HandleAt returns the index of the resize handle under the point, or
// handleNone. size is the edge length of a handle's hit box.
func (s *Selection) HandleAt(x, y, size float64) int {
	if s.Empty() {
		return handleNone
	}
	half := size / 2
	for i, c := range handleCenters(s.Bounds) {
		if math.Abs(x-c.X) <= half && math.Abs(y-c.Y) <= half {
			return i
		}
	}
	return handleNone
}

// resizeBounds returns the selection bounds that dragging the given
// handle to (x, y) asks for. Corner handles move both axes, edge
// handles one.
func resizeBounds(b scene.Rect, handle int, x, y float64) scene.Rect {
	out := b
	switch handle {
	case handleTopLeft:
		out.MinX, out.MinY = x, y
	case handleTopRight:
		out.MaxX, out.MinY = x, y
	case handleBottomRight:
		out.MaxX, out.MaxY = x, y
	case handleBottomLeft:
		out.MinX, out.MaxY = x, y
	case handleTop:
		out.MinY = y
	case handleRight:
		out.MaxX = x
	case handleBottom:
		out.MaxY = y
	case handleLeft:
		out.MinX = x
	}
	return out
}

// validResizeBounds reports whether the requested box is usable: not
// inverted and no dimension below the minimum size.
func validResizeBounds(b scene.Rect, minSize float64) bool {
	return b.Width() >= minSize && b.Height() >= minSize
}

// Hover is what the pointer is currently over while idle, at most one
// entry non-empty, chosen by priority: resize handle, then endpoint,
// then line, then spawner.
type Hover struct {
	Handle       int
	EndpointLine *scene.Line
	Endpoint     int
	Line         *scene.Line
	Spawner      *scene.Spawner
}

// None reports whether nothing is hovered.
func (h Hover) None() bool {
	return h.Handle == handleNone && h.EndpointLine == nil && h.Line == nil && h.Spawner == nil
}

func emptyHover() Hover {
	return Hover{Handle: handleNone}
}
