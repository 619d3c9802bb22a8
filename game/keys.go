package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is an application command triggered by the keyboard.
type Action int

const (
	ActionNone Action = iota
	ActionUndo
	ActionRedo
	ActionDelete
	ActionDeselect
	ActionClearAll
	ActionClearBalls
	ActionPause
	ActionHelp
	ActionStats
)

// keyBinding maps a key to an action, optionally requiring the
// undo-style modifier (Ctrl or Meta, so both conventions work).
type keyBinding struct {
	action   Action
	modifier bool
	shift    bool
}

// keyBindings is the lookup table of key to action.
var keyBindings = map[ebiten.Key][]keyBinding{
	ebiten.KeyZ: {
		{action: ActionRedo, modifier: true, shift: true},
		{action: ActionUndo, modifier: true},
	},
	ebiten.KeyY:         {{action: ActionRedo, modifier: true}},
	ebiten.KeyU:         {{action: ActionUndo}},
	ebiten.KeyDelete:    {{action: ActionDelete}},
	ebiten.KeyBackspace: {{action: ActionDelete}},
	ebiten.KeyEscape:    {{action: ActionDeselect}},
	ebiten.KeyC:         {{action: ActionClearAll}},
	ebiten.KeyB:         {{action: ActionClearBalls}},
	ebiten.KeySpace:     {{action: ActionPause}},
	ebiten.KeyH:         {{action: ActionHelp}},
	ebiten.KeyS:         {{action: ActionStats}},
}

// undoModifierPressed reports whether either accepted undo modifier is
// held.
func undoModifierPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

// shiftPressed reports whether shift is held.
func shiftPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyShift)
}

// pressedActions returns the actions for keys pressed this frame, with
// modifier requirements resolved. For a key with several bindings the
// first whose modifiers match wins.
func pressedActions() []Action {
	var actions []Action
	modifier := undoModifierPressed()
	shift := shiftPressed()
	for key, bindings := range keyBindings {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		for _, b := range bindings {
			if b.modifier && !modifier {
				continue
			}
			if b.shift && !shift {
				continue
			}
			actions = append(actions, b.action)
			break
		}
	}
	return actions
}
