package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"viewer/internal/backend"
)

// KeybindingManager turns ebiten key presses into backend key events
type KeybindingManager struct {
	keyMapping map[ebiten.Key]backend.Key
	pressed    []ebiten.Key
}

// NewKeybindingManager creates a new KeybindingManager
func NewKeybindingManager() *KeybindingManager {
	return &KeybindingManager{
		keyMapping: getKeyMapping(),
	}
}

// getKeyMapping returns a mapping from Ebiten keys to viewer keys
func getKeyMapping() map[ebiten.Key]backend.Key {
	return map[ebiten.Key]backend.Key{
		// Letters
		ebiten.KeyF: backend.KeyF,
		ebiten.KeyL: backend.KeyL,
		ebiten.KeyM: backend.KeyM,
		ebiten.KeyQ: backend.KeyQ,
		ebiten.KeyR: backend.KeyR,

		// Function keys
		ebiten.KeyF11: backend.KeyF11,

		// Numbers and punctuation
		ebiten.Key0:     backend.Key0,
		ebiten.KeyMinus: backend.KeyMinus,
		ebiten.KeyEqual: backend.KeyEqual,

		// Special keys
		ebiten.KeySpace:      backend.KeySpace,
		ebiten.KeyEscape:     backend.KeyEscape,
		ebiten.KeyEnter:      backend.KeyReturn,
		ebiten.KeyPageUp:     backend.KeyPageUp,
		ebiten.KeyPageDown:   backend.KeyPageDown,
		ebiten.KeyArrowUp:    backend.KeyUp,
		ebiten.KeyArrowDown:  backend.KeyDown,
		ebiten.KeyArrowLeft:  backend.KeyLeft,
		ebiten.KeyArrowRight: backend.KeyRight,

		// Numpad
		ebiten.KeyNumpad0:        backend.KeyKP0,
		ebiten.KeyNumpad2:        backend.KeyKP2,
		ebiten.KeyNumpad3:        backend.KeyKP3,
		ebiten.KeyNumpad4:        backend.KeyKP4,
		ebiten.KeyNumpad6:        backend.KeyKP6,
		ebiten.KeyNumpad8:        backend.KeyKP8,
		ebiten.KeyNumpad9:        backend.KeyKP9,
		ebiten.KeyNumpadSubtract: backend.KeyKPMinus,
		ebiten.KeyNumpadAdd:      backend.KeyKPPlus,
		ebiten.KeyNumpadEnter:    backend.KeyKPEnter,
	}
}

// Translate maps an ebiten key to a viewer key
func (km *KeybindingManager) Translate(key ebiten.Key) (backend.Key, bool) {
	k, ok := km.keyMapping[key]
	return k, ok
}

// modifierHeld reports whether Ctrl or Alt is down. Such combinations
// belong to the desktop, not the viewer.
func modifierHeld() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyAlt)
}

// JustPressed returns key events for the keys pressed since the last tick
func (km *KeybindingManager) JustPressed() []backend.Event {
	km.pressed = inpututil.AppendJustPressedKeys(km.pressed[:0])
	if len(km.pressed) == 0 || modifierHeld() {
		return nil
	}

	var events []backend.Event
	for _, key := range km.pressed {
		k, ok := km.Translate(key)
		if !ok {
			continue
		}
		events = append(events, backend.Event{Type: backend.EventKeyDown, Key: k})
	}
	return events
}
