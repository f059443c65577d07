package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"viewer/internal/backend"
)

// MouseSettings contains mouse-specific configuration
type MouseSettings struct {
	WheelInverted bool `json:"wheel_inverted"`
}

// MousebindingManager turns ebiten mouse state into backend pointer events
type MousebindingManager struct {
	mouseMapping map[ebiten.MouseButton]backend.Button
	settings     MouseSettings

	lastX, lastY int
	tracking     bool
}

// NewMousebindingManager creates a new MousebindingManager
func NewMousebindingManager(settings MouseSettings) *MousebindingManager {
	return &MousebindingManager{
		mouseMapping: getMouseMapping(),
		settings:     settings,
	}
}

// getMouseMapping returns a mapping from Ebiten mouse buttons to viewer buttons
func getMouseMapping() map[ebiten.MouseButton]backend.Button {
	return map[ebiten.MouseButton]backend.Button{
		ebiten.MouseButtonLeft:   backend.ButtonLeft,
		ebiten.MouseButtonMiddle: backend.ButtonMiddle,
		ebiten.MouseButtonRight:  backend.ButtonRight,
	}
}

// wheelEvent builds a wheel event, applying inversion. ok is false when the
// wheel did not move vertically.
func (mm *MousebindingManager) wheelEvent(dy float64, x, y int) (backend.Event, bool) {
	if dy == 0 {
		return backend.Event{}, false
	}
	if mm.settings.WheelInverted {
		dy = -dy
	}
	return backend.Event{Type: backend.EventWheel, WheelY: dy, X: float64(x), Y: float64(y)}, true
}

// motionEvent reports a cursor move since the last call. The first call
// only records the position.
func (mm *MousebindingManager) motionEvent(x, y int) (backend.Event, bool) {
	moved := mm.tracking && (x != mm.lastX || y != mm.lastY)
	mm.lastX, mm.lastY = x, y
	mm.tracking = true
	if !moved {
		return backend.Event{}, false
	}
	return backend.Event{Type: backend.EventMotion, X: float64(x), Y: float64(y)}, true
}

// Poll returns the pointer events of this tick. Motion is reported only
// when motionEnabled is set; a suppressed move is reported on the next
// enabled tick.
func (mm *MousebindingManager) Poll(motionEnabled bool) []backend.Event {
	x, y := ebiten.CursorPosition()
	var events []backend.Event

	if motionEnabled {
		if ev, ok := mm.motionEvent(x, y); ok {
			events = append(events, ev)
		}
	}

	for button, b := range mm.mouseMapping {
		if inpututil.IsMouseButtonJustPressed(button) {
			events = append(events, backend.Event{Type: backend.EventButtonDown, Button: b, X: float64(x), Y: float64(y)})
		}
		if inpututil.IsMouseButtonJustReleased(button) {
			events = append(events, backend.Event{Type: backend.EventButtonUp, Button: b, X: float64(x), Y: float64(y)})
		}
	}

	_, dy := ebiten.Wheel()
	if ev, ok := mm.wheelEvent(dy, x, y); ok {
		events = append(events, ev)
	}
	return events
}
