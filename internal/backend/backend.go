// Package backend describes what the viewer needs from a windowing and
// rendering system, independent of any particular one.
package backend

import (
	"fmt"
	"time"

	"viewer/internal/geom"
	"viewer/internal/view"
)

// EventType classifies an input event.
type EventType int

const (
	EventQuit EventType = iota
	EventKeyDown
	EventButtonDown
	EventButtonUp
	EventMotion
	EventWheel
	EventResize
)

func (t EventType) String() string {
	switch t {
	case EventQuit:
		return "Quit"
	case EventKeyDown:
		return "KeyDown"
	case EventButtonDown:
		return "ButtonDown"
	case EventButtonUp:
		return "ButtonUp"
	case EventMotion:
		return "Motion"
	case EventWheel:
		return "Wheel"
	case EventResize:
		return "Resize"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Button is a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Event is one input event. X and Y carry the cursor for pointer events
// and the new size for resize events.
type Event struct {
	Type   EventType
	Key    Key
	Button Button
	X, Y   float64
	WheelY float64
}

// Texture is an uploaded raster.
type Texture interface {
	Width() int
	Height() int
	// Release frees the backend resource. The texture must not be drawn
	// afterwards.
	Release()
}

// Scene is one complete frame to present.
type Scene struct {
	Texture   Texture
	Placement view.Placement
	// Shadow draws the window-mode frame shadow and white backing.
	Shadow bool
}

// Backend is the windowing and rendering system. It satisfies
// view.Window.
type Backend interface {
	Size() geom.Size
	Cursor() geom.Point
	SetFullscreen(on bool) error
	SetMotionEnabled(enabled bool)
	SetTitle(title string)
	NewTexture(width, height int, pix []byte) (Texture, error)
	// Present replaces what is on screen.
	Present(scene Scene) error
	// WaitEvent blocks until an event arrives or timeout elapses. A
	// negative timeout blocks indefinitely. ok is false on timeout.
	WaitEvent(timeout time.Duration) (ev Event, ok bool)
	// ShowMessage shows a modal message and returns when it is dismissed.
	ShowMessage(title, text string)
	// ShowOverlay shows a short-lived text over the image.
	ShowOverlay(text string)
}
