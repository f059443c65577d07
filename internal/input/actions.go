// Package input turns backend events into viewer actions.
package input

import (
	"fmt"
	"strings"

	"viewer/internal/backend"
)

// Actions is what the dispatcher can ask the viewer to do.
type Actions interface {
	Quit() error
	// Dismiss is the click-release or Return quit, which may first
	// explain itself.
	Dismiss() error
	ShowControls() error
	ToggleFullscreen() error
	RotateLeft() error
	RotateRight() error
	Mirror() error
	// Zoom changes the zoom level by delta, anchored at the cursor or at
	// the window center.
	Zoom(delta int, atCursor bool) error
	ZoomReset(atCursor bool) error
	// Pan moves the image by one keyboard step in the given direction.
	Pan(dirX, dirY float64) error
	BeginDrag() error
	DragTo() error
	EndDrag()
	TogglePause() error
	Next() error
	Previous() error
	Resized() error
}

// ActionDefinition defines an action with its keys, mouse bindings, and description
type ActionDefinition struct {
	Name         string
	Keys         []backend.Key
	MouseActions []string
	Description  string
}

// actionDefinitions contains all action definitions with their fixed bindings
var actionDefinitions = []ActionDefinition{
	{"quit", []backend.Key{backend.KeyQ, backend.KeyEscape}, []string{"Window close"}, "Quit"},
	{"dismiss", []backend.Key{backend.KeyReturn, backend.KeyKPEnter}, []string{"Left click"}, "Close the viewer"},
	{"drag", nil, []string{"Left drag"}, "Move the image"},
	{"fullscreen", []backend.Key{backend.KeyF, backend.KeyF11}, []string{"Middle click"}, "Toggle fullscreen"},
	{"zoom_in", []backend.Key{backend.KeyEqual, backend.KeyKPPlus}, []string{"Wheel up"}, "Zoom in"},
	{"zoom_out", []backend.Key{backend.KeyMinus, backend.KeyKPMinus}, []string{"Wheel down"}, "Zoom out"},
	{"zoom_reset", []backend.Key{backend.Key0, backend.KeyKP0}, nil, "Zoom to 1:1"},
	{"rotate_left", []backend.Key{backend.KeyL}, nil, "Rotate counter-clockwise"},
	{"rotate_right", []backend.Key{backend.KeyR}, nil, "Rotate clockwise"},
	{"mirror", []backend.Key{backend.KeyM}, nil, "Mirror horizontally"},
	{"pan_left", []backend.Key{backend.KeyLeft, backend.KeyKP4}, nil, "Move view left"},
	{"pan_right", []backend.Key{backend.KeyRight, backend.KeyKP6}, nil, "Move view right"},
	{"pan_up", []backend.Key{backend.KeyUp, backend.KeyKP8}, nil, "Move view up"},
	{"pan_down", []backend.Key{backend.KeyDown, backend.KeyKP2}, nil, "Move view down"},
	{"toggle_pause", []backend.Key{backend.KeySpace}, nil, "Pause/resume animation"},
	{"previous", []backend.Key{backend.KeyPageUp, backend.KeyKP9}, nil, "Previous file"},
	{"next", []backend.Key{backend.KeyPageDown, backend.KeyKP3}, nil, "Next file"},
	{"controls", nil, []string{"Right click"}, "Show this summary"},
}

// KeyMap returns the fixed key to action mapping.
func KeyMap() map[backend.Key]string {
	m := make(map[backend.Key]string)
	for _, def := range actionDefinitions {
		for _, key := range def.Keys {
			m[key] = def.Name
		}
	}
	return m
}

// ControlsSummary renders the bindings as text, one action per line.
func ControlsSummary() string {
	var b strings.Builder
	for _, def := range actionDefinitions {
		var inputs []string
		for _, k := range def.Keys {
			inputs = append(inputs, k.String())
		}
		inputs = append(inputs, def.MouseActions...)
		fmt.Fprintf(&b, "%s: %s\n", strings.Join(inputs, ", "), def.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// ExecuteAction runs the named action. atCursor selects the cursor as the
// zoom anchor instead of the window center. It reports false for unknown
// actions.
func ExecuteAction(action string, a Actions, atCursor bool) (bool, error) {
	var err error
	switch action {
	case "quit":
		err = a.Quit()
	case "dismiss":
		err = a.Dismiss()
	case "fullscreen":
		err = a.ToggleFullscreen()
	case "zoom_in":
		err = a.Zoom(1, atCursor)
	case "zoom_out":
		err = a.Zoom(-1, atCursor)
	case "zoom_reset":
		err = a.ZoomReset(atCursor)
	case "rotate_left":
		err = a.RotateLeft()
	case "rotate_right":
		err = a.RotateRight()
	case "mirror":
		err = a.Mirror()
	case "pan_left":
		err = a.Pan(1, 0)
	case "pan_right":
		err = a.Pan(-1, 0)
	case "pan_up":
		err = a.Pan(0, 1)
	case "pan_down":
		err = a.Pan(0, -1)
	case "toggle_pause":
		err = a.TogglePause()
	case "previous":
		err = a.Previous()
	case "next":
		err = a.Next()
	case "controls":
		err = a.ShowControls()
	default:
		return false, nil
	}
	return true, err
}
