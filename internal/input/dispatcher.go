package input

import (
	"viewer/internal/backend"
	"viewer/internal/debug"
)

// Dispatcher routes events to actions and tells a click from a drag: a
// left press followed by a release with no motion, wheel or zoom in
// between is a click.
type Dispatcher struct {
	actions Actions
	keymap  map[backend.Key]string

	leftDown      bool
	exitOnRelease bool
}

func NewDispatcher(actions Actions) *Dispatcher {
	return &Dispatcher{
		actions: actions,
		keymap:  KeyMap(),
	}
}

// Dispatch handles one event. Errors from actions are returned unchanged.
func (d *Dispatcher) Dispatch(ev backend.Event) error {
	switch ev.Type {
	case backend.EventQuit:
		return d.actions.Quit()
	case backend.EventResize:
		return d.actions.Resized()
	case backend.EventKeyDown:
		return d.handleKey(ev.Key)
	case backend.EventButtonDown:
		return d.handleButtonDown(ev.Button)
	case backend.EventButtonUp:
		return d.handleButtonUp(ev.Button)
	case backend.EventMotion:
		if !d.leftDown {
			return nil
		}
		d.exitOnRelease = false
		return d.actions.DragTo()
	case backend.EventWheel:
		return d.handleWheel(ev.WheelY)
	}
	return nil
}

func (d *Dispatcher) handleKey(key backend.Key) error {
	action, ok := d.keymap[key]
	if !ok {
		debug.Logf("unbound key %v", key)
		return nil
	}
	switch action {
	case "zoom_in", "zoom_out", "zoom_reset":
		if d.leftDown {
			d.exitOnRelease = false
		}
	}
	_, err := ExecuteAction(action, d.actions, d.leftDown)
	return err
}

func (d *Dispatcher) handleButtonDown(button backend.Button) error {
	switch button {
	case backend.ButtonLeft:
		d.leftDown = true
		d.exitOnRelease = true
		return d.actions.BeginDrag()
	case backend.ButtonMiddle:
		return d.actions.ToggleFullscreen()
	case backend.ButtonRight:
		_, err := ExecuteAction("controls", d.actions, false)
		return err
	}
	return nil
}

func (d *Dispatcher) handleButtonUp(button backend.Button) error {
	if button != backend.ButtonLeft || !d.leftDown {
		return nil
	}
	exit := d.exitOnRelease
	d.leftDown = false
	d.exitOnRelease = false
	d.actions.EndDrag()
	if exit {
		return d.actions.Dismiss()
	}
	return nil
}

func (d *Dispatcher) handleWheel(dy float64) error {
	var delta int
	switch {
	case dy > 0:
		delta = 1
	case dy < 0:
		delta = -1
	default:
		return nil
	}
	if d.leftDown {
		d.exitOnRelease = false
	}
	return d.actions.Zoom(delta, true)
}
