package input

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"viewer/internal/backend"
)

type recordingActions struct {
	calls []string
	err   error
}

func (r *recordingActions) record(call string) error {
	r.calls = append(r.calls, call)
	return r.err
}

func (r *recordingActions) Quit() error             { return r.record("quit") }
func (r *recordingActions) Dismiss() error          { return r.record("dismiss") }
func (r *recordingActions) ShowControls() error     { return r.record("controls") }
func (r *recordingActions) ToggleFullscreen() error { return r.record("fullscreen") }
func (r *recordingActions) RotateLeft() error       { return r.record("rotate_left") }
func (r *recordingActions) RotateRight() error      { return r.record("rotate_right") }
func (r *recordingActions) Mirror() error           { return r.record("mirror") }
func (r *recordingActions) Zoom(delta int, atCursor bool) error {
	return r.record(fmt.Sprintf("zoom(%d,%v)", delta, atCursor))
}
func (r *recordingActions) ZoomReset(atCursor bool) error {
	return r.record(fmt.Sprintf("zoom_reset(%v)", atCursor))
}
func (r *recordingActions) Pan(dirX, dirY float64) error {
	return r.record(fmt.Sprintf("pan(%v,%v)", dirX, dirY))
}
func (r *recordingActions) BeginDrag() error   { return r.record("begin_drag") }
func (r *recordingActions) DragTo() error      { return r.record("drag") }
func (r *recordingActions) EndDrag()           { _ = r.record("end_drag") }
func (r *recordingActions) TogglePause() error { return r.record("pause") }
func (r *recordingActions) Next() error        { return r.record("next") }
func (r *recordingActions) Previous() error    { return r.record("previous") }
func (r *recordingActions) Resized() error     { return r.record("resized") }

func key(k backend.Key) backend.Event {
	return backend.Event{Type: backend.EventKeyDown, Key: k}
}

func down(b backend.Button) backend.Event {
	return backend.Event{Type: backend.EventButtonDown, Button: b}
}

func up(b backend.Button) backend.Event {
	return backend.Event{Type: backend.EventButtonUp, Button: b}
}

var motion = backend.Event{Type: backend.EventMotion, X: 10, Y: 10}

func wheel(dy float64) backend.Event {
	return backend.Event{Type: backend.EventWheel, WheelY: dy}
}

func TestDispatchSequences(t *testing.T) {
	tests := []struct {
		name     string
		events   []backend.Event
		expected []string
	}{
		{
			name:     "Click quits",
			events:   []backend.Event{down(backend.ButtonLeft), up(backend.ButtonLeft)},
			expected: []string{"begin_drag", "end_drag", "dismiss"},
		},
		{
			name:     "Drag does not quit",
			events:   []backend.Event{down(backend.ButtonLeft), motion, motion, up(backend.ButtonLeft)},
			expected: []string{"begin_drag", "drag", "drag", "end_drag"},
		},
		{
			name:     "Motion without button is ignored",
			events:   []backend.Event{motion},
			expected: nil,
		},
		{
			name:     "Zoom key while held anchors at cursor and cancels the click",
			events:   []backend.Event{down(backend.ButtonLeft), key(backend.KeyEqual), up(backend.ButtonLeft)},
			expected: []string{"begin_drag", "zoom(1,true)", "end_drag"},
		},
		{
			name:     "Wheel while held cancels the click",
			events:   []backend.Event{down(backend.ButtonLeft), wheel(-1), up(backend.ButtonLeft)},
			expected: []string{"begin_drag", "zoom(-1,true)", "end_drag"},
		},
		{
			name:     "Non-zoom key while held keeps the click",
			events:   []backend.Event{down(backend.ButtonLeft), key(backend.KeyR), up(backend.ButtonLeft)},
			expected: []string{"begin_drag", "rotate_right", "end_drag", "dismiss"},
		},
		{
			name:     "Release without press is ignored",
			events:   []backend.Event{up(backend.ButtonLeft)},
			expected: nil,
		},
		{
			name:     "Middle and right buttons",
			events:   []backend.Event{down(backend.ButtonMiddle), down(backend.ButtonRight), up(backend.ButtonRight)},
			expected: []string{"fullscreen", "controls"},
		},
		{
			name:     "Zero wheel is ignored",
			events:   []backend.Event{wheel(0)},
			expected: nil,
		},
		{
			name:     "Window events",
			events:   []backend.Event{{Type: backend.EventResize, X: 100, Y: 80}, {Type: backend.EventQuit}},
			expected: []string{"resized", "quit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &recordingActions{}
			d := NewDispatcher(a)
			for _, ev := range tt.events {
				if err := d.Dispatch(ev); err != nil {
					t.Fatalf("Dispatch(%v) failed: %v", ev.Type, err)
				}
			}
			if !reflect.DeepEqual(a.calls, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, a.calls)
			}
		})
	}
}

func TestKeyBindings(t *testing.T) {
	tests := []struct {
		key      backend.Key
		expected string
	}{
		{backend.KeyQ, "quit"},
		{backend.KeyEscape, "quit"},
		{backend.KeyReturn, "dismiss"},
		{backend.KeyKPEnter, "dismiss"},
		{backend.KeyF, "fullscreen"},
		{backend.KeyF11, "fullscreen"},
		{backend.KeyL, "rotate_left"},
		{backend.KeyR, "rotate_right"},
		{backend.KeyM, "mirror"},
		{backend.Key0, "zoom_reset(false)"},
		{backend.KeyKP0, "zoom_reset(false)"},
		{backend.KeyMinus, "zoom(-1,false)"},
		{backend.KeyKPMinus, "zoom(-1,false)"},
		{backend.KeyEqual, "zoom(1,false)"},
		{backend.KeyKPPlus, "zoom(1,false)"},
		{backend.KeyRight, "pan(-1,0)"},
		{backend.KeyKP6, "pan(-1,0)"},
		{backend.KeyLeft, "pan(1,0)"},
		{backend.KeyKP4, "pan(1,0)"},
		{backend.KeyDown, "pan(0,-1)"},
		{backend.KeyKP2, "pan(0,-1)"},
		{backend.KeyUp, "pan(0,1)"},
		{backend.KeyKP8, "pan(0,1)"},
		{backend.KeySpace, "pause"},
		{backend.KeyPageUp, "previous"},
		{backend.KeyKP9, "previous"},
		{backend.KeyPageDown, "next"},
		{backend.KeyKP3, "next"},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			a := &recordingActions{}
			if err := NewDispatcher(a).Dispatch(key(tt.key)); err != nil {
				t.Fatalf("Dispatch failed: %v", err)
			}
			if len(a.calls) != 1 || a.calls[0] != tt.expected {
				t.Errorf("Expected [%s], got %v", tt.expected, a.calls)
			}
		})
	}
}

func TestUnboundKeyIgnored(t *testing.T) {
	a := &recordingActions{}
	if err := NewDispatcher(a).Dispatch(key(backend.KeyUnknown)); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(a.calls) != 0 {
		t.Errorf("Expected no calls, got %v", a.calls)
	}
}

func TestDispatchPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	a := &recordingActions{err: boom}
	if err := NewDispatcher(a).Dispatch(key(backend.KeyPageDown)); !errors.Is(err, boom) {
		t.Errorf("Expected boom, got %v", err)
	}
}

func TestKeyMapHasNoConflicts(t *testing.T) {
	seen := make(map[backend.Key]string)
	for _, def := range actionDefinitions {
		for _, k := range def.Keys {
			if other, ok := seen[k]; ok {
				t.Errorf("key %v bound to both %s and %s", k, other, def.Name)
			}
			seen[k] = def.Name
		}
	}
}

func TestEveryActionExecutes(t *testing.T) {
	for _, def := range actionDefinitions {
		if def.Name == "drag" {
			continue
		}
		ok, err := ExecuteAction(def.Name, &recordingActions{}, false)
		if !ok || err != nil {
			t.Errorf("ExecuteAction(%s) = (%v, %v)", def.Name, ok, err)
		}
	}
	if ok, _ := ExecuteAction("no_such_action", &recordingActions{}, false); ok {
		t.Error("Expected unknown action to report false")
	}
}

func TestControlsSummary(t *testing.T) {
	summary := ControlsSummary()
	for _, want := range []string{"Q, Escape, Window close: Quit", "Return, Keypad Enter, Left click: Close the viewer", "PageDown, Keypad 3: Next file", "Right click: Show this summary"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Expected summary to contain %q:\n%s", want, summary)
		}
	}
}
