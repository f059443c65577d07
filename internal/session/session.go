// Package session ties the view, the animation scheduler and the
// navigation sequencer to a backend and runs the event loop. A Session is
// owned by the goroutine that calls Run.
package session

import (
	"errors"
	"fmt"
	"math"
	"time"

	"viewer/internal/anim"
	"viewer/internal/backend"
	"viewer/internal/debug"
	"viewer/internal/decode"
	"viewer/internal/geom"
	"viewer/internal/imagepath"
	"viewer/internal/input"
	"viewer/internal/nav"
	"viewer/internal/view"
)

var (
	// ErrQuit is returned by actions that end the session normally.
	ErrQuit = errors.New("quit")
	// ErrInitialLoad is returned when the first image cannot be shown.
	ErrInitialLoad = errors.New("cannot load initial image")
)

const exitExplanation = `Normal behavior of this viewer is to exit upon a left mouse click (if the
mouse did not move between press and release) or a Return key press. This
makes it quick to switch between a file manager and the image.

This viewer was started without a file argument, so this message is shown
once instead. The next click or Return closes the viewer.

Associate the viewer with image files and open them from your file manager
to use it as intended.`

// Options configures a Session.
type Options struct {
	// PanDelta is the keyboard pan step in pixels.
	PanDelta float64
	// Shadow draws the frame shadow in windowed mode.
	Shadow bool
	// Overlay enables transient status text.
	Overlay bool
	// ExplainExit shows a one-time explanation instead of quitting on the
	// first click or Return.
	ExplainExit bool
	// StartFullscreen enters fullscreen before the first image is shown.
	StartFullscreen bool
	// AppName is used in the window title and message boxes.
	AppName string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		PanDelta: 40,
		Shadow:   true,
		Overlay:  true,
		AppName:  "Image Viewer",
	}
}

// Session is the running viewer.
type Session struct {
	backend backend.Backend
	decoder decode.Decoder
	opts    Options

	view  *view.Controller
	anim  *anim.Scheduler
	nav   *nav.Sequencer
	input *input.Dispatcher

	content   *Content
	explained bool
	now       func() time.Time
}

// New creates a session. Call Open before Run.
func New(b backend.Backend, dec decode.Decoder, seq *nav.Sequencer, opts Options) *Session {
	if opts.AppName == "" {
		opts.AppName = DefaultOptions().AppName
	}
	s := &Session{
		backend: b,
		decoder: dec,
		opts:    opts,
		nav:     seq,
		now:     time.Now,
	}
	s.view = view.NewController(b, s)
	s.anim = anim.NewScheduler(nil, s.now())
	s.input = input.NewDispatcher(s)
	return s
}

// View exposes the view controller.
func (s *Session) View() *view.Controller {
	return s.view
}

// Content returns the content on screen, or nil before Open.
func (s *Session) Content() *Content {
	return s.content
}

// Open shows the initial image. Any failure is fatal and wraps
// ErrInitialLoad.
func (s *Session) Open(p imagepath.ImagePath) error {
	if s.opts.StartFullscreen {
		if err := s.view.SetFullscreen(true); err != nil {
			return err
		}
	}
	c, err := s.prepare(p)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrInitialLoad, p, err)
	}
	if err := s.show(p, c); err != nil {
		return err
	}
	s.nav.SetCurrent(p)
	return nil
}

// Close releases the content.
func (s *Session) Close() {
	if s.content != nil {
		s.content.Release()
		s.content = nil
	}
}

func (s *Session) prepare(p imagepath.ImagePath) (*Content, error) {
	img, err := s.decoder.Decode(p)
	if err != nil {
		return nil, err
	}
	return buildContent(s.backend, img)
}

// show swaps in new content, lays it out and releases the old content
// once the new one has been presented.
func (s *Session) show(p imagepath.ImagePath, c *Content) error {
	old := s.content
	s.content = c
	s.anim.Reset(c.Delays(), s.now())
	s.view.SetImage(c.Width, c.Height, c.Orientation)
	s.backend.SetTitle(fmt.Sprintf("%s - %s", p.DisplayName(), s.opts.AppName))
	err := s.view.Reset()
	if old != nil {
		old.Release()
	}
	return err
}

// load is the navigation load callback. Decode failures skip the file;
// texture and presentation failures are fatal.
func (s *Session) load(p imagepath.ImagePath) (bool, error) {
	c, err := s.prepare(p)
	if err != nil {
		if errors.Is(err, ErrTexture) {
			return false, err
		}
		debug.Logf("cannot load %s: %v", p, err)
		return false, nil
	}
	if err := s.show(p, c); err != nil {
		return false, err
	}
	return true, nil
}

// Redraw presents the current frame at the current pose.
func (s *Session) Redraw() error {
	if s.content == nil {
		return nil
	}
	placement := s.view.Placement()
	return s.backend.Present(backend.Scene{
		Texture:   s.content.Frame(s.anim.Current()),
		Placement: placement,
		Shadow:    s.opts.Shadow && !placement.Fullscreen,
	})
}

func (s *Session) overlay(format string, args ...any) {
	if s.opts.Overlay {
		s.backend.ShowOverlay(fmt.Sprintf(format, args...))
	}
}

func (s *Session) advance() error {
	if late := s.anim.Advance(s.now()); late {
		debug.Logf("animation frame %d is late", s.anim.Current())
	}
	return s.Redraw()
}

// Run processes events until the user quits. It blocks on input alone
// unless an animation is playing, in which case it also wakes up when the
// next frame is due. A nil return means a normal quit.
func (s *Session) Run() error {
	for {
		timeout := time.Duration(-1)
		if d, ok := s.anim.Timeout(s.now()); ok {
			if d <= 0 {
				if err := s.advance(); err != nil {
					return err
				}
				d = 0
			}
			timeout = d
		}

		ev, ok := s.backend.WaitEvent(timeout)
		if !ok {
			if timeout > 0 {
				if err := s.advance(); err != nil {
					return err
				}
			}
			continue
		}

		if err := s.input.Dispatch(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

func (s *Session) Quit() error {
	return ErrQuit
}

func (s *Session) Dismiss() error {
	if s.opts.ExplainExit && !s.explained {
		s.explained = true
		s.backend.ShowMessage(s.opts.AppName, exitExplanation)
		return nil
	}
	return ErrQuit
}

func (s *Session) ShowControls() error {
	s.backend.ShowMessage(s.opts.AppName+" controls", input.ControlsSummary())
	return nil
}

func (s *Session) ToggleFullscreen() error {
	return s.view.ToggleFullscreen()
}

func (s *Session) RotateLeft() error {
	return s.view.RotateCounterClockwise()
}

func (s *Session) RotateRight() error {
	return s.view.RotateClockwise()
}

func (s *Session) Mirror() error {
	return s.view.ToggleMirror()
}

func (s *Session) Zoom(delta int, atCursor bool) error {
	return s.zoomTo(s.view.Pose().ZoomLevel+delta, atCursor)
}

func (s *Session) ZoomReset(atCursor bool) error {
	return s.zoomTo(0, atCursor)
}

func (s *Session) zoomTo(level int, atCursor bool) error {
	level = geom.ClampZoomLevel(level)
	var err error
	if atCursor {
		err = s.view.ZoomAtCursor(level)
	} else {
		err = s.view.ZoomAtCenter(level)
	}
	if err != nil {
		return err
	}
	s.overlay("%d%%", int(math.Round(s.view.Pose().Scale*100)))
	return nil
}

func (s *Session) Pan(dirX, dirY float64) error {
	return s.view.PanByVector(dirX*s.opts.PanDelta, dirY*s.opts.PanDelta)
}

func (s *Session) BeginDrag() error {
	s.view.BeginDrag()
	return nil
}

func (s *Session) DragTo() error {
	return s.view.PanByDragDelta()
}

func (s *Session) EndDrag() {
	s.view.EndDrag()
}

func (s *Session) TogglePause() error {
	if s.anim.Len() < 2 {
		return nil
	}
	if s.anim.TogglePause(s.now()) {
		s.overlay("Paused")
	} else {
		s.overlay("Playing")
	}
	return nil
}

func (s *Session) Next() error {
	return s.step(false)
}

func (s *Session) Previous() error {
	return s.step(true)
}

func (s *Session) step(reverse bool) error {
	return s.nav.Step(reverse, s.load)
}

func (s *Session) Resized() error {
	return s.Redraw()
}
