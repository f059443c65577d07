package main

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"viewer/internal/backend"
	"viewer/internal/debug"
	"viewer/internal/geom"
)

const (
	eventQueueSize    = 256
	fullscreenTimeout = time.Second
	overlayDuration   = 2 * time.Second
)

// texture is an uploaded frame. Release defers deallocation to the draw
// goroutine so a scene being drawn never loses its image.
type texture struct {
	img           *ebiten.Image
	width, height int
	owner         *ebitenBackend
}

func (t *texture) Width() int  { return t.width }
func (t *texture) Height() int { return t.height }

func (t *texture) Release() {
	if t.img == nil {
		return
	}
	t.owner.release(t.img)
	t.img = nil
}

// ebitenBackend is the ebiten implementation of backend.Backend. It is also
// the ebiten.Game: Update polls input into a queue that the session
// goroutine reads with WaitEvent, and Draw renders the last presented
// scene.
type ebitenBackend struct {
	keys     *KeybindingManager
	mouse    *MousebindingManager
	renderer *Renderer
	monitor  geom.Size

	events        chan backend.Event
	sizeChanged   chan struct{}
	motionEnabled atomic.Bool

	startOnce sync.Once
	start     func() error
	done      chan struct{}
	err       error

	mu           sync.Mutex
	size         geom.Size
	cursor       geom.Point
	windowedSize geom.Size
	fullscreen   bool
	scene        backend.Scene
	dirty        bool
	overlay      string
	overlayUntil time.Time
	pending      []*ebiten.Image
}

func newEbitenBackend(mouse MouseSettings, monitor geom.Size, start func(b *ebitenBackend) error) *ebitenBackend {
	b := &ebitenBackend{
		keys:        NewKeybindingManager(),
		mouse:       NewMousebindingManager(mouse),
		renderer:    NewRenderer(),
		monitor:     monitor,
		events:      make(chan backend.Event, eventQueueSize),
		sizeChanged: make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
	b.start = func() error { return start(b) }
	b.motionEnabled.Store(true)
	return b
}

// push queues an event without blocking the ebiten goroutine.
func (b *ebitenBackend) push(ev backend.Event) {
	select {
	case b.events <- ev:
	default:
		debug.Logf("event queue full, dropping %v", ev.Type)
	}
}

// Err returns the session's result once ebiten has terminated.
func (b *ebitenBackend) Err() error {
	return b.err
}

func (b *ebitenBackend) Update() error {
	b.startOnce.Do(func() {
		go func() {
			b.err = b.start()
			close(b.done)
		}()
	})

	select {
	case <-b.done:
		return ebiten.Termination
	default:
	}

	if ebiten.IsWindowBeingClosed() {
		b.push(backend.Event{Type: backend.EventQuit})
	}

	x, y := ebiten.CursorPosition()
	b.mu.Lock()
	b.cursor = geom.Point{X: float64(x), Y: float64(y)}
	if b.overlay != "" && time.Now().After(b.overlayUntil) {
		b.overlay = ""
		b.dirty = true
	}
	b.mu.Unlock()

	for _, ev := range b.keys.JustPressed() {
		b.push(ev)
	}
	for _, ev := range b.mouse.Poll(b.motionEnabled.Load()) {
		b.push(ev)
	}
	return nil
}

func (b *ebitenBackend) Draw(screen *ebiten.Image) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dirty {
		b.renderer.Draw(screen, b.scene, b.overlay)
		b.dirty = false
	}

	for _, img := range b.pending {
		img.Deallocate()
	}
	b.pending = b.pending[:0]
}

func (b *ebitenBackend) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := geom.Size{W: float64(outsideWidth), H: float64(outsideHeight)}

	b.mu.Lock()
	changed := size != b.size
	first := b.size == (geom.Size{})
	b.size = size
	if changed {
		b.dirty = true
		if !b.fullscreen {
			b.windowedSize = size
		}
	}
	b.mu.Unlock()

	if changed && !first {
		b.push(backend.Event{Type: backend.EventResize, X: size.W, Y: size.H})
		select {
		case b.sizeChanged <- struct{}{}:
		default:
		}
	}
	return outsideWidth, outsideHeight
}

func (b *ebitenBackend) Size() geom.Size {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.size == (geom.Size{}) {
		return b.monitor
	}
	return b.size
}

func (b *ebitenBackend) Cursor() geom.Point {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor
}

// SetFullscreen switches fullscreen and waits, bounded, for the new window
// size so the next layout uses it. A timeout is logged, not returned.
func (b *ebitenBackend) SetFullscreen(on bool) error {
	b.mu.Lock()
	if b.fullscreen == on {
		b.mu.Unlock()
		return nil
	}
	b.fullscreen = on
	b.dirty = true
	want := b.windowedSize
	if on {
		want = b.monitor
	}
	current := b.size
	b.mu.Unlock()

	select {
	case <-b.sizeChanged:
	default:
	}

	ebiten.SetFullscreen(on)
	if want == current || want == (geom.Size{}) {
		return nil
	}

	select {
	case <-b.sizeChanged:
	case <-time.After(fullscreenTimeout):
		log.Printf("Warning: Window did not resize within %v after fullscreen %v", fullscreenTimeout, on)
	}
	return nil
}

func (b *ebitenBackend) SetMotionEnabled(enabled bool) {
	b.motionEnabled.Store(enabled)
}

func (b *ebitenBackend) SetTitle(title string) {
	ebiten.SetWindowTitle(title)
}

func (b *ebitenBackend) NewTexture(width, height int, pix []byte) (backend.Texture, error) {
	n := width * height * 4
	if width <= 0 || height <= 0 || len(pix) < n {
		return nil, fmt.Errorf("invalid %dx%d raster with %d bytes", width, height, len(pix))
	}
	img := ebiten.NewImage(width, height)
	img.WritePixels(pix[:n])
	return &texture{img: img, width: width, height: height, owner: b}, nil
}

func (b *ebitenBackend) release(img *ebiten.Image) {
	b.mu.Lock()
	b.pending = append(b.pending, img)
	b.mu.Unlock()
}

func (b *ebitenBackend) Present(scene backend.Scene) error {
	if _, ok := scene.Texture.(*texture); !ok {
		return errors.New("scene texture was not created by this backend")
	}
	b.mu.Lock()
	b.scene = scene
	b.dirty = true
	b.mu.Unlock()
	return nil
}

func (b *ebitenBackend) ShowOverlay(text string) {
	b.mu.Lock()
	b.overlay = text
	b.overlayUntil = time.Now().Add(overlayDuration)
	b.dirty = true
	b.mu.Unlock()
}

func (b *ebitenBackend) WaitEvent(timeout time.Duration) (backend.Event, bool) {
	if timeout < 0 {
		return <-b.events, true
	}
	if timeout == 0 {
		select {
		case ev := <-b.events:
			return ev, true
		default:
			return backend.Event{}, false
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev := <-b.events:
		return ev, true
	case <-timer.C:
		return backend.Event{}, false
	}
}

// ShowMessage shows a modal message box. Input that queued up while it was
// open is discarded, except a window close.
func (b *ebitenBackend) ShowMessage(title, text string) {
	if err := zenity.Info(text, zenity.Title(title)); err != nil && !errors.Is(err, zenity.ErrCanceled) {
		log.Printf("Warning: Failed to show message: %v", err)
	}
	b.discardEvents()
}

func (b *ebitenBackend) discardEvents() {
	quit := false
	for {
		ev, ok := b.WaitEvent(0)
		if !ok {
			break
		}
		if ev.Type == backend.EventQuit {
			quit = true
		}
	}
	if quit {
		b.push(backend.Event{Type: backend.EventQuit})
	}
}
