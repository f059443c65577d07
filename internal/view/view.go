// Package view owns the image pose inside the window and every operation
// that changes it.
package view

import (
	"fmt"

	"viewer/internal/geom"
)

// Window is the part of the windowing backend the controller needs.
type Window interface {
	Size() geom.Size
	Cursor() geom.Point
	SetFullscreen(on bool) error
	SetMotionEnabled(enabled bool)
}

// Redrawer presents the current pose. It is called exactly once per
// pose-mutating operation.
type Redrawer interface {
	Redraw() error
}

// State is the externally visible controller state.
type State int

const (
	StateNormal State = iota
	StateDragging
	StateFullscreen
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "Normal"
	case StateDragging:
		return "Dragging"
	case StateFullscreen:
		return "Fullscreen"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Pose is the current visual transform of the image within the window.
// Scale and Size are derived from ZoomLevel and are only written by
// setZoomLevel.
type Pose struct {
	ZoomLevel  int
	Scale      float64
	Position   geom.Point
	Size       geom.Size
	Rotation   int
	Mirrored   bool
	Fullscreen bool
}

// Rect returns the unrotated image rectangle of the pose.
func (p Pose) Rect() geom.Rect {
	return geom.Rect{X: p.Position.X, Y: p.Position.Y, W: p.Size.W, H: p.Size.H}
}

// DragAnchor is the pose origin and cursor captured when a drag or a
// mid-drag pose change begins.
type DragAnchor struct {
	Position geom.Point
	Cursor   geom.Point
}

// Placement is what the renderer needs to draw one frame.
type Placement struct {
	// Dst is the destination rectangle in texture orientation; the
	// renderer rotates it about its own center.
	Dst geom.Rect
	// Bounds is the on-screen rectangle after rotation, pixel aligned.
	Bounds     geom.Rect
	Rotation   int
	FlipH      bool
	FlipV      bool
	Fullscreen bool
}

// Controller is the view state machine.
type Controller struct {
	window   Window
	redrawer Redrawer

	image        geom.Size
	initRotation int
	initMirrored bool

	pose     Pose
	anchor   DragAnchor
	dragging bool
}

// NewController creates a controller with an empty 1x1 image at level 0.
func NewController(window Window, redrawer Redrawer) *Controller {
	c := &Controller{
		window:   window,
		redrawer: redrawer,
		image:    geom.Size{W: 1, H: 1},
	}
	c.setZoomLevel(0)
	return c
}

// Pose returns a copy of the current pose.
func (c *Controller) Pose() Pose {
	return c.pose
}

// Anchor returns the current drag anchor.
func (c *Controller) Anchor() DragAnchor {
	return c.anchor
}

// ImageSize returns the size of the loaded image.
func (c *Controller) ImageSize() geom.Size {
	return c.image
}

// State reports Fullscreen over Dragging over Normal.
func (c *Controller) State() State {
	switch {
	case c.pose.Fullscreen:
		return StateFullscreen
	case c.dragging:
		return StateDragging
	default:
		return StateNormal
	}
}

// SetImage records the dimensions and intrinsic orientation of a newly
// loaded image. Call Reset afterwards to lay it out.
func (c *Controller) SetImage(width, height int, orientation int) {
	c.image = geom.Size{W: float64(width), H: float64(height)}
	c.initRotation, c.initMirrored = geom.Orientation(orientation)
}

func (c *Controller) setZoomLevel(level int) {
	c.pose.ZoomLevel = level
	c.pose.Scale = geom.ScaleForZoomLevel(level)
	c.pose.Size = geom.Size{W: c.image.W * c.pose.Scale, H: c.image.H * c.pose.Scale}
}

func (c *Controller) saveAnchor() {
	c.anchor = DragAnchor{Position: c.pose.Position, Cursor: c.window.Cursor()}
}

// Reset applies the image's intrinsic orientation, picks the largest zoom
// level that fits the window and centers the image.
func (c *Controller) Reset() error {
	c.pose.Rotation = c.initRotation
	c.pose.Mirrored = c.initMirrored
	win := c.window.Size()
	c.setZoomLevel(geom.FitToWindowZoomLevel(win, c.image, c.pose.Rotation))
	c.pose.Position = geom.CenteredPosition(win, c.pose.Size)
	c.saveAnchor()
	return c.redrawer.Redraw()
}

// ZoomAtCursor changes the zoom level keeping the image point under the
// cursor in place.
func (c *Controller) ZoomAtCursor(level int) error {
	return c.zoomAt(c.window.Cursor(), level)
}

// ZoomAtCenter changes the zoom level keeping the image point at the
// window center in place.
func (c *Controller) ZoomAtCenter(level int) error {
	win := c.window.Size()
	return c.zoomAt(geom.Point{X: win.W / 2, Y: win.H / 2}, level)
}

func (c *Controller) zoomAt(anchor geom.Point, level int) error {
	if err := c.leaveFullscreen(); err != nil {
		return err
	}
	oldScale := c.pose.Scale
	c.setZoomLevel(level)
	c.pose.Position = geom.AnchoredPosition(anchor, c.pose.Position, oldScale, c.pose.Scale)
	c.saveAnchor()
	return c.redrawer.Redraw()
}

// BeginDrag captures the drag anchor at the current cursor.
func (c *Controller) BeginDrag() {
	c.dragging = true
	c.saveAnchor()
}

// EndDrag leaves the Dragging state.
func (c *Controller) EndDrag() {
	c.dragging = false
}

// PanByDragDelta moves the image to the anchor position offset by how far
// the cursor has moved since the anchor was taken. Motion events are
// suppressed until the redraw returns.
func (c *Controller) PanByDragDelta() error {
	c.window.SetMotionEnabled(false)
	defer c.window.SetMotionEnabled(true)

	if err := c.leaveFullscreen(); err != nil {
		return err
	}
	cur := c.window.Cursor()
	c.pose.Position = geom.Point{
		X: c.anchor.Position.X + cur.X - c.anchor.Cursor.X,
		Y: c.anchor.Position.Y + cur.Y - c.anchor.Cursor.Y,
	}
	return c.redrawer.Redraw()
}

// PanByVector shifts the image by (dx, dy).
func (c *Controller) PanByVector(dx, dy float64) error {
	if err := c.leaveFullscreen(); err != nil {
		return err
	}
	c.pose.Position.X += dx
	c.pose.Position.Y += dy
	c.saveAnchor()
	return c.redrawer.Redraw()
}

// SetFullscreen switches the window's fullscreen state. Position, size and
// zoom level are left untouched so leaving fullscreen restores them.
func (c *Controller) SetFullscreen(on bool) error {
	if err := c.window.SetFullscreen(on); err != nil {
		return fmt.Errorf("set fullscreen %v: %w", on, err)
	}
	c.pose.Fullscreen = on
	return nil
}

// ToggleFullscreen flips fullscreen and redraws.
func (c *Controller) ToggleFullscreen() error {
	if err := c.SetFullscreen(!c.pose.Fullscreen); err != nil {
		return err
	}
	return c.redrawer.Redraw()
}

func (c *Controller) leaveFullscreen() error {
	if !c.pose.Fullscreen {
		return nil
	}
	return c.SetFullscreen(false)
}

// RotateClockwise turns the image a quarter turn clockwise as seen on
// screen. A mirrored image turns the other way in texture space.
func (c *Controller) RotateClockwise() error {
	if c.pose.Mirrored {
		c.pose.Rotation = (c.pose.Rotation + 3) % 4
	} else {
		c.pose.Rotation = (c.pose.Rotation + 1) % 4
	}
	return c.redrawer.Redraw()
}

// RotateCounterClockwise is the inverse of RotateClockwise.
func (c *Controller) RotateCounterClockwise() error {
	if c.pose.Mirrored {
		c.pose.Rotation = (c.pose.Rotation + 1) % 4
	} else {
		c.pose.Rotation = (c.pose.Rotation + 3) % 4
	}
	return c.redrawer.Redraw()
}

// ToggleMirror flips the horizontal mirror.
func (c *Controller) ToggleMirror() error {
	c.pose.Mirrored = !c.pose.Mirrored
	return c.redrawer.Redraw()
}

// Placement computes where the current frame is drawn.
func (c *Controller) Placement() Placement {
	var dst geom.Rect
	if c.pose.Fullscreen {
		dst = geom.FullscreenFitRect(c.window.Size(), c.image, c.pose.Rotation)
	} else {
		dst = c.pose.Rect()
	}

	odd := c.pose.Rotation%2 != 0
	bounds := dst
	if odd {
		bounds = bounds.Rotated()
	}
	bounds = bounds.Floor()
	dst = bounds
	if odd {
		dst = dst.Rotated()
	}

	flipH, flipV := geom.Flip(c.pose.Rotation, c.pose.Mirrored)
	return Placement{
		Dst:        dst,
		Bounds:     bounds,
		Rotation:   c.pose.Rotation,
		FlipH:      flipH,
		FlipV:      flipV,
		Fullscreen: c.pose.Fullscreen,
	}
}
