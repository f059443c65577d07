// Package geom holds the coordinate math shared by the view controller and
// the renderer. Everything here is pure.
package geom

import "math"

// Point is a window-space coordinate.
type Point struct {
	X, Y float64
}

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Rotated swaps width and height around the rectangle's center, which is how
// a quarter turn about the center changes its axis-aligned bounds.
func (r Rect) Rotated() Rect {
	return Rect{
		X: r.X + (r.W-r.H)/2,
		Y: r.Y + (r.H-r.W)/2,
		W: r.H,
		H: r.W,
	}
}

// Floor aligns the origin to whole pixels.
func (r Rect) Floor() Rect {
	return Rect{X: math.Floor(r.X), Y: math.Floor(r.Y), W: r.W, H: r.H}
}

// Contains reports whether p lies strictly inside r.
func (r Rect) Contains(p Point) bool {
	return p.X > r.X && p.X < r.X+r.W && p.Y > r.Y && p.Y < r.Y+r.H
}

// Swapped returns the size with axes exchanged when rotation is odd.
func (s Size) Swapped(rotation int) Size {
	if rotation%2 != 0 {
		return Size{W: s.H, H: s.W}
	}
	return s
}

// Zoom levels are clamped to this range, where the scale stays finite and
// non-zero.
const (
	MinZoomLevel = -40
	MaxZoomLevel = 40
)

// ClampZoomLevel limits level to MinZoomLevel..MaxZoomLevel.
func ClampZoomLevel(level int) int {
	return max(MinZoomLevel, min(level, MaxZoomLevel))
}

// ScaleForZoomLevel returns 2^(level/2). Each level multiplies the scale by
// sqrt(2); two levels double it exactly.
func ScaleForZoomLevel(level int) float64 {
	if level%2 == 0 {
		return math.Ldexp(1, level/2)
	}
	return math.Ldexp(math.Sqrt2, (level-1)/2)
}

// ZoomLevelForRatio returns the largest level whose scale does not exceed
// ratio.
func ZoomLevelForRatio(ratio float64) int {
	if ratio <= 0 || math.IsInf(ratio, 0) || math.IsNaN(ratio) {
		return 0
	}
	level := int(math.Floor(2 * math.Log2(ratio)))
	// Log2 can land a hair above an exact power and round the wrong way.
	for ScaleForZoomLevel(level) > ratio {
		level--
	}
	return level
}

// RectForPose returns the unrotated image rectangle at position for the
// given image size and zoom level.
func RectForPose(position Point, image Size, level int) Rect {
	scale := ScaleForZoomLevel(level)
	return Rect{X: position.X, Y: position.Y, W: image.W * scale, H: image.H * scale}
}

// FitToWindowZoomLevel returns the largest zoom level at which the whole
// image, with axes swapped for odd rotations, fits inside window.
func FitToWindowZoomLevel(window, image Size, rotation int) int {
	image = image.Swapped(rotation)
	if window.W <= 0 || window.H <= 0 || image.W <= 0 || image.H <= 0 {
		return 0
	}
	level := ZoomLevelForRatio(window.H / image.H)
	if image.W*ScaleForZoomLevel(level) > window.W {
		level = ZoomLevelForRatio(window.W / image.W)
	}
	return level
}

// FullscreenFitRect returns the destination rectangle, in unrotated image
// orientation, that fills window after being rotated about its center.
func FullscreenFitRect(window, image Size, rotation int) Rect {
	eff := window.Swapped(rotation)
	if image.W <= 0 || image.H <= 0 {
		return Rect{X: window.W / 2, Y: window.H / 2}
	}
	h := eff.H
	w := image.W * h / image.H
	if w > eff.W {
		w = eff.W
		h = image.H * w / image.W
	}
	return Rect{
		X: (window.W - w) / 2,
		Y: (window.H - h) / 2,
		W: w,
		H: h,
	}
}

// AnchoredPosition returns the new top-left position that keeps the image
// point under anchor fixed when the scale changes from oldScale to newScale.
func AnchoredPosition(anchor, oldPosition Point, oldScale, newScale float64) Point {
	imgX := (anchor.X - oldPosition.X) / oldScale
	imgY := (anchor.Y - oldPosition.Y) / oldScale
	return Point{
		X: anchor.X - imgX*newScale,
		Y: anchor.Y - imgY*newScale,
	}
}

// CenteredPosition returns the position that centers a rectangle of size
// within window.
func CenteredPosition(window, size Size) Point {
	return Point{X: (window.W - size.W) / 2, Y: (window.H - size.H) / 2}
}

// Orientation maps an EXIF orientation code to clockwise quarter turns and
// a horizontal mirror applied before rotation.
func Orientation(code int) (rotation int, mirrored bool) {
	switch code {
	case 2:
		return 0, true
	case 3:
		return 2, false
	case 4:
		return 2, true
	case 5:
		return 1, true
	case 6:
		return 1, false
	case 7:
		return 3, true
	case 8:
		return 3, false
	default:
		return 0, false
	}
}

// Flip returns the texture flips that render a horizontal mirror correctly
// once the rotation is applied. For odd rotations the mirror axis is
// vertical in texture space.
func Flip(rotation int, mirrored bool) (horizontal, vertical bool) {
	if !mirrored {
		return false, false
	}
	if rotation%2 != 0 {
		return false, true
	}
	return true, false
}
