package session

import (
	"errors"
	"fmt"
	"math"
	"time"

	"viewer/internal/backend"
	"viewer/internal/debug"
	"viewer/internal/decode"
)

// ErrTexture marks a failed texture upload. Unlike decode failures it is
// always fatal.
var ErrTexture = errors.New("texture upload failed")

type contentFrame struct {
	texture backend.Texture
	delay   time.Duration
}

// Content is the image on screen: one texture per frame. It owns its
// textures and releases them all at once.
type Content struct {
	Width       int
	Height      int
	Orientation int
	frames      []contentFrame
}

// Len returns the number of frames.
func (c *Content) Len() int {
	return len(c.frames)
}

// Frame returns the texture of frame i.
func (c *Content) Frame(i int) backend.Texture {
	return c.frames[i].texture
}

// Delays returns the per-frame delays for the animation scheduler. A still
// image has a single zero delay.
func (c *Content) Delays() []time.Duration {
	delays := make([]time.Duration, len(c.frames))
	for i, f := range c.frames {
		delays[i] = f.delay
	}
	return delays
}

// Release frees every texture. The content must not be drawn afterwards.
func (c *Content) Release() {
	for _, f := range c.frames {
		f.texture.Release()
	}
	c.frames = nil
}

// frameDelay converts a rational millisecond delay. ok is false for a zero
// denominator or a delay that rounds to nothing.
func frameDelay(f decode.Frame) (time.Duration, bool) {
	if f.DelayDen == 0 {
		return 0, false
	}
	d := time.Duration(float64(f.DelayNum) / float64(f.DelayDen) * float64(time.Millisecond))
	if d <= 0 {
		return 0, false
	}
	return d, true
}

// validRaster rejects frames whose row stride or buffer size would overflow,
// and frames whose pixel buffer is shorter than their dimensions claim.
func validRaster(f decode.Frame) error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("empty %dx%d frame", f.Width, f.Height)
	}
	if int64(f.Width)*4 > math.MaxInt32 || int64(f.Width)*4*int64(f.Height) > math.MaxInt32 {
		return fmt.Errorf("oversized %dx%d frame", f.Width, f.Height)
	}
	if len(f.Pix) < f.Width*f.Height*4 {
		return fmt.Errorf("short pixel buffer for %dx%d frame: %d bytes", f.Width, f.Height, len(f.Pix))
	}
	return nil
}

// buildContent uploads the decoded frames. An animated sequence is
// truncated at the first frame without a usable delay or raster; if
// nothing is left the result is decode.ErrUnusable. Upload failures are
// wrapped in ErrTexture.
func buildContent(b backend.Backend, img *decode.Image) (*Content, error) {
	c := &Content{
		Width:       img.Width,
		Height:      img.Height,
		Orientation: img.Orientation,
	}

	for i, f := range img.Frames {
		var delay time.Duration
		if img.Animated {
			d, ok := frameDelay(f)
			if !ok {
				debug.Logf("truncating animation at frame %d: delay %d/%d", i, f.DelayNum, f.DelayDen)
				break
			}
			delay = d
		}
		if err := validRaster(f); err != nil {
			debug.Logf("truncating at frame %d: %v", i, err)
			break
		}

		tex, err := b.NewTexture(f.Width, f.Height, f.Pix)
		if err != nil {
			c.Release()
			return nil, fmt.Errorf("%w: frame %d: %w", ErrTexture, i, err)
		}
		c.frames = append(c.frames, contentFrame{texture: tex, delay: delay})

		if !img.Animated {
			break
		}
	}

	if len(c.frames) == 0 {
		return nil, fmt.Errorf("%w: no usable frames", decode.ErrUnusable)
	}
	return c, nil
}
