package decode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"

	"github.com/kettek/apng"
	"golang.org/x/image/draw"
)

const pngSignatureLen = 8

// isAPNG reports whether an acTL chunk precedes the first IDAT.
func isAPNG(data []byte) bool {
	off := pngSignatureLen
	for off+8 <= len(data) {
		n := int(binary.BigEndian.Uint32(data[off:]))
		switch string(data[off+4 : off+8]) {
		case "acTL":
			return true
		case "IDAT":
			return false
		}
		if n > len(data) {
			return false
		}
		off += 12 + n
	}
	return false
}

// apngDelay converts a frame delay in seconds, num/den, to the Frame
// representation in milliseconds. A zero denominator means 1/100 s.
func apngDelay(num, den uint16) (uint32, uint32) {
	if den == 0 {
		den = 100
	}
	return uint32(num) * 1000, uint32(den)
}

// decodeAPNG composes the animation frames onto a full canvas the same way
// decodeGIF does. A default image that is not part of the animation is
// skipped.
func decodeAPNG(data []byte, cfg image.Config) (*Image, error) {
	a, err := apng.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := image.Rect(0, 0, cfg.Width, cfg.Height)
	canvas := image.NewRGBA(bounds)
	var previous []byte
	frames := make([]Frame, 0, len(a.Frames))
	for _, f := range a.Frames {
		if f.IsDefault || f.Image == nil {
			continue
		}
		src := f.Image.Bounds()
		region := image.Rect(f.XOffset, f.YOffset, f.XOffset+src.Dx(), f.YOffset+src.Dy())
		if !region.In(bounds) {
			return nil, fmt.Errorf("apng frame %v outside %v canvas", region, bounds)
		}

		if f.DisposeOp == apng.DISPOSE_OP_PREVIOUS {
			previous = append(previous[:0], canvas.Pix...)
		}

		op := draw.Over
		if f.BlendOp == apng.BLEND_OP_SOURCE {
			op = draw.Src
		}
		draw.Draw(canvas, region, f.Image, src.Min, op)

		num, den := apngDelay(f.DelayNumerator, f.DelayDenominator)
		frames = append(frames, Frame{
			Pix:      append([]byte(nil), canvas.Pix...),
			Width:    bounds.Dx(),
			Height:   bounds.Dy(),
			DelayNum: num,
			DelayDen: den,
		})

		switch f.DisposeOp {
		case apng.DISPOSE_OP_BACKGROUND:
			draw.Draw(canvas, region, image.Transparent, image.Point{}, draw.Src)
		case apng.DISPOSE_OP_PREVIOUS:
			copy(canvas.Pix, previous)
		}
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: apng without frames", ErrUnusable)
	}

	return &Image{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Orientation: 1,
		Animated:    len(frames) > 1,
		Frames:      frames,
	}, nil
}
