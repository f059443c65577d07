package decode

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"

	"golang.org/x/image/draw"
)

// minGIFDelay is the delay, in centiseconds, used for frames that ask for
// 0 or 1. Browsers do the same.
const minGIFDelay = 10

// decodeGIF composes every frame onto a full canvas, honoring disposal, so
// each returned frame has full dimensions and zero offset.
func decodeGIF(data []byte) (*Image, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("%w: gif without frames", ErrUnusable)
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		for _, frame := range g.Image {
			bounds = bounds.Union(frame.Bounds())
		}
		bounds = image.Rect(0, 0, bounds.Max.X, bounds.Max.Y)
	}
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: empty gif canvas", ErrUnusable)
	}

	canvas := image.NewRGBA(bounds)
	var previous []byte
	frames := make([]Frame, 0, len(g.Image))
	for i, frame := range g.Image {
		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			previous = append(previous[:0], canvas.Pix...)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

		delay := minGIFDelay
		if i < len(g.Delay) && g.Delay[i] > 1 {
			delay = g.Delay[i]
		}
		frames = append(frames, Frame{
			Pix:      append([]byte(nil), canvas.Pix...),
			Width:    bounds.Dx(),
			Height:   bounds.Dy(),
			DelayNum: uint32(delay * 10),
			DelayDen: 1,
		})

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			copy(canvas.Pix, previous)
		}
	}

	return &Image{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Orientation: 1,
		Animated:    len(frames) > 1,
		Frames:      frames,
	}, nil
}
