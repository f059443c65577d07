// Package decode turns image bytes into RGBA rasters: a single frame for
// still images, or a sequence of full-canvas frames with per-frame delays
// for animated GIF, APNG and WebP.
package decode

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"viewer/internal/debug"
	"viewer/internal/imagepath"
)

// ErrUnusable marks images that decoded but cannot be shown.
var ErrUnusable = errors.New("unusable image")

// Frame is one premultiplied RGBA raster, row-major, 4 bytes per pixel.
// The delay is DelayNum/DelayDen milliseconds; a zero denominator marks the
// end of the usable sequence.
type Frame struct {
	Pix      []byte
	Width    int
	Height   int
	XOffset  int
	YOffset  int
	DelayNum uint32
	DelayDen uint32
}

// Image is the decoder's result. Orientation is an EXIF orientation code,
// 1 when unknown.
type Image struct {
	Width       int
	Height      int
	Orientation int
	Animated    bool
	Frames      []Frame
}

// Decoder loads an image.
type Decoder interface {
	Decode(p imagepath.ImagePath) (*Image, error)
}

// FileDecoder decodes files and archive entries with the registered
// image formats. A plain file is read whole only after its header names a
// known format with usable dimensions.
type FileDecoder struct{}

func (FileDecoder) Decode(p imagepath.ImagePath) (*Image, error) {
	var data []byte
	var err error
	if p.InArchive() {
		data, err = imagepath.ReadAll(p)
	} else {
		data, err = readImageFile(p.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", p, err)
	}
	img, err := DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", p, err)
	}
	return img, nil
}

func readImageFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if _, _, err := decodeConfig(bufio.NewReader(f)); err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return io.ReadAll(f)
}

// decodeConfig reads the image header and rejects dimensions whose RGBA
// raster could not be addressed with 32-bit strides.
func decodeConfig(r io.Reader) (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return cfg, format, err
	}
	if err := checkDimensions(cfg.Width, cfg.Height); err != nil {
		return cfg, format, err
	}
	return cfg, format, nil
}

func checkDimensions(w, h int) error {
	if int64(w)*4 > math.MaxInt32 || int64(w)*4*int64(h) > math.MaxInt32 {
		return fmt.Errorf("%w: oversized %dx%d raster", ErrUnusable, w, h)
	}
	return nil
}

// DecodeBytes decodes an in-memory image.
func DecodeBytes(data []byte) (*Image, error) {
	cfg, format, err := decodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	switch {
	case format == "gif":
		return decodeGIF(data)
	case (format == "png" || format == "apng") && isAPNG(data):
		img, err := decodeAPNG(data, cfg)
		if err == nil {
			return img, nil
		}
		debug.Logf("showing default image of apng: %v", err)
	case format == "webp" && isAnimatedWebP(data):
		return decodeAnimatedWebP(data)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	rgba := toRGBA(src)
	b := rgba.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty %dx%d raster", ErrUnusable, b.Dx(), b.Dy())
	}
	return &Image{
		Width:       b.Dx(),
		Height:      b.Dy(),
		Orientation: readOrientation(data, format),
		Frames: []Frame{{
			Pix:    rgba.Pix,
			Width:  b.Dx(),
			Height: b.Dy(),
		}},
	}, nil
}

func toRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	if rgba, ok := src.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
