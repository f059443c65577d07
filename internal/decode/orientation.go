package decode

import (
	"bytes"

	"github.com/rwcarlsen/goexif/exif"

	"viewer/internal/debug"
)

// readOrientation returns the EXIF orientation code, or 1 when the image
// carries none.
func readOrientation(data []byte, format string) int {
	if format != "jpeg" && format != "tiff" {
		return 1
	}
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil || v < 1 || v > 8 {
		debug.Logf("ignoring exif orientation %d: %v", v, err)
		return 1
	}
	return v
}
