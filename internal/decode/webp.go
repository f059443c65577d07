package decode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

const (
	webpAnimationFlag = 1 << 1
	webpAlphaFlag     = 1 << 4

	anmfHeaderLen   = 16
	anmfDisposeFlag = 1 << 0
	anmfNoBlendFlag = 1 << 1
	riffHeaderLen   = 12
	chunkHeaderLen  = 8
	vp8xPayloadLen  = 10
)

var errWebPContainer = errors.New("malformed webp container")

type riffChunk struct {
	fourCC  string
	payload []byte
}

// riffChunks splits a chunk sequence. Payloads are padded to even length.
func riffChunks(data []byte) ([]riffChunk, error) {
	var chunks []riffChunk
	for len(data) > 0 {
		if len(data) < chunkHeaderLen {
			return nil, errWebPContainer
		}
		n := int(binary.LittleEndian.Uint32(data[4:8]))
		if n > len(data)-chunkHeaderLen {
			return nil, errWebPContainer
		}
		chunks = append(chunks, riffChunk{
			fourCC:  string(data[:4]),
			payload: data[chunkHeaderLen : chunkHeaderLen+n],
		})
		next := chunkHeaderLen + n + n&1
		if next > len(data) {
			break
		}
		data = data[next:]
	}
	return chunks, nil
}

func webpChunks(data []byte) ([]riffChunk, error) {
	if len(data) < riffHeaderLen || string(data[:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		return nil, errWebPContainer
	}
	return riffChunks(data[riffHeaderLen:])
}

func uint24(b []byte) int {
	return int(b[0]) | int(b[1])<<8 | int(b[2])<<16
}

func putUint24(b []byte, v int) {
	b[0], b[1], b[2] = byte(v), byte(v>>8), byte(v>>16)
}

// isAnimatedWebP reports whether the extended header sets the animation
// flag.
func isAnimatedWebP(data []byte) bool {
	chunks, err := webpChunks(data)
	if err != nil || len(chunks) == 0 {
		return false
	}
	c := chunks[0]
	return c.fourCC == "VP8X" && len(c.payload) >= vp8xPayloadLen && c.payload[0]&webpAnimationFlag != 0
}

func appendChunk(dst []byte, fourCC string, payload []byte) []byte {
	dst = append(dst, fourCC...)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(payload)))
	dst = append(dst, payload...)
	if len(payload)&1 != 0 {
		dst = append(dst, 0)
	}
	return dst
}

// standaloneWebP wraps one animation frame's bitstream chunks in a still
// WebP file.
func standaloneWebP(frame []riffChunk, w, h int) ([]byte, error) {
	var alph, vp8, vp8l []byte
	for _, c := range frame {
		switch c.fourCC {
		case "ALPH":
			alph = c.payload
		case "VP8 ":
			vp8 = c.payload
		case "VP8L":
			vp8l = c.payload
		}
	}

	var body []byte
	switch {
	case vp8l != nil:
		body = appendChunk(body, "VP8L", vp8l)
	case vp8 != nil && alph != nil:
		header := make([]byte, vp8xPayloadLen)
		header[0] = webpAlphaFlag
		putUint24(header[4:7], w-1)
		putUint24(header[7:10], h-1)
		body = appendChunk(body, "VP8X", header)
		body = appendChunk(body, "ALPH", alph)
		body = appendChunk(body, "VP8 ", vp8)
	case vp8 != nil:
		body = appendChunk(body, "VP8 ", vp8)
	default:
		return nil, fmt.Errorf("%w: frame without bitstream", errWebPContainer)
	}

	out := make([]byte, 0, riffHeaderLen+len(body))
	out = append(out, "RIFF"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(4+len(body)))
	out = append(out, "WEBP"...)
	return append(out, body...), nil
}

// decodeAnimatedWebP decodes each ANMF frame and composes it onto the
// canvas, honoring the blend and dispose flags. The background color is
// ignored and the canvas starts transparent.
func decodeAnimatedWebP(data []byte) (*Image, error) {
	chunks, err := webpChunks(data)
	if err != nil {
		return nil, err
	}
	header := chunks[0].payload
	bounds := image.Rect(0, 0, 1+uint24(header[4:7]), 1+uint24(header[7:10]))
	if err := checkDimensions(bounds.Dx(), bounds.Dy()); err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(bounds)
	var frames []Frame
	var dispose image.Rectangle
	for _, c := range chunks[1:] {
		if c.fourCC != "ANMF" {
			continue
		}
		if len(c.payload) < anmfHeaderLen {
			return nil, fmt.Errorf("%w: short ANMF chunk", errWebPContainer)
		}
		p := c.payload
		x, y := 2*uint24(p[0:3]), 2*uint24(p[3:6])
		w, h := 1+uint24(p[6:9]), 1+uint24(p[9:12])
		duration := uint24(p[12:15])
		flags := p[15]

		region := image.Rect(x, y, x+w, y+h)
		if !region.In(bounds) {
			return nil, fmt.Errorf("webp frame %v outside %v canvas", region, bounds)
		}

		sub, err := riffChunks(p[anmfHeaderLen:])
		if err != nil {
			return nil, err
		}
		still, err := standaloneWebP(sub, w, h)
		if err != nil {
			return nil, err
		}
		src, err := webp.Decode(bytes.NewReader(still))
		if err != nil {
			return nil, fmt.Errorf("webp frame %d: %w", len(frames), err)
		}

		if !dispose.Empty() {
			draw.Draw(canvas, dispose, image.Transparent, image.Point{}, draw.Src)
			dispose = image.Rectangle{}
		}

		op := draw.Over
		if flags&anmfNoBlendFlag != 0 {
			op = draw.Src
		}
		draw.Draw(canvas, region, src, src.Bounds().Min, op)

		frames = append(frames, Frame{
			Pix:      append([]byte(nil), canvas.Pix...),
			Width:    bounds.Dx(),
			Height:   bounds.Dy(),
			DelayNum: uint32(duration),
			DelayDen: 1,
		})

		if flags&anmfDisposeFlag != 0 {
			dispose = region
		}
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: webp animation without frames", ErrUnusable)
	}

	return &Image{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Orientation: 1,
		Animated:    len(frames) > 1,
		Frames:      frames,
	}, nil
}
