package main

import (
	"bytes"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"viewer/internal/geom"
)

// Global font source for overlay text
var globalFontSource *text.GoTextFaceSource

// InitGraphics initializes the global font source for text rendering
func InitGraphics() error {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	globalFontSource = s
	return nil
}

// DrawText draws text with specified position and color
func DrawText(screen *ebiten.Image, textString string, font *text.GoTextFace, x, y float64, textColor color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, textString, font, op)
}

// DrawFilledRect draws filled rectangles with float64 coordinates
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, bgColor color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
}

// Frame widths around the image in windowed mode
const (
	frameTop    = 5
	frameRight  = 6
	frameBottom = 7
	frameLeft   = 6
)

// DrawFrame draws a frame of the given widths just outside r
func DrawFrame(screen *ebiten.Image, r geom.Rect, top, right, bottom, left float64, c color.RGBA) {
	DrawFilledRect(screen, r.X-left, r.Y-top, r.W+left+right, top, c)
	DrawFilledRect(screen, r.X-left, r.Y+r.H, r.W+left+right, bottom, c)
	DrawFilledRect(screen, r.X-left, r.Y, left, r.H, c)
	DrawFilledRect(screen, r.X+r.W, r.Y, right, r.H, c)
}
