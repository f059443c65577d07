package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"viewer/internal/backend"
)

// Common colors used in rendering
var (
	colorWhite = color.RGBA{255, 255, 255, 255}
	colorBlack = color.RGBA{0, 0, 0, 255}

	// Frame shadow, premultiplied
	colorFrame = color.RGBA{0, 0, 0, 38}

	// Background color for the overlay box
	bgColorDark = color.RGBA{0, 0, 0, 200}
)

const overlayFontSize = 24.0

// Renderer draws a presented scene and the overlay
type Renderer struct {
	fontSource *text.GoTextFaceSource
}

// NewRenderer creates a new Renderer. InitGraphics must have been called.
func NewRenderer() *Renderer {
	return &Renderer{fontSource: globalFontSource}
}

// Draw renders the entire screen
func (r *Renderer) Draw(screen *ebiten.Image, scene backend.Scene, overlay string) {
	// Clear the screen since SetScreenClearedEveryFrame(false) is enabled
	screen.Clear()

	pl := scene.Placement
	if pl.Fullscreen {
		screen.Fill(colorBlack)
	}

	tex, ok := scene.Texture.(*texture)
	if !ok || tex == nil {
		return
	}

	if scene.Shadow {
		DrawFrame(screen, pl.Bounds, frameTop, frameRight, frameBottom, frameLeft, colorFrame)
		DrawFilledRect(screen, pl.Bounds.X, pl.Bounds.Y, pl.Bounds.W, pl.Bounds.H, colorWhite)
	}

	r.drawTexture(screen, tex, scene)

	if overlay != "" {
		r.drawOverlayMessage(screen, overlay)
	}
}

// drawTexture scales the texture to the destination rectangle, applies the
// flips, then rotates about the rectangle's center.
func (r *Renderer) drawTexture(screen *ebiten.Image, tex *texture, scene backend.Scene) {
	pl := scene.Placement
	w, h := float64(tex.width), float64(tex.height)
	if w == 0 || h == 0 || pl.Dst.W <= 0 || pl.Dst.H <= 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	if pl.FlipH {
		op.GeoM.Scale(-1, 1)
	}
	if pl.FlipV {
		op.GeoM.Scale(1, -1)
	}
	op.GeoM.Scale(pl.Dst.W/w, pl.Dst.H/h)
	op.GeoM.Rotate(float64(pl.Rotation) * math.Pi / 2)
	c := pl.Dst.Center()
	op.GeoM.Translate(c.X, c.Y)
	op.Filter = ebiten.FilterLinear

	screen.DrawImage(tex.img, op)
}

func (r *Renderer) drawOverlayMessage(screen *ebiten.Image, message string) {
	if r.fontSource == nil {
		return
	}
	messageFont := &text.GoTextFace{
		Source: r.fontSource,
		Size:   overlayFontSize,
	}

	textWidth, textHeight := text.Measure(message, messageFont, 0)

	// Center of screen
	padding := 20.0
	boxWidth := textWidth + padding*2
	boxHeight := textHeight + padding*2
	boxX := (float64(screen.Bounds().Dx()) - boxWidth) / 2
	boxY := (float64(screen.Bounds().Dy()) - boxHeight) / 2

	DrawFilledRect(screen, boxX, boxY, boxWidth, boxHeight, bgColorDark)
	DrawText(screen, message, messageFont, boxX+padding, boxY+padding, colorWhite)
}
