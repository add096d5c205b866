package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Canvas and tile palette.
var (
	canvasBase       = color.NRGBA{R: 10, G: 15, B: 30, A: 255}
	placeholderColor = color.NRGBA{R: 30, G: 35, B: 60, A: 255}
	ctaBandColor     = color.NRGBA{R: 255, G: 213, B: 79, A: 255}
	ctaTextColor     = color.NRGBA{R: 15, G: 20, B: 30, A: 255}
)

const (
	backgroundBlurSigma = 18
	backgroundDarken    = 0.18
	containInset        = 40
)

// Box is a pixel-space rectangle, half-open on the right and bottom.
type Box struct {
	X0, Y0, X1, Y1 int
}

func (b Box) W() int { return b.X1 - b.X0 }
func (b Box) H() int { return b.Y1 - b.Y0 }

// CoverResize scales and center-crops src to exactly w x h, preserving
// aspect ratio. An image that is already w x h is returned as a copy
// with identical pixels.
func CoverResize(src image.Image, w, h int) *image.NRGBA {
	bounds := src.Bounds()
	if bounds.Dx() == w && bounds.Dy() == h {
		return imaging.Clone(src)
	}
	return imaging.Fill(src, w, h, imaging.Center, imaging.Lanczos)
}

// ContainOnBlur renders src fully visible and centered over a blurred,
// darkened cover-resized copy of itself. Portrait screenshots keep
// their full content this way instead of being cropped.
func ContainOnBlur(src image.Image, w, h int) *image.NRGBA {
	bg := imaging.Blur(CoverResize(src, w, h), backgroundBlurSigma)
	shade := imaging.New(w, h, color.NRGBA{A: 255})
	bg = imaging.Overlay(bg, shade, image.Pt(0, 0), backgroundDarken)

	fitW, fitH := w-2*containInset, h-2*containInset
	if fitW < 1 {
		fitW = 1
	}
	if fitH < 1 {
		fitH = 1
	}
	fg := imaging.Fit(src, fitW, fitH, imaging.Lanczos)
	fgBounds := fg.Bounds()
	return imaging.Paste(bg, fg, image.Pt((w-fgBounds.Dx())/2, (h-fgBounds.Dy())/2))
}

// NewCanvas creates a w x h canvas filled with the base color.
func NewCanvas(w, h int) *image.NRGBA {
	return imaging.New(w, h, canvasBase)
}

// Placeholder creates a flat tile used when no live image is available.
func Placeholder(w, h int) *image.NRGBA {
	return imaging.New(w, h, placeholderColor)
}

// TileBoxes splits a w x h canvas into tile regions. Supported counts
// are 1 (full bleed), 2 (vertical split) and 4 (quadrants); any other
// count collapses to 4.
func TileBoxes(tiles, w, h int) []Box {
	switch tiles {
	case 1:
		return []Box{{0, 0, w, h}}
	case 2:
		return []Box{{0, 0, w / 2, h}, {w / 2, 0, w, h}}
	default:
		return []Box{
			{0, 0, w / 2, h / 2},
			{w / 2, 0, w, h / 2},
			{0, h / 2, w / 2, h},
			{w / 2, h / 2, w, h},
		}
	}
}

// drawFittedLines paints a fitted text block with an outline, starting
// at yTop and centering each line horizontally within the box.
func drawFittedLines(dc *gg.Context, fit FittedText, box Box, yTop int, fill, stroke color.Color) {
	dc.SetFontFace(fit.Face)
	sw := StrokeWidth(fit.Size)
	y := yTop
	for _, line := range fit.Lines {
		lw := textWidth(fit.Face, line)
		x := box.X0 + CenterX(box.W(), lw, 10)
		baseline := float64(y + fit.Size)
		drawStrokedString(dc, line, float64(x), baseline, sw, fill, stroke)
		y += fit.LineHeight()
	}
}

// drawStrokedString emulates outlined text by stamping the string in
// the stroke color at offsets around the target before the fill pass.
func drawStrokedString(dc *gg.Context, s string, x, y float64, strokeW int, fill, stroke color.Color) {
	dc.SetColor(stroke)
	for dx := -strokeW; dx <= strokeW; dx += strokeW {
		for dy := -strokeW; dy <= strokeW; dy += strokeW {
			if dx == 0 && dy == 0 {
				continue
			}
			dc.DrawString(s, x+float64(dx), y+float64(dy))
		}
	}
	dc.SetColor(fill)
	dc.DrawString(s, x, y)
}

// fillBox paints a translucent rectangle, used as a scrim behind text.
func fillBox(dc *gg.Context, box Box, c color.Color, alpha float64) {
	r, g, b, _ := c.RGBA()
	dc.SetRGBA(float64(r)/65535, float64(g)/65535, float64(b)/65535, alpha)
	dc.DrawRectangle(float64(box.X0), float64(box.Y0), float64(box.W()), float64(box.H()))
	dc.Fill()
}
