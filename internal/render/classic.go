package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

const (
	classicMargin       = 24
	classicTextBoxRatio = 0.28
	classicCTAHeight    = 84
	classicTopStartSize = 96
	classicBotStartSize = 92
)

// ClassicRenderer draws the impact-style top/bottom caption format over
// one or two contain-on-blur backgrounds.
type ClassicRenderer struct {
	layout *Layout
}

// NewClassicRenderer builds the classic style over a shared layout engine.
func NewClassicRenderer(layout *Layout) *ClassicRenderer {
	return &ClassicRenderer{layout: layout}
}

func (r *ClassicRenderer) Render(s Scene) (image.Image, error) {
	canvas := r.background(s)
	dc := gg.NewContextForImage(canvas)

	boxW := s.Width - 2*classicMargin
	boxH := int(float64(s.Height) * classicTextBoxRatio)

	topFit := r.layout.Fit(strings.ToUpper(s.TopText), boxW, boxH, classicTopStartSize)
	drawFittedLines(dc, topFit, Box{classicMargin, 0, s.Width - classicMargin, s.Height}, classicMargin, color.White, color.Black)

	ctaH := 0
	if s.ShowCTA {
		ctaH = classicCTAHeight
	}

	botFit := r.layout.Fit(strings.ToUpper(s.BottomText), boxW, boxH, classicBotStartSize)
	botTop := s.Height - ctaH - classicMargin - botFit.BlockHeight()
	if min := classicMargin + topFit.BlockHeight(); botTop < min {
		botTop = min
	}
	drawFittedLines(dc, botFit, Box{classicMargin, 0, s.Width - classicMargin, s.Height}, botTop, color.White, color.Black)

	if s.ShowCTA {
		r.drawCTABand(dc, s)
	}

	return dc.Image(), nil
}

// background composes the canvas underneath the captions. Two images
// split the canvas into side-by-side halves, one fills it, and none
// falls back to a flat dark field so the text still lands somewhere
// readable.
func (r *ClassicRenderer) background(s Scene) *image.NRGBA {
	switch {
	case len(s.Images) >= 2 && s.Images[0] != nil && s.Images[1] != nil:
		halfW := s.Width / 2
		canvas := NewCanvas(s.Width, s.Height)
		canvas = imaging.Paste(canvas, ContainOnBlur(s.Images[0], halfW, s.Height), image.Pt(0, 0))
		return imaging.Paste(canvas, ContainOnBlur(s.Images[1], s.Width-halfW, s.Height), image.Pt(halfW, 0))
	case len(s.Images) >= 1 && s.Images[0] != nil:
		return ContainOnBlur(s.Images[0], s.Width, s.Height)
	default:
		return Placeholder(s.Width, s.Height)
	}
}

func (r *ClassicRenderer) drawCTABand(dc *gg.Context, s Scene) {
	band := Box{0, s.Height - classicCTAHeight, s.Width, s.Height}
	fillBox(dc, band, ctaBandColor, 1.0)

	text := strings.ToUpper(fmt.Sprintf("%s @ %s", s.Offer, s.Business))
	fit := r.layout.Fit(text, band.W()-60, band.H()-20, 48)
	yTop := band.Y0 + (band.H()-fit.BlockHeight())/2
	drawFittedLines(dc, fit, band, yTop, ctaTextColor, ctaBandColor)
}
