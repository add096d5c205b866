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
	gridTopBandHeight = 120
	gridCTABandHeight = 140
	gridLabelHeight   = 70

	noImagesNotice = "NO LIVE IMAGES FOUND"
	noImagesHint   = "POSTING VIBES ONLY TONIGHT"
)

// GridRenderer lays fetched images out as a tile collage with a mood
// band on top, per-tile keyword labels and an optional promo band.
type GridRenderer struct {
	layout *Layout
}

// NewGridRenderer builds the grid style over a shared layout engine.
func NewGridRenderer(layout *Layout) *GridRenderer {
	return &GridRenderer{layout: layout}
}

func (r *GridRenderer) Render(s Scene) (image.Image, error) {
	canvas := NewCanvas(s.Width, s.Height)
	boxes := TileBoxes(s.Tiles, s.Width, s.Height)

	for i, box := range boxes {
		var tile *image.NRGBA
		if i < len(s.Images) && s.Images[i] != nil {
			tile = CoverResize(s.Images[i], box.W(), box.H())
		} else {
			tile = Placeholder(box.W(), box.H())
		}
		canvas = imaging.Paste(canvas, tile, image.Pt(box.X0, box.Y0))
	}

	dc := gg.NewContextForImage(canvas)

	if len(s.Images) == 0 {
		r.drawNotice(dc, s)
	}
	r.drawMoodBand(dc, s)
	r.drawTileLabels(dc, s, boxes)
	if s.ShowCTA {
		r.drawCTABand(dc, s)
	}

	return dc.Image(), nil
}

func (r *GridRenderer) drawMoodBand(dc *gg.Context, s Scene) {
	band := Box{0, 0, s.Width, gridTopBandHeight}
	fillBox(dc, band, color.Black, 0.55)

	parts := append([]string{s.MoodWord}, s.Keywords...)
	text := strings.ToUpper(strings.Join(parts, " • "))
	fit := r.layout.Fit(text, band.W()-40, band.H()-20, 72)
	yTop := band.Y0 + (band.H()-fit.BlockHeight())/2
	drawFittedLines(dc, fit, band, yTop, color.White, color.Black)
}

func (r *GridRenderer) drawNotice(dc *gg.Context, s Scene) {
	notice := Box{0, 200, s.Width, 360}
	fit := r.layout.Fit(noImagesNotice, notice.W()-40, notice.H(), 64)
	drawFittedLines(dc, fit, notice, notice.Y0+(notice.H()-fit.BlockHeight())/2, color.White, color.Black)

	hint := Box{0, 370, s.Width, 450}
	fitHint := r.layout.Fit(noImagesHint, hint.W()-40, hint.H(), 40)
	drawFittedLines(dc, fitHint, hint, hint.Y0+(hint.H()-fitHint.BlockHeight())/2, color.White, color.Black)
}

// drawTileLabels tags each tile with one keyword, in rank order. Tiles
// beyond the keyword list stay unlabeled.
func (r *GridRenderer) drawTileLabels(dc *gg.Context, s Scene, boxes []Box) {
	for i, box := range boxes {
		if i >= len(s.Keywords) {
			break
		}
		label := strings.ToUpper(s.Keywords[i])
		strip := Box{box.X0, box.Y1 - gridLabelHeight, box.X1, box.Y1}
		fillBox(dc, strip, color.Black, 0.45)
		fit := r.layout.Fit(label, strip.W()-20, strip.H()-10, 54)
		drawFittedLines(dc, fit, strip, strip.Y0+(strip.H()-fit.BlockHeight())/2, color.White, color.Black)
	}
}

func (r *GridRenderer) drawCTABand(dc *gg.Context, s Scene) {
	band := Box{0, s.Height - gridCTABandHeight, s.Width, s.Height}
	fillBox(dc, band, ctaBandColor, 1.0)

	text := strings.ToUpper(fmt.Sprintf("%s — %s", s.Offer, s.Business))
	fit := r.layout.Fit(text, band.W()-60, band.H()-30, 60)
	yTop := band.Y0 + (band.H()-fit.BlockHeight())/2
	drawFittedLines(dc, fit, band, yTop, ctaTextColor, ctaBandColor)
}
