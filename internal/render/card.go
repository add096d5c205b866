package render

import (
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"
)

// CardCopy is the static promo-card text, independent of live posts.
type CardCopy struct {
	Headline  string
	Punchline string
	CTA       string
	Footer    string
}

var (
	cardTop    = color.NRGBA{R: 24, G: 18, B: 52, A: 255}
	cardBottom = color.NRGBA{R: 64, G: 22, B: 76, A: 255}
)

// CardRenderer draws the standalone promo card: gradient background,
// headline and punchline, a rounded offer banner and a footer line.
type CardRenderer struct {
	layout *Layout
}

// NewCardRenderer builds the card renderer over a shared layout engine.
func NewCardRenderer(layout *Layout) *CardRenderer {
	return &CardRenderer{layout: layout}
}

func (r *CardRenderer) Render(text CardCopy, w, h int) (image.Image, error) {
	dc := gg.NewContext(w, h)

	grad := gg.NewLinearGradient(0, 0, 0, float64(h))
	grad.AddColorStop(0, cardTop)
	grad.AddColorStop(1, cardBottom)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Fill()

	margin := 48
	boxW := w - 2*margin

	head := r.layout.Fit(strings.ToUpper(text.Headline), boxW, h/4, 88)
	drawFittedLines(dc, head, Box{margin, 0, w - margin, h}, h/8, color.White, color.Black)

	punch := r.layout.Fit(strings.ToUpper(text.Punchline), boxW, h/4, 56)
	drawFittedLines(dc, punch, Box{margin, 0, w - margin, h}, h/8+head.BlockHeight()+40, color.White, color.Black)

	r.drawBanner(dc, text.CTA, w, h)

	foot := r.layout.Fit(text.Footer, boxW, 80, 36)
	drawFittedLines(dc, foot, Box{margin, 0, w - margin, h}, h-margin-foot.BlockHeight(), color.White, cardBottom)

	return dc.Image(), nil
}

func (r *CardRenderer) drawBanner(dc *gg.Context, cta string, w, h int) {
	bannerW := float64(w) * 0.8
	bannerH := 120.0
	x := (float64(w) - bannerW) / 2
	y := float64(h)*0.62 - bannerH/2

	dc.SetColor(ctaBandColor)
	dc.DrawRoundedRectangle(x, y, bannerW, bannerH, 28)
	dc.Fill()

	fit := r.layout.Fit(strings.ToUpper(cta), int(bannerW)-40, int(bannerH)-20, 52)
	box := Box{int(x) + 20, int(y), int(x + bannerW), int(y + bannerH)}
	yTop := box.Y0 + (box.H()-fit.BlockHeight())/2
	drawFittedLines(dc, fit, box, yTop, ctaTextColor, ctaBandColor)
}
