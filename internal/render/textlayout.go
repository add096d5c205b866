package render

import (
	"strings"

	"golang.org/x/image/font"
)

const (
	// Font sizes shrink in fixed steps until the wrapped block fits.
	fontStep        = 4
	minFontSize     = 18
	lineHeightRatio = 1.10

	// Unbreakable tokens wider than a line are hard-truncated so a
	// single monster word cannot blow past the box.
	maxTokenRunes = 40
)

// Layout wraps and fits caption text into pixel boxes. All measurement
// goes through font.Face metrics, so layout decisions are testable
// without touching a drawing surface.
type Layout struct {
	fonts *FontResolver
}

// NewLayout builds a layout engine over the given font resolver.
func NewLayout(fonts *FontResolver) *Layout {
	return &Layout{fonts: fonts}
}

// FittedText is the result of fitting a block of text into a box.
type FittedText struct {
	Face  font.Face
	Size  int
	Lines []string
}

// LineHeight reports the pixel advance between consecutive lines.
func (f FittedText) LineHeight() int {
	return lineHeight(f.Size)
}

// BlockHeight reports the total pixel height of the fitted block.
func (f FittedText) BlockHeight() int {
	return lineHeight(f.Size) * len(f.Lines)
}

func lineHeight(size int) int {
	return int(float64(size) * lineHeightRatio)
}

// textWidth measures the advance width of s in whole pixels.
func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// Wrap greedily packs words into lines no wider than maxWidth. A word
// that alone exceeds maxWidth is truncated to maxTokenRunes runes and
// emitted as its own line, so output width is bounded for any input.
func Wrap(face font.Face, text string, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var cur []string
	for _, w := range words {
		trial := strings.Join(append(append([]string(nil), cur...), w), " ")
		if textWidth(face, trial) <= maxWidth {
			cur = append(cur, w)
			continue
		}
		if len(cur) > 0 {
			lines = append(lines, strings.Join(cur, " "))
			cur = []string{w}
			if textWidth(face, w) <= maxWidth {
				continue
			}
			cur = nil
		}
		lines = append(lines, truncateRunes(w, maxTokenRunes))
	}
	if len(cur) > 0 {
		lines = append(lines, strings.Join(cur, " "))
	}
	return lines
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Fit finds the largest font size, stepping down from startSize, whose
// wrapped block fits within maxWidth x maxHeight. If even the minimum
// size overflows vertically, the minimum-size layout is returned anyway
// so the caller always has something to draw.
func (l *Layout) Fit(text string, maxWidth, maxHeight, startSize int) FittedText {
	if startSize < minFontSize {
		startSize = minFontSize
	}
	var last FittedText
	for size := startSize; size >= minFontSize; size -= fontStep {
		face := l.fonts.Face(size)
		lines := Wrap(face, text, maxWidth)
		last = FittedText{Face: face, Size: size, Lines: lines}
		if lineHeight(size)*len(lines) <= maxHeight {
			return last
		}
	}
	return last
}

// StrokeWidth scales the outline thickness with the font size.
func StrokeWidth(size int) int {
	w := size / 14
	if w < 2 {
		w = 2
	}
	return w
}

// CenterX computes the x origin that centers a line of the given width
// in a canvas, never starting closer than margin to the left edge.
func CenterX(canvasWidth, lineWidth, margin int) int {
	x := (canvasWidth - lineWidth) / 2
	if x < margin {
		x = margin
	}
	return x
}
