package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkerImage(w, h int) *image.NRGBA {
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/8+y/8)%2 == 0 {
				img.SetNRGBA(x, y, color.NRGBA{R: 40, G: 40, B: 200, A: 255})
			}
		}
	}
	return img
}

func TestCoverResizeIdempotentOnExactSize(t *testing.T) {
	src := checkerImage(64, 64)
	out := CoverResize(src, 64, 64)
	require.Equal(t, src.Bounds(), out.Bounds())
	assert.Equal(t, src.Pix, out.Pix, "already-sized input must pass through unchanged")
}

func TestCoverResizeCropsToTarget(t *testing.T) {
	out := CoverResize(checkerImage(200, 100), 50, 50)
	assert.Equal(t, 50, out.Bounds().Dx())
	assert.Equal(t, 50, out.Bounds().Dy())
}

func TestContainOnBlurDimensions(t *testing.T) {
	out := ContainOnBlur(checkerImage(120, 300), 200, 200)
	assert.Equal(t, 200, out.Bounds().Dx())
	assert.Equal(t, 200, out.Bounds().Dy())
}

func TestTileBoxes(t *testing.T) {
	one := TileBoxes(1, 100, 100)
	require.Len(t, one, 1)
	assert.Equal(t, Box{0, 0, 100, 100}, one[0])

	two := TileBoxes(2, 100, 100)
	require.Len(t, two, 2)
	assert.Equal(t, Box{0, 0, 50, 100}, two[0])
	assert.Equal(t, Box{50, 0, 100, 100}, two[1])

	four := TileBoxes(4, 100, 100)
	require.Len(t, four, 4)
	assert.Equal(t, Box{50, 50, 100, 100}, four[3])

	// Unsupported counts collapse to quadrants.
	assert.Len(t, TileBoxes(3, 100, 100), 4)
}

func TestGridRendererZeroImages(t *testing.T) {
	r := NewGridRenderer(NewLayout(NewFontResolver()))
	out, err := r.Render(Scene{
		MoodWord: "NEUTRAL",
		Keywords: []string{"vibes"},
		Business: "pizza shop",
		Offer:    "15% off",
		ShowCTA:  true,
		Tiles:    1,
		Width:    512,
		Height:   512,
	})
	require.NoError(t, err)
	assert.Equal(t, 512, out.Bounds().Dx())
	assert.Equal(t, 512, out.Bounds().Dy())
}

func TestGridRendererFourTiles(t *testing.T) {
	imgs := []image.Image{
		checkerImage(80, 60), checkerImage(60, 80),
		checkerImage(100, 100), checkerImage(120, 40),
	}
	r := NewGridRenderer(NewLayout(NewFontResolver()))
	out, err := r.Render(Scene{
		Images:   imgs,
		MoodWord: "HYPE",
		Keywords: []string{"touchdown", "seahawks"},
		Tiles:    4,
		Width:    400,
		Height:   400,
	})
	require.NoError(t, err)
	assert.Equal(t, 400, out.Bounds().Dx())
	assert.Equal(t, 400, out.Bounds().Dy())
}

func TestGridRendererLabelsPerTile(t *testing.T) {
	tile := imaging.New(100, 100, color.NRGBA{R: 180, G: 180, B: 180, A: 255})
	scene := Scene{
		Images:   []image.Image{tile, tile, tile, tile},
		MoodWord: "HYPE",
		Tiles:    4,
		Width:    400,
		Height:   400,
	}

	r := NewGridRenderer(NewLayout(NewFontResolver()))
	plain, err := r.Render(scene)
	require.NoError(t, err)

	scene.Keywords = []string{"vibes"}
	labeled, err := r.Render(scene)
	require.NoError(t, err)

	// One keyword labels exactly one tile: the first tile's label strip
	// gets a scrim, the second tile's strip is left untouched.
	assert.NotEqual(t, plain.At(4, 180), labeled.At(4, 180), "first tile should carry the keyword label")
	assert.Equal(t, plain.At(204, 180), labeled.At(204, 180), "tiles beyond the keyword list stay unlabeled")
}

func TestGridRendererLabelsSingleTile(t *testing.T) {
	tile := imaging.New(100, 100, color.NRGBA{R: 180, G: 180, B: 180, A: 255})
	scene := Scene{
		Images:   []image.Image{tile},
		MoodWord: "HYPE",
		Tiles:    1,
		Width:    400,
		Height:   400,
	}

	r := NewGridRenderer(NewLayout(NewFontResolver()))
	plain, err := r.Render(scene)
	require.NoError(t, err)

	scene.Keywords = []string{"vibes"}
	labeled, err := r.Render(scene)
	require.NoError(t, err)

	assert.NotEqual(t, plain.At(4, 370), labeled.At(4, 370), "a lone tile is labeled too")
}

func TestClassicRendererSingleImage(t *testing.T) {
	r := NewClassicRenderer(NewLayout(NewFontResolver()))
	out, err := r.Render(Scene{
		Images:     []image.Image{checkerImage(90, 200)},
		TopText:    "WE ARE SO BACK",
		BottomText: "TOUCHDOWN ENERGY",
		Width:      480,
		Height:     480,
	})
	require.NoError(t, err)
	assert.Equal(t, 480, out.Bounds().Dx())
	assert.Equal(t, 480, out.Bounds().Dy())
}

func TestClassicRendererTwoImageSplit(t *testing.T) {
	red := imaging.New(100, 100, color.NRGBA{R: 255, A: 255})
	blue := imaging.New(100, 100, color.NRGBA{B: 255, A: 255})

	r := NewClassicRenderer(NewLayout(NewFontResolver()))
	out, err := r.Render(Scene{
		Images:     []image.Image{red, blue},
		TopText:    "TOP",
		BottomText: "BOTTOM",
		Width:      400,
		Height:     400,
	})
	require.NoError(t, err)
	assert.Equal(t, 400, out.Bounds().Dx())
	assert.Equal(t, 400, out.Bounds().Dy())

	// The halves compose side by side: first image left, second right.
	// The half centers land inside the fully visible foreground paste.
	lr, _, lb, _ := out.At(100, 200).RGBA()
	assert.Greater(t, lr, lb, "left half should come from the first (red) image")
	rr, _, rb, _ := out.At(300, 200).RGBA()
	assert.Greater(t, rb, rr, "right half should come from the second (blue) image")
}

func TestClassicRendererNoImagesFlatBackground(t *testing.T) {
	r := NewClassicRenderer(NewLayout(NewFontResolver()))
	out, err := r.Render(Scene{
		TopText:    "TOP",
		BottomText: "BOTTOM",
		Width:      300,
		Height:     300,
	})
	require.NoError(t, err)
	// Corner pixel is the flat placeholder, untouched by text.
	nrgba, ok := out.(*image.NRGBA)
	if !ok {
		nrgba = imaging.Clone(out)
	}
	assert.Equal(t, placeholderColor, nrgba.NRGBAAt(2, out.Bounds().Dy()/2))
}

func TestCardRenderer(t *testing.T) {
	r := NewCardRenderer(NewLayout(NewFontResolver()))
	out, err := r.Render(CardCopy{
		Headline:  "GAME NIGHT",
		Punchline: "YOUR COUCH CALLED",
		CTA:       "15% OFF TONIGHT",
		Footer:    "local pizza shop",
	}, 540, 540)
	require.NoError(t, err)
	assert.Equal(t, 540, out.Bounds().Dx())
	assert.Equal(t, 540, out.Bounds().Dy())
}
