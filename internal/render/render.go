package render

import "image"

// Scene is everything a style needs to draw a finished meme. The
// pipeline resolves mood, keywords and copy before handing off, so
// renderers stay pure pixel work.
type Scene struct {
	Images   []image.Image
	MoodWord string
	Keywords []string

	// Classic-style copy.
	TopText    string
	BottomText string

	// Promo band.
	Business string
	Offer    string
	ShowCTA  bool

	Tiles  int
	Width  int
	Height int
}

// Renderer turns a scene into a canvas. Grid and classic are the two
// implementations; the pipeline picks one per request.
type Renderer interface {
	Render(scene Scene) (image.Image, error)
}
