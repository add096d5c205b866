package models

// Mood is the aggregate batch mood derived from mean polarity.
type Mood string

const (
	MoodPositive Mood = "POSITIVE"
	MoodNegative Mood = "NEGATIVE"
	MoodNeutral  Mood = "NEUTRAL"
)

// Word returns the meme-facing vocabulary for a mood.
func (m Mood) Word() string {
	switch m {
	case MoodPositive:
		return "HYPE"
	case MoodNegative:
		return "SALTY"
	default:
		return "NEUTRAL"
	}
}

// Style selects the background composition strategy.
type Style string

const (
	StyleGrid    Style = "grid"
	StyleClassic Style = "classic"
)

// StyleConfig carries the per-request rendering knobs.
type StyleConfig struct {
	Style Style `json:"style"`
	// Tiles is the requested grid tile count: 1, 2 or 4.
	Tiles int `json:"tiles"`
	// FocusBias overlays focus terms onto keywords and filters
	// candidate posts toward them.
	FocusBias bool `json:"focus_bias"`
	// TwoImageBackground lets the classic style randomly pick two
	// related images for a split background when available.
	TwoImageBackground bool `json:"two_image_background"`

	Topic    string `json:"topic"`
	Business string `json:"business"`
	Offer    string `json:"offer"`

	Width  int `json:"width"`
	Height int `json:"height"`
}

// Normalize clamps invalid values to the documented defaults.
func (c StyleConfig) Normalize() StyleConfig {
	if c.Style != StyleClassic {
		c.Style = StyleGrid
	}
	switch c.Tiles {
	case 1, 2, 4:
	default:
		c.Tiles = 4
	}
	if c.Width <= 0 {
		c.Width = 1024
	}
	if c.Height <= 0 {
		c.Height = 1024
	}
	return c
}

// FocusTerm is a human or organization label used to bias selection.
// Alias, when set, is the short display form used in meme copy.
type FocusTerm struct {
	Term  string `json:"term"`
	Alias string `json:"alias,omitempty"`
}

// Label returns the display form of the term.
func (f FocusTerm) Label() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Term
}

// MemeMetadata reports which inputs actually made it into the render.
type MemeMetadata struct {
	Mood            Mood     `json:"mood"`
	AvgPolarity     float64  `json:"avg_polarity"`
	Keywords        []string `json:"keywords"`
	Event           string   `json:"event,omitempty"`
	Style           Style    `json:"style"`
	TilesRequested  int      `json:"tiles_requested"`
	TilesUsed       int      `json:"tiles_used"`
	ImagesRequested int      `json:"images_requested"`
	ImagesUsed      int      `json:"images_used"`
	ImageURLs       []string `json:"image_urls,omitempty"`
	FocusTerms      []string `json:"focus_terms,omitempty"`
}

// RenderedMeme is the final product of one pipeline invocation.
// Ownership passes to the caller for encoding/transport.
type RenderedMeme struct {
	PNG      []byte       `json:"-"`
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	Caption  string       `json:"caption"`
	Metadata MemeMetadata `json:"metadata"`
}
