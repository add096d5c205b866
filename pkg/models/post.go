package models

import "time"

// Post is one social post flowing through a single render request. It is
// immutable once classified and never outlives the request that made it.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ImageURLs []string  `json:"image_urls,omitempty"`

	// Polarity is the lexicon compound score in [-1, 1], filled in by
	// the classifier.
	Polarity float64 `json:"polarity"`
	// Event is an optional coarse moment tag (e.g. TOUCHDOWN).
	Event string `json:"event,omitempty"`
}

// Text returns the title and body joined for scoring and tokenizing.
func (p Post) Text() string {
	if p.Body == "" {
		return p.Title
	}
	return p.Title + "\n" + p.Body
}

// HasImages reports whether the post carries at least one image URL.
func (p Post) HasImages() bool {
	return len(p.ImageURLs) > 0
}

// FirstImageURL returns the first image URL, or "" when there is none.
func (p Post) FirstImageURL() string {
	if len(p.ImageURLs) == 0 {
		return ""
	}
	return p.ImageURLs[0]
}
