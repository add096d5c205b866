package reddit

// listing mirrors the subset of Reddit's public JSON feed we consume.
type listing struct {
	Data listingData `json:"data"`
}

type listingData struct {
	Children []listingChild `json:"children"`
}

type listingChild struct {
	Data postData `json:"data"`
}

type postData struct {
	ID                  string                   `json:"id"`
	Name                string                   `json:"name"`
	Title               string                   `json:"title"`
	Selftext            string                   `json:"selftext"`
	Permalink           string                   `json:"permalink"`
	URL                 string                   `json:"url"`
	URLOverriddenByDest string                   `json:"url_overridden_by_dest"`
	CreatedUTC          float64                  `json:"created_utc"`
	IsGallery           bool                     `json:"is_gallery"`
	MediaMetadata       map[string]mediaMetadata `json:"media_metadata"`
	CrosspostParentList []postData               `json:"crosspost_parent_list"`
	Preview             *preview                 `json:"preview"`
}

type mediaMetadata struct {
	S mediaSource `json:"s"`
}

type mediaSource struct {
	U string `json:"u"`
}

type preview struct {
	Images []previewImage `json:"images"`
}

type previewImage struct {
	Source previewSource `json:"source"`
}

type previewSource struct {
	URL string `json:"url"`
}
