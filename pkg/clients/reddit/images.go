package reddit

import (
	"html"
	"strings"
)

// extractImageURLs pulls likely image URLs out of a post payload.
// Galleries, crossposts, preview sources and direct links are all
// considered, in that order, deduplicated.
func extractImageURLs(d postData) []string {
	var urls []string
	seen := make(map[string]bool)
	add := func(u string) {
		if u == "" {
			return
		}
		u = html.UnescapeString(u)
		if !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}

	// Galleries carry multiple sources.
	if d.IsGallery {
		for _, v := range d.MediaMetadata {
			add(v.S.U)
		}
	}

	// Crossposts can contain preview/media even if the parent does not.
	if len(d.CrosspostParentList) > 0 {
		for _, u := range extractImageURLs(d.CrosspostParentList[0]) {
			add(u)
		}
	}

	// Preview sources; take a few.
	if d.Preview != nil {
		for i, img := range d.Preview.Images {
			if i >= 4 {
				break
			}
			add(img.Source.URL)
		}
	}

	// Direct link.
	direct := d.URLOverriddenByDest
	if direct == "" {
		direct = d.URL
	}
	if isImageURL(direct) {
		add(direct)
	}

	cleaned := urls[:0]
	for _, u := range urls {
		if isImageURL(u) {
			cleaned = append(cleaned, u)
		}
	}
	return cleaned
}

func isImageURL(u string) bool {
	if u == "" {
		return false
	}
	ul := strings.ToLower(html.UnescapeString(u))
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".webp"} {
		if strings.HasSuffix(ul, ext) {
			return true
		}
	}
	return strings.Contains(ul, "i.redd.it/") || strings.Contains(ul, "preview.redd.it/")
}
