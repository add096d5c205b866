package pipeline

import (
	"math/rand"

	"github.com/alanhe1219-web/Pulse-Bodega/internal/vibe"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/models"
)

// imagePosts keeps only posts that carry at least one usable image URL,
// focus-filtered when terms are set.
func imagePosts(posts []models.Post, terms []models.FocusTerm) []models.Post {
	var withImages []models.Post
	for _, p := range posts {
		if p.HasImages() {
			withImages = append(withImages, p)
		}
	}
	return vibe.FilterPosts(withImages, terms)
}

// selectGridImageURLs samples posts without replacement and flattens
// their image URLs until `want` are collected. Fewer candidates than
// tiles is fine; the renderer fills the gap with placeholders.
func selectGridImageURLs(posts []models.Post, terms []models.FocusTerm, want int, rng *rand.Rand) []string {
	candidates := imagePosts(posts, terms)
	if len(candidates) == 0 || want <= 0 {
		return nil
	}

	urls := make([]string, 0, want)
	for _, i := range rng.Perm(len(candidates)) {
		for _, u := range candidates[i].ImageURLs {
			urls = append(urls, u)
			if len(urls) == want {
				return urls
			}
		}
	}
	return urls
}

// selectClassicSource picks one random image-bearing post to back the
// classic layout. ok is false when no candidate has images, in which
// case the renderer falls back to a flat background.
func selectClassicSource(posts []models.Post, terms []models.FocusTerm, rng *rand.Rand) (models.Post, bool) {
	candidates := imagePosts(posts, terms)
	if len(candidates) == 0 {
		return models.Post{}, false
	}
	return candidates[rng.Intn(len(candidates))], true
}

// classicBackgroundURLs resolves the source post's images to the one or
// two URLs the classic background will use. With the two-image option
// on and at least two URLs available, a coin flip decides between a
// split background and a single one.
func classicBackgroundURLs(src models.Post, twoImage bool, rng *rand.Rand) []string {
	if len(src.ImageURLs) == 0 {
		return nil
	}
	if twoImage && len(src.ImageURLs) >= 2 && rng.Float64() < 0.5 {
		picks := rng.Perm(len(src.ImageURLs))[:2]
		return []string{src.ImageURLs[picks[0]], src.ImageURLs[picks[1]]}
	}
	return []string{src.ImageURLs[0]}
}
