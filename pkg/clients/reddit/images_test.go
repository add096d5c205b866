package reddit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractImageURLsGallery(t *testing.T) {
	d := postData{
		IsGallery: true,
		MediaMetadata: map[string]mediaMetadata{
			"a": {S: mediaSource{U: "https://preview.redd.it/a.jpg?s=1"}},
		},
	}
	urls := extractImageURLs(d)
	assert.Equal(t, []string{"https://preview.redd.it/a.jpg?s=1"}, urls)
}

func TestExtractImageURLsCrosspost(t *testing.T) {
	d := postData{
		CrosspostParentList: []postData{
			{URLOverriddenByDest: "https://i.redd.it/nested.png"},
		},
	}
	urls := extractImageURLs(d)
	assert.Equal(t, []string{"https://i.redd.it/nested.png"}, urls)
}

func TestExtractImageURLsRejectsNonImages(t *testing.T) {
	d := postData{URL: "https://example.com/story.html"}
	assert.Empty(t, extractImageURLs(d))
}

func TestExtractImageURLsDedupes(t *testing.T) {
	d := postData{
		URLOverriddenByDest: "https://i.redd.it/same.jpg",
		Preview: &preview{Images: []previewImage{
			{Source: previewSource{URL: "https://i.redd.it/same.jpg"}},
		}},
	}
	urls := extractImageURLs(d)
	assert.Len(t, urls, 1)
}

func TestIsImageURL(t *testing.T) {
	assert.True(t, isImageURL("https://x.test/a.JPG"))
	assert.True(t, isImageURL("https://x.test/a.webp"))
	assert.True(t, isImageURL("https://i.redd.it/abc"))
	assert.False(t, isImageURL("https://x.test/a.gifv"))
	assert.False(t, isImageURL(""))
}
