package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWiki serves the three endpoints the client touches.
func fakeWiki(t *testing.T, title, description, qid string, p31 string, searchCalls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/w/api.php":
			if searchCalls != nil {
				atomic.AddInt32(searchCalls, 1)
			}
			fmt.Fprintf(w, `{"query":{"search":[{"title":%q}]}}`, title)
		case strings.HasPrefix(r.URL.Path, "/api/rest_v1/page/summary/"):
			resp := map[string]interface{}{
				"description":   description,
				"extract":       "extract text",
				"wikibase_item": qid,
				"thumbnail":     map[string]string{"source": "https://img.test/thumb.jpg"},
				"content_urls":  map[string]interface{}{"desktop": map[string]string{"page": "https://en.wikipedia.org/wiki/X"}},
			}
			_ = json.NewEncoder(w).Encode(resp)
		case strings.HasPrefix(r.URL.Path, "/wiki/Special:EntityData/"):
			fmt.Fprintf(w, `{"entities":{%q:{"claims":{"P31":[{"mainsnak":{"datavalue":{"value":{"id":%q}}}}]}}}}`, qid, p31)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestLookupPersonVerifiedHuman(t *testing.T) {
	srv := fakeWiki(t, "Geno Smith", "American football player", "Q123", "Q5", nil)
	defer srv.Close()

	c := NewClient(WithBaseURLs(srv.URL, srv.URL))
	info, err := c.LookupPerson(context.Background(), "Geno Smith")
	require.NoError(t, err)
	assert.Equal(t, "Geno Smith", info.Title)
	assert.Equal(t, "Q123", info.WikidataQID)
	assert.Equal(t, "https://img.test/thumb.jpg", info.Thumbnail)
}

func TestLookupPersonRejectsNonHuman(t *testing.T) {
	// P31 says "stadium"; description has no person hint either.
	srv := fakeWiki(t, "Lumen Field", "stadium in Seattle", "Q456", "Q483110", nil)
	defer srv.Close()

	c := NewClient(WithBaseURLs(srv.URL, srv.URL))
	_, err := c.LookupPerson(context.Background(), "Lumen Field")
	assert.ErrorIs(t, err, ErrNotPerson)
}

func TestLookupPersonDescriptionFallback(t *testing.T) {
	// No human P31 claim, but the description names a quarterback.
	srv := fakeWiki(t, "Drake Maye", "American football quarterback", "Q789", "Q000", nil)
	defer srv.Close()

	c := NewClient(WithBaseURLs(srv.URL, srv.URL))
	info, err := c.LookupPerson(context.Background(), "Drake Maye")
	require.NoError(t, err)
	assert.Equal(t, "Drake Maye", info.Title)
}

func TestLookupPersonRejectsUnrelatedTitle(t *testing.T) {
	srv := fakeWiki(t, "Completely Different", "American actor", "Q1", "Q5", nil)
	defer srv.Close()

	c := NewClient(WithBaseURLs(srv.URL, srv.URL))
	_, err := c.LookupPerson(context.Background(), "Geno Smith")
	assert.ErrorIs(t, err, ErrNotPerson)
}

func TestLookupPersonCachesResults(t *testing.T) {
	var searchCalls int32
	srv := fakeWiki(t, "Geno Smith", "American football player", "Q123", "Q5", &searchCalls)
	defer srv.Close()

	c := NewClient(WithBaseURLs(srv.URL, srv.URL))
	for i := 0; i < 3; i++ {
		_, err := c.LookupPerson(context.Background(), "Geno Smith")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&searchCalls))
}

func TestTokensOverlap(t *testing.T) {
	assert.True(t, tokensOverlap("Geno Smith", "Smith (quarterback)"))
	assert.False(t, tokensOverlap("Geno Smith", "Lumen Field"))
}
