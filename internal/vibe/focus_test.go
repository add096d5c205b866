package vibe

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanhe1219-web/Pulse-Bodega/pkg/models"
)

func TestPickTermsDeterministicWithSeed(t *testing.T) {
	f := NewFocusBias()
	a := f.PickTerms(rand.New(rand.NewSource(7)))
	b := f.PickTerms(rand.New(rand.NewSource(7)))
	require.Equal(t, a, b)

	// One from each pool plus two team anchors.
	assert.Len(t, a, 5)
	assert.Equal(t, "Bad Bunny", a[0].Term)
	assert.Equal(t, "Seahawks", a[3].Alias)
	assert.Equal(t, "Patriots", a[4].Alias)
}

func TestBiasKeywordsPrependsAliases(t *testing.T) {
	f := NewFocusBias()
	terms := []models.FocusTerm{
		{Term: "Seattle Seahawks", Alias: "Seahawks"},
		{Term: "Geno Smith"},
	}
	got := f.BiasKeywords([]string{"touchdown", "chaos"}, terms, 6)
	assert.Equal(t, []string{"Seahawks", "Geno Smith", "touchdown", "chaos"}, got)
}

func TestBiasKeywordsDedupesCaseInsensitive(t *testing.T) {
	f := NewFocusBias()
	terms := []models.FocusTerm{{Term: "Geno Smith"}}
	got := f.BiasKeywords([]string{"geno smith", "vibes"}, terms, 6)
	assert.Equal(t, []string{"Geno Smith", "vibes"}, got)
}

func TestBiasKeywordsTruncatesToTopK(t *testing.T) {
	f := NewFocusBias()
	terms := []models.FocusTerm{{Term: "A"}, {Term: "B"}, {Term: "C"}}
	got := f.BiasKeywords([]string{"d", "e", "f"}, terms, 4)
	assert.Len(t, got, 4)
	assert.Equal(t, []string{"A", "B", "C", "d"}, got)
}

func TestMatchesAny(t *testing.T) {
	terms := []models.FocusTerm{{Term: "Bad Bunny"}, {Term: "Seattle Seahawks"}}
	assert.True(t, MatchesAny("BAD BUNNY halftime show announced", terms))
	assert.True(t, MatchesAny("the seattle seahawks looked sharp", terms))
	assert.False(t, MatchesAny("patriots defense struggles", terms))
	assert.False(t, MatchesAny("", terms))
}

func TestFilterPostsKeepsHits(t *testing.T) {
	terms := []models.FocusTerm{{Term: "Geno Smith"}}
	posts := []models.Post{
		{ID: "1", Title: "Geno Smith with the dime"},
		{ID: "2", Title: "weather delay"},
	}
	got := FilterPosts(posts, terms)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilterPostsFallsBackWhenEmpty(t *testing.T) {
	terms := []models.FocusTerm{{Term: "Nobody Mentioned"}}
	posts := []models.Post{{ID: "1", Title: "weather delay"}}
	got := FilterPosts(posts, terms)
	assert.Equal(t, posts, got, "an empty filtered set must fall back to the unfiltered candidates")
}

func TestFilterPostsNoTerms(t *testing.T) {
	posts := []models.Post{{ID: "1"}}
	assert.Equal(t, posts, FilterPosts(posts, nil))
}
