package vibe

import (
	"math/rand"
	"strings"

	"github.com/alanhe1219-web/Pulse-Bodega/pkg/models"
)

// Editable focus pools used to steer meme output toward specific
// people. Not authoritative rosters.
var (
	focusHeadliners = []string{"Bad Bunny"}

	focusSeahawks = []string{
		"Geno Smith",
		"DK Metcalf",
		"Tyler Lockett",
		"Kenneth Walker",
		"Devon Witherspoon",
	}

	focusPatriots = []string{
		"Drake Maye",
		"Rhamondre Stevenson",
		"Christian Gonzalez",
		"Jabrill Peppers",
		"Kyle Dugger",
	}
)

// defaultAliases collapse long organization names to the short labels
// used in meme copy.
var defaultAliases = map[string]string{
	"seattle seahawks":     "Seahawks",
	"new england patriots": "Patriots",
}

// FocusBias overlays a fixed set of focus terms onto keyword lists and
// filters candidate posts toward them.
type FocusBias struct {
	aliases map[string]string
}

// NewFocusBias builds the engine with the default alias registry.
func NewFocusBias() *FocusBias {
	return &FocusBias{aliases: defaultAliases}
}

// PickTerms draws one name from each focus pool plus the team anchors,
// deduplicated case-insensitively in draw order. rng must not be nil:
// selection randomness is owned by the caller so tests can pin it.
func (f *FocusBias) PickTerms(rng *rand.Rand) []models.FocusTerm {
	raw := []string{
		focusHeadliners[rng.Intn(len(focusHeadliners))],
		focusSeahawks[rng.Intn(len(focusSeahawks))],
		focusPatriots[rng.Intn(len(focusPatriots))],
		"Seattle Seahawks",
		"New England Patriots",
	}

	seen := make(map[string]bool)
	terms := make([]models.FocusTerm, 0, len(raw))
	for _, t := range raw {
		key := strings.ToLower(strings.TrimSpace(t))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		terms = append(terms, models.FocusTerm{Term: t, Alias: f.aliases[key]})
	}
	return terms
}

// BiasKeywords prepends the focus labels to the base keyword list,
// deduplicating case-insensitively while preserving focus-first order,
// truncated to topK.
func (f *FocusBias) BiasKeywords(keywords []string, terms []models.FocusTerm, topK int) []string {
	if topK <= 0 {
		topK = DefaultTopK
	}

	merged := make([]string, 0, topK)
	seen := make(map[string]bool)
	appendOne := func(k string) bool {
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "" || seen[key] {
			return len(merged) < topK
		}
		seen[key] = true
		merged = append(merged, k)
		return len(merged) < topK
	}

	for _, t := range terms {
		if !appendOne(t.Label()) {
			return merged
		}
	}
	for _, k := range keywords {
		if !appendOne(k) {
			return merged
		}
	}
	return merged
}

// MatchesAny reports whether text contains any focus term,
// case-insensitive whole-term containment. Short terms can over-match;
// callers accept that tradeoff for cheap filtering.
func MatchesAny(text string, terms []models.FocusTerm) bool {
	lower := strings.ToLower(text)
	for _, t := range terms {
		if term := strings.ToLower(t.Term); term != "" && strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// FilterPosts keeps posts whose text mentions a focus term. When the
// filter would empty the set, the original candidates are returned:
// never render with zero candidates when any exist.
func FilterPosts(posts []models.Post, terms []models.FocusTerm) []models.Post {
	if len(terms) == 0 {
		return posts
	}
	var hits []models.Post
	for _, p := range posts {
		if MatchesAny(p.Text(), terms) {
			hits = append(hits, p)
		}
	}
	if len(hits) == 0 {
		return posts
	}
	return hits
}
