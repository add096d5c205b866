package vibe

import (
	"regexp"
	"sort"
	"strings"

	"github.com/alanhe1219-web/Pulse-Bodega/pkg/models"
)

// keywordAlignThreshold selects which posts feed keyword extraction
// once the batch mood is known. Looser than moodThreshold: a mildly
// positive post still contributes keywords to a hype batch.
const keywordAlignThreshold = 0.10

// DefaultTopK bounds the keyword list.
const DefaultTopK = 6

var tokenPattern = regexp.MustCompile(`[a-z]{3,}`)

// stopwords drop articles, pronouns and domain noise that would
// otherwise dominate frequency counts.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "to": {},
	"of": {}, "in": {}, "on": {}, "for": {}, "with": {}, "at": {}, "by": {},
	"from": {}, "as": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "it": {}, "its": {}, "this": {},
	"that": {}, "these": {}, "those": {}, "you": {}, "your": {}, "we": {},
	"our": {}, "they": {}, "their": {}, "i": {}, "me": {}, "my": {},
	"rt": {}, "vs": {}, "game": {}, "thread": {}, "highlight": {},
	"report": {}, "per": {}, "new": {}, "today": {}, "team": {},
	"teams": {}, "season": {}, "super": {}, "bowl": {}, "nfl": {},
	"http": {}, "https": {}, "www": {}, "com": {}, "amp": {},
}

// KeywordExtractor tokenizes and frequency-ranks terms from the posts
// most aligned with the batch mood.
type KeywordExtractor struct {
	topK           int
	alignThreshold float64
}

// NewKeywordExtractor builds an extractor; topK <= 0 uses DefaultTopK.
func NewKeywordExtractor(topK int) *KeywordExtractor {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &KeywordExtractor{topK: topK, alignThreshold: keywordAlignThreshold}
}

// Extract returns the topK keywords from the mood-aligned subset of
// posts. If alignment filters everything out, the full batch is used so
// a nonzero batch never yields zero keywords for that reason alone.
// Output is deterministic: frequency descending, ties broken by first
// occurrence in the scanned corpus.
func (e *KeywordExtractor) Extract(posts []models.Post, mood models.Mood) []string {
	var corpus []string
	for _, p := range posts {
		switch mood {
		case models.MoodPositive:
			if p.Polarity < e.alignThreshold {
				continue
			}
		case models.MoodNegative:
			if p.Polarity > -e.alignThreshold {
				continue
			}
		}
		corpus = append(corpus, p.Text())
	}
	if len(corpus) == 0 {
		for _, p := range posts {
			corpus = append(corpus, p.Text())
		}
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0
	for _, text := range corpus {
		for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
			if _, skip := stopwords[tok]; skip {
				continue
			}
			if _, seen := counts[tok]; !seen {
				firstSeen[tok] = order
				order++
			}
			counts[tok]++
		}
	}

	ranked := make([]string, 0, len(counts))
	for tok := range counts {
		ranked = append(ranked, tok)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		return firstSeen[a] < firstSeen[b]
	})

	if len(ranked) > e.topK {
		ranked = ranked[:e.topK]
	}
	return ranked
}
