package vibe

import (
	"regexp"
	"strings"
)

// namePattern catches capitalized word sequences of 2-4 words, a cheap
// stand-in for named-entity recognition.
var namePattern = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,3})\b`)

// stopPhrases are common sports/org phrases that look like names.
var stopPhrases = map[string]struct{}{
	"Super Bowl":           {},
	"NFL":                  {},
	"SportsCenter":         {},
	"Washington Times":     {},
	"New England Patriots": {},
	"Seattle Seahawks":     {},
	"AFC":                  {},
	"NFC":                  {},
}

var genericPairs = map[string]struct{}{
	"new england":          {},
	"seattle seahawks":     {},
	"new england patriots": {},
}

var orgTokens = map[string]struct{}{
	"NFL": {}, "SB": {}, "Super": {}, "Bowl": {},
}

// ExtractNameCandidates pulls likely person names out of post text.
func ExtractNameCandidates(text string) []string {
	var out []string
	for _, m := range namePattern.FindAllString(text, -1) {
		c := strings.TrimSpace(m)
		if strings.HasPrefix(c, "Team ") || strings.HasPrefix(c, "Report ") ||
			strings.HasPrefix(c, "Highlight ") || strings.HasPrefix(c, "Game Thread") {
			continue
		}
		if strings.Contains(c, "Franchise Tag") || strings.Contains(c, "Thread") {
			continue
		}
		if _, skip := stopPhrases[c]; skip {
			continue
		}
		if _, skip := genericPairs[strings.ToLower(c)]; skip {
			continue
		}
		if hasOrgToken(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func hasOrgToken(candidate string) bool {
	for _, tok := range strings.Fields(candidate) {
		if _, ok := orgTokens[tok]; ok {
			return true
		}
	}
	return false
}
