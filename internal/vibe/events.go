package vibe

import "regexp"

// eventPatterns map raw social text onto coarse "moment" labels that
// drive meme framing without any model call.
var eventPatterns = []struct {
	pattern *regexp.Regexp
	name    string
}{
	{regexp.MustCompile(`(?i)\btouchdown\b`), "TOUCHDOWN"},
	{regexp.MustCompile(`(?i)\bfumble\b`), "FUMBLE"},
	{regexp.MustCompile(`(?i)\binterception\b`), "INTERCEPTION"},
	{regexp.MustCompile(`(?i)\bhalftime\b`), "HALFTIME"},
	{regexp.MustCompile(`(?i)\bcommercial\b|\bad\b`), "COMMERCIAL"},
}

// DetectEvent returns the first matching event label, or "".
func DetectEvent(text string) string {
	for _, ep := range eventPatterns {
		if ep.pattern.MatchString(text) {
			return ep.name
		}
	}
	return ""
}
