package vibe

import (
	"strings"

	"github.com/jonreiter/govader"

	"github.com/alanhe1219-web/Pulse-Bodega/pkg/models"
)

// moodThreshold is the mean-polarity band outside which the batch mood
// stops being neutral. Distinct from keywordAlignThreshold on purpose:
// merging the two changes which posts feed keyword extraction.
const moodThreshold = 0.2

// Scorer computes a compound polarity in [-1, 1] for one text.
// The default is the VADER lexicon-and-rule model (negation handling,
// intensifiers, punctuation and caps emphasis).
type Scorer interface {
	Compound(text string) float64
}

// VaderScorer scores text with the govader analyzer.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer builds the default lexicon scorer.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the compound polarity. Empty or whitespace-only text
// scores 0; malformed text is never an error.
func (s *VaderScorer) Compound(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return s.analyzer.PolarityScores(text).Compound
}

// Classifier scores posts and derives the aggregate batch mood.
type Classifier struct {
	scorer Scorer
}

// NewClassifier wraps a scorer; pass nil for the default VADER model.
func NewClassifier(scorer Scorer) *Classifier {
	if scorer == nil {
		scorer = NewVaderScorer()
	}
	return &Classifier{scorer: scorer}
}

// Score returns a copy of posts with Polarity and Event filled in.
func (c *Classifier) Score(posts []models.Post) []models.Post {
	scored := make([]models.Post, len(posts))
	for i, p := range posts {
		p.Polarity = c.scorer.Compound(p.Text())
		p.Event = DetectEvent(p.Text())
		scored[i] = p
	}
	return scored
}

// MeanPolarity averages post polarity; an empty batch scores 0.
func MeanPolarity(posts []models.Post) float64 {
	if len(posts) == 0 {
		return 0
	}
	var sum float64
	for _, p := range posts {
		sum += p.Polarity
	}
	return sum / float64(len(posts))
}

// MoodOf maps a mean polarity to the batch mood. The boundaries are
// exclusive: exactly ±0.2 stays neutral.
func MoodOf(mean float64) models.Mood {
	switch {
	case mean > moodThreshold:
		return models.MoodPositive
	case mean < -moodThreshold:
		return models.MoodNegative
	default:
		return models.MoodNeutral
	}
}

// Mood classifies a scored batch.
func (c *Classifier) Mood(posts []models.Post) (models.Mood, float64) {
	mean := MeanPolarity(posts)
	return MoodOf(mean), mean
}

// FirstEvent returns the first detected event tag in batch order, or "".
func FirstEvent(posts []models.Post) string {
	for _, p := range posts {
		if p.Event != "" {
			return p.Event
		}
	}
	return ""
}
