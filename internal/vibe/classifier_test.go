package vibe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alanhe1219-web/Pulse-Bodega/pkg/models"
)

// fixedScorer returns canned polarities keyed by post title.
type fixedScorer struct {
	scores map[string]float64
}

func (s fixedScorer) Compound(text string) float64 {
	for k, v := range s.scores {
		if k == text {
			return v
		}
	}
	return 0
}

func postsWithPolarity(polarities ...float64) []models.Post {
	posts := make([]models.Post, len(polarities))
	for i, p := range polarities {
		posts[i] = models.Post{ID: string(rune('a' + i)), Polarity: p}
	}
	return posts
}

func TestMoodOfThresholds(t *testing.T) {
	cases := []struct {
		mean float64
		want models.Mood
	}{
		{0.21, models.MoodPositive},
		{0.2, models.MoodNeutral},  // boundary is exclusive
		{-0.2, models.MoodNeutral}, // boundary is exclusive
		{-0.21, models.MoodNegative},
		{0, models.MoodNeutral},
		{1, models.MoodPositive},
		{-1, models.MoodNegative},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MoodOf(tc.mean), "mean=%v", tc.mean)
	}
}

func TestMeanPolarityEmptyBatch(t *testing.T) {
	assert.Equal(t, 0.0, MeanPolarity(nil))
}

func TestMoodFourPositiveOneNegative(t *testing.T) {
	// 4 posts at >= 0.3 plus one at -0.5 still average above 0.2.
	posts := postsWithPolarity(0.3, 0.4, 0.5, 0.3, -0.5)
	c := NewClassifier(fixedScorer{})
	mood, mean := c.Mood(posts)
	assert.Equal(t, models.MoodPositive, mood)
	assert.Greater(t, mean, 0.2)
}

func TestClassifierScoreFillsPolarityAndEvent(t *testing.T) {
	scorer := fixedScorer{scores: map[string]float64{
		"what a touchdown": 0.8,
		"terrible fumble":  -0.7,
	}}
	c := NewClassifier(scorer)
	scored := c.Score([]models.Post{
		{ID: "1", Title: "what a touchdown"},
		{ID: "2", Title: "terrible fumble"},
	})
	assert.Equal(t, 0.8, scored[0].Polarity)
	assert.Equal(t, "TOUCHDOWN", scored[0].Event)
	assert.Equal(t, -0.7, scored[1].Polarity)
	assert.Equal(t, "FUMBLE", scored[1].Event)
}

func TestVaderScorerEmptyText(t *testing.T) {
	s := NewVaderScorer()
	assert.Equal(t, 0.0, s.Compound(""))
	assert.Equal(t, 0.0, s.Compound("   "))
}

func TestVaderScorerDirection(t *testing.T) {
	s := NewVaderScorer()
	assert.Greater(t, s.Compound("This is amazing, I love it!!!"), 0.0)
	assert.Less(t, s.Compound("This is terrible, I hate it."), 0.0)
}

func TestDetectEvent(t *testing.T) {
	assert.Equal(t, "TOUCHDOWN", DetectEvent("TOUCHDOWN by the rookie"))
	assert.Equal(t, "HALFTIME", DetectEvent("waiting for halftime"))
	assert.Equal(t, "", DetectEvent("nothing happening"))
}

func TestFirstEvent(t *testing.T) {
	posts := []models.Post{{}, {Event: "FUMBLE"}, {Event: "TOUCHDOWN"}}
	assert.Equal(t, "FUMBLE", FirstEvent(posts))
	assert.Equal(t, "", FirstEvent(nil))
}
