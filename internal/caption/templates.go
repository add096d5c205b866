package caption

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/alanhe1219-web/Pulse-Bodega/pkg/models"
)

// Input carries everything a caption template can reference.
type Input struct {
	Mood     models.Mood
	Keywords []string
	Topic    string
	Business string
	Offer    string
	Event    string
}

// slots are the resolved uppercase placeholder values.
type slots struct {
	mood  string
	k1    string
	k2    string
	k3    string
	event string
	topic string
}

// template produces a (headline, subline) pair from resolved slots.
type template func(s slots) (string, string)

// Embellishment odds. Documented behavior: occasionally the offer is
// woven into the subline, rarely the business name into the headline.
const (
	offerChance    = 0.25
	businessChance = 0.10
)

var commonTemplates = []template{
	func(s slots) (string, string) {
		return "LIVE REACTION CHECK", fmt.Sprintf("%s: %s • %s • %s", s.mood, s.k1, s.k2, s.k3)
	},
	func(s slots) (string, string) {
		return "EVERYONE RN", fmt.Sprintf("%s JUST HIT • %s MODE ACTIVATED", s.k1, s.mood)
	},
	func(s slots) (string, string) {
		return "POV:", fmt.Sprintf("YOU HEAR '%s' AND SUDDENLY IT'S %s", s.k1, s.mood)
	},
	func(s slots) (string, string) {
		return "THE GROUP CHAT:", fmt.Sprintf("%s %s %s (VOLUME: MAX)", s.k1, s.k2, s.k3)
	},
	func(s slots) (string, string) {
		return "THIS IS FINE", fmt.Sprintf("(%s) %s %s %s", s.mood, s.k1, s.k2, s.k3)
	},
}

var hypeTemplates = []template{
	func(s slots) (string, string) {
		return "WE ARE SO BACK", fmt.Sprintf("%s GOT ME LIKE %s", s.eventOrTopic(), s.k1)
	},
	func(s slots) (string, string) {
		return "ENERGY LEVEL:", fmt.Sprintf("%s • %s • %s", s.k1, s.k2, s.k3)
	},
	func(s slots) (string, string) {
		return "I'M UP", fmt.Sprintf("AND IT'S BECAUSE OF %s", s.k1)
	},
	func(s slots) (string, string) {
		return "SAY IT WITH ME", fmt.Sprintf("%s = %s", s.k1, s.mood)
	},
}

var saltyTemplates = []template{
	func(s slots) (string, string) {
		return "WHO WROTE THIS SCRIPT", fmt.Sprintf("%s AGAIN?? I'M %s", s.k1, s.mood)
	},
	func(s slots) (string, string) {
		return "I CAN'T BELIEVE", fmt.Sprintf("%s DID THAT • %s", s.eventOrTopic(), s.k1)
	},
	func(s slots) (string, string) {
		return "ME TRYING TO BE CHILL", fmt.Sprintf("BUT %s HAS OTHER PLANS", s.k1)
	},
	func(s slots) (string, string) {
		return "THE VIBES ARE OFF", fmt.Sprintf("%s • %s • %s", s.k1, s.k2, s.mood)
	},
}

var neutralTemplates = []template{
	func(s slots) (string, string) {
		return "CURRENT STATUS:", fmt.Sprintf("%s • %s • %s", s.k1, s.k2, s.k3)
	},
	func(s slots) (string, string) {
		return "OBSERVING", fmt.Sprintf("%s LIKE: %s", s.topic, s.k1)
	},
	func(s slots) (string, string) {
		return "NO THOUGHTS", fmt.Sprintf("JUST %s", s.k1)
	},
	func(s slots) (string, string) {
		return "REAL-TIME MOODBOARD", fmt.Sprintf("%s • %s • %s", s.k1, s.k2, s.k3)
	},
}

func (s slots) eventOrTopic() string {
	if s.event != "" {
		return s.event
	}
	return s.topic
}

// Selector picks a caption template keyed by mood. It owns no
// randomness: callers inject the random source so outcomes can be
// pinned in tests.
type Selector struct{}

// NewSelector creates a template selector.
func NewSelector() *Selector {
	return &Selector{}
}

// Build resolves slots from the input and picks uniformly from the
// union of the shared catalog and the mood-specific catalog.
func (sel *Selector) Build(in Input, rng *rand.Rand) (string, string) {
	s := resolveSlots(in)

	pool := make([]template, 0, len(commonTemplates)+4)
	pool = append(pool, commonTemplates...)
	switch in.Mood {
	case models.MoodPositive:
		pool = append(pool, hypeTemplates...)
	case models.MoodNegative:
		pool = append(pool, saltyTemplates...)
	default:
		pool = append(pool, neutralTemplates...)
	}

	top, bottom := pool[rng.Intn(len(pool))](s)

	if rng.Float64() < offerChance && in.Offer != "" {
		bottom = fmt.Sprintf("%s • %s", bottom, strings.ToUpper(in.Offer))
	}
	if rng.Float64() < businessChance && in.Business != "" {
		top = strings.ToUpper(fmt.Sprintf("%s @ %s", top, in.Business))
	}

	return top, bottom
}

func resolveSlots(in Input) slots {
	kw := make([]string, 0, len(in.Keywords))
	for _, k := range in.Keywords {
		if k != "" {
			kw = append(kw, k)
		}
	}

	topic := strings.ToUpper(strings.TrimSpace(in.Topic))
	if topic == "" {
		topic = "THE GAME"
	}

	pick := func(i int, fallback string) string {
		if i < len(kw) {
			return strings.ToUpper(kw[i])
		}
		return fallback
	}

	return slots{
		mood:  in.Mood.Word(),
		k1:    pick(0, topic),
		k2:    pick(1, "VIBES"),
		k3:    pick(2, "CHAOS"),
		event: strings.ToUpper(strings.TrimSpace(in.Event)),
		topic: topic,
	}
}

// Summary builds the plain-text caption reported next to the image.
func Summary(mood models.Mood, keywords []string, offer, business string) string {
	shown := keywords
	if len(shown) > 4 {
		shown = shown[:4]
	}
	return fmt.Sprintf("Mood: %s. Keywords: %s. %s at %s tonight.",
		mood.Word(), strings.Join(shown, ", "), offer, business)
}

// ClassicSummary reports the classic top/bottom copy as the caption.
func ClassicSummary(top, bottom, offer, business string) string {
	return fmt.Sprintf("%s — %s. %s at %s.", top, bottom, offer, business)
}
