package engine

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// LabelStyle selects the anonymous display label format.
type LabelStyle string

const (
	// StyleShort produces "Adjective Noun", used for short-form display.
	StyleShort LabelStyle = "short"
	// StyleSuffixed produces "adjective_noun_NNN" with a 3-digit suffix,
	// used where collision avoidance matters more.
	StyleSuffixed LabelStyle = "suffixed"
)

var adjectives = []string{"Gentle", "Brave", "Kind", "Strong", "Peaceful", "Wise", "Caring", "Silent", "Bright", "Hope"}
var nouns = []string{"River", "Mountain", "Star", "Ocean", "Moon", "Sun", "Tree", "Bird", "Butterfly", "Walker"}

// LabelGenerator produces pseudonymous display names with no persisted
// association to any real identity. Labels are regenerated on every call,
// never stable per user.
type LabelGenerator interface {
	Generate(style LabelStyle) string
}

type labelGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewLabelGenerator(src rand.Source) LabelGenerator {
	return &labelGenerator{rng: rand.New(src)}
}

func (g *labelGenerator) Generate(style LabelStyle) string {
	g.mu.Lock()
	adjective := adjectives[g.rng.Intn(len(adjectives))]
	noun := nouns[g.rng.Intn(len(nouns))]
	suffix := 100 + g.rng.Intn(899)
	g.mu.Unlock()

	if style == StyleSuffixed {
		return fmt.Sprintf("%s_%s_%d", strings.ToLower(adjective), strings.ToLower(noun), suffix)
	}
	return adjective + " " + noun
}
