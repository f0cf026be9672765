package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickAffirmationMembership(t *testing.T) {
	src := rand.NewSource(7)

	for i := 0; i < 20; i++ {
		assert.Contains(t, Affirmations, PickAffirmation(src))
	}
}

func TestPickAffirmationDeterministicWithFixedSource(t *testing.T) {
	a := rand.NewSource(42)
	b := rand.NewSource(42)

	for i := 0; i < 10; i++ {
		assert.Equal(t, PickAffirmation(a), PickAffirmation(b))
	}
}
