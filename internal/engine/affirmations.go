package engine

import "math/rand"

// Affirmations shown on the self-care screen.
var Affirmations = []string{
	"You are safe in this moment",
	"Your feelings are valid and temporary",
	"You have the strength to get through this",
	"It's okay to take things one breath at a time",
	"You are worthy of love and care",
	"This feeling will pass",
	"You are doing your best, and that's enough",
}

// PickAffirmation draws one affirmation uniformly from the list.
func PickAffirmation(src rand.Source) string {
	return Affirmations[rand.New(src).Intn(len(Affirmations))]
}
