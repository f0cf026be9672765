// Package breathing drives the timed breathing exercises: a pure
// phase/cycle transition function plus a ticker-driven runner per user.
package breathing

import (
	"fmt"

	"github.com/safespace-dev/safespace/internal/domain"
	"github.com/safespace-dev/safespace/internal/errors"
)

type Phase string

const (
	PhaseInhale Phase = "inhale"
	PhaseHold   Phase = "hold"
	PhaseExhale Phase = "exhale"
	PhasePause  Phase = "pause"
)

// DefaultTotalCycles is the cycle count every exercise runs for.
const DefaultTotalCycles = 5

// Profile holds the per-phase durations (in seconds) of one exercise.
type Profile struct {
	Inhale int
	Hold   int
	Exhale int
	Pause  int
}

func (p Profile) Duration(ph Phase) int {
	switch ph {
	case PhaseInhale:
		return p.Inhale
	case PhaseHold:
		return p.Hold
	case PhaseExhale:
		return p.Exhale
	default:
		return p.Pause
	}
}

// Exercise is one catalog entry shown to the user.
type Exercise struct {
	Id          domain.ExerciseId `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Duration    string            `json:"duration"`
	Difficulty  string            `json:"difficulty"`
	Profile     Profile           `json:"-"`
}

// Exercises is the static catalog. An id missing from it fails fast with a
// configuration error; defaulting silently would desynchronize the
// displayed instructions from the actual timing.
var Exercises = []Exercise{
	{
		Id:          "box-breathing",
		Title:       "4-4-4-4 Box Breathing",
		Description: "Inhale 4, hold 4, exhale 4, pause 4",
		Duration:    "5 minutes",
		Difficulty:  "Beginner",
		Profile:     Profile{Inhale: 4, Hold: 4, Exhale: 4, Pause: 4},
	},
	{
		Id:          "calming-breath",
		Title:       "4-7-8 Calming Breath",
		Description: "Inhale 4, hold 7, exhale 8",
		Duration:    "3 minutes",
		Difficulty:  "Intermediate",
		Profile:     Profile{Inhale: 4, Hold: 7, Exhale: 8, Pause: 2},
	},
	{
		Id:          "grounding",
		Title:       "5-4-3-2-1 Grounding",
		Description: "Mindfulness technique using your senses",
		Duration:    "5 minutes",
		Difficulty:  "Beginner",
		Profile:     Profile{Inhale: 4, Hold: 7, Exhale: 8, Pause: 2},
	},
}

func profileFor(id domain.ExerciseId) (Profile, bool) {
	for _, e := range Exercises {
		if e.Id == id {
			return e.Profile, true
		}
	}
	return Profile{}, false
}

// Session is a running exercise snapshot. The zero value means idle.
type Session struct {
	Exercise         domain.ExerciseId `json:"exercise_id"`
	Phase            Phase             `json:"phase"`
	SecondsIntoPhase int               `json:"seconds_into_phase"`
	CycleIndex       int               `json:"cycle_index"`
	TotalCycles      int               `json:"total_cycles"`
}

func (s Session) Idle() bool { return s.Exercise == "" }

// NewSession validates the exercise id and returns the initial state:
// inhale, zero seconds, first cycle.
func NewSession(id domain.ExerciseId) (Session, error) {
	if _, ok := profileFor(id); !ok {
		return Session{}, errors.Configuration("unknown breathing exercise %q", id)
	}
	return Session{
		Exercise:         id,
		Phase:            PhaseInhale,
		SecondsIntoPhase: 0,
		CycleIndex:       1,
		TotalCycles:      DefaultTotalCycles,
	}, nil
}

// Advance applies one timer tick: increment the second counter, and when
// it exceeds the phase duration move to the next phase with the counter
// reset to 1 (the first tick of the new phase already counts). The
// pause->inhale wrap increments the cycle; the session finishes the
// instant the cycle would exceed the total.
func Advance(s Session) (next Session, done bool) {
	profile, ok := profileFor(s.Exercise)
	if !ok {
		return s, true
	}

	s.SecondsIntoPhase++
	if s.SecondsIntoPhase > profile.Duration(s.Phase) {
		s.SecondsIntoPhase = 1
		switch s.Phase {
		case PhaseInhale:
			s.Phase = PhaseHold
		case PhaseHold:
			s.Phase = PhaseExhale
		case PhaseExhale:
			s.Phase = PhasePause
		case PhasePause:
			s.Phase = PhaseInhale
			s.CycleIndex++
		}
	}

	if s.CycleIndex > s.TotalCycles {
		return s, true
	}
	return s, false
}

// Progress reports the displayed phase completion, clamped to [0,1].
func Progress(s Session) float64 {
	profile, ok := profileFor(s.Exercise)
	if !ok {
		return 0
	}
	d := profile.Duration(s.Phase)
	if d <= 0 {
		return 0
	}
	p := float64(s.SecondsIntoPhase) / float64(d)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Instruction is the text shown for the current phase.
func Instruction(s Session) string {
	switch s.Phase {
	case PhaseInhale:
		return fmt.Sprintf("Breathe in slowly... %d", s.SecondsIntoPhase)
	case PhaseHold:
		return fmt.Sprintf("Hold your breath... %d", s.SecondsIntoPhase)
	case PhaseExhale:
		return fmt.Sprintf("Breathe out gently... %d", s.SecondsIntoPhase)
	case PhasePause:
		return fmt.Sprintf("Rest... %d", s.SecondsIntoPhase)
	}
	return ""
}
