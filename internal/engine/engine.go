// Package engine implements the rule-based supportive response generator
// shared by the companion chat and the community mentor replies.
package engine

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var fallbackTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "engine_fallback_responses_total",
		Help: "Responses drawn from the default pool because no keyword matched",
	},
	[]string{"table"},
)

// Rule pairs a keyword predicate with its fixed response. Rules are
// evaluated top-to-bottom and the first textual match wins, so the order
// of the table is part of the observable contract.
type Rule struct {
	Category string
	Keywords []string
	Response string
}

func (r Rule) matches(lowered string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// Responder maps free-text input to exactly one supportive message.
// Category responses are deterministic; only the fallback branch consumes
// randomness, so tests inject a fixed source.
type Responder struct {
	table    string
	rules    []Rule
	fallback []string

	mu  sync.Mutex
	rng *rand.Rand
}

func newResponder(table string, rules []Rule, fallback []string, src rand.Source) *Responder {
	return &Responder{table: table, rules: rules, fallback: fallback, rng: rand.New(src)}
}

// Respond never fails. Empty or whitespace-only input matches no keyword
// and is served from the default pool.
func (r *Responder) Respond(input string) string {
	lowered := strings.ToLower(input)
	for _, rule := range r.rules {
		if rule.matches(lowered) {
			return rule.Response
		}
	}

	fallbackTotal.WithLabelValues(r.table).Inc()
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fallback[r.rng.Intn(len(r.fallback))]
}

// Category reports which rule would fire for the input, or "" for the
// fallback path. Used by tests and diagnostics.
func (r *Responder) Category(input string) string {
	lowered := strings.ToLower(input)
	for _, rule := range r.rules {
		if rule.matches(lowered) {
			return rule.Category
		}
	}
	return ""
}
