package breathing

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/safespace-dev/safespace/internal/domain"
)

var (
	sessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "breathing_sessions_started_total",
		Help: "Breathing sessions started",
	})
	sessionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "breathing_sessions_completed_total",
		Help: "Breathing sessions that ran all cycles to completion",
	})
)

// Runner owns at most one live ticker for its session. Starting a new
// session cancels the previous ticker first; Stop discards in-progress
// state. All methods are safe for concurrent use.
type Runner struct {
	interval time.Duration

	mu      sync.Mutex
	session Session
	cancel  chan struct{}
	done    chan struct{}
}

func NewRunner(interval time.Duration) *Runner {
	if interval <= 0 {
		interval = time.Second
	}
	return &Runner{interval: interval}
}

// Start resets to a fresh session and begins ticking. An unknown
// exercise id fails without touching any previous session state.
func (r *Runner) Start(id domain.ExerciseId) (Session, error) {
	session, err := NewSession(id)
	if err != nil {
		return Session{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelLocked()

	r.session = session
	cancel := make(chan struct{})
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done
	sessionsStarted.Inc()

	go r.loop(cancel, done)
	return session, nil
}

// Stop cancels the timer and returns to idle.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelLocked()
	r.session = Session{}
	r.done = nil
}

// Restart is Stop followed by Start with the given exercise.
func (r *Runner) Restart(id domain.ExerciseId) (Session, error) {
	r.Stop()
	return r.Start(id)
}

// Snapshot returns the current session (zero value when idle).
func (r *Runner) Snapshot() Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}

// Done reports natural completion of the current session; the channel is
// closed when the last cycle finishes. Nil when idle.
func (r *Runner) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

func (r *Runner) cancelLocked() {
	if r.cancel != nil {
		close(r.cancel)
		r.cancel = nil
	}
}

func (r *Runner) loop(cancel, done chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			if finished := r.step(cancel, done); finished {
				return
			}
		}
	}
}

// step advances the session once. Holding the lock, it re-checks that
// this goroutine's cancel channel is still current so a stale ticker
// racing Stop/Start never mutates the replacement session.
func (r *Runner) step(cancel, done chan struct{}) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != cancel {
		return true
	}

	next, finished := Advance(r.session)
	if finished {
		r.session = Session{}
		r.cancel = nil
		close(done)
		sessionsCompleted.Inc()
		return true
	}
	r.session = next
	return false
}

// Registry hands out one runner per user.
type Registry struct {
	interval time.Duration

	mu      sync.Mutex
	runners map[domain.UserId]*Runner
}

func NewRegistry(interval time.Duration) *Registry {
	return &Registry{interval: interval, runners: make(map[domain.UserId]*Runner)}
}

func (g *Registry) ForUser(uid domain.UserId) *Runner {
	g.mu.Lock()
	defer g.mu.Unlock()
	runner, ok := g.runners[uid]
	if !ok {
		runner = NewRunner(g.interval)
		g.runners[uid] = runner
	}
	return runner
}

// StopAll cancels every live session, used on shutdown.
func (g *Registry) StopAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, runner := range g.runners {
		runner.Stop()
	}
}
