// Package chat holds the per-user companion conversation: an ordered,
// in-memory message log where every user turn is answered by the
// response engine after a simulated thinking delay.
package chat

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/safespace-dev/safespace/internal/domain"
	"github.com/safespace-dev/safespace/internal/engine"
	"github.com/safespace-dev/safespace/internal/errors"
)

// Scheduler runs fn after d and returns a cancel func. Production use is
// time.AfterFunc; tests substitute an immediate or manual scheduler.
type Scheduler func(d time.Duration, fn func()) (cancel func())

func timerScheduler(d time.Duration, fn func()) func() {
	timer := time.AfterFunc(d, fn)
	return func() { timer.Stop() }
}

// Options configures a thread. The zero value gets the production
// defaults: real timers and the 1.5s+jitter thinking delay.
type Options struct {
	Responder *engine.Responder
	BaseDelay time.Duration
	Jitter    time.Duration
	Schedule  Scheduler
	Rand      *rand.Rand
}

// Thread owns its messages; they are discarded with it (no persistence).
type Thread struct {
	responder *engine.Responder
	baseDelay time.Duration
	jitter    time.Duration
	schedule  Scheduler

	mu       sync.Mutex
	rng      *rand.Rand
	messages []domain.Message
	typing   bool
	closed   bool
	cancels  map[*struct{}]func()
}

func NewThread(opts Options) *Thread {
	if opts.Responder == nil {
		opts.Responder = engine.NewCompanion(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.BaseDelay == 0 {
		opts.BaseDelay = 1500 * time.Millisecond
	}
	if opts.Schedule == nil {
		opts.Schedule = timerScheduler
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	t := &Thread{
		responder: opts.Responder,
		baseDelay: opts.BaseDelay,
		jitter:    opts.Jitter,
		schedule:  opts.Schedule,
		rng:       opts.Rand,
		cancels:   map[*struct{}]func(){},
	}
	t.messages = append(t.messages, domain.Message{
		Id:         uuid.NewString(),
		Content:    engine.Greeting,
		IsFromUser: false,
		Timestamp:  time.Now(),
	})
	return t
}

// Send appends the user's message and schedules the companion reply.
// Empty input is rejected before any state changes.
func (t *Thread) Send(text string) (domain.Message, error) {
	if isBlank(text) {
		return domain.Message{}, errors.Validation("Message must not be empty")
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return domain.Message{}, errors.Validation("Conversation is closed")
	}

	msg := domain.Message{
		Id:         uuid.NewString(),
		Content:    text,
		IsFromUser: true,
		Timestamp:  time.Now(),
	}
	t.messages = append(t.messages, msg)
	t.typing = true

	delay := t.baseDelay
	if t.jitter > 0 {
		delay += time.Duration(t.rng.Int63n(int64(t.jitter)))
	}

	key := new(struct{})
	input := text
	t.cancels[key] = t.schedule(delay, func() {
		t.appendReply(key, input)
	})

	return msg, nil
}

// appendReply is the deferred half of Send. A thread closed in the
// meantime swallows the reply.
func (t *Thread) appendReply(key *struct{}, input string) {
	reply := t.responder.Respond(input)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	delete(t.cancels, key)
	t.messages = append(t.messages, domain.Message{
		Id:         uuid.NewString(),
		Content:    reply,
		IsFromUser: false,
		Timestamp:  time.Now(),
	})
	t.typing = len(t.cancels) > 0
}

// Messages returns a copy of the log in append order.
func (t *Thread) Messages() []domain.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Typing reports whether a companion reply is still pending.
func (t *Thread) Typing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.typing
}

// Close cancels pending replies and discards the thread. No reply may be
// appended after Close returns.
func (t *Thread) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	for key, cancel := range t.cancels {
		cancel()
		delete(t.cancels, key)
	}
	t.typing = false
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
